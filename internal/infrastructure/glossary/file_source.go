// Package glossary loads the metric definitions injected into prompts.
package glossary

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/doeshing/sqai-go/internal/ports"
)

// FileSource reads a Markdown glossary from disk.
type FileSource struct {
	Path string
}

// NewFileSource creates a source for path.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Load returns the file contents verbatim. A missing file yields a
// placeholder telling the model (and the user) where to create one, so a
// fresh install can still ask questions.
func (s *FileSource) Load(context.Context) (string, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Placeholder(s.Path), nil
		}
		return "", fmt.Errorf("read glossary %s: %w", s.Path, err)
	}
	return string(data), nil
}

// Exists reports whether the glossary file is present.
func (s *FileSource) Exists() bool {
	info, err := os.Stat(s.Path)
	return err == nil && !info.IsDir()
}

// Placeholder is the text used when no glossary file exists.
func Placeholder(path string) string {
	return "KPI definitions file not found. Please create one at " + path
}

var _ ports.GlossarySource = (*FileSource)(nil)
