package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/doeshing/sqai-go/internal/app"
	"github.com/doeshing/sqai-go/internal/domain"
	"github.com/doeshing/sqai-go/internal/infrastructure/cache"
)

// NewCacheCommand creates the cache command with all subcommands
func NewCacheCommand(container *app.Container) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear cached schema descriptions",
	}

	cacheCmd.AddCommand(
		newCacheListCommand(container),
		newCacheClearCommand(container),
		newCacheSizeCommand(container),
	)

	return cacheCmd
}

// newCacheListCommand creates the 'cache list' subcommand
func newCacheListCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cached schemas",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listCacheEntries(cmd.OutOrStdout(), container)
		},
	}
}

// newCacheClearCommand creates the 'cache clear' subcommand
func newCacheClearCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear cache directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			return clearCache(container)
		},
	}
}

// newCacheSizeCommand creates the 'cache size' subcommand
func newCacheSizeCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "size",
		Short: "Show cache size",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showCacheSize(cmd.OutOrStdout(), container)
		},
	}
}

// schemaCache returns the cache or a descriptive error
func schemaCache(container *app.Container) (*cache.FileCache, error) {
	if container.SchemaCache == nil {
		return nil, errors.New(ErrCacheStoreUnavailable)
	}
	return container.SchemaCache, nil
}

// listCacheEntries lists all cache entries
func listCacheEntries(out io.Writer, container *app.Container) error {
	store, err := schemaCache(container)
	if err != nil {
		return err
	}

	entries, err := store.Entries()
	if err != nil {
		return fmt.Errorf("failed to retrieve cache entries: %w", err)
	}

	if len(entries) == 0 {
		fmt.Fprintln(out, MsgNoCachedSchemas)
		return nil
	}

	for _, entry := range entries {
		fmt.Fprintf(out, "%s | %s | %s | %d bytes\n",
			entry.Key,
			entry.Driver,
			entry.CreatedAt.Format(domain.TimestampFormat),
			len(entry.DDL))
	}

	return nil
}

// clearCache clears the cache directory
func clearCache(container *app.Container) error {
	store, err := schemaCache(container)
	if err != nil {
		return err
	}

	if err := store.Clear(); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}

	return nil
}

// showCacheSize displays the cache directory size
func showCacheSize(out io.Writer, container *app.Container) error {
	store, err := schemaCache(container)
	if err != nil {
		return err
	}

	dir := store.Dir()
	totalSize, err := calculateDirectorySize(dir)
	if err != nil {
		return fmt.Errorf("failed to calculate cache size: %w", err)
	}

	fmt.Fprintf(out, "Cache directory: %s\nSize: %d bytes\n", dir, totalSize)
	return nil
}

// calculateDirectorySize calculates the total size of a directory
func calculateDirectorySize(dirPath string) (int64, error) {
	var totalSize int64

	err := filepath.WalkDir(dirPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // Skip files that can't be accessed
		}

		if d.IsDir() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil // Skip files that can't be stat'd
		}

		totalSize += info.Size()
		return nil
	})

	if err != nil {
		return 0, err
	}

	return totalSize, nil
}
