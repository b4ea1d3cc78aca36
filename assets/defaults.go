package assets

import (
	_ "embed"
)

// DefaultConfigYAML contains the embedded default configuration.
//
//go:embed defaults/config.yaml
var DefaultConfigYAML []byte

// ExampleGlossaryMarkdown is a starter metric glossary for the Sakila sample database.
//
//go:embed defaults/kpi_definitions.md
var ExampleGlossaryMarkdown []byte
