// Package config loads, normalizes, and validates skillsetl configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// SKILLSETL_INPUT_DIR. Every directory the stages read from or write to is
// resolved here so the CLI and the pipeline see the same absolute paths.
package config
