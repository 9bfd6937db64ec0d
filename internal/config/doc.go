// Package config loads, normalizes, and validates discshelf configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the DISCSHELF_WORKBOOK environment
// fallback for the workbook location. The Config type centralizes every knob
// the CLI needs: where the catalogue lives, how saves are locked and backed
// up, where the journal database sits, and how logs are written.
//
// Always obtain settings through this package so downstream code receives
// absolute paths, canonical log formats, and clear validation errors.
package config
