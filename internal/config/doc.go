// Package config provides configuration structures and utilities for logstat.
// It defines the options that control log parsing, crawler detection,
// distinct-URL storage and report generation, together with the loader for
// the optional YAML configuration file.
package config
