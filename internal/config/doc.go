// Package config handles configuration loading, parsing, and validation
// from defaults, an optional config file, and TASKAPI_ environment variables.
// It provides type-safe access to settings needed by the server while keeping
// configuration details separate from business logic.
package config
