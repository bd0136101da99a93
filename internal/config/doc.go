// Package config handles configuration loading, parsing, and validation
// from defaults, an optional config.yaml, an optional .env file and
// POWERDEALER_-prefixed environment variables.
package config
