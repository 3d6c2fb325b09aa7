// Package config loads the warehouse server configuration from the environment (and optional .env files)
// and builds the database handles for the configured storage and catalog.
package config
