// Package config loads typed configuration from environment variables.
//
// Structs describe their variables with caarlos0/env tags. A .env file in the working
// directory is read once, before the first load, through joho/godotenv; variables that
// are already set win over the file.
//
//	var cfg formvalidator.Config
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//
// Load caches the parsed value per type, so later calls for the same type return the
// same configuration without touching the environment again. Parse skips the cache and
// can read from an explicit map instead of the process environment, which is what the
// tests use.
package config
