// Package config loads and validates environment-based configuration.
//
// Configuration is read once at process start into a Config struct and passed
// by reference into the components that need it. Nothing re-reads the
// environment at request time.
package config
