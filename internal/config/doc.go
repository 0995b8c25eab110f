// Package config loads, normalizes, and validates mkvscan configuration.
package config
