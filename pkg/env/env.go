// Package env reads process environment variables that are consulted before
// the envconfig-backed configuration is available, such as log formatting.
package env

import "os"

// Get returns the variable's value, or fallback when unset or empty.
func Get(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
