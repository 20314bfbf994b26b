// Package env reads raw process environment values. Structured configuration
// lives in pkg/config; this is for the few knobs read before or outside it.
package env

import "os"

// Get returns the named variable, or fallback when it is unset or empty.
func Get(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
