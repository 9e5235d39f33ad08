//go:build !debug

// Package debug provides categorized debug logging.
// This is the no-op version for release builds.
package debug

// Enabled indicates whether debug logging is active
const Enabled = false

// Category represents a debug logging category
type Category string

const (
	APP    Category = "APP"
	LOAD   Category = "LOAD"
	NAV    Category = "NAV"
	VIEW   Category = "VIEW"
	INPUT  Category = "INPUT"
	CONFIG Category = "CONFIG"
)

// Log is a no-op in release builds
func Log(cat Category, format string, args ...interface{}) {}

// IsEnabled always returns false in release builds
func IsEnabled(cat Category) bool { return false }
