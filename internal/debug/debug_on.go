//go:build debug

// Package debug provides categorized debug logging.
// Build with -tags debug to enable logging.
package debug

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
)

// Enabled indicates whether debug logging is active
const Enabled = true

// Category represents a debug logging category
type Category string

const (
	APP    Category = "APP"    // Startup, shutdown, window state
	LOAD   Category = "LOAD"   // Decode worker, frame slot, cache
	NAV    Category = "NAV"    // Index changes, listing
	VIEW   Category = "VIEW"   // Zoom, pan, fit (verbose)
	INPUT  Category = "INPUT"  // Key, wheel and pointer events (verbose)
	CONFIG Category = "CONFIG" // Settings file
)

var (
	enabledCategories = map[Category]bool{
		APP:    true,
		LOAD:   true,
		NAV:    true,
		CONFIG: true,
		VIEW:   false,
		INPUT:  false,
	}
	categoryMu sync.RWMutex

	logger = log.New(os.Stderr, "", log.Ltime|log.Lmicroseconds)
)

func init() {
	// COMIX_DEBUG=all, COMIX_DEBUG=none or COMIX_DEBUG=LOAD,VIEW
	env := os.Getenv("COMIX_DEBUG")
	if env == "" {
		return
	}

	categoryMu.Lock()
	defer categoryMu.Unlock()

	switch env = strings.ToUpper(env); env {
	case "ALL", "NONE":
		for cat := range enabledCategories {
			enabledCategories[cat] = env == "ALL"
		}
	default:
		for cat := range enabledCategories {
			enabledCategories[cat] = false
		}
		for _, cat := range strings.Split(env, ",") {
			enabledCategories[Category(strings.TrimSpace(cat))] = true
		}
	}
}

// Log logs a debug message for the specified category
func Log(cat Category, format string, args ...interface{}) {
	categoryMu.RLock()
	enabled := enabledCategories[cat]
	categoryMu.RUnlock()

	if !enabled {
		return
	}

	logger.Printf("[%s] %s", cat, fmt.Sprintf(format, args...))
}

// IsEnabled returns whether a category is enabled
func IsEnabled(cat Category) bool {
	categoryMu.RLock()
	defer categoryMu.RUnlock()
	return enabledCategories[cat]
}
