// Package debug is a lightweight diagnostic log, off by default.
// Setting ARETE_DEBUG=1 routes Logf lines to .arete/debug.log with
// rotation, so long-lived watch sessions cannot grow the file without
// bound.
package debug

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	mu      sync.Mutex
	logger  *log.Logger
	enabled bool
)

// Init decides whether debug logging is on and where it writes. Safe to
// call more than once; the last data directory wins.
func Init(dataDir string) {
	mu.Lock()
	defer mu.Unlock()

	enabled = os.Getenv("ARETE_DEBUG") != "" && os.Getenv("ARETE_DEBUG") != "0"
	if !enabled {
		logger = nil
		return
	}

	logger = log.New(&lumberjack.Logger{
		Filename:   filepath.Join(dataDir, "debug.log"),
		MaxSize:    5, // megabytes
		MaxBackups: 2,
		MaxAge:     14, // days
	}, "", log.LstdFlags|log.Lmicroseconds)
}

// Enabled reports whether Logf will write anything.
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled && logger != nil
}

// Logf writes one formatted line to the debug log. No-op unless Init
// found ARETE_DEBUG set.
func Logf(format string, args ...any) {
	mu.Lock()
	l := logger
	on := enabled
	mu.Unlock()

	if !on || l == nil {
		return
	}
	l.Output(2, fmt.Sprintf(format, args...))
}
