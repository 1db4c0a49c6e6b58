//go:build !windows

package debug

import (
	"log/slog"
	"time"
)

// StartMemLogger is a no-op outside windows; RSS is queried via psapi.
func StartMemLogger(interval time.Duration, logger *slog.Logger) {}
