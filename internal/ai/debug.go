package ai

import "sync/atomic"

// debugLoggingEnabled guards chase/return debug logs on the tick hot path.
// Set once from main according to log_level.
var debugLoggingEnabled atomic.Bool

// EnableDebugLogging toggles controller debug logs.
func EnableDebugLogging(enabled bool) {
	debugLoggingEnabled.Store(enabled)
}

// IsDebugEnabled reports whether controller debug logs are on:
//
//	if ai.IsDebugEnabled() {
//	    slog.Debug("chase started", "target", target.Object().Name())
//	}
func IsDebugEnabled() bool {
	return debugLoggingEnabled.Load()
}
