package combat

import "sync/atomic"

// debugEnabled: флаг для отладочного логирования на горячем пути.
var debugEnabled atomic.Bool

// EnableDebugLogging включает/выключает отладочные логи атак.
func EnableDebugLogging(enabled bool) {
	debugEnabled.Store(enabled)
}

// IsDebugEnabled возвращает текущее состояние флага.
func IsDebugEnabled() bool {
	return debugEnabled.Load()
}
