package scalar

import "log/slog"

var logger *slog.Logger

// SetLogger routes backward-pass diagnostics to l. Passing nil restores
// slog.Default().
func SetLogger(l *slog.Logger) {
	logger = l
}

func Logger() *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
