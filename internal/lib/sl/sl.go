// Package sl содержит мелкие помощники для логгера slog.
package sl

import "log/slog"

// Err упаковывает ошибку в атрибут с ключом "error", чтобы все
// обработчики и сервисы логировали ошибки единообразно:
//
//	log.Error("failed to create meeting", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}
