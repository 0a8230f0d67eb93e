package config

import (
	"github.com/rs/zerolog"

	"github.com/Belphemur/ShowShelf/internal/kvstore"
)

type storeLogger struct {
	logger zerolog.Logger
}

func (l storeLogger) Error(msg string, err error) {
	l.logger.Error().Err(err).Msg(msg)
}

// StoreLogger adapts the application logger to kvstore.Logger.
func StoreLogger() kvstore.Logger {
	return storeLogger{logger: GetLogger().With().Str("component", "kvstore").Logger()}
}
