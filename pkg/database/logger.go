package database

import (
	"context"
	"errors"
	"time"

	"github.com/homeledger/backend/pkg/models"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gorm_logger "gorm.io/gorm/logger"
)

// logger adapts gorm's logger interface to zerolog.
//
// Errors that the ledger translates into a *models.StoreError, as well as
// gorm.ErrRecordNotFound, are returned to the caller and only traced at debug
// level. Everything else is logged as a query error.
type logger struct {
	Logger zerolog.Logger
	Level  gorm_logger.LogLevel // Zero means gorm_logger.Info
}

func (l *logger) LogMode(level gorm_logger.LogLevel) gorm_logger.Interface {
	c := *l
	c.Level = level
	return &c
}

func (l *logger) level() gorm_logger.LogLevel {
	if l.Level == 0 {
		return gorm_logger.Info
	}
	return l.Level
}

func (l *logger) Info(_ context.Context, s string, args ...interface{}) {
	if l.level() >= gorm_logger.Info {
		l.Logger.Info().Msgf(s, args...)
	}
}

func (l *logger) Warn(_ context.Context, s string, args ...interface{}) {
	if l.level() >= gorm_logger.Warn {
		l.Logger.Warn().Msgf(s, args...)
	}
}

func (l *logger) Error(_ context.Context, s string, args ...interface{}) {
	if l.level() >= gorm_logger.Error {
		l.Logger.Error().Msgf(s, args...)
	}
}

func (l *logger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level() == gorm_logger.Silent {
		return
	}

	sql, rows := fc()
	fields := map[string]interface{}{
		"sql":      sql,
		"rows":     rows,
		"duration": time.Since(begin),
	}

	var storeErr *models.StoreError
	if err != nil && !errors.As(err, &storeErr) && !errors.Is(err, gorm.ErrRecordNotFound) {
		l.Logger.Error().Err(err).Fields(fields).Msg("[GORM] query error")
		return
	}

	if l.level() >= gorm_logger.Info {
		l.Logger.Debug().Fields(fields).Msg("[GORM] query")
	}
}
