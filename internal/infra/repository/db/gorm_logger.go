package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ZeroGormLogger 將 gorm 的 log 轉接到 zerolog
type ZeroGormLogger struct {
	logger        zerolog.Logger
	level         logger.LogLevel
	slowThreshold time.Duration
}

func NewZeroGormLogger(l zerolog.Logger, slowThreshold time.Duration) *ZeroGormLogger {
	return &ZeroGormLogger{
		logger:        l.With().Str("component", "gorm").Logger(),
		level:         logger.Warn,
		slowThreshold: slowThreshold,
	}
}

func (z *ZeroGormLogger) LogMode(level logger.LogLevel) logger.Interface {
	c := *z
	c.level = level
	return &c
}

func (z *ZeroGormLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if z.level >= logger.Info {
		z.logger.Info().Msg(fmt.Sprintf(msg, args...))
	}
}

func (z *ZeroGormLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if z.level >= logger.Warn {
		z.logger.Warn().Msg(fmt.Sprintf(msg, args...))
	}
}

func (z *ZeroGormLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if z.level >= logger.Error {
		z.logger.Error().Msg(fmt.Sprintf(msg, args...))
	}
}

func (z *ZeroGormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if z.level <= logger.Silent {
		return
	}
	elapsed := time.Since(begin)

	switch {
	// 查無資料由 repo 轉成 domain error，不視為錯誤
	case err != nil && z.level >= logger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		z.logger.Error().Err(err).Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("query failed")
	case z.slowThreshold > 0 && elapsed > z.slowThreshold && z.level >= logger.Warn:
		sql, rows := fc()
		z.logger.Warn().Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("slow query")
	case z.level >= logger.Info:
		sql, rows := fc()
		z.logger.Debug().Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("query")
	}
}

var _ logger.Interface = (*ZeroGormLogger)(nil)
