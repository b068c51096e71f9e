package appcontext

import (
	"io"
	"os"
	"time"

	"github.com/RoyceAzure/lab/ordercenter/internal/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// NewLogger debug 環境輸出 console 格式，其餘輸出 JSON
func NewLogger(cf *config.Config, out io.Writer) zerolog.Logger {
	if out == nil {
		out = os.Stdout
	}
	zerolog.TimeFieldFormat = time.RFC3339Nano
	if cf.IsDebug() {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	SetLogLevel(cf.LogLevel)
	logger := zerolog.New(out).With().Timestamp().Str("service", "ordercenter").Logger()
	log.Logger = logger
	return logger
}

// SetLogLevel 無法解析時維持 info
func SetLogLevel(level string) {
	lv, err := zerolog.ParseLevel(level)
	if err != nil || lv == zerolog.NoLevel {
		lv = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lv)
}
