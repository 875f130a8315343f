package telemetry

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Config struct {
	Level      string
	JSON       bool
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

var log zerolog.Logger

func Init(cfg Config) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	var console io.Writer = os.Stdout
	if !cfg.JSON {
		console = zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
			w.TimeFormat = time.RFC3339
		})
	}

	writer := console
	if cfg.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    ifZero(cfg.MaxSizeMB, 10),
			MaxBackups: ifZero(cfg.MaxBackups, 3),
			MaxAge:     ifZero(cfg.MaxAgeDays, 28),
			Compress:   cfg.Compress,
		}
		writer = zerolog.MultiLevelWriter(console, rotator)
	}

	l := zerolog.New(writer).With().Timestamp().Logger()

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log = l.Level(level)
	return log
}

func L() *zerolog.Logger { return &log }

func ifZero(v, d int) int {
	if v == 0 {
		return d
	}
	return v
}
