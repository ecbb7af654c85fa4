// Package logging builds the zap logger that carries both diagnostics and
// the human-readable report text.
package logging

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Options struct {
	// Verbose enables debug output and prefixes console lines with time and level.
	Verbose bool
	// FilePath, when set, also writes JSON lines to a rotated log file.
	FilePath string
	// Console defaults to os.Stdout.
	Console io.Writer
}

// New returns a logger writing plain report lines to the console and,
// optionally, structured JSON to a rotated file.
func New(opts Options) *zap.Logger {
	level := zapcore.InfoLevel
	if opts.Verbose {
		level = zapcore.DebugLevel
	}
	console := opts.Console
	if console == nil {
		console = os.Stdout
	}

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleEncoderConfig(opts.Verbose)), zapcore.AddSync(console), level),
	}
	if opts.FilePath != "" {
		fileWriter := zapcore.AddSync(&lumberjack.Logger{
			Filename:   opts.FilePath,
			MaxSize:    50,
			MaxBackups: 7,
			MaxAge:     30,
			Compress:   true,
		})
		fileCore := zapcore.NewCore(zapcore.NewJSONEncoder(fileEncoderConfig()), fileWriter, zapcore.DebugLevel)
		cores = append(cores, fileCore.With([]zapcore.Field{zap.String("app", "ado-policy-report")}))
	}

	return zap.New(zapcore.NewTee(cores...))
}

func consoleEncoderConfig(verbose bool) zapcore.EncoderConfig {
	cfg := zapcore.EncoderConfig{
		MessageKey:     "message",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
	if verbose {
		cfg.TimeKey = "timestamp"
		cfg.LevelKey = "level"
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return cfg
}

func fileEncoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "timestamp"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.MessageKey = "message"
	cfg.LevelKey = "level"
	return cfg
}
