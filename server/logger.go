package server

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is the process-wide SugaredLogger. It discards output until
// InitLogger is called.
var Log = zap.NewNop().Sugar()

// NewFileLogger builds a zap logger writing console-encoded lines into a
// rolling file (10MB per file, 3 backups, 7 days).
func NewFileLogger(filePath string, level zapcore.Level) *zap.Logger {
	lj := &lumberjack.Logger{
		Filename:   filePath,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     7, // days
		Compress:   false,
	}

	ws := zapcore.AddSync(lj)
	encCfg := zapcore.EncoderConfig{
		TimeKey:       "ts",
		LevelKey:      "level",
		NameKey:       "logger",
		CallerKey:     "caller",
		MessageKey:    "msg",
		StacktraceKey: "stack",
		LineEnding:    zapcore.DefaultLineEnding,
		EncodeLevel:   zapcore.CapitalLevelEncoder,
		EncodeTime:    zapcore.ISO8601TimeEncoder,
		EncodeCaller:  zapcore.ShortCallerEncoder,
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), ws, level)
	return zap.New(core, zap.AddCaller())
}

// InitLogger points Log at a rolling file, e.g. "app.log"
func InitLogger(filePath string, debug bool) *zap.Logger {
	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}
	logger := NewFileLogger(filePath, level)
	Log = logger.Sugar()
	return logger
}

// SyncLogger flushes buffered entries
func SyncLogger() {
	if Log != nil {
		_ = Log.Sync()
	}
}
