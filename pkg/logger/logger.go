package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"
	_ "time/tzdata"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Badsnus/qr-styler/pkg/logger/types"
)

var (
	Log     *types.Logger
	logHook atomic.Value // types.LogHook
)

// Config represents configuration options for logger initialization
type Config struct {
	Debug     bool   // Enable debug logging
	TimeZone  string // IANA zone name for timestamps, UTC when empty
	LogToFile bool   // Also write JSON lines to a file
	LogsDir   string // Directory for log files, relative to the working directory
	Output    io.Writer
}

// SetLogHook sets a hook function that will be called for each log entry
func SetLogHook(hook types.LogHook) {
	if Log != nil {
		Log.Debug("Log hook set")
	}
	logHook.Store(hook)
}

// Init initializes the global logger
func Init(config Config) error {
	l, err := New(config)
	if err != nil {
		return err
	}
	Log = l
	return nil
}

// New builds a logger named "main" without touching the global one
func New(config Config) (*types.Logger, error) {
	l := &types.Logger{Name: "main"}

	location := time.UTC
	if config.TimeZone != "" {
		loc, err := time.LoadLocation(config.TimeZone)
		if err != nil {
			return nil, fmt.Errorf("invalid time zone %q: %w", config.TimeZone, err)
		}
		location = loc
	}

	encoderConfig := zapcore.EncoderConfig{
		MessageKey:     "message",
		LevelKey:       "level",
		TimeKey:        "timestamp",
		NameKey:        "logger",
		CallerKey:      "caller",
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeTime: func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(t.In(location).Format("2006-01-02 15:04:05"))
		},
	}

	level := zapcore.InfoLevel
	if config.Debug {
		level = zapcore.DebugLevel
	}

	out := config.Output
	consoleEncoderConfig := encoderConfig
	if out == nil {
		out = os.Stdout
		consoleEncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleEncoderConfig), zapcore.Lock(zapcore.AddSync(out)), level),
	}

	if config.LogToFile {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		l.LogsPath = filepath.Join(wd, config.LogsDir)
		if err = os.MkdirAll(l.LogsPath, os.ModePerm); err != nil {
			return nil, err
		}

		logPath := filepath.Join(l.LogsPath, fmt.Sprintf("%s.log", time.Now().In(location).Format("2006-01-02")))
		fileWriter, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(fileWriter), level))
	}

	log := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.Hooks(func(entry zapcore.Entry) error {
		if hook, ok := logHook.Load().(types.LogHook); ok && hook != nil {
			hook(types.Log{
				Timestamp:  entry.Time,
				Caller:     entry.Caller.String(),
				LoggerName: entry.LoggerName,
				Level:      entry.Level,
				Message:    entry.Message,
			})
		}
		return nil
	}))

	l.SugaredLogger = log.Named(l.Name).Sugar()
	return l, nil
}

// Named returns a child of the global logger ("bot", "http", "database", etc.)
func Named(name string) (*types.Logger, error) {
	if Log == nil {
		return nil, fmt.Errorf("logger is not initialized")
	}
	return &types.Logger{
		SugaredLogger: Log.SugaredLogger.Named(name),
		LogsPath:      Log.LogsPath,
		Name:          name,
	}, nil
}

// Nop returns a logger that discards everything. Handy in tests.
func Nop() *types.Logger {
	return &types.Logger{SugaredLogger: zap.NewNop().Sugar(), Name: "nop"}
}
