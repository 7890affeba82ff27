package bot

import "go.uber.org/zap/zapcore"

func parseLevel(s string) (zapcore.Level, error) {
	var level zapcore.Level
	if s == "" {
		return zapcore.ErrorLevel, nil
	}
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return zapcore.ErrorLevel, err
	}
	return level, nil
}
