package log

import (
	"context"
	"fmt"
	"log/slog"
)

const (
	// slogLevelTrace sits below 'slog.LevelDebug' in the same way 'LevelTrace' sits below 'LevelDebug'.
	slogLevelTrace = slog.LevelDebug - 4

	// slogLevelPanic sits above 'slog.LevelError'.
	slogLevelPanic = slog.LevelError + 4
)

// SlogLogger is a 'Logger' which writes to a structured 'slog.Logger'.
type SlogLogger struct {
	l *slog.Logger
}

var _ Logger = (*SlogLogger)(nil)

// NewSlogLogger returns a 'Logger' which formats each message and writes it to l. A nil l uses 'slog.Default'.
func NewSlogLogger(l *slog.Logger) *SlogLogger {
	if l == nil {
		l = slog.Default()
	}

	return &SlogLogger{l: l}
}

// Log formats the message and writes it at the matching slog level.
func (s *SlogLogger) Log(level Level, format string, args ...any) {
	s.l.Log(context.Background(), SlogLevel(level), fmt.Sprintf(format, args...))
}

// SlogLevel returns the 'slog.Level' for the given level.
func SlogLevel(level Level) slog.Level {
	switch level {
	case LevelTrace:
		return slogLevelTrace
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarning:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	}

	return slogLevelPanic
}

// UserDataValue is a string that should be treated as user data, and therefore tagged as such in the logs.
type UserDataValue string

// LogValue implements 'slog.LogValuer'.
func (u UserDataValue) LogValue() slog.Value {
	return slog.StringValue(TagUserData(string(u)))
}

// String implements 'fmt.Stringer' so user data is also tagged when used with the formatting functions above.
func (u UserDataValue) String() string {
	return TagUserData(string(u))
}

// UserData returns an Attr for a string value that should be treated as user data.
func UserData(key, value string) slog.Attr {
	return slog.Attr{Key: key, Value: UserDataValue(value).LogValue()}
}

// TagUserData surrounds the given value with the <ud></ud> tags.
func TagUserData(value string) string {
	return "<ud>" + value + "</ud>"
}
