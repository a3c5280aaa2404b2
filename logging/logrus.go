package logging

import (
	"maps"

	"github.com/sirupsen/logrus"
)

// LogrusLogger adapts a logrus.Logger to the library's Logger interface.
// This lets applications that already run logrus route library output
// through their existing formatters and hooks.
type LogrusLogger struct {
	logger *logrus.Logger
	fields Fields
}

// NewLogrusLogger wraps an existing logrus logger. A nil argument gets the
// logrus standard logger.
func NewLogrusLogger(logger *logrus.Logger) *LogrusLogger {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &LogrusLogger{
		logger: logger,
		fields: make(Fields),
	}
}

func (l *LogrusLogger) entry(fields ...Fields) *logrus.Entry {
	allFields := make(logrus.Fields, len(l.fields))
	for k, v := range l.fields {
		allFields[k] = v
	}
	for _, f := range fields {
		for k, v := range f {
			allFields[k] = v
		}
	}
	return l.logger.WithFields(allFields)
}

func (l *LogrusLogger) Debug(msg string, fields ...Fields) {
	l.entry(fields...).Debug(msg)
}

func (l *LogrusLogger) Info(msg string, fields ...Fields) {
	l.entry(fields...).Info(msg)
}

func (l *LogrusLogger) Warn(msg string, fields ...Fields) {
	l.entry(fields...).Warn(msg)
}

func (l *LogrusLogger) Error(err error, msg string, fields ...Fields) {
	l.entry(fields...).WithError(err).Error(msg)
}

func (l *LogrusLogger) Fatal(err error, msg string, fields ...Fields) {
	l.entry(fields...).WithError(err).Fatal(msg)
}

func (l *LogrusLogger) WithFields(fields Fields) Logger {
	newFields := make(Fields)
	maps.Copy(newFields, l.fields)
	maps.Copy(newFields, fields)
	return &LogrusLogger{logger: l.logger, fields: newFields}
}

func (l *LogrusLogger) SetLevel(level Level) {
	switch level {
	case DebugLevel:
		l.logger.SetLevel(logrus.DebugLevel)
	case InfoLevel:
		l.logger.SetLevel(logrus.InfoLevel)
	case WarnLevel:
		l.logger.SetLevel(logrus.WarnLevel)
	case ErrorLevel:
		l.logger.SetLevel(logrus.ErrorLevel)
	case FatalLevel:
		l.logger.SetLevel(logrus.FatalLevel)
	}
}
