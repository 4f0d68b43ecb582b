package logger

import (
	"os"

	"github.com/sirupsen/logrus"

	"caption-studio-server/config"
)

// Logger starts as a plain logrus logger so packages can log before
// InitLogger runs.
var Logger = logrus.New()

const timestampFormat = "2006-01-02 15:04:05"

func InitLogger(cfg *config.Config) {
	Logger = logrus.New()

	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	Logger.SetLevel(level)
	Logger.SetFormatter(newFormatter(cfg.Log.Format))
	Logger.SetOutput(os.Stdout)
}

func newFormatter(format string) logrus.Formatter {
	if format == "json" {
		return &logrus.JSONFormatter{
			TimestampFormat: timestampFormat,
		}
	}
	return &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: timestampFormat,
	}
}

func Info(args ...interface{}) {
	Logger.Info(args...)
}

func Infof(format string, args ...interface{}) {
	Logger.Infof(format, args...)
}

func Warn(args ...interface{}) {
	Logger.Warn(args...)
}

func Warnf(format string, args ...interface{}) {
	Logger.Warnf(format, args...)
}

func Error(args ...interface{}) {
	Logger.Error(args...)
}

func Errorf(format string, args ...interface{}) {
	Logger.Errorf(format, args...)
}

func Fatal(args ...interface{}) {
	Logger.Fatal(args...)
}

func Fatalf(format string, args ...interface{}) {
	Logger.Fatalf(format, args...)
}

func Debug(args ...interface{}) {
	Logger.Debug(args...)
}

func Debugf(format string, args ...interface{}) {
	Logger.Debugf(format, args...)
}

func WithFields(fields logrus.Fields) *logrus.Entry {
	return Logger.WithFields(fields)
}

// WithSession tags an entry with the editing session it belongs to.
func WithSession(sessionID string) *logrus.Entry {
	return Logger.WithField("session_id", sessionID)
}

// WithJob tags an entry with an export job and its session.
func WithJob(sessionID, jobID string) *logrus.Entry {
	return Logger.WithFields(logrus.Fields{
		"session_id": sessionID,
		"job_id":     jobID,
	})
}
