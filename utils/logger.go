package utils

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Ready before InitLogger runs so packages used from tests can log.
var (
	InfoLogger  = newLogger(os.Stdout, logrus.InfoLevel)
	ErrorLogger = newLogger(os.Stderr, logrus.WarnLevel)
)

func newLogger(out *os.File, level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	l.SetLevel(level)
	return l
}

// InitLogger resets both loggers. level is a logrus level name ("debug",
// "info", ...); unknown or empty values keep info.
func InitLogger(level string) {
	InfoLogger = newLogger(os.Stdout, logrus.InfoLevel)
	ErrorLogger = newLogger(os.Stderr, logrus.WarnLevel)

	if lvl, err := logrus.ParseLevel(level); err == nil && level != "" {
		InfoLogger.SetLevel(lvl)
	}
}
