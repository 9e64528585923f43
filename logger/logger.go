package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	InfoLogger  = logrus.New()
	WarnLogger  = logrus.New()
	ErrorLogger = logrus.New()
)

// InitLoggers configures the shared loggers with rotating file output in
// addition to stdout. Safe to call once from main; before that the loggers
// write to stderr with logrus defaults.
func InitLoggers() {
	logDir := os.Getenv("LOG_DIR")
	if logDir == "" {
		logDir = "logs"
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		ErrorLogger.Errorf("Failed to create log directory %s: %v", logDir, err)
		return
	}

	rotator := &lumberjack.Logger{
		Filename:   logDir + "/reservation.log",
		MaxSize:    10, // megabytes
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	}

	out := io.MultiWriter(os.Stdout, rotator)

	for _, l := range []*logrus.Logger{InfoLogger, WarnLogger, ErrorLogger} {
		l.SetOutput(out)
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	InfoLogger.SetLevel(logrus.InfoLevel)
	WarnLogger.SetLevel(logrus.WarnLevel)
	ErrorLogger.SetLevel(logrus.ErrorLevel)
}
