package logger

import (
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

// logFile is kept open for the life of the process
var logFile *os.File

func Init() error {
	return InitWithLevel("info")
}

func InitWithLevel(logLevel string) error {
	return InitWithConfig(logLevel, "options-screener.log")
}

// InitWithConfig configures the standard logrus logger. Output goes to stderr
// and, when logFilePath is set, to that file as well.
func InitWithConfig(logLevel, logFilePath string) error {
	var out io.Writer = os.Stderr

	if logFilePath != "" {
		f, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return err
		}
		if logFile != nil {
			logFile.Close()
		}
		logFile = f
		out = io.MultiWriter(os.Stderr, f)
	}

	log.SetOutput(out)
	log.SetLevel(ParseLevel(logLevel))
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return nil
}

// ParseLevel maps the config level names onto logrus levels.
// "verbose" is the noisiest level and maps to trace. Unknown names fall back to info.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "error":
		return log.ErrorLevel
	case "warn", "warning":
		return log.WarnLevel
	case "info":
		return log.InfoLevel
	case "debug":
		return log.DebugLevel
	case "verbose", "trace":
		return log.TraceLevel
	default:
		return log.InfoLevel
	}
}

// Close flushes and closes the log file if one was opened
func Close() error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}
