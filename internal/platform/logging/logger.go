package logging

import (
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"pulse/internal/requestctx"
)

type Logger struct {
	*logrus.Entry
}

// New builds the process logger. Development gets a readable text format,
// everything else logs JSON so the lines can be shipped as-is.
func New(environment, level, format string) *Logger {
	return NewWithOutput(os.Stdout, environment, level, format)
}

func NewWithOutput(out io.Writer, environment, level, format string) *Logger {
	base := logrus.New()
	base.SetOutput(out)

	if format == "" {
		format = "json"
		if environment == "" || environment == "development" || environment == "local" {
			format = "text"
		}
	}
	if strings.EqualFold(format, "text") {
		base.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339Nano,
		})
	} else {
		base.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
		})
	}

	switch strings.ToLower(level) {
	case "debug":
		base.SetLevel(logrus.DebugLevel)
	case "warn":
		base.SetLevel(logrus.WarnLevel)
	case "error":
		base.SetLevel(logrus.ErrorLevel)
	default:
		base.SetLevel(logrus.InfoLevel)
	}

	return &Logger{Entry: logrus.NewEntry(base)}
}

// WithRequest attaches request metadata and returns an entry.
func (l *Logger) WithRequest(r *http.Request) *logrus.Entry {
	return l.WithFields(logrus.Fields{
		"requestId": requestctx.GetRequestID(r.Context()),
		"method":    r.Method,
		"path":      r.URL.Path,
	})
}

func (l *Logger) WithError(err error) *logrus.Entry {
	if err == nil {
		return l.Entry
	}
	return l.Entry.WithField("err", err.Error())
}
