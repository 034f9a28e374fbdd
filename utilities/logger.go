package utilities

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the process-wide logger used by every package.
var Logger = logrus.New()

// CustomFormatter writes one flat line per entry.
type CustomFormatter struct {
	SystemName string
}

func (f *CustomFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b *bytes.Buffer
	if entry.Buffer != nil {
		b = entry.Buffer
	} else {
		b = &bytes.Buffer{}
	}

	b.WriteString(fmt.Sprintf("Date: %s, Time: %s, ", entry.Time.Format("2006-01-02"), entry.Time.Format("15:04:05.000")))
	b.WriteString(fmt.Sprintf("Event Source: %s, ", f.SystemName))
	b.WriteString(fmt.Sprintf("Event Type: %s, ", strings.ToUpper(entry.Level.String())))
	if id, ok := entry.Data["request_id"]; ok {
		b.WriteString(fmt.Sprintf("Request ID: %v, ", id))
	}
	b.WriteString(fmt.Sprintf("Message: %s", entry.Message))
	if err, ok := entry.Data[logrus.ErrorKey]; ok {
		b.WriteString(fmt.Sprintf(", Error: %v", err))
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}

// InitLogger configures level and outputs. An empty file keeps stdout only.
func InitLogger(level, file string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var out io.Writer = os.Stdout
	if file != "" {
		out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   file,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
			Compress:   true,
		})
	}

	Logger.SetOutput(out)
	Logger.SetFormatter(&CustomFormatter{SystemName: "taskboard"})
	Logger.SetLevel(lvl)
	return nil
}

// LogRequest registers one HTTP request.
func LogRequest(method, path, remoteAddr string, status int, duration time.Duration, requestID string) {
	Logger.WithField("request_id", requestID).Infof("%s %s %s %d %v", method, path, remoteAddr, status, duration)
}

// LogError registers err with the operation it happened in.
func LogError(err error, context string) {
	Logger.WithError(err).Error(context)
}

func LogWarn(format string, v ...interface{}) {
	Logger.Warnf(format, v...)
}

func LogDebug(format string, v ...interface{}) {
	Logger.Debugf(format, v...)
}

func LogInfo(format string, v ...interface{}) {
	Logger.Infof(format, v...)
}
