package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Params configures the logger built by Setup.
type Params struct {
	LogFileName   string
	LogToStdout   bool
	LogLevel      string
	LogFormatJSON bool

	// Stdout replaces os.Stdout, mostly for tests.
	Stdout io.Writer
}

// Setup builds a logger from params. With no file name it writes to stdout only;
// with a file name it writes to a rotating file, and also to stdout when LogToStdout
// is set.
func Setup(params Params) *logrus.Logger {
	logger := logrus.New()
	if params.LogFormatJSON {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	logger.SetLevel(GetLevel(params.LogLevel))

	stdout := params.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	if params.LogFileName == "" {
		logger.SetOutput(stdout)
		return logger
	}

	if !strings.HasSuffix(params.LogFileName, ".log") {
		params.LogFileName += ".log"
	}

	lumberJackLogger := &lumberjack.Logger{
		Filename:  params.LogFileName,
		MaxSize:   50,    // megabytes
		LocalTime: false, // false -> use UTC
		Compress:  true,
	}

	if params.LogToStdout {
		logger.SetOutput(NewCombinedWriter(stdout, lumberJackLogger))
	} else {
		logger.SetOutput(lumberJackLogger)
	}

	return logger
}

// GetLevel parses a level name. Unknown names fall back to info.
func GetLevel(level string) logrus.Level {
	switch strings.ToLower(level) {
	case "debug":
		return logrus.DebugLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	case "info":
		return logrus.InfoLevel
	case "trace":
		return logrus.TraceLevel
	case "warn", "warning":
		return logrus.WarnLevel
	default:
		return logrus.InfoLevel
	}
}

// CombinedWriter writes every buffer to all of its writers and keeps going past
// failures, returning them combined.
type CombinedWriter struct {
	Writers []io.Writer
}

func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	cw := &CombinedWriter{}
	cw.Writers = append(cw.Writers, writers...)
	return cw
}

// Write reports len(p) when every writer took all of p. Otherwise it reports the
// shortest write seen, with the failures combined.
func (cw CombinedWriter) Write(p []byte) (n int, err error) {
	n = len(p)
	for _, w := range cw.Writers {
		written, werr := w.Write(p)
		if werr == nil && written < len(p) {
			werr = io.ErrShortWrite
		}
		if werr != nil {
			err = multierr.Append(err, werr)
			n = min(n, written)
		}
	}
	return n, err
}
