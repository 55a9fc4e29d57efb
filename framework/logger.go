package framework

import (
	"bytes"
	"fmt"
	"io"
	"sync"
	"time"
)

const timestampFormat = "2006-01-02 15:04:05.000"

type Logger interface {
	Printf(message string, args ...interface{})
}

type nullLogger struct{}

func (n nullLogger) Printf(message string, args ...interface{}) {}

func NullLogger() Logger { return nullLogger{} }

// WriterLogger returns a Logger that writes each message as one line to the specified writer.
func WriterLogger(w io.Writer) Logger {
	return &writerLogger{w: w}
}

type writerLogger struct {
	w    io.Writer
	lock sync.Mutex
}

func (l *writerLogger) Printf(message string, args ...interface{}) {
	l.lock.Lock()
	fmt.Fprintf(l.w, message+"\n", args...)
	l.lock.Unlock()
}

type CapturedMessage struct {
	Time    time.Time
	Message string
}

type CapturedOutput []CapturedMessage

type CapturingLogger struct {
	output []CapturedMessage
	lock   sync.Mutex
}

func (l *CapturingLogger) Printf(message string, args ...interface{}) {
	l.lock.Lock()
	l.output = append(l.output, CapturedMessage{Time: time.Now(), Message: fmt.Sprintf(message, args...)})
	l.lock.Unlock()
}

func (l *CapturingLogger) Output() CapturedOutput {
	l.lock.Lock()
	ret := append([]CapturedMessage(nil), l.output...)
	l.lock.Unlock()
	return ret
}

func (output CapturedOutput) Dump(dest io.Writer, prefix string) {
	for _, m := range output {
		fmt.Fprintf(dest, "%s[%s] %s\n",
			prefix,
			m.Time.Format(timestampFormat),
			m.Message,
		)
	}
}

// LineWriter is an io.Writer that splits whatever is written to it into lines and passes each
// complete line to a Logger with a fixed prefix. It is used for subprocess stdout/stderr.
type LineWriter struct {
	logger  Logger
	prefix  string
	partial []byte
	lock    sync.Mutex
}

func NewLineWriter(logger Logger, prefix string) *LineWriter {
	if logger == nil {
		logger = NullLogger()
	}
	return &LineWriter{logger: logger, prefix: prefix}
}

func (w *LineWriter) Write(p []byte) (int, error) {
	w.lock.Lock()
	defer w.lock.Unlock()
	w.partial = append(w.partial, p...)
	for {
		i := bytes.IndexByte(w.partial, '\n')
		if i < 0 {
			break
		}
		line := bytes.TrimRight(w.partial[:i], "\r")
		w.logger.Printf("%s %s", w.prefix, line)
		w.partial = w.partial[i+1:]
	}
	return len(p), nil
}

// Flush logs any trailing text that was not terminated by a newline.
func (w *LineWriter) Flush() {
	w.lock.Lock()
	defer w.lock.Unlock()
	if len(w.partial) > 0 {
		w.logger.Printf("%s %s", w.prefix, w.partial)
		w.partial = nil
	}
}
