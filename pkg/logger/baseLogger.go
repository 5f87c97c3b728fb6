package logger

import (
	"fmt"
	"io"
	"log"
	"sync"
)

type BaseLogger struct {
	mu     sync.Mutex
	prefix string
	writer io.Writer
	quiet  bool
}

func NewLogger(writer io.Writer, prefix string) *BaseLogger {
	return &BaseLogger{
		writer: writer,
		prefix: prefix,
	}
}

// NewQuietLogger writes only to writer and never mirrors to the standard logger.
func NewQuietLogger(writer io.Writer, prefix string) *BaseLogger {
	return &BaseLogger{writer: writer, prefix: prefix, quiet: true}
}

func (l *BaseLogger) Log(format string, v ...interface{}) {
	l.write("", format, v...)
}

func (l *BaseLogger) Error(format string, v ...interface{}) {
	l.write("ERROR ", format, v...)
}

func (l *BaseLogger) write(level, format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	message := l.prefix + " " + level + fmt.Sprintf(format, v...)
	if l.writer != nil {
		fmt.Fprintln(l.writer, message)
	}
	if !l.quiet {
		log.Print(message)
	}
}

func (l *BaseLogger) WithPrefix(extraPrefix string) *BaseLogger {
	l.mu.Lock()
	defer l.mu.Unlock()
	return &BaseLogger{
		writer: l.writer,
		prefix: l.prefix + " " + extraPrefix,
		quiet:  l.quiet,
	}
}

func (l *BaseLogger) SetPrefix(prefix string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.prefix = prefix
}

func (l *BaseLogger) SetWriter(writer io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.writer = writer
}
