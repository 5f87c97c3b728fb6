package logger

type Logger interface {
	Log(format string, v ...interface{})
	Error(format string, v ...interface{})
	SetPrefix(prefix string)
}

// Discard drops everything. Handy for tests and for components built without a logger.
var Discard Logger = discard{}

type discard struct{}

func (discard) Log(string, ...interface{})   {}
func (discard) Error(string, ...interface{}) {}
func (discard) SetPrefix(string)             {}
