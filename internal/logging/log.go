package logging

import (
	"fmt"
	"log"
	"os"
)

type Logger interface {
	Error(format string, v ...any)
	Warning(format string, v ...any)
	Info(format string, v ...any)
	Close() error
}

// New opens path for appending and logs there. An empty path yields a
// logger that discards everything, since the viewer owns the terminal.
func New(path string) (Logger, error) {
	if path == "" {
		return NewEmptyLog(), nil
	}
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return &StdLog{
		err:  log.New(file, "ERROR ", log.Ldate|log.Ltime),
		wrn:  log.New(file, "WARN ", log.Ldate|log.Ltime),
		inf:  log.New(file, "INFO ", log.Ldate|log.Ltime),
		file: file,
	}, nil
}

type StdLog struct {
	err, wrn, inf *log.Logger
	file          *os.File
}

func (l *StdLog) Error(format string, v ...any) {
	_ = l.err.Output(2, fmt.Sprintf(format, v...))
}

func (l *StdLog) Warning(format string, v ...any) {
	_ = l.wrn.Output(2, fmt.Sprintf(format, v...))
}

func (l *StdLog) Info(format string, v ...any) {
	_ = l.inf.Output(2, fmt.Sprintf(format, v...))
}

func (l *StdLog) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

type EmptyLog struct{}

func NewEmptyLog() Logger { return EmptyLog{} }

func (EmptyLog) Error(string, ...any)   {}
func (EmptyLog) Warning(string, ...any) {}
func (EmptyLog) Info(string, ...any)    {}
func (EmptyLog) Close() error           { return nil }
