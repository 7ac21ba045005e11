package wdfsdk

import (
	"log"
	"os"
	"sync"

	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

// Logger is the SDK's logging surface. The dispatcher core never logs as
// policy; only debug traces and the simulated host use it. Hosts should
// provide a structured logger in production.
type Logger interface {
	Debug(msg string, kv ...any)
	Info(msg string, kv ...any)
	Warn(msg string, kv ...any)
	Error(msg string, kv ...any)
}

// NewStdLogger returns a simple Logger backed by the standard library log
// package. Useful for local driver development.
func NewStdLogger() Logger {
	l := log.New(os.Stdout, "", log.LstdFlags|log.Lmicroseconds)
	return &stdLogger{l: l}
}

type stdLogger struct {
	l  *log.Logger
	mu sync.Mutex
}

func (s *stdLogger) Debug(msg string, kv ...any) { s.printf("DEBUG", msg, kv...) }
func (s *stdLogger) Info(msg string, kv ...any)  { s.printf("INFO", msg, kv...) }
func (s *stdLogger) Warn(msg string, kv ...any)  { s.printf("WARN", msg, kv...) }
func (s *stdLogger) Error(msg string, kv ...any) { s.printf("ERROR", msg, kv...) }

func (s *stdLogger) printf(level, msg string, kv ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(kv) == 0 {
		s.l.Printf("%s %s", level, msg)
		return
	}
	s.l.Printf("%s %s %v", level, msg, kv)
}

// NewCommonLogger returns a Logger backed by commonlog under the given name.
func NewCommonLogger(name string) Logger {
	return &commonLogger{l: commonlog.GetLogger(name)}
}

type commonLogger struct {
	l commonlog.Logger
}

func (c *commonLogger) Debug(msg string, kv ...any) { c.l.Debug(msg, kv...) }
func (c *commonLogger) Info(msg string, kv ...any)  { c.l.Info(msg, kv...) }
func (c *commonLogger) Warn(msg string, kv ...any)  { c.l.Warning(msg, kv...) }
func (c *commonLogger) Error(msg string, kv ...any) { c.l.Error(msg, kv...) }

// NewNopLogger returns a Logger that discards everything.
func NewNopLogger() Logger { return nopLogger{} }

type nopLogger struct{}

func (nopLogger) Debug(msg string, kv ...any) {}
func (nopLogger) Info(msg string, kv ...any)  {}
func (nopLogger) Warn(msg string, kv ...any)  {}
func (nopLogger) Error(msg string, kv ...any) {}
