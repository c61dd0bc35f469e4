package logging

import "github.com/vvka-141/pi-go/pkg/pi"

var _ pi.Logger = NullLogger{}

// NullLogger silences an Executor without a nil check at every call site.
type NullLogger struct{}

// NewNullLogger returns a logger that drops every message.
func NewNullLogger() NullLogger { return NullLogger{} }

func (NullLogger) Verbose(string, ...interface{}) {}
func (NullLogger) Info(string, ...interface{})    {}
func (NullLogger) Error(string, ...interface{})   {}
