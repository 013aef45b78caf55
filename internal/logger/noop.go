package logger

// NoopLogger implements Interface and discards everything. Used in tests.
type NoopLogger struct{}

// NewNoop creates a logger that discards all output.
func NewNoop() Interface { return &NoopLogger{} }

func (n *NoopLogger) Debug(msg string, fields ...any) {}
func (n *NoopLogger) Info(msg string, fields ...any)  {}
func (n *NoopLogger) Warn(msg string, fields ...any)  {}
func (n *NoopLogger) Error(msg string, fields ...any) {}
func (n *NoopLogger) Fatal(msg string, fields ...any) {}
func (n *NoopLogger) With(fields ...any) Interface    { return n }
func (n *NoopLogger) Sync() error                     { return nil }
