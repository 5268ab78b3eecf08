package logging

// NopLogger discards all log messages. Components fall back to it when no
// logger is configured.
type NopLogger struct{}

var _ Logger = (*NopLogger)(nil)

func NewNop() *NopLogger {
	return &NopLogger{}
}

func (n *NopLogger) Debug(_ /* msg */ string, _ /* keysAndValues */ ...any) {}

func (n *NopLogger) Info(_ /* msg */ string, _ /* keysAndValues */ ...any) {}

func (n *NopLogger) Warn(_ /* msg */ string, _ /* keysAndValues */ ...any) {}

func (n *NopLogger) Error(_ /* msg */ string, _ /* keysAndValues */ ...any) {}

// OrNop returns l, or a NopLogger when l is nil.
func OrNop(l Logger) Logger {
	if l == nil {
		return NewNop()
	}
	return l
}
