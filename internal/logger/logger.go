package logger

// Logger is the structured logging interface used across the application.
// The component tag identifies the subsystem emitting the entry.
type Logger interface {
	Debug(component, message string, fields map[string]interface{})
	Info(component, message string, fields map[string]interface{})
	Warning(component, message string, fields map[string]interface{})
	Error(component string, err error, fields map[string]interface{})
}

// NopLogger discards every entry. Used in tests and as a safe default.
type NopLogger struct{}

func NewNop() *NopLogger {
	return &NopLogger{}
}

func (n *NopLogger) Debug(component, message string, fields map[string]interface{})   {}
func (n *NopLogger) Info(component, message string, fields map[string]interface{})    {}
func (n *NopLogger) Warning(component, message string, fields map[string]interface{}) {}
func (n *NopLogger) Error(component string, err error, fields map[string]interface{}) {}
