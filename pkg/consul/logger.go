package consul

// Logger interface for client logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// NopLogger discards everything. It is the default when Config.Logger is nil.
type NopLogger struct{}

// Debug implements Logger.
func (NopLogger) Debug(string, map[string]interface{}) {}

// Info implements Logger.
func (NopLogger) Info(string, map[string]interface{}) {}

// Warn implements Logger.
func (NopLogger) Warn(string, map[string]interface{}) {}

// Error implements Logger.
func (NopLogger) Error(string, map[string]interface{}) {}
