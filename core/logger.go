package core

// Logger is any service that can log application events.
// expected args fmt: error, map[string]interface{}, user record...
type Logger interface {
	Enable(enabled bool)
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}

// Notifier displays transient user-facing notices.
type Notifier interface {
	Success(msg string)
	Info(msg string)
	Error(msg string)
}
