package core

// Logger is any service that can log (and report) events.
// args may hold errors, map[string]interface{} extras or the *http.Request being served.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
