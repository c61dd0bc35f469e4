package pi

// Logger receives the retry driver's diagnostics: per-attempt retry lines on
// Verbose, recoveries on Info and give-ups on Error. Messages use fmt verbs.
// The same value may be shared by concurrent Execute calls, so
// implementations must be goroutine-safe. Package logging has a slog-backed
// console logger and a no-op one.
type Logger interface {
	Verbose(format string, args ...interface{})
	Info(format string, args ...interface{})
	Error(format string, args ...interface{})
}
