// Package logging provides concrete implementations of the pi.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: Writes leveled, colorized lines through log/slog and a tint handler
//   - NullLogger: Drops every message; lets an Executor run silently
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
