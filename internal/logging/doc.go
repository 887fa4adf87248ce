// Package logging provides concrete implementations of the prepdir.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: Writes prefixed messages to stderr, colored with fatih/color
//     when stderr is a terminal
//   - NullLogger: Discards all messages (useful for testing)
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
