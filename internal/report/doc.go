// Package report renders validation and apply results.
//
// Three formats are supported:
//   - text: styled terminal output (lipgloss, plain when not a TTY)
//   - json: structured output for scripts
//   - markdown: for pasting into issues and reviews
//
// Writers implement the Writer interface and are chosen with NewWriter.
package report
