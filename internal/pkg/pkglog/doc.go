// Package pkglog contains logging helpers used across the application.
//
// It is built around slog (with a charmbracelet console handler for local runs) and keeps logs consistent by:
//   - Initializing a JSON handler with stable keys.
//   - Attaching request correlation IDs (when present) to each log record.
package pkglog
