// Package pkguid provides helpers for generating unique identifiers.
//
// The codebase uses these interfaces to avoid hard-coding a specific UID
// strategy:
//   - String IDs (UUIDs) tag each request with a correlation ID.
//   - Numeric IDs (Snowflake) tag each processed upload.
package pkguid
