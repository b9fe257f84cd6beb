// Package pkgroutine contains helpers for running work safely.
//
// The Manager type limits concurrency and turns panics into errors so that a
// misbehaving task does not crash the process silently.
package pkgroutine
