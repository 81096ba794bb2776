// Package logging configures structured logging for ignorelib.
//
// By default only warnings and errors reach stderr as text. With --debug,
// JSON logs are additionally written to ~/.ignorelib/logs/ignorelib.log with
// size-based rotation, so rule loading can be traced after the fact.
package logging
