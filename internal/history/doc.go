// Package history persists one row per pipeline run in SQLite for the
// status and history commands.
//
// The digest file under internal/digest remains the authoritative
// change-detection state; this database is diagnostics only, so deleting it
// never changes build behaviour. Schema changes bump the version in
// schema.go.
package history
