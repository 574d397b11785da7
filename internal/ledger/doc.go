// Package ledger records stage runs in a SQLite database so operators can
// see what ran, against which directories, and how many rows each table got.
//
// A nil *Ledger is valid and records nothing; callers use it when the ledger
// is disabled in configuration.
package ledger
