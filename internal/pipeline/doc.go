// Package pipeline runs the stages against configured directories.
//
// A Runner owns one run ID for its lifetime. Each stage checks its
// directories, takes an advisory lock on the directory it writes, records
// itself in the ledger, and logs one line per table it promotes. Stage 2
// validates every input file before transforming any of them.
package pipeline
