// Package etlerr classifies pipeline failures.
//
// Every error that leaves a stage carries exactly one marker (configuration,
// data integrity or I/O) so the CLI can pick an exit code and operators can
// tell a bad invocation from bad upstream data. Row-level problems use
// RowError, which names the file and the 1-based line.
package etlerr
