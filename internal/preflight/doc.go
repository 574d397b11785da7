// Package preflight checks the filesystem paths skillsetl depends on before a
// stage touches them.
//
// These checks run in two contexts:
//   - The pipeline runner checks the directories a stage reads and writes
//     before taking its lock, so a doomed run fails before any output is staged.
//   - The CLI "config validate" command prints every check as a table.
package preflight
