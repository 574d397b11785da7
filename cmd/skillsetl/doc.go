// Package main hosts the skillsetl CLI entrypoint and command graph.
//
// The Cobra command tree maps stage2, stage3 and run onto the pipeline
// runner, and exposes configuration scaffolding and the run history. It
// centralizes configuration resolution and logger setup so subcommands only
// deal with arguments and output. Errors are mapped to exit codes by class.
package main
