// Package tsv writes the pipeline's tab-separated tables.
//
// Tables are written to hidden temp files next to their destination and only
// renamed into place when the whole Set commits, so a failed run never leaves
// a half-written table where a loader could pick it up.
package tsv
