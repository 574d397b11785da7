// Package transform holds the stage-2 transformers and the file router.
//
// Each source export has exactly one transformer, chosen by the file's base
// name. A transformer reads raw records through package extract and writes one
// or two normalized tables keyed by occupation codes and generated keys.
// Column positions in the sources are fixed; they are not discovered from
// headers.
//
// Unknown file names are configuration errors. skills_master.csv is known but
// deliberately produces nothing.
package transform
