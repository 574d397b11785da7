// Package extract reads delimited flat files into raw, field-split records.
//
// Records keep their 1-based source line so later stages can point operators
// at the exact row that failed. The package does not interpret fields; column
// semantics belong to the transformers.
package extract
