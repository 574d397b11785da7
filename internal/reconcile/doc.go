// Package reconcile implements stage 3: it joins the stage-2 tables on
// occupation code, swaps natural keys for generated ones and writes the
// load-ready tables into a separate output directory.
//
// Lookups are built fully in memory before any output is written, and every
// output table is promoted together once all of them are complete.
package reconcile
