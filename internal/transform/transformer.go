package transform

import (
	"context"
	"fmt"

	"skillsetl/internal/extract"
	"skillsetl/internal/tsv"
)

// contextCheckInterval is how often (in rows) transformers check for cancellation.
const contextCheckInterval = 1000

// Transformer converts one source export into stage-2 tables.
type Transformer interface {
	// Source is the base file name the transformer is registered for.
	Source() string
	// Tables lists the tables the transformer writes, in order.
	Tables() []tsv.Table
	// Transform reads src and writes rows through set. The caller commits.
	Transform(ctx context.Context, src string, set *tsv.Set) error
}

// TableResult summarizes one written table.
type TableResult struct {
	Name string
	Path string
	Rows int
}

// Result summarizes one transformed source file.
type Result struct {
	Source string
	// Skipped is set for recognized files that are intentionally not processed.
	Skipped bool
	Tables  []TableResult
}

// Apply routes src to its transformer and writes the resulting tables into
// outDir. Tables are only promoted when the whole file transformed cleanly.
func Apply(ctx context.Context, src, outDir string) (Result, error) {
	t, err := Route(src)
	if err != nil {
		return Result{}, err
	}
	result := Result{Source: t.Source()}
	if len(t.Tables()) == 0 {
		result.Skipped = true
		return result, nil
	}

	set := tsv.NewSet(outDir)
	defer set.Abort()

	if err := t.Transform(ctx, src, set); err != nil {
		return Result{}, err
	}
	if err := set.Commit(); err != nil {
		return Result{}, err
	}
	for _, w := range set.Writers() {
		result.Tables = append(result.Tables, TableResult{Name: w.Table().Name, Path: w.Path(), Rows: w.Rows()})
	}
	return result, nil
}

// eachRecord streams src with periodic cancellation checks and an exact
// column count applied to every row.
func eachRecord(ctx context.Context, src string, opts extract.Options, fields int, fn func(extract.Record) error) error {
	n := 0
	return extract.Each(src, opts, func(rec extract.Record) error {
		if n%contextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("cancelled at %s line %d: %w", rec.Source, rec.Line, err)
			}
		}
		n++
		if err := rec.RequireExactly(fields); err != nil {
			return err
		}
		return fn(rec)
	})
}

func createAll(set *tsv.Set, tables ...tsv.Table) ([]*tsv.Writer, error) {
	writers := make([]*tsv.Writer, 0, len(tables))
	for _, table := range tables {
		w, err := set.Create(table)
		if err != nil {
			return nil, err
		}
		writers = append(writers, w)
	}
	return writers, nil
}
