package transform

import (
	"context"

	"skillsetl/internal/extract"
	"skillsetl/internal/tsv"
)

// unusualTitles reorders interesting_job_titles.csv, which has no header and
// is tab separated despite its extension: title, description, occupation code.
type unusualTitles struct{}

func (unusualTitles) Source() string { return "interesting_job_titles.csv" }

func (unusualTitles) Tables() []tsv.Table { return []tsv.Table{UnusualTitlesTable} }

func (unusualTitles) Transform(ctx context.Context, src string, set *tsv.Set) error {
	out, err := set.Create(UnusualTitlesTable)
	if err != nil {
		return err
	}
	opts := extract.Options{Delimiter: extract.Tab}
	return eachRecord(ctx, src, opts, 3, func(rec extract.Record) error {
		title, description, code := rec.Field(0), rec.Field(1), rec.Field(2)
		return out.Write(code, title, description)
	})
}
