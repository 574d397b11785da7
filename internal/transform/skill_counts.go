package transform

import (
	"context"

	"skillsetl/internal/extract"
	"skillsetl/internal/keygen"
	"skillsetl/internal/tsv"
)

// skillCounts turns job2skill_column_skill_index.tsv into per-occupation skill
// counts. Columns: [3] occupation code, [5] skill name, [6] count.
type skillCounts struct{}

func (skillCounts) Source() string { return "job2skill_column_skill_index.tsv" }

func (skillCounts) Tables() []tsv.Table { return []tsv.Table{SkillCountsTable} }

func (skillCounts) Transform(ctx context.Context, src string, set *tsv.Set) error {
	out, err := set.Create(SkillCountsTable)
	if err != nil {
		return err
	}
	opts := extract.Options{Delimiter: extract.Tab, Header: true}
	return eachRecord(ctx, src, opts, 7, func(rec extract.Record) error {
		code, name, count := rec.Field(3), rec.Field(5), rec.Field(6)
		return out.Write(code, keygen.Key(name), name, count)
	})
}
