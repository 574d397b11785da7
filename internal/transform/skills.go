package transform

import (
	"context"

	"skillsetl/internal/extract"
	"skillsetl/internal/keygen"
	"skillsetl/internal/tsv"
)

// skills de-duplicates skills_master_table.tsv into a skills master and a
// skill-to-occupation link table. Columns: [1] occupation code, [3] skill
// name, [4] description.
type skills struct{}

func (skills) Source() string { return "skills_master_table.tsv" }

func (skills) Tables() []tsv.Table { return []tsv.Table{SkillsMasterTable, JobsSkillsTable} }

func (s skills) Transform(ctx context.Context, src string, set *tsv.Set) error {
	writers, err := createAll(set, s.Tables()...)
	if err != nil {
		return err
	}
	master, links := writers[0], writers[1]

	seen := make(map[string]struct{})
	opts := extract.Options{Delimiter: extract.Tab, Header: true}
	return eachRecord(ctx, src, opts, 5, func(rec extract.Record) error {
		code, name, description := rec.Field(1), rec.Field(3), rec.Field(4)
		key := keygen.Key(name)
		if _, dup := seen[key]; !dup {
			seen[key] = struct{}{}
			if err := master.Write(key, name, description); err != nil {
				return err
			}
		}
		return links.Write(key, code)
	})
}

// ignored is a recognized source that is intentionally not processed.
type ignored struct {
	source string
}

func (i ignored) Source() string { return i.source }

func (ignored) Tables() []tsv.Table { return nil }

func (ignored) Transform(context.Context, string, *tsv.Set) error { return nil }
