package transform

import (
	"context"

	"skillsetl/internal/extract"
	"skillsetl/internal/keygen"
	"skillsetl/internal/tsv"
)

// jobTitles splits job_titles_master_table.tsv into categories and titles.
// Columns: [1] occupation code, [2] title, [3] category title, [4] description.
//
// The first row seen for an occupation code defines that code's category; every
// later row with the same code is a title under it. Row order in the source
// therefore decides which row is canonical, and must not be changed.
type jobTitles struct{}

func (jobTitles) Source() string { return "job_titles_master_table.tsv" }

func (jobTitles) Tables() []tsv.Table { return []tsv.Table{JobsMasterTable, JobsTitlesTable} }

// categoryIndex records occupation codes in encounter order with the category
// key assigned on first sighting.
type categoryIndex struct {
	order []string
	keys  map[string]string
}

func newCategoryIndex() *categoryIndex {
	return &categoryIndex{keys: make(map[string]string)}
}

// classify reports the category key for code and whether this call defined it.
func (c *categoryIndex) classify(code, categoryTitle string) (string, bool) {
	if key, ok := c.keys[code]; ok {
		return key, false
	}
	key := keygen.Key(categoryTitle)
	c.keys[code] = key
	c.order = append(c.order, code)
	return key, true
}

func (j jobTitles) Transform(ctx context.Context, src string, set *tsv.Set) error {
	writers, err := createAll(set, j.Tables()...)
	if err != nil {
		return err
	}
	categories, titles := writers[0], writers[1]

	index := newCategoryIndex()
	opts := extract.Options{Delimiter: extract.Tab, Header: true}
	return eachRecord(ctx, src, opts, 5, func(rec extract.Record) error {
		code, title, categoryTitle, description := rec.Field(1), rec.Field(2), rec.Field(3), rec.Field(4)
		categoryKey, isNew := index.classify(code, categoryTitle)
		if isNew {
			return categories.Write(code, title, description, categoryKey)
		}
		return titles.Write(code, title, keygen.Key(title), categoryKey)
	})
}
