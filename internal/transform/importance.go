package transform

import (
	"context"
	"path/filepath"
	"strings"

	"skillsetl/internal/etlerr"
	"skillsetl/internal/extract"
	"skillsetl/internal/keygen"
	"skillsetl/internal/tsv"
)

// importance merges the paired rows of ksas_importances.csv. Each
// (occupation, skill) unit is two consecutive rows: importance statistics
// first, level statistics second. Columns: [1] occupation code, [3] skill
// name, [5..9] value, N, standard error, lower CI, upper CI.
type importance struct{}

func (importance) Source() string { return "ksas_importances.csv" }

func (importance) Tables() []tsv.Table { return []tsv.Table{ImportanceTable} }

type pairState int

const (
	awaitingImportance pairState = iota
	awaitingLevel
)

func (s pairState) String() string {
	switch s {
	case awaitingImportance:
		return "awaiting_importance"
	case awaitingLevel:
		return "awaiting_level"
	default:
		return "unknown"
	}
}

type pendingImportance struct {
	line  int
	code  string
	skill string
	key   string
	stats []string
}

// pairer is the two-state machine behind the consolidator. It holds at most
// one importance row while waiting for its level row.
type pairer struct {
	state   pairState
	pending pendingImportance
}

// feed consumes one record and returns a merged row once a pair completes.
func (p *pairer) feed(rec extract.Record) ([]string, error) {
	code, skill := rec.Field(1), rec.Field(3)
	stats := rec.Fields[5:10]

	switch p.state {
	case awaitingImportance:
		p.pending = pendingImportance{
			line:  rec.Line,
			code:  code,
			skill: skill,
			key:   keygen.FoldedKey(skill),
			stats: append([]string(nil), stats...),
		}
		p.state = awaitingLevel
		return nil, nil
	case awaitingLevel:
		if code != p.pending.code || !strings.EqualFold(skill, p.pending.skill) {
			return nil, etlerr.Row(rec.Source, rec.Line,
				"level row (%s, %s) does not pair with importance row at line %d (%s, %s)",
				code, skill, p.pending.line, p.pending.code, p.pending.skill)
		}
		row := make([]string, 0, 12)
		row = append(row, p.pending.code, p.pending.key)
		row = append(row, p.pending.stats...)
		row = append(row, stats...)
		p.pending = pendingImportance{}
		p.state = awaitingImportance
		return row, nil
	default:
		return nil, etlerr.Row(rec.Source, rec.Line, "invalid pairing state %s", p.state)
	}
}

// finish reports an importance row left without its level row.
func (p *pairer) finish(source string) error {
	if p.state == awaitingLevel {
		return etlerr.Row(source, p.pending.line,
			"importance row for (%s, %s) has no level row", p.pending.code, p.pending.skill)
	}
	return nil
}

func (i importance) Transform(ctx context.Context, src string, set *tsv.Set) error {
	out, err := set.Create(ImportanceTable)
	if err != nil {
		return err
	}

	var p pairer
	opts := extract.Options{Delimiter: extract.Comma, Header: true}
	err = eachRecord(ctx, src, opts, 10, func(rec extract.Record) error {
		row, err := p.feed(rec)
		if err != nil || row == nil {
			return err
		}
		return out.Write(row...)
	})
	if err != nil {
		return err
	}
	return p.finish(filepath.Base(src))
}
