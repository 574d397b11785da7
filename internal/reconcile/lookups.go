package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"skillsetl/internal/etlerr"
	"skillsetl/internal/extract"
	"skillsetl/internal/logging"
	"skillsetl/internal/transform"
)

const contextCheckInterval = 1000

// lookups holds the in-memory joins built from the stage-2 tables.
type lookups struct {
	// jobs maps occupation code to category key.
	jobs map[string]string
	// skills maps skill name to skill key.
	skills map[string]string
	// totals maps skill key to the summed usage count.
	totals map[string]float64
}

func intermediate(dir, name string) string {
	return filepath.Join(dir, name)
}

// stage2Options matches the tsv writer: tab separated, literal header.
var stage2Options = extract.Options{Delimiter: extract.Tab, Header: true}

func scan(ctx context.Context, path string, fields int, fn func(extract.Record) error) error {
	n := 0
	return extract.Each(path, stage2Options, func(rec extract.Record) error {
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

func loadLookups(ctx context.Context, dir string, strict bool, logger *slog.Logger) (*lookups, error) {
	l := &lookups{
		jobs:   make(map[string]string),
		skills: make(map[string]string),
		totals: make(map[string]float64),
	}

	err := scan(ctx, intermediate(dir, transform.JobsMaster), 4, func(rec extract.Record) error {
		l.jobs[rec.Field(0)] = rec.Field(3)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = scan(ctx, intermediate(dir, transform.SkillsMaster), 3, func(rec extract.Record) error {
		l.skills[rec.Field(1)] = rec.Field(0)
		return nil
	})
	if err != nil {
		return nil, err
	}

	missing := 0
	err = scan(ctx, intermediate(dir, transform.JobsSkillsCount), 4, func(rec extract.Record) error {
		name := rec.Field(2)
		key, ok := l.skills[name]
		if !ok {
			if strict {
				return etlerr.Row(rec.Source, rec.Line, "skill %q is not in %s", name, transform.SkillsMaster)
			}
			missing++
			logger.Warn("skill missing from skills master",
				logging.String(logging.FieldFile, rec.Source),
				logging.Int(logging.FieldLine, rec.Line),
				logging.String("skill_name", name),
			)
			key = rec.Field(1)
		}
		count, err := parseCount(rec.Field(3))
		if err != nil {
			return etlerr.Row(rec.Source, rec.Line, "invalid count %q", rec.Field(3))
		}
		l.totals[key] += count
		return nil
	})
	if err != nil {
		return nil, err
	}
	if missing > 0 {
		logger.Warn("skill counts reference unknown skills", logging.Int("missing", missing))
	}
	return l, nil
}

// job resolves an occupation code to its category key.
func (l *lookups) job(rec extract.Record, code string) (string, error) {
	key, ok := l.jobs[code]
	if !ok {
		return "", etlerr.Row(rec.Source, rec.Line, "occupation code %q not found in %s", code, transform.JobsMaster)
	}
	return key, nil
}

// skillKey prefers the skills master key for name and falls back to the key
// computed in stage 2.
func (l *lookups) skillKey(name, fallback string) string {
	if key, ok := l.skills[name]; ok {
		return key
	}
	return fallback
}

// total formats the summed count for key, "0" when the skill was never counted.
func (l *lookups) total(key string) string {
	v, ok := l.totals[key]
	if !ok {
		return "0"
	}
	return formatCount(v)
}

func parseCount(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

func formatCount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
