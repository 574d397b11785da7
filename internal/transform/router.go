package transform

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"skillsetl/internal/etlerr"
)

var registry = make(map[string]Transformer)

func register(t Transformer) {
	if _, exists := registry[t.Source()]; exists {
		panic(fmt.Sprintf("transformer already registered: %s", t.Source()))
	}
	registry[t.Source()] = t
}

func init() {
	register(unusualTitles{})
	register(skillCounts{})
	register(jobTitles{})
	register(importance{})
	register(skills{})
	register(ignored{source: "skills_master.csv"})
}

// Route returns the transformer registered for the base name of path.
func Route(path string) (Transformer, error) {
	name := filepath.Base(strings.TrimSpace(path))
	t, ok := registry[name]
	if !ok {
		return nil, etlerr.Configuration("stage2", "route", fmt.Sprintf("no rules on how to process file %s", path))
	}
	return t, nil
}

// Sources returns every recognized source file name, sorted.
func Sources() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
