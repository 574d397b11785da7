package transform_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"skillsetl/internal/etlerr"
	"skillsetl/internal/keygen"
	"skillsetl/internal/transform"
)

func writeSource(t *testing.T, name string, lines ...string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func readTable(t *testing.T, dir, name string) [][]string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	var rows [][]string
	for _, line := range strings.Split(strings.TrimRight(string(data), "\n"), "\n") {
		rows = append(rows, strings.Split(line, "\t"))
	}
	return rows
}

func tsvLine(fields ...string) string { return strings.Join(fields, "\t") }

func TestRouteRecognizesEverySource(t *testing.T) {
	for _, name := range []string{
		"interesting_job_titles.csv",
		"job2skill_column_skill_index.tsv",
		"job_titles_master_table.tsv",
		"ksas_importances.csv",
		"skills_master_table.tsv",
		"skills_master.csv",
	} {
		tr, err := transform.Route(filepath.Join("/data/exports", name))
		if err != nil {
			t.Fatalf("Route(%s) returned error: %v", name, err)
		}
		if tr.Source() != name {
			t.Fatalf("Route(%s) picked %s", name, tr.Source())
		}
	}
	if got := len(transform.Sources()); got != 6 {
		t.Fatalf("expected 6 sources, got %d", got)
	}
}

func TestRouteRejectsUnknownFile(t *testing.T) {
	_, err := transform.Route("/data/exports/occupations.xlsx")
	if !errors.Is(err, etlerr.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if !strings.Contains(err.Error(), "occupations.xlsx") {
		t.Fatalf("expected file name in error, got %v", err)
	}
}

func TestApplySkipsSkillsMasterCSV(t *testing.T) {
	src := writeSource(t, "skills_master.csv", "a,b,c")
	out := t.TempDir()

	result, err := transform.Apply(context.Background(), src, out)
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if !result.Skipped {
		t.Fatal("expected skills_master.csv to be skipped")
	}
	entries, _ := os.ReadDir(out)
	if len(entries) != 0 {
		t.Fatalf("expected no output, found %d files", len(entries))
	}
}

func TestUnusualTitlesReorderColumns(t *testing.T) {
	src := writeSource(t, "interesting_job_titles.csv",
		tsvLine("Chief Happiness Officer", "Keeps morale up", "11-1011.00"),
		tsvLine("Data Wrangler", "Herds data", "15-1199.08"),
	)
	out := t.TempDir()

	result, err := transform.Apply(context.Background(), src, out)
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if len(result.Tables) != 1 || result.Tables[0].Rows != 2 {
		t.Fatalf("unexpected result %+v", result)
	}
	rows := readTable(t, out, transform.JobsUnusualTitles)
	if strings.Join(rows[0], ",") != "onet_soc_code,title,description" {
		t.Fatalf("unexpected header %v", rows[0])
	}
	if strings.Join(rows[1], ",") != "11-1011.00,Chief Happiness Officer,Keeps morale up" {
		t.Fatalf("unexpected row %v", rows[1])
	}
}

func TestSkillCountsKeysBySkillName(t *testing.T) {
	src := writeSource(t, "job2skill_column_skill_index.tsv",
		tsvLine("idx", "a", "b", "code", "c", "skill", "count"),
		tsvLine("0", "x", "y", "11-1011.00", "z", "Active Listening", "12"),
	)
	out := t.TempDir()

	if _, err := transform.Apply(context.Background(), src, out); err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	rows := readTable(t, out, transform.JobsSkillsCount)
	want := []string{"11-1011.00", keygen.Key("Active Listening"), "Active Listening", "12"}
	if strings.Join(rows[1], "|") != strings.Join(want, "|") {
		t.Fatalf("row = %v, want %v", rows[1], want)
	}
}

func TestJobTitlesFirstOccurrenceDefinesCategory(t *testing.T) {
	src := writeSource(t, "job_titles_master_table.tsv",
		tsvLine("idx", "onet_soc_code", "title", "original_title", "description"),
		tsvLine("0", "A", "Cat", "Cat", "Category A"),
		tsvLine("1", "A", "T1", "Cat", ""),
		tsvLine("2", "B", "Cat2", "Cat2", "Category B"),
	)
	out := t.TempDir()

	result, err := transform.Apply(context.Background(), src, out)
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if len(result.Tables) != 2 {
		t.Fatalf("expected two tables, got %+v", result.Tables)
	}

	categories := readTable(t, out, transform.JobsMaster)
	if len(categories) != 3 {
		t.Fatalf("expected header + 2 categories, got %d rows", len(categories))
	}
	if strings.Join(categories[1], "|") != strings.Join([]string{"A", "Cat", "Category A", keygen.Key("Cat")}, "|") {
		t.Fatalf("unexpected category row %v", categories[1])
	}
	if categories[2][0] != "B" || categories[2][3] != keygen.Key("Cat2") {
		t.Fatalf("unexpected category row %v", categories[2])
	}

	titles := readTable(t, out, transform.JobsTitles)
	if len(titles) != 2 {
		t.Fatalf("expected header + 1 title, got %d rows", len(titles))
	}
	want := []string{"A", "T1", keygen.Key("T1"), keygen.Key("Cat")}
	if strings.Join(titles[1], "|") != strings.Join(want, "|") {
		t.Fatalf("title row = %v, want %v", titles[1], want)
	}
}

func TestJobTitlesShortRowNamesFileAndLine(t *testing.T) {
	src := writeSource(t, "job_titles_master_table.tsv",
		tsvLine("idx", "onet_soc_code", "title", "original_title", "description"),
		tsvLine("0", "A", "Cat", "Cat", "Category A"),
		tsvLine("1", "A", "T1"),
	)
	out := t.TempDir()

	_, err := transform.Apply(context.Background(), src, out)
	if !errors.Is(err, etlerr.ErrDataIntegrity) {
		t.Fatalf("expected data integrity error, got %v", err)
	}
	if !strings.Contains(err.Error(), "job_titles_master_table.tsv:3") {
		t.Fatalf("expected file and line in %v", err)
	}
	entries, _ := os.ReadDir(out)
	if len(entries) != 0 {
		t.Fatalf("expected no promoted output after failure, found %d files", len(entries))
	}
}

func importanceRow(code, skill, scale string, stats ...string) string {
	fields := append([]string{"0", code, "2.A.1.a", skill, scale}, stats...)
	return strings.Join(fields, ",")
}

func TestImportanceMergesPairs(t *testing.T) {
	src := writeSource(t, "ksas_importances.csv",
		"idx,code,element,name,scale,value,n,stderr,lower,upper",
		importanceRow("11-1011.00", "Reading Comprehension", "IM", "4.12", "8", "0.1", "3.9", "4.3"),
		importanceRow("11-1011.00", "Reading Comprehension", "LV", "4.75", "8", "0.2", "4.4", "5.1"),
	)
	out := t.TempDir()

	if _, err := transform.Apply(context.Background(), src, out); err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	rows := readTable(t, out, transform.SkillsImportance)
	if len(rows) != 2 {
		t.Fatalf("expected header + 1 row, got %d", len(rows))
	}
	want := []string{"11-1011.00", keygen.Key("reading comprehension"),
		"4.12", "8", "0.1", "3.9", "4.3", "4.75", "8", "0.2", "4.4", "5.1"}
	if strings.Join(rows[1], "|") != strings.Join(want, "|") {
		t.Fatalf("row = %v, want %v", rows[1], want)
	}
	if len(rows[0]) != 12 {
		t.Fatalf("header has %d columns, want 12", len(rows[0]))
	}
}

func TestImportanceOddRowCountFails(t *testing.T) {
	src := writeSource(t, "ksas_importances.csv",
		"idx,code,element,name,scale,value,n,stderr,lower,upper",
		importanceRow("11-1011.00", "Reading", "IM", "4", "8", "0.1", "3.9", "4.3"),
		importanceRow("11-1011.00", "Reading", "LV", "4", "8", "0.1", "3.9", "4.3"),
		importanceRow("11-1011.00", "Writing", "IM", "3", "8", "0.1", "2.9", "3.3"),
	)
	out := t.TempDir()

	_, err := transform.Apply(context.Background(), src, out)
	if !errors.Is(err, etlerr.ErrDataIntegrity) {
		t.Fatalf("expected data integrity error, got %v", err)
	}
	if !strings.Contains(err.Error(), "ksas_importances.csv:4") {
		t.Fatalf("expected the unpaired line in %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(out, transform.SkillsImportance)); !os.IsNotExist(statErr) {
		t.Fatalf("expected no partial output, stat err = %v", statErr)
	}
}

func TestImportanceMismatchedPairFails(t *testing.T) {
	src := writeSource(t, "ksas_importances.csv",
		"idx,code,element,name,scale,value,n,stderr,lower,upper",
		importanceRow("11-1011.00", "Reading", "IM", "4", "8", "0.1", "3.9", "4.3"),
		importanceRow("11-1011.00", "Writing", "LV", "4", "8", "0.1", "3.9", "4.3"),
	)

	_, err := transform.Apply(context.Background(), src, t.TempDir())
	if !errors.Is(err, etlerr.ErrDataIntegrity) {
		t.Fatalf("expected data integrity error, got %v", err)
	}
}

func TestImportanceCommaInSkillNameFails(t *testing.T) {
	src := writeSource(t, "ksas_importances.csv",
		"idx,code,element,name,scale,value,n,stderr,lower,upper",
		importanceRow("11-1011.00", "Reading, Writing", "IM", "4.12", "8", "0.1", "3.9", "4.3"),
		importanceRow("11-1011.00", "Reading, Writing", "LV", "4.75", "8", "0.2", "4.4", "5.1"),
	)
	out := t.TempDir()

	_, err := transform.Apply(context.Background(), src, out)
	var rowErr *etlerr.RowError
	if !errors.As(err, &rowErr) {
		t.Fatalf("expected row error, got %v", err)
	}
	if rowErr.File != "ksas_importances.csv" || rowErr.Line != 2 || !strings.Contains(rowErr.Reason, "11 columns") {
		t.Fatalf("unexpected row error %+v", rowErr)
	}
	if _, statErr := os.Stat(filepath.Join(out, transform.SkillsImportance)); !os.IsNotExist(statErr) {
		t.Fatalf("expected no partial output, stat err = %v", statErr)
	}
}

func TestExtraFieldFailsEverySource(t *testing.T) {
	cases := map[string][]string{
		"interesting_job_titles.csv": {
			tsvLine("Chief Happiness Officer", "Keeps morale up", "11-1011.00", "extra"),
		},
		"job2skill_column_skill_index.tsv": {
			tsvLine("idx", "job_idx", "skill_idx", "onet_soc_code", "element_id", "skill", "count"),
			tsvLine("0", "0", "0", "11-1011.00", "2.A.1.a", "Reading", "3", "extra"),
		},
		"job_titles_master_table.tsv": {
			tsvLine("idx", "onet_soc_code", "title", "original_title", "description"),
			tsvLine("0", "A", "Cat", "Cat", "Category A", "extra"),
		},
		"skills_master_table.tsv": {
			tsvLine("idx", "onet_soc_code", "element_id", "skill", "description"),
			tsvLine("0", "A", "2.A.1.a", "Reading", "Understanding", "extra"),
		},
	}
	for name, lines := range cases {
		src := writeSource(t, name, lines...)
		out := t.TempDir()

		_, err := transform.Apply(context.Background(), src, out)
		if !errors.Is(err, etlerr.ErrDataIntegrity) {
			t.Fatalf("%s: expected data integrity error, got %v", name, err)
		}
		line := len(lines)
		if !strings.Contains(err.Error(), fmt.Sprintf("%s:%d", name, line)) {
			t.Fatalf("%s: expected line %d in %v", name, line, err)
		}
		if entries, _ := os.ReadDir(out); len(entries) != 0 {
			t.Fatalf("%s: expected no output after failure, found %d files", name, len(entries))
		}
	}
}

func TestSkillsDeduplicates(t *testing.T) {
	src := writeSource(t, "skills_master_table.tsv",
		tsvLine("idx", "onet_soc_code", "element", "skill", "description"),
		tsvLine("0", "11-1011.00", "e", "Writing", "Communicating in writing"),
		tsvLine("1", "15-1199.08", "e", "Writing", "Communicating in writing"),
		tsvLine("2", "15-1199.08", "e", "Speaking", "Talking"),
		tsvLine("3", "29-1141.00", "e", "Writing", "Communicating in writing"),
	)
	out := t.TempDir()

	result, err := transform.Apply(context.Background(), src, out)
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if result.Tables[0].Rows != 2 || result.Tables[1].Rows != 4 {
		t.Fatalf("unexpected row counts %+v", result.Tables)
	}

	master := readTable(t, out, transform.SkillsMaster)
	seen := map[string]bool{}
	for _, row := range master[1:] {
		if seen[row[0]] {
			t.Fatalf("duplicate skill key %s", row[0])
		}
		seen[row[0]] = true
	}
	links := readTable(t, out, transform.JobsSkills)
	if strings.Join(links[4], "|") != keygen.Key("Writing")+"|29-1141.00" {
		t.Fatalf("unexpected link row %v", links[4])
	}
}

func TestApplyHonoursCancellation(t *testing.T) {
	src := writeSource(t, "interesting_job_titles.csv", tsvLine("t", "d", "c"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := transform.Apply(ctx, src, t.TempDir())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
