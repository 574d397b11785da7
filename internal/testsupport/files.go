package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Occupation codes used by the fixture exports.
const (
	ChiefExecutives    = "11-1011.00"
	SoftwareDevelopers = "15-1252.00"
)

// WriteLines writes lines joined by newlines, with a trailing newline.
func WriteLines(t testing.TB, path string, lines ...string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	body := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// TSV joins fields with tabs.
func TSV(fields ...string) string {
	return strings.Join(fields, "\t")
}

// FixtureSources maps each source export name to its contents: two
// occupations, two skills, and one ignored file.
func FixtureSources() map[string][]string {
	return map[string][]string{
		"job_titles_master_table.tsv": {
			TSV("idx", "onet_soc_code", "title", "original_title", "description"),
			TSV("0", ChiefExecutives, "Chief Executives", "Chief Executives", "Determine and formulate policies"),
			TSV("1", ChiefExecutives, "CEO", "Chief Executives", ""),
			TSV("2", SoftwareDevelopers, "Software Developers", "Software Developers", "Research, design, and develop software"),
			TSV("3", SoftwareDevelopers, "Application Developer", "Software Developers", ""),
		},
		"skills_master_table.tsv": {
			TSV("idx", "onet_soc_code", "element_id", "skill", "description"),
			TSV("0", ChiefExecutives, "2.A.1.a", "Reading Comprehension", "Understanding written sentences"),
			TSV("1", SoftwareDevelopers, "2.A.1.a", "Reading Comprehension", "Understanding written sentences"),
			TSV("2", SoftwareDevelopers, "2.B.2.i", "Complex Problem Solving", "Identifying complex problems"),
		},
		"job2skill_column_skill_index.tsv": {
			TSV("idx", "job_idx", "skill_idx", "onet_soc_code", "element_id", "skill", "count"),
			TSV("0", "0", "0", ChiefExecutives, "2.A.1.a", "Reading Comprehension", "3"),
			TSV("1", "1", "0", SoftwareDevelopers, "2.A.1.a", "Reading Comprehension", "2"),
			TSV("2", "1", "1", SoftwareDevelopers, "2.B.2.i", "Complex Problem Solving", "5"),
		},
		"ksas_importances.csv": {
			"idx,onet_soc_code,element_id,element_name,scale_id,data_value,n,standard_error,lower_ci,upper_ci",
			"0," + ChiefExecutives + ",2.A.1.a,Reading Comprehension,IM,4.12,8,0.13,3.86,4.38",
			"1," + ChiefExecutives + ",2.A.1.a,Reading Comprehension,LV,4.75,8,0.16,4.43,5.07",
			"2," + SoftwareDevelopers + ",2.B.2.i,Complex Problem Solving,IM,4.00,16,0.00,4.00,4.00",
			"3," + SoftwareDevelopers + ",2.B.2.i,complex problem solving,LV,4.62,16,0.18,4.26,4.99",
		},
		"interesting_job_titles.csv": {
			TSV("Chief Visionary Officer", "Sets the long-term vision", ChiefExecutives),
			TSV("Code Ninja", "Writes code quickly", SoftwareDevelopers),
		},
		"skills_master.csv": {
			"uuid,skill_name",
		},
	}
}

// WriteSources writes FixtureSources into dir and returns their paths.
func WriteSources(t testing.TB, dir string) []string {
	t.Helper()

	var paths []string
	for name, lines := range FixtureSources() {
		path := filepath.Join(dir, name)
		WriteLines(t, path, lines...)
		paths = append(paths, path)
	}
	return paths
}

// ReadTable returns the rows of a tab-separated file, header first.
func ReadTable(t testing.TB, path string) [][]string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	var rows [][]string
	for _, line := range strings.Split(strings.TrimRight(string(data), "\n"), "\n") {
		rows = append(rows, strings.Split(line, "\t"))
	}
	return rows
}

// Column returns column i of rows, skipping the header.
func Column(rows [][]string, i int) []string {
	var out []string
	for _, row := range rows[1:] {
		out = append(out, row[i])
	}
	return out
}
