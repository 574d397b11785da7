package extract_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"skillsetl/internal/etlerr"
	"skillsetl/internal/extract"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestFileDropsHeaderAndSplitsTabs(t *testing.T) {
	path := writeFile(t, "jobs.tsv", "a\tb\tc\n1\t2\t3\n4\t5\t6\n")

	records, err := extract.File(path, extract.Options{Delimiter: extract.Tab, Header: true})
	if err != nil {
		t.Fatalf("File returned error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if got := strings.Join(records[1].Fields, ","); got != "4,5,6" {
		t.Fatalf("unexpected fields %q", got)
	}
	if records[0].Line != 2 || records[1].Line != 3 {
		t.Fatalf("unexpected line numbers %d, %d", records[0].Line, records[1].Line)
	}
	if records[0].Source != "jobs.tsv" {
		t.Fatalf("unexpected source %q", records[0].Source)
	}
}

func TestFileKeepsFirstLineWithoutHeader(t *testing.T) {
	path := writeFile(t, "titles.csv", "x\ty\tz\r\nu\tv\tw")

	records, err := extract.File(path, extract.Options{Delimiter: extract.Tab})
	if err != nil {
		t.Fatalf("File returned error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Fields[2] != "z" {
		t.Fatalf("expected CR to be stripped, got %q", records[0].Fields[2])
	}
	if records[1].Fields[2] != "w" {
		t.Fatalf("expected final line without newline to be read, got %q", records[1].Fields[2])
	}
}

func TestFileSplitsCommas(t *testing.T) {
	path := writeFile(t, "ksas.csv", "h1,h2\n11-1011.00,Reading\n")

	records, err := extract.File(path, extract.Options{Delimiter: extract.Comma, Header: true})
	if err != nil {
		t.Fatalf("File returned error: %v", err)
	}
	if len(records) != 1 || records[0].Fields[1] != "Reading" {
		t.Fatalf("unexpected records %+v", records)
	}
}

func TestFileStripsByteOrderMark(t *testing.T) {
	path := writeFile(t, "bom.tsv", "\xef\xbb\xbfcode\tname\n")

	records, err := extract.File(path, extract.Options{Delimiter: extract.Tab})
	if err != nil {
		t.Fatalf("File returned error: %v", err)
	}
	if records[0].Fields[0] != "code" {
		t.Fatalf("expected BOM to be removed, got %q", records[0].Fields[0])
	}
}

func TestFileSkipsBlankLines(t *testing.T) {
	path := writeFile(t, "gaps.tsv", "h\n\na\tb\n   \nc\td\n\n")

	records, err := extract.File(path, extract.Options{Delimiter: extract.Tab, Header: true})
	if err != nil {
		t.Fatalf("File returned error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[1].Line != 5 {
		t.Fatalf("expected original line number 5, got %d", records[1].Line)
	}
}

func TestFileHeaderOnly(t *testing.T) {
	path := writeFile(t, "empty.tsv", "only\theader")

	records, err := extract.File(path, extract.Options{Header: true})
	if err != nil {
		t.Fatalf("File returned error: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
}

func TestFileMissingIsIOError(t *testing.T) {
	_, err := extract.File(filepath.Join(t.TempDir(), "missing.tsv"), extract.Options{})
	if !errors.Is(err, etlerr.ErrIO) {
		t.Fatalf("expected io error, got %v", err)
	}
	if !strings.Contains(err.Error(), "missing.tsv") {
		t.Fatalf("expected path in error, got %v", err)
	}
}

func TestEachStopsOnCallbackError(t *testing.T) {
	path := writeFile(t, "rows.tsv", "a\nb\nc\n")
	stop := errors.New("stop")
	seen := 0
	err := extract.Each(path, extract.Options{}, func(extract.Record) error {
		seen++
		if seen == 2 {
			return stop
		}
		return nil
	})
	if !errors.Is(err, stop) {
		t.Fatalf("expected callback error, got %v", err)
	}
	if seen != 2 {
		t.Fatalf("expected iteration to stop after 2 records, got %d", seen)
	}
}

func TestRecordRequireExactly(t *testing.T) {
	rec := extract.Record{Source: "jobs.tsv", Line: 4, Fields: []string{"a", "b", "c"}}
	if err := rec.RequireExactly(3); err != nil {
		t.Fatalf("RequireExactly(3) returned error: %v", err)
	}
	for _, n := range []int{2, 5} {
		err := rec.RequireExactly(n)
		if !errors.Is(err, etlerr.ErrDataIntegrity) {
			t.Fatalf("RequireExactly(%d): expected data integrity error, got %v", n, err)
		}
		if !strings.Contains(err.Error(), "jobs.tsv:4") {
			t.Fatalf("expected file and line in %q", err.Error())
		}
	}
}
