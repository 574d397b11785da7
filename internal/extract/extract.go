package extract

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"skillsetl/internal/etlerr"
)

// Field delimiters used by the source exports.
const (
	Tab   = '\t'
	Comma = ','
)

// Options controls how a file is split.
type Options struct {
	Delimiter rune
	// Header discards the first line when set.
	Header bool
}

// Record is one data line of a source file.
type Record struct {
	Source string
	Line   int
	Fields []string
}

// RequireExactly returns a data-integrity error unless the record has exactly
// n fields. Sources are not quoted, so a stray delimiter inside a value shows
// up as an extra field.
func (r Record) RequireExactly(n int) error {
	if len(r.Fields) != n {
		return etlerr.Row(r.Source, r.Line, "row has %d columns, expected %d", len(r.Fields), n)
	}
	return nil
}

// Field returns the i-th field. Callers check RequireExactly first.
func (r Record) Field(i int) string {
	return r.Fields[i]
}

// File reads every record of path into memory.
func File(path string, opts Options) ([]Record, error) {
	var records []Record
	err := Each(path, opts, func(rec Record) error {
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Each streams the records of path to fn in file order. Iteration stops at the
// first error returned by fn, which is passed through unchanged.
func Each(path string, opts Options, fn func(Record) error) error {
	file, err := os.Open(path)
	if err != nil {
		return etlerr.Wrap(etlerr.ErrIO, "extract", "open", path, err)
	}
	defer file.Close()

	return Read(file, filepath.Base(path), opts, fn)
}

// Read splits r into records labelled with source. A leading UTF-8 byte order
// mark is dropped and blank lines are skipped.
func Read(r io.Reader, source string, opts Options, fn func(Record) error) error {
	delim := opts.Delimiter
	if delim == 0 {
		delim = Tab
	}
	sep := string(delim)

	reader := bufio.NewReader(transform.NewReader(r, unicode.BOMOverride(transform.Nop)))
	lineNo := 0
	for {
		line, readErr := reader.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return etlerr.Wrap(etlerr.ErrIO, "extract", "read", fmt.Sprintf("%s line %d", source, lineNo+1), readErr)
		}
		if line == "" && errors.Is(readErr, io.EOF) {
			return nil
		}
		lineNo++
		line = strings.TrimRight(line, "\r\n")

		if lineNo == 1 && opts.Header {
			if errors.Is(readErr, io.EOF) {
				return nil
			}
			continue
		}
		if strings.TrimSpace(line) != "" {
			rec := Record{Source: source, Line: lineNo, Fields: strings.Split(line, sep)}
			if err := fn(rec); err != nil {
				return err
			}
		}
		if errors.Is(readErr, io.EOF) {
			return nil
		}
	}
}
