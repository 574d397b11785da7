package tsv

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"skillsetl/internal/etlerr"
)

// Table describes a file name and its literal header.
type Table struct {
	Name   string
	Header []string
}

// Writer appends rows to one table.
type Writer struct {
	table   Table
	path    string
	tmpPath string
	bakPath string
	file    *os.File
	buf     *bufio.Writer
	rows    int
	// backedUp is set while the previous version of the table sits at bakPath.
	backedUp bool
}

// Rows returns the number of data rows written so far.
func (w *Writer) Rows() int { return w.rows }

// Table returns the table definition the writer was opened with.
func (w *Writer) Table() Table { return w.table }

// Path returns the final destination of the table.
func (w *Writer) Path() string { return w.path }

// Write appends one row. The field count must match the header.
func (w *Writer) Write(fields ...string) error {
	if len(fields) != len(w.table.Header) {
		return etlerr.Wrap(etlerr.ErrDataIntegrity, "write", w.table.Name,
			fmt.Sprintf("row has %d fields, header has %d", len(fields), len(w.table.Header)), nil)
	}
	for _, f := range fields {
		if strings.ContainsAny(f, "\t\n") {
			return etlerr.Wrap(etlerr.ErrDataIntegrity, "write", w.table.Name, fmt.Sprintf("field %q contains a tab or newline", f), nil)
		}
	}
	if err := w.writeLine(fields); err != nil {
		return err
	}
	w.rows++
	return nil
}

func (w *Writer) writeLine(fields []string) error {
	if _, err := w.buf.WriteString(strings.Join(fields, "\t")); err != nil {
		return etlerr.Wrap(etlerr.ErrIO, "write", w.table.Name, "", err)
	}
	if err := w.buf.WriteByte('\n'); err != nil {
		return etlerr.Wrap(etlerr.ErrIO, "write", w.table.Name, "", err)
	}
	return nil
}

func (w *Writer) close() error {
	if w.file == nil {
		return nil
	}
	flushErr := w.buf.Flush()
	closeErr := w.file.Close()
	w.file = nil
	if err := errors.Join(flushErr, closeErr); err != nil {
		return etlerr.Wrap(etlerr.ErrIO, "write", w.table.Name, "close", err)
	}
	return nil
}

// Set groups the tables produced by one stage so they are promoted together.
type Set struct {
	dir     string
	writers []*Writer
	done    bool
}

// NewSet prepares a set of tables rooted at dir.
func NewSet(dir string) *Set {
	return &Set{dir: dir}
}

// Create opens a temp file for table and writes its header.
func (s *Set) Create(table Table) (*Writer, error) {
	if s.done {
		return nil, errors.New("tsv: set already finished")
	}
	path := filepath.Join(s.dir, table.Name)
	tmpPath := filepath.Join(s.dir, "."+table.Name+".tmp")
	bakPath := filepath.Join(s.dir, "."+table.Name+".bak")
	file, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, etlerr.Wrap(etlerr.ErrIO, "write", table.Name, "create", err)
	}
	w := &Writer{
		table:   table,
		path:    path,
		tmpPath: tmpPath,
		bakPath: bakPath,
		file:    file,
		buf:     bufio.NewWriter(file),
	}
	s.writers = append(s.writers, w)
	if err := w.writeLine(table.Header); err != nil {
		return nil, err
	}
	return w, nil
}

// Writers returns the writers in creation order.
func (s *Set) Writers() []*Writer {
	return s.writers
}

// Commit closes every table and renames it into place. Existing tables are
// moved aside first; if any rename fails every previous version is put back.
func (s *Set) Commit() error {
	if s.done {
		return nil
	}
	s.done = true
	for _, w := range s.writers {
		if err := w.close(); err != nil {
			s.cleanup()
			return err
		}
	}

	var promoted []*Writer
	for _, w := range s.writers {
		if err := w.promote(); err != nil {
			s.rollback(promoted)
			s.cleanup()
			return etlerr.Wrap(etlerr.ErrIO, "write", w.table.Name, "rename", err)
		}
		promoted = append(promoted, w)
	}
	for _, w := range promoted {
		_ = os.Remove(w.bakPath)
		w.backedUp = false
	}
	return nil
}

// promote swaps the temp file in, keeping any previous table at bakPath.
func (w *Writer) promote() error {
	if _, err := os.Lstat(w.path); err == nil {
		if err := os.Rename(w.path, w.bakPath); err != nil {
			return err
		}
		w.backedUp = true
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if err := os.Rename(w.tmpPath, w.path); err != nil {
		w.restore()
		return err
	}
	return nil
}

// restore moves the previous table back into place.
func (w *Writer) restore() {
	if w.backedUp {
		_ = os.Rename(w.bakPath, w.path)
		w.backedUp = false
	}
}

func (s *Set) rollback(promoted []*Writer) {
	for i := len(promoted) - 1; i >= 0; i-- {
		w := promoted[i]
		if w.backedUp {
			w.restore()
		} else {
			_ = os.Remove(w.path)
		}
	}
}

// Abort discards every table in the set. It is safe to call after Commit.
func (s *Set) Abort() {
	if s.done {
		return
	}
	s.done = true
	for _, w := range s.writers {
		_ = w.close()
	}
	s.cleanup()
}

func (s *Set) cleanup() {
	for _, w := range s.writers {
		_ = w.close()
		_ = os.Remove(w.tmpPath)
	}
}
