package gtfs

import (
	"archive/zip"
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
)

// TabularSource hands out the rows of named files. Rows must fail with an
// error wrapping ErrFileNotFound when the file is absent.
type TabularSource interface {
	Has(name string) bool
	Rows(name string) (*Rows, error)
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Rows iterates over the data rows of one file, in source order.
type Rows struct {
	file   string
	header *Header
	reader *csv.Reader
	closer io.Closer
	row    RawRow
	err    error
}

// NewRows reads the header row of r. A file with no readable header fails
// with ErrHeaderMismatch.
func NewRows(file string, r io.Reader) (*Rows, error) {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.ReuseRecord = false

	names, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("empty file")
		}
		return nil, fmt.Errorf("%s: %w: %w", file, ErrHeaderMismatch, err)
	}

	rows := &Rows{file: file, header: newHeader(names), reader: reader}
	if c, ok := r.(io.Closer); ok {
		rows.closer = c
	}
	return rows, nil
}

func (r *Rows) File() string {
	return r.file
}

func (r *Rows) Header() *Header {
	return r.header
}

// Next advances to the next non-blank row. A row the tokenizer rejects is
// still returned, with RawRow.Err set.
func (r *Rows) Next() bool {
	if r.err != nil {
		return false
	}
	for {
		values, err := r.reader.Read()
		if errors.Is(err, io.EOF) {
			return false
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			r.row = RawRow{Line: parseErr.StartLine, header: r.header, err: parseErr.Err}
			return true
		}
		if err != nil {
			r.err = fmt.Errorf("%s: %w: %w", r.file, ErrSourceUnavailable, err)
			return false
		}
		if blank(values) {
			continue
		}
		line, _ := r.reader.FieldPos(0)
		r.row = RawRow{Line: line, header: r.header, values: values}
		return true
	}
}

func blank(values []string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func (r *Rows) Row() RawRow {
	return r.row
}

func (r *Rows) Err() error {
	return r.err
}

func (r *Rows) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

// FSSource reads GTFS files out of a file system, typically a directory or
// an opened zip archive. Files are matched by base name, so a feed nested in a
// sub-directory of the archive is found as well.
type FSSource struct {
	fsys   fs.FS
	files  map[string]string
	closer io.Closer
}

// NewFSSource indexes the .txt files of fsys. When two files share a base
// name the one closest to the root wins.
func NewFSSource(fsys fs.FS) (*FSSource, error) {
	files := make(map[string]string)
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != "." && strings.HasPrefix(d.Name(), "__MACOSX") {
				return fs.SkipDir
			}
			return nil
		}
		base := path.Base(p)
		if !strings.HasSuffix(base, ".txt") || strings.HasPrefix(base, ".") {
			return nil
		}
		if prev, ok := files[base]; ok && depth(prev) <= depth(p) {
			return nil
		}
		files[base] = p
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	return &FSSource{fsys: fsys, files: files}, nil
}

func depth(p string) int {
	return strings.Count(p, "/")
}

// OpenPath opens a directory or a zip archive, depending on what path names.
func OpenPath(p string) (*FSSource, error) {
	info, err := os.Stat(p)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	if info.IsDir() {
		return OpenDir(p)
	}
	return OpenZip(p)
}

// OpenDir reads a feed unpacked into a directory.
func OpenDir(dir string) (*FSSource, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrSourceUnavailable, dir)
	}
	return NewFSSource(os.DirFS(dir))
}

// OpenZip opens a zip archive on disk. The source must be closed.
func OpenZip(p string) (*FSSource, error) {
	zr, err := zip.OpenReader(p)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	src, err := NewFSSource(zr)
	if err != nil {
		_ = zr.Close()
		return nil, err
	}
	src.closer = zr
	return src, nil
}

// NewZipSource reads a zip archive held in memory.
func NewZipSource(b []byte) (*FSSource, error) {
	zr, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	return NewFSSource(zr)
}

func (s *FSSource) Has(name string) bool {
	_, ok := s.files[name]
	return ok
}

func (s *FSSource) Rows(name string) (*Rows, error) {
	p, ok := s.files[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, name)
	}
	f, err := s.fsys.Open(p)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSourceUnavailable, name, err)
	}
	rows, err := NewRows(name, f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return rows, nil
}

// Files lists the base names of all files in the source.
func (s *FSSource) Files() []string {
	names := make([]string, 0, len(s.files))
	for n := range s.files {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (s *FSSource) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}
