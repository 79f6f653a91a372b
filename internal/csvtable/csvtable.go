// Package csvtable converts channel tables to and from CSV.
//
// The header row holds the channel names in table order, and each following
// row holds one sample index. A channel without a value at an index is
// written as an empty field. Only the final row may contain empty fields,
// since a recorder tolerates at most one sample of skew between channels.
package csvtable

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/audiolibrelab/samplelog/internal/table"
)

// ErrMissingHeader is returned when the input has no header row
var ErrMissingHeader = errors.New("csv has no header row")

// ParseError describes a field or row that could not be decoded.
// Line is the 1-based physical line the field starts on, counting the header.
// Column is the 0-based field index, or -1 when the whole row is at fault.
type ParseError struct {
	Line   int
	Column int
	Field  string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Column < 0 {
		return fmt.Sprintf("csv line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("csv line %d, column %d (%q): %v", e.Line, e.Column+1, e.Field, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// FormatValue renders a float32 as the shortest decimal that parses back to
// the same value. Integral values keep a ".0" suffix.
func FormatValue(v float32) string {
	f := float64(v)
	s := strconv.FormatFloat(f, 'f', -1, 32)
	if math.IsNaN(f) || math.IsInf(f, 0) || strings.ContainsRune(s, '.') {
		return s
	}
	return s + ".0"
}

// ParseValue parses a single field as a float32
func ParseValue(field string) (float32, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(field), 32)
	if err != nil {
		return 0, err
	}
	return float32(v), nil
}

// Write encodes t as CSV into w
func Write(w io.Writer, t *table.Table) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(t.Names()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	columns := t.Columns()
	rows := t.Rows()
	record := make([]string, len(columns))
	for i := 0; i < rows; i++ {
		for j, c := range columns {
			if i < len(c.Values) {
				record[j] = FormatValue(c.Values[i])
			} else {
				record[j] = ""
			}
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// WriteFile creates or truncates path and writes t to it.
// The file is closed before WriteFile returns, on every path.
func WriteFile(path string, t *table.Table) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	if err := Write(f, t); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Read decodes a CSV table. Every field must parse as a float, except that
// the final row may leave trailing channels empty; those channels end one
// value short.
func Read(r io.Reader) (*table.Table, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrMissingHeader
	}
	if err != nil {
		return nil, csvError(err)
	}

	t := table.New()
	for i, name := range header {
		// Names are kept verbatim, surrounding spaces included
		if name == "" {
			return nil, fieldError(cr, i, name, errors.New("empty channel name"))
		}
		if t.Has(name) {
			return nil, fieldError(cr, i, name, errors.New("duplicate channel name"))
		}
		t.AddColumn(name)
	}
	names := t.Names()

	// blank is set by a row with an empty field; only the final row may have one.
	var blank *ParseError
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, csvError(err)
		}

		if blank != nil {
			return nil, blank
		}

		for i, field := range record {
			if strings.TrimSpace(field) == "" {
				if blank == nil {
					blank = fieldError(cr, i, field, errors.New("empty field before the final row"))
				}
				continue
			}
			v, err := ParseValue(field)
			if err != nil {
				return nil, fieldError(cr, i, field, err)
			}
			t.Append(names[i], v)
		}
	}

	return t, nil
}

// ReadFile opens path and decodes it with Read
func ReadFile(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	t, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return t, nil
}

// fieldError reports field i of the record cr returned last, at the physical
// line the field starts on.
func fieldError(cr *csv.Reader, i int, field string, err error) *ParseError {
	line, _ := cr.FieldPos(i)
	return &ParseError{Line: line, Column: i, Field: field, Err: err}
}

func csvError(err error) error {
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		return &ParseError{Line: perr.StartLine, Column: -1, Err: perr.Err}
	}
	return fmt.Errorf("read csv: %w", err)
}
