// Package csvfile reads and writes ride history as flat comma-delimited text.
//
// The format is fixed: a header line followed by one line per record,
// fields joined by commas with no quoting or escaping. A name containing a
// comma therefore produces a line that will not import again.
package csvfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"

	"github.com/okian/ridequeue/internal/domain/model"
)

// Header is the first line of every export.
const Header = "Type,PersonId,Name,Age,VisitorId,MembershipType"

// TypeTag marks a visitor record line.
const TypeTag = "Visitor"

const (
	fieldCount = 6
	separator  = ","
)

// LineError describes a line that was skipped during import.
type LineError struct {
	Line int    // 1-based line number in the file, header included
	Text string // trimmed line content
	Err  error  // wraps ErrMalformedRecord
}

func (e LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e LineError) Unwrap() error { return e.Err }

// Result summarises a Read.
type Result struct {
	Imported int
	Skipped  []LineError
}

// EncodeLine renders a record as a data line without the trailing newline.
func EncodeLine(v model.VisitorRecord) string { //nolint:gocritic // hugeParam: records are values
	return strings.Join([]string{
		TypeTag,
		v.ID,
		v.Name,
		strconv.Itoa(v.Age),
		v.VisitorID,
		v.MembershipType,
	}, separator)
}

// DecodeLine parses a data line. The line must already be trimmed.
func DecodeLine(line string) (model.VisitorRecord, error) {
	// Trailing empty fields are kept, so "Visitor,V3,Bo,12,VIS3," is a record
	// with an empty membership type. This differs from splitters that drop
	// trailing empties and lets every exported line import again.
	parts := strings.Split(line, separator)
	if len(parts) != fieldCount {
		return model.VisitorRecord{}, fmt.Errorf("%w: expected %d fields, got %d", ErrMalformedRecord, fieldCount, len(parts))
	}
	if parts[0] != TypeTag {
		return model.VisitorRecord{}, fmt.Errorf("%w: unexpected type %q", ErrMalformedRecord, parts[0])
	}
	age, err := strconv.Atoi(parts[3])
	if err != nil {
		return model.VisitorRecord{}, fmt.Errorf("%w: age %q is not an integer", ErrMalformedRecord, parts[3])
	}
	return model.NewVisitor(parts[1], parts[2], age, parts[4], parts[5]), nil
}

// Write emits the header and one line per record. It returns the number of
// records written.
func Write(w io.Writer, records iter.Seq[model.VisitorRecord]) (int, error) {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(Header + "\n"); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrIO, err)
	}
	n := 0
	for v := range records {
		if _, err := bw.WriteString(EncodeLine(v) + "\n"); err != nil {
			return n, fmt.Errorf("%w: %v", ErrIO, err)
		}
		n++
	}
	if err := bw.Flush(); err != nil {
		return n, fmt.Errorf("%w: %v", ErrIO, err)
	}
	return n, nil
}

// Read skips the first line, then decodes every non-blank line. Valid records
// are passed to fn in file order; invalid ones are reported in Result.Skipped.
// Lines have no length limit. A read error stops the scan; records already
// passed to fn stay delivered.
func Read(r io.Reader, fn func(model.VisitorRecord)) (Result, error) {
	var res Result
	br := bufio.NewReader(r)
	lineNo := 0
	for {
		raw, readErr := br.ReadString('\n')
		if raw != "" {
			lineNo++
			if lineNo > 1 {
				res.decode(lineNo, strings.TrimSpace(raw), fn)
			}
		}
		if errors.Is(readErr, io.EOF) {
			return res, nil
		}
		if readErr != nil {
			return res, fmt.Errorf("%w: %v", ErrIO, readErr)
		}
	}
}

func (res *Result) decode(lineNo int, line string, fn func(model.VisitorRecord)) {
	if line == "" {
		return
	}
	v, err := DecodeLine(line)
	if err != nil {
		res.Skipped = append(res.Skipped, LineError{Line: lineNo, Text: line, Err: err})
		return
	}
	fn(v)
	res.Imported++
}
