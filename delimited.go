package fixedfile

import (
	"bufio"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"golang.org/x/text/transform"
)

// DefaultDelimiter separates fields of delimited output unless told otherwise.
const DefaultDelimiter = ','

// A DelimitedWriter writes records as delimited text terminated by "\n",
// encoded with a layout's DelimitedEncoding.
//
// Fields are quoted only when they contain the delimiter, a quote or a line
// break; quotes inside a quoted field are doubled. Padding is written as is.
// A record of a single empty field is written as "" so that it is not read
// back as a blank line.
type DelimitedWriter struct {
	delimiter rune
	enc       *transform.Writer
	buf       *bufio.Writer
}

// ValidDelimiter reports whether r can separate delimited fields.
func ValidDelimiter(r rune) bool {
	return r != 0 && r != '"' && r != '\r' && r != '\n' && utf8.ValidRune(r) && r != utf8.RuneError
}

// NewDelimitedWriter returns a DelimitedWriter writing to w. Closing the
// DelimitedWriter flushes it but does not close w.
func NewDelimitedWriter(w io.Writer, l *Layout, delimiter rune) (*DelimitedWriter, error) {
	if !ValidDelimiter(delimiter) {
		return nil, errors.Errorf("fixedfile: invalid delimiter %q", delimiter)
	}
	enc, err := LookupEncoding(l.DelimitedEncoding())
	if err != nil {
		return nil, err
	}

	dw := &DelimitedWriter{
		delimiter: delimiter,
		enc:       transform.NewWriter(w, enc.NewEncoder()),
	}
	dw.buf = bufio.NewWriter(dw.enc)
	return dw, nil
}

// Write writes one record. Output is buffered; an encoding or write failure
// is reported by this or a later Write, or by Close.
func (dw *DelimitedWriter) Write(fields []string) error {
	if len(fields) == 1 && fields[0] == "" {
		dw.buf.WriteString(`""`)
	}
	for i, field := range fields {
		if i > 0 {
			dw.buf.WriteRune(dw.delimiter)
		}
		if !dw.needsQuotes(field) {
			dw.buf.WriteString(field)
			continue
		}
		dw.buf.WriteByte('"')
		dw.buf.WriteString(strings.ReplaceAll(field, `"`, `""`))
		dw.buf.WriteByte('"')
	}
	// bufio.Writer errors are sticky, so the last write reports any failure.
	return dw.buf.WriteByte('\n')
}

func (dw *DelimitedWriter) needsQuotes(field string) bool {
	return strings.ContainsRune(field, dw.delimiter) || strings.ContainsAny(field, "\"\r\n")
}

// Close flushes any buffered records.
func (dw *DelimitedWriter) Close() error {
	return multierr.Append(dw.buf.Flush(), dw.enc.Close())
}

// Export copies the remaining records of r to w. If includeHeader is set the
// reader's column names are written first. It returns the number of data
// records written.
func Export(r *Reader, w *DelimitedWriter, includeHeader bool) (int, error) {
	if includeHeader {
		if err := w.Write(r.Columns()); err != nil {
			return 0, err
		}
	}

	n := 0
	for fields, err := range r.All() {
		if err != nil {
			return n, err
		}
		if err := w.Write(fields); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
