package fixedfile

import (
	"bufio"
	"io"
	"iter"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/text/transform"
)

// A Reader reads records from a fixed-width file.
//
// Text is decoded from the layout's FixedWidthEncoding. Each line of the file,
// without its "\n" or "\r\n" terminator, is one record. An empty line at the
// very end of the file is not a record; an empty line anywhere else is a
// record of empty fields.
type Reader struct {
	path  string
	codec *Codec
	log   *zap.Logger

	file io.ReadCloser
	data *bufio.Reader

	columns []string
	state   sessionState
	done    bool
	records int
}

// Open opens the file at path and returns a Reader for it. If the layout
// includes a header, the first line is consumed and sliced into the column
// names reported by Columns.
//
// Any failure is returned as an *IOError, and whatever was opened is closed
// again.
func Open(path string, l *Layout, opts ...Option) (*Reader, error) {
	o := newOptions(opts)
	r := &Reader{
		path:    path,
		codec:   NewCodec(l),
		log:     o.log.With(zap.String("path", path)),
		columns: l.Names(),
		state:   stateOpening,
	}

	enc, err := LookupEncoding(l.FixedWidthEncoding())
	if err != nil {
		r.state = stateClosed
		return nil, ioError("open", path, err)
	}
	f, err := o.fs.Open(path)
	if err != nil {
		r.state = stateClosed
		return nil, ioError("open", path, err)
	}

	r.file = f
	r.data = bufio.NewReader(transform.NewReader(f, enc.NewDecoder()))
	r.state = stateActive

	if l.IncludeHeader() {
		header, _, err := r.readLine()
		if err != nil {
			return nil, multierr.Append(err, r.Close())
		}
		r.columns = r.codec.DecodeLine(header)
	}

	r.log.Debug("opened fixed-width file for reading",
		zap.String("encoding", l.FixedWidthEncoding()),
		zap.Bool("header", l.IncludeHeader()))
	return r, nil
}

// WithReader opens a Reader for path, passes it to fn and closes it when fn
// returns or panics. An error from closing the file is combined with the
// error returned by fn.
func WithReader(path string, l *Layout, fn func(*Reader) error, opts ...Option) (err error) {
	r, err := Open(path, l, opts...)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, r.Close())
	}()
	return fn(r)
}

// Codec returns the codec the reader decodes with.
func (r *Reader) Codec() *Codec { return r.codec }

// Columns returns the column names: the fields of the header line if the
// layout includes a header, the layout's names otherwise.
func (r *Reader) Columns() []string {
	return append([]string(nil), r.columns...)
}

// Records returns the number of data records read so far.
func (r *Reader) Records() int { return r.records }

// Read reads the next record and splits it into fields. At the end of the
// file it returns io.EOF.
func (r *Reader) Read() ([]string, error) {
	if r.state != stateActive {
		return nil, ioError("read", r.path, ErrClosed)
	}
	line, ok, err := r.readLine()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, io.EOF
	}
	r.records++
	return r.codec.DecodeLine(line), nil
}

// All returns the remaining records as a sequence. The sequence stops after
// the first error, which it yields. Records consumed by one iteration are not
// seen by the next.
func (r *Reader) All() iter.Seq2[[]string, error] {
	return func(yield func([]string, error) bool) {
		for {
			fields, err := r.Read()
			if err == io.EOF {
				return
			}
			if !yield(fields, err) || err != nil {
				return
			}
		}
	}
}

// readLine returns the next line without its terminator. ok is false when
// there is no line left.
func (r *Reader) readLine() (line string, ok bool, err error) {
	if r.done {
		return "", false, nil
	}
	line, err = r.data.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", false, ioError("read", r.path, err)
	}
	if err == io.EOF {
		// A final empty line is not a record.
		r.done = true
		if len(line) == 0 {
			return "", false, nil
		}
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, true, nil
}

// Close closes the file. Closing a closed Reader is a no-op.
func (r *Reader) Close() error {
	if r.state == stateClosed {
		return nil
	}
	r.state = stateClosed

	if err := r.file.Close(); err != nil {
		return ioError("close", r.path, err)
	}
	r.log.Debug("closed fixed-width file", zap.Int("records", r.records))
	return nil
}
