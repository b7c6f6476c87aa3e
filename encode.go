package fixedfile

import (
	"bufio"
	"io"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/text/transform"
)

// A Writer writes records to a fixed-width file.
//
// Text is encoded with the layout's FixedWidthEncoding. Characters the
// encoding cannot represent make the write fail with an *IOError.
type Writer struct {
	path  string
	codec *Codec
	log   *zap.Logger

	file io.WriteCloser
	buf  *bufio.Writer
	enc  *transform.Writer

	state   sessionState
	records int
}

// Create creates (or truncates) the file at path and returns a Writer for
// it. If the layout includes a header, the header record is written straight
// away.
//
// Any failure is returned as an *IOError, and whatever was opened is closed
// again.
func Create(path string, l *Layout, opts ...Option) (*Writer, error) {
	o := newOptions(opts)
	w := &Writer{
		path:  path,
		codec: NewCodec(l),
		log:   o.log.With(zap.String("path", path)),
		state: stateOpening,
	}

	enc, err := LookupEncoding(l.FixedWidthEncoding())
	if err != nil {
		w.state = stateClosed
		return nil, ioError("open", path, err)
	}
	f, err := o.fs.Create(path)
	if err != nil {
		w.state = stateClosed
		return nil, ioError("open", path, err)
	}

	w.file = f
	w.buf = bufio.NewWriter(f)
	w.enc = transform.NewWriter(w.buf, enc.NewEncoder())
	w.state = stateActive

	if l.IncludeHeader() {
		if err := w.writeLine(w.codec.Header()); err != nil {
			return nil, multierr.Append(err, w.Close())
		}
	}

	w.log.Debug("opened fixed-width file for writing",
		zap.String("encoding", l.FixedWidthEncoding()),
		zap.Bool("header", l.IncludeHeader()))
	return w, nil
}

// WithWriter creates a Writer for path, passes it to fn and closes it when fn
// returns or panics. An error from closing the file is combined with the
// error returned by fn.
func WithWriter(path string, l *Layout, fn func(*Writer) error, opts ...Option) (err error) {
	w, err := Create(path, l, opts...)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, w.Close())
	}()
	return fn(w)
}

// Codec returns the codec the writer encodes with.
func (w *Writer) Codec() *Codec { return w.codec }

// Records returns the number of data records written so far.
func (w *Writer) Records() int { return w.records }

// WriteRecord writes line followed by a newline. The line is written as is;
// its width is not checked.
func (w *Writer) WriteRecord(line string) error {
	if err := w.writeLine(line); err != nil {
		return err
	}
	w.records++
	return nil
}

// WriteFields formats fields with FormatRecord, left aligned, and writes the
// result.
func (w *Writer) WriteFields(fields []string) error {
	line, err := w.codec.FormatRecord(fields, AlignLeft)
	if err != nil {
		return err
	}
	return w.WriteRecord(line)
}

func (w *Writer) writeLine(line string) error {
	if w.state != stateActive {
		return ioError("write", w.path, ErrClosed)
	}
	if _, err := io.WriteString(w.enc, line+"\n"); err != nil {
		return ioError("write", w.path, err)
	}
	return nil
}

// Close flushes buffered output and closes the file. Closing a closed Writer
// is a no-op.
func (w *Writer) Close() error {
	if w.state == stateClosed {
		return nil
	}
	w.state = stateClosed

	err := w.enc.Close()
	err = multierr.Append(err, w.buf.Flush())
	err = multierr.Append(err, w.file.Close())
	if err != nil {
		return ioError("close", w.path, err)
	}

	w.log.Debug("closed fixed-width file", zap.Int("records", w.records))
	return nil
}
