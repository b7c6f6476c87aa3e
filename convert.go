package fixedfile

import (
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// ConvertFile reads the fixed-width file input and writes its records to
// output as delimited text separated by delimiter. The header row is written
// when the layout includes a header. It returns the number of data records
// converted. Both files are closed on every path.
func ConvertFile(input, output string, l *Layout, delimiter rune, opts ...Option) (n int, err error) {
	o := newOptions(opts)

	err = WithReader(input, l, func(r *Reader) (err error) {
		out, err := o.fs.Create(output)
		if err != nil {
			return ioError("open", output, err)
		}
		defer func() {
			err = multierr.Append(err, ioError("close", output, out.Close()))
		}()

		dw, err := NewDelimitedWriter(out, l, delimiter)
		if err != nil {
			return err
		}
		n, err = Export(r, dw, l.IncludeHeader())
		err = multierr.Append(err, dw.Close())
		// Read failures are already IOErrors and pass through unchanged.
		return ioError("write", output, err)
	}, opts...)
	if err != nil {
		return n, err
	}

	o.log.Debug("converted fixed-width file",
		zap.String("input", input),
		zap.String("output", output),
		zap.Int("records", n))
	return n, nil
}
