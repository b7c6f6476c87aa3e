package fixedfile

import (
	"math/rand/v2"

	"github.com/pkg/errors"
)

// DefaultAlphabet is the character set synthetic records are drawn from.
const DefaultAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Generate writes n records of random characters from alphabet to w.
func Generate(w *Writer, n int, alphabet string, rng *rand.Rand) error {
	if n < 0 {
		return errors.New("fixedfile: negative record count")
	}
	if alphabet == "" {
		return errors.New("fixedfile: empty alphabet")
	}

	c := w.Codec()
	for i := 0; i < n; i++ {
		if err := w.WriteRecord(c.EncodeRecord(c.RandomRecord(rng, alphabet))); err != nil {
			return err
		}
	}
	return nil
}

// GenerateFile creates the file at path and fills it with n random records,
// preceded by a header if the layout asks for one.
func GenerateFile(path string, l *Layout, n int, alphabet string, rng *rand.Rand, opts ...Option) error {
	return WithWriter(path, l, func(w *Writer) error {
		return Generate(w, n, alphabet, rng)
	}, opts...)
}
