package fixedfile

import (
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
)

const (
	// DefaultFixedWidthEncoding is applied when a specification document does
	// not name the fixed-width file encoding.
	DefaultFixedWidthEncoding = "windows-1252"

	// DefaultDelimitedEncoding is applied when a specification document does
	// not name the delimited file encoding.
	DefaultDelimitedEncoding = "utf-8"
)

// LookupEncoding returns the text encoding registered under name. Names are
// matched case-insensitively against the WHATWG labels first (which covers
// "windows-1252", "latin1", "utf-8", "shift_jis", ...) and the IANA registry
// second.
func LookupEncoding(name string) (encoding.Encoding, error) {
	label := strings.TrimSpace(name)
	if label == "" {
		return nil, errors.New("empty encoding name")
	}
	if enc, err := htmlindex.Get(label); err == nil {
		return enc, nil
	}
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil {
		return nil, errors.Wrapf(err, "unknown encoding %q", name)
	}
	if enc == nil {
		// Registered with IANA but not implemented by x/text.
		return nil, errors.Errorf("unsupported encoding %q", name)
	}
	return enc, nil
}
