package fixedfile

import (
	"fmt"
	"iter"
	"math/rand/v2"
	"strings"
)

// A Codec slices fixed-width lines into fields and composes fields into
// fixed-width lines according to a Layout. Positions and widths count
// characters, not bytes. A Codec holds no state besides its Layout and may be
// shared.
type Codec struct {
	layout *Layout
}

// NewCodec returns a Codec for l.
func NewCodec(l *Layout) *Codec {
	return &Codec{layout: l}
}

// Layout returns the layout the codec was built from.
func (c *Codec) Layout() *Layout { return c.layout }

// DecodeLine splits line into one field per column. Field i is the span
// [start_i, start_i+width_i) of line. Spans running past the end of a short
// line are clamped, so trailing fields come back short or empty. Padding is
// preserved. line must not include its terminator.
func (c *Codec) DecodeLine(line string) []string {
	fields := make([]string, 0, c.layout.Len())
	for f := range c.Fields(line) {
		fields = append(fields, f)
	}
	return fields
}

// Fields is the lazy form of DecodeLine. Each call of the returned sequence
// starts again from the first column.
func (c *Codec) Fields(line string) iter.Seq[string] {
	return func(yield func(string) bool) {
		v := newRawValue(line)
		b := c.layout.bounds
		for i := 0; i+1 < len(b); i++ {
			if !yield(v.substring(b[i], b[i+1])) {
				return
			}
		}
	}
}

// EncodeHeader renders each column name left-justified in its width. Names
// longer than the width are truncated.
func (c *Codec) EncodeHeader() []string {
	fields := make([]string, c.layout.Len())
	for i, col := range c.layout.columns {
		b := newLineBuilder(col.Width, col.Width, defaultPadChar)
		AlignLeft.place(b, 0, col.Width, newRawValue(col.Name))
		fields[i] = b.String()
	}
	return fields
}

// Header returns the header record, EncodeHeader joined without separator.
func (c *Codec) Header() string {
	return strings.Join(c.EncodeHeader(), "")
}

// EncodeRecord concatenates fields in order. Widths are not enforced: the
// caller supplies fields of the right size. See FormatRecord for the
// padding and truncating form.
func (c *Codec) EncodeRecord(fields []string) string {
	return strings.Join(fields, "")
}

// FormatRecord lays fields out at their column positions, padding each with
// spaces and truncating it to the column width. It fails if the number of
// fields does not match the number of columns.
func (c *Codec) FormatRecord(fields []string, align Alignment) (string, error) {
	if len(fields) != c.layout.Len() {
		return "", fmt.Errorf("fixedfile: have %d fields, layout has %d columns", len(fields), c.layout.Len())
	}
	if !align.Valid() {
		return "", fmt.Errorf("fixedfile: invalid alignment %v", align)
	}

	lw := c.layout.LineWidth()
	b := newLineBuilder(lw, lw, defaultPadChar)
	for i, col := range c.layout.columns {
		align.place(b, col.Start, col.Width, newRawValue(fields[i]))
	}
	return b.String(), nil
}

// RandomRecord returns one field per column, each exactly as wide as its
// column and made of characters drawn uniformly, with replacement, from
// alphabet. It panics if alphabet is empty.
func (c *Codec) RandomRecord(rng *rand.Rand, alphabet string) []string {
	chars := []rune(alphabet)
	if len(chars) == 0 {
		panic("fixedfile: RandomRecord called with an empty alphabet")
	}

	fields := make([]string, c.layout.Len())
	var sb strings.Builder
	for i, col := range c.layout.columns {
		sb.Reset()
		for j := 0; j < col.Width; j++ {
			sb.WriteRune(chars[rng.IntN(len(chars))])
		}
		fields[i] = sb.String()
	}
	return fields
}
