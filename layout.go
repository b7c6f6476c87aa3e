package fixedfile

import (
	"strconv"
)

// MaxLineWidth is the largest record width, in characters, a Layout accepts.
const MaxLineWidth = 1 << 24

// A Column is one field of a fixed-width record.
type Column struct {
	Name  string
	Width int // in characters
	Start int // offset of the first character of the field within a line
}

// End returns the offset one past the last character of the field.
func (c Column) End() int { return c.Start + c.Width }

// A Layout describes the columns of a fixed-width file and how the file and
// its delimited counterpart are encoded. A Layout is immutable once built.
type Layout struct {
	columns []Column

	// bounds is the cumulative offset table [0, w0, w0+w1, ...]; column i
	// spans [bounds[i], bounds[i+1]).
	bounds []int

	fixedWidthEncoding string
	delimitedEncoding  string
	includeHeader      bool
}

// A LayoutOption configures the optional parts of a Layout.
type LayoutOption func(*Layout)

// WithFixedWidthEncoding sets the encoding of the fixed-width file.
func WithFixedWidthEncoding(name string) LayoutOption {
	return func(l *Layout) { l.fixedWidthEncoding = name }
}

// WithDelimitedEncoding sets the encoding of the delimited file.
func WithDelimitedEncoding(name string) LayoutOption {
	return func(l *Layout) { l.delimitedEncoding = name }
}

// WithHeader sets whether a header record precedes the data records.
func WithHeader(include bool) LayoutOption {
	return func(l *Layout) { l.includeHeader = include }
}

// NewLayout builds a Layout from parallel slices of column names and widths.
//
// It returns a *SpecValidationError if the slices differ in length, if a
// width is not positive, if the widths add up to more than MaxLineWidth or if
// an encoding is unknown.
func NewLayout(names []string, widths []int, opts ...LayoutOption) (*Layout, error) {
	if len(names) != len(widths) {
		return nil, specError("mismatched offsets/columns", keyColumnNames, keyOffsets)
	}

	l := &Layout{
		columns:            make([]Column, len(names)),
		bounds:             make([]int, len(names)+1),
		fixedWidthEncoding: DefaultFixedWidthEncoding,
		delimitedEncoding:  DefaultDelimitedEncoding,
	}
	for _, opt := range opts {
		opt(l)
	}

	for i, w := range widths {
		if w <= 0 {
			return nil, specError("offset "+strconv.Itoa(i)+" must be a positive integer, have "+strconv.Itoa(w), keyOffsets)
		}
		if w > MaxLineWidth-l.bounds[i] {
			return nil, specError("offsets add up to more than "+strconv.Itoa(MaxLineWidth)+" characters", keyOffsets)
		}
		l.columns[i] = Column{Name: names[i], Width: w, Start: l.bounds[i]}
		l.bounds[i+1] = l.bounds[i] + w
	}

	if _, err := LookupEncoding(l.fixedWidthEncoding); err != nil {
		return nil, specError(err.Error(), keyFixedWidthEncoding)
	}
	if _, err := LookupEncoding(l.delimitedEncoding); err != nil {
		return nil, specError(err.Error(), keyDelimitedEncoding)
	}
	return l, nil
}

// Names returns the column names in column order.
func (l *Layout) Names() []string {
	names := make([]string, len(l.columns))
	for i, c := range l.columns {
		names[i] = c.Name
	}
	return names
}

// Widths returns the field widths in column order.
func (l *Layout) Widths() []int {
	widths := make([]int, len(l.columns))
	for i, c := range l.columns {
		widths[i] = c.Width
	}
	return widths
}

// Columns returns the columns in order.
func (l *Layout) Columns() []Column {
	return append([]Column(nil), l.columns...)
}

// Width returns the width of the first column called name.
func (l *Layout) Width(name string) (int, bool) {
	for _, c := range l.columns {
		if c.Name == name {
			return c.Width, true
		}
	}
	return 0, false
}

// Len returns the number of columns.
func (l *Layout) Len() int { return len(l.columns) }

// LineWidth returns the width of a full record.
func (l *Layout) LineWidth() int { return l.bounds[len(l.bounds)-1] }

// FixedWidthEncoding returns the name of the fixed-width file's encoding.
func (l *Layout) FixedWidthEncoding() string { return l.fixedWidthEncoding }

// DelimitedEncoding returns the name of the delimited file's encoding.
func (l *Layout) DelimitedEncoding() string { return l.delimitedEncoding }

// IncludeHeader reports whether a header record precedes the data records.
func (l *Layout) IncludeHeader() bool { return l.includeHeader }
