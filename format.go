package fixedfile

import "strconv"

// Alignment controls where a field value sits within its width when a record
// is formatted with FormatRecord.
type Alignment int

const (
	// AlignLeft pads on the right and truncates on the right.
	AlignLeft Alignment = iota
	// AlignRight pads on the left and truncates on the left.
	AlignRight
)

const defaultPadChar = ' '

func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignRight:
		return "right"
	default:
		return "Alignment(" + strconv.Itoa(int(a)) + ")"
	}
}

// Valid reports whether a is AlignLeft or AlignRight.
func (a Alignment) Valid() bool {
	switch a {
	case AlignLeft, AlignRight:
		return true
	default:
		return false
	}
}

// place writes value into the width-sized span of b starting at start,
// truncating the value if it does not fit.
func (a Alignment) place(b *lineBuilder, start, width int, value rawValue) {
	switch a {
	case AlignRight:
		v := value.tail(width)
		b.WriteValue(start+width-v.len(), v)
	default:
		b.WriteValue(start, value.truncate(width))
	}
}
