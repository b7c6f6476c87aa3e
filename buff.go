package fixedfile

import (
	"bytes"
	"unicode/utf8"
)

// lineBuilder is a multibyte character aware buffer that can be used to efficiently build
// a line of fixed width text. Positions passed to its methods are code point offsets.
type lineBuilder struct {
	data []byte

	// A mapping of codepoint indices into the bytes, so `codepointIndices[n]` is the
	// starting position for the n-th codepoint in `data`. nil while the line is
	// pure ASCII.
	codepointIndices []int
}

// newLineBuilder makes a new lineBuilder. The line is filled with the provided fillChar.
func newLineBuilder(len, cap int, fillChar byte) *lineBuilder {
	data := make([]byte, len, cap)
	if len == 0 {
		return &lineBuilder{data: data}
	}

	// Fill the buffer with the fill character.
	data[0] = fillChar
	filled := 1
	for filled < len {
		copy(data[filled:], data[:filled])
		filled *= 2
	}

	return &lineBuilder{data: data}
}

// WriteValue writes the given value to the lineBuilder at the given start index. The
// value must fit between start and the end of the line.
func (b *lineBuilder) WriteValue(start int, value rawValue) {
	if value.len() == 0 {
		return
	}

	// Fast path for ascii only operation.
	if !b.hasMultiByteChar() && !value.hasMultiByteChar() {
		copy(b.data[start:], value.data)
		return
	}

	// If this is the first time a multibyte character has been encountered, the codepoint
	// indices need to be initialized.
	if !b.hasMultiByteChar() && value.hasMultiByteChar() {
		b.initializeIndices()
	}

	end := start + value.len() - 1

	// Calculate the byte start and end indices accounting for any multibyte characters.
	byteStart := b.codepointIndices[start]
	byteEnd := b.byteEndIndex(end)

	writeSpan := b.data[byteStart : byteEnd+1]

	// Ensure there is space for the value being written. adjustByteSpan will grow or
	// shrink the byte span if required.
	byteDiff := value.byteLen() - len(writeSpan)
	if byteDiff != 0 {
		b.adjustByteSpan(end, byteDiff)
		byteEnd = b.byteEndIndex(end)
	}

	copy(b.data[byteStart:byteEnd+1], value.data)

	// The indices only need correcting if the write-span moved or the new value
	// contains multibyte characters.
	if byteDiff != 0 || value.hasMultiByteChar() {
		b.correctIndices(start, value)
	}
}

func (b *lineBuilder) String() string {
	return string(b.data)
}

func (b *lineBuilder) initializeIndices() {
	b.codepointIndices = make([]int, len(b.data))
	for i := range b.codepointIndices {
		b.codepointIndices[i] = i
	}
}

func (b *lineBuilder) correctIndices(start int, value rawValue) {
	firstIndex := b.byteEndIndex(start-1) + 1

	if !value.hasMultiByteChar() {
		for i := 0; i < value.len(); i++ {
			b.codepointIndices[start+i] = firstIndex + i
		}
		return
	}

	for i, s := range value.codepointIndices {
		b.codepointIndices[start+i] = firstIndex + s
	}
}

func (b *lineBuilder) adjustByteSpan(end, diff int) {
	byteEnd := b.byteEndIndex(end)

	switch {
	case diff < 0:
		copy(b.data[byteEnd+diff:], b.data[byteEnd:])
		b.data = b.data[:len(b.data)+diff]

	case diff > 0:
		b.data = append(b.data, bytes.Repeat([]byte{' '}, diff)...)
		copy(b.data[byteEnd+diff:], b.data[byteEnd:])
	}

	for i := end + 1; i < len(b.codepointIndices); i++ {
		b.codepointIndices[i] += diff
	}
}

func (b *lineBuilder) byteEndIndex(end int) int {
	if b.codepointIndices == nil {
		return end
	}
	if end == len(b.codepointIndices)-1 {
		return len(b.data) - 1
	}
	return b.codepointIndices[end+1] - 1
}

func (b *lineBuilder) hasMultiByteChar() bool {
	return b.codepointIndices != nil
}

// rawValue is a string together with the byte offset of each of its code points,
// so that it can be sliced by character position.
type rawValue struct {
	data string
	// codepointIndices[n] is the starting byte of the n-th codepoint in data. nil
	// when data is pure ASCII, in which case bytes and codepoints coincide.
	codepointIndices []int
}

func newRawValue(data string) rawValue {
	value := rawValue{data: data}

	bytesIdx := findFirstMultiByteChar(data)
	if bytesIdx == len(data) {
		return value
	}

	codepointIndices := make([]int, bytesIdx, len(data))
	for i := 0; i < bytesIdx; i++ {
		codepointIndices[i] = i
	}
	for bytesIdx < len(data) {
		// Invalid UTF-8 decodes as a single byte, so the loop always advances.
		_, codepointSize := utf8.DecodeRuneInString(data[bytesIdx:])
		codepointIndices = append(codepointIndices, bytesIdx)
		bytesIdx += codepointSize
	}
	value.codepointIndices = codepointIndices
	return value
}

func (v rawValue) len() int {
	if v.codepointIndices == nil {
		return len(v.data)
	}
	return len(v.codepointIndices)
}

func (v rawValue) byteLen() int {
	return len(v.data)
}

func (v rawValue) hasMultiByteChar() bool {
	return v.codepointIndices != nil
}

// byteIndex returns the byte offset of the i-th codepoint; positions at or past the
// end map to len(data).
func (v rawValue) byteIndex(i int) int {
	if i >= v.len() {
		return len(v.data)
	}
	if v.codepointIndices == nil {
		return i
	}
	return v.codepointIndices[i]
}

// substring returns the codepoints in [start, end). The span is clamped to the
// value, so a span starting past the end is empty rather than out of range.
func (v rawValue) substring(start, end int) string {
	if start >= end || start >= v.len() {
		return ""
	}
	return v.data[v.byteIndex(start):v.byteIndex(end)]
}

// truncate returns the first n codepoints of v.
func (v rawValue) truncate(n int) rawValue {
	if n >= v.len() {
		return v
	}
	if v.codepointIndices == nil {
		return rawValue{data: v.data[:n]}
	}
	return newRawValue(v.substring(0, n))
}

// tail returns the last n codepoints of v.
func (v rawValue) tail(n int) rawValue {
	if n >= v.len() {
		return v
	}
	if v.codepointIndices == nil {
		return rawValue{data: v.data[len(v.data)-n:]}
	}
	return newRawValue(v.substring(v.len()-n, v.len()))
}

// Scans bytes, looking for multi-byte characters, returns either the index of
// the first multi-byte character or the length of the string if there are none.
func findFirstMultiByteChar(data string) int {
	for i := 0; i < len(data); i++ {
		if data[i]&0x80 == 0x80 {
			return i
		}
	}
	return len(data)
}
