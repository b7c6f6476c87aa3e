package fixedfile

import (
	"strings"
	"testing"
)

func benchLayout(b *testing.B, columns int) *Layout {
	names := make([]string, columns)
	widths := make([]int, columns)
	for i := range names {
		names[i] = "column"
		widths[i] = 10
	}
	l, err := NewLayout(names, widths)
	if err != nil {
		b.Fatal(err)
	}
	return l
}

func BenchmarkDecodeLine_Ascii_10(b *testing.B) {
	c := NewCodec(benchLayout(b, 10))
	line := strings.Repeat("       foo", 10)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = c.DecodeLine(line)
	}
}

func BenchmarkDecodeLine_Ascii_100(b *testing.B) {
	c := NewCodec(benchLayout(b, 100))
	line := strings.Repeat("       foo", 100)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = c.DecodeLine(line)
	}
}

func BenchmarkDecodeLine_Multibyte_100(b *testing.B) {
	c := NewCodec(benchLayout(b, 100))
	line := strings.Repeat("       føø", 100)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = c.DecodeLine(line)
	}
}

func BenchmarkFormatRecord_Ascii_10(b *testing.B) {
	c := NewCodec(benchLayout(b, 10))
	fields := strings.Split(strings.Repeat("foo,", 10), ",")[:10]
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = c.FormatRecord(fields, AlignLeft)
	}
}

func BenchmarkFormatRecord_Multibyte_10(b *testing.B) {
	c := NewCodec(benchLayout(b, 10))
	fields := strings.Split(strings.Repeat("føø,", 10), ",")[:10]
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = c.FormatRecord(fields, AlignLeft)
	}
}
