package fixedfile

import (
	"testing"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

func TestLookupEncoding(t *testing.T) {
	for _, tt := range []struct {
		name      string
		shouldErr bool
	}{
		{"windows-1252", false},
		{"WINDOWS-1252", false},
		{" utf-8 ", false},
		{"utf8", false},
		{"latin1", false},
		{"iso-8859-15", false},
		{"shift_jis", false},
		{"", true},
		{"klingon", true},
	} {
		t.Run(tt.name, func(t *testing.T) {
			enc, err := LookupEncoding(tt.name)
			if tt.shouldErr != (err != nil) {
				t.Fatalf("LookupEncoding(%q) err want %v, have %v (%v)", tt.name, tt.shouldErr, err != nil, err)
			}
			if !tt.shouldErr && enc == nil {
				t.Errorf("LookupEncoding(%q) returned a nil encoding", tt.name)
			}
		})
	}
}

func TestLookupEncoding_Defaults(t *testing.T) {
	if enc, _ := LookupEncoding(DefaultFixedWidthEncoding); enc != charmap.Windows1252 {
		t.Errorf("LookupEncoding(%q) expected charmap.Windows1252, have %v", DefaultFixedWidthEncoding, enc)
	}
	if enc, _ := LookupEncoding(DefaultDelimitedEncoding); enc != unicode.UTF8 {
		t.Errorf("LookupEncoding(%q) expected unicode.UTF8, have %v", DefaultDelimitedEncoding, enc)
	}
}
