package fixedfile

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, r *Reader) [][]string {
	t.Helper()
	var records [][]string
	for fields, err := range r.All() {
		require.NoError(t, err)
		records = append(records, fields)
	}
	return records
}

func TestReader(t *testing.T) {
	for _, tt := range []struct {
		name    string
		data    string
		header  bool
		columns []string
		records [][]string
	}{
		{
			name:    "header",
			data:    "f1f2 f3  \nAABBBCCCC\n",
			header:  true,
			columns: []string{"f1", "f2 ", "f3  "},
			records: [][]string{{"AA", "BBB", "CCCC"}},
		},
		{
			name:    "no header",
			data:    "AABBBCCCC\nDDEEEFFFF\n",
			columns: []string{"f1", "f2", "f3"},
			records: [][]string{{"AA", "BBB", "CCCC"}, {"DD", "EEE", "FFFF"}},
		},
		{
			name:    "header names from the file",
			data:    "c1c2 c3  \nAABBBCCCC\n",
			header:  true,
			columns: []string{"c1", "c2 ", "c3  "},
			records: [][]string{{"AA", "BBB", "CCCC"}},
		},
		{
			name:    "no trailing newline",
			data:    "AABBBCCCC\nDDEEEFFFF",
			columns: []string{"f1", "f2", "f3"},
			records: [][]string{{"AA", "BBB", "CCCC"}, {"DD", "EEE", "FFFF"}},
		},
		{
			name:    "crlf",
			data:    "f1f2 f3  \r\nAABBBCCCC\r\n",
			header:  true,
			columns: []string{"f1", "f2 ", "f3  "},
			records: [][]string{{"AA", "BBB", "CCCC"}},
		},
		{
			name:    "blank line mid file",
			data:    "AABBBCCCC\n\nDDEEEFFFF\n",
			columns: []string{"f1", "f2", "f3"},
			records: [][]string{{"AA", "BBB", "CCCC"}, {"", "", ""}, {"DD", "EEE", "FFFF"}},
		},
		{
			name:    "short line",
			data:    "AABB\n",
			columns: []string{"f1", "f2", "f3"},
			records: [][]string{{"AA", "BB", ""}},
		},
		{
			name:    "header only",
			data:    "f1f2 f3  \n",
			header:  true,
			columns: []string{"f1", "f2 ", "f3  "},
		},
		{
			name:    "empty file with header",
			data:    "",
			header:  true,
			columns: []string{"", "", ""},
		},
		{
			name:    "empty file",
			data:    "",
			columns: []string{"f1", "f2", "f3"},
		},
		{
			name:    "windows-1252",
			data:    "\xe9\xe8BBBCCCC\n",
			columns: []string{"f1", "f2", "f3"},
			records: [][]string{{"éè", "BBB", "CCCC"}},
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "fixed.txt", []byte(tt.data))

			r, err := Open(path, testLayout(t, WithHeader(tt.header)))
			require.NoError(t, err)
			defer r.Close()

			assert.Equal(t, tt.columns, r.Columns())
			assert.Equal(t, tt.records, readAll(t, r))
			assert.Equal(t, len(tt.records), r.Records())
		})
	}
}

func TestReader_UTF8(t *testing.T) {
	path := writeFile(t, "fixed.txt", []byte("日本BBBCCCC\n"))

	r, err := Open(path, testLayout(t, WithFixedWidthEncoding("utf-8")))
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, [][]string{{"日本", "BBB", "CCCC"}}, readAll(t, r))
}

func TestReader_Read(t *testing.T) {
	path := writeFile(t, "fixed.txt", []byte("AABBBCCCC\n"))

	r, err := Open(path, testLayout(t))
	require.NoError(t, err)
	defer r.Close()

	fields, err := r.Read()
	require.NoError(t, err)
	assert.Equal(t, []string{"AA", "BBB", "CCCC"}, fields)

	for i := 0; i < 2; i++ {
		_, err = r.Read()
		assert.Equal(t, io.EOF, err)
	}
}

func TestReader_AllIsForwardOnly(t *testing.T) {
	path := writeFile(t, "fixed.txt", []byte("AABBBCCCC\nDDEEEFFFF\n"))

	r, err := Open(path, testLayout(t))
	require.NoError(t, err)
	defer r.Close()

	for fields, err := range r.All() {
		require.NoError(t, err)
		assert.Equal(t, []string{"AA", "BBB", "CCCC"}, fields)
		break
	}
	assert.Equal(t, [][]string{{"DD", "EEE", "FFFF"}}, readAll(t, r))
	assert.Empty(t, readAll(t, r))
}

func TestReader_UseAfterClose(t *testing.T) {
	path := writeFile(t, "fixed.txt", []byte("AABBBCCCC\n"))

	r, err := Open(path, testLayout(t))
	require.NoError(t, err)
	require.NoError(t, r.Close())
	require.NoError(t, r.Close(), "second Close should be a no-op")

	_, err = r.Read()
	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr), "want *IOError, have %T (%v)", err, err)
	assert.Equal(t, "read", ioErr.Op)
	assert.True(t, errors.Is(err, ErrClosed))

	var seen int
	for _, err := range r.All() {
		seen++
		assert.True(t, errors.Is(err, ErrClosed))
	}
	assert.Equal(t, 1, seen)
}

func TestReader_OpenFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.txt")

	r, err := Open(path, testLayout(t))
	assert.Nil(t, r)

	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr), "want *IOError, have %T (%v)", err, err)
	assert.Equal(t, "open", ioErr.Op)
	assert.Equal(t, path, ioErr.Path)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestWithReader_ClosesOnErrorMidIteration(t *testing.T) {
	path := writeFile(t, "fixed.txt", []byte("f1f2 f3  \nAABBBCCCC\nDDEEEFFFF\n"))
	fs := &trackingFS{}
	boom := errors.New("boom")

	var r *Reader
	err := WithReader(path, testLayout(t, WithHeader(true)), func(sr *Reader) error {
		r = sr
		for fields, err := range sr.All() {
			if err != nil {
				return err
			}
			if fields[0] == "AA" {
				return boom
			}
		}
		return nil
	}, WithFileSystem(fs))

	assert.True(t, errors.Is(err, boom))
	assert.Zero(t, fs.open)
	assert.Zero(t, fs.doubleShut)
	_, err = r.Read()
	assert.True(t, errors.Is(err, ErrClosed))
}

func TestWithReader_ClosesOnPanic(t *testing.T) {
	path := writeFile(t, "fixed.txt", []byte("AABBBCCCC\n"))
	fs := &trackingFS{}

	func() {
		defer func() {
			if recover() == nil {
				t.Error("expected panic to propagate")
			}
		}()
		_ = WithReader(path, testLayout(t), func(r *Reader) error {
			for range r.All() {
				panic("mid-parse failure")
			}
			return nil
		}, WithFileSystem(fs))
	}()

	assert.Zero(t, fs.open)
}

func TestWithReader_OpenFailure(t *testing.T) {
	fs := &trackingFS{}
	called := false

	err := WithReader(filepath.Join(t.TempDir(), "missing.txt"), testLayout(t), func(*Reader) error {
		called = true
		return nil
	}, WithFileSystem(fs))

	assert.Error(t, err)
	assert.False(t, called)
	assert.Zero(t, fs.open)
}
