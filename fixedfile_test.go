package fixedfile

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// testLayout is the f1/f2/f3 layout with widths 2, 3 and 4.
func testLayout(t testing.TB, opts ...LayoutOption) *Layout {
	t.Helper()
	l, err := NewLayout([]string{"f1", "f2", "f3"}, []int{2, 3, 4}, opts...)
	if err != nil {
		t.Fatalf("NewLayout() unexpected error: %v", err)
	}
	return l
}

func writeFile(t testing.TB, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func readFile(t testing.TB, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

// trackingFS is an os backed FileSystem that counts the handles it has handed
// out and not yet seen closed.
type trackingFS struct {
	open       int
	doubleShut int

	// failClose makes every Close report this error after closing the file.
	failClose error
}

func (fs *trackingFS) Open(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	fs.open++
	return &trackedFile{File: f, fs: fs}, nil
}

func (fs *trackingFS) Create(name string) (io.WriteCloser, error) {
	f, err := os.Create(name)
	if err != nil {
		return nil, err
	}
	fs.open++
	return &trackedFile{File: f, fs: fs}, nil
}

type trackedFile struct {
	*os.File
	fs     *trackingFS
	closed bool
}

func (f *trackedFile) Close() error {
	if f.closed {
		f.fs.doubleShut++
		return os.ErrClosed
	}
	f.closed = true
	f.fs.open--
	if err := f.File.Close(); err != nil {
		return err
	}
	return f.fs.failClose
}
