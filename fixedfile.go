// Package fixedfile converts between fixed-width text files and delimited
// (CSV-like) files.
//
// A Layout, usually parsed from a JSON or YAML specification document, names
// the columns of a fixed-width record and their widths. A Codec uses the
// Layout to slice lines into fields and to compose fields into lines. Writers
// and Readers wrap a fixed-width file, emitting or consuming the optional
// header record, and transcode between the file's encoding and UTF-8.
//
// The specification document looks like this:
//
//	{
//	  "ColumnNames": ["f1", "f2", "f3"],
//	  "Offsets": ["2", "3", "4"],
//	  "FixedWidthEncoding": "windows-1252",
//	  "DelimitedEncoding": "utf-8",
//	  "IncludeHeader": "True"
//	}
package fixedfile

import "go.uber.org/zap"

// An Option configures a Reader, Writer or one of the file level helpers.
type Option func(*options)

type options struct {
	fs  FileSystem
	log *zap.Logger
}

func newOptions(opts []Option) options {
	o := options{
		fs:  OSFileSystem{},
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithFileSystem makes files be opened through fs instead of the os package.
func WithFileSystem(fs FileSystem) Option {
	return func(o *options) {
		if fs != nil {
			o.fs = fs
		}
	}
}

// WithLogger sets the logger that receives session events. Nil is ignored.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// sessionState tracks a Reader or Writer through opening -> active -> closed.
type sessionState int

const (
	stateOpening sessionState = iota
	stateActive
	stateClosed
)

func (s sessionState) String() string {
	switch s {
	case stateOpening:
		return "opening"
	case stateActive:
		return "active"
	case stateClosed:
		return "closed"
	default:
		return "unknown"
	}
}
