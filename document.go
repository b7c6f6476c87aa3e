package fixedfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Keys of a specification document.
const (
	keyColumnNames        = "ColumnNames"
	keyOffsets            = "Offsets"
	keyFixedWidthEncoding = "FixedWidthEncoding"
	keyDelimitedEncoding  = "DelimitedEncoding"
	keyIncludeHeader      = "IncludeHeader"
	keyIncludeHeaderAlt   = "include_header"
)

var knownKeys = map[string]bool{
	keyColumnNames:        true,
	keyOffsets:            true,
	keyFixedWidthEncoding: true,
	keyDelimitedEncoding:  true,
	keyIncludeHeader:      true,
	keyIncludeHeaderAlt:   true,
}

// A DocumentFormat is the syntax of a specification document.
type DocumentFormat int

const (
	JSON DocumentFormat = iota
	YAML
)

func (f DocumentFormat) String() string {
	switch f {
	case JSON:
		return "json"
	case YAML:
		return "yaml"
	default:
		return "DocumentFormat(" + strconv.Itoa(int(f)) + ")"
	}
}

// FormatForPath guesses the document format from a file extension. Anything
// that is not .yaml or .yml is treated as JSON.
func FormatForPath(path string) DocumentFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	default:
		return JSON
	}
}

// LoadLayoutFile reads the specification document at path and parses it into
// a Layout. Failing to read the file is an *IOError, anything wrong with its
// contents a *SpecValidationError.
func LoadLayoutFile(path string, log *zap.Logger, opts ...Option) (*Layout, error) {
	o := newOptions(opts)
	f, err := o.fs.Open(path)
	if err != nil {
		return nil, ioError("open", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, ioError("read", path, err)
	}
	return LoadLayout(bytes.NewReader(data), FormatForPath(path), log)
}

// LoadLayout decodes a specification document from r and parses it into a
// Layout.
func LoadLayout(r io.Reader, format DocumentFormat, log *zap.Logger) (*Layout, error) {
	var doc map[string]interface{}
	switch format {
	case JSON:
		dec := json.NewDecoder(r)
		dec.UseNumber()
		if err := dec.Decode(&doc); err != nil {
			return nil, specError("malformed json document: " + err.Error())
		}
	case YAML:
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
			return nil, specError("malformed yaml document: " + err.Error())
		}
	default:
		return nil, specError("unsupported document format " + format.String())
	}
	if doc == nil {
		return nil, specError("empty document", keyColumnNames, keyOffsets)
	}
	return ParseLayout(doc, log)
}

// ParseLayout builds a Layout from a decoded specification document.
//
// ColumnNames and Offsets are required. IncludeHeader (or include_header),
// FixedWidthEncoding and DelimitedEncoding are optional; each absent one is
// reported as a warning on log and replaced by its default. Offsets may be
// integers or strings holding integers, and IncludeHeader may be a boolean
// or a string such as "True". A nil log discards the warnings.
func ParseLayout(doc map[string]interface{}, log *zap.Logger) (*Layout, error) {
	if log == nil {
		log = zap.NewNop()
	}

	var missing []string
	for _, key := range []string{keyColumnNames, keyOffsets} {
		if _, ok := doc[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, specError("missing required keys", missing...)
	}

	var unknown []string
	for key := range doc {
		if !knownKeys[key] {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		log.Warn("ignoring unknown specification keys", zap.Strings("keys", unknown))
	}

	names, err := stringList(doc[keyColumnNames])
	if err != nil {
		return nil, specError(err.Error(), keyColumnNames)
	}
	widths, err := intList(doc[keyOffsets])
	if err != nil {
		return nil, specError(err.Error(), keyOffsets)
	}

	var opts []LayoutOption

	if v, ok := doc[keyFixedWidthEncoding]; ok {
		name, err := stringValue(v)
		if err != nil {
			return nil, specError(err.Error(), keyFixedWidthEncoding)
		}
		opts = append(opts, WithFixedWidthEncoding(name))
	} else {
		log.Warn("specification key not set, applying default",
			zap.String("key", keyFixedWidthEncoding),
			zap.String("default", DefaultFixedWidthEncoding))
	}

	if v, ok := doc[keyDelimitedEncoding]; ok {
		name, err := stringValue(v)
		if err != nil {
			return nil, specError(err.Error(), keyDelimitedEncoding)
		}
		opts = append(opts, WithDelimitedEncoding(name))
	} else {
		log.Warn("specification key not set, applying default",
			zap.String("key", keyDelimitedEncoding),
			zap.String("default", DefaultDelimitedEncoding))
	}

	headerKey := keyIncludeHeader
	v, ok := doc[keyIncludeHeader]
	if !ok {
		headerKey = keyIncludeHeaderAlt
		v, ok = doc[keyIncludeHeaderAlt]
	}
	if ok {
		include, err := boolValue(v)
		if err != nil {
			return nil, specError(err.Error(), headerKey)
		}
		opts = append(opts, WithHeader(include))
	} else {
		log.Warn("specification key not set, header is not included",
			zap.String("key", keyIncludeHeader),
			zap.Bool("default", false))
	}

	return NewLayout(names, widths, opts...)
}

func stringList(v interface{}) ([]string, error) {
	switch v := v.(type) {
	case []string:
		return append([]string(nil), v...), nil
	case []interface{}:
		out := make([]string, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("item %d is %T, want string", i, item)
			}
			out[i] = s
		}
		return out, nil
	default:
		return nil, fmt.Errorf("is %T, want a list of strings", v)
	}
}

func intList(v interface{}) ([]int, error) {
	switch v := v.(type) {
	case []int:
		return append([]int(nil), v...), nil
	case []string:
		out := make([]int, len(v))
		for i, item := range v {
			n, err := intValue(item)
			if err != nil {
				return nil, errors.Wrapf(err, "item %d", i)
			}
			out[i] = n
		}
		return out, nil
	case []interface{}:
		out := make([]int, len(v))
		for i, item := range v {
			n, err := intValue(item)
			if err != nil {
				return nil, errors.Wrapf(err, "item %d", i)
			}
			out[i] = n
		}
		return out, nil
	default:
		return nil, fmt.Errorf("is %T, want a list of integers", v)
	}
}

// intValue accepts any integral number, or a string holding one, no larger in
// magnitude than MaxLineWidth. Whether the value is a usable width is left to
// NewLayout.
func intValue(v interface{}) (int, error) {
	switch v := v.(type) {
	case int:
		return int64Value(int64(v))
	case int64:
		return int64Value(v)
	case uint64:
		if v > MaxLineWidth {
			return 0, fmt.Errorf("%d is out of range", v)
		}
		return int(v), nil
	case float64:
		return floatValue(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int64Value(n)
		}
		f, err := v.Float64()
		if err != nil {
			return 0, fmt.Errorf("%s is not an integer", v)
		}
		return floatValue(f)
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%q is not an integer", v)
		}
		return int64Value(n)
	default:
		return 0, fmt.Errorf("is %T, want an integer", v)
	}
}

func int64Value(n int64) (int, error) {
	if n > MaxLineWidth || n < -MaxLineWidth {
		return 0, fmt.Errorf("%d is out of range", n)
	}
	return int(n), nil
}

func floatValue(f float64) (int, error) {
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("%v is not an integer", f)
	}
	if f > MaxLineWidth || f < -MaxLineWidth {
		return 0, fmt.Errorf("%v is out of range", f)
	}
	return int(f), nil
}

func stringValue(v interface{}) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("is %T, want string", v)
	}
	return s, nil
}

func boolValue(v interface{}) (bool, error) {
	switch v := v.(type) {
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return false, fmt.Errorf("%q is not a boolean", v)
		}
		return b, nil
	default:
		return false, fmt.Errorf("is %T, want a boolean", v)
	}
}
