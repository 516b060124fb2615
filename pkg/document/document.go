// Package document reads and writes the JSON files of the site data tree
// while keeping the key order of every object, so a migration that touches
// one field leaves the rest of the file byte-for-byte stable.
//
// Objects decode to *orderedmap.OrderedMap, arrays to []any and numbers to
// json.Number.
package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/iancoleman/orderedmap"

	"github.com/alexsab-ru/sitekit/internal/fsutil"
	"github.com/alexsab-ru/sitekit/pkg/errors"
)

// Map is the ordered object type used throughout sitekit.
type Map = orderedmap.OrderedMap

// NewMap returns an empty ordered object that encodes without HTML escaping.
func NewMap() *Map {
	m := orderedmap.New()
	m.SetEscapeHTML(false)
	return m
}

// Parse decodes a JSON document keeping object key order.
func Parse(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after top-level value")
	}
	return v, nil
}

// Load reads and parses the JSON file at path.
func Load(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	v, err := Parse(data)
	if err != nil {
		return nil, errors.WrapParse("json", path, err)
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := NewMap()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key is %T, not string", keyTok)
				}
				val, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				obj.Set(key, val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return obj, nil
		case '[':
			arr := []any{}
			for dec.More() {
				val, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				arr = append(arr, val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return arr, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t)
		}
	default:
		return t, nil
	}
}

// Encode renders v as JSON followed by a newline, indented with indent or
// compact when indent is empty. Non-ASCII text is written as UTF-8 and HTML
// characters are not escaped.
func Encode(v any, indent string) ([]byte, error) {
	var compact bytes.Buffer
	if err := encodeValue(&compact, v); err != nil {
		return nil, err
	}
	if indent == "" {
		compact.WriteByte('\n')
		return compact.Bytes(), nil
	}

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", indent); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

func encodeValue(buf *bytes.Buffer, v any) error {
	switch t := v.(type) {
	case nil:
		buf.WriteString("null")
	case *Map:
		if t == nil {
			buf.WriteString("null")
			return nil
		}
		return encodeObject(buf, t.Keys(), t.Get)
	case Map:
		return encodeObject(buf, t.Keys(), t.Get)
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return encodeObject(buf, keys, func(k string) (any, bool) {
			val, ok := t[k]
			return val, ok
		})
	case []any:
		buf.WriteByte('[')
		for i, item := range t {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeValue(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case []*Map:
		buf.WriteByte('[')
		for i, item := range t {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeValue(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	default:
		return encodeScalar(buf, t)
	}
	return nil
}

func encodeObject(buf *bytes.Buffer, keys []string, get func(string) (any, bool)) error {
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeScalar(buf, k); err != nil {
			return err
		}
		buf.WriteByte(':')
		val, _ := get(k)
		if err := encodeValue(buf, val); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

func encodeScalar(buf *bytes.Buffer, v any) error {
	var scratch bytes.Buffer
	enc := json.NewEncoder(&scratch)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Write(bytes.TrimRight(scratch.Bytes(), "\n"))
	return nil
}

// Write encodes v and atomically replaces path.
func Write(path string, v any, indent string) error {
	data, err := Encode(v, indent)
	if err != nil {
		return errors.WrapParse("json", path, err)
	}
	return fsutil.WriteFile(path, data)
}

// Differs reports whether the encoded form of v differs from the content of
// path, ignoring trailing newlines. A missing file always differs.
func Differs(path string, v any, indent string) (bool, error) {
	_, changed, err := encodeChanged(path, v, indent)
	return changed, err
}

// WriteIfChanged writes v to path only when Differs reports a change. It
// reports whether the file was written.
func WriteIfChanged(path string, v any, indent string) (bool, error) {
	data, changed, err := encodeChanged(path, v, indent)
	if err != nil || !changed {
		return false, err
	}
	if err := fsutil.WriteFile(path, data); err != nil {
		return false, err
	}
	return true, nil
}

// Sync brings path in line with v. In dry-run mode it only compares. It
// reports whether path existed before and whether its content differs.
func Sync(path string, v any, indent string, dryRun bool) (existed, changed bool, err error) {
	existed = fsutil.Exists(path)
	if dryRun {
		changed, err = Differs(path, v, indent)
	} else {
		changed, err = WriteIfChanged(path, v, indent)
	}
	return existed, changed, err
}

func encodeChanged(path string, v any, indent string) ([]byte, bool, error) {
	data, err := Encode(v, indent)
	if err != nil {
		return nil, false, errors.WrapParse("json", path, err)
	}
	current, err := os.ReadFile(path)
	if err != nil {
		return data, true, nil
	}
	return data, strings.TrimRight(string(current), "\n") != strings.TrimRight(string(data), "\n"), nil
}
