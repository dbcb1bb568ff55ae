package domain

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strings"
)

// Field is a single key/value pair.
type Field struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// Fields is an ordered list of key/value pairs. Unlike url.Values it keeps
// insertion order, which is the order parameters are written on the wire.
type Fields []Field

// Set replaces the value of key, keeping the position of its first
// occurrence and dropping any later duplicates. Unknown keys are appended.
func (f *Fields) Set(key, value string) {
	*f = setField(*f, key, value)
}

// Add appends a pair without touching existing values of key.
func (f *Fields) Add(key, value string) {
	*f = append(*f, Field{Key: key, Value: value})
}

// Get returns the first value of key.
func (f Fields) Get(key string) (string, bool) {
	return getField(f, key)
}

// Del removes every pair with the given key.
func (f *Fields) Del(key string) {
	*f = delField(*f, key)
}

// Len returns the number of pairs.
func (f Fields) Len() int { return len(f) }

// Clone returns an independent copy.
func (f Fields) Clone() Fields {
	if f == nil {
		return nil
	}
	return append(Fields(nil), f...)
}

// Encode returns the pairs in "URL encoded" form, in insertion order.
func (f Fields) Encode() string {
	var b strings.Builder
	for i, p := range f {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}

// ParseFields decodes a URL query string. Unlike url.ParseQuery it keeps
// the order of the pairs and every duplicate key.
func ParseFields(raw string) (Fields, error) {
	var out Fields
	for raw != "" {
		var pair string
		pair, raw, _ = strings.Cut(raw, "&")
		if pair == "" {
			continue
		}
		k, v, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(k)
		if err != nil {
			return nil, err
		}
		value, err := url.QueryUnescape(v)
		if err != nil {
			return nil, err
		}
		out = append(out, Field{Key: key, Value: value})
	}
	return out, nil
}

// Values converts the pairs to url.Values. Order is lost.
func (f Fields) Values() url.Values {
	v := make(url.Values, len(f))
	for _, p := range f {
		v.Add(p.Key, p.Value)
	}
	return v
}

// MarshalJSON encodes the pairs as a JSON object in insertion order.
func (f Fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range f {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(p.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(p.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func setField(list []Field, key, value string) []Field {
	idx := -1
	out := list[:0:0]
	for _, p := range list {
		if p.Key != key {
			out = append(out, p)
			continue
		}
		if idx < 0 {
			idx = len(out)
			out = append(out, Field{Key: key, Value: value})
		}
	}
	if idx < 0 {
		out = append(out, Field{Key: key, Value: value})
	}
	return out
}

func getField(list []Field, key string) (string, bool) {
	for _, p := range list {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

func delField(list []Field, key string) []Field {
	out := list[:0:0]
	for _, p := range list {
		if p.Key != key {
			out = append(out, p)
		}
	}
	return out
}
