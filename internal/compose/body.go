package compose

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"sort"
	"strconv"

	"github.com/google/go-querystring/query"
	"github.com/tidwall/gjson"

	"github.com/utkit/utforge/internal/domain"
)

// EncodeBody writes d.Body onto req. method is the effective method, the
// one the request is transmitted with.
//
// A body that is not a keyed collection cannot be spread over query or
// form fields; it is left out and skipped is true. Callers decide whether
// that deserves a warning.
func EncodeBody(req *domain.Request, d domain.Draft, method string) (skipped bool, err error) {
	if d.RawJSONBody {
		b, err := json.Marshal(d.Body)
		if err != nil {
			return false, fmt.Errorf("encode json body: %w", err)
		}
		req.Body = b
		return false, nil
	}

	if isNil(d.Body) {
		return false, nil
	}

	fields, keyed, err := Flatten(d.Body)
	if err != nil {
		return false, err
	}
	if !keyed {
		return true, nil
	}

	dst := &req.Form
	if method == http.MethodGet {
		dst = &req.Query
	}
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if seen[f.Key] {
			dst.Add(f.Key, f.Value)
			continue
		}
		seen[f.Key] = true
		dst.Set(f.Key, f.Value)
	}
	return false, nil
}

// Flatten converts a keyed collection into ordered fields. keyed is false
// when body has no top-level keys to spread.
//
// domain.Fields and JSON objects keep their order; maps and url.Values are
// emitted in key order; structs are encoded through their `url` tags.
func Flatten(body any) (fields domain.Fields, keyed bool, err error) {
	switch b := body.(type) {
	case domain.Fields:
		return b.Clone(), true, nil
	case *domain.Fields:
		if b == nil {
			return nil, false, nil
		}
		return b.Clone(), true, nil
	case url.Values:
		return fromValues(b), true, nil
	case json.RawMessage:
		return fromJSON(b)
	}

	v := reflect.ValueOf(body)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, false, nil
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return nil, false, nil
		}
		return fromMap(v)
	case reflect.Struct:
		vals, err := query.Values(v.Interface())
		if err != nil {
			return nil, false, fmt.Errorf("encode struct body: %w", err)
		}
		return fromValues(vals), true, nil
	}
	return nil, false, nil
}

func fromValues(vals url.Values) domain.Fields {
	keys := make([]string, 0, len(vals))
	for k := range vals {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out domain.Fields
	for _, k := range keys {
		for _, v := range vals[k] {
			out.Add(k, v)
		}
	}
	return out
}

func fromMap(v reflect.Value) (domain.Fields, bool, error) {
	keys := make([]string, 0, v.Len())
	for _, k := range v.MapKeys() {
		keys = append(keys, k.String())
	}
	sort.Strings(keys)

	out := make(domain.Fields, 0, len(keys))
	for _, k := range keys {
		val := v.MapIndex(reflect.ValueOf(k).Convert(v.Type().Key()))
		s, err := FormatValue(val.Interface())
		if err != nil {
			return nil, false, fmt.Errorf("encode field %q: %w", k, err)
		}
		out.Add(k, s)
	}
	return out, true, nil
}

func fromJSON(raw json.RawMessage) (domain.Fields, bool, error) {
	doc := gjson.ParseBytes(raw)
	if !doc.IsObject() {
		return nil, false, nil
	}
	var out domain.Fields
	doc.ForEach(func(key, value gjson.Result) bool {
		if value.Type == gjson.String {
			out.Add(key.String(), value.String())
		} else {
			out.Add(key.String(), value.Raw)
		}
		return true
	})
	return out, true, nil
}

// FormatValue renders a single field value. Scalars use their canonical
// text form; anything nested is JSON encoded.
func FormatValue(v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case []byte:
		return string(t), nil
	case bool:
		return strconv.FormatBool(t), nil
	case int:
		return strconv.Itoa(t), nil
	case int8, int16, int32, int64:
		return strconv.FormatInt(reflect.ValueOf(t).Int(), 10), nil
	case uint, uint8, uint16, uint32, uint64:
		return strconv.FormatUint(reflect.ValueOf(t).Uint(), 10), nil
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32), nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case json.Number:
		return t.String(), nil
	case fmt.Stringer:
		return t.String(), nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
