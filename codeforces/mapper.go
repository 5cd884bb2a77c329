package codeforces

import (
	"encoding/json"
	"reflect"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// Extra holds the JSON keys of an object that the record type does not declare.
// Values are kept verbatim so nothing the API sends is lost.
type Extra map[string]json.RawMessage

// Has reports whether key was present in the source object.
func (e Extra) Has(key string) bool {
	_, ok := e[key]
	return ok
}

// Get decodes the value stored under key into v. It returns false when the key is absent.
func (e Extra) Get(key string, v any) (bool, error) {
	raw, ok := e[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return true, errors.Wrapf(err, "decode extra field %q", key)
	}
	return true, nil
}

// Keys returns the undeclared keys in no particular order.
func (e Extra) Keys() []string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	return keys
}

// MapRecord maps one JSON object onto a record of type T.
func MapRecord[T any](obj json.RawMessage) (T, error) {
	var out T
	if err := json.Unmarshal(obj, &out); err != nil {
		var zero T
		return zero, errors.Wrapf(ErrMalformedResponse, "map %T: %v", out, err)
	}
	return out, nil
}

// MapRecords maps a JSON array of objects onto records of type T. An empty array yields an
// empty, non-nil slice.
func MapRecords[T any](list json.RawMessage) ([]T, error) {
	var out []T
	if err := json.Unmarshal(list, &out); err != nil {
		var zero T
		return nil, errors.Wrapf(ErrMalformedResponse, "map []%T: %v", zero, err)
	}
	return out, nil
}

// mapObject is the single mapping routine behind every record's UnmarshalJSON.
//
// dst must point to a struct whose fields already hold the record's defaults. Each key of the
// object is matched by exact name against the json tags of dst; a match is decoded into its
// field, nested record fields recursing through their own type. Keys that match no field, and
// values whose JSON type the field cannot hold, are kept verbatim in *extra and the field keeps
// its default. Only data that is not a JSON object is an error.
func mapObject(data []byte, dst any, extra *Extra) error {
	if isJSONNull(data) {
		return nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	v := reflect.ValueOf(dst).Elem()
	known := declaredFields(v.Type())
	for key, raw := range fields {
		if i, ok := known[key]; ok && decodeField(v.Field(i), raw) {
			continue
		}
		if *extra == nil {
			*extra = make(Extra)
		}
		(*extra)[key] = raw
	}
	return nil
}

// decodeField decodes raw into f and reports whether it fit. f is left untouched on failure.
func decodeField(f reflect.Value, raw json.RawMessage) bool {
	tmp := reflect.New(f.Type())
	tmp.Elem().Set(f)
	if err := json.Unmarshal(raw, tmp.Interface()); err != nil {
		return false
	}
	f.Set(tmp.Elem())
	return true
}

// marshalObject encodes v, a method-less copy of a record, and merges the record's undeclared
// keys back in. Declared fields win over extra keys of the same name.
func marshalObject(v any, extra Extra) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil || len(extra) == 0 {
		return data, err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	for key, raw := range extra {
		if _, ok := fields[key]; ok {
			continue
		}
		fields[key] = raw
	}
	return json.Marshal(fields)
}

var declaredFieldsCache sync.Map // reflect.Type -> map[string]int

// declaredFields maps the JSON keys a struct type declares through its json tags to field
// indexes. Keys are case-sensitive.
func declaredFields(t reflect.Type) map[string]int {
	if cached, ok := declaredFieldsCache.Load(t); ok {
		return cached.(map[string]int)
	}

	known := make(map[string]int, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		tag := f.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		if name == "" {
			name = f.Name
		}
		known[name] = i
	}

	actual, _ := declaredFieldsCache.LoadOrStore(t, known)
	return actual.(map[string]int)
}

func isJSONNull(data []byte) bool {
	return strings.TrimSpace(string(data)) == "null"
}
