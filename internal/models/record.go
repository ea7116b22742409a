package models

import (
	"bytes"
	"encoding/json"
	"reflect"
	"sort"
	"strings"
	"sync"
)

// Extra holds the JSON members of a record that have no typed field. They are
// written back unchanged, so records pass through the client without losing
// whatever else the backend or page put in them.
type Extra map[string]json.RawMessage

var fieldNames sync.Map // reflect.Type -> map[string]bool

// jsonFieldNames returns the member names the struct type t encodes
func jsonFieldNames(t reflect.Type) map[string]bool {
	if cached, ok := fieldNames.Load(t); ok {
		return cached.(map[string]bool)
	}

	names := make(map[string]bool, t.NumField())
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
		names[name] = true
	}
	fieldNames.Store(t, names)
	return names
}

// decodeRecord unmarshals data into typed, a pointer to an alias struct
// without custom methods, and returns the members typed does not know.
func decodeRecord(data []byte, typed any) (Extra, error) {
	if err := json.Unmarshal(data, typed); err != nil {
		return nil, err
	}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil, nil
	}

	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return nil, err
	}
	known := jsonFieldNames(reflect.TypeOf(typed).Elem())

	var extra Extra
	for name, value := range members {
		if known[name] {
			continue
		}
		if extra == nil {
			extra = make(Extra)
		}
		extra[name] = value
	}
	return extra, nil
}

// encodeRecord marshals typed, an alias struct value, and appends extra
// members after the typed ones.
func encodeRecord(typed any, extra Extra) ([]byte, error) {
	data, err := json.Marshal(typed)
	if err != nil || len(extra) == 0 {
		return data, err
	}

	known := jsonFieldNames(reflect.TypeOf(typed))
	names := make([]string, 0, len(extra))
	for name := range extra {
		if !known[name] {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return data, nil
	}
	sort.Strings(names)

	var buf bytes.Buffer
	buf.Write(data[:len(data)-1])
	empty := len(data) == 2
	for _, name := range names {
		if !empty {
			buf.WriteByte(',')
		}
		empty = false
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value := extra[name]
		if len(value) == 0 {
			value = json.RawMessage("null")
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
