package schedule

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// intValue reads an integer out of a loosely typed value.
// Strings are parsed as base-10 so "08" stays 8.
func intValue(v interface{}) (int, bool) {
	switch t := v.(type) {
	case nil, bool:
		return 0, false
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false
		}
		if n, err := strconv.Atoi(s); err == nil {
			return n, true
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int(f), true
		}
		return 0, false
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// boolValue reads a boolean out of a loosely typed value. nil is "absent", not false.
func boolValue(v interface{}) (bool, bool) {
	switch t := v.(type) {
	case nil:
		return false, false
	case bool:
		return t, true
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(t))
		if err != nil {
			return false, false
		}
		return b, true
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return false, false
	}
	return b, true
}

func stringValue(v interface{}) string {
	s, err := cast.ToStringE(v)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

// decodeJSON decodes a structured-data string. ok is false when s is not valid JSON.
func decodeJSON(s string) (interface{}, bool) {
	var out interface{}
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, false
	}
	return out, true
}

// stringMap reads a name map ("blockNames") stored as a document or as a JSON string.
func stringMap(v interface{}) map[string]string {
	if s, ok := v.(string); ok {
		decoded, ok := decodeJSON(s)
		if !ok {
			return nil
		}
		v = decoded
	}
	m, ok := v.(map[string]interface{})
	if !ok || len(m) == 0 {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, val := range m {
		if name := stringValue(val); name != "" {
			out[k] = name
		}
	}
	return out
}
