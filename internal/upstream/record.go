package upstream

import (
	"strconv"
	"strings"
)

// Record is a raw legacy payload object with unknown key casing. The same
// logical field may arrive as camelCase, PascalCase or an abbreviation, so
// consumers resolve fields through ordered candidate-key lists instead of
// struct tags.
type Record map[string]interface{}

// AsRecord coerces a decoded JSON value into a Record.
func AsRecord(v interface{}) (Record, bool) {
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil, false
	}
	return Record(m), true
}

// Field returns the first candidate key whose value is non-empty after
// trimming, else fallback. The candidate order is fixed per entity, so the
// resolved value is stable across calls.
func (r Record) Field(keys []string, fallback string) string {
	for _, key := range keys {
		if v, ok := r[key]; ok {
			if s := coerceString(v); s != "" {
				return s
			}
		}
	}
	return fallback
}

// Raw returns the first candidate key's raw value, nil when absent.
func (r Record) Raw(keys []string) interface{} {
	for _, key := range keys {
		if v, ok := r[key]; ok && v != nil {
			return v
		}
	}
	return nil
}

func coerceString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		// JSON numbers decode as float64; ids are integral in practice.
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}
