package upstream

// Envelope keys the legacy API wraps list payloads under, in probe order.
var envelopeKeys = []string{"items", "data", "result", "value"}

// UnwrapList flattens a decoded response body into a slice of records. A
// bare array is returned as-is; an envelope object is probed for the first
// array-valued conventional key. Absence of data is an empty slice, never
// an error.
func UnwrapList(body interface{}) []Record {
	if body == nil {
		return []Record{}
	}

	if arr, ok := body.([]interface{}); ok {
		return toRecords(arr)
	}

	obj, ok := body.(map[string]interface{})
	if !ok {
		return []Record{}
	}
	for _, key := range envelopeKeys {
		if arr, ok := obj[key].([]interface{}); ok {
			return toRecords(arr)
		}
	}
	return []Record{}
}

// UnwrapRecord resolves a single-object response. Envelope objects are
// probed first: a conventional key holding an object or a one-element list
// yields that inner record, otherwise the object itself is the record.
func UnwrapRecord(body interface{}) (Record, bool) {
	if arr, ok := body.([]interface{}); ok {
		records := toRecords(arr)
		if len(records) == 0 {
			return nil, false
		}
		return records[0], true
	}

	rec, ok := AsRecord(body)
	if !ok {
		return nil, false
	}
	for _, key := range envelopeKeys {
		switch inner := rec[key].(type) {
		case map[string]interface{}:
			return Record(inner), true
		case []interface{}:
			records := toRecords(inner)
			if len(records) > 0 {
				return records[0], true
			}
		}
	}
	return rec, true
}

func toRecords(arr []interface{}) []Record {
	records := make([]Record, 0, len(arr))
	for _, item := range arr {
		if rec, ok := AsRecord(item); ok {
			records = append(records, rec)
		}
	}
	return records
}
