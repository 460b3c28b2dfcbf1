package upstream

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnwrapListBareArray(t *testing.T) {
	body := []interface{}{
		map[string]interface{}{"id": "1"},
		map[string]interface{}{"id": "2"},
	}

	records := UnwrapList(body)
	assert.Len(t, records, 2)
	assert.Equal(t, "1", records[0].Field([]string{"id"}, ""))
}

func TestUnwrapListEnvelopeKeys(t *testing.T) {
	for _, key := range []string{"items", "data", "result", "value"} {
		body := map[string]interface{}{
			key: []interface{}{map[string]interface{}{"id": "1"}},
		}
		assert.Len(t, UnwrapList(body), 1, "envelope key %s", key)
	}
}

func TestUnwrapListEnvelopeOrder(t *testing.T) {
	// items wins over data when both are present.
	body := map[string]interface{}{
		"data":  []interface{}{map[string]interface{}{"id": "data"}},
		"items": []interface{}{map[string]interface{}{"id": "items"}},
	}

	records := UnwrapList(body)
	assert.Len(t, records, 1)
	assert.Equal(t, "items", records[0].Field([]string{"id"}, ""))
}

func TestUnwrapListEmptyShapes(t *testing.T) {
	assert.Empty(t, UnwrapList(nil))
	assert.Empty(t, UnwrapList(map[string]interface{}{}))
	assert.Empty(t, UnwrapList("not a collection"))
	assert.Empty(t, UnwrapList(map[string]interface{}{"data": "not an array"}))
}

func TestUnwrapListSkipsNonObjectItems(t *testing.T) {
	body := []interface{}{"scalar", map[string]interface{}{"id": "1"}, nil}

	records := UnwrapList(body)
	assert.Len(t, records, 1)
}

func TestUnwrapRecordBareObject(t *testing.T) {
	body := map[string]interface{}{"id": "1", "name": "North"}

	rec, ok := UnwrapRecord(body)
	assert.True(t, ok)
	assert.Equal(t, "North", rec.Field([]string{"name"}, ""))
}

func TestUnwrapRecordObjectEnvelope(t *testing.T) {
	body := map[string]interface{}{
		"data": map[string]interface{}{"id": "1", "name": "North"},
	}

	rec, ok := UnwrapRecord(body)
	assert.True(t, ok)
	assert.Equal(t, "1", rec.Field([]string{"id"}, ""))
}

func TestUnwrapRecordListEnvelopeTakesFirst(t *testing.T) {
	body := map[string]interface{}{
		"items": []interface{}{
			map[string]interface{}{"id": "first"},
			map[string]interface{}{"id": "second"},
		},
	}

	rec, ok := UnwrapRecord(body)
	assert.True(t, ok)
	assert.Equal(t, "first", rec.Field([]string{"id"}, ""))
}

func TestUnwrapRecordBareArray(t *testing.T) {
	body := []interface{}{map[string]interface{}{"id": "only"}}

	rec, ok := UnwrapRecord(body)
	assert.True(t, ok)
	assert.Equal(t, "only", rec.Field([]string{"id"}, ""))
}

func TestUnwrapRecordNoRecord(t *testing.T) {
	_, ok := UnwrapRecord(nil)
	assert.False(t, ok)

	_, ok = UnwrapRecord([]interface{}{})
	assert.False(t, ok)

	_, ok = UnwrapRecord("scalar")
	assert.False(t, ok)
}

func TestUnwrapRecordEmptyListEnvelopeFallsBackToObject(t *testing.T) {
	// An envelope whose list is empty still resolves to the outer object.
	body := map[string]interface{}{
		"items": []interface{}{},
		"total": "0",
	}

	rec, ok := UnwrapRecord(body)
	assert.True(t, ok)
	assert.Equal(t, "0", rec.Field([]string{"total"}, ""))
}
