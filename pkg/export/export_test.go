package export

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVRenderFollowsHeaderOrder(t *testing.T) {
	dataset := Dataset{
		Headers: []string{"ID", "Status", "Description"},
		Rows: []map[string]string{
			{"Description": "late pickup", "ID": "C1", "Status": "Open", "Ignored": "x"},
			{"ID": "C2"},
		},
	}

	content, err := NewCSVExporter().Render(dataset)
	require.NoError(t, err)
	assert.Equal(t, "ID,Status,Description\nC1,Open,late pickup\nC2,,\n", string(content))
}

func TestCSVRenderRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	require.Error(t, err)
}

func TestCSVRenderDeterministic(t *testing.T) {
	dataset := Dataset{
		Headers: []string{"ID", "Status"},
		Rows:    []map[string]string{{"ID": "C1", "Status": "Open"}},
	}
	first, err := NewCSVExporter().Render(dataset)
	require.NoError(t, err)
	second, err := NewCSVExporter().Render(dataset)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestClipShortValueUntouched(t *testing.T) {
	assert.Equal(t, "late pickup", clip("late pickup", 60))
}

func TestClipCutsOnRuneBoundary(t *testing.T) {
	value := "شكوى بخصوص تأخر الحافلة المدرسية عن الموعد المحدد صباح كل يوم"

	clipped := clip(value, 20)
	assert.True(t, utf8.ValidString(clipped))
	assert.Equal(t, 20, utf8.RuneCountInString(clipped))
	assert.Equal(t, "…", string([]rune(clipped)[19]))
}

func TestPDFRenderProducesDocument(t *testing.T) {
	dataset := Dataset{
		Headers: []string{"ID", "Description"},
		Rows:    []map[string]string{{"ID": "C1", "Description": "late pickup"}},
	}

	content, err := NewPDFExporter().Render(dataset, "Complaint register")
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(content[:4]))
}
