package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weekDataset() Dataset {
	return Dataset{
		Headers: []string{"Period", "Monday"},
		Rows: []map[string]string{
			{"Period": "1", "Monday": "Programación\n1º DAM"},
			{"Period": "2"},
		},
		Fills: []map[string]Fill{{"Monday": {R: 173, G: 216, B: 230}}},
	}
}

func TestCSVExporterKeepsMultilineCells(t *testing.T) {
	out, err := NewCSVExporter().Render(weekDataset())
	require.NoError(t, err)
	assert.Equal(t, "Period,Monday\n1,\"Programación\n1º DAM\"\n2,\n", string(out))
}

func TestCSVExporterLineSeparator(t *testing.T) {
	out, err := (&CSVExporter{LineSeparator: " / "}).Render(weekDataset())
	require.NoError(t, err)
	assert.Contains(t, string(out), "1,Programación / 1º DAM\n")
}

func TestExportersRequireHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
	_, err = NewPDFExporter().Render(Dataset{}, "empty")
	assert.Error(t, err)
}

func TestPDFExporterProducesDocument(t *testing.T) {
	out, err := (&PDFExporter{Orientation: "L"}).Render(weekDataset(), "Horario")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestDatasetFillLookup(t *testing.T) {
	d := weekDataset()
	f, ok := d.fill(0, "Monday")
	assert.True(t, ok)
	assert.Equal(t, Fill{R: 173, G: 216, B: 230}, f)

	_, ok = d.fill(1, "Monday")
	assert.False(t, ok)
}
