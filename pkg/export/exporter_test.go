package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleDataset() Dataset {
	return Dataset{
		Headers: []string{"REGISTERNO", "NAME"},
		Rows: []map[string]string{
			{"REGISTERNO": "101", "NAME": "Priya"},
			{"REGISTERNO": "102"}, // missing NAME
		},
	}
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(sampleDataset())
	require.NoError(t, err)
	assert.Equal(t, "REGISTERNO,NAME\n101,Priya\n102,\n", string(out))
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestXLSXExporterRender(t *testing.T) {
	out, err := NewXLSXExporter().Render(sampleDataset())
	require.NoError(t, err)

	wb, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer wb.Close() //nolint:errcheck

	sheets := wb.GetSheetList()
	assert.Equal(t, []string{"Students"}, sheets)

	value, err := wb.GetCellValue("Students", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Priya", value)

	value, err = wb.GetCellValue("Students", "B3")
	require.NoError(t, err)
	assert.Equal(t, "", value)
}

func TestPDFExporterRender(t *testing.T) {
	out, err := NewPDFExporter().Render(sampleDataset(), "III B.Sc CS")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
