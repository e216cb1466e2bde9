package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVExporterRender(t *testing.T) {
	exporter := NewCSVExporter()

	payload, err := exporter.Render(Dataset{
		Headers: []string{"No", "Nama Guru", "Total Beban"},
		Rows: [][]string{
			{"1", "Budi Santoso", "24.00"},
			{"", "Rata-rata (1 guru)"},
		},
	})
	require.NoError(t, err)

	lines := bytes.Split(bytes.TrimSpace(payload), []byte("\n"))
	require.Len(t, lines, 3)
	assert.Equal(t, "No,Nama Guru,Total Beban", string(bytes.TrimSpace(lines[0])))
	assert.Equal(t, "1,Budi Santoso,24.00", string(bytes.TrimSpace(lines[1])))
	// Short rows pad out to the header width.
	assert.Equal(t, ",Rata-rata (1 guru),", string(bytes.TrimSpace(lines[2])))
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	exporter := NewCSVExporter()

	_, err := exporter.Render(Dataset{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one header")
}

func TestPDFExporterRender(t *testing.T) {
	exporter := NewPDFExporter()

	payload, err := exporter.Render(Dataset{
		Headers: []string{"No", "Nama Guru"},
		Rows:    [][]string{{"1", "Budi Santoso"}, {"2"}},
	}, "Rekap Beban Kerja")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(payload, []byte("%PDF")))
}

func TestPDFExporterRenderDocument(t *testing.T) {
	exporter := NewPDFExporter()

	payload, err := exporter.RenderDocument("SK Pembagian Tugas", "Paragraf satu.\n\nParagraf dua.")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(payload, []byte("%PDF")))

	_, err = exporter.RenderDocument("SK", "   ")
	require.Error(t, err)
}
