package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

func sampleReport() *Report {
	rows := []Row{
		{VoyageID: 1, VoyNo: "A1", TotalConsumption: 900, TEUs: 12, Weight: 150, PortCalls: 5, PortCallsSynthetic: true, PeakReefer: 3, IdleHours: 2.5},
		{VoyageID: 2, VoyNo: "A2", TotalConsumption: 1100, TEUs: 8, Weight: 90, PortCalls: 3, PortCallsSynthetic: true, PeakReefer: 1, IdleHours: 0},
	}
	totals := Summarize(rows)
	return &Report{
		VesselID:    7,
		VesselName:  "Sea Star",
		Month:       2,
		Year:        2024,
		KPI:         DefaultKPI,
		Rows:        rows,
		Totals:      totals,
		Chart:       NewChart([]string{"A1", "A2"}, []float64{900, 1100}, totals.Consumption.Average, DefaultKPI),
		GeneratedAt: time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"xlsx": FormatXLSX, " PDF ": FormatPDF, "yml": FormatYAML, "json": FormatJSON} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseFormat("docx")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	f, err := FormatFromPath("/tmp/out/report.csv")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)
}

func TestReport_Table(t *testing.T) {
	table := sampleReport().Table()

	assert.Equal(t, []string{"Metric", "A1", "A2", "Total", "Average"}, table[0])
	assert.Equal(t, []string{"Fuel consumption (L)", "900", "1100", "2000", "1000"}, table[1])
	assert.Equal(t, []string{"TEUs", "12", "8", "20", "10.00"}, table[2])
	assert.Equal(t, []string{"Idle time (h)", "2.50", "0.00", "2.50", "1.25"}, table[6])
}

func TestExport_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, FormatCSV, sampleReport()))

	r := csv.NewReader(&buf)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)

	assert.Equal(t, "Sea Star - Fuel consumption 2/2024", records[0][0])
	assert.Equal(t, "Port calls (estimated)", records[5][0])
	assert.Equal(t, syntheticNote, records[len(records)-1][0])
}

func TestExport_JSONAndYAML(t *testing.T) {
	var jbuf bytes.Buffer
	require.NoError(t, Export(&jbuf, FormatJSON, sampleReport()))
	var fromJSON Report
	require.NoError(t, json.Unmarshal(jbuf.Bytes(), &fromJSON))
	assert.Equal(t, 2000.0, fromJSON.Totals.Consumption.Total)
	assert.True(t, fromJSON.Rows[0].PortCallsSynthetic)

	var ybuf bytes.Buffer
	require.NoError(t, Export(&ybuf, FormatYAML, sampleReport()))
	var fromYAML map[string]any
	require.NoError(t, yaml.Unmarshal(ybuf.Bytes(), &fromYAML))
	assert.Equal(t, "Sea Star", fromYAML["vesselName"])
}

func TestExport_XLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, FormatXLSX, sampleReport()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue(xlsxSheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Sea Star - Fuel consumption 2/2024", title)

	voy, err := f.GetCellValue(xlsxSheet, "C3")
	require.NoError(t, err)
	assert.Equal(t, "A2", voy)

	label, err := f.GetCellValue(xlsxSheet, "A4")
	require.NoError(t, err)
	assert.Equal(t, "Fuel consumption (L)", label)
}

func TestExport_PDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, FormatPDF, sampleReport()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestExportFile(t *testing.T) {
	r := sampleReport()
	path := filepath.Join(t.TempDir(), "nested", r.FileName(FormatCSV))

	require.NoError(t, ExportFile(path, FormatCSV, r))
	assert.Equal(t, "fuel-report_7_2024-02.csv", filepath.Base(path))

	assert.ErrorIs(t, Export(&bytes.Buffer{}, Format("docx"), r), ErrUnsupportedFormat)
}
