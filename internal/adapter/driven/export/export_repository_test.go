package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/diillson/cpi-dashboard-go/internal/adapter/driven/chart"
	"github.com/diillson/cpi-dashboard-go/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var fixedNow = time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)

func newTestRepository() *ExportRepositoryImpl {
	return &ExportRepositoryImpl{now: func() time.Time { return fixedNow }}
}

func sampleReport() entity.Report {
	records := []entity.Record{
		{ID: "a1", Sector: "Rural", Year: 2011, Month: "Jan", State: "Andhra Pradesh", Value: 95.2},
		{ID: "a2", Sector: "Rural", Year: 2011, Month: "Feb", State: "Andhra Pradesh", Value: 101.5},
	}
	return entity.Report{
		Source:   "testdata/sample_cpi_data.json",
		Criteria: entity.Criteria{Year: 2011, Sector: "Rural"},
		Summary:  entity.Summary{Count: 2, Min: 95.2, Max: 101.5, Mean: 98.35, Threshold: 100, AboveThreshold: 1},
		Records:  records,
		Skipped:  1,
	}
}

func TestExportToCSV(t *testing.T) {
	dir := t.TempDir()

	path, err := newTestRepository().ExportToCSV(sampleReport(), "cpi", dir)
	require.NoError(t, err)
	assert.Equal(t, "cpi_20240305_143000.csv", filepath.Base(path))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, recordHeaders, rows[0])
	assert.Equal(t, []string{"a1", "Rural", "2011", "Jan", "Andhra Pradesh", "95.2"}, rows[1])
	assert.Equal(t, "101.5", rows[2][5])
}

func TestExportToJSON(t *testing.T) {
	dir := t.TempDir()

	path, err := newTestRepository().ExportToJSON(sampleReport(), "cpi", dir)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got entity.Report
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, sampleReport(), got)
}

func TestExportToXLSX(t *testing.T) {
	dir := t.TempDir()

	path, err := newTestRepository().ExportToXLSX(sampleReport(), "cpi", dir)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(recordsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, recordHeaders, rows[0])
	assert.Equal(t, "Jan", rows[1][3])

	sector, err := f.GetCellValue(summarySheet, "B3")
	require.NoError(t, err)
	assert.Equal(t, "Rural", sector)
}

func TestExportToPDF(t *testing.T) {
	dir := t.TempDir()
	report := sampleReport()

	charts := chart.NewChartRepository()
	for _, kind := range []entity.ChartKind{entity.ChartBar, entity.ChartRule} {
		png, err := charts.RenderToFile(entity.NewChartSpec(kind, 100), report.Records, dir, "cpi")
		require.NoError(t, err)
		report.ChartFiles = append(report.ChartFiles, png)
	}

	path, err := newTestRepository().ExportToPDF(report, "cpi", filepath.Join(dir, "reports"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, len(data) > 4 && string(data[:4]) == "%PDF")
}

func TestExportToPDFWithoutRecords(t *testing.T) {
	report := sampleReport()
	report.Records = []entity.Record{}
	report.Summary = entity.Summary{Threshold: 100}

	path, err := newTestRepository().ExportToPDF(report, "empty", t.TempDir())
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestChartTitle(t *testing.T) {
	assert.Equal(t, "CPI by Month (inverted)", chartTitle("/tmp/cpi_2011_inverted-bar.png"))
	assert.Equal(t, "CPI by Month", chartTitle("/tmp/cpi_2011_bar.png"))
	assert.Equal(t, "CPI vs Break Even Threshold", chartTitle("cpi_rule.png"))
	assert.Equal(t, "other", chartTitle("other.png"))
}
