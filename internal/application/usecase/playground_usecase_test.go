package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/diillson/cpi-dashboard-go/internal/domain/entity"
	"github.com/diillson/cpi-dashboard-go/internal/domain/repository"
	"github.com/diillson/cpi-dashboard-go/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cpiJSON = `{
  "fields": [{"label": "Sector"}, {"label": "Year"}, {"label": "Name"}, {"label": "Andhra Pradesh"}],
  "data": [
    ["Rural", 2011, "Jan", 95.2],
    ["Urban", 2011, "Jan", 90.1],
    ["Rural", 2011, "Feb", "N/A"],
    ["Rural", 2011, "Mar", 104.1],
    ["Rural", 2012, "Jan", 98.0]
  ]
}`

// --- fakes ---

type recordingConsole struct {
	infos, warnings, errors, successes []string
	printed                            []string
	bars                               [][]types.BarPoint
}

func (c *recordingConsole) Print(a ...interface{})                 { c.printed = append(c.printed, fmt.Sprint(a...)) }
func (c *recordingConsole) Printf(format string, a ...interface{}) { c.printed = append(c.printed, fmt.Sprintf(format, a...)) }
func (c *recordingConsole) Println(a ...interface{})               { c.printed = append(c.printed, fmt.Sprint(a...)) }
func (c *recordingConsole) LogInfo(format string, a ...interface{}) {
	c.infos = append(c.infos, fmt.Sprintf(format, a...))
}
func (c *recordingConsole) LogWarning(format string, a ...interface{}) {
	c.warnings = append(c.warnings, fmt.Sprintf(format, a...))
}
func (c *recordingConsole) LogError(format string, a ...interface{}) {
	c.errors = append(c.errors, fmt.Sprintf(format, a...))
}
func (c *recordingConsole) LogSuccess(format string, a ...interface{}) {
	c.successes = append(c.successes, fmt.Sprintf(format, a...))
}
func (c *recordingConsole) Status(message string) types.StatusHandle { return noopStatus{} }
func (c *recordingConsole) CreateTable() types.TableInterface       { return &fakeTable{} }
func (c *recordingConsole) DisplayRecordBars(title string, points []types.BarPoint, threshold float64) {
	c.bars = append(c.bars, points)
}

type noopStatus struct{}

func (noopStatus) Update(string) {}
func (noopStatus) Stop()         {}

type fakeTable struct{ rows int }

func (t *fakeTable) AddColumn(name string, options ...interface{}) {}
func (t *fakeTable) AddRow(cells ...interface{})                   { t.rows++ }
func (t *fakeTable) Render() string                                { return fmt.Sprintf("table(%d rows)", t.rows) }

type fakeDatasets struct {
	data    string
	err     error
	profile string
	region  string
	source  string
}

func (f *fakeDatasets) factory(profile, region string) repository.DatasetRepository {
	f.profile, f.region = profile, region
	return f
}

func (f *fakeDatasets) Fetch(ctx context.Context, source string) ([]byte, error) {
	f.source = source
	return []byte(f.data), f.err
}

type fakeCharts struct {
	rendered []entity.ChartKind
	fail     entity.ChartKind
}

func (f *fakeCharts) Render(spec entity.ChartSpec, records []entity.Record, w io.Writer) error {
	return nil
}

func (f *fakeCharts) RenderToFile(spec entity.ChartSpec, records []entity.Record, dir, base string) (string, error) {
	if spec.Kind == f.fail {
		return "", errors.New("boom")
	}
	f.rendered = append(f.rendered, spec.Kind)
	return filepath.Join(dir, fmt.Sprintf("%s_%s.png", base, spec.Kind)), nil
}

type fakeExports struct {
	reports []entity.Report
	types   []string
}

func (f *fakeExports) record(kind string, report entity.Report) (string, error) {
	f.types = append(f.types, kind)
	f.reports = append(f.reports, report)
	return "/out/report." + kind, nil
}

func (f *fakeExports) ExportToCSV(r entity.Report, name, dir string) (string, error) {
	return f.record("csv", r)
}
func (f *fakeExports) ExportToJSON(r entity.Report, name, dir string) (string, error) {
	return f.record("json", r)
}
func (f *fakeExports) ExportToXLSX(r entity.Report, name, dir string) (string, error) {
	return "", errors.New("disk full")
}
func (f *fakeExports) ExportToPDF(r entity.Report, name, dir string) (string, error) {
	return f.record("pdf", r)
}

type fakeConfig struct {
	cfg *types.Config
	err error
}

func (f *fakeConfig) LoadConfigFile(path string) (*types.Config, error) { return f.cfg, f.err }

type fixture struct {
	uc       *PlaygroundUseCase
	console  *recordingConsole
	datasets *fakeDatasets
	charts   *fakeCharts
	exports  *fakeExports
	config   *fakeConfig
}

func newFixture() *fixture {
	f := &fixture{
		console:  &recordingConsole{},
		datasets: &fakeDatasets{data: cpiJSON},
		charts:   &fakeCharts{},
		exports:  &fakeExports{},
		config:   &fakeConfig{},
	}
	f.uc = NewPlaygroundUseCase(f.datasets.factory, f.charts, f.exports, f.config, f.console)
	return f
}

func defaultArgs() *types.CLIArgs {
	return &types.CLIArgs{
		Source:      "testdata/cpi.json",
		Year:        2011,
		Sector:      "Rural",
		RegionField: 3,
		Threshold:   100,
		Dir:         "/tmp/out",
	}
}

// --- tests ---

func TestRun(t *testing.T) {
	t.Run("filters, draws bars and renders every chart", func(t *testing.T) {
		f := newFixture()

		require.NoError(t, f.uc.Run(context.Background(), defaultArgs()))

		assert.Equal(t, "testdata/cpi.json", f.datasets.source)
		require.Len(t, f.console.bars, 1)
		assert.Equal(t, []types.BarPoint{{Label: "Jan", Value: 95.2}, {Label: "Mar", Value: 104.1}}, f.console.bars[0])
		assert.Equal(t, entity.AllChartKinds, f.charts.rendered)
		assert.Contains(t, f.console.warnings, `Skipped data row 2: non-numeric value "N/A"`)
		assert.Contains(t, f.console.successes, "Loaded 4 records from testdata/cpi.json")
		assert.Empty(t, f.exports.types)
	})

	t.Run("requires a source", func(t *testing.T) {
		f := newFixture()
		args := defaultArgs()
		args.Source = ""

		assert.ErrorIs(t, f.uc.Run(context.Background(), args), types.ErrSourceRequired)
	})

	t.Run("rejects unknown chart kinds before loading", func(t *testing.T) {
		f := newFixture()
		args := defaultArgs()
		args.Charts = []string{"pie"}

		assert.ErrorIs(t, f.uc.Run(context.Background(), args), types.ErrUnknownChartKind)
		assert.Empty(t, f.datasets.source)
	})

	t.Run("propagates format errors", func(t *testing.T) {
		f := newFixture()
		f.datasets.data = `{"data": []}`

		err := f.uc.Run(context.Background(), defaultArgs())
		assert.ErrorIs(t, err, types.ErrInvalidFormat)
	})

	t.Run("strict mode fails on non-numeric values", func(t *testing.T) {
		f := newFixture()
		args := defaultArgs()
		args.Strict = true

		err := f.uc.Run(context.Background(), args)
		var fe *types.FormatError
		require.True(t, errors.As(err, &fe))
		assert.Equal(t, "data[2][3]", fe.Path)
	})

	t.Run("propagates fetch errors", func(t *testing.T) {
		f := newFixture()
		f.datasets.err = errors.New("access denied")

		assert.ErrorContains(t, f.uc.Run(context.Background(), defaultArgs()), "access denied")
	})

	t.Run("no matching records skips charts", func(t *testing.T) {
		f := newFixture()
		args := defaultArgs()
		args.Year = 1999

		require.NoError(t, f.uc.Run(context.Background(), args))
		assert.Empty(t, f.charts.rendered)
		assert.Contains(t, f.console.warnings, "No records found for sector 'Rural' in 1999. Skipping charts.")
	})

	t.Run("list mode stops after loading", func(t *testing.T) {
		f := newFixture()
		args := defaultArgs()
		args.List = true

		require.NoError(t, f.uc.Run(context.Background(), args))
		assert.Empty(t, f.console.bars)
		assert.Empty(t, f.charts.rendered)
	})

	t.Run("exports requested reports with rendered charts", func(t *testing.T) {
		f := newFixture()
		f.charts.fail = entity.ChartArea
		args := defaultArgs()
		args.ReportName = "cpi"
		args.ReportType = []string{"csv", "xlsx", "pdf", "docx"}

		require.NoError(t, f.uc.Run(context.Background(), args))

		assert.Equal(t, []string{"csv", "pdf"}, f.exports.types)
		report := f.exports.reports[1]
		assert.Equal(t, entity.Criteria{Year: 2011, Sector: "Rural"}, report.Criteria)
		assert.Len(t, report.Records, 2)
		assert.Equal(t, 1, report.Skipped)
		assert.Equal(t, 2, report.Summary.Count)
		assert.Len(t, report.ChartFiles, 4)
		assert.Equal(t, "/tmp/out/cpi_bar.png", report.ChartFiles[0])

		assert.Contains(t, f.console.errors, "Failed to render area chart: boom")
		assert.Contains(t, f.console.errors, "Failed to export to XLSX: disk full")
		assert.Contains(t, f.console.warnings, "unsupported report type: docx")
	})

	t.Run("uses the config file and aws settings", func(t *testing.T) {
		f := newFixture()
		region := 3
		f.config.cfg = &types.Config{
			Source:      "s3://bucket/cpi.json",
			Sector:      "Urban",
			RegionField: &region,
			AWSProfile:  "analytics",
			AWSRegion:   "ap-south-1",
		}
		args := defaultArgs()
		args.ConfigFile = "cpi.yaml"

		require.NoError(t, f.uc.Run(context.Background(), args))

		assert.Equal(t, "s3://bucket/cpi.json", f.datasets.source)
		assert.Equal(t, "analytics", f.datasets.profile)
		assert.Equal(t, "ap-south-1", f.datasets.region)
		require.Len(t, f.console.bars, 1)
		assert.Equal(t, []types.BarPoint{{Label: "Jan", Value: 90.1}}, f.console.bars[0])
	})

	t.Run("config file errors are returned", func(t *testing.T) {
		f := newFixture()
		f.config.err = errors.New("error parsing YAML file")
		args := defaultArgs()
		args.ConfigFile = "cpi.yaml"

		assert.ErrorContains(t, f.uc.Run(context.Background(), args), "error parsing YAML file")
	})
}

func TestLoadDatasetCapsSkippedWarnings(t *testing.T) {
	rows := make([]string, 0, 15)
	for i := 0; i < 15; i++ {
		rows = append(rows, `["Rural",2011,"Jan",null]`)
	}
	f := newFixture()
	f.datasets.data = `{"fields":[{"label":"a"},{"label":"b"},{"label":"c"},{"label":"d"}],"data":[` + strings.Join(rows, ",") + `]}`

	ds, err := f.uc.LoadDataset(context.Background(), defaultArgs())
	require.NoError(t, err)
	assert.Empty(t, ds.Records)
	assert.Len(t, ds.Skipped, 15)
	assert.Len(t, f.console.warnings, maxSkippedWarnings+1)
	assert.Equal(t, "... and 5 more skipped rows", f.console.warnings[maxSkippedWarnings])
}

func TestMergeConfig(t *testing.T) {
	threshold := 98.0
	regionField := 4
	cfg := &types.Config{
		Source:      "cfg.json",
		Year:        2013,
		Sector:      "Urban",
		RegionField: &regionField,
		Threshold:   &threshold,
		Charts:      []string{"line"},
		ReportName:  "from-config",
		ReportType:  []string{"pdf"},
		Dir:         "reports",
		Strict:      true,
		AWSProfile:  "prod",
	}

	t.Run("config fills unset flags", func(t *testing.T) {
		args := defaultArgs()
		require.NoError(t, MergeConfig(args, cfg))

		assert.Equal(t, "cfg.json", args.Source)
		assert.Equal(t, 2013, args.Year)
		assert.Equal(t, "Urban", args.Sector)
		assert.Equal(t, 4, args.RegionField)
		assert.Equal(t, 98.0, args.Threshold)
		assert.Equal(t, []string{"line"}, args.Charts)
		assert.Equal(t, "from-config", args.ReportName)
		assert.Equal(t, []string{"pdf"}, args.ReportType)
		assert.True(t, filepath.IsAbs(args.Dir))
		assert.Equal(t, "reports", filepath.Base(args.Dir))
		assert.True(t, args.Strict)
		assert.Equal(t, "prod", args.AWSProfile)
	})

	t.Run("explicit flags win", func(t *testing.T) {
		args := defaultArgs()
		args.Changed = map[string]bool{"source": true, "year": true, "threshold": true, "dir": true}

		require.NoError(t, MergeConfig(args, cfg))

		assert.Equal(t, "testdata/cpi.json", args.Source)
		assert.Equal(t, 2011, args.Year)
		assert.Equal(t, 100.0, args.Threshold)
		assert.Equal(t, "/tmp/out", args.Dir)
		assert.Equal(t, "Urban", args.Sector)
	})

	t.Run("nil config", func(t *testing.T) {
		args := defaultArgs()
		require.NoError(t, MergeConfig(args, nil))
		assert.Equal(t, defaultArgs(), args)
	})
}

func TestChartBaseName(t *testing.T) {
	args := defaultArgs()
	args.Sector = "Rural+Urban"
	assert.Equal(t, "cpi_2011_rural_urban", chartBaseName(args))

	args.ReportName = "custom"
	assert.Equal(t, "custom", chartBaseName(args))
}
