package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/diillson/cpi-dashboard-go/internal/domain/entity"
	"github.com/diillson/cpi-dashboard-go/internal/domain/repository"
	"github.com/diillson/cpi-dashboard-go/internal/domain/service"
	"github.com/diillson/cpi-dashboard-go/internal/shared/types"
	"github.com/diillson/cpi-dashboard-go/pkg/console"
)

// DatasetRepositoryFactory cria o repositório de datasets depois que as credenciais AWS são conhecidas.
type DatasetRepositoryFactory func(awsProfile, awsRegion string) repository.DatasetRepository

// maxSkippedWarnings limita quantas linhas descartadas são listadas individualmente.
const maxSkippedWarnings = 10

// PlaygroundUseCase carrega, filtra e apresenta os dados de CPI.
type PlaygroundUseCase struct {
	datasets   DatasetRepositoryFactory
	chartRepo  repository.ChartRepository
	exportRepo repository.ExportRepository
	configRepo repository.ConfigRepository
	console    types.ConsoleInterface
}

// NewPlaygroundUseCase creates a new playground use case.
func NewPlaygroundUseCase(
	datasets DatasetRepositoryFactory,
	chartRepo repository.ChartRepository,
	exportRepo repository.ExportRepository,
	configRepo repository.ConfigRepository,
	out types.ConsoleInterface,
) *PlaygroundUseCase {
	return &PlaygroundUseCase{
		datasets:   datasets,
		chartRepo:  chartRepo,
		exportRepo: exportRepo,
		configRepo: configRepo,
		console:    out,
	}
}

// Run executa o fluxo completo: configuração, carga, filtro, exibição, gráficos e exportação.
func (uc *PlaygroundUseCase) Run(ctx context.Context, args *types.CLIArgs) error {
	if args.ConfigFile != "" {
		cfg, err := uc.configRepo.LoadConfigFile(args.ConfigFile)
		if err != nil {
			return err
		}
		if err := MergeConfig(args, cfg); err != nil {
			return err
		}
		uc.console.LogInfo("Using configuration from %s", args.ConfigFile)
	}

	if args.Source == "" {
		return types.ErrSourceRequired
	}

	kinds, err := entity.ParseChartKinds(args.Charts)
	if err != nil {
		return err
	}

	dataset, err := uc.LoadDataset(ctx, args)
	if err != nil {
		return err
	}

	if args.List {
		uc.displayAvailable(dataset)
		return nil
	}

	criteria := entity.Criteria{Year: args.Year, Sector: args.Sector}
	filtered := service.Filter(dataset.Records, criteria)
	summary := service.Summarize(filtered, args.Threshold)

	uc.displayRecords(criteria, filtered, summary)

	var chartFiles []string
	if len(filtered) == 0 {
		uc.console.LogWarning("No records found for sector '%s' in %d. Skipping charts.", criteria.Sector, criteria.Year)
		uc.displayAvailable(dataset)
	} else {
		chartFiles = uc.RenderCharts(kinds, filtered, args)
	}

	if args.ReportName != "" && len(args.ReportType) > 0 {
		report := entity.Report{
			Source:     args.Source,
			Criteria:   criteria,
			Summary:    summary,
			Records:    filtered,
			Skipped:    len(dataset.Skipped),
			ChartFiles: chartFiles,
		}
		uc.exportReports(report, args)
	}

	return nil
}

// LoadDataset busca e interpreta o dataset, reportando as linhas descartadas.
func (uc *PlaygroundUseCase) LoadDataset(ctx context.Context, args *types.CLIArgs) (*entity.Dataset, error) {
	status := uc.console.Status(fmt.Sprintf("Loading dataset from %s...", args.Source))

	data, err := uc.datasets(args.AWSProfile, args.AWSRegion).Fetch(ctx, args.Source)
	if err != nil {
		status.Stop()
		return nil, err
	}

	status.Update("Parsing dataset...")
	dataset, err := service.Load(data, service.LoadOptions{
		RegionField: args.RegionField,
		Strict:      args.Strict,
	})
	status.Stop()
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", args.Source, err)
	}

	uc.console.LogSuccess("Loaded %d records from %s", len(dataset.Records), args.Source)

	for i, skipped := range dataset.Skipped {
		if i == maxSkippedWarnings {
			uc.console.LogWarning("... and %d more skipped rows", len(dataset.Skipped)-maxSkippedWarnings)
			break
		}
		uc.console.LogWarning("Skipped data row %d: %s", skipped.Index, skipped.Reason)
	}

	return dataset, nil
}

// RenderCharts grava um PNG por variante e retorna os caminhos gerados. Falhas são
// registradas e não interrompem as demais variantes.
func (uc *PlaygroundUseCase) RenderCharts(kinds []entity.ChartKind, records []entity.Record, args *types.CLIArgs) []string {
	baseName := chartBaseName(args)
	files := []string{}

	for _, kind := range kinds {
		spec := entity.NewChartSpec(kind, args.Threshold)
		path, err := uc.chartRepo.RenderToFile(spec, records, args.Dir, baseName)
		if err != nil {
			uc.console.LogError("Failed to render %s chart: %s", kind, err)
			continue
		}
		uc.console.LogSuccess("Rendered %s chart: %s", kind, path)
		files = append(files, path)
	}

	return files
}

func (uc *PlaygroundUseCase) exportReports(report entity.Report, args *types.CLIArgs) {
	for _, reportType := range args.ReportType {
		var (
			path string
			err  error
		)

		switch reportType {
		case "csv":
			path, err = uc.exportRepo.ExportToCSV(report, args.ReportName, args.Dir)
		case "json":
			path, err = uc.exportRepo.ExportToJSON(report, args.ReportName, args.Dir)
		case "xlsx":
			path, err = uc.exportRepo.ExportToXLSX(report, args.ReportName, args.Dir)
		case "pdf":
			path, err = uc.exportRepo.ExportToPDF(report, args.ReportName, args.Dir)
		default:
			uc.console.LogWarning("%s: %s", types.ErrUnsupportedReport, reportType)
			continue
		}

		label := strings.ToUpper(reportType)
		if err != nil {
			uc.console.LogError("Failed to export to %s: %s", label, err)
		} else {
			uc.console.LogSuccess("Successfully exported to %s: %s", label, path)
		}
	}
}

func (uc *PlaygroundUseCase) displayRecords(criteria entity.Criteria, records []entity.Record, summary entity.Summary) {
	table := uc.console.CreateTable()
	table.AddColumn("Month")
	table.AddColumn("Sector")
	table.AddColumn("Year")
	table.AddColumn("State")
	table.AddColumn("CPI")

	points := make([]types.BarPoint, 0, len(records))
	for _, r := range records {
		table.AddRow(r.Month, r.Sector, r.Year, r.State, fmt.Sprintf("%.2f", r.Value))
		points = append(points, types.BarPoint{Label: r.Month, Value: r.Value})
	}

	uc.console.Println(console.BrightCyan(fmt.Sprintf("CPI records for %s %d", criteria.Sector, criteria.Year)))
	uc.console.Print(table.Render())

	if summary.Count > 0 {
		above := console.BrightGreen(fmt.Sprintf("%d", summary.AboveThreshold))
		if summary.AboveThreshold > 0 {
			above = console.BrightRed(fmt.Sprintf("%d", summary.AboveThreshold))
		}
		uc.console.Printf("Records: %d | Min: %.2f | Max: %.2f | Mean: %.2f | Above %s: %s\n",
			summary.Count, summary.Min, summary.Max, summary.Mean,
			console.BrightYellow(fmt.Sprintf("%.2f", summary.Threshold)), above)
	}

	uc.console.DisplayRecordBars(fmt.Sprintf("CPI %s %d", criteria.Sector, criteria.Year), points, summary.Threshold)
}

func (uc *PlaygroundUseCase) displayAvailable(dataset *entity.Dataset) {
	years := make([]string, 0)
	for _, y := range dataset.Years() {
		years = append(years, fmt.Sprintf("%d", y))
	}

	table := uc.console.CreateTable()
	table.AddColumn("Fields")
	table.AddColumn("Sectors")
	table.AddColumn("Years")
	table.AddRow(
		strings.Join(dataset.Fields, "\n"),
		strings.Join(dataset.Sectors(), "\n"),
		strings.Join(years, "\n"),
	)
	uc.console.Print(table.Render())
}

// chartBaseName usa o nome do relatório ou deriva um de ano e setor, ex.: "cpi_2011_rural".
func chartBaseName(args *types.CLIArgs) string {
	if args.ReportName != "" {
		return args.ReportName
	}
	slug := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return '_'
	}, args.Sector)
	return fmt.Sprintf("cpi_%d_%s", args.Year, slug)
}

// MergeConfig aplica os valores do arquivo de configuração às flags que não foram
// definidas explicitamente na linha de comando.
func MergeConfig(args *types.CLIArgs, cfg *types.Config) error {
	if cfg == nil {
		return nil
	}

	if !args.IsSet("source") && cfg.Source != "" {
		args.Source = cfg.Source
	}
	if !args.IsSet("year") && cfg.Year != 0 {
		args.Year = cfg.Year
	}
	if !args.IsSet("sector") && cfg.Sector != "" {
		args.Sector = cfg.Sector
	}
	if !args.IsSet("region-field") && cfg.RegionField != nil {
		args.RegionField = *cfg.RegionField
	}
	if !args.IsSet("threshold") && cfg.Threshold != nil {
		args.Threshold = *cfg.Threshold
	}
	if !args.IsSet("charts") && len(cfg.Charts) > 0 {
		args.Charts = cfg.Charts
	}
	if !args.IsSet("report-name") && cfg.ReportName != "" {
		args.ReportName = cfg.ReportName
	}
	if !args.IsSet("report-type") && len(cfg.ReportType) > 0 {
		args.ReportType = cfg.ReportType
	}
	if !args.IsSet("dir") && cfg.Dir != "" {
		absDir, err := filepath.Abs(cfg.Dir)
		if err != nil {
			return err
		}
		args.Dir = absDir
	}
	if !args.IsSet("strict") && cfg.Strict {
		args.Strict = true
	}
	if !args.IsSet("aws-profile") && cfg.AWSProfile != "" {
		args.AWSProfile = cfg.AWSProfile
	}
	if !args.IsSet("aws-region") && cfg.AWSRegion != "" {
		args.AWSRegion = cfg.AWSRegion
	}

	return nil
}
