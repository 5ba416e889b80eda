package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/diillson/cpi-dashboard-go/internal/application/usecase"
	"github.com/diillson/cpi-dashboard-go/internal/domain/entity"
	"github.com/diillson/cpi-dashboard-go/internal/domain/service"
	"github.com/diillson/cpi-dashboard-go/internal/shared/types"
	"github.com/diillson/cpi-dashboard-go/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd           *cobra.Command
	playgroundUseCase *usecase.PlaygroundUseCase
	version           string
	showBanner        bool
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string) *CLIApp {
	app := &CLIApp{
		version:    versionStr,
		showBanner: true,
	}

	formattedVersion := version.FormatVersion()

	rootCmd := &cobra.Command{
		Use:           "cpi-dashboard",
		Short:         "Consumer Price Index charts dashboard CLI",
		Long:          "Load a CPI dataset, filter it by year and sector and render it as bar, inverted bar, line, area and threshold charts.",
		Version:       formattedVersion,
		RunE:          app.runCommand,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{printf "CPI Dashboard version: %s\n" .Version}}`)

	// Adiciona flags de linha de comando
	flags := rootCmd.PersistentFlags()
	flags.StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	flags.StringP("source", "s", "", "Dataset to load: a local JSON file or s3://bucket/key")
	flags.IntP("year", "Y", 2011, "Year to filter records by")
	flags.StringP("sector", "S", "Rural", "Sector to filter records by (e.g. Rural, Urban)")
	flags.Int("region-field", service.DefaultRegionField, "Index of the 'fields' label used as the state of every record")
	flags.Float64("threshold", entity.DefaultThreshold, "Break even threshold drawn as a rule line")
	flags.StringSliceP("charts", "k", nil, "Charts to render: bar, inverted-bar, line, area, rule (default: all)")
	flags.StringP("report-name", "n", "", "Specify the base name for the report file (without extension)")
	flags.StringSliceP("report-type", "y", []string{"csv"}, "Specify report types: csv, json, xlsx, pdf")
	flags.StringP("dir", "d", "", "Directory to save charts and reports (default: current directory)")
	flags.Bool("strict", false, "Fail when a data row has a non-numeric value instead of skipping it")
	flags.Bool("list", false, "List the fields, sectors and years found in the dataset and exit")
	flags.String("aws-profile", "", "AWS shared config profile used for s3:// sources")
	flags.String("aws-region", "", "AWS region used for s3:// sources")

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// SetArgs substitui os argumentos da linha de comando (usado em testes).
func (app *CLIApp) SetArgs(args []string) {
	app.rootCmd.SetArgs(args)
}

// parseArgs parses command-line arguments into a CLIArgs struct.
func (app *CLIApp) parseArgs() (*types.CLIArgs, error) {
	flags := app.rootCmd.Flags()

	configFile, _ := flags.GetString("config-file")
	source, _ := flags.GetString("source")
	year, _ := flags.GetInt("year")
	sector, _ := flags.GetString("sector")
	regionField, _ := flags.GetInt("region-field")
	threshold, _ := flags.GetFloat64("threshold")
	charts, _ := flags.GetStringSlice("charts")
	reportName, _ := flags.GetString("report-name")
	reportType, _ := flags.GetStringSlice("report-type")
	dir, _ := flags.GetString("dir")
	strict, _ := flags.GetBool("strict")
	list, _ := flags.GetBool("list")
	awsProfile, _ := flags.GetString("aws-profile")
	awsRegion, _ := flags.GetString("aws-region")

	// Set default directory to current working directory if not specified
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		dir = cwd
	} else {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		dir = absDir
	}

	changed := make(map[string]bool)
	flags.Visit(func(f *pflag.Flag) {
		changed[f.Name] = true
	})

	args := &types.CLIArgs{
		ConfigFile:  configFile,
		Source:      source,
		Year:        year,
		Sector:      sector,
		RegionField: regionField,
		Threshold:   threshold,
		Charts:      charts,
		ReportName:  reportName,
		ReportType:  reportType,
		Dir:         dir,
		Strict:      strict,
		List:        list,
		AWSProfile:  awsProfile,
		AWSRegion:   awsRegion,
		Changed:     changed,
	}

	return args, nil
}

// runCommand é o ponto de entrada principal para o comando CLI.
func (app *CLIApp) runCommand(cmd *cobra.Command, args []string) error {
	if app.showBanner {
		displayWelcomeBanner()
	}

	cliArgs, err := app.parseArgs()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return app.playgroundUseCase.Run(ctx, cliArgs)
}

// SetPlaygroundUseCase sets the playground use case for the CLI app.
func (app *CLIApp) SetPlaygroundUseCase(useCase *usecase.PlaygroundUseCase) {
	app.playgroundUseCase = useCase
}

// DisableBanner desativa o banner de boas-vindas.
func (app *CLIApp) DisableBanner() {
	app.showBanner = false
}
