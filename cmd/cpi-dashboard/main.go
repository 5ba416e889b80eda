package main

import (
	"fmt"
	"os"

	"github.com/diillson/cpi-dashboard-go/internal/adapter/driven/chart"
	"github.com/diillson/cpi-dashboard-go/internal/adapter/driven/config"
	"github.com/diillson/cpi-dashboard-go/internal/adapter/driven/dataset"
	"github.com/diillson/cpi-dashboard-go/internal/adapter/driven/export"
	"github.com/diillson/cpi-dashboard-go/internal/adapter/driving/cli"
	"github.com/diillson/cpi-dashboard-go/internal/application/usecase"
	"github.com/diillson/cpi-dashboard-go/pkg/console"
	"github.com/diillson/cpi-dashboard-go/pkg/version"
)

func main() {
	// Inicializa o aplicativo CLI
	app := cli.NewCLIApp(version.Version)

	// Inicializa os repositórios
	chartRepo := chart.NewChartRepository()
	exportRepo := export.NewExportRepository()
	configRepo := config.NewConfigRepository()
	consoleImpl := console.NewConsole()

	// Inicializa o caso de uso
	playgroundUseCase := usecase.NewPlaygroundUseCase(
		dataset.NewDatasetRepository,
		chartRepo,
		exportRepo,
		configRepo,
		consoleImpl,
	)

	app.SetPlaygroundUseCase(playgroundUseCase)

	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
