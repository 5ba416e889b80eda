package cli

import (
	"fmt"

	"github.com/diillson/cpi-dashboard-go/pkg/version"
	"github.com/fatih/color"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner() {
	banner := `
          /$$$$$$  /$$$$$$$  /$$$$$$
         /$$__  $$| $$__  $$|_  $$_/
        | $$  \__/| $$  \ $$  | $$
        | $$      | $$$$$$$/  | $$
        | $$      | $$____/   | $$
        | $$    $$| $$        | $$
        |  $$$$$$/| $$       /$$$$$$
         \______/ |__/      |______/
        `
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Println(red(banner))
	fmt.Println(blue(fmt.Sprintf("CPI Dashboard CLI (v%s)", version.FormatVersion())))
}
