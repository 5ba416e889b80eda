package console

import (
	"fmt"
	"math"
	"strings"

	"github.com/diillson/cpi-dashboard-go/internal/shared/types"
	"github.com/fatih/color"
	"github.com/pterm/pterm"
)

// Console é uma implementação do ConsoleInterface.
type Console struct{}

// NewConsole cria um novo Console.
func NewConsole() *Console {
	return &Console{}
}

// Print imprime no console.
func (c *Console) Print(a ...interface{}) {
	fmt.Print(a...)
}

// Printf imprime uma string formatada no console.
func (c *Console) Printf(format string, a ...interface{}) {
	fmt.Printf(format, a...)
}

// Println imprime no console com uma nova linha.
func (c *Console) Println(a ...interface{}) {
	fmt.Println(a...)
}

// LogInfo registra uma mensagem de informação.
func (c *Console) LogInfo(format string, a ...interface{}) {
	pterm.Info.Printfln(format, a...)
}

// LogWarning registra uma mensagem de aviso.
func (c *Console) LogWarning(format string, a ...interface{}) {
	pterm.Warning.Printfln(format, a...)
}

// LogError registra uma mensagem de erro.
func (c *Console) LogError(format string, a ...interface{}) {
	pterm.Error.Printfln(format, a...)
}

// LogSuccess registra uma mensagem de sucesso.
func (c *Console) LogSuccess(format string, a ...interface{}) {
	pterm.Success.Printfln(format, a...)
}

// statusHandle é uma implementação do StatusHandle.
type statusHandle struct {
	spinner *pterm.SpinnerPrinter
}

// Status cria um spinner de status com a mensagem especificada.
func (c *Console) Status(message string) types.StatusHandle {
	spinner, _ := pterm.DefaultSpinner.Start(message)
	return &statusHandle{spinner: spinner}
}

// Cores predefinidas para uso consistente
var (
	BrightGreen  = color.New(color.FgGreen, color.Bold).SprintFunc()
	BrightYellow = color.New(color.FgYellow, color.Bold).SprintFunc()
	BrightRed    = color.New(color.FgRed, color.Bold).SprintFunc()
	BrightCyan   = color.New(color.FgCyan, color.Bold).SprintFunc()
)

// Update atualiza a mensagem de status.
func (h *statusHandle) Update(message string) {
	if h.spinner != nil {
		h.spinner.UpdateText(message)
	}
}

// Stop pára o spinner de status.
func (h *statusHandle) Stop() {
	if h.spinner != nil {
		h.spinner.Stop()
	}
}

// Table é uma implementação do TableInterface.
type Table struct {
	columns []string
	rows    [][]string
}

// CreateTable cria uma nova tabela.
func (c *Console) CreateTable() types.TableInterface {
	return &Table{
		columns: []string{},
		rows:    [][]string{},
	}
}

// AddColumn adiciona uma coluna à tabela.
func (t *Table) AddColumn(name string, options ...interface{}) {
	t.columns = append(t.columns, name)
}

// AddRow adiciona uma linha à tabela.
func (t *Table) AddRow(cells ...interface{}) {
	// Convertemos cada célula para string
	processedCells := make([]string, len(cells))
	for i, cell := range cells {
		processedCells[i] = fmt.Sprint(cell)
	}
	t.rows = append(t.rows, processedCells)
}

// Render renderiza a tabela como uma string.
func (t *Table) Render() string {
	// Use o pterm para criar uma tabela visualmente agradável
	tableData := pterm.TableData{t.columns}
	for _, row := range t.rows {
		tableData = append(tableData, row)
	}

	table := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithHeaderStyle(pterm.NewStyle(pterm.FgLightCyan)).
		WithData(tableData)

	renderedTable, _ := table.Srender()
	return renderedTable
}

// DisplayRecordBars exibe um gráfico de barras horizontal no terminal. Valores acima
// do limiar ficam em vermelho, os demais em verde.
func (c *Console) DisplayRecordBars(title string, points []types.BarPoint, threshold float64) {
	fmt.Println("\n" + RenderRecordBars(title, points, threshold))
}

// RenderRecordBars monta o painel exibido por DisplayRecordBars.
func RenderRecordBars(title string, points []types.BarPoint, threshold float64) string {
	if len(points) == 0 {
		return pterm.Warning.Sprint("No records match the selected year and sector")
	}

	// Encontra o valor máximo para escala
	maxValue := threshold
	for _, p := range points {
		if p.Value > maxValue {
			maxValue = p.Value
		}
	}
	if maxValue <= 0 {
		maxValue = 1
	}

	tableData := pterm.TableData{
		{"Month", "CPI", "", "vs Threshold"},
	}

	for _, p := range points {
		barLength := int(math.Round((math.Max(p.Value, 0) / maxValue) * barMaxWidth))
		bar := strings.Repeat("█", barLength)

		diff := p.Value - threshold
		var barColor, change string
		switch {
		case math.Abs(diff) < 0.01:
			barColor = pterm.FgYellow.Sprint(bar)
			change = pterm.FgYellow.Sprint("=")
		case diff > 0:
			barColor = pterm.FgRed.Sprint(bar)
			change = pterm.FgRed.Sprintf("+%.2f", diff)
		default:
			barColor = pterm.FgGreen.Sprint(bar)
			change = pterm.FgGreen.Sprintf("%.2f", diff)
		}

		tableData = append(tableData, []string{
			p.Label,
			fmt.Sprintf("%.2f", p.Value),
			barColor,
			change,
		})
	}

	table := pterm.DefaultTable.WithHasHeader().WithData(tableData)
	renderedTable, _ := table.Srender()

	return pterm.DefaultBox.WithTitle(title).WithBoxStyle(pterm.NewStyle(pterm.FgCyan)).Sprint(renderedTable)
}

const barMaxWidth = 40
