package chart

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/diillson/cpi-dashboard-go/internal/domain/entity"
	"github.com/diillson/cpi-dashboard-go/internal/domain/repository"
	"github.com/diillson/cpi-dashboard-go/internal/shared/types"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Paleta usada pelas variantes de gráfico.
var palette = map[string]color.RGBA{
	"red":    {R: 220, G: 38, B: 38, A: 255},
	"purple": {R: 139, G: 92, B: 246, A: 255},
	"blue":   {R: 37, G: 99, B: 235, A: 255},
	"green":  {R: 22, G: 163, B: 74, A: 255},
}

var ruleColor = palette["red"]

const maxBarWidth = 20.0

// GonumRepository implementa o ChartRepository usando gonum/plot e gera PNGs.
type GonumRepository struct {
	format string
}

// NewChartRepository cria uma nova implementação do ChartRepository.
func NewChartRepository() repository.ChartRepository {
	return &GonumRepository{format: "png"}
}

// Render desenha o gráfico descrito por spec em w.
func (r *GonumRepository) Render(spec entity.ChartSpec, records []entity.Record, w io.Writer) error {
	p, err := buildPlot(spec, records)
	if err != nil {
		return err
	}

	wt, err := p.WriterTo(vg.Points(spec.Width), vg.Points(spec.Height), r.format)
	if err != nil {
		return fmt.Errorf("error preparing %s chart: %w", spec.Kind, err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("error writing %s chart: %w", spec.Kind, err)
	}
	return nil
}

// RenderToFile grava o gráfico em <outputDir>/<baseName>_<kind>.png e retorna o caminho absoluto.
func (r *GonumRepository) RenderToFile(spec entity.ChartSpec, records []entity.Record, outputDir, baseName string) (string, error) {
	if len(records) == 0 {
		return "", fmt.Errorf("%s chart: %w", spec.Kind, types.ErrNoRecords)
	}
	if outputDir == "" {
		outputDir = "."
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", outputDir, err)
	}

	outputFilename := filepath.Join(outputDir, fmt.Sprintf("%s_%s.%s", baseName, spec.Kind, r.format))
	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating chart file: %w", err)
	}

	if err := r.Render(spec, records, file); err != nil {
		file.Close()
		os.Remove(outputFilename)
		return "", err
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("error closing chart file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func buildPlot(spec entity.ChartSpec, records []entity.Record) (*plot.Plot, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%s chart: %w", spec.Kind, types.ErrNoRecords)
	}

	months := make([]string, len(records))
	values := make(plotter.Values, len(records))
	points := make(plotter.XYs, len(records))
	for i, rec := range records {
		months[i] = rec.Month
		values[i] = rec.Value
		points[i] = plotter.XY{X: float64(i), Y: rec.Value}
	}

	p := plot.New()
	p.Title.Text = spec.Title
	p.X.Label.Text = spec.XLabel
	p.Y.Label.Text = spec.YLabel

	fill := colorFor(spec.Color)

	switch spec.Kind {
	case entity.ChartBar, entity.ChartInvertedBar, entity.ChartRule:
		span := spec.Width
		if spec.Kind == entity.ChartInvertedBar {
			span = spec.Height
		}
		bars, err := plotter.NewBarChart(values, barWidth(span, len(records)))
		if err != nil {
			return nil, fmt.Errorf("error building %s chart: %w", spec.Kind, err)
		}
		bars.Color = fill
		bars.LineStyle.Width = vg.Length(0)

		if spec.Kind == entity.ChartInvertedBar {
			bars.Horizontal = true
			p.Add(bars)
			p.NominalY(months...)
			return p, nil
		}

		p.Add(bars)
		p.NominalX(months...)

		if spec.Kind == entity.ChartRule {
			rule, err := thresholdLine(spec.Threshold, len(records))
			if err != nil {
				return nil, err
			}
			p.Add(rule)
			p.Legend.Add("Break Even Threshold", rule)
			p.Legend.Top = true
		}
		return p, nil

	case entity.ChartLine, entity.ChartArea:
		line, err := plotter.NewLine(points)
		if err != nil {
			return nil, fmt.Errorf("error building %s chart: %w", spec.Kind, err)
		}
		line.Color = fill
		line.Width = vg.Points(2)
		if spec.Kind == entity.ChartArea {
			line.FillColor = fill
		}
		p.Add(line, plotter.NewGrid())
		p.NominalX(months...)
		return p, nil
	}

	return nil, fmt.Errorf("%w: %s", types.ErrUnknownChartKind, spec.Kind)
}

// thresholdLine cobre toda a largura das categorias; como Line informa seu DataRange,
// o eixo Y sempre inclui o limiar.
func thresholdLine(threshold float64, n int) (*plotter.Line, error) {
	rule, err := plotter.NewLine(plotter.XYs{
		{X: -0.5, Y: threshold},
		{X: float64(n) - 0.5, Y: threshold},
	})
	if err != nil {
		return nil, fmt.Errorf("error building threshold rule: %w", err)
	}
	rule.Color = ruleColor
	rule.Width = vg.Points(1.5)
	return rule, nil
}

func barWidth(span float64, n int) vg.Length {
	return vg.Points(math.Min(maxBarWidth, span/float64(2*n)))
}

func colorFor(name string) color.Color {
	if c, ok := palette[name]; ok {
		return c
	}
	return color.Black
}
