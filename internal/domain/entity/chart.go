package entity

import (
	"fmt"
	"strings"

	"github.com/diillson/cpi-dashboard-go/internal/shared/types"
)

// ChartKind identifica uma das variantes de gráfico suportadas.
type ChartKind string

const (
	ChartBar         ChartKind = "bar"
	ChartInvertedBar ChartKind = "inverted-bar"
	ChartLine        ChartKind = "line"
	ChartArea        ChartKind = "area"
	ChartRule        ChartKind = "rule"
)

// DefaultThreshold é o valor de referência desenhado como linha no gráfico "rule".
const DefaultThreshold = 100.0

// AllChartKinds lista as variantes na ordem em que são exibidas.
var AllChartKinds = []ChartKind{ChartBar, ChartInvertedBar, ChartLine, ChartArea, ChartRule}

// ChartSpec describes what a single chart draws and how it is styled.
type ChartSpec struct {
	Kind      ChartKind `json:"kind"`
	Title     string    `json:"title"`
	XLabel    string    `json:"x_label"`
	YLabel    string    `json:"y_label"`
	Color     string    `json:"color"`
	Width     float64   `json:"width"`
	Height    float64   `json:"height"`
	Threshold float64   `json:"threshold,omitempty"`
}

// Dimensões em pontos.
const (
	chartMaxWidth  = 860.0
	chartMaxHeight = 260.0
)

// NewChartSpec retorna a especificação padrão de cada variante.
func NewChartSpec(kind ChartKind, threshold float64) ChartSpec {
	spec := ChartSpec{
		Kind:   kind,
		XLabel: "Months",
		YLabel: "CPI",
		Width:  chartMaxWidth,
		Height: chartMaxHeight,
	}

	switch kind {
	case ChartBar:
		spec.Title = "CPI by Month"
		spec.Color = "red"
	case ChartInvertedBar:
		spec.Title = "CPI by Month (inverted)"
		spec.XLabel, spec.YLabel = "CPI", "Months"
		spec.Color = "purple"
		spec.Height = chartMaxHeight * 2
	case ChartLine:
		spec.Title = "CPI Trend"
		spec.Color = "blue"
	case ChartArea:
		spec.Title = "CPI Area"
		spec.Color = "green"
	case ChartRule:
		spec.Title = "CPI vs Break Even Threshold"
		spec.Color = "green"
		spec.Threshold = threshold
	}

	return spec
}

// ParseChartKinds converte nomes como "bar,line" em ChartKinds, preservando a ordem
// e ignorando repetições. Uma lista vazia retorna todas as variantes.
func ParseChartKinds(names []string) ([]ChartKind, error) {
	kinds := []ChartKind{}
	seen := make(map[ChartKind]bool)

	for _, raw := range names {
		for _, name := range strings.Split(raw, ",") {
			name = strings.ToLower(strings.TrimSpace(name))
			if name == "" {
				continue
			}
			kind := ChartKind(name)
			if !isKnownChartKind(kind) {
				return nil, fmt.Errorf("%w: %s", types.ErrUnknownChartKind, name)
			}
			if !seen[kind] {
				seen[kind] = true
				kinds = append(kinds, kind)
			}
		}
	}

	if len(kinds) == 0 {
		return append([]ChartKind(nil), AllChartKinds...), nil
	}
	return kinds, nil
}

func isKnownChartKind(kind ChartKind) bool {
	for _, k := range AllChartKinds {
		if k == kind {
			return true
		}
	}
	return false
}
