package repository

import (
	"io"

	"github.com/diillson/cpi-dashboard-go/internal/domain/entity"
)

// ChartRepository defines the interface for drawing charts from records.
type ChartRepository interface {
	Render(spec entity.ChartSpec, records []entity.Record, w io.Writer) error
	RenderToFile(spec entity.ChartSpec, records []entity.Record, outputDir, baseName string) (string, error)
}
