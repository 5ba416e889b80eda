package service

import "github.com/diillson/cpi-dashboard-go/internal/domain/entity"

// Summarize calcula contagem, mínimo, máximo, média e quantos valores excedem o limiar.
func Summarize(records []entity.Record, threshold float64) entity.Summary {
	summary := entity.Summary{Threshold: threshold}
	if len(records) == 0 {
		return summary
	}

	total := 0.0
	summary.Min = records[0].Value
	summary.Max = records[0].Value

	for _, r := range records {
		total += r.Value
		if r.Value < summary.Min {
			summary.Min = r.Value
		}
		if r.Value > summary.Max {
			summary.Max = r.Value
		}
		if r.Value > threshold {
			summary.AboveThreshold++
		}
	}

	summary.Count = len(records)
	summary.Mean = total / float64(len(records))
	return summary
}
