package service

import "github.com/diillson/cpi-dashboard-go/internal/domain/entity"

// Filter retorna, na ordem original, os registros cujo ano e setor são iguais aos critérios.
// Nenhuma correspondência resulta em slice vazio.
func Filter(records []entity.Record, c entity.Criteria) []entity.Record {
	filtered := make([]entity.Record, 0)
	for _, r := range records {
		if r.Year == c.Year && r.Sector == c.Sector {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
