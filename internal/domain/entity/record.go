package entity

// Record representa um valor do Índice de Preços ao Consumidor para um setor, ano e mês.
type Record struct {
	ID     string  `json:"id"`
	Value  float64 `json:"cpi_value"`
	Sector string  `json:"sector"`
	Year   int     `json:"year"`
	Month  string  `json:"month"`
	State  string  `json:"state"`
}

// SkippedRow descreve uma linha descartada durante a carga por não ter valor numérico.
type SkippedRow struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// Dataset contains the labels and records produced by a single load.
type Dataset struct {
	Fields  []string     `json:"fields"`
	Records []Record     `json:"records"`
	Skipped []SkippedRow `json:"skipped,omitempty"`
}

// Sectors retorna os setores distintos na ordem em que aparecem.
func (d *Dataset) Sectors() []string {
	seen := make(map[string]bool)
	sectors := []string{}
	for _, r := range d.Records {
		if !seen[r.Sector] {
			seen[r.Sector] = true
			sectors = append(sectors, r.Sector)
		}
	}
	return sectors
}

// Years retorna os anos distintos na ordem em que aparecem.
func (d *Dataset) Years() []int {
	seen := make(map[int]bool)
	years := []int{}
	for _, r := range d.Records {
		if !seen[r.Year] {
			seen[r.Year] = true
			years = append(years, r.Year)
		}
	}
	return years
}

// Criteria selects records by exact year and sector.
type Criteria struct {
	Year   int    `json:"year"`
	Sector string `json:"sector"`
}

// Summary agrega estatísticas simples de um conjunto de registros.
type Summary struct {
	Count          int     `json:"count"`
	Min            float64 `json:"min"`
	Max            float64 `json:"max"`
	Mean           float64 `json:"mean"`
	Threshold      float64 `json:"threshold"`
	AboveThreshold int     `json:"above_threshold"`
}
