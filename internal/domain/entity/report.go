package entity

// Report agrupa o que é exportado para um par de critérios.
type Report struct {
	Source   string   `json:"source"`
	Criteria Criteria `json:"criteria"`
	Summary  Summary  `json:"summary"`
	Records  []Record `json:"records"`
	Skipped  int      `json:"skipped_rows"`
	// ChartFiles são os PNGs já renderizados; apenas o PDF os incorpora.
	ChartFiles []string `json:"chart_files,omitempty"`
}
