package types

// Config represents the application configuration that can be loaded from a file.
type Config struct {
	Source      string   `json:"source" yaml:"source" toml:"source"`
	Year        int      `json:"year" yaml:"year" toml:"year"`
	Sector      string   `json:"sector" yaml:"sector" toml:"sector"`
	RegionField *int     `json:"region_field" yaml:"region_field" toml:"region_field"`
	Threshold   *float64 `json:"threshold" yaml:"threshold" toml:"threshold"`
	Charts      []string `json:"charts" yaml:"charts" toml:"charts"`
	ReportName  string   `json:"report_name" yaml:"report_name" toml:"report_name"`
	ReportType  []string `json:"report_type" yaml:"report_type" toml:"report_type"`
	Dir         string   `json:"dir" yaml:"dir" toml:"dir"`
	Strict      bool     `json:"strict" yaml:"strict" toml:"strict"`
	AWSProfile  string   `json:"aws_profile" yaml:"aws_profile" toml:"aws_profile"`
	AWSRegion   string   `json:"aws_region" yaml:"aws_region" toml:"aws_region"`
}
