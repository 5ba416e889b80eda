package types

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	ConfigFile  string
	Source      string
	Year        int
	Sector      string
	RegionField int
	Threshold   float64
	Charts      []string
	ReportName  string
	ReportType  []string
	Dir         string
	Strict      bool
	List        bool
	AWSProfile  string
	AWSRegion   string

	// Changed guarda os nomes das flags definidas explicitamente na linha de comando.
	Changed map[string]bool
}

// IsSet informa se a flag foi passada explicitamente.
func (a *CLIArgs) IsSet(flag string) bool {
	return a.Changed != nil && a.Changed[flag]
}
