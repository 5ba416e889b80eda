package types

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidFormat     = errors.New("invalid dataset format")
	ErrNoRecords         = errors.New("no records to render")
	ErrSourceRequired    = errors.New("no dataset source given. Use --source or set 'source' in the config file")
	ErrUnknownChartKind  = errors.New("unknown chart kind")
	ErrUnsupportedSource = errors.New("unsupported dataset source")
	ErrUnsupportedReport = errors.New("unsupported report type")
)

// FormatError indica uma violação estrutural do documento JSON.
// Path aponta para o elemento com problema, ex.: "data[2][1]".
type FormatError struct {
	Path   string
	Reason string
}

func (e *FormatError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %s", ErrInvalidFormat, e.Reason)
	}
	return fmt.Sprintf("%s at %s: %s", ErrInvalidFormat, e.Path, e.Reason)
}

// Unwrap permite errors.Is(err, ErrInvalidFormat).
func (e *FormatError) Unwrap() error {
	return ErrInvalidFormat
}
