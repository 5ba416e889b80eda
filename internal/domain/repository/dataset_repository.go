package repository

import "context"

// DatasetRepository defines the interface for fetching raw dataset documents.
type DatasetRepository interface {
	// Fetch retorna os bytes do documento identificado por source
	// (caminho local ou s3://bucket/key).
	Fetch(ctx context.Context, source string) ([]byte, error)
}
