package dataset

import (
	"context"
	"fmt"
	"os"
)

// FileRepository lê datasets do sistema de arquivos local.
type FileRepository struct{}

// NewFileRepository cria um novo FileRepository.
func NewFileRepository() *FileRepository {
	return &FileRepository{}
}

// Fetch lê o arquivo apontado por source.
func (r *FileRepository) Fetch(ctx context.Context, source string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fileInfo, err := os.Stat(source)
	if err != nil {
		return nil, fmt.Errorf("error accessing dataset file: %w", err)
	}
	if fileInfo.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a file", source)
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("error reading dataset file: %w", err)
	}
	return data, nil
}
