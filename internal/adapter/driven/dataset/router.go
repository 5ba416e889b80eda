package dataset

import (
	"context"
	"strings"

	"github.com/diillson/cpi-dashboard-go/internal/domain/repository"
)

// Router escolhe o repositório de acordo com o esquema da fonte.
type Router struct {
	file repository.DatasetRepository
	s3   repository.DatasetRepository
}

// NewDatasetRepository cria o repositório padrão: S3 para "s3://", arquivo local no resto.
func NewDatasetRepository(awsProfile, awsRegion string) repository.DatasetRepository {
	return NewRouter(NewFileRepository(), NewS3Repository(awsProfile, awsRegion))
}

// NewRouter cria um Router com os repositórios informados.
func NewRouter(file, s3 repository.DatasetRepository) *Router {
	return &Router{file: file, s3: s3}
}

func (r *Router) Fetch(ctx context.Context, source string) ([]byte, error) {
	if strings.HasPrefix(source, S3Scheme) {
		return r.s3.Fetch(ctx, source)
	}
	return r.file.Fetch(ctx, source)
}
