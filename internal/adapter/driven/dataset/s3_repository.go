package dataset

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/diillson/cpi-dashboard-go/internal/shared/types"
)

// S3Scheme é o prefixo das fontes servidas pelo S3Repository.
const S3Scheme = "s3://"

// S3GetObjectAPI é o subconjunto do cliente S3 usado pelo repositório.
type S3GetObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Repository lê datasets de objetos S3, com cache do cliente por perfil e região.
type S3Repository struct {
	profile string
	region  string

	clientCache map[string]S3GetObjectAPI
	mu          sync.Mutex

	// newClient permite substituir o cliente nos testes.
	newClient func(ctx context.Context, profile, region string) (S3GetObjectAPI, error)
}

// NewS3Repository cria um S3Repository. Perfil e região vazios usam a cadeia padrão do SDK.
func NewS3Repository(profile, region string) *S3Repository {
	return &S3Repository{
		profile:     profile,
		region:      region,
		clientCache: make(map[string]S3GetObjectAPI),
		newClient:   newS3Client,
	}
}

func newS3Client(ctx context.Context, profile, region string) (S3GetObjectAPI, error) {
	opts := []func(*config.LoadOptions) error{}
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config for profile %s: %w", profile, err)
	}
	return s3.NewFromConfig(cfg), nil
}

func (r *S3Repository) getClient(ctx context.Context) (S3GetObjectAPI, error) {
	cacheKey := fmt.Sprintf("%s-%s", r.profile, r.region)

	r.mu.Lock()
	defer r.mu.Unlock()

	if client, ok := r.clientCache[cacheKey]; ok {
		return client, nil
	}

	client, err := r.newClient(ctx, r.profile, r.region)
	if err != nil {
		return nil, err
	}
	r.clientCache[cacheKey] = client
	return client, nil
}

// Fetch baixa o objeto s3://bucket/key.
func (r *S3Repository) Fetch(ctx context.Context, source string) ([]byte, error) {
	bucket, key, err := ParseS3URI(source)
	if err != nil {
		return nil, err
	}

	client, err := r.getClient(ctx)
	if err != nil {
		return nil, err
	}

	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("error fetching s3://%s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading s3://%s/%s: %w", bucket, key, err)
	}
	return data, nil
}

// ParseS3URI separa bucket e key de uma URI s3://bucket/key.
func ParseS3URI(source string) (string, string, error) {
	if !strings.HasPrefix(source, S3Scheme) {
		return "", "", fmt.Errorf("%w: %s", types.ErrUnsupportedSource, source)
	}

	u, err := url.Parse(source)
	if err != nil {
		return "", "", fmt.Errorf("%w: %s: %v", types.ErrUnsupportedSource, source, err)
	}

	bucket := u.Host
	key := strings.TrimPrefix(u.Path, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("%w: %s: expected s3://bucket/key", types.ErrUnsupportedSource, source)
	}
	return bucket, key, nil
}
