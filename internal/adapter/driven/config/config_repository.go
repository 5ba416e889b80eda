package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/diillson/cpi-dashboard-go/internal/domain/repository"
	"github.com/diillson/cpi-dashboard-go/internal/shared/types"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// ConfigRepositoryImpl implementa o ConfigRepository.
type ConfigRepositoryImpl struct{}

// NewConfigRepository cria uma nova implementação do ConfigRepository.
func NewConfigRepository() repository.ConfigRepository {
	return &ConfigRepositoryImpl{}
}

type decodeFunc func(data []byte, v interface{}) error

// decoders mapeia a extensão do arquivo para o parser correspondente.
var decoders = map[string]struct {
	name   string
	decode decodeFunc
}{
	".toml": {"TOML", toml.Unmarshal},
	".yaml": {"YAML", yaml.Unmarshal},
	".yml":  {"YAML", yaml.Unmarshal},
	".json": {"JSON", json.Unmarshal},
}

// LoadConfigFile carrega um arquivo de configuração TOML, YAML ou JSON.
func (r *ConfigRepositoryImpl) LoadConfigFile(filePath string) (*types.Config, error) {
	fileExtension := strings.ToLower(filepath.Ext(filePath))

	decoder, ok := decoders[fileExtension]
	if !ok {
		return nil, fmt.Errorf("unsupported config file format: %s", fileExtension)
	}

	// Verifica se o arquivo existe
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("error accessing config file: %w", err)
	}

	if fileInfo.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a file", filePath)
	}

	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config types.Config
	if err := decoder.decode(fileData, &config); err != nil {
		return nil, fmt.Errorf("error parsing %s file: %w", decoder.name, err)
	}

	normalize(&config)
	return &config, nil
}

// normalize remove espaços e padroniza os nomes de gráficos e relatórios.
func normalize(c *types.Config) {
	c.Source = strings.TrimSpace(c.Source)
	c.Sector = strings.TrimSpace(c.Sector)
	for i, chart := range c.Charts {
		c.Charts[i] = strings.ToLower(strings.TrimSpace(chart))
	}
	for i, rt := range c.ReportType {
		c.ReportType[i] = strings.ToLower(strings.TrimSpace(rt))
	}
}
