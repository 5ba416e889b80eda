package service

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/diillson/cpi-dashboard-go/internal/domain/entity"
	"github.com/diillson/cpi-dashboard-go/internal/shared/types"
	"github.com/google/uuid"
)

// DefaultRegionField é o índice do rótulo em "fields" usado como estado de todos os registros.
const DefaultRegionField = 3

// minRowLength: [setor, ano, mês, valor].
const minRowLength = 4

// LoadOptions controla a carga de um dataset.
type LoadOptions struct {
	// RegionField é o índice em "fields" cujo rótulo vira o State de cada registro.
	RegionField int
	// Strict transforma uma linha com valor não numérico em FormatError.
	Strict bool
	// NewID gera os identificadores dos registros. Nil usa UUIDv4.
	NewID func() string
}

// DefaultLoadOptions retorna as opções padrão: estado no quarto rótulo e linhas inválidas descartadas.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{RegionField: DefaultRegionField}
}

// Load converte um documento JSON no formato
//
//	{"fields": [{"label": "..."}], "data": [[setor, ano, mês, valor], ...]}
//
// em um Dataset. Linhas cujo valor não é numérico são descartadas e listadas em
// Dataset.Skipped; qualquer violação estrutural retorna *types.FormatError e nenhum dado.
func Load(data []byte, opts LoadOptions) (*entity.Dataset, error) {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &types.FormatError{Reason: fmt.Sprintf("malformed JSON: %v", err)}
	}

	root, ok := doc.(map[string]interface{})
	if !ok {
		return nil, &types.FormatError{Reason: "top-level value must be an object"}
	}

	fields, err := parseFields(root)
	if err != nil {
		return nil, err
	}

	rows, err := arrayEntry(root, "data")
	if err != nil {
		return nil, err
	}

	if opts.RegionField < 0 || opts.RegionField >= len(fields) {
		return nil, &types.FormatError{
			Path:   "fields",
			Reason: fmt.Sprintf("region field index %d out of range (%d fields)", opts.RegionField, len(fields)),
		}
	}
	state := fields[opts.RegionField]

	newID := opts.NewID
	if newID == nil {
		newID = uuid.NewString
	}

	dataset := &entity.Dataset{
		Fields:  fields,
		Records: make([]entity.Record, 0, len(rows)),
	}

	for i, raw := range rows {
		row, ok := raw.([]interface{})
		if !ok {
			return nil, &types.FormatError{Path: fmt.Sprintf("data[%d]", i), Reason: "row must be an array"}
		}
		if len(row) < minRowLength {
			return nil, &types.FormatError{
				Path:   fmt.Sprintf("data[%d]", i),
				Reason: fmt.Sprintf("row has %d elements, want at least %d", len(row), minRowLength),
			}
		}

		sector, ok := row[0].(string)
		if !ok {
			return nil, &types.FormatError{Path: fmt.Sprintf("data[%d][0]", i), Reason: "sector must be a string"}
		}

		year, err := parseYear(row[1], i)
		if err != nil {
			return nil, err
		}

		month, ok := row[2].(string)
		if !ok {
			return nil, &types.FormatError{Path: fmt.Sprintf("data[%d][2]", i), Reason: "month must be a string"}
		}

		value, ok := row[3].(float64)
		if !ok {
			reason := fmt.Sprintf("non-numeric value %s", describe(row[3]))
			if opts.Strict {
				return nil, &types.FormatError{Path: fmt.Sprintf("data[%d][3]", i), Reason: reason}
			}
			dataset.Skipped = append(dataset.Skipped, entity.SkippedRow{Index: i, Reason: reason})
			continue
		}

		dataset.Records = append(dataset.Records, entity.Record{
			ID:     newID(),
			Value:  value,
			Sector: sector,
			Year:   year,
			Month:  month,
			State:  state,
		})
	}

	return dataset, nil
}

func parseFields(root map[string]interface{}) ([]string, error) {
	entries, err := arrayEntry(root, "fields")
	if err != nil {
		return nil, err
	}

	fields := make([]string, 0, len(entries))
	for i, entry := range entries {
		obj, ok := entry.(map[string]interface{})
		if !ok {
			return nil, &types.FormatError{Path: fmt.Sprintf("fields[%d]", i), Reason: "field must be an object"}
		}
		label, ok := obj["label"].(string)
		if !ok {
			return nil, &types.FormatError{Path: fmt.Sprintf("fields[%d].label", i), Reason: "label must be a string"}
		}
		fields = append(fields, label)
	}
	return fields, nil
}

func arrayEntry(root map[string]interface{}, key string) ([]interface{}, error) {
	raw, ok := root[key]
	if !ok {
		return nil, &types.FormatError{Path: key, Reason: "missing key"}
	}
	arr, ok := raw.([]interface{})
	if !ok {
		return nil, &types.FormatError{Path: key, Reason: "must be an array"}
	}
	return arr, nil
}

func parseYear(v interface{}, row int) (int, error) {
	n, ok := v.(float64)
	if !ok || n != math.Trunc(n) || math.Abs(n) > math.MaxInt32 {
		return 0, &types.FormatError{
			Path:   fmt.Sprintf("data[%d][1]", row),
			Reason: fmt.Sprintf("year must be an integer, got %s", describe(v)),
		}
	}
	return int(n), nil
}

// describe formata um valor JSON decodificado para mensagens de erro.
func describe(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return fmt.Sprintf("%q", t)
	case map[string]interface{}:
		return "object"
	case []interface{}:
		return "array"
	default:
		return fmt.Sprint(t)
	}
}
