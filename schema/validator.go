package exportschema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/kaptinlin/jsonrepair"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed company_extraction.schema.json
var companyExtractionSchemaJSON string

// CompanyExtraction is one company record in a crawler export.
type CompanyExtraction struct {
	CompanyName   string   `json:"company_name"`
	CompanyURL    string   `json:"company_url,omitempty"`
	Lohnfertigung bool     `json:"lohnfertigung,omitempty"`
	Products      []string `json:"products,omitempty"`
	Machines      []string `json:"machines,omitempty"`
	ProcessType   []string `json:"process_type,omitempty"`
}

var (
	compileOnce       sync.Once
	compiledSchema    *jsonschema.Schema
	compiledSchemaErr error
)

// ValidateCompanyExtraction parses and validates a crawler JSON export.
// Model output is frequently slightly broken (trailing commas, single
// quotes, cut-off arrays), so a strict decode failure gets one repair
// attempt before the document is rejected.
func ValidateCompanyExtraction(payload json.RawMessage) ([]CompanyExtraction, error) {
	value, err := decodeStrictJSON(payload)
	if err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(string(payload))
		if repairErr != nil {
			return nil, fmt.Errorf("decode export JSON: %w", err)
		}
		value, err = decodeStrictJSON([]byte(repaired))
		if err != nil {
			return nil, fmt.Errorf("decode repaired export JSON: %w", err)
		}
	}

	schema, err := loadSchema()
	if err != nil {
		return nil, fmt.Errorf("load schema: %w", err)
	}
	if err := schema.Validate(value); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	normalized, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("normalize export JSON: %w", err)
	}

	var items []CompanyExtraction
	if err := json.Unmarshal(normalized, &items); err != nil {
		return nil, fmt.Errorf("unmarshal export: %w", err)
	}

	for i, item := range items {
		if strings.TrimSpace(item.CompanyName) == "" {
			return nil, fmt.Errorf("items[%d]: company_name must not be empty", i)
		}
	}
	return items, nil
}

func loadSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020

		if err := compiler.AddResource("company_extraction.schema.json", strings.NewReader(companyExtractionSchemaJSON)); err != nil {
			compiledSchemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}

		schema, err := compiler.Compile("company_extraction.schema.json")
		if err != nil {
			compiledSchemaErr = fmt.Errorf("compile schema: %w", err)
			return
		}

		compiledSchema = schema
	})

	if compiledSchemaErr != nil {
		return nil, compiledSchemaErr
	}
	if compiledSchema == nil {
		return nil, fmt.Errorf("schema not initialized")
	}
	return compiledSchema, nil
}

func decodeStrictJSON(raw []byte) (any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("export is empty")
	}

	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, err
	}

	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("export contains trailing content")
	}

	return value, nil
}
