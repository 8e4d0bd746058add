package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// Schema reflects the JSON Schema of Config
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		Anonymous:                  true,
		DoNotReference:             true,
		ExpandedStruct:             true,
		RequiredFromJSONSchemaTags: true,
	}
	s := r.Reflect(&Config{})
	// gojsonschema only understands drafts up to 7
	s.Version = ""
	s.Title = "cardmanage configuration"
	return s
}

// GetSchemaJSON returns the indented JSON Schema for cardmanage configuration
func GetSchemaJSON() (string, error) {
	data, err := json.MarshalIndent(Schema(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode schema: %w", err)
	}
	return string(data), nil
}

// ValidateWithSchema validates config content against the JSON Schema.
// The format is taken from the path's extension.
func ValidateWithSchema(path string, content []byte) (*ValidationResult, error) {
	result := &ValidationResult{
		Valid:  true,
		Errors: []ValidationError{},
	}

	var data interface{}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yml", ".yaml":
		if err := yaml.Unmarshal(content, &data); err != nil {
			result.addError("syntax", fmt.Sprintf("Invalid YAML syntax: %v", err))
			return result, nil
		}
	case ".json":
		if err := json.Unmarshal(content, &data); err != nil {
			result.addError("syntax", fmt.Sprintf("Invalid JSON syntax: %v", err))
			return result, nil
		}
	case ".toml":
		m, err := toml.Parser().Unmarshal(content)
		if err != nil {
			result.addError("syntax", fmt.Sprintf("Invalid TOML syntax: %v", err))
			return result, nil
		}
		data = m
	default:
		return nil, fmt.Errorf("unsupported file format: %q", ext)
	}

	// an empty file is an empty config
	if data == nil {
		data = map[string]interface{}{}
	}

	schemaJSON, err := GetSchemaJSON()
	if err != nil {
		return nil, err
	}

	validation, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schemaJSON),
		gojsonschema.NewGoLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("schema validation error: %w", err)
	}

	for _, verr := range validation.Errors() {
		result.addError(verr.Field(), verr.Description())
	}
	return result, nil
}
