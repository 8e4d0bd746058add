package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cardmanager/cardmanage/internal/config"
)

// ShowConfig prints the effective configuration as YAML, preceded by the
// files it was merged from
func (d *Dispatcher) ShowConfig(cfg *config.Config, sources []string) error {
	for _, src := range sources {
		_, _ = fmt.Fprintf(d.out, "# from %s\n", src)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	_, err = d.out.Write(data)
	return err
}

// Schema displays or exports the JSON Schema for cardmanage configuration files
func (d *Dispatcher) Schema(outputPath string) error {
	schemaJSON, err := config.GetSchemaJSON()
	if err != nil {
		return err
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, []byte(schemaJSON+"\n"), 0644); err != nil {
			return fmt.Errorf("failed to write schema to %s: %w", outputPath, err)
		}
		_, _ = fmt.Fprintf(d.out, "JSON Schema written to: %s\n", outputPath)
		return nil
	}

	_, err = fmt.Fprintln(d.out, schemaJSON)
	return err
}

// ValidateConfig validates a cardmanage configuration file
func (d *Dispatcher) ValidateConfig(path string) error {
	_, _ = fmt.Fprintf(d.out, "Validating: %s\n\n", path)

	result, err := config.Validate(path)
	if err != nil {
		return err
	}

	if result.Valid {
		_, _ = fmt.Fprintln(d.out, "✅ Configuration is valid!")
		return nil
	}

	_, _ = fmt.Fprintln(d.out, "❌ Configuration has errors:")
	for i, verr := range result.Errors {
		_, _ = fmt.Fprintf(d.out, "%d. [%s] %s\n", i+1, verr.Field, verr.Message)
	}
	_, _ = fmt.Fprintf(d.out, "\nFound %d error(s)\n", len(result.Errors))

	return fmt.Errorf("validation failed")
}
