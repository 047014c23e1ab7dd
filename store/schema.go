package store

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const (
	tasksSchemaURL  = "https://schemas.taskdeck.dev/tasks.schema.json"
	exportSchemaURL = "https://schemas.taskdeck.dev/export.schema.json"
)

//go:embed schema/*.json
var schemaFS embed.FS

var (
	schemasOnce  sync.Once
	tasksSchema  *jsonschema.Schema
	exportSchema *jsonschema.Schema
	schemasErr   error
)

func loadSchemas() error {
	schemasOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.AssertFormat = true
		for url, name := range map[string]string{
			tasksSchemaURL:  "schema/tasks.schema.json",
			exportSchemaURL: "schema/export.schema.json",
		} {
			data, err := schemaFS.ReadFile(name)
			if err != nil {
				schemasErr = fmt.Errorf("read embedded schema %s: %w", name, err)
				return
			}
			if err := compiler.AddResource(url, bytes.NewReader(data)); err != nil {
				schemasErr = fmt.Errorf("add schema %s: %w", name, err)
				return
			}
		}
		if tasksSchema, schemasErr = compiler.Compile(tasksSchemaURL); schemasErr != nil {
			return
		}
		exportSchema, schemasErr = compiler.Compile(exportSchemaURL)
	})
	return schemasErr
}

// validateTasksJSON checks raw JSON against the task sequence schema.
func validateTasksJSON(data []byte) error {
	return validateAgainst(data, func() *jsonschema.Schema { return tasksSchema })
}

// validateExportJSON checks raw JSON against the export document schema.
func validateExportJSON(data []byte) error {
	return validateAgainst(data, func() *jsonschema.Schema { return exportSchema })
}

func validateAgainst(data []byte, schema func() *jsonschema.Schema) error {
	if err := loadSchemas(); err != nil {
		return err
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	if err := schema().Validate(doc); err != nil {
		return flattenSchemaError(err)
	}
	return nil
}

// flattenSchemaError turns the nested validation tree into one line per leaf cause.
func flattenSchemaError(err error) error {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err
	}
	var msgs []string
	var walk func(*jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			loc := e.InstanceLocation
			if loc == "" {
				loc = "/"
			}
			msgs = append(msgs, fmt.Sprintf("%s: %s", loc, e.Message))
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(ve)
	return fmt.Errorf("schema validation failed: %s", strings.Join(msgs, "; "))
}
