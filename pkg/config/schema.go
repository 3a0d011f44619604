package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "https://plexity.dev/schema/config.json"

// schemaDoc describes every accepted configuration key.
const schemaDoc = `{
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "analysis": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "error_nodes": {"enum": ["count", "skip-decisions", "exclude"]},
        "max_file_size": {"type": "integer", "minimum": 0}
      }
    },
    "languages": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "additionalProperties": false,
        "properties": {
          "decision_kinds": {
            "type": "array",
            "items": {"type": "string", "minLength": 1}
          },
          "mode": {"enum": ["replace", "extend"]}
        }
      }
    },
    "cache": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "enabled": {"type": "boolean"},
        "dir": {"type": "string"},
        "ttl": {"type": "integer", "minimum": 0}
      }
    },
    "output": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "format": {"enum": ["text", "json", "markdown", "md", "toon", "yaml"]},
        "color": {"type": "boolean"}
      }
    }
  }
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func configSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader([]byte(schemaDoc)))
		if err != nil {
			schemaErr = fmt.Errorf("failed to decode config schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			schemaErr = fmt.Errorf("failed to register config schema: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(schemaURL)
	})
	return compiledSchema, schemaErr
}

// validateRaw checks a parsed config map against the schema. Values are
// round-tripped through JSON so every file format validates the same way.
func validateRaw(raw map[string]any) error {
	schema, err := configSchema()
	if err != nil {
		return err
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return err
	}
	return schema.Validate(inst)
}

// Validate checks an in-memory config against the same rules as files.
func (c *Config) Validate() error {
	if err := validateRaw(c.toMap()); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// toMap mirrors the koanf key layout.
func (c *Config) toMap() map[string]any {
	langs := make(map[string]any, len(c.Languages))
	for name, lc := range c.Languages {
		entry := map[string]any{}
		if lc.DecisionKinds != nil {
			entry["decision_kinds"] = lc.DecisionKinds
		}
		if lc.Mode != "" {
			entry["mode"] = lc.Mode
		}
		langs[name] = entry
	}
	return map[string]any{
		"analysis": map[string]any{
			"error_nodes":   c.Analysis.ErrorNodes,
			"max_file_size": c.Analysis.MaxFileSize,
		},
		"languages": langs,
		"cache": map[string]any{
			"enabled": c.Cache.Enabled,
			"dir":     c.Cache.Dir,
			"ttl":     c.Cache.TTL,
		},
		"output": map[string]any{
			"format": c.Output.Format,
			"color":  c.Output.Color,
		},
	}
}
