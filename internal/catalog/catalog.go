// Package catalog loads the scenario catalog: the columns a dataset
// exposes, the drill-down actions offered per row, page-size options and
// the suggestion-input entity list. Catalogs are YAML, validated against an
// embedded JSON schema before use so a malformed action can never reach a
// row menu.
package catalog

import (
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"gridlens/internal/grid"
	"gridlens/internal/model"
)

const defaultTruncateAt = 65

type Catalog struct {
	Title      string         `yaml:"title"`
	BaseURL    string         `yaml:"baseURL"`
	PageSizes  []int          `yaml:"pageSizes"`
	TruncateAt int            `yaml:"truncateAt"`
	SuggestKey string         `yaml:"suggestKey"`
	Columns    []model.Column `yaml:"columns"`
	Actions    []model.Action `yaml:"actions"`
	Entities   []model.Entity `yaml:"entities"`
}

const schemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["columns"],
  "properties": {
    "title": {"type": "string"},
    "baseURL": {"type": "string"},
    "truncateAt": {"type": "integer", "minimum": 1},
    "suggestKey": {"type": "string"},
    "pageSizes": {
      "type": "array",
      "items": {"type": "integer", "minimum": 1},
      "minItems": 1
    },
    "columns": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["key"],
        "properties": {
          "key": {"type": "string", "minLength": 1},
          "label": {"type": "string"},
          "kind": {"enum": ["string", "number", "bool", "time"]}
        }
      }
    },
    "actions": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "targetDomain", "targetKey"],
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "targetDomain": {"type": "string", "minLength": 1},
          "targetKey": {"type": "string", "minLength": 1},
          "mappings": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["source", "target"],
              "properties": {
                "source": {"type": "string", "minLength": 1},
                "target": {"type": "string", "minLength": 1}
              }
            }
          }
        }
      }
    },
    "entities": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["key"],
        "properties": {
          "key": {"type": "string", "minLength": 1},
          "label": {"type": "string"},
          "tags": {"type": "array", "items": {"type": "string"}}
        }
      }
    }
  }
}`

// Load reads, validates and decodes a catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return Parse(data)
}

// Parse validates raw YAML against the catalog schema and decodes it.
func Parse(data []byte) (*Catalog, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("catalog: parse: %w", err)
	}
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schemaJSON),
		gojsonschema.NewGoLoader(doc),
	)
	if err != nil {
		return nil, fmt.Errorf("catalog: validate: %w", err)
	}
	if !result.Valid() {
		msgs := ""
		for _, desc := range result.Errors() {
			msgs += "\n  - " + desc.String()
		}
		return nil, fmt.Errorf("catalog: invalid:%s", msgs)
	}

	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}
	if len(c.PageSizes) == 0 {
		c.PageSizes = grid.DefaultPageSizes
	}
	if c.TruncateAt == 0 {
		c.TruncateAt = defaultTruncateAt
	}
	if c.SuggestKey == "" {
		c.SuggestKey = "entity"
	}
	if err := c.checkColumns(); err != nil {
		return nil, err
	}
	return &c, nil
}

// ValidActions drops actions with an incomplete drill-down target. The
// schema rejects them at load time; this guards catalogs built in code.
func (c *Catalog) ValidActions() []model.Action {
	out := make([]model.Action, 0, len(c.Actions))
	for _, a := range c.Actions {
		if a.Valid() {
			out = append(out, a)
		}
	}
	return out
}

func (c *Catalog) checkColumns() error {
	seen := map[string]bool{}
	for _, col := range c.Columns {
		if seen[col.Key] {
			return fmt.Errorf("catalog: duplicate column key %q", col.Key)
		}
		seen[col.Key] = true
	}
	return nil
}
