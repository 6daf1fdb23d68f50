package entity

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	"github.com/xeipuuv/gojsonschema"
)

// Defaults applied by EnsureValidDefaults.
const (
	DefaultSvgDir      = "svg"
	DefaultSvgFilename = "{code}_{name}"
	DefaultSvgExt      = ".svg"
)

// Available output formats.
const (
	OutputFormatSvg  = "svg"
	OutputFormatJson = "json"
)

// Spec describes one conversion run: which resources to read, how to
// merge and filter the per-icon records, and which outputs to produce.
// Specs are provided as JSON and validated both against a JSON schema
// and semantically (filters must compile, output formats must be known).
type Spec struct {
	// Main metadata (required)
	Name        string `json:"name"`
	Version     int    `json:"version"`
	Description string `json:"description,omitempty"`

	// Resources lists the inputs to build one Table each from, in
	// combination order. Later resources override earlier ones per field.
	Resources []Resource `json:"resources"`

	// SvgDir is the working directory for per-glyph SVG export.
	// If omitted it is set to DefaultSvgDir.
	SvgDir string `json:"svgDir,omitempty"`

	// RequireNamed drops merged records whose "name" field is missing or
	// empty, before filtering. If omitted it defaults to true; in the
	// icon sets this tool is built for, unnamed glyphs are control or
	// notdef entries.
	RequireNamed *bool `json:"requireNamed,omitempty"`

	// Fields are the output field specs on the rename-allowed grammar
	// "field[:newName[:modifier,...]]". If empty, all canonical fields
	// are emitted unmodified.
	Fields []string `json:"fields,omitempty"`

	// Filters are per-field regexp predicates ANDed over each record.
	// Patterns are anchored at the start of the field value.
	Filters []Filter `json:"filters,omitempty"`

	// Outputs are the (format, path template) directives to produce.
	Outputs []Output `json:"outputs"`
}

// Resource selects a registered source type and hands it a path.
type Resource struct {
	Type EntityType `json:"type"`
	Path string     `json:"path"`
}

// Filter is one (field, pattern) predicate. A record passes if the named
// field's string value matches the pattern anchored at the start. A
// record missing the field entirely fails the whole filter evaluation
// with an error.
type Filter struct {
	Field   string `json:"field"`
	Pattern string `json:"pattern"`
}

// Output is one output directive. For the "svg" format, Path is a
// filename template that may contain "{field[:modifier...]}" placeholders
// in any segment; for "json" it is a plain file path.
type Output struct {
	Format string `json:"format"`
	Path   string `json:"path"`
}

// NewSpec creates a new Spec from JSON and validates it both against the
// JSON schema and semantically.
func NewSpec(specData []byte) (*Spec, error) {
	var spec Spec
	if len(specData) == 0 {
		return nil, errors.New("no spec data provided")
	}

	if err := validateRawJson(specData); err != nil {
		return nil, err
	}

	err := json.Unmarshal(specData, &spec)
	if err == nil {
		spec.EnsureValidDefaults()
		err = spec.Validate()
	}
	return &spec, err
}

func (s *Spec) Id() string {
	return fmt.Sprintf("%s-v%d", s.Name, s.Version)
}

func (s *Spec) EnsureValidDefaults() {
	if s.SvgDir == "" {
		s.SvgDir = DefaultSvgDir
	}
	if s.RequireNamed == nil {
		requireNamed := true
		s.RequireNamed = &requireNamed
	}
}

// Validate covers the checks the JSON schema cannot express: filter
// patterns must compile and output directives must be well formed.
func (s *Spec) Validate() error {
	for _, filter := range s.Filters {
		if filter.Field == "" {
			return fmt.Errorf("filter pattern %q has no field", filter.Pattern)
		}
		if _, err := regexp.Compile(filter.Pattern); err != nil {
			return fmt.Errorf("invalid filter pattern for field %s: %v", filter.Field, err)
		}
	}
	// Formats are not restricted to the native ones here, since custom
	// writer types can be registered; an unknown format is an assembly
	// error instead.
	for _, output := range s.Outputs {
		if output.Format == "" {
			return fmt.Errorf("output with path %s has no format", output.Path)
		}
		if output.Path == "" {
			return fmt.Errorf("output with format %s has no path", output.Format)
		}
	}
	return nil
}

func (s *Spec) JSON() []byte {
	specData, _ := json.Marshal(s)
	return specData
}

func validateRawJson(specData []byte) error {
	schemaLoader := gojsonschema.NewBytesLoader(specSchema)
	documentLoader := gojsonschema.NewBytesLoader(specData)
	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return err
	}

	if !result.Valid() {
		specErrors := ""
		for _, desc := range result.Errors() {
			specErrors += " - " + desc.String()
		}
		err = errors.New(specErrors)
	}
	return err
}

// Initial conversion spec schema with only the most important checks.
var specSchema = []byte(`
{
  "$schema": "http://json-schema.org/draft-07/schema",
  "type": "object",
  "required": [
    "name",
    "version",
    "resources",
    "outputs"
  ],
  "properties": {
    "name": {
      "type": "string",
      "minLength": 1
    },
    "version": {
      "type": "integer"
    },
    "description": {
      "type": "string"
    },
    "resources": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": [
          "type",
          "path"
        ],
        "properties": {
          "type": {
            "type": "string",
            "minLength": 1
          },
          "path": {
            "type": "string",
            "minLength": 1
          }
        },
        "additionalProperties": false
      }
    },
    "svgDir": {
      "type": "string"
    },
    "requireNamed": {
      "type": "boolean"
    },
    "fields": {
      "type": "array",
      "items": {
        "type": "string",
        "minLength": 1
      }
    },
    "filters": {
      "type": "array",
      "items": {
        "type": "object",
        "required": [
          "field",
          "pattern"
        ],
        "properties": {
          "field": {
            "type": "string",
            "minLength": 1
          },
          "pattern": {
            "type": "string"
          }
        },
        "additionalProperties": false
      }
    },
    "outputs": {
      "type": "array",
      "items": {
        "type": "object",
        "required": [
          "format",
          "path"
        ],
        "properties": {
          "format": {
            "type": "string",
            "minLength": 1
          },
          "path": {
            "type": "string",
            "minLength": 1
          }
        },
        "additionalProperties": false
      }
    }
  },
  "additionalProperties": false
}
`)
