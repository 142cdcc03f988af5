// internal/results/schema.go
package results

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// documentSchema describes the shape every results file must have before it is decoded.
// Optional fields are typed loosely where published files disagree (rank changes may be numbers).
const documentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["models"],
  "properties": {
    "lastUpdated": {"type": "string"},
    "models": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["rank", "name", "aslScore", "successRate"],
        "properties": {
          "rank": {"type": "integer", "minimum": 1},
          "name": {"type": "string", "minLength": 1},
          "organization": {"type": "string"},
          "aslScore": {"type": "number"},
          "successRate": {"type": "number", "minimum": 0, "maximum": 100},
          "avgTime": {"type": ["number", "null"]},
          "robustnessScore": {"type": ["number", "null"]},
          "size": {"type": ["number", "null"]},
          "rankChange": {"type": ["string", "number", "null"]},
          "rankByRobustnessChange": {"type": ["string", "number", "null"]},
          "rankBySemanticSimilarityChange": {"type": ["string", "number", "null"]},
          "details": {
            "type": ["object", "null"],
            "properties": {
              "totalTests": {"type": "integer", "minimum": 0},
              "passed": {"type": "integer", "minimum": 0},
              "failed": {"type": "integer", "minimum": 0},
              "categories": {
                "type": "object",
                "additionalProperties": {"type": "number"}
              }
            }
          }
        }
      }
    }
  }
}`

const samplingSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["task_id", "greedy", "temperature"],
    "properties": {
      "task_id": {"type": ["string", "number"]},
      "greedy": {"type": "number"},
      "temperature": {"type": "number"}
    }
  }
}`

var (
	documentSchemaLoader = gojsonschema.NewStringLoader(documentSchema)
	samplingSchemaLoader = gojsonschema.NewStringLoader(samplingSchema)
)

// ValidateDocument checks raw JSON against the results document schema.
func ValidateDocument(raw []byte) error {
	return validate(documentSchemaLoader, raw)
}

// ValidateSampling checks raw JSON against the sampling comparison schema.
func ValidateSampling(raw []byte) error {
	return validate(samplingSchemaLoader, raw)
}

func validate(schema gojsonschema.JSONLoader, raw []byte) error {
	result, err := gojsonschema.Validate(schema, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}
	var details []string
	for _, desc := range result.Errors() {
		details = append(details, desc.String())
	}
	return fmt.Errorf("document failed validation: %s", strings.Join(details, "; "))
}
