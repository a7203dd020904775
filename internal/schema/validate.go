package schema

import (
	"encoding/json"
	"fmt"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// rootSchema describes the envelope of a boards payload. Boards and tasks
// are checked one at a time against boardSchema and taskSchema. Only types
// are checked; no field is required.
const rootSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "boards": { "type": ["array", "null"] },
    "backgroundUrl": { "type": ["string", "null"] },
    "backgroundPreset": { "type": ["string", "null"] }
  }
}`

const boardSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "id": { "type": ["string", "number", "null"] },
    "title": { "type": ["string", "null"] },
    "todos": { "type": ["array", "null"] },
    "statusFilter": { "type": ["string", "null"] },
    "dayFilter": { "type": ["string", "null"] },
    "useDays": { "type": ["boolean", "null"] }
  }
}`

const taskSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "id": { "type": ["string", "number", "null"] },
    "title": { "type": ["string", "null"] },
    "done": { "type": ["boolean", "null"] },
    "createdAt": { "type": ["number", "null"] },
    "day": { "type": ["string", "null"] }
  }
}`

// legacySchema describes the flat task list of the first generation.
const legacySchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array"
}`

var (
	compiledRoot   = jsonschema.MustCompileString("https://glassboard.local/root.schema.json", rootSchema)
	compiledBoard  = jsonschema.MustCompileString("https://glassboard.local/board.schema.json", boardSchema)
	compiledTask   = jsonschema.MustCompileString("https://glassboard.local/task.schema.json", taskSchema)
	compiledLegacy = jsonschema.MustCompileString("https://glassboard.local/legacy.schema.json", legacySchema)
)

// checkShape parses data as JSON and validates it against sch.
func checkShape(sch *jsonschema.Schema, data []byte) error {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	if err := sch.Validate(doc); err != nil {
		return fmt.Errorf("shape: %w", err)
	}
	return nil
}
