package markdown

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrSchemaInvalid indicates the configured front-matter schema cannot compile.
var ErrSchemaInvalid = errors.New("content: front-matter schema invalid")

// ErrSchemaValidation indicates front matter that violates the configured schema.
var ErrSchemaValidation = errors.New("content: front-matter schema validation failed")

// SchemaIssue captures a single validation failure.
type SchemaIssue struct {
	Location string
	Message  string
}

// SchemaValidationError surfaces validation issues with field-level context.
type SchemaValidationError struct {
	Issues []SchemaIssue
	Cause  error
}

func (e *SchemaValidationError) Error() string {
	if len(e.Issues) == 0 {
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return ErrSchemaValidation.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := strings.TrimSpace(issue.Location)
		if location == "" {
			location = "#"
		} else if !strings.HasPrefix(location, "#") {
			location = "#" + location
		}
		if issue.Message == "" {
			parts = append(parts, location)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return strings.Join(parts, "; ")
}

func (e *SchemaValidationError) Unwrap() error {
	return ErrSchemaValidation
}

// SchemaValidator compiles a JSON schema once and checks raw front-matter
// mappings against it. A nil validator accepts everything.
type SchemaValidator struct {
	compiled *jsonschema.Schema
}

// NewSchemaValidator compiles the provided schema definition. An empty schema
// yields a nil validator.
func NewSchemaValidator(schema map[string]any) (*SchemaValidator, error) {
	if len(schema) == 0 {
		return nil, nil
	}
	compiled, err := compileSchema(schema)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}
	return &SchemaValidator{compiled: compiled}, nil
}

// Validate checks the raw front-matter mapping. Nil receivers accept every
// payload so callers can skip the "schema configured?" branching.
func (v *SchemaValidator) Validate(raw map[string]any) error {
	if v == nil || v.compiled == nil {
		return nil
	}
	payload := raw
	if payload == nil {
		payload = map[string]any{}
	}
	// Round-trip through JSON so decoded values (time.Time, typed slices)
	// take the shapes the schema library expects.
	encoded, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaValidation, err)
	}
	var generic any
	if err := json.Unmarshal(encoded, &generic); err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaValidation, err)
	}
	if err := v.compiled.Validate(generic); err != nil {
		return &SchemaValidationError{
			Issues: collectIssues(err),
			Cause:  err,
		}
	}
	return nil
}

func collectIssues(err error) []SchemaIssue {
	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) || validationErr == nil {
		return []SchemaIssue{{Message: err.Error()}}
	}
	return flattenValidationError(validationErr)
}

func flattenValidationError(err *jsonschema.ValidationError) []SchemaIssue {
	if err == nil {
		return nil
	}
	if len(err.Causes) == 0 {
		return []SchemaIssue{{
			Location: err.InstanceLocation,
			Message:  err.Message,
		}}
	}
	var issues []SchemaIssue
	for _, cause := range err.Causes {
		issues = append(issues, flattenValidationError(cause)...)
	}
	return issues
}

func compileSchema(schema map[string]any) (*jsonschema.Schema, error) {
	encoded, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("schema.json", bytes.NewReader(encoded)); err != nil {
		return nil, err
	}
	return compiler.Compile("schema.json")
}
