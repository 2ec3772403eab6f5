package evaluator

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed requirements.schema.json
var requirementsSchemaJSON []byte

var requirementsSchema = mustCompileSchema(requirementsSchemaJSON)

func mustCompileSchema(b []byte) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(b))
	if err != nil {
		panic(fmt.Sprintf("compile requirements schema: %v", err))
	}
	return s
}

// FieldError is a single schema violation.
type FieldError struct {
	Field   string
	Message string
}

type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "requirements validation failed: " + strings.Join(parts, "; ")
}

// ValidateRequirements checks an oracle requirements document against the
// embedded schema.
func ValidateRequirements(doc []byte) error {
	res, err := requirementsSchema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return fmt.Errorf("load requirements document: %w", err)
	}
	if res.Valid() {
		return nil
	}

	ve := &ValidationError{Errors: make([]FieldError, 0, len(res.Errors()))}
	for _, desc := range res.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		ve.Errors = append(ve.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	return ve
}
