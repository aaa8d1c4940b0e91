// internal/common/validation/schema.go
package validation

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

var (
	schemaMu    sync.RWMutex
	schemaCache = map[string]*gojsonschema.Schema{}
)

// Compile parses a JSON schema document. Compiled schemas are cached by
// their source text.
func Compile(schemaJSON string) (*gojsonschema.Schema, error) {
	schemaMu.RLock()
	s, ok := schemaCache[schemaJSON]
	schemaMu.RUnlock()
	if ok {
		return s, nil
	}

	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}

	schemaMu.Lock()
	schemaCache[schemaJSON] = s
	schemaMu.Unlock()
	return s, nil
}

// MustCompile is Compile for package-level schemas.
func MustCompile(schemaJSON string) *gojsonschema.Schema {
	s, err := Compile(schemaJSON)
	if err != nil {
		panic(err)
	}
	return s
}

// ValidateInput validates a decoded document against a JSON schema.
func ValidateInput(input interface{}, schemaJSON string) *ValidationResult {
	s, err := Compile(schemaJSON)
	if err != nil {
		return &ValidationResult{Errors: []ValidationError{{
			Field:   "(schema)",
			Message: err.Error(),
			Code:    "SCHEMA_INVALID",
		}}}
	}
	return Validate(s, input)
}

// Validate checks input against a compiled schema.
func Validate(s *gojsonschema.Schema, input interface{}) *ValidationResult {
	result, err := s.Validate(gojsonschema.NewGoLoader(input))
	if err != nil {
		return &ValidationResult{Errors: []ValidationError{{
			Field:   "(root)",
			Message: err.Error(),
			Code:    "DOCUMENT_INVALID",
		}}}
	}

	errs := make([]ValidationError, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		errs = append(errs, ValidationError{
			Field:   re.Field(),
			Message: re.Description(),
			Code:    strings.ToUpper(re.Type()),
		})
	}
	sort.SliceStable(errs, func(i, j int) bool { return errs[i].Field < errs[j].Field })

	return &ValidationResult{
		Valid:  result.Valid(),
		Errors: errs,
	}
}

// GetErrorMessages returns a simple list of error messages
func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}

// HasErrors checks if validation has errors for specific field
func (vr *ValidationResult) HasErrors(field string) bool {
	for _, err := range vr.Errors {
		if err.Field == field {
			return true
		}
	}
	return false
}
