package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const askSchema = `{
	"type": "object",
	"required": ["question"],
	"properties": {
		"question": {"type": "string", "minLength": 1, "maxLength": 20},
		"language": {"type": "string", "enum": ["en", "hi", "te"]}
	}
}`

// ==========================
// ValidateInput
// ==========================

func TestValidateInput(t *testing.T) {
	tests := []struct {
		name      string
		input     interface{}
		valid     bool
		badFields []string
	}{
		{
			name:  "valid",
			input: map[string]interface{}{"question": "Who is my MLA?", "language": "hi"},
			valid: true,
		},
		{
			name:      "missing question",
			input:     map[string]interface{}{"language": "en"},
			badFields: []string{"(root)"},
		},
		{
			name:      "unknown language",
			input:     map[string]interface{}{"question": "hello", "language": "fr"},
			badFields: []string{"language"},
		},
		{
			name:      "question too long",
			input:     map[string]interface{}{"question": "this question is far too long"},
			badFields: []string{"question"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateInput(tt.input, askSchema)
			assert.Equal(t, tt.valid, res.Valid)
			for _, f := range tt.badFields {
				assert.True(t, res.HasErrors(f), "expected error on %s, got %v", f, res.GetErrorMessages())
			}
			if tt.valid {
				assert.Empty(t, res.Errors)
			}
		})
	}
}

func TestValidateInput_BrokenSchema(t *testing.T) {
	res := ValidateInput(map[string]interface{}{}, `{"type": `)
	assert.False(t, res.Valid)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "SCHEMA_INVALID", res.Errors[0].Code)
}

// ==========================
// Compile
// ==========================

func TestCompile_Caches(t *testing.T) {
	first, err := Compile(askSchema)
	require.NoError(t, err)
	second, err := Compile(askSchema)
	require.NoError(t, err)
	assert.Same(t, first, second)

	assert.Panics(t, func() { MustCompile(`not json`) })
}

func TestGetErrorMessages(t *testing.T) {
	res := ValidateInput(map[string]interface{}{"question": "", "language": "fr"}, askSchema)
	msgs := res.GetErrorMessages()
	require.Len(t, msgs, 2)
	assert.Contains(t, msgs[0], "language")
	assert.Contains(t, msgs[1], "question")
}
