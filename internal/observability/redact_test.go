package observability

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPIIRedactor_NormalizesEmailMode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		email string
	}{
		{"mixed case partial", "Partial", "jo***@example.com"},
		{"upper case full", "FULL", RedactedValue},
		{"whitespace partial", "  partial  ", "jo***@example.com"},
		{"empty defaults to full", "", RedactedValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewPIIRedactor(tt.input)
			result, _ := r.Redact(map[string]any{"email": "john@example.com"}).(map[string]any)
			assert.Equal(t, tt.email, result["email"])
		})
	}
}

func TestPIIRedactor_Redact_WordBoundaries(t *testing.T) {
	r := NewPIIRedactor(EmailModeFull)

	result, _ := r.Redact(map[string]any{
		"access_token":   "abc",
		"tokenization":   "not pii",
		"secretary_name": "not pii",
		"phone_number":   "555-0100",
		"birth_date":     "1998-01-01",
		"user_id":        "user-42",
		"token_id":       "tok-42",
	}).(map[string]any)

	assert.Equal(t, RedactedValue, result["access_token"])
	assert.Equal(t, "not pii", result["tokenization"])
	assert.Equal(t, "not pii", result["secretary_name"])
	assert.Equal(t, RedactedValue, result["phone_number"])
	assert.Equal(t, RedactedValue, result["birth_date"])
	assert.Equal(t, "user-42", result["user_id"])
	assert.Equal(t, "tok-42", result["token_id"])
}

func TestPIIRedactor_Redact_NestedAndSlices(t *testing.T) {
	r := NewPIIRedactor(EmailModeFull)

	result, _ := r.Redact(map[string]any{
		"matches": []any{
			map[string]any{"liked_user_phone": "555-0100", "match_id": "m-1"},
		},
	}).(map[string]any)

	matches, _ := result["matches"].([]any)
	first, _ := matches[0].(map[string]any)
	assert.Equal(t, RedactedValue, first["liked_user_phone"])
	assert.Equal(t, "m-1", first["match_id"])
}

func TestPIIRedactor_Redact_NilAndEmpty(t *testing.T) {
	r := NewPIIRedactor(EmailModeFull)
	assert.Nil(t, r.Redact(nil))

	result, _ := r.Redact(map[string]any{}).(map[string]any)
	assert.NotNil(t, result)
	assert.Empty(t, result)
}
