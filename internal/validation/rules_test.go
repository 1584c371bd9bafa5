package validation

import (
	"errors"
	"testing"

	validation "github.com/jellydator/validation"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/utenadev/gca4g/internal/errors"
)

func TestWrapValidationError(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, WrapValidationError(nil))
	})

	t.Run("wraps as invalid input", func(t *testing.T) {
		err := WrapValidationError(errors.New("prompt: cannot be blank"))
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
		assert.Contains(t, err.Error(), "prompt: cannot be blank")
	})
}

func TestRules(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		rule      validation.Rule
		shouldErr bool
	}{
		{name: "not blank ok", value: "x", rule: NotBlank},
		{name: "not blank spaces", value: "   ", rule: NotBlank, shouldErr: true},
		{name: "no whitespace ok", value: "abc", rule: NoWhitespace},
		{name: "no whitespace trailing", value: "abc ", rule: NoWhitespace, shouldErr: true},
		{name: "api key ok", value: "AIzaSyD-example", rule: APIKey},
		{name: "api key wrong prefix", value: "sk-123", rule: APIKey, shouldErr: true},
		{name: "script id ok", value: "1AbC_d-9", rule: ScriptID},
		{name: "script id with slash", value: "abc/def", rule: ScriptID, shouldErr: true},
		{name: "empty values are skipped", value: "", rule: APIKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.Validate(tt.value, tt.rule)
			if tt.shouldErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
