// Package validation provides custom validation rules for the application.
package validation

import (
	"regexp"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/utenadev/gca4g/internal/errors"
)

// APIKeyPrefix is the prefix every generative language API key starts with.
const APIKeyPrefix = "AIzaSy"

var (
	// scriptIDRegex matches Apps Script project IDs.
	scriptIDRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// APIKey validates the format of a generative language API key.
var APIKey = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.HasPrefix(s, APIKeyPrefix)
	},
	validation.NewError("validation_api_key_format", "must be a valid API key"),
)

// ScriptID validates the characters of an Apps Script project ID.
var ScriptID = validation.NewStringRuleWithError(
	func(s string) bool {
		return scriptIDRegex.MatchString(s)
	},
	validation.NewError("validation_script_id", "must contain only letters, digits, '-' and '_'"),
)
