package domain

import (
	"github.com/utenadev/gca4g/internal/errors"
)

// Code generation error definitions.
var (
	// ErrAPIKeyRequired indicates no API key is stored or it could not be read.
	ErrAPIKeyRequired = errors.Wrap(errors.ErrUnauthorized, "api key is not set")

	// ErrInvalidAPIKey indicates an API key with an unexpected format.
	ErrInvalidAPIKey = errors.Wrap(errors.ErrInvalidInput, "invalid api key format")

	// ErrPromptRequired indicates an empty generation prompt.
	ErrPromptRequired = errors.Wrap(errors.ErrInvalidInput, "prompt is required")

	// ErrMalformedResponse indicates the model answer does not follow the updates contract.
	ErrMalformedResponse = errors.Wrap(errors.ErrMalformed, "generation response has no valid updates array")

	// ErrEmptyCandidate indicates the model answer carries no text content.
	ErrEmptyCandidate = errors.Wrap(ErrMalformedResponse, "no content")
)
