package domain

import (
	"github.com/utenadev/gca4g/internal/errors"
)

// Project error definitions.
var (
	// ErrScriptIDRequired indicates a missing script ID.
	ErrScriptIDRequired = errors.Wrap(errors.ErrInvalidInput, "script id is required")

	// ErrInvalidScriptID indicates a script ID or editor URL that cannot be parsed.
	ErrInvalidScriptID = errors.Wrap(errors.ErrInvalidInput, "invalid script id")

	// ErrFilesRequired indicates a push without a files array.
	ErrFilesRequired = errors.Wrap(errors.ErrInvalidInput, "files are required")

	// ErrInvalidFile indicates a file with a missing name or unsupported type.
	ErrInvalidFile = errors.Wrap(errors.ErrInvalidInput, "invalid file")

	// ErrProjectNotConfigured indicates no project has been selected.
	ErrProjectNotConfigured = errors.Wrap(errors.ErrInvalidInput, "project is not configured")
)
