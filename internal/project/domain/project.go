// Package domain defines Apps Script project files and project settings.
package domain

import (
	"regexp"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/utenadev/gca4g/internal/errors"
	customValidation "github.com/utenadev/gca4g/internal/validation"
)

// FileType is the Apps Script file type.
type FileType string

// Supported file types.
const (
	FileTypeServerJS FileType = "server_js"
	FileTypeHTML     FileType = "html"
	FileTypeJSON     FileType = "json"
)

// InferType returns the file type implied by name: html for ".html", server_js otherwise.
func InferType(name string) FileType {
	if strings.HasSuffix(strings.ToLower(name), ".html") {
		return FileTypeHTML
	}
	return FileTypeServerJS
}

// Known reports whether t is a supported type. The Apps Script API answers
// with upper case names (SERVER_JS), so case is ignored.
func (t FileType) Known() bool {
	switch FileType(strings.ToLower(string(t))) {
	case FileTypeServerJS, FileTypeHTML, FileTypeJSON:
		return true
	}
	return false
}

var knownFileType = validation.NewStringRuleWithError(
	func(s string) bool { return FileType(s).Known() },
	validation.NewError("validation_file_type", "must be one of server_js, html, json"),
)

// GasFile is one file of an Apps Script project.
type GasFile struct {
	Name   string   `json:"name"`
	Type   FileType `json:"type"`
	Source string   `json:"source"`
}

// Validate checks that the file can be pushed.
func (f GasFile) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Name, validation.Required, customValidation.NotBlank),
		validation.Field(&f.Type, validation.Required, knownFileType),
	)
}

// ValidateFiles checks a push payload: files must be non-nil and every file valid.
func ValidateFiles(files []GasFile) error {
	if files == nil {
		return ErrFilesRequired
	}
	if err := validation.Validate(files); err != nil {
		return apperrors.Wrap(ErrInvalidFile, err.Error())
	}
	return nil
}

// ProjectSettings identifies the project pull and push operate on.
type ProjectSettings struct {
	ScriptID  string `json:"scriptId"`
	RootDir   string `json:"rootDir,omitempty"`
	ProjectID string `json:"projectId,omitempty"`
}

// editorURLRegex matches the script ID in Apps Script editor URLs.
var editorURLRegex = regexp.MustCompile(`/(?:d|home/projects)/([a-zA-Z0-9_-]+)(?:/edit)?`)

// ParseScriptID accepts a bare script ID or an editor URL and returns the script ID.
func ParseScriptID(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", ErrScriptIDRequired
	}

	if strings.Contains(input, "://") {
		match := editorURLRegex.FindStringSubmatch(input)
		if match == nil {
			return "", ErrInvalidScriptID
		}
		return match[1], nil
	}

	if err := ValidateScriptID(input); err != nil {
		return "", err
	}
	return input, nil
}

// ValidateScriptID checks that id is a non-empty Apps Script project ID.
func ValidateScriptID(id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrScriptIDRequired
	}
	if err := validation.Validate(id, customValidation.ScriptID); err != nil {
		return apperrors.Wrap(ErrInvalidScriptID, err.Error())
	}
	return nil
}
