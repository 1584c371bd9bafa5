// Package dto provides data transfer objects for the message endpoint.
package dto

import (
	validation "github.com/jellydator/validation"

	codegenDomain "github.com/utenadev/gca4g/internal/codegen/domain"
	projectDomain "github.com/utenadev/gca4g/internal/project/domain"
)

// Message types accepted by the message endpoint.
const (
	TypeSetMasterPassword       = "SET_MASTER_PASSWORD"
	TypeGetMasterPasswordStatus = "GET_MASTER_PASSWORD_STATUS"
	TypeClearMasterPassword     = "CLEAR_MASTER_PASSWORD"
	TypeSaveAPIKey              = "SAVE_API_KEY"
	TypeGetAPIKey               = "GET_API_KEY"
	TypeGenerateCode            = "GENERATE_CODE"
	TypePullProject             = "PULL_PROJECT"
	TypePushProject             = "PUSH_PROJECT"
	TypeSetProjectID            = "SET_PROJECT_ID"
	TypeAuthenticateGAS         = "AUTHENTICATE_GAS"
	TypeMergeUpdates            = "MERGE_UPDATES"
	TypeApplyUpdates            = "APPLY_UPDATES"
)

// File is a project file as sent by callers. Generation requests carry
// content; push and merge requests carry type and source.
type File struct {
	Name    string `json:"name"`
	Type    string `json:"type,omitempty"`
	Source  string `json:"source,omitempty"`
	Content string `json:"content,omitempty"`
}

// MessageRequest is the body of POST /v1/messages. Only the fields used by
// Type are read.
type MessageRequest struct {
	Type      string                     `json:"type"`
	Password  string                     `json:"password,omitempty"`
	APIKey    string                     `json:"apiKey,omitempty"`
	Prompt    string                     `json:"prompt,omitempty"`
	ProjectID string                     `json:"projectId,omitempty"`
	Files     []File                     `json:"files,omitempty"`
	Originals []File                     `json:"originals,omitempty"`
	Updates   []codegenDomain.DiffUpdate `json:"updates,omitempty"`
}

// Validate checks the fields the message type requires.
func (r *MessageRequest) Validate() error {
	needsUpdates := r.Type == TypeMergeUpdates || r.Type == TypeApplyUpdates

	return validation.ValidateStruct(r,
		validation.Field(&r.Type, validation.Required),
		validation.Field(&r.Password,
			validation.When(r.Type == TypeSetMasterPassword, validation.Required),
		),
		validation.Field(&r.ProjectID,
			validation.When(r.Type == TypeSetProjectID, validation.Required),
		),
		validation.Field(&r.Updates,
			validation.When(needsUpdates, validation.NotNil),
		),
	)
}

// SourceFiles maps files to generation context files. Content falls back to source.
func SourceFiles(files []File) []codegenDomain.SourceFile {
	out := make([]codegenDomain.SourceFile, 0, len(files))
	for _, f := range files {
		content := f.Content
		if content == "" {
			content = f.Source
		}
		out = append(out, codegenDomain.SourceFile{Name: f.Name, Content: content})
	}
	return out
}

// GasFiles maps files to project files. A nil slice stays nil so the project
// layer can report missing files. A file sent without a type gets the type
// implied by its name.
func GasFiles(files []File) []projectDomain.GasFile {
	if files == nil {
		return nil
	}
	out := make([]projectDomain.GasFile, 0, len(files))
	for _, f := range files {
		fileType := projectDomain.FileType(f.Type)
		if fileType == "" {
			fileType = projectDomain.InferType(f.Name)
		}
		out = append(out, projectDomain.GasFile{
			Name:   f.Name,
			Type:   fileType,
			Source: f.Source,
		})
	}
	return out
}
