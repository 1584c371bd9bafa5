// Package domain defines the request and response types of remote code generation.
package domain

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"hash"
	"strings"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	customValidation "github.com/utenadev/gca4g/internal/validation"
)

// SourceFile is an existing project file sent to the model as context.
type SourceFile struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// DiffUpdate is a full-file replacement proposed by the model.
type DiffUpdate struct {
	File    string `json:"file"`
	Content string `json:"content"`
}

// Validate checks that the update names a file.
func (u DiffUpdate) Validate() error {
	return validation.ValidateStruct(&u,
		validation.Field(&u.File, validation.Required, customValidation.NotBlank),
	)
}

// Response is the JSON document the model must answer with.
type Response struct {
	Updates []DiffUpdate `json:"updates"`
}

// Validate checks that updates is present and every element is well formed.
func (r *Response) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Updates, validation.NotNil),
	)
}

// GenerationResult is a validated generation response.
type GenerationResult struct {
	ID      uuid.UUID    `json:"id"`
	Updates []DiffUpdate `json:"updates"`
}

// Fingerprint returns the cache key for a prompt and its context files.
// It is the hex SHA-256 of the prompt followed by each file's name and content.
func Fingerprint(prompt string, files []SourceFile) string {
	h := sha256.New()
	writeField(h, prompt)
	for _, f := range files {
		writeField(h, f.Name)
		writeField(h, f.Content)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// writeField writes a length-prefixed field so that ("ab","c") and ("a","bc") differ.
func writeField(h hash.Hash, s string) {
	_, _ = h.Write(binary.BigEndian.AppendUint64(nil, uint64(len(s))))
	_, _ = h.Write([]byte(s))
}

// SystemInstruction tells the model which JSON shape to answer with.
const SystemInstruction = `You are an AI assistant specialized in Google Apps Script (GAS).
Modify or generate code based on the provided files and the user's instruction.
Respond ONLY with JSON in the following format. Do not include explanations or any other text.
{
  "updates": [
    {
      "file": "FileName.gs",
      "content": "the complete new content of the file"
    }
  ]
}`

// BuildPrompt lays out the full prompt sent to the model.
func BuildPrompt(prompt string, files []SourceFile) string {
	var b strings.Builder
	b.WriteString(SystemInstruction)
	b.WriteString("\n\n--- existing files ---\n")
	for i, f := range files {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString("// File: ")
		b.WriteString(f.Name)
		b.WriteString("\n")
		b.WriteString(f.Content)
	}
	b.WriteString("\n\n--- user instruction ---\n")
	b.WriteString(prompt)
	return b.String()
}
