package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprint(t *testing.T) {
	files := []SourceFile{{Name: "Code.gs", Content: "function a() {}"}}

	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, Fingerprint("add b", files), Fingerprint("add b", files))
		assert.Len(t, Fingerprint("add b", files), 64)
	})

	t.Run("prompt changes key", func(t *testing.T) {
		assert.NotEqual(t, Fingerprint("add b", files), Fingerprint("add c", files))
	})

	t.Run("content changes key", func(t *testing.T) {
		changed := []SourceFile{{Name: "Code.gs", Content: "function a() { return 1 }"}}
		assert.NotEqual(t, Fingerprint("add b", files), Fingerprint("add b", changed))
	})

	t.Run("field boundaries are not ambiguous", func(t *testing.T) {
		a := []SourceFile{{Name: "ab", Content: "c"}}
		b := []SourceFile{{Name: "a", Content: "bc"}}
		assert.NotEqual(t, Fingerprint("p", a), Fingerprint("p", b))
	})
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("add a logger", []SourceFile{
		{Name: "Code.gs", Content: "function main() {}"},
		{Name: "index.html", Content: "<p></p>"},
	})

	assert.True(t, strings.HasPrefix(prompt, SystemInstruction))
	assert.Contains(t, prompt, "--- existing files ---\n// File: Code.gs\nfunction main() {}\n\n// File: index.html\n<p></p>")
	assert.True(t, strings.HasSuffix(prompt, "--- user instruction ---\nadd a logger"))
}

func TestResponse_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		r := &Response{Updates: []DiffUpdate{{File: "Code.gs", Content: "x"}}}
		assert.NoError(t, r.Validate())
	})

	t.Run("empty updates array is valid", func(t *testing.T) {
		r := &Response{Updates: []DiffUpdate{}}
		assert.NoError(t, r.Validate())
	})

	t.Run("missing updates", func(t *testing.T) {
		r := &Response{}
		assert.Error(t, r.Validate())
	})

	t.Run("update without file name", func(t *testing.T) {
		r := &Response{Updates: []DiffUpdate{{Content: "x"}}}
		assert.Error(t, r.Validate())
	})
}
