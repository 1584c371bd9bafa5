// Package reconcile merges generated file updates into a project's file set.
package reconcile

import (
	codegenDomain "github.com/utenadev/gca4g/internal/codegen/domain"
	projectDomain "github.com/utenadev/gca4g/internal/project/domain"
)

// Merge applies updates to originals and returns the file set to push.
//
// Originals keep their order and type; an original whose name matches an
// update takes the update's content. Updates naming no original are appended
// in the order they first appear, with a type inferred from the file name.
// When several updates name the same file the last content wins. Inputs are
// not modified.
func Merge(originals []projectDomain.GasFile, updates []codegenDomain.DiffUpdate) []projectDomain.GasFile {
	latest := make(map[string]string, len(updates))
	order := make([]string, 0, len(updates))
	for _, u := range updates {
		if _, seen := latest[u.File]; !seen {
			order = append(order, u.File)
		}
		latest[u.File] = u.Content
	}

	merged := make([]projectDomain.GasFile, 0, len(originals)+len(order))
	matched := make(map[string]bool, len(originals))
	for _, f := range originals {
		if content, ok := latest[f.Name]; ok {
			f.Source = content
			matched[f.Name] = true
		}
		merged = append(merged, f)
	}

	for _, name := range order {
		if matched[name] {
			continue
		}
		merged = append(merged, projectDomain.GasFile{
			Name:   name,
			Type:   projectDomain.InferType(name),
			Source: latest[name],
		})
	}

	return merged
}
