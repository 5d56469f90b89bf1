// Package loader applies parsed dotenv documents to an environment and
// checks the result.
package loader

import (
	"fmt"

	"github.com/GhostWriters/dotenv/internal/dotenv"
)

// Loader applies documents to Repo.
type Loader struct {
	Repo Repository

	// Immutable leaves names that were already set before Load untouched.
	// Entries later in the same document still replace earlier ones.
	Immutable bool
}

// Load sets every entry of doc in order and returns the names it set,
// each once, in the order they were first set.
func (l *Loader) Load(doc dotenv.Document) ([]string, error) {
	repo := l.Repo
	if repo == nil {
		repo = OSRepository{}
	}

	preset := make(map[string]bool)
	if l.Immutable {
		for _, e := range doc {
			if _, ok := repo.Lookup(e.Name); ok {
				preset[e.Name] = true
			}
		}
	}

	var applied []string
	seen := make(map[string]bool)
	for _, e := range doc {
		if preset[e.Name] {
			continue
		}
		if err := repo.Set(e.Name, e.Value); err != nil {
			return applied, fmt.Errorf("setting %s: %w", e.Name, err)
		}
		if !seen[e.Name] {
			seen[e.Name] = true
			applied = append(applied, e.Name)
		}
	}
	return applied, nil
}
