// Package catalog provides the read-only sign action catalog: lookup by
// id, category and difficulty filters, and free-text search. The catalog
// is built once at startup and never modified afterwards.
package catalog

import (
	"errors"
	"strings"

	"github.com/ayusman/mudra/internal/pose"
)

// ErrNotFound is returned when a requested action does not exist.
var ErrNotFound = errors.New("action not found")

// Catalog is an immutable keyed collection of sign actions.
type Catalog struct {
	byID    map[string]*pose.SignAction
	ordered []*pose.SignAction
}

// New builds a catalog from a list of actions. Invalid actions and
// duplicate ids are skipped; the first occurrence of an id wins.
func New(actions []*pose.SignAction) *Catalog {
	c := &Catalog{
		byID: make(map[string]*pose.SignAction, len(actions)),
	}
	for _, a := range actions {
		if !a.Valid() {
			continue
		}
		if _, exists := c.byID[a.ID]; exists {
			continue
		}
		c.byID[a.ID] = a
		c.ordered = append(c.ordered, a)
	}
	return c
}

// Len returns the number of actions in the catalog.
func (c *Catalog) Len() int {
	return len(c.ordered)
}

// Get returns the action with the given id.
func (c *Catalog) Get(id string) (*pose.SignAction, error) {
	a, ok := c.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return a, nil
}

// List returns all actions in insertion order. The returned slice is a
// copy; the catalog stays immutable.
func (c *Catalog) List() []*pose.SignAction {
	out := make([]*pose.SignAction, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// ByCategory returns all actions in the given category.
func (c *Catalog) ByCategory(category string) []*pose.SignAction {
	var out []*pose.SignAction
	for _, a := range c.ordered {
		if a.Category == category {
			out = append(out, a)
		}
	}
	return out
}

// ByMaxDifficulty returns all actions whose difficulty does not exceed
// the given rating.
func (c *Catalog) ByMaxDifficulty(max int) []*pose.SignAction {
	var out []*pose.SignAction
	for _, a := range c.ordered {
		if a.Difficulty <= max {
			out = append(out, a)
		}
	}
	return out
}

// Search returns all actions whose name, description or tags contain the
// query as a case-insensitive substring. An empty query matches nothing.
func (c *Catalog) Search(query string) []*pose.SignAction {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	var out []*pose.SignAction
	for _, a := range c.ordered {
		if strings.Contains(strings.ToLower(a.Name), query) ||
			strings.Contains(strings.ToLower(a.Description), query) {
			out = append(out, a)
			continue
		}
		for _, tag := range a.Tags {
			if strings.Contains(strings.ToLower(tag), query) {
				out = append(out, a)
				break
			}
		}
	}
	return out
}

// Resolve maps a list of action ids to their definitions, failing on the
// first unknown id.
func (c *Catalog) Resolve(ids []string) ([]*pose.SignAction, error) {
	out := make([]*pose.SignAction, 0, len(ids))
	for _, id := range ids {
		a, err := c.Get(id)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}
