package domain

import "strings"

// Category pairs a category name with the keyword patterns used to
// recognize it in transaction descriptions.
type Category struct {
	Name     string
	Keywords []string
}

// Taxonomy is the ordered set of expense categories. Categories are
// evaluated in declaration order and the first match wins, so the order
// must stay stable for categorization to be deterministic.
type Taxonomy []Category

// Names returns the category names in declaration order.
func (t Taxonomy) Names() []string {
	names := make([]string, len(t))
	for i, c := range t {
		names[i] = c.Name
	}
	return names
}

// Contains reports whether name is a taxonomy member, ignoring case.
func (t Taxonomy) Contains(name string) bool {
	for _, c := range t {
		if strings.EqualFold(c.Name, name) {
			return true
		}
	}
	return false
}
