package plexity

import (
	"sort"

	"github.com/cespare/xxhash/v2"
)

// Classifier decides which node kinds are decision points for the
// cyclomatic estimate. It is immutable once built and safe to share.
type Classifier struct {
	kinds  map[string]struct{}
	sorted []string
}

// NewClassifier builds a classifier from a set of node kinds.
// Duplicates and empty strings are ignored.
func NewClassifier(kinds ...string) *Classifier {
	c := &Classifier{kinds: make(map[string]struct{}, len(kinds))}
	for _, k := range kinds {
		if k == "" {
			continue
		}
		if _, ok := c.kinds[k]; ok {
			continue
		}
		c.kinds[k] = struct{}{}
		c.sorted = append(c.sorted, k)
	}
	sort.Strings(c.sorted)
	return c
}

// IsDecisionPoint reports whether kind is in the configured set.
// Unknown kinds are never decision points. A nil Classifier matches nothing.
func (c *Classifier) IsDecisionPoint(kind string) bool {
	if c == nil {
		return false
	}
	_, ok := c.kinds[kind]
	return ok
}

// Kinds returns the configured kinds in sorted order.
func (c *Classifier) Kinds() []string {
	if c == nil {
		return nil
	}
	out := make([]string, len(c.sorted))
	copy(out, c.sorted)
	return out
}

// Len returns the number of configured kinds.
func (c *Classifier) Len() int {
	if c == nil {
		return 0
	}
	return len(c.sorted)
}

// Fingerprint identifies the kind set independently of insertion order.
func (c *Classifier) Fingerprint() uint64 {
	d := xxhash.New()
	if c != nil {
		for _, k := range c.sorted {
			_, _ = d.WriteString(k)
			_, _ = d.Write([]byte{0})
		}
	}
	return d.Sum64()
}
