package fallback

import (
	"errors"
	"strings"

	"travel-agent/internal/catalog"
)

// Matcher selects a canned template for a travel message when generation
// fails. Rules are evaluated in order and the first match wins.
type Matcher struct {
	rules []catalog.Rule
	def   string
}

// NewMatcher builds a Matcher from the catalog's fallback table.
func NewMatcher(c *catalog.Catalog) (*Matcher, error) {
	if c == nil {
		return nil, errors.New("fallback: catalog must not be nil")
	}
	if c.Fallback.Default == "" {
		return nil, errors.New("fallback: default template must not be empty")
	}
	return &Matcher{rules: c.Fallback.Rules, def: c.Fallback.Default}, nil
}

// Respond always returns a template; the default when no rule matches.
func (m *Matcher) Respond(message string) string {
	lower := strings.ToLower(message)
	for _, r := range m.rules {
		if resp, ok := match(r, lower); ok {
			return resp
		}
	}
	return m.def
}

func match(r catalog.Rule, lower string) (string, bool) {
	if !matches(r.When, lower) {
		return "", false
	}
	for _, b := range r.Branches {
		if resp, ok := match(b, lower); ok {
			return resp, true
		}
	}
	return r.Response, true
}

func matches(c catalog.Condition, lower string) bool {
	for _, k := range c.Any {
		if strings.Contains(lower, k) {
			return true
		}
	}
	if len(c.All) == 0 {
		return false
	}
	for _, k := range c.All {
		if !strings.Contains(lower, k) {
			return false
		}
	}
	return true
}

// Static answers every message with the same text.
type Static string

func (s Static) Respond(string) string { return string(s) }
