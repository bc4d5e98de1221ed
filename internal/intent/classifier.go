package intent

import (
	"errors"
	"strings"

	"travel-agent/internal/catalog"
	"travel-agent/internal/domain"
)

// Classifier decides whether a message is a greeting, travel-related or
// off-topic. Matching is literal: greetings are exact after trimming, travel
// keywords are plain substrings with no word boundaries, so "east" matches
// inside "easter".
type Classifier struct {
	greetings map[string]struct{}
	keywords  []string
}

// New builds a Classifier from the catalog keyword sets.
func New(c *catalog.Catalog) (*Classifier, error) {
	if c == nil {
		return nil, errors.New("intent: catalog must not be nil")
	}
	if len(c.Greetings) == 0 || len(c.TravelKeywords) == 0 {
		return nil, errors.New("intent: keyword sets must not be empty")
	}
	greetings := make(map[string]struct{}, len(c.Greetings))
	for _, g := range c.Greetings {
		greetings[strings.ToLower(g)] = struct{}{}
	}
	keywords := make([]string, len(c.TravelKeywords))
	for i, k := range c.TravelKeywords {
		keywords[i] = strings.ToLower(k)
	}
	return &Classifier{greetings: greetings, keywords: keywords}, nil
}

func (c *Classifier) IsGreeting(message string) bool {
	_, ok := c.greetings[strings.ToLower(strings.TrimSpace(message))]
	return ok
}

func (c *Classifier) IsTravelRelated(message string) bool {
	return c.MatchedKeyword(message) != ""
}

// MatchedKeyword returns the first travel keyword found in message, or "".
func (c *Classifier) MatchedKeyword(message string) string {
	lower := strings.ToLower(message)
	for _, k := range c.keywords {
		if strings.Contains(lower, k) {
			return k
		}
	}
	return ""
}

// Classify checks for a greeting first, then travel relevance.
func (c *Classifier) Classify(message string) domain.Intent {
	switch {
	case c.IsGreeting(message):
		return domain.IntentGreeting
	case c.IsTravelRelated(message):
		return domain.IntentTravel
	default:
		return domain.IntentOffTopic
	}
}
