package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Catalog holds the keyword sets and reply templates. It is content, not
// control flow, and can be replaced with a file of the same shape.
type Catalog struct {
	Greetings      []string `yaml:"greetings"`
	TravelKeywords []string `yaml:"travel_keywords"`
	Replies        Replies  `yaml:"replies"`
	Fallback       Fallback `yaml:"fallback"`
}

// Replies are the fixed canned responses.
type Replies struct {
	Greeting        string `yaml:"greeting"`
	OffTopic        string `yaml:"off_topic"`
	SessionWelcome  string `yaml:"session_welcome"`
	SessionFallback string `yaml:"session_fallback"`
}

// Fallback is the ordered template table used when generation fails.
type Fallback struct {
	Rules   []Rule `yaml:"rules"`
	Default string `yaml:"default"`
}

// Rule pairs a condition with a template. Branches are checked in order
// before the rule's own response.
type Rule struct {
	Name     string    `yaml:"name"`
	When     Condition `yaml:"when"`
	Branches []Rule    `yaml:"branches"`
	Response string    `yaml:"response"`
}

// Condition matches a message containing any of Any, or all of All.
type Condition struct {
	Any []string `yaml:"any"`
	All []string `yaml:"all"`
}

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Load(bytes.NewReader(defaultCatalog))
}

// LoadFile reads a catalog from path. An empty path yields Default.
func LoadFile(path string) (*Catalog, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: open %q: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return Load(f)
}

// Load decodes and validates a catalog. Keywords are lower-cased so that
// matching can compare against a lower-cased message.
func Load(r io.Reader) (*Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}
	c.normalize()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate reports the first missing piece of content.
func (c *Catalog) Validate() error {
	if len(c.Greetings) == 0 {
		return errors.New("catalog: greetings must not be empty")
	}
	if len(c.TravelKeywords) == 0 {
		return errors.New("catalog: travel_keywords must not be empty")
	}
	switch {
	case c.Replies.Greeting == "":
		return errors.New("catalog: replies.greeting must not be empty")
	case c.Replies.OffTopic == "":
		return errors.New("catalog: replies.off_topic must not be empty")
	case c.Replies.SessionFallback == "":
		return errors.New("catalog: replies.session_fallback must not be empty")
	}
	if c.Fallback.Default == "" {
		return errors.New("catalog: fallback.default must not be empty")
	}
	for i, r := range c.Fallback.Rules {
		if err := validateRule(r); err != nil {
			return fmt.Errorf("catalog: fallback rule %d (%s): %w", i, r.Name, err)
		}
	}
	return nil
}

func validateRule(r Rule) error {
	if len(r.When.Any) == 0 && len(r.When.All) == 0 {
		return errors.New("condition must list any or all keywords")
	}
	if r.Response == "" {
		return errors.New("response must not be empty")
	}
	for _, b := range r.Branches {
		if err := validateRule(b); err != nil {
			return fmt.Errorf("branch %s: %w", b.Name, err)
		}
	}
	return nil
}

func (c *Catalog) normalize() {
	c.Greetings = lowerAll(c.Greetings)
	c.TravelKeywords = lowerAll(c.TravelKeywords)
	for i := range c.Fallback.Rules {
		normalizeRule(&c.Fallback.Rules[i])
	}
}

func normalizeRule(r *Rule) {
	r.When.Any = lowerAll(r.When.Any)
	r.When.All = lowerAll(r.When.All)
	for i := range r.Branches {
		normalizeRule(&r.Branches[i])
	}
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}
