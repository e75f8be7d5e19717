package guardrails

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrViolation is returned when input contains a banned term.
var ErrViolation = errors.New("input violates guardrails")

// Guardrails performs simple input validation.
type Guardrails struct {
	banned []string
}

type file struct {
	Banned []string `yaml:"banned"`
}

// New returns guardrails for the given terms. Matching is case-insensitive.
func New(banned ...string) *Guardrails {
	g := &Guardrails{}
	for _, w := range banned {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			g.banned = append(g.banned, w)
		}
	}
	return g
}

// Load reads banned terms from a YAML file. An empty path yields guardrails
// that accept everything.
func Load(path string) (*Guardrails, error) {
	if path == "" {
		return New(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read guardrails: %w", err)
	}
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse guardrails %s: %w", path, err)
	}
	return New(f.Banned...), nil
}

// CheckInput returns an error if input contains banned words.
func (g *Guardrails) CheckInput(input string) error {
	lower := strings.ToLower(input)
	for _, w := range g.banned {
		if strings.Contains(lower, w) {
			return ErrViolation
		}
	}
	return nil
}
