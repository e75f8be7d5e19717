package guardrails

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestCheckInput(t *testing.T) {
	g := New("Forbidden", "  ", "secret")

	if err := g.CheckInput("hello there"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := g.CheckInput("this is FORBIDDEN text"); !errors.Is(err, ErrViolation) {
		t.Fatalf("expected violation, got %v", err)
	}
}

func TestEmptyGuardrailsAcceptAll(t *testing.T) {
	g, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := g.CheckInput(""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guardrails.yaml")
	if err := os.WriteFile(path, []byte("banned:\n  - password\n  - Credit Card\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	g, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := g.CheckInput("my credit card number"); !errors.Is(err, ErrViolation) {
		t.Fatalf("expected violation, got %v", err)
	}
	if err := g.CheckInput("what's the weather"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("banned: [unclosed"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
}
