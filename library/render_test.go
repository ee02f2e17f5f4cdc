package library

import (
	"errors"
	"testing"

	"github.com/promptkit/promptkit/template"
)

func newTemplate(t *testing.T, name, body string) *Template {
	t.Helper()
	tmpl := &Template{Name: name, Body: body}
	tmpl.Refresh()
	return tmpl
}

func TestRenderAppliesDefaults(t *testing.T) {
	tmpl := newTemplate(t, "status", "Blockers: {{BLOCKERS:text:None}}")

	out, err := Render(tmpl, nil, nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if out != "Blockers: None" {
		t.Fatalf("expected declared default, got %q", out)
	}

	out, err = Render(tmpl, map[string]any{"blockers": "CI flake"}, nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if out != "Blockers: CI flake" {
		t.Fatalf("expected bound value to win, got %q", out)
	}
}

func TestRenderMissingPolicies(t *testing.T) {
	tmpl := newTemplate(t, "greet", "Hello {{NAME}}")

	out, err := Render(tmpl, nil, nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if out != "Hello [MISSING: NAME]" {
		t.Fatalf("expected missing marker, got %q", out)
	}

	_, err = Render(tmpl, nil, &template.Options{FailOnMissing: true})
	var miss *template.MissingVariableError
	if !errors.As(err, &miss) {
		t.Fatalf("expected missing variable error, got %v", err)
	}
	if miss.Name != "NAME" {
		t.Fatalf("expected NAME, got %q", miss.Name)
	}
}

func TestRenderScopedNamesAreNotInputs(t *testing.T) {
	tmpl := newTemplate(t, "receipt",
		"{{#WITH CUSTOMER}}Dear {{NAME}}, {{/WITH}}{{#EACH LINES}}{{ITEM}};{{/EACH}}")

	values := map[string]any{
		"customer": map[string]any{"NAME": "Ann"},
		"lines":    []any{"tea", "scone"},
	}
	out, err := Render(tmpl, values, &template.Options{FailOnMissing: true})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if out != "Dear Ann, tea;scone;" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestRenderConditionGuardedLeaves(t *testing.T) {
	tmpl := newTemplate(t, "commit", "fix{{#IF SCOPE}}({{SCOPE}}){{/IF}}: {{SUMMARY}}")

	out, err := Render(tmpl, map[string]any{"summary": "handle nil env"}, &template.Options{FailOnMissing: true})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if out != "fix: handle nil env" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestRenderNilTemplate(t *testing.T) {
	if _, err := Render(nil, nil, nil); err == nil {
		t.Fatalf("expected error for nil template")
	}
}
