// Package library provides prompt template storage: YAML and Markdown
// records loaded from disk and an embedded builtin pack, with lookup,
// fuzzy search, rendering, and change watching built on the template
// engine.
package library

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/promptkit/promptkit/template"
)

// SourceBuiltin marks templates loaded from the embedded pack rather
// than a file on disk.
const SourceBuiltin = "builtin"

var (
	// ErrTemplateNameRequired is returned when a template has no name.
	ErrTemplateNameRequired = errors.New("template name is required")
	// ErrTemplateBodyRequired is returned when a template has no body.
	ErrTemplateBodyRequired = errors.New("template body is required")
	// ErrTemplateNotFound is returned when a template is not found.
	ErrTemplateNotFound = errors.New("template not found")
)

// ValidationError describes a validation error in a template record.
type ValidationError struct {
	Field   string
	Index   int
	Message string
}

func (e *ValidationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("template %s[%d]: %s", e.Field, e.Index, e.Message)
	}
	return fmt.Sprintf("template %s: %s", e.Field, e.Message)
}

// Template is a stored prompt template. Body carries the placeholder
// syntax understood by the template engine; Variables and PlainText
// are derived from it on load and kept in sync by Refresh.
type Template struct {
	ID          string              `yaml:"id,omitempty"`
	Name        string              `yaml:"name"`
	Description string              `yaml:"description,omitempty"`
	Tags        []string            `yaml:"tags,omitempty"`
	Body        string              `yaml:"body"`
	Variables   []template.Variable `yaml:"variables,omitempty"`
	PlainText   string              `yaml:"plaintext,omitempty"`
	CreatedAt   time.Time           `yaml:"created_at,omitempty"`
	UpdatedAt   time.Time           `yaml:"updated_at,omitempty"`
	Source      string              // file path or "builtin"
}

// loopScopeNames are bound by EACH blocks at resolve time and are
// never user inputs.
var loopScopeNames = map[string]bool{
	"ITEM":  true,
	"INDEX": true,
	"FIRST": true,
	"LAST":  true,
}

func loopScoped(name string) bool {
	head, _, _ := strings.Cut(name, ".")
	return loopScopeNames[head]
}

// Refresh recomputes the derived fields from the body: the variable
// declarations (placeholders found in the body merged with authored
// overrides) and the plain text search projection. Loop scope names
// are dropped from the declarations, as are authored entries for names
// that no longer appear in the body.
func (t *Template) Refresh() {
	res := template.Parse(t.Body)
	parsed := make([]template.Variable, 0, len(res.Variables))
	for _, v := range res.Variables {
		if loopScoped(v.Name) {
			continue
		}
		parsed = append(parsed, v)
	}
	t.Variables = mergeVariables(parsed, t.Variables)
	t.PlainText = res.SearchText
}

// mergeVariables overlays authored declarations onto parsed ones.
// Parsed first-occurrence order wins and an authored entry overrides
// only the fields it sets. An authored required flag cannot clear a
// requirement; the ? marker in the body does that.
func mergeVariables(parsed, authored []template.Variable) []template.Variable {
	byName := make(map[string]template.Variable, len(authored))
	for _, v := range authored {
		byName[strings.ToUpper(v.Name)] = v
	}

	merged := make([]template.Variable, 0, len(parsed))
	for _, p := range parsed {
		a, ok := byName[p.Name]
		if !ok {
			merged = append(merged, p)
			continue
		}
		if a.Type != "" {
			p.Type = a.Type
		}
		if a.Placeholder != "" {
			p.Placeholder = a.Placeholder
		}
		if a.Required {
			p.Required = true
		}
		if !a.Default.IsUndefined() {
			p.Default = a.Default
			p.Required = false
		}
		merged = append(merged, p)
	}
	return merged
}

// Validate checks that the template record is well formed. Placeholder
// syntax issues inside the body are reported separately by
// template.Validate.
func (t *Template) Validate() error {
	if t.Name == "" {
		return ErrTemplateNameRequired
	}
	if strings.TrimSpace(t.Body) == "" {
		return ErrTemplateBodyRequired
	}
	for i, v := range t.Variables {
		if strings.TrimSpace(v.Name) == "" {
			return &ValidationError{
				Field:   "variables",
				Index:   i,
				Message: "name is required",
			}
		}
		if v.Type != "" && !validVarType(v.Type) {
			return &ValidationError{
				Field:   "variables",
				Index:   i,
				Message: fmt.Sprintf("unknown type %q", v.Type),
			}
		}
	}
	return nil
}

// Lint reports placeholder syntax findings in the template body.
// These are authoring warnings, not errors: the engine renders the
// body either way.
func Lint(t *Template) []template.Issue {
	return template.Validate(t.Body)
}

func validVarType(t template.VarType) bool {
	switch t {
	case template.TypeText, template.TypeNumber, template.TypeBoolean, template.TypeDate, template.TypeSelect:
		return true
	}
	return false
}

func (t *Template) normalize() {
	t.Name = strings.TrimSpace(t.Name)
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
}

// FindByName returns the first template whose name matches, ignoring
// case.
func FindByName(templates []*Template, name string) (*Template, error) {
	for _, tmpl := range templates {
		if strings.EqualFold(tmpl.Name, name) {
			return tmpl, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
}
