// Package template implements the placeholder expression engine for
// prompt templates: declaration parsing with type inference, nested
// control block resolution, a small condition language, and
// type-aware value formatting.
//
// The wire syntax is double-brace placeholders ({{NAME}}, {{NAME?}},
// {{NAME:type}}, {{NAME:type:default}}) plus paired control tags
// ({{#IF cond}}...{{/IF}}, {{#UNLESS}}, {{#EACH}}, {{#WITH}}). All
// operations are pure functions over the template text and a binding
// environment, safe for concurrent use.
package template

import (
	"github.com/promptkit/promptkit/value"
)

// VarType classifies a declared variable. It drives input rendering,
// default value coercion, and the generated placeholder hint.
type VarType string

const (
	TypeText    VarType = "text"
	TypeNumber  VarType = "number"
	TypeBoolean VarType = "boolean"
	TypeDate    VarType = "date"
	TypeSelect  VarType = "select"
)

// Variable is one placeholder declaration discovered in a template
// body. Declarations are a pure projection of the text: unique by
// name, exposed in first-occurrence order, and recomputed whenever
// the body changes.
type Variable struct {
	Name        string      `yaml:"name"`
	Type        VarType     `yaml:"type"`
	Required    bool        `yaml:"required,omitempty"`
	Default     value.Value `yaml:"default,omitempty"`
	Placeholder string      `yaml:"placeholder,omitempty"`
}

// ParseResult holds the declarations found in a template body plus
// the search text projection (the body with placeholders blanked),
// used for full-text search over saved templates.
type ParseResult struct {
	Variables  []Variable
	SearchText string
}
