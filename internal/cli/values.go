package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"github.com/promptkit/promptkit/template"
)

// buildValues merges a YAML values file with --var overrides. Flag
// values win on collision and both sides are keyed by upper-cased
// variable name.
func buildValues(valuesFile string, varFlags []string, variables []template.Variable) (map[string]any, error) {
	values := make(map[string]any)

	if valuesFile != "" {
		fromFile, err := loadValuesFile(valuesFile)
		if err != nil {
			return nil, err
		}
		for name, v := range fromFile {
			values[strings.ToUpper(name)] = v
		}
	}

	fromFlags, err := parseVarFlags(varFlags, variables)
	if err != nil {
		return nil, err
	}
	for name, v := range fromFlags {
		values[name] = v
	}

	return values, nil
}

// parseVarFlags turns name=value pairs into bindings, coercing each
// value by the variable's declared type.
func parseVarFlags(pairs []string, variables []template.Variable) (map[string]any, error) {
	types := make(map[string]template.VarType, len(variables))
	for _, v := range variables {
		types[v.Name] = v.Type
	}

	values := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --var %q, expected name=value", pair)
		}
		name := strings.ToUpper(strings.TrimSpace(key))
		if name == "" {
			return nil, fmt.Errorf("invalid --var %q, empty name", pair)
		}
		coerced, err := coerceValue(raw, types[name])
		if err != nil {
			return nil, fmt.Errorf("--var %s: %w", name, err)
		}
		values[name] = coerced
	}
	return values, nil
}

// coerceValue converts raw flag text into the Go value matching the
// declared variable type. Text, select, and undeclared variables pass
// through as strings.
func coerceValue(raw string, varType template.VarType) (any, error) {
	switch varType {
	case template.TypeNumber:
		n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("expected a number, got %q", raw)
		}
		return n, nil
	case template.TypeBoolean:
		switch strings.ToLower(strings.TrimSpace(raw)) {
		case "true", "1", "yes", "on":
			return true, nil
		case "false", "0", "no", "off":
			return false, nil
		}
		return nil, fmt.Errorf("expected a boolean, got %q", raw)
	case template.TypeDate:
		parsed, err := cast.StringToDate(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("expected a date, got %q", raw)
		}
		return parsed, nil
	default:
		return raw, nil
	}
}

// loadValuesFile reads a YAML mapping of variable names to values.
func loadValuesFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read values file: %w", err)
	}

	values := make(map[string]any)
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to parse values file %s: %w", path, err)
	}
	return values, nil
}

// missingOptions maps a missing-variable policy name to interpolation
// options. An empty mode falls back to the configured default.
func missingOptions(mode string) (*template.Options, error) {
	switch mode {
	case "highlight":
		return &template.Options{}, nil
	case "keep":
		return &template.Options{KeepMissing: true}, nil
	case "fail":
		return &template.Options{FailOnMissing: true}, nil
	}
	return nil, fmt.Errorf("invalid missing mode %q, expected highlight, keep, or fail", mode)
}
