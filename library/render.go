package library

import (
	"fmt"

	"github.com/promptkit/promptkit/template"
)

// Render renders a template against the provided values. Declared
// defaults fill absent bindings first, then the body is interpolated
// under the caller's missing-value policy. With FailOnMissing set the
// returned error is a *template.MissingVariableError naming the first
// unbound required placeholder.
func Render(tmpl *Template, values map[string]any, opts *template.Options) (string, error) {
	if tmpl == nil {
		return "", fmt.Errorf("template is required")
	}

	env := template.BindValues(values)
	for _, variable := range tmpl.Variables {
		if _, ok := env.Lookup(variable.Name); ok {
			continue
		}
		if !variable.Default.IsUndefined() {
			env[variable.Name] = variable.Default
		}
	}

	return template.Interpolate(tmpl.Body, env, opts)
}
