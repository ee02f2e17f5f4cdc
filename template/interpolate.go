package template

import (
	"strings"

	"github.com/promptkit/promptkit/value"
)

// Transformer rewrites a bound value just before formatting.
type Transformer func(value.Value) value.Value

// Options configures one interpolation call. The zero value is the
// default policy: missing required placeholders become a visible
// [MISSING: NAME] marker and nothing fails.
type Options struct {
	// FailOnMissing aborts with a MissingVariableError at the first
	// required placeholder that has no bound value. It takes
	// precedence over KeepMissing.
	FailOnMissing bool

	// KeepMissing leaves a missing placeholder verbatim instead of
	// substituting the marker.
	KeepMissing bool

	// Transformers maps the full uppercase placeholder name to a
	// rewrite applied before formatting.
	Transformers map[string]Transformer
}

// Interpolate resolves every control block in body against env, then
// substitutes the remaining leaf placeholders with formatted values.
// Optional placeholders with no binding become empty text; required
// ones follow the Options policy. Stray control tags left behind by
// an unmatched block are kept verbatim.
func Interpolate(body string, env Env, opts *Options) (string, error) {
	var o Options
	if opts != nil {
		o = *opts
	}

	resolved := resolveBlocks(body, env, o)

	var b strings.Builder
	last := 0
	for _, sp := range scanSpans(resolved) {
		b.WriteString(resolved[last:sp.start])
		last = sp.end
		raw := resolved[sp.start:sp.end]

		inner := strings.TrimSpace(sp.body)
		if inner == "" || openTagPattern.MatchString(inner) || closeTagPattern.MatchString(inner) {
			b.WriteString(raw)
			continue
		}

		p := splitPlaceholder(inner)
		if p.name == "" {
			b.WriteString(raw)
			continue
		}

		val, present := env.Lookup(p.name)
		if !present {
			if p.optional {
				continue
			}
			if o.FailOnMissing {
				return "", &MissingVariableError{Name: p.name}
			}
			if o.KeepMissing {
				b.WriteString(raw)
				continue
			}
			b.WriteString("[MISSING: " + p.name + "]")
			continue
		}

		if t, ok := o.Transformers[p.name]; ok && t != nil {
			val = t(val)
		}
		b.WriteString(Format(val, p.directive))
	}
	b.WriteString(resolved[last:])
	return b.String(), nil
}
