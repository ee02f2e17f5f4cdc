package template

import (
	"strings"

	"github.com/promptkit/promptkit/value"
)

// Env is the binding environment for one interpolation call, keyed by
// uppercase variable name. It is read-only input: block scopes extend
// a copy rather than mutating the caller's map.
type Env map[string]value.Value

// BindValues converts loosely typed caller values into an Env,
// normalizing top-level keys to uppercase. Nested record keys are
// kept as written, since dotted paths address them lowercased.
func BindValues(vals map[string]any) Env {
	env := make(Env, len(vals))
	for k, v := range vals {
		env[strings.ToUpper(k)] = value.FromAny(v)
	}
	return env
}

// lookup resolves a possibly dotted name. An exact binding wins; a
// dotted name otherwise walks record fields by lowercased key from the
// first segment, short-circuiting to Undefined on any miss.
func (e Env) lookup(name string) value.Value {
	if v, ok := e[name]; ok {
		return v
	}
	head, rest, dotted := strings.Cut(name, ".")
	if !dotted {
		return value.Undefined
	}
	v, ok := e[head]
	if !ok {
		return value.Undefined
	}
	for _, seg := range strings.Split(rest, ".") {
		f, ok := v.Field(strings.ToLower(seg))
		if !ok {
			return value.Undefined
		}
		v = f
	}
	return v
}

// Lookup resolves name and reports presence. A plain name is present
// when its key exists, so an explicit null still counts. A dotted path
// is present when an exact binding exists or the path walk ends on a
// defined value.
func (e Env) Lookup(name string) (value.Value, bool) {
	if v, ok := e[name]; ok {
		return v, true
	}
	if !strings.Contains(name, ".") {
		return value.Undefined, false
	}
	v := e.lookup(name)
	return v, !v.IsUndefined()
}

// extend returns a copy of e with extra bindings layered on top.
func (e Env) extend(extra map[string]value.Value) Env {
	merged := make(Env, len(e)+len(extra))
	for k, v := range e {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	return merged
}
