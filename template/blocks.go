package template

import (
	"strings"

	"github.com/promptkit/promptkit/value"
)

type blockKind string

const (
	kindEach   blockKind = "EACH"
	kindWith   blockKind = "WITH"
	kindIf     blockKind = "IF"
	kindUnless blockKind = "UNLESS"
)

// blockOrder fixes the kind processing order. EACH runs first so loop
// scope names like ITEM and INDEX are bound before conditionals
// inside the loop body are evaluated.
var blockOrder = []blockKind{kindEach, kindWith, kindIf, kindUnless}

// ResolveBlocks resolves every control block in body against env and
// returns the expanded text. EACH and WITH bodies substitute the leaf
// placeholders their scope binds; every other leaf is left for
// Interpolate. Unmatched opening tags abandon their kind's pass,
// leaving the tag and the remainder unresolved rather than failing.
func ResolveBlocks(body string, env Env) string {
	return resolveBlocks(body, env, Options{KeepMissing: true})
}

func resolveBlocks(body string, env Env, o Options) string {
	out := body
	for _, kind := range blockOrder {
		out = resolveKind(out, kind, env, o)
	}
	return out
}

// openTag is one located opening tag: the span start, the trimmed
// argument, and the offset just past the tag's closing braces.
type openTag struct {
	start int
	end   int
	arg   string
}

// resolveKind repeatedly finds the leftmost block of one kind, splices
// in its resolution, and resumes scanning after the replacement. Each
// iteration removes one opening tag, so the loop always terminates.
func resolveKind(body string, kind blockKind, env Env, o Options) string {
	out := body
	from := 0
	for {
		open, ok := findOpen(out, kind, from)
		if !ok {
			break
		}
		bodyEnd, closeEnd, ok := findMatchingClose(out, kind, open.end)
		if !ok {
			break
		}
		resolved := dispatchBlock(kind, open.arg, out[open.end:bodyEnd], env, o)
		out = out[:open.start] + resolved + out[closeEnd:]
		from = open.start + len(resolved)
	}
	return out
}

// findOpen locates the next opening tag of kind at or after from. The
// keyword must be followed by whitespace or the tag's closing braces,
// so {{#IFX}} is not an IF tag.
func findOpen(s string, kind blockKind, from int) (openTag, bool) {
	marker := "{{#" + string(kind)
	for {
		i := strings.Index(s[from:], marker)
		if i < 0 {
			return openTag{}, false
		}
		i += from
		rest := s[i+len(marker):]
		if rest != "" && rest[0] != '}' && !isSpace(rest[0]) {
			from = i + len(marker)
			continue
		}
		end := strings.Index(rest, "}}")
		if end < 0 {
			return openTag{}, false
		}
		return openTag{
			start: i,
			end:   i + len(marker) + end + 2,
			arg:   strings.TrimSpace(rest[:end]),
		}, true
	}
}

// findMatchingClose scans forward from a tag body start, tracking the
// nesting depth of same-kind blocks, and returns the offsets of the
// matching close tag. Depth zero closes win; deeper closes pair with
// their own opens.
func findMatchingClose(s string, kind blockKind, from int) (bodyEnd, closeEnd int, ok bool) {
	closeMarker := "{{/" + string(kind) + "}}"
	depth := 0
	i := from
	for {
		c := strings.Index(s[i:], closeMarker)
		if c < 0 {
			return 0, 0, false
		}
		c += i
		if open, found := findOpen(s, kind, i); found && open.start < c {
			depth++
			i = open.end
			continue
		}
		if depth == 0 {
			return c, c + len(closeMarker), true
		}
		depth--
		i = c + len(closeMarker)
	}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func dispatchBlock(kind blockKind, arg, body string, env Env, o Options) string {
	switch kind {
	case kindIf:
		if EvalCondition(arg, env) {
			return resolveBlocks(body, env, o)
		}
		return ""
	case kindUnless:
		if EvalCondition(arg, env) {
			return ""
		}
		return resolveBlocks(body, env, o)
	case kindEach:
		return resolveEach(arg, body, env, o)
	case kindWith:
		return resolveWith(arg, body, env, o)
	}
	return ""
}

// resolveEach expands the body once per list element, binding ITEM,
// INDEX, FIRST, and LAST in the loop scope. Anything that is not a
// non-empty list produces no output.
func resolveEach(arg, body string, env Env, o Options) string {
	coll := env.lookup(strings.ToUpper(arg))
	if coll.Kind() != value.KindList || coll.Len() == 0 {
		return ""
	}
	items := coll.Items()
	var b strings.Builder
	for i, item := range items {
		scope := env.extend(map[string]value.Value{
			"ITEM":  item,
			"INDEX": value.Number(float64(i)),
			"FIRST": value.Bool(i == 0),
			"LAST":  value.Bool(i == len(items)-1),
		})
		b.WriteString(interpolateScoped(body, scope, o))
	}
	return b.String()
}

// resolveWith expands the body against an environment that layers the
// record's own fields, keys as written, over the outer scope. A
// non-record value produces no output.
func resolveWith(arg, body string, env Env, o Options) string {
	obj := env.lookup(strings.ToUpper(arg))
	if obj.Kind() != value.KindRecord {
		return ""
	}
	fields := make(map[string]value.Value)
	for _, k := range obj.Keys() {
		f, _ := obj.Field(k)
		fields[k] = f
	}
	return interpolateScoped(body, env.extend(fields), o)
}

// interpolateScoped fully interpolates a scoped block body, leaves
// included, because the scope bindings are gone by the final leaf
// pass. Missing names stay verbatim here so the caller's missing
// policy is applied once, in that final pass.
func interpolateScoped(body string, env Env, o Options) string {
	out, _ := Interpolate(body, env, &Options{
		KeepMissing:  true,
		Transformers: o.Transformers,
	})
	return out
}
