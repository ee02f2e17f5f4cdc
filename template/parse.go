package template

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/spf13/cast"

	"github.com/promptkit/promptkit/value"
)

var (
	openTagPattern  = regexp.MustCompile(`^#(IF|UNLESS|EACH|WITH)\b\s*(.*)$`)
	closeTagPattern = regexp.MustCompile(`^/(IF|UNLESS|EACH|WITH)\s*$`)

	booleanNamePattern = regexp.MustCompile(`^(IS|HAS|SHOULD|CAN|WILL|ENABLE|DISABLE|ALLOW)_`)
	dateNamePattern    = regexp.MustCompile(`_(DATE|TIME|WHEN|CREATED|UPDATED|EXPIRES)$`)
	numberNamePattern  = regexp.MustCompile(`_(COUNT|NUMBER|AMOUNT|QUANTITY|PRICE|COST|AGE|YEAR|SIZE|LENGTH|WIDTH|HEIGHT)$`)
	selectNamePattern  = regexp.MustCompile(`_(TYPE|STATUS|CATEGORY|OPTION|MODE|LEVEL|PRIORITY|STATE)$`)
)

// typeAliases maps explicit type hints to canonical types. Unknown
// hints fall back to text.
var typeAliases = map[string]VarType{
	"text":     TypeText,
	"string":   TypeText,
	"str":      TypeText,
	"number":   TypeNumber,
	"int":      TypeNumber,
	"integer":  TypeNumber,
	"float":    TypeNumber,
	"boolean":  TypeBoolean,
	"bool":     TypeBoolean,
	"date":     TypeDate,
	"datetime": TypeDate,
	"time":     TypeDate,
	"select":   TypeSelect,
	"choice":   TypeSelect,
	"option":   TypeSelect,
	"enum":     TypeSelect,
}

// span is one double-brace delimited region of the template text.
// start and end are byte offsets of the full {{...}} span.
type span struct {
	start, end int
	body       string
}

// scanSpans finds every placeholder span left to right. The scan is
// non-greedy: a span ends at the first }} after its opening braces,
// so placeholders never nest.
func scanSpans(t string) []span {
	var spans []span
	i := 0
	for {
		open := strings.Index(t[i:], "{{")
		if open < 0 {
			break
		}
		open += i
		end := strings.Index(t[open+2:], "}}")
		if end < 0 {
			break
		}
		end += open + 2
		spans = append(spans, span{start: open, end: end + 2, body: t[open+2 : end]})
		i = end + 2
	}
	return spans
}

// placeholderParts is the colon-split form of a placeholder body:
// name, optional type hint, optional default, plus the raw format
// directive used at interpolation time.
type placeholderParts struct {
	name       string // uppercased, optional marker stripped
	hint       string // second part, marker stripped
	defaultRaw string // third part, verbatim
	hasDefault bool
	optional   bool
	excess     bool // more than three colon-separated parts
	directive  string
}

// splitPlaceholder splits a trimmed placeholder body on colons. A
// trailing ? on the name part or the type-hint part marks the
// variable optional and is stripped. The directive is everything
// after the first colon with the marker removed.
func splitPlaceholder(body string) placeholderParts {
	parts := strings.Split(body, ":")
	var p placeholderParts

	name := strings.TrimSpace(parts[0])
	if strings.HasSuffix(name, "?") {
		p.optional = true
		name = strings.TrimSpace(strings.TrimSuffix(name, "?"))
	}
	p.name = strings.ToUpper(name)

	if len(parts) > 1 {
		hint := strings.TrimSpace(parts[1])
		if strings.HasSuffix(hint, "?") {
			p.optional = true
			hint = strings.TrimSpace(strings.TrimSuffix(hint, "?"))
		}
		p.hint = hint
		p.directive = strings.Join(append([]string{hint}, parts[2:]...), ":")
	}
	if len(parts) > 2 {
		p.defaultRaw = parts[2]
		p.hasDefault = true
	}
	p.excess = len(parts) > 3
	return p
}

// Parse scans a template body and returns its variable declarations
// in first-occurrence order plus the search text projection. Parse
// never fails: syntactically suspect placeholders are skipped or
// recorded as-is and reported separately by Validate.
func Parse(body string) ParseResult {
	spans := scanSpans(body)

	var order []string
	byName := make(map[string]Variable)

	for _, sp := range spans {
		inner := strings.TrimSpace(sp.body)
		if inner == "" {
			continue
		}
		if closeTagPattern.MatchString(inner) {
			continue
		}
		if m := openTagPattern.FindStringSubmatch(inner); m != nil {
			inner = strings.TrimSpace(m[2])
			if inner == "" {
				continue
			}
		}
		p := splitPlaceholder(inner)
		if p.name == "" {
			continue
		}
		// First occurrence fixes the position; the latest parse of
		// the same name replaces the stored declaration.
		if _, seen := byName[p.name]; !seen {
			order = append(order, p.name)
		}
		byName[p.name] = buildVariable(p)
	}

	vars := make([]Variable, 0, len(order))
	for _, name := range order {
		vars = append(vars, byName[name])
	}
	return ParseResult{Variables: vars, SearchText: searchText(body, spans)}
}

func buildVariable(p placeholderParts) Variable {
	t := inferType(p.name)
	if p.hint != "" {
		t = resolveTypeHint(p.hint)
	}
	v := Variable{Name: p.name, Type: t}
	if p.hasDefault {
		v.Default = parseDefault(p.defaultRaw, t)
	}
	v.Required = !p.optional && v.Default.IsUndefined()
	v.Placeholder = placeholderHint(p.name, t)
	return v
}

func resolveTypeHint(hint string) VarType {
	if t, ok := typeAliases[strings.ToLower(hint)]; ok {
		return t
	}
	return TypeText
}

// inferType guesses a type from the variable name. Rules are checked
// in a fixed order and the first match wins.
func inferType(name string) VarType {
	switch {
	case booleanNamePattern.MatchString(name):
		return TypeBoolean
	case dateNamePattern.MatchString(name):
		return TypeDate
	case numberNamePattern.MatchString(name):
		return TypeNumber
	case selectNamePattern.MatchString(name):
		return TypeSelect
	default:
		return TypeText
	}
}

// parseDefault coerces a default value string against the resolved
// type. Values that do not parse yield Undefined, which makes the
// declaration required again.
func parseDefault(raw string, t VarType) value.Value {
	switch t {
	case TypeBoolean:
		switch strings.ToLower(strings.TrimSpace(raw)) {
		case "true", "1", "yes", "on":
			return value.Bool(true)
		case "false", "0", "no", "off":
			return value.Bool(false)
		}
		return value.Undefined
	case TypeNumber:
		n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return value.Undefined
		}
		return value.Number(n)
	case TypeDate:
		parsed, err := cast.StringToDate(strings.TrimSpace(raw))
		if err != nil {
			return value.Undefined
		}
		return value.Date(parsed)
	default:
		return value.Text(raw)
	}
}

// placeholderHint builds the human-readable input hint shown next to
// a variable's form control.
func placeholderHint(name string, t VarType) string {
	h := humanize(name)
	switch t {
	case TypeBoolean:
		return h + " (Yes/No)"
	case TypeDate:
		return "Select " + h
	case TypeSelect:
		return "Choose " + h
	default:
		return "Enter " + h
	}
}

// humanize lowercases a variable name, turns underscores into spaces,
// and capitalizes the first letter.
func humanize(name string) string {
	s := strings.ReplaceAll(strings.ToLower(name), "_", " ")
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// searchText blanks every placeholder span to a single space and
// collapses whitespace runs, yielding the plain-text projection used
// for search indexing.
func searchText(body string, spans []span) string {
	var b strings.Builder
	last := 0
	for _, sp := range spans {
		b.WriteString(body[last:sp.start])
		b.WriteByte(' ')
		last = sp.end
	}
	b.WriteString(body[last:])
	return strings.Join(strings.Fields(b.String()), " ")
}
