package template

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/promptkit/promptkit/value"
)

var (
	identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*\??$`)
	comparisonPattern = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_.]*\??)\s*(==|!=|>=|<=|>|<)\s*("[^"]*"|'[^']*'|\S+)$`)
)

// EvalCondition evaluates a block condition against env. The grammar
// is tried in a fixed order: NOT prefix, bare identifier, full
// comparison, OR split, AND split. Because OR is tried before AND,
// expressions mixing both without grouping split on OR first; that
// ordering is part of the condition language's contract. Anything
// unrecognized evaluates to false, never to an error.
func EvalCondition(expr string, env Env) bool {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return false
	}

	if rest, ok := strings.CutPrefix(expr, "NOT "); ok {
		return !EvalCondition(rest, env)
	}

	if identifierPattern.MatchString(expr) {
		name := strings.ToUpper(strings.TrimSuffix(expr, "?"))
		return env.lookup(name).Truthy()
	}

	// A comparison only matches when the whole expression is one
	// identifier, one operator, and one literal. A literal is either
	// quoted or a single token, so "AGE >= 18 OR ADMIN" falls through
	// to the OR split below.
	if m := comparisonPattern.FindStringSubmatch(expr); m != nil {
		return evalComparison(m[1], m[2], m[3], env)
	}

	if parts := strings.Split(expr, " OR "); len(parts) > 1 {
		for _, part := range parts {
			if EvalCondition(part, env) {
				return true
			}
		}
		return false
	}

	if parts := strings.Split(expr, " AND "); len(parts) > 1 {
		for _, part := range parts {
			if !EvalCondition(part, env) {
				return false
			}
		}
		return true
	}

	return false
}

func evalComparison(lhs, op, lit string, env Env) bool {
	name := strings.ToUpper(strings.TrimSuffix(lhs, "?"))
	left := env.lookup(name)
	right := parseLiteral(lit)

	switch op {
	case "==":
		return value.LooseEqual(left, right)
	case "!=":
		return !value.LooseEqual(left, right)
	}

	ln, lok := left.AsNumber()
	rn, rok := right.AsNumber()
	if !lok || !rok {
		return false
	}
	switch op {
	case ">":
		return ln > rn
	case "<":
		return ln < rn
	case ">=":
		return ln >= rn
	case "<=":
		return ln <= rn
	}
	return false
}

// parseLiteral reads the right-hand side of a comparison: a quoted
// string, a number, a boolean or null keyword, or a bare string.
func parseLiteral(lit string) value.Value {
	if len(lit) >= 2 {
		first, last := lit[0], lit[len(lit)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			return value.Text(lit[1 : len(lit)-1])
		}
	}
	if n, err := strconv.ParseFloat(lit, 64); err == nil {
		return value.Number(n)
	}
	switch lit {
	case "true":
		return value.Bool(true)
	case "false":
		return value.Bool(false)
	case "null":
		return value.Null()
	case "undefined":
		return value.Undefined
	}
	return value.Text(lit)
}
