package template

import (
	"fmt"
	"regexp"
	"strings"
)

// Issue is one non-fatal syntax finding. Offset is the byte position
// of the offending span, or 0 for whole-template findings.
type Issue struct {
	Offset  int
	Message string
}

var namePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z0-9_]+)*$`)

// Validate reports syntax problems in a template body as authoring
// warnings. Parse and Interpolate accept the same input without
// failing; Validate exists so editors can surface the problems
// before the template misbehaves.
func Validate(body string) []Issue {
	var issues []Issue

	opens := strings.Count(body, "{{")
	closes := strings.Count(body, "}}")
	if opens != closes {
		issues = append(issues, Issue{
			Message: fmt.Sprintf("unbalanced braces: %d opening {{ vs %d closing }}", opens, closes),
		})
	}

	for _, sp := range scanSpans(body) {
		inner := strings.TrimSpace(sp.body)
		if inner == "" {
			issues = append(issues, Issue{Offset: sp.start, Message: "empty placeholder"})
			continue
		}
		if closeTagPattern.MatchString(inner) {
			continue
		}
		if m := openTagPattern.FindStringSubmatch(inner); m != nil {
			if strings.TrimSpace(m[2]) == "" {
				issues = append(issues, Issue{
					Offset:  sp.start,
					Message: fmt.Sprintf("%s block is missing its argument", m[1]),
				})
			}
			continue
		}

		p := splitPlaceholder(inner)
		if p.excess {
			issues = append(issues, Issue{
				Offset:  sp.start,
				Message: fmt.Sprintf("placeholder %q has more than three colon-separated parts", inner),
			})
		}
		if p.name == "" || !namePattern.MatchString(p.name) {
			issues = append(issues, Issue{
				Offset:  sp.start,
				Message: fmt.Sprintf("invalid variable name in placeholder %q", inner),
			})
		}
	}

	issues = append(issues, blockPairIssues(body)...)
	return issues
}

// blockPairIssues counts opening and closing tags per block kind and
// flags any mismatch. Unmatched tags never break interpolation, they
// just stay in the output, which is usually not what the author
// wanted.
func blockPairIssues(body string) []Issue {
	var issues []Issue
	for _, kind := range blockOrder {
		opens := 0
		firstAt := -1
		from := 0
		for {
			open, ok := findOpen(body, kind, from)
			if !ok {
				break
			}
			if firstAt < 0 {
				firstAt = open.start
			}
			opens++
			from = open.end
		}
		closes := strings.Count(body, "{{/"+string(kind)+"}}")
		if opens == closes {
			continue
		}
		offset := firstAt
		if offset < 0 {
			offset = 0
		}
		issues = append(issues, Issue{
			Offset:  offset,
			Message: fmt.Sprintf("unbalanced %s block: %d opening vs %d closing tags", kind, opens, closes),
		})
	}
	return issues
}
