package template

import (
	"strings"
	"testing"
)

func hasIssue(issues []Issue, substr string) bool {
	for _, issue := range issues {
		if strings.Contains(issue.Message, substr) {
			return true
		}
	}
	return false
}

func TestValidateBraceImbalance(t *testing.T) {
	issues := Validate("Hello {{NAME}")
	if !hasIssue(issues, "unbalanced braces") {
		t.Fatalf("expected brace imbalance issue, got %+v", issues)
	}

	// The same input still parses without failing.
	if vars := Parse("Hello {{NAME}").Variables; len(vars) != 0 {
		t.Fatalf("expected graceful parse, got %+v", vars)
	}
}

func TestValidatePlaceholderIssues(t *testing.T) {
	tests := []struct {
		name     string
		template string
		substr   string
	}{
		{name: "empty body", template: "{{}}", substr: "empty placeholder"},
		{name: "blank body", template: "{{   }}", substr: "empty placeholder"},
		{name: "excess parts", template: "{{A:text:x:y}}", substr: "more than three colon-separated parts"},
		{name: "leading digit", template: "{{9BAD}}", substr: "invalid variable name"},
		{name: "inner space", template: "{{FIRST NAME}}", substr: "invalid variable name"},
		{name: "missing block argument", template: "{{#IF}}x{{/IF}}", substr: "missing its argument"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := Validate(tt.template)
			if !hasIssue(issues, tt.substr) {
				t.Fatalf("expected issue containing %q, got %+v", tt.substr, issues)
			}
		})
	}
}

func TestValidateBlockPairing(t *testing.T) {
	issues := Validate("{{#IF X}}no close")
	if !hasIssue(issues, "unbalanced IF block") {
		t.Fatalf("expected IF pairing issue, got %+v", issues)
	}

	issues = Validate("{{#EACH XS}}{{ITEM}}{{/EACH}}{{/EACH}}")
	if !hasIssue(issues, "unbalanced EACH block") {
		t.Fatalf("expected EACH pairing issue, got %+v", issues)
	}
}

func TestValidateCleanTemplates(t *testing.T) {
	templates := []string{
		"plain text, no placeholders",
		"Hello {{NAME}}!",
		"{{USER.NAME}} and {{TOTAL_AMOUNT:currency}}",
		"{{X?}} {{Y:number:5}}",
		"{{#IF VIP}}gold{{/IF}}{{#EACH XS}}{{ITEM}}{{/EACH}}",
		"{{TAGS:join:|}}",
	}

	for _, tmpl := range templates {
		if issues := Validate(tmpl); len(issues) != 0 {
			t.Fatalf("expected no issues for %q, got %+v", tmpl, issues)
		}
	}
}

func TestValidateOffsets(t *testing.T) {
	issues := Validate("ab{{}}")
	if len(issues) != 1 || issues[0].Offset != 2 {
		t.Fatalf("expected offset 2, got %+v", issues)
	}
}
