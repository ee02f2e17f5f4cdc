package library

import (
	"errors"
	"strings"
)

const frontmatterDelimiter = "---"

// parseFrontmatter splits a Markdown document into its YAML
// frontmatter block and the body below it, normalizing CRLF line
// endings first. A document without an opening delimiter is all body.
// An opening delimiter without a closing one is an error.
func parseFrontmatter(content string) (string, string, error) {
	normalized := strings.ReplaceAll(content, "\r\n", "\n")

	if !strings.HasPrefix(normalized, frontmatterDelimiter+"\n") {
		return "", normalized, nil
	}

	rest := normalized[len(frontmatterDelimiter)+1:]

	var meta, after string
	if strings.HasPrefix(rest, frontmatterDelimiter+"\n") || rest == frontmatterDelimiter {
		after = rest[len(frontmatterDelimiter):]
	} else {
		before, remainder, ok := strings.Cut(rest, "\n"+frontmatterDelimiter)
		if !ok {
			return "", "", errors.New("unterminated frontmatter: missing closing ---")
		}
		meta = before
		after = remainder
	}

	return meta, strings.TrimPrefix(after, "\n"), nil
}
