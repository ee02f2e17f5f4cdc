package library

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// Match is one search hit.
type Match struct {
	Template *Template
	Score    int
}

// source adapts a template slice for fuzzy matching over the name plus
// the plain text projection of the body.
type source []*Template

func (s source) String(i int) string { return s[i].Name + " " + s[i].PlainText }
func (s source) Len() int            { return len(s) }

// Search fuzzy-matches query against the templates and returns hits
// best first. An empty query matches everything in library order.
func Search(templates []*Template, query string) []Match {
	if strings.TrimSpace(query) == "" {
		matches := make([]Match, len(templates))
		for i, tmpl := range templates {
			matches[i] = Match{Template: tmpl}
		}
		return matches
	}

	results := fuzzy.FindFrom(query, source(templates))
	matches := make([]Match, len(results))
	for i, r := range results {
		matches[i] = Match{Template: templates[r.Index], Score: r.Score}
	}
	return matches
}
