package library

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/promptkit/promptkit/template"
)

func TestLoadTemplate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "greeting.yaml")

	yaml := `name: greeting
description: Greets someone
tags: [writing]
body: |
  Hello {{NAME}}, you are {{AGE_COUNT}} years old.
variables:
  - name: NAME
    placeholder: Enter the recipient name
`

	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	tmpl, err := LoadTemplate(path)
	require.NoError(t, err)

	require.Equal(t, "greeting", tmpl.Name)
	require.Equal(t, path, tmpl.Source)
	require.NotEmpty(t, tmpl.ID)
	require.False(t, tmpl.UpdatedAt.IsZero(), "expected updated at from file mtime")

	require.Len(t, tmpl.Variables, 2)
	require.Equal(t, "NAME", tmpl.Variables[0].Name)
	require.Equal(t, "Enter the recipient name", tmpl.Variables[0].Placeholder)
	require.Equal(t, "AGE_COUNT", tmpl.Variables[1].Name)
	require.Equal(t, template.TypeNumber, tmpl.Variables[1].Type)

	require.Equal(t, "Hello , you are years old.", tmpl.PlainText)
}

func TestLoadTemplateMarkdown(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ask.md")

	doc := `---
name: ask
description: Ask a question
tags: [q]
---
Please answer: {{QUESTION}}
`

	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	tmpl, err := LoadTemplate(path)
	require.NoError(t, err)

	require.Equal(t, "ask", tmpl.Name)
	require.Equal(t, "Please answer: {{QUESTION}}\n", tmpl.Body)
	require.Len(t, tmpl.Variables, 1)
	require.Equal(t, "QUESTION", tmpl.Variables[0].Name)
}

func TestLoadTemplateMarkdownWithoutFrontmatter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "daily-plan.md")

	require.NoError(t, os.WriteFile(path, []byte("Plan my day around {{GOAL}}.\n"), 0644))

	tmpl, err := LoadTemplate(path)
	require.NoError(t, err)
	require.Equal(t, "daily-plan", tmpl.Name, "expected file name fallback")
}

func TestLoadTemplateUnterminatedFrontmatter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.md")

	require.NoError(t, os.WriteFile(path, []byte("---\nname: broken\n"), 0644))

	_, err := LoadTemplate(path)
	require.ErrorContains(t, err, "unterminated frontmatter")
}

func TestLoadTemplatesFromDir(t *testing.T) {
	dir := t.TempDir()

	files := map[string]string{
		"b.yaml":    "name: bravo\nbody: Hi {{WHO}}\n",
		"a.yml":     "name: alpha\nbody: Hello {{WHO}}\n",
		"notes.txt": "not a template",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))

	templates, err := LoadTemplatesFromDir(dir)
	require.NoError(t, err)

	require.Len(t, templates, 2)
	require.Equal(t, "alpha", templates[0].Name)
	require.Equal(t, "bravo", templates[1].Name)
}

func TestLoadTemplatesFromMissingDir(t *testing.T) {
	templates, err := LoadTemplatesFromDir(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	require.Empty(t, templates)
}
