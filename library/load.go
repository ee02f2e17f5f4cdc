package library

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadTemplate reads a single template from disk. YAML documents carry
// the full record; Markdown files carry the record as frontmatter with
// the prompt body below it. A record with no name takes the file's
// base name.
func LoadTemplate(path string) (*Template, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("template path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template %s: %w", path, err)
	}

	fallback := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	var tmpl *Template
	if markdownFile(path) {
		tmpl, err = parseMarkdownTemplate(data, fallback)
	} else {
		tmpl, err = parseTemplate(data, fallback)
	}
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", path, err)
	}

	tmpl.Source = path
	if tmpl.UpdatedAt.IsZero() {
		if info, err := os.Stat(path); err == nil {
			tmpl.UpdatedAt = info.ModTime()
		}
	}
	return tmpl, nil
}

// LoadTemplatesFromDir loads all templates from a directory.
func LoadTemplatesFromDir(dir string) ([]*Template, error) {
	if strings.TrimSpace(dir) == "" {
		return []*Template{}, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []*Template{}, nil
		}
		return nil, fmt.Errorf("read templates dir %s: %w", dir, err)
	}

	templates := make([]*Template, 0)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !templateFile(name) {
			continue
		}
		path := filepath.Join(dir, name)
		tmpl, err := LoadTemplate(path)
		if err != nil {
			return nil, err
		}
		templates = append(templates, tmpl)
	}

	sort.Slice(templates, func(i, j int) bool {
		return templates[i].Name < templates[j].Name
	})

	return templates, nil
}

func parseTemplate(data []byte, fallbackName string) (*Template, error) {
	var tmpl Template
	if err := yaml.Unmarshal(data, &tmpl); err != nil {
		return nil, err
	}
	return finishTemplate(&tmpl, fallbackName)
}

func parseMarkdownTemplate(data []byte, fallbackName string) (*Template, error) {
	meta, body, err := parseFrontmatter(string(data))
	if err != nil {
		return nil, err
	}

	var tmpl Template
	if err := yaml.Unmarshal([]byte(meta), &tmpl); err != nil {
		return nil, err
	}
	tmpl.Body = body
	return finishTemplate(&tmpl, fallbackName)
}

// finishTemplate normalizes a freshly decoded record, recomputes the
// fields derived from the body, and validates the result. Variables
// and plain text are never trusted from disk.
func finishTemplate(tmpl *Template, fallbackName string) (*Template, error) {
	tmpl.Name = strings.TrimSpace(tmpl.Name)
	if tmpl.Name == "" {
		tmpl.Name = fallbackName
	}
	tmpl.normalize()
	tmpl.Refresh()
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}
	return tmpl, nil
}

func markdownFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

func templateFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".md", ".markdown":
		return true
	}
	return false
}
