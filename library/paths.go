package library

import (
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
)

// ProjectTemplatesDir returns the project-local template directory,
// or empty when no project directory is known.
func ProjectTemplatesDir(projectDir string) string {
	if projectDir == "" {
		return ""
	}
	return filepath.Join(projectDir, ".promptkit", "templates")
}

// UserTemplatesDir returns the per-user template directory, or empty
// when no home directory is known.
func UserTemplatesDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".config", "promptkit", "templates")
}

// SearchPaths returns template search directories in precedence order:
// project, user config, system share.
func SearchPaths(projectDir string) []string {
	paths := make([]string, 0, 3)
	if dir := ProjectTemplatesDir(projectDir); dir != "" {
		paths = append(paths, dir)
	}
	if dir := UserTemplatesDir(); dir != "" {
		paths = append(paths, dir)
	}

	paths = append(paths, filepath.Join(string(filepath.Separator), "usr", "share", "promptkit", "templates"))
	return paths
}

// LoadFromSearchPaths loads templates from every path with first-hit
// precedence by name, ignoring case, and appends builtins that no path
// shadows. Directories are read concurrently; precedence is applied
// after the fact, so the result is deterministic.
func LoadFromSearchPaths(paths []string) ([]*Template, error) {
	loaded := make([][]*Template, len(paths))

	var g errgroup.Group
	for i, path := range paths {
		g.Go(func() error {
			templates, err := LoadTemplatesFromDir(path)
			if err != nil {
				return err
			}
			loaded[i] = templates
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	builtins, err := LoadBuiltinTemplates()
	if err != nil {
		return nil, err
	}
	loaded = append(loaded, builtins)

	seen := make(map[string]*Template)
	order := make([]string, 0)
	for _, templates := range loaded {
		for _, tmpl := range templates {
			key := strings.ToLower(tmpl.Name)
			if _, exists := seen[key]; exists {
				continue
			}
			seen[key] = tmpl
			order = append(order, key)
		}
	}

	resolved := make([]*Template, 0, len(order))
	for _, key := range order {
		resolved = append(resolved, seen[key])
	}
	return resolved, nil
}
