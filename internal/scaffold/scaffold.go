// Package scaffold creates the skeleton of a new documentation project: a
// configuration file and a docs directory with starter pages.
package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dgallion1/docsite/internal/config"
	"github.com/dgallion1/docsite/internal/fsutil"
)

const indexContent = `# Welcome

This is your new documentation site. Edit ` + "`docs/index.md`" + ` to change
this page, and add more markdown files next to it.

Run ` + "`docsite serve`" + ` to preview your changes locally and
` + "`docsite build`" + ` to produce the static site.
`

const aboutContent = `# About

Describe your project here.
`

// Create writes a fresh project into dir and returns the created paths. It
// refuses to overwrite: every file it would write must not exist yet.
func Create(dir, siteName string) ([]string, error) {
	if siteName == "" {
		siteName = "My Docs"
	}

	targets := []string{
		config.Candidates[0],
		filepath.Join(config.DefaultDocsDir, "index.md"),
		filepath.Join(config.DefaultDocsDir, "about.md"),
	}
	for _, t := range targets {
		if _, err := os.Stat(filepath.Join(dir, t)); err == nil {
			return nil, fmt.Errorf("%s already exists in %s", t, dir)
		}
	}

	if err := os.MkdirAll(filepath.Join(dir, config.DefaultDocsDir), 0o755); err != nil {
		return nil, err
	}

	cfg := config.New()
	cfg.SiteName = siteName
	cfg.Pages = []config.Entry{
		{Path: "index.md", Title: "Home"},
		{Path: "about.md", Title: "About"},
	}
	if err := cfg.Save(filepath.Join(dir, targets[0])); err != nil {
		return nil, fmt.Errorf("write config: %w", err)
	}

	pages := map[string]string{
		targets[1]: indexContent,
		targets[2]: aboutContent,
	}
	for rel, content := range pages {
		if err := fsutil.WriteFileAtomic(filepath.Join(dir, rel), []byte(content)); err != nil {
			return nil, err
		}
	}

	created := make([]string, 0, len(targets))
	for _, t := range targets {
		created = append(created, filepath.Join(dir, t))
	}
	return created, nil
}
