package site

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docsite/internal/config"
	"github.com/dgallion1/docsite/internal/theme"
)

// Check runs everything a build would verify without writing output: config
// findings, theme loading, navigation construction, page parsing with link
// resolution, and a scan for markdown files the navigation never mentions.
func (b *Builder) Check(ctx context.Context) (config.Findings, error) {
	findings := b.cfg.Validate()

	if _, err := theme.Load(b.cfg.Theme, b.cfg.AbsThemeDir()); err != nil {
		findings = append(findings, config.Finding{
			Severity: config.SeverityError,
			Message:  err.Error(),
		})
	}

	docsDir := b.cfg.AbsDocsDir()
	if _, err := os.Stat(docsDir); err != nil {
		return findings, nil
	}

	ps, err := b.loadPages(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		findings = append(findings, config.Finding{
			Severity: config.SeverityError,
			Message:  err.Error(),
		})
		return findings, nil
	}
	for _, e := range ps.errors {
		findings = append(findings, config.Finding{Severity: config.SeverityError, Message: e})
	}
	for _, w := range ps.warnings {
		findings = append(findings, config.Finding{Severity: config.SeverityWarning, Message: w})
	}

	// In discovery mode every file is in the navigation by construction.
	if len(b.cfg.Pages) > 0 {
		unused, err := b.unreferenced(docsDir, ps)
		if err != nil {
			return findings, err
		}
		for _, rel := range unused {
			findings = append(findings, config.Finding{
				Severity: config.SeverityWarning,
				Path:     rel,
				Message:  "markdown file is not referenced in pages",
			})
		}
	}
	return findings, nil
}

func (b *Builder) unreferenced(docsDir string, ps *pageSet) ([]string, error) {
	var unused []string
	err := filepath.WalkDir(docsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != docsDir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		ext := strings.ToLower(filepath.Ext(d.Name()))
		if ext != ".md" && ext != ".markdown" {
			return nil
		}
		rel, err := filepath.Rel(docsDir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if ps.nav.PageFor(rel) == nil {
			unused = append(unused, rel)
		}
		return nil
	})
	return unused, err
}
