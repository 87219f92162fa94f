package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dgallion1/docsite/internal/fsutil"
	"github.com/dgallion1/docsite/internal/theme"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Finding is one validation result. Path carries the file or key the finding
// refers to when there is one.
type Finding struct {
	Severity Severity
	Path     string
	Message  string
}

func (f Finding) String() string {
	if f.Path != "" {
		return fmt.Sprintf("%s: %s: %s", f.Severity, f.Path, f.Message)
	}
	return fmt.Sprintf("%s: %s", f.Severity, f.Message)
}

type Findings []Finding

func (fs Findings) HasErrors() bool {
	for _, f := range fs {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

func (fs Findings) Errors() int {
	n := 0
	for _, f := range fs {
		if f.Severity == SeverityError {
			n++
		}
	}
	return n
}

func (fs Findings) Warnings() int {
	return len(fs) - fs.Errors()
}

// Validate checks the config against the filesystem: required keys, theme
// availability, docs directory layout, and every navigation entry. Parse
// warnings are included so callers see one list.
func (c *Config) Validate() Findings {
	var fs Findings
	errf := func(path, format string, args ...any) {
		fs = append(fs, Finding{SeverityError, path, fmt.Sprintf(format, args...)})
	}
	warnf := func(path, format string, args ...any) {
		fs = append(fs, Finding{SeverityWarning, path, fmt.Sprintf(format, args...)})
	}

	for _, w := range c.Warnings {
		warnf("", "%s", w)
	}

	if strings.TrimSpace(c.SiteName) == "" {
		errf("", "site_name is required")
	}

	if c.ThemeDir != "" {
		if info, err := os.Stat(c.AbsThemeDir()); err != nil || !info.IsDir() {
			errf(c.ThemeDir, "theme_dir is not a directory")
		}
	} else if !theme.IsBuiltin(c.Theme) {
		errf("", "unsupported theme %q (built in: %s)", c.Theme, strings.Join(theme.Builtins(), ", "))
	}

	docsDir := c.AbsDocsDir()
	docsOK := false
	if info, err := os.Stat(docsDir); err != nil || !info.IsDir() {
		errf(c.DocsDir, "docs directory does not exist")
	} else {
		docsOK = true
	}

	if docsOK && !hasHomepageFile(docsDir) {
		warnf(c.DocsDir, "no index.md or README.md found, site will have no homepage")
	}

	siteDir := c.AbsSiteDir()
	if siteDir == docsDir {
		errf(c.SiteDir, "site_dir and docs_dir are the same directory")
	} else if rel, err := filepath.Rel(docsDir, siteDir); err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		warnf(c.SiteDir, "site_dir is inside docs_dir, built output will be copied into itself on the next build")
	}

	if host, port, err := net.SplitHostPort(c.DevAddr); err != nil {
		errf("", "dev_addr %q is not of the form host:port", c.DevAddr)
	} else if host == "" {
		errf("", "dev_addr %q is missing a host", c.DevAddr)
	} else if n, err := strconv.Atoi(port); err != nil || n < 1 || n > 65535 {
		errf("", "dev_addr %q has an invalid port", c.DevAddr)
	}

	checkURL := func(key, value string) {
		if value == "" {
			return
		}
		u, err := url.Parse(value)
		if err != nil || u.Scheme == "" || u.Host == "" {
			warnf("", "%s %q is not an absolute URL", key, value)
		}
	}
	checkURL("site_url", c.SiteURL)
	checkURL("repo_url", c.RepoURL)

	seen := make(map[string]int)
	hasIndex := false
	for i, e := range c.Pages {
		where := fmt.Sprintf("pages[%d]", i)
		if e.Path == "" {
			errf(where, "navigation entry has no path")
			continue
		}
		where = e.Path
		full, err := fsutil.ConfineRelPath(docsDir, e.Path)
		if err != nil {
			errf(where, "path escapes the docs directory")
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Path))
		if ext != ".md" && ext != ".markdown" {
			errf(where, "not a markdown file")
			continue
		}
		if docsOK {
			if err := fsutil.IsRegularFile(full); err != nil {
				errf(where, "references a file that does not exist under %s", c.DocsDir)
			}
		}
		if e.Title == "" && e.Section != "" {
			warnf(where, "section entry has an empty title, one will be derived from the page")
		}
		if prev, dup := seen[e.Path]; dup {
			warnf(where, "listed more than once (first at pages[%d])", prev)
		} else {
			seen[e.Path] = i
		}
		if isIndexSource(e.Path) {
			hasIndex = true
		}
	}
	if len(c.Pages) > 0 && !hasIndex {
		warnf("", "pages does not include index.md or another homepage file")
	}

	checkExtra := func(key string, paths []string) {
		for _, p := range paths {
			if strings.Contains(p, "://") || strings.HasPrefix(p, "//") {
				continue
			}
			full, err := fsutil.ConfineRelPath(docsDir, p)
			if err != nil {
				errf(p, "%s path escapes the docs directory", key)
				continue
			}
			if docsOK {
				if err := fsutil.IsRegularFile(full); err != nil {
					warnf(p, "%s file does not exist under %s", key, c.DocsDir)
				}
			}
		}
	}
	checkExtra("extra_css", c.ExtraCSS)
	checkExtra("extra_javascript", c.ExtraJavascript)

	return fs
}

// isIndexSource matches the docs-relative paths the navigation maps to the
// site root: an index or readme stem with a markdown extension, any case.
// Paths in subdirectories never match since the stem keeps the directory.
func isIndexSource(relPath string) bool {
	ext := filepath.Ext(relPath)
	if lower := strings.ToLower(ext); lower != ".md" && lower != ".markdown" {
		return false
	}
	stem := strings.TrimSuffix(relPath, ext)
	return strings.EqualFold(stem, "index") || strings.EqualFold(stem, "readme")
}

// hasHomepageFile reports whether the docs root holds a file that would
// render as the homepage.
func hasHomepageFile(docsDir string) bool {
	entries, err := os.ReadDir(docsDir)
	if err != nil {
		return false
	}
	for _, e := range entries {
		if !e.IsDir() && isIndexSource(e.Name()) {
			return true
		}
	}
	return false
}
