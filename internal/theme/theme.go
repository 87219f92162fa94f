// Package theme loads the HTML templates and static assets a site is
// rendered with. Themes are either built in (embedded in the binary) or
// loaded from a theme_dir on disk. A theme directory holds a base.html
// template, optional further *.html templates it references, and any static
// assets, which are copied into the built site as-is.
package theme

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dgallion1/docsite/internal/fsutil"
)

//go:embed all:builtin
var builtinFS embed.FS

// Theme is a loaded template set plus the static files shipped with it.
type Theme struct {
	Name string

	tmpl   *template.Template
	fsys   fs.FS
	assets []string
}

// Builtins lists the embedded theme names.
func Builtins() []string {
	entries, err := fs.ReadDir(builtinFS, "builtin")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

// IsBuiltin reports whether name is an embedded theme.
func IsBuiltin(name string) bool {
	for _, b := range Builtins() {
		if b == name {
			return true
		}
	}
	return false
}

// Load returns the theme to render with. A non-empty customDir wins over the
// named builtin.
func Load(name, customDir string) (*Theme, error) {
	if customDir != "" {
		info, err := os.Stat(customDir)
		if err != nil {
			return nil, fmt.Errorf("theme dir: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("theme dir %s is not a directory", customDir)
		}
		return fromFS(filepath.Base(customDir), os.DirFS(customDir))
	}
	if !IsBuiltin(name) {
		return nil, fmt.Errorf("unknown theme %q (built in: %s)", name, strings.Join(Builtins(), ", "))
	}
	sub, err := fs.Sub(builtinFS, "builtin/"+name)
	if err != nil {
		return nil, fmt.Errorf("open builtin theme %s: %w", name, err)
	}
	return fromFS(name, sub)
}

func fromFS(name string, fsys fs.FS) (*Theme, error) {
	var templates, assets []string
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(path, ".html") {
			templates = append(templates, path)
		} else {
			assets = append(assets, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read theme %s: %w", name, err)
	}
	if len(templates) == 0 {
		return nil, fmt.Errorf("theme %s has no templates", name)
	}
	hasBase := false
	for _, t := range templates {
		if t == "base.html" {
			hasBase = true
		}
	}
	if !hasBase {
		return nil, fmt.Errorf("theme %s is missing base.html", name)
	}

	tmpl, err := template.ParseFS(fsys, templates...)
	if err != nil {
		return nil, fmt.Errorf("parse theme %s: %w", name, err)
	}
	return &Theme{Name: name, tmpl: tmpl, fsys: fsys, assets: assets}, nil
}

// Render executes the base template with the page data.
func (t *Theme) Render(w io.Writer, data *Data) error {
	return t.tmpl.ExecuteTemplate(w, "base.html", data)
}

// Assets lists the theme's static files as slash-separated relative paths.
func (t *Theme) Assets() []string {
	out := make([]string, len(t.assets))
	copy(out, t.assets)
	return out
}

// CopyAssets writes every static file into dst, keeping the directory
// layout. Templates are not copied.
func (t *Theme) CopyAssets(dst string) error {
	for _, a := range t.assets {
		data, err := fs.ReadFile(t.fsys, a)
		if err != nil {
			return fmt.Errorf("read theme asset %s: %w", a, err)
		}
		if err := fsutil.WriteFileAtomic(filepath.Join(dst, filepath.FromSlash(a)), data); err != nil {
			return fmt.Errorf("copy theme asset %s: %w", a, err)
		}
	}
	return nil
}
