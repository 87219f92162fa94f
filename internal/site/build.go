// Package site renders a complete documentation site: it resolves the
// navigation, parses every page, runs the theme templates, copies static
// files, and writes the search index.
package site

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dgallion1/docsite/internal/config"
	"github.com/dgallion1/docsite/internal/fsutil"
	"github.com/dgallion1/docsite/internal/markdown"
	"github.com/dgallion1/docsite/internal/nav"
	"github.com/dgallion1/docsite/internal/search"
	"github.com/dgallion1/docsite/internal/theme"
)

// markerFile tags a directory as generated output so a clean build can
// remove it without risk of wiping a directory it does not own.
const markerFile = ".docsite"

type Builder struct {
	cfg    *config.Config
	log    *slog.Logger
	parser *markdown.Parser

	// Workers bounds concurrent page parsing and rendering.
	Workers int

	// Clean removes the site directory before building.
	Clean bool

	// Generator is the name written into page metadata and footers.
	Generator string
}

func NewBuilder(cfg *config.Config, log *slog.Logger) *Builder {
	return &Builder{
		cfg:       cfg,
		log:       log,
		parser:    markdown.New(),
		Workers:   4,
		Clean:     true,
		Generator: "docsite",
	}
}

// Summary is the outcome of one build.
type Summary struct {
	Pages    int           `json:"pages"`
	Assets   int           `json:"assets"`
	Warnings []string      `json:"warnings"`
	Errors   []string      `json:"errors"`
	Duration time.Duration `json:"duration"`
}

// Build renders the whole site into the configured site directory. Page
// errors do not stop the build; they are collected and reported together.
// In strict mode warnings fail the build too.
func (b *Builder) Build(ctx context.Context) (*Summary, error) {
	start := time.Now()
	sum := &Summary{}

	findings := b.cfg.Validate()
	for _, f := range findings {
		if f.Severity == config.SeverityError {
			b.log.Error(f.Message, "path", f.Path)
		} else {
			b.log.Warn(f.Message, "path", f.Path)
			sum.Warnings = append(sum.Warnings, f.String())
		}
	}
	if findings.HasErrors() {
		return sum, fmt.Errorf("configuration has %d error(s)", findings.Errors())
	}

	th, err := theme.Load(b.cfg.Theme, b.cfg.AbsThemeDir())
	if err != nil {
		return sum, err
	}

	ps, err := b.loadPages(ctx)
	if err != nil {
		return sum, err
	}
	sum.Warnings = append(sum.Warnings, ps.warnings...)
	sum.Errors = append(sum.Errors, ps.errors...)

	siteDir := b.cfg.AbsSiteDir()
	if err := b.prepareSiteDir(siteDir); err != nil {
		return sum, err
	}

	buildTime := time.Now()
	if err := b.renderAll(ctx, ps, th, siteDir, buildTime, sum); err != nil {
		return sum, err
	}

	assets, err := b.copyStatic(siteDir)
	if err != nil {
		return sum, err
	}
	sum.Assets += assets

	if err := th.CopyAssets(siteDir); err != nil {
		return sum, err
	}
	sum.Assets += len(th.Assets())

	if err := b.writeSearchIndex(ps, siteDir); err != nil {
		return sum, err
	}

	if err := fsutil.WriteFileAtomic(filepath.Join(siteDir, markerFile), []byte("generated by "+b.Generator+"\n")); err != nil {
		return sum, err
	}

	sum.Duration = time.Since(start)
	if len(sum.Errors) > 0 {
		return sum, fmt.Errorf("build finished with %d error(s)", len(sum.Errors))
	}
	if b.cfg.Strict && len(sum.Warnings) > 0 {
		return sum, fmt.Errorf("strict mode: %d warning(s) treated as errors", len(sum.Warnings))
	}
	b.log.Info("site built",
		"pages", sum.Pages,
		"assets", sum.Assets,
		"dir", siteDir,
		"elapsed", sum.Duration.Round(time.Millisecond))
	return sum, nil
}

// pageSet is every navigation page parsed and title-resolved, index-aligned
// with nav.Pages. docs holds nil for pages that failed to parse.
type pageSet struct {
	nav  *nav.Nav
	docs []*markdown.Doc

	warnings []string
	errors   []string
}

func (b *Builder) loadPages(ctx context.Context) (*pageSet, error) {
	entries := b.cfg.Pages
	if len(entries) == 0 {
		var err error
		entries, err = nav.Discover(b.cfg.AbsDocsDir())
		if err != nil {
			return nil, fmt.Errorf("discover pages: %w", err)
		}
		b.log.Info("no pages configured, discovered from docs directory", "pages", len(entries))
	}

	nv, err := nav.Build(entries, b.cfg.UseDirectoryURLs)
	if err != nil {
		return nil, err
	}

	ps := &pageSet{nav: nv, docs: make([]*markdown.Doc, len(nv.Pages))}

	// Two different sources can map to one output file, like index.md next
	// to README.md, in which case one clobbers the other.
	outputs := make(map[string]string, len(nv.Pages))
	for _, p := range nv.Pages {
		if first, ok := outputs[p.OutputPath]; ok {
			if first != p.SourcePath {
				msg := fmt.Sprintf("%s: renders to the same file as %s", p.SourcePath, first)
				b.log.Warn("output collision", "page", p.SourcePath, "with", first)
				ps.warnings = append(ps.warnings, msg)
			}
			continue
		}
		outputs[p.OutputPath] = p.SourcePath
	}

	type parsed struct {
		idx int
		doc *markdown.Doc
		err error
	}
	results := make(chan parsed, len(nv.Pages))
	sem := make(chan struct{}, b.Workers)

	for i, p := range nv.Pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sem <- struct{}{}
		go func(i int, p *nav.Page) {
			defer func() { <-sem }()
			doc, err := b.parsePage(p, nv)
			results <- parsed{idx: i, doc: doc, err: err}
		}(i, p)
	}

	for range nv.Pages {
		r := <-results
		if r.err != nil {
			b.log.Error("page failed", "page", nv.Pages[r.idx].SourcePath, "error", r.err)
			ps.errors = append(ps.errors, r.err.Error())
			continue
		}
		ps.docs[r.idx] = r.doc
		for _, w := range r.doc.Warnings {
			msg := fmt.Sprintf("%s: %s", nv.Pages[r.idx].SourcePath, w)
			b.log.Warn(w, "page", nv.Pages[r.idx].SourcePath)
			ps.warnings = append(ps.warnings, msg)
		}
	}

	// Settle titles now that page content is known: an explicit config
	// title always wins, then frontmatter, then the opening level-1
	// heading, then the name derived from the file path.
	for i, p := range nv.Pages {
		doc := ps.docs[i]
		if doc == nil {
			continue
		}
		if !p.TitleExplicit {
			if doc.Meta.Title != "" {
				p.Title = doc.Meta.Title
			} else if doc.Title != "" {
				p.Title = doc.Title
			}
		}
		doc.Tree.Title = p.Title
	}
	return ps, nil
}

// Navigation parses every page and returns the navigation with settled
// titles. Pages that fail to parse keep their derived titles.
func (b *Builder) Navigation(ctx context.Context) (*nav.Nav, error) {
	ps, err := b.loadPages(ctx)
	if err != nil {
		return nil, err
	}
	return ps.nav, nil
}

func (b *Builder) parsePage(p *nav.Page, nv *nav.Nav) (*markdown.Doc, error) {
	srcPath := filepath.Join(b.cfg.AbsDocsDir(), filepath.FromSlash(p.SourcePath))
	data, err := os.ReadFile(srcPath)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", p.SourcePath, err)
	}
	rc := &markdown.RenderContext{
		SourcePath: p.SourcePath,
		PageURL:    p.URL,
		Resolve: func(target string) (string, bool) {
			pg := nv.PageFor(target)
			if pg == nil {
				return "", false
			}
			return pg.URL, true
		},
	}
	doc, err := b.parser.Parse(data, rc)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", p.SourcePath, err)
	}
	return doc, nil
}

func (b *Builder) renderAll(ctx context.Context, ps *pageSet, th *theme.Theme, siteDir string, buildTime time.Time, sum *Summary) error {
	type written struct {
		idx int
		err error
	}
	results := make(chan written, len(ps.nav.Pages))
	sem := make(chan struct{}, b.Workers)
	launched := 0

	for i, p := range ps.nav.Pages {
		if ps.docs[i] == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		sem <- struct{}{}
		launched++
		go func(i int, p *nav.Page) {
			defer func() { <-sem }()
			data := b.pageData(p, ps.docs[i], ps.nav, buildTime)
			out := filepath.Join(siteDir, filepath.FromSlash(p.OutputPath))
			results <- written{idx: i, err: renderToFile(th, out, data)}
		}(i, p)
	}

	for range launched {
		r := <-results
		if r.err != nil {
			p := ps.nav.Pages[r.idx]
			b.log.Error("render failed", "page", p.SourcePath, "error", r.err)
			sum.Errors = append(sum.Errors, fmt.Sprintf("%s: %s", p.SourcePath, r.err))
			continue
		}
		sum.Pages++
	}
	return nil
}

func renderToFile(th *theme.Theme, path string, data *theme.Data) error {
	var buf bytes.Buffer
	if err := th.Render(&buf, data); err != nil {
		return fmt.Errorf("render template: %w", err)
	}
	return fsutil.WriteFileAtomic(path, buf.Bytes())
}

// prepareSiteDir creates the output directory, wiping a previous build
// first. A non-empty directory without the marker is left alone.
func (b *Builder) prepareSiteDir(siteDir string) error {
	info, err := os.Stat(siteDir)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return err
	case !info.IsDir():
		return fmt.Errorf("site_dir %s is not a directory", siteDir)
	case b.Clean:
		entries, err := os.ReadDir(siteDir)
		if err != nil {
			return err
		}
		if len(entries) > 0 {
			if _, err := os.Stat(filepath.Join(siteDir, markerFile)); err != nil {
				return fmt.Errorf("refusing to clean %s: %s marker not found", siteDir, markerFile)
			}
			if err := os.RemoveAll(siteDir); err != nil {
				return fmt.Errorf("clean site dir: %w", err)
			}
		}
	}
	return os.MkdirAll(siteDir, 0o755)
}

// copyStatic copies everything under the docs directory except markdown
// sources and dotfiles into the site directory.
func (b *Builder) copyStatic(siteDir string) (int, error) {
	count, err := fsutil.CopyDir(b.cfg.AbsDocsDir(), siteDir, func(rel string, d fs.DirEntry) bool {
		if strings.HasPrefix(d.Name(), ".") {
			return false
		}
		if d.IsDir() {
			return true
		}
		ext := strings.ToLower(filepath.Ext(d.Name()))
		return ext != ".md" && ext != ".markdown"
	})
	if err != nil {
		return count, fmt.Errorf("copy static files: %w", err)
	}
	return count, nil
}

func (b *Builder) writeSearchIndex(ps *pageSet, siteDir string) error {
	pages := make([]search.Page, 0, len(ps.nav.Pages))
	for i, p := range ps.nav.Pages {
		if ps.docs[i] == nil {
			continue
		}
		pages = append(pages, search.Page{
			URL:   p.URL,
			Title: p.Title,
			HTML:  ps.docs[i].HTML,
			Tree:  ps.docs[i].Tree,
		})
	}
	idx, err := search.BuildIndex(pages)
	if err != nil {
		return err
	}
	data, err := idx.JSON()
	if err != nil {
		return fmt.Errorf("encode search index: %w", err)
	}
	return fsutil.WriteFileAtomic(filepath.Join(siteDir, "search_index.json"), data)
}
