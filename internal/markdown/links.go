package markdown

import (
	"fmt"
	"path"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

var renderContextKey = parser.NewContextKey()

// RenderContext tells the link transformer where the current page lives and
// how to map a markdown source path to its built URL.
type RenderContext struct {
	// SourcePath is the page's docs-relative source file.
	SourcePath string

	// PageURL is the page's site-absolute URL.
	PageURL string

	// Resolve maps a docs-relative markdown path to its site-absolute URL.
	Resolve func(sourcePath string) (string, bool)

	Warnings []string
}

func (rc *RenderContext) warnf(format string, args ...any) {
	rc.Warnings = append(rc.Warnings, fmt.Sprintf(format, args...))
}

// linkTransformer rewrites relative link and image destinations while the
// AST is being parsed, so the rendered HTML points at built locations.
type linkTransformer struct{}

func (linkTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	v := pc.Get(renderContextKey)
	if v == nil {
		return
	}
	rc := v.(*RenderContext)
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *ast.Link:
			t.Destination = []byte(rc.rewrite(string(t.Destination)))
		case *ast.Image:
			t.Destination = []byte(rc.rewrite(string(t.Destination)))
		}
		return ast.WalkContinue, nil
	})
}

func (rc *RenderContext) rewrite(dest string) string {
	if dest == "" || strings.HasPrefix(dest, "#") {
		return dest
	}
	if strings.Contains(dest, "://") || strings.HasPrefix(dest, "//") ||
		strings.HasPrefix(dest, "mailto:") || strings.HasPrefix(dest, "tel:") {
		return dest
	}
	if strings.HasPrefix(dest, "/") {
		return dest
	}

	base, frag, _ := strings.Cut(dest, "#")
	if base == "" {
		return dest
	}
	target := path.Clean(path.Join(path.Dir(rc.SourcePath), base))
	if target == ".." || strings.HasPrefix(target, "../") {
		rc.warnf("link %q escapes the docs directory", dest)
		return dest
	}

	ext := strings.ToLower(path.Ext(target))
	if ext == ".md" || ext == ".markdown" {
		u, ok := rc.Resolve(target)
		if !ok {
			rc.warnf("link %q points to a page not in the navigation", dest)
			return dest
		}
		if u == rc.PageURL && frag != "" {
			return "#" + frag
		}
		return withFragment(relativeURL(rc.PageURL, u), frag)
	}

	// Anything else is a copied asset addressed by its docs-relative path.
	return withFragment(relativeURL(rc.PageURL, "/"+target), frag)
}

func withFragment(u, frag string) string {
	if frag == "" {
		return u
	}
	return u + "#" + frag
}

// relativeURL expresses the site-absolute URL to relative to the page at
// from, keeping built sites browsable straight from the filesystem.
func relativeURL(from, to string) string {
	if !strings.HasPrefix(to, "/") {
		return to
	}
	fromDir := from
	if !strings.HasSuffix(fromDir, "/") {
		fromDir = path.Dir(fromDir)
		if fromDir != "/" {
			fromDir += "/"
		}
	}

	fromSegs := splitURL(fromDir)
	toSegs := splitURL(to)
	toDirs := len(toSegs)
	trailing := strings.HasSuffix(to, "/") && to != "/"
	if !strings.HasSuffix(to, "/") {
		toDirs--
	}

	i := 0
	for i < len(fromSegs) && i < toDirs && fromSegs[i] == toSegs[i] {
		i++
	}

	var b strings.Builder
	for j := i; j < len(fromSegs); j++ {
		b.WriteString("../")
	}
	b.WriteString(strings.Join(toSegs[i:], "/"))

	out := b.String()
	if out == "" {
		return "./"
	}
	if trailing && !strings.HasSuffix(out, "/") {
		out += "/"
	}
	return out
}

func splitURL(u string) []string {
	var segs []string
	for _, s := range strings.Split(u, "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return segs
}
