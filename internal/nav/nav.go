// Package nav turns the ordered pages list into the site navigation: page
// URLs and output locations, section grouping, titles, and the prev/next
// chain.
package nav

import (
	"fmt"
	"path"
	"strings"

	"github.com/dgallion1/docsite/internal/config"
)

// Page is one markdown source file placed in the navigation.
type Page struct {
	// SourcePath is the docs-relative source file, slash separated.
	SourcePath string

	// Title is the display title. Derived from the file name until the
	// page content offers something better, unless the config named one.
	Title string

	// TitleExplicit is set when the title came from the config and must
	// not be replaced by a title found in the page.
	TitleExplicit bool

	// URL is the site-absolute address, "/" for the homepage.
	URL string

	// OutputPath is where the rendered page lands inside the site
	// directory, slash separated.
	OutputPath string

	// Section is the enclosing section header, empty for top-level pages.
	Section string

	Prev *Page
	Next *Page
}

// Section groups consecutive pages under one header. Entries sharing a
// header merge into the group created at its first appearance, whatever
// their position in the list.
type Section struct {
	Title string
	Pages []*Page
}

// Item is one top-level navigation slot, either a page or a section.
type Item struct {
	Page    *Page
	Section *Section
}

// Nav is the built navigation.
type Nav struct {
	// Items in display order.
	Items []Item

	// Pages flattened in config order. Prev and Next follow this order.
	Pages []*Page

	// Homepage is the page served at the site root, nil when the docs
	// have no index page.
	Homepage *Page

	byPath map[string]*Page
}

// Build constructs the navigation from config entries. With dirURLs, pages
// map to pretty directory URLs (usage.md becomes /usage/); without, they
// keep an .html suffix.
func Build(entries []config.Entry, dirURLs bool) (*Nav, error) {
	n := &Nav{byPath: make(map[string]*Page)}
	sections := make(map[string]*Section)

	for i, e := range entries {
		src, err := normalize(e.Path)
		if err != nil {
			return nil, fmt.Errorf("pages[%d]: %w", i, err)
		}
		u, out := Locate(src, dirURLs)
		p := &Page{
			SourcePath:    src,
			Title:         e.Title,
			TitleExplicit: e.HasExplicitTitle(),
			URL:           u,
			OutputPath:    out,
			Section:       e.Section,
		}
		if p.Title == "" {
			p.Title = TitleFromPath(src)
		}

		if e.Section == "" {
			n.Items = append(n.Items, Item{Page: p})
		} else {
			sec := sections[e.Section]
			if sec == nil {
				sec = &Section{Title: e.Section}
				sections[e.Section] = sec
				n.Items = append(n.Items, Item{Section: sec})
			}
			sec.Pages = append(sec.Pages, p)
		}

		n.Pages = append(n.Pages, p)
		n.byPath[src] = p
		if u == "/" && n.Homepage == nil {
			n.Homepage = p
		}
	}

	for i, p := range n.Pages {
		if i > 0 {
			p.Prev = n.Pages[i-1]
		}
		if i < len(n.Pages)-1 {
			p.Next = n.Pages[i+1]
		}
	}
	return n, nil
}

// PageFor looks up a page by its docs-relative source path. When the same
// file is listed twice, the last entry wins.
func (n *Nav) PageFor(sourcePath string) *Page {
	src, err := normalize(sourcePath)
	if err != nil {
		return nil
	}
	return n.byPath[src]
}

func normalize(p string) (string, error) {
	if p == "" {
		return "", fmt.Errorf("empty path")
	}
	if strings.Contains(p, `\`) {
		return "", fmt.Errorf("path %q contains a backslash", p)
	}
	s := path.Clean(p)
	if path.IsAbs(s) {
		return "", fmt.Errorf("path %q is absolute", p)
	}
	if s == ".." || strings.HasPrefix(s, "../") {
		return "", fmt.Errorf("path %q escapes the docs directory", p)
	}
	return s, nil
}

// isIndexFile reports whether the base name (without extension) makes the
// file its directory's index page.
func isIndexFile(stem string) bool {
	return strings.EqualFold(stem, "index") || strings.EqualFold(stem, "readme")
}

// Locate maps a docs-relative markdown path to its URL and output file.
//
//	index.md        ->  /            index.html
//	usage.md        ->  /usage/      usage/index.html
//	ex/scp.md       ->  /ex/scp/     ex/scp/index.html
//	ex/index.md     ->  /ex/         ex/index.html
//
// Without directory URLs every page keeps its .html name: usage.md maps to
// /usage.html, ex/scp.md to /ex/scp.html.
func Locate(sourcePath string, dirURLs bool) (url, outputPath string) {
	src := path.Clean(filepathToSlash(sourcePath))
	stem := strings.TrimSuffix(src, path.Ext(src))
	dir, base := path.Split(stem)
	dir = strings.TrimSuffix(dir, "/")

	if isIndexFile(base) {
		if dir == "" {
			return "/", "index.html"
		}
		if dirURLs {
			return "/" + dir + "/", dir + "/index.html"
		}
		return "/" + dir + "/index.html", dir + "/index.html"
	}
	if dirURLs {
		return "/" + stem + "/", stem + "/index.html"
	}
	return "/" + stem + ".html", stem + ".html"
}

func filepathToSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}
