package site

import (
	"html/template"
	"strings"
	"time"

	"github.com/dgallion1/docsite/internal/markdown"
	"github.com/dgallion1/docsite/internal/nav"
	"github.com/dgallion1/docsite/internal/theme"
)

func (b *Builder) pageData(p *nav.Page, doc *markdown.Doc, nv *nav.Nav, buildTime time.Time) *theme.Data {
	c := b.cfg
	desc := doc.Meta.Description
	if desc == "" {
		desc = c.SiteDescription
	}
	return &theme.Data{
		Site: theme.Site{
			Name:            c.SiteName,
			URL:             c.SiteURL,
			Description:     c.SiteDescription,
			Author:          c.SiteAuthor,
			Favicon:         c.SiteFavicon,
			RepoURL:         c.RepoURL,
			RepoName:        c.RepoName,
			Copyright:       c.Copyright,
			ExtraCSS:        c.ExtraCSS,
			ExtraJavascript: c.ExtraJavascript,
		},
		Page: theme.Page{
			Title:        p.Title,
			Content:      template.HTML(doc.HTML),
			URL:          p.URL,
			CanonicalURL: canonicalURL(c.SiteURL, p.URL),
			SourcePath:   p.SourcePath,
			Description:  desc,
			TOC:          doc.Tree,
			Prev:         linkItem(p.Prev),
			Next:         linkItem(p.Next),
			Homepage:     p.URL == "/",
		},
		Nav:       navItems(nv, p),
		Base:      basePrefix(p.OutputPath),
		BuildTime: buildTime,
		Generator: b.Generator,
	}
}

// basePrefix is the relative path from a page's output file back up to the
// site root: "." at the root, "../.." two levels down.
func basePrefix(outputPath string) string {
	depth := strings.Count(outputPath, "/")
	if depth == 0 {
		return "."
	}
	return strings.TrimSuffix(strings.Repeat("../", depth), "/")
}

func canonicalURL(siteURL, pageURL string) string {
	if siteURL == "" {
		return ""
	}
	return strings.TrimSuffix(siteURL, "/") + pageURL
}

func linkItem(p *nav.Page) *theme.NavItem {
	if p == nil {
		return nil
	}
	return &theme.NavItem{Title: p.Title, URL: p.URL}
}

func navItems(nv *nav.Nav, current *nav.Page) []theme.NavItem {
	items := make([]theme.NavItem, 0, len(nv.Items))
	for _, it := range nv.Items {
		switch {
		case it.Section != nil:
			s := theme.NavItem{Title: it.Section.Title, Section: true}
			for _, p := range it.Section.Pages {
				child := theme.NavItem{Title: p.Title, URL: p.URL, Active: p == current}
				if child.Active {
					s.Active = true
				}
				s.Children = append(s.Children, child)
			}
			items = append(items, s)
		case it.Page != nil:
			items = append(items, theme.NavItem{
				Title:  it.Page.Title,
				URL:    it.Page.URL,
				Active: it.Page == current,
			})
		}
	}
	return items
}
