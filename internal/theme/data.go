package theme

import (
	"html/template"
	"time"

	"github.com/dgallion1/docsite/internal/doctree"
)

// Data is the object every template executes against. Custom themes are
// written against this shape, so fields are only ever added.
type Data struct {
	Site Site
	Page Page

	// Nav is the full navigation in page order, with the entry for the
	// current page (or its enclosing section) marked active.
	Nav []NavItem

	// Base is the relative path from the current page back to the site
	// root, without a trailing slash: "." for the homepage, ".." one level
	// down. Prefix it to site-absolute URLs so built sites also work when
	// opened from the filesystem.
	Base string

	BuildTime time.Time
	Generator string
}

// Site carries the config values themes show in headers and footers.
type Site struct {
	Name        string
	URL         string
	Description string
	Author      string
	Favicon     string
	RepoURL     string
	RepoName    string
	Copyright   string

	ExtraCSS        []string
	ExtraJavascript []string
}

// Page is the current page.
type Page struct {
	Title string

	// Content is the rendered markdown body.
	Content template.HTML

	// URL is site-absolute, "/" for the homepage.
	URL string

	// CanonicalURL is the absolute address when site_url is configured.
	CanonicalURL string

	// SourcePath is the docs-relative markdown path.
	SourcePath string

	Description string

	// TOC is the page's heading tree.
	TOC *doctree.DocTree

	Prev *NavItem
	Next *NavItem

	Homepage bool
}

// NavItem is one navigation node: a page link or a section of page links.
type NavItem struct {
	Title string

	// URL is empty for section headers.
	URL string

	// Active marks the current page and any section containing it.
	Active bool

	Section  bool
	Children []NavItem
}
