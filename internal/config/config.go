// Package config loads, validates, and writes back the YAML site
// configuration. The parsed document node is retained so that a config can be
// re-encoded with its key order, comments, and flow styles intact.
package config

import (
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultTheme   = "mkdocs"
	DefaultDocsDir = "docs"
	DefaultSiteDir = "site"
	DefaultDevAddr = "127.0.0.1:8000"
)

// Candidates are the config file names tried, in order, when no explicit
// path is given.
var Candidates = []string{"mkdocs.yml", "mkdocs.yaml", "docsite.yml"}

type Config struct {
	SiteName        string
	SiteURL         string
	SiteDescription string
	SiteAuthor      string
	SiteFavicon     string
	RepoURL         string
	RepoName        string
	Copyright       string

	// Pages is the ordered navigation. Empty means the navigation is
	// discovered from the docs directory.
	Pages []Entry

	Theme    string
	ThemeDir string
	DocsDir  string
	SiteDir  string
	DevAddr  string

	UseDirectoryURLs bool
	Strict           bool

	ExtraCSS        []string
	ExtraJavascript []string

	// ConfigDir is the directory holding the loaded file. Relative
	// docs_dir, site_dir, and theme_dir values resolve against it.
	ConfigDir string
	// ConfigFile is the absolute path of the loaded file, empty for
	// configs constructed in memory.
	ConfigFile string

	// Warnings collected while parsing, such as unrecognized keys.
	Warnings []string

	doc *yaml.Node
}

// fileConfig mirrors the YAML schema. Pointer fields distinguish "absent"
// from a zero value so defaults only fill real gaps, and omitempty keeps
// synthesized configs down to the keys that differ from the defaults.
type fileConfig struct {
	SiteName         string    `yaml:"site_name"`
	SiteURL          string    `yaml:"site_url,omitempty"`
	SiteDescription  string    `yaml:"site_description,omitempty"`
	SiteAuthor       string    `yaml:"site_author,omitempty"`
	SiteFavicon      string    `yaml:"site_favicon,omitempty"`
	RepoURL          string    `yaml:"repo_url,omitempty"`
	RepoName         string    `yaml:"repo_name,omitempty"`
	Copyright        string    `yaml:"copyright,omitempty"`
	Pages            entryList `yaml:"pages,omitempty"`
	Theme            string    `yaml:"theme,omitempty"`
	ThemeDir         string    `yaml:"theme_dir,omitempty"`
	DocsDir          string    `yaml:"docs_dir,omitempty"`
	SiteDir          string    `yaml:"site_dir,omitempty"`
	DevAddr          string    `yaml:"dev_addr,omitempty"`
	UseDirectoryURLs *bool     `yaml:"use_directory_urls,omitempty"`
	Strict           bool      `yaml:"strict,omitempty"`
	ExtraCSS         []string  `yaml:"extra_css,omitempty"`
	ExtraJavascript  []string  `yaml:"extra_javascript,omitempty"`
}

var knownKeys = map[string]bool{
	"site_name":          true,
	"site_url":           true,
	"site_description":   true,
	"site_author":        true,
	"site_favicon":       true,
	"repo_url":           true,
	"repo_name":          true,
	"copyright":          true,
	"pages":              true,
	"theme":              true,
	"theme_dir":          true,
	"docs_dir":           true,
	"site_dir":           true,
	"dev_addr":           true,
	"use_directory_urls": true,
	"strict":             true,
	"extra_css":          true,
	"extra_javascript":   true,
}

// New returns a config with every default applied and no navigation.
func New() *Config {
	return &Config{
		Theme:            DefaultTheme,
		DocsDir:          DefaultDocsDir,
		SiteDir:          DefaultSiteDir,
		DevAddr:          DefaultDevAddr,
		UseDirectoryURLs: true,
		ConfigDir:        ".",
	}
}

// AbsDocsDir resolves the docs directory against the config location.
func (c *Config) AbsDocsDir() string {
	return c.resolve(c.DocsDir)
}

// AbsSiteDir resolves the output directory against the config location.
func (c *Config) AbsSiteDir() string {
	return c.resolve(c.SiteDir)
}

// AbsThemeDir resolves theme_dir against the config location. Empty when no
// custom theme directory is configured.
func (c *Config) AbsThemeDir() string {
	if c.ThemeDir == "" {
		return ""
	}
	return c.resolve(c.ThemeDir)
}

func (c *Config) resolve(dir string) string {
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Join(c.ConfigDir, dir)
}

// deriveRepoName names the repository link from its host: GitHub and
// Bitbucket get their brand names, anything else the bare host.
func deriveRepoName(repoURL string) string {
	u, err := url.Parse(repoURL)
	if err != nil || u.Host == "" {
		return ""
	}
	host := strings.ToLower(u.Host)
	switch {
	case strings.Contains(host, "github"):
		return "GitHub"
	case strings.Contains(host, "bitbucket"):
		return "Bitbucket"
	default:
		return u.Host
	}
}

// applyEnv layers DOCSITE_* environment overrides onto the loaded values.
func (c *Config) applyEnv() {
	c.Theme = envOr("DOCSITE_THEME", c.Theme)
	c.SiteDir = envOr("DOCSITE_SITE_DIR", c.SiteDir)
	c.DevAddr = envOr("DOCSITE_DEV_ADDR", c.DevAddr)
	c.Strict = envBool("DOCSITE_STRICT", c.Strict)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
