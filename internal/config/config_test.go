package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const jaideConfig = `# Documentation site for the Jaide CLI tool.
site_name: Jaide
site_url: http://networkautomation.github.io/jaide/
site_description: Junos Aide - a library and CLI tool for Junos automation
site_author: Nathan Printz and Geoff Rhodes
repo_url: https://github.com/NetworkAutomation/jaide

pages:
- ['index.md', 'Home']
- ['usage.md', 'Basic Usage']
- ['examples/scp.md', 'Examples', 'SCP Files and Folders']
- ['examples/shell.md', 'Examples', 'Shell and Operational Commands']
- ['examples/set.md', 'Examples', 'Set Commands']
- ['about.md', 'About']

theme: mkdocs
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(jaideConfig))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.SiteName != "Jaide" {
		t.Errorf("expected site name Jaide, got %q", cfg.SiteName)
	}
	if cfg.SiteAuthor != "Nathan Printz and Geoff Rhodes" {
		t.Errorf("unexpected site author %q", cfg.SiteAuthor)
	}
	if cfg.Theme != "mkdocs" {
		t.Errorf("expected theme mkdocs, got %q", cfg.Theme)
	}
	if cfg.RepoName != "GitHub" {
		t.Errorf("expected derived repo name GitHub, got %q", cfg.RepoName)
	}
	if len(cfg.Pages) != 6 {
		t.Fatalf("expected 6 pages, got %d", len(cfg.Pages))
	}
	if len(cfg.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", cfg.Warnings)
	}

	scp := cfg.Pages[2]
	if scp.Path != "examples/scp.md" || scp.Section != "Examples" || scp.Title != "SCP Files and Folders" {
		t.Errorf("unexpected entry %+v", scp)
	}
	last := cfg.Pages[5]
	if last.Path != "about.md" || last.Title != "About" || last.Section != "" {
		t.Errorf("unexpected entry %+v", last)
	}
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse([]byte("site_name: Minimal\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Theme != DefaultTheme {
		t.Errorf("expected default theme, got %q", cfg.Theme)
	}
	if cfg.DocsDir != "docs" || cfg.SiteDir != "site" {
		t.Errorf("expected default dirs, got docs=%q site=%q", cfg.DocsDir, cfg.SiteDir)
	}
	if cfg.DevAddr != "127.0.0.1:8000" {
		t.Errorf("expected default dev_addr, got %q", cfg.DevAddr)
	}
	if !cfg.UseDirectoryURLs {
		t.Error("expected use_directory_urls to default to true")
	}
	if len(cfg.Pages) != 0 {
		t.Errorf("expected no pages, got %d", len(cfg.Pages))
	}
}

func TestParseEntryForms(t *testing.T) {
	src := `site_name: Forms
pages:
- index.md
- ['usage.md']
- ['about.md', 'About']
- ['ex/a.md', 'Examples', 'First']
`
	cfg, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := []Entry{
		{Path: "index.md"},
		{Path: "usage.md"},
		{Path: "about.md", Title: "About"},
		{Path: "ex/a.md", Section: "Examples", Title: "First"},
	}
	if len(cfg.Pages) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(cfg.Pages))
	}
	for i, w := range want {
		if cfg.Pages[i] != w {
			t.Errorf("entry %d: expected %+v, got %+v", i, w, cfg.Pages[i])
		}
	}
	if cfg.Pages[0].HasExplicitTitle() {
		t.Error("expected bare path to have no explicit title")
	}
	if !cfg.Pages[2].HasExplicitTitle() {
		t.Error("expected titled entry to have explicit title")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"empty", "", "empty"},
		{"sequence root", "- a\n- b\n", "mapping"},
		{"too many elements", "pages:\n- ['a.md', 'b', 'c', 'd']\n", "elements"},
		{"mapping entry", "pages:\n- path: a.md\n", "string"},
		{"nested sequence", "pages:\n- [['a.md']]\n", "strings"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %q", tt.want, err)
			}
		})
	}
}

func TestParseEntryErrorNamesIndex(t *testing.T) {
	src := "site_name: X\npages:\n- ['a.md', 'A']\n- ['b.md', 'b', 'c', 'd']\n"
	_, err := Parse([]byte(src))
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "pages[1]") {
		t.Errorf("expected error to name the entry, got %q", err)
	}
	if !strings.Contains(err.Error(), "line 4") {
		t.Errorf("expected error to keep the line number, got %q", err)
	}
}

func TestParseNullPages(t *testing.T) {
	cfg, err := Parse([]byte("site_name: X\npages:\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(cfg.Pages) != 0 {
		t.Errorf("expected no pages, got %d", len(cfg.Pages))
	}
}

func TestParseUnknownKeys(t *testing.T) {
	src := "site_name: X\nmarkdown_extensions:\n- toc\nfoo: 1\n"
	cfg, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(cfg.Warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %v", cfg.Warnings)
	}
	if !strings.Contains(cfg.Warnings[0], "markdown_extensions") {
		t.Errorf("unexpected warning %q", cfg.Warnings[0])
	}
}

func TestParseDirectoryURLsOff(t *testing.T) {
	cfg, err := Parse([]byte("site_name: X\nuse_directory_urls: false\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.UseDirectoryURLs {
		t.Error("expected use_directory_urls false")
	}
}

func TestLoadAppliesEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mkdocs.yml")
	if err := os.WriteFile(path, []byte("site_name: X\ntheme: mkdocs\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DOCSITE_THEME", "readthedocs")
	t.Setenv("DOCSITE_DEV_ADDR", "0.0.0.0:9000")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Theme != "readthedocs" {
		t.Errorf("expected env theme override, got %q", cfg.Theme)
	}
	if cfg.DevAddr != "0.0.0.0:9000" {
		t.Errorf("expected env dev_addr override, got %q", cfg.DevAddr)
	}
	if cfg.ConfigDir != dir {
		t.Errorf("expected config dir %q, got %q", dir, cfg.ConfigDir)
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadDir(dir); err == nil {
		t.Fatal("expected error for empty dir")
	}
	if err := os.WriteFile(filepath.Join(dir, "docsite.yml"), []byte("site_name: Fallback\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("load dir: %v", err)
	}
	if cfg.SiteName != "Fallback" {
		t.Errorf("expected fallback config, got %q", cfg.SiteName)
	}

	if err := os.WriteFile(filepath.Join(dir, "mkdocs.yml"), []byte("site_name: Primary\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = LoadDir(dir)
	if err != nil {
		t.Fatalf("load dir: %v", err)
	}
	if cfg.SiteName != "Primary" {
		t.Errorf("expected mkdocs.yml to win, got %q", cfg.SiteName)
	}
}

func TestAbsDirs(t *testing.T) {
	cfg := New()
	cfg.ConfigDir = "/proj"
	if got := cfg.AbsDocsDir(); got != filepath.Join("/proj", "docs") {
		t.Errorf("unexpected docs dir %q", got)
	}
	cfg.SiteDir = "/out/site"
	if got := cfg.AbsSiteDir(); got != "/out/site" {
		t.Errorf("expected absolute site dir kept, got %q", got)
	}
	if got := cfg.AbsThemeDir(); got != "" {
		t.Errorf("expected empty theme dir, got %q", got)
	}
}

func TestDeriveRepoName(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://github.com/NetworkAutomation/jaide", "GitHub"},
		{"https://bitbucket.org/team/repo", "Bitbucket"},
		{"https://git.example.com/repo", "git.example.com"},
		{"not a url", ""},
	}
	for _, tt := range tests {
		if got := deriveRepoName(tt.url); got != tt.want {
			t.Errorf("deriveRepoName(%q): expected %q, got %q", tt.url, tt.want, got)
		}
	}
}
