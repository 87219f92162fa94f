package theme

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func testData() *Data {
	return &Data{
		Site: Site{
			Name:      "Jaide Docs",
			RepoURL:   "https://github.com/NetworkAutomation/jaide",
			RepoName:  "GitHub",
			Copyright: "Copyright 2014 Jaide contributors",
		},
		Page: Page{
			Title:   "Usage",
			Content: "<h1>Usage</h1><p>Run the tool.</p>",
			URL:     "/usage/",
		},
		Nav: []NavItem{
			{Title: "Home", URL: "/"},
			{Title: "Usage", URL: "/usage/", Active: true},
		},
		Base:      "..",
		BuildTime: time.Now(),
		Generator: "docsite",
	}
}

func TestBuiltins(t *testing.T) {
	names := Builtins()
	for _, want := range []string{"mkdocs", "readthedocs"} {
		found := false
		for _, n := range names {
			if n == want {
				found = true
			}
		}
		if !found {
			t.Errorf("expected builtin theme %q, got %v", want, names)
		}
	}
	if !IsBuiltin("mkdocs") {
		t.Error("expected mkdocs to be builtin")
	}
	if IsBuiltin("material") {
		t.Error("expected material to not be builtin")
	}
}

func TestLoadAndRenderBuiltins(t *testing.T) {
	for _, name := range Builtins() {
		th, err := Load(name, "")
		if err != nil {
			t.Fatalf("load %s: %v", name, err)
		}
		var buf bytes.Buffer
		if err := th.Render(&buf, testData()); err != nil {
			t.Fatalf("render %s: %v", name, err)
		}
		out := buf.String()
		for _, want := range []string{
			"Jaide Docs",
			"<h1>Usage</h1>",
			`href="../usage/"`,
			"search_index.json",
			"Copyright 2014 Jaide contributors",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("theme %s output missing %q", name, want)
			}
		}
	}
}

func TestLoadUnknownTheme(t *testing.T) {
	if _, err := Load("material", ""); err == nil {
		t.Fatal("expected error for unknown theme")
	}
}

func TestLoadCustomDir(t *testing.T) {
	dir := t.TempDir()
	page := `<html><head><title>{{ .Page.Title }}</title></head>` +
		`<body>{{ .Page.Content }}</body></html>`
	if err := os.WriteFile(filepath.Join(dir, "base.html"), []byte(page), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "style.css"), []byte("body{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	th, err := Load("ignored", dir)
	if err != nil {
		t.Fatalf("load custom dir: %v", err)
	}
	var buf bytes.Buffer
	if err := th.Render(&buf, testData()); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "<title>Usage</title>") {
		t.Errorf("expected rendered title, got %q", buf.String())
	}
	if got := th.Assets(); len(got) != 1 || got[0] != "style.css" {
		t.Errorf("expected assets [style.css], got %v", got)
	}
}

func TestLoadCustomDirMissingBase(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "other.html"), []byte("<html></html>"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load("x", dir)
	if err == nil || !strings.Contains(err.Error(), "base.html") {
		t.Fatalf("expected missing base.html error, got %v", err)
	}
}

func TestCopyAssets(t *testing.T) {
	th, err := Load("mkdocs", "")
	if err != nil {
		t.Fatal(err)
	}
	dst := t.TempDir()
	if err := th.CopyAssets(dst); err != nil {
		t.Fatalf("copy assets: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dst, "css", "theme.css")); err != nil {
		t.Errorf("expected css/theme.css to be copied: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dst, "js", "search.js")); err != nil {
		t.Errorf("expected js/search.js to be copied: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dst, "base.html")); !os.IsNotExist(err) {
		t.Error("expected base.html to not be copied")
	}
}
