package markdown

import (
	"strings"
	"testing"
)

func resolver(m map[string]string) func(string) (string, bool) {
	return func(p string) (string, bool) {
		u, ok := m[p]
		return u, ok
	}
}

func parseWith(t *testing.T, src string, rc *RenderContext) *Doc {
	t.Helper()
	doc, err := New().Parse([]byte(src), rc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func TestRewriteLinks(t *testing.T) {
	pages := map[string]string{
		"index.md":          "/",
		"usage.md":          "/usage/",
		"examples/scp.md":   "/examples/scp/",
		"examples/shell.md": "/examples/shell/",
	}

	tests := []struct {
		name   string
		source string
		url    string
		md     string
		want   string
	}{
		{
			"same dir", "usage.md", "/usage/",
			"[scp](examples/scp.md)", `href="../examples/scp/"`,
		},
		{
			"sibling in section", "examples/scp.md", "/examples/scp/",
			"[shell](shell.md)", `href="../shell/"`,
		},
		{
			"up to parent", "examples/scp.md", "/examples/scp/",
			"[usage](../usage.md)", `href="../../usage/"`,
		},
		{
			"to homepage", "examples/scp.md", "/examples/scp/",
			"[home](../index.md)", `href="../../"`,
		},
		{
			"anchor carried", "usage.md", "/usage/",
			"[shell](examples/shell.md#prompt)", `href="../examples/shell/#prompt"`,
		},
		{
			"same page anchor", "usage.md", "/usage/",
			"[top](usage.md#top)", `href="#top"`,
		},
		{
			"external untouched", "usage.md", "/usage/",
			"[gh](https://github.com/NetworkAutomation/jaide)", `href="https://github.com/NetworkAutomation/jaide"`,
		},
		{
			"mailto untouched", "usage.md", "/usage/",
			"[mail](mailto:owner@example.com)", `href="mailto:owner@example.com"`,
		},
		{
			"site absolute untouched", "usage.md", "/usage/",
			"[raw](/legacy.html)", `href="/legacy.html"`,
		},
		{
			"fragment only untouched", "usage.md", "/usage/",
			"[sec](#section)", `href="#section"`,
		},
		{
			"asset relative", "examples/scp.md", "/examples/scp/",
			"![diagram](../img/flow.png)", `src="../../img/flow.png"`,
		},
		{
			"asset same dir", "usage.md", "/usage/",
			"![shot](img/shot.png)", `src="../img/shot.png"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc := &RenderContext{
				SourcePath: tt.source,
				PageURL:    tt.url,
				Resolve:    resolver(pages),
			}
			doc := parseWith(t, tt.md, rc)
			if !strings.Contains(string(doc.HTML), tt.want) {
				t.Errorf("expected %s in output:\n%s", tt.want, doc.HTML)
			}
			if len(doc.Warnings) != 0 {
				t.Errorf("unexpected warnings %v", doc.Warnings)
			}
		})
	}
}

func TestRewriteUnknownTarget(t *testing.T) {
	rc := &RenderContext{
		SourcePath: "usage.md",
		PageURL:    "/usage/",
		Resolve:    resolver(map[string]string{}),
	}
	doc := parseWith(t, "[gone](missing.md)", rc)
	if !strings.Contains(string(doc.HTML), `href="missing.md"`) {
		t.Errorf("expected unknown link kept, got:\n%s", doc.HTML)
	}
	if len(doc.Warnings) != 1 || !strings.Contains(doc.Warnings[0], "missing.md") {
		t.Errorf("expected warning naming the link, got %v", doc.Warnings)
	}
}

func TestRewriteEscapingLink(t *testing.T) {
	rc := &RenderContext{
		SourcePath: "usage.md",
		PageURL:    "/usage/",
		Resolve:    resolver(map[string]string{}),
	}
	doc := parseWith(t, "[out](../../etc/passwd.md)", rc)
	if len(doc.Warnings) != 1 || !strings.Contains(doc.Warnings[0], "escapes") {
		t.Errorf("expected escape warning, got %v", doc.Warnings)
	}
}

func TestRelativeURL(t *testing.T) {
	tests := []struct {
		from string
		to   string
		want string
	}{
		{"/", "/usage/", "usage/"},
		{"/usage/", "/", "../"},
		{"/usage/", "/usage/", "./"},
		{"/usage/", "/examples/scp/", "../examples/scp/"},
		{"/examples/scp/", "/examples/shell/", "../shell/"},
		{"/examples/scp/", "/examples/", "../"},
		{"/examples/scp/", "/img/a.png", "../../img/a.png"},
		{"/usage.html", "/examples/scp.html", "examples/scp.html"},
		{"/examples/scp.html", "/usage.html", "../usage.html"},
		{"/", "/", "./"},
	}
	for _, tt := range tests {
		if got := relativeURL(tt.from, tt.to); got != tt.want {
			t.Errorf("relativeURL(%q, %q) = %q, expected %q", tt.from, tt.to, got, tt.want)
		}
	}
}
