package fsutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfineRelPath_Valid(t *testing.T) {
	root := t.TempDir()

	tests := []struct {
		rel  string
		want string
	}{
		{"index.md", "index.md"},
		{"examples/basic.md", "examples/basic.md"},
		{"a/../b.md", "b.md"},
		{"./usage.md", "usage.md"},
	}
	for _, tt := range tests {
		got, err := ConfineRelPath(root, tt.rel)
		if err != nil {
			t.Errorf("ConfineRelPath(%q): unexpected error: %v", tt.rel, err)
			continue
		}
		if !strings.HasSuffix(got, tt.want) {
			t.Errorf("ConfineRelPath(%q) = %q, expected suffix %q", tt.rel, got, tt.want)
		}
	}
}

func TestConfineRelPath_Rejected(t *testing.T) {
	root := t.TempDir()

	tests := []string{
		"../escape.md",
		"..",
		"a/../../escape.md",
		"/etc/passwd",
		"docs\\evil.md",
	}
	for _, rel := range tests {
		if _, err := ConfineRelPath(root, rel); err == nil {
			t.Errorf("ConfineRelPath(%q): expected error, got nil", rel)
		}
	}
}

func TestConfineRelPath_SymlinkEscape(t *testing.T) {
	outside := t.TempDir()
	root := t.TempDir()

	link := filepath.Join(root, "sneaky")
	if err := os.Symlink(outside, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	if _, err := ConfineRelPath(root, "sneaky"); err == nil {
		t.Error("expected symlink escape to be rejected, got nil error")
	}
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "index.html")

	if err := WriteFileAtomic(path, []byte("<html>hello</html>")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "<html>hello</html>" {
		t.Errorf("expected written content, got %q", data)
	}

	// Overwrite must replace, not append.
	if err := WriteFileAtomic(path, []byte("v2")); err != nil {
		t.Fatalf("unexpected error on overwrite: %v", err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != "v2" {
		t.Errorf("expected overwritten content, got %q", data)
	}
}

func TestCopyDir_WithFilter(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()

	writeFile(t, filepath.Join(src, "index.md"), "# hi")
	writeFile(t, filepath.Join(src, "img", "logo.png"), "png-bytes")
	writeFile(t, filepath.Join(src, "img", "notes.md"), "# nested")
	writeFile(t, filepath.Join(src, ".drafts", "wip.png"), "hidden")

	n, err := CopyDir(src, dst, func(rel string, d fs.DirEntry) bool {
		return !strings.HasPrefix(d.Name(), ".") && !strings.HasSuffix(rel, ".md")
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 file copied, got %d", n)
	}

	if _, err := os.Stat(filepath.Join(dst, "img", "logo.png")); err != nil {
		t.Errorf("expected logo.png to be copied: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dst, "index.md")); !os.IsNotExist(err) {
		t.Error("expected index.md to be filtered out")
	}
	if _, err := os.Stat(filepath.Join(dst, "img", "notes.md")); !os.IsNotExist(err) {
		t.Error("expected nested markdown to be filtered out")
	}
	if _, err := os.Stat(filepath.Join(dst, ".drafts")); !os.IsNotExist(err) {
		t.Error("expected rejected directory to be pruned")
	}
}

func TestCopyDir_NoFilter(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()

	writeFile(t, filepath.Join(src, "a.txt"), "a")
	writeFile(t, filepath.Join(src, "deep", "b.txt"), "b")

	n, err := CopyDir(src, dst, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 files copied, got %d", n)
	}
	data, err := os.ReadFile(filepath.Join(dst, "deep", "b.txt"))
	if err != nil || string(data) != "b" {
		t.Errorf("expected nested copy, got %q err %v", data, err)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
