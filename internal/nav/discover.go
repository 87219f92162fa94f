package nav

import (
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dgallion1/docsite/internal/config"
)

// Discover synthesizes a pages list from the docs directory when the config
// has none: the index page first, then top-level pages, then one section per
// subdirectory, alphabetical within each group. Titles are left to be
// derived so page headings can take over.
func Discover(docsDir string) ([]config.Entry, error) {
	var paths []string
	err := filepath.WalkDir(docsDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != docsDir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(d.Name()))
		if ext != ".md" && ext != ".markdown" {
			return nil
		}
		rel, err := filepath.Rel(docsDir, p)
		if err != nil {
			return err
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	paths = dropShadowedReadmes(paths)

	sort.Slice(paths, func(i, j int) bool {
		ri, rj := discoverRank(paths[i]), discoverRank(paths[j])
		if ri != rj {
			return ri < rj
		}
		if ki, kj := discoverKey(paths[i]), discoverKey(paths[j]); ki != kj {
			return ki < kj
		}
		return paths[i] < paths[j]
	})

	entries := make([]config.Entry, 0, len(paths))
	for _, p := range paths {
		e := config.Entry{Path: p}
		if dir := path.Dir(p); dir != "." {
			top, _, _ := strings.Cut(dir, "/")
			e.Section = SectionTitle(top)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// dropShadowedReadmes removes a directory's readme when an index file is
// present too; both would claim the same output location, and index wins.
func dropShadowedReadmes(paths []string) []string {
	hasIndex := make(map[string]bool)
	for _, p := range paths {
		dir, base := path.Split(p)
		stem := strings.TrimSuffix(base, path.Ext(base))
		if strings.EqualFold(stem, "index") {
			hasIndex[dir] = true
		}
	}
	if len(hasIndex) == 0 {
		return paths
	}
	kept := paths[:0]
	for _, p := range paths {
		dir, base := path.Split(p)
		stem := strings.TrimSuffix(base, path.Ext(base))
		if strings.EqualFold(stem, "readme") && hasIndex[dir] {
			continue
		}
		kept = append(kept, p)
	}
	return kept
}

// discoverRank orders the homepage before loose pages before sections.
func discoverRank(p string) int {
	stem := strings.TrimSuffix(p, path.Ext(p))
	if isIndexFile(stem) {
		return 0
	}
	if !strings.Contains(p, "/") {
		return 1
	}
	return 2
}

// discoverKey sorts a directory's index page ahead of its siblings.
func discoverKey(p string) string {
	dir, base := path.Split(p)
	stem := strings.TrimSuffix(base, path.Ext(base))
	if isIndexFile(stem) {
		return dir
	}
	return p
}
