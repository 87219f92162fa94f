package nav

import (
	"path"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TitleFromPath derives a display title from a source file name: the
// top-level index page becomes Home, a nested index page takes its directory
// name, and everything else uses the file stem with dashes and underscores
// as word breaks. All-lowercase names are title cased, names with their own
// capitalization keep it.
func TitleFromPath(sourcePath string) string {
	src := path.Clean(filepathToSlash(sourcePath))
	stem := strings.TrimSuffix(src, path.Ext(src))
	dir, base := path.Split(stem)
	dir = strings.TrimSuffix(dir, "/")

	if isIndexFile(base) {
		if dir == "" {
			return "Home"
		}
		base = path.Base(dir)
	}
	return humanize(base)
}

// SectionTitle derives a section header from a directory name.
func SectionTitle(dirName string) string {
	return humanize(dirName)
}

func humanize(name string) string {
	t := strings.NewReplacer("-", " ", "_", " ").Replace(name)
	t = strings.Join(strings.Fields(t), " ")
	if t == "" {
		return "Untitled"
	}
	if t == strings.ToLower(t) {
		t = cases.Title(language.English).String(t)
	}
	return t
}
