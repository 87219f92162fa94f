package config

import (
	"bytes"
	"fmt"
	"io"

	"github.com/dgallion1/docsite/internal/fsutil"
	"gopkg.in/yaml.v3"
)

// Encode writes the config as YAML. A config that came from Parse or Load is
// written from its retained document node, preserving key order, comments,
// and flow styles. A config built in code is synthesized with defaults
// omitted.
func (c *Config) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	var err error
	if c.doc != nil {
		err = enc.Encode(c.doc)
	} else {
		err = enc.Encode(c.fileView())
	}
	if cerr := enc.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

// Save writes the config to path atomically.
func (c *Config) Save(path string) error {
	var buf bytes.Buffer
	if err := c.Encode(&buf); err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(path, buf.Bytes())
}

func (c *Config) fileView() *fileConfig {
	fv := &fileConfig{
		SiteName:        c.SiteName,
		SiteURL:         c.SiteURL,
		SiteDescription: c.SiteDescription,
		SiteAuthor:      c.SiteAuthor,
		SiteFavicon:     c.SiteFavicon,
		RepoURL:         c.RepoURL,
		RepoName:        c.RepoName,
		Copyright:       c.Copyright,
		Pages:           entryList(c.Pages),
		ThemeDir:        c.ThemeDir,
		Strict:          c.Strict,
		ExtraCSS:        c.ExtraCSS,
		ExtraJavascript: c.ExtraJavascript,
	}
	if c.RepoName == deriveRepoName(c.RepoURL) {
		fv.RepoName = ""
	}
	if c.Theme != DefaultTheme {
		fv.Theme = c.Theme
	}
	if c.DocsDir != DefaultDocsDir {
		fv.DocsDir = c.DocsDir
	}
	if c.SiteDir != DefaultSiteDir {
		fv.SiteDir = c.SiteDir
	}
	if c.DevAddr != DefaultDevAddr {
		fv.DevAddr = c.DevAddr
	}
	if !c.UseDirectoryURLs {
		f := false
		fv.UseDirectoryURLs = &f
	}
	return fv
}
