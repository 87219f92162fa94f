package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Parse decodes a config document. The document node is kept on the returned
// Config so Encode can reproduce the file byte-for-byte in structure.
func Parse(data []byte) (*Config, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, errors.New("config file is empty")
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("config root must be a mapping, got %s", kindName(root.Kind))
	}

	var raw fileConfig
	if err := root.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg := New()
	cfg.SiteName = raw.SiteName
	cfg.SiteURL = raw.SiteURL
	cfg.SiteDescription = raw.SiteDescription
	cfg.SiteAuthor = raw.SiteAuthor
	cfg.SiteFavicon = raw.SiteFavicon
	cfg.RepoURL = raw.RepoURL
	cfg.RepoName = raw.RepoName
	cfg.Copyright = raw.Copyright
	cfg.Pages = []Entry(raw.Pages)
	cfg.Strict = raw.Strict
	cfg.ExtraCSS = raw.ExtraCSS
	cfg.ExtraJavascript = raw.ExtraJavascript
	if raw.Theme != "" {
		cfg.Theme = raw.Theme
	}
	cfg.ThemeDir = raw.ThemeDir
	if raw.DocsDir != "" {
		cfg.DocsDir = raw.DocsDir
	}
	if raw.SiteDir != "" {
		cfg.SiteDir = raw.SiteDir
	}
	if raw.DevAddr != "" {
		cfg.DevAddr = raw.DevAddr
	}
	if raw.UseDirectoryURLs != nil {
		cfg.UseDirectoryURLs = *raw.UseDirectoryURLs
	}
	if cfg.RepoName == "" && cfg.RepoURL != "" {
		cfg.RepoName = deriveRepoName(cfg.RepoURL)
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i]
		if key.Kind == yaml.ScalarNode && !knownKeys[key.Value] {
			cfg.Warnings = append(cfg.Warnings,
				fmt.Sprintf("line %d: unrecognized key %q", key.Line, key.Value))
		}
	}

	cfg.doc = &doc
	return cfg, nil
}

// Load reads and parses the config at path and applies environment
// overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}
	cfg.ConfigDir = filepath.Dir(abs)
	cfg.ConfigFile = abs
	cfg.applyEnv()
	return cfg, nil
}

// LoadDir finds and loads the config in dir, trying each candidate file name
// in order.
func LoadDir(dir string) (*Config, error) {
	for _, name := range Candidates {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return nil, fmt.Errorf("no config file found in %s (tried %v)", dir, Candidates)
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
