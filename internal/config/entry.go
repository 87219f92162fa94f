package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Entry is a single navigation entry from the pages list: a docs-relative
// source path plus an optional display title and section grouping.
//
// The YAML forms accepted, in order of the elements:
//
//	- 'usage.md'                           path only, title derived
//	- ['usage.md']                         same
//	- ['usage.md', 'Usage']                path and title
//	- ['ex/scp.md', 'Examples', 'SCP']     path, section header, title
type Entry struct {
	Path    string
	Title   string
	Section string
}

// HasExplicitTitle reports whether the entry carries a title from the config
// file rather than one derived from the page itself.
func (e Entry) HasExplicitTitle() bool {
	return e.Title != ""
}

// entryList decodes the pages sequence one entry at a time so a bad entry is
// reported by its position in the list as well as its line.
type entryList []Entry

func (l *entryList) UnmarshalYAML(value *yaml.Node) error {
	if value.ShortTag() == "!!null" {
		*l = nil
		return nil
	}
	if value.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: pages must be a sequence", value.Line)
	}
	entries := make([]Entry, len(value.Content))
	for i, node := range value.Content {
		if err := node.Decode(&entries[i]); err != nil {
			return fmt.Errorf("pages[%d]: %w", i, err)
		}
	}
	*l = entries
	return nil
}

func (e *Entry) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		return value.Decode(&e.Path)
	case yaml.SequenceNode:
		var parts []string
		if err := value.Decode(&parts); err != nil {
			return fmt.Errorf("line %d: navigation entry must contain only strings", value.Line)
		}
		switch len(parts) {
		case 1:
			e.Path = parts[0]
		case 2:
			e.Path, e.Title = parts[0], parts[1]
		case 3:
			e.Path, e.Section, e.Title = parts[0], parts[1], parts[2]
		default:
			return fmt.Errorf("line %d: navigation entry has %d elements, expected 1 to 3", value.Line, len(parts))
		}
		return nil
	default:
		return fmt.Errorf("line %d: navigation entry must be a string or a sequence of strings", value.Line)
	}
}

// MarshalYAML renders the entry in the flow style used by hand-written
// configs: ['path', 'Section', 'Title'].
func (e Entry) MarshalYAML() (interface{}, error) {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	add := func(s string) {
		seq.Content = append(seq.Content, &yaml.Node{
			Kind:  yaml.ScalarNode,
			Style: yaml.SingleQuotedStyle,
			Value: s,
		})
	}
	add(e.Path)
	if e.Section != "" {
		add(e.Section)
	}
	if e.Title != "" || e.Section != "" {
		add(e.Title)
	}
	return seq, nil
}
