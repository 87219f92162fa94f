// Package search builds the static search index served next to the site.
// The index holds one record per page and one per linkable section, in the
// docs-style shape {"docs": [{"location", "title", "text"}]} that the theme
// search script queries.
package search

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dgallion1/docsite/internal/doctree"
)

type Record struct {
	Location string `json:"location"`
	Title    string `json:"title"`
	Text     string `json:"text"`
}

type Index struct {
	Docs []Record `json:"docs"`
}

// Page is one rendered page to index.
type Page struct {
	URL   string
	Title string
	HTML  []byte
	Tree  *doctree.DocTree
}

// BuildIndex assembles the index in page order. Section records follow their
// page and point at its heading anchors.
func BuildIndex(pages []Page) (*Index, error) {
	idx := &Index{Docs: []Record{}}
	for _, p := range pages {
		text, err := StripHTML(p.HTML)
		if err != nil {
			return nil, fmt.Errorf("index %s: %w", p.URL, err)
		}
		idx.Docs = append(idx.Docs, Record{
			Location: p.URL,
			Title:    p.Title,
			Text:     text,
		})
		if p.Tree != nil {
			addSections(idx, p.URL, p.Tree.Children)
		}
	}
	return idx, nil
}

func addSections(idx *Index, pageURL string, nodes []*doctree.DocNode) {
	for _, n := range nodes {
		if n.ID != "" {
			idx.Docs = append(idx.Docs, Record{
				Location: pageURL + "#" + n.ID,
				Title:    n.Title,
				Text:     collapse(n.Text),
			})
		}
		addSections(idx, pageURL, n.Children)
	}
}

// JSON renders the index for writing to search_index.json.
func (ix *Index) JSON() ([]byte, error) {
	return json.Marshal(ix)
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
