package doctree

// DocTree is the structural outline of a single documentation page.
type DocTree struct {
	Title    string     `json:"title"`              // Page title (explicit, first heading, or filename-derived)
	Children []*DocNode `json:"children,omitempty"` // Top-level sections in source order
}

// DocNode is a recursive section within a page.
type DocNode struct {
	Title    string     `json:"title,omitempty"` // Heading text (empty for text before any heading)
	ID       string     `json:"id,omitempty"`    // Heading anchor, e.g. "getting-started"
	Level    int        `json:"level,omitempty"` // Heading level 1-6 (0 for untitled body nodes)
	Text     string     `json:"text,omitempty"`  // Plain text content belonging to this node
	Children []*DocNode `json:"children,omitempty"`
}

// FirstHeading returns the first titled node in document order, or nil.
func (t *DocTree) FirstHeading() *DocNode {
	var find func(nodes []*DocNode) *DocNode
	find = func(nodes []*DocNode) *DocNode {
		for _, n := range nodes {
			if n.Title != "" {
				return n
			}
			if got := find(n.Children); got != nil {
				return got
			}
		}
		return nil
	}
	return find(t.Children)
}
