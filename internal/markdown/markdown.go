// Package markdown renders page sources to HTML and extracts the structure
// the rest of the build needs: frontmatter, the heading tree, and the first
// top-level heading. Relative links between pages are rewritten to their
// built locations while the AST is still in hand.
package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/dgallion1/docsite/internal/doctree"
)

// Meta is the recognized frontmatter block at the top of a page.
type Meta struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// Doc is one parsed page.
type Doc struct {
	Meta Meta

	// Title is the opening heading's text when that heading is level 1,
	// empty when the page starts with a deeper heading or none at all.
	Title string

	// HTML is the rendered body, links already rewritten.
	HTML []byte

	// Tree is the heading hierarchy with per-section text.
	Tree *doctree.DocTree

	// Warnings collected while rewriting links.
	Warnings []string
}

type Parser struct {
	md goldmark.Markdown
}

func New() *Parser {
	return &Parser{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
				parser.WithASTTransformers(util.Prioritized(linkTransformer{}, 100)),
			),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
}

// Parse renders one page. rc supplies the page's location for link
// rewriting; with a nil rc links are left untouched.
func (p *Parser) Parse(source []byte, rc *RenderContext) (*Doc, error) {
	var meta Meta
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return nil, fmt.Errorf("frontmatter: %w", err)
	}

	ctx := parser.NewContext()
	if rc != nil {
		ctx.Set(renderContextKey, rc)
	}
	root := p.md.Parser().Parse(text.NewReader(body), parser.WithContext(ctx))

	var buf bytes.Buffer
	if err := p.md.Renderer().Render(&buf, body, root); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}

	tree := headingTree(root, body)
	doc := &Doc{
		Meta: meta,
		HTML: buf.Bytes(),
		Tree: tree,
	}
	if h := tree.FirstHeading(); h != nil && h.Level == 1 {
		doc.Title = h.Title
	}
	tree.Title = doc.Title
	if rc != nil {
		doc.Warnings = rc.Warnings
	}
	return doc, nil
}

// headingTree walks the top-level blocks once, nesting headings by level and
// attaching each block's text to the nearest open section.
func headingTree(root ast.Node, source []byte) *doctree.DocTree {
	tree := &doctree.DocTree{}
	var stack []*doctree.DocNode

	for c := root.FirstChild(); c != nil; c = c.NextSibling() {
		h, ok := c.(*ast.Heading)
		if !ok {
			if len(stack) == 0 {
				continue
			}
			appendText(stack[len(stack)-1], textOf(c, source))
			continue
		}

		node := &doctree.DocNode{
			Title: textOf(h, source),
			Level: h.Level,
		}
		if id, ok := h.AttributeString("id"); ok {
			if b, ok := id.([]byte); ok {
				node.ID = string(b)
			}
		}
		for len(stack) > 0 && stack[len(stack)-1].Level >= h.Level {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			tree.Children = append(tree.Children, node)
		} else {
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, node)
		}
		stack = append(stack, node)
	}

	return tree
}

func appendText(n *doctree.DocNode, txt string) {
	txt = strings.TrimSpace(txt)
	if txt == "" {
		return
	}
	if n.Text != "" {
		n.Text += "\n"
	}
	n.Text += txt
}

// textOf flattens a node's inline and code content to plain text.
func textOf(n ast.Node, source []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(t.Value)
		case *ast.FencedCodeBlock:
			writeLines(&sb, t.Lines(), source)
		case *ast.CodeBlock:
			writeLines(&sb, t.Lines(), source)
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}

func writeLines(sb *strings.Builder, lines *text.Segments, source []byte) {
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		sb.Write(line.Value(source))
	}
}
