package search

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// StripHTML reduces a rendered page body to searchable plain text. Script
// and style content is dropped, everything else keeps one space between
// runs.
func StripHTML(fragment []byte) (string, error) {
	doc, err := html.Parse(bytes.NewReader(fragment))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style":
				return
			}
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return collapse(sb.String()), nil
}
