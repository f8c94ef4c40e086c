package htmlutil

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var innerWhitespace = regexp.MustCompile(`[ \t]+`)
var blankLines = regexp.MustCompile(`\n\s*\n+`)

// block elements that should break the line in the text rendering
func breaksLine(node *html.Node) bool {
	if node.Type != html.ElementNode {
		return false
	}
	switch node.Data {
	case "br", "p", "div", "li":
		return true
	}
	return false
}

func collectText(node *html.Node, out *strings.Builder) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		out.WriteString(node.Data)
		return
	}
	if breaksLine(node) {
		out.WriteString("\n")
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		collectText(child, out)
	}
}

func stripNonPrintable(s string) string {
	return strings.Map(func(c rune) rune {
		if unicode.IsPrint(c) || c == '\n' {
			return c
		}
		return -1
	}, s)
}

// Textify renders a fragment of scraped HTML (product descriptions,
// seller signatures) as plain text fit for a terminal. Non-HTML input
// comes back unchanged apart from whitespace normalization.
func Textify(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.TrimSpace(fragment)
	}

	var text strings.Builder
	if len(doc.Nodes) > 0 {
		collectText(doc.Nodes[0], &text)
	}

	out := stripNonPrintable(text.String())
	out = innerWhitespace.ReplaceAllString(out, " ")
	out = blankLines.ReplaceAllString(out, "\n")
	return strings.TrimSpace(out)
}
