package docs

import (
	"strings"

	"golang.org/x/net/html"
)

// CleanText collapses every run of whitespace, newlines included, to a single
// space and trims the result. It is idempotent.
func CleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// SplitSections converts a rendered HTML fragment into an ordered sequence of
// heading-delimited sections. The fragment is wrapped in a minimal document
// shell before parsing; bare fragments are not guaranteed to expose heading
// elements as body children. Content before the first heading is dropped, as
// is a heading immediately displaced by another heading with no body between
// them (the last heading of the document survives with an empty body).
func SplitSections(fragment string) []Section {
	doc, err := html.Parse(strings.NewReader("<html><body>" + fragment + "</body></html>"))
	if err != nil {
		return nil
	}

	body := findBody(doc)
	if body == nil {
		return nil
	}

	var sections []Section
	var current Section
	var bodyLines []string

	flush := func(force bool) {
		current.Body = CleanText(strings.Join(bodyLines, "\n"))
		if current.Heading != "" && (current.Body != "" || force) {
			sections = append(sections, current)
		}
		bodyLines = nil
	}

	for node := body.FirstChild; node != nil; node = node.NextSibling {
		if level := headingLevel(node); level > 0 {
			flush(false)
			current = Section{Heading: CleanText(textContent(node)), Level: level}
			continue
		}
		if text := textContent(node); text != "" {
			bodyLines = append(bodyLines, text)
		}
	}
	flush(true)

	return sections
}

// headingLevel returns 1-6 for h1-h6 element nodes and 0 otherwise.
func headingLevel(n *html.Node) int {
	if n.Type != html.ElementNode || len(n.Data) != 2 {
		return 0
	}
	if n.Data[0] != 'h' || n.Data[1] < '1' || n.Data[1] > '6' {
		return 0
	}
	return int(n.Data[1] - '0')
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if body := findBody(child); body != nil {
			return body
		}
	}
	return nil
}

// textContent collects the text nodes beneath n, newline-joined so block
// boundaries still separate words after whitespace normalization.
func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}

	var parts []string
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if text := textContent(child); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}
