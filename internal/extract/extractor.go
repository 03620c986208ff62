package extract

import (
	"fmt"
	"strings"

	"github.com/lukman83/vinted-relist/internal/models"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// ExtractionError means the page markup could not be processed at all.
// Individual missing fields never produce one.
type ExtractionError struct {
	Reason string
}

func (e *ExtractionError) Error() string {
	return "extraction failed: " + e.Reason
}

// ExtractListingFields scrapes the human-readable listing fields out of a
// rendered item page. Every field is independently best-effort: a missing
// element empties that field and records it in Missing, it never fails the
// whole extraction. Only unparsable markup is an error.
func ExtractListingFields(htmlContent string, log *zap.Logger) (models.ListingFields, error) {
	if log == nil {
		log = zap.NewNop()
	}

	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return models.ListingFields{}, &ExtractionError{Reason: fmt.Sprintf("parse html: %v", err)}
	}

	fields := models.ListingFields{
		Title:       textOf(findByAttr(doc, "data-testid", "item-page-summary-plugin", "h1")),
		Description: firstChildText(findItemprop(doc, "description", "div")),
		Brand:       textOf(findItemprop(doc, "name", "span")),
		Size:        textOf(childSpan(findItemprop(doc, "size", "div"))),
		Condition:   textOf(childSpan(findItemprop(doc, "status", "div"))),
		Colors:      textOf(findItemprop(doc, "color", "div")),
		Category:    extractCategory(doc),
	}

	for name, value := range map[string]string{
		"title":       fields.Title,
		"description": fields.Description,
		"brand":       fields.Brand,
		"size":        fields.Size,
		"condition":   fields.Condition,
		"colors":      fields.Colors,
		"category":    fields.Category,
	} {
		if value == "" {
			fields.Missing = append(fields.Missing, name)
		}
	}
	if len(fields.Missing) > 0 {
		log.Warn("fields missing during extraction", zap.Strings("fields", fields.Missing))
	}

	return fields, nil
}

// extractCategory walks the breadcrumb list and takes the last crumb. The
// displayed label often bakes the brand in as its first word ("Nike
// Sneakers"), so for multi-word labels the first token is stripped.
func extractCategory(doc *html.Node) string {
	var crumbs []string
	walk(doc, func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "li" {
			if span := findItemprop(n, "title", "span"); span != nil {
				if t := textOf(span); t != "" {
					crumbs = append(crumbs, t)
				}
			}
		}
	})
	if len(crumbs) == 0 {
		return ""
	}

	label := crumbs[len(crumbs)-1]
	words := strings.Fields(label)
	if len(words) <= 1 {
		return label
	}
	return strings.Join(words[1:], " ")
}

// scriptContents collects the text of every script tag in the page.
func scriptContents(htmlContent string) []string {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return nil
	}

	var scripts []string
	walk(doc, func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "script" && n.FirstChild != nil {
			scripts = append(scripts, n.FirstChild.Data)
		}
	})
	return scripts
}

func walk(n *html.Node, visit func(*html.Node)) {
	visit(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

func attrVal(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// findByAttr locates the first element with attr=value, then optionally the
// first descendant with the given tag inside it.
func findByAttr(root *html.Node, attr, value, childTag string) *html.Node {
	var container *html.Node
	walk(root, func(n *html.Node) {
		if container == nil && n.Type == html.ElementNode && attrVal(n, attr) == value {
			container = n
		}
	})
	if container == nil || childTag == "" {
		return container
	}

	var child *html.Node
	walk(container, func(n *html.Node) {
		if child == nil && n.Type == html.ElementNode && n.Data == childTag && n != container {
			child = n
		}
	})
	return child
}

// findItemprop locates the first <tag itemprop="name"> element.
func findItemprop(root *html.Node, name, tag string) *html.Node {
	var found *html.Node
	walk(root, func(n *html.Node) {
		if found == nil && n.Type == html.ElementNode && n.Data == tag && attrVal(n, "itemprop") == name {
			found = n
		}
	})
	return found
}

// childSpan returns the first direct span child, the shape the size and
// condition fields use.
func childSpan(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "span" {
			return c
		}
	}
	return nil
}

// textOf returns the trimmed text content of a node and its descendants.
func textOf(n *html.Node) string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	walk(n, func(c *html.Node) {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	})
	return strings.TrimSpace(sb.String())
}

// firstChildText returns only the node's first text child, trimmed. The
// description block nests seller metadata after the text, so the full
// subtree text would over-collect.
func firstChildText(n *html.Node) string {
	if n == nil || n.FirstChild == nil {
		return ""
	}
	c := n.FirstChild
	if c.Type == html.TextNode {
		return strings.TrimSpace(c.Data)
	}
	return strings.TrimSpace(textOf(c))
}
