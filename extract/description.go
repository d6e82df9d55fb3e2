package extract

import (
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	xhtml "golang.org/x/net/html"

	"statuswatch/types"
)

// Statuspage-style feed descriptions list components as
// "<li>Service Name (Degraded performance)</li>".
var liPairRe = regexp.MustCompile(`^(.+?)\s*\(([^)]+)\)$`)

// DescriptionHTML parses a feed item's description markup and returns one
// candidate per recognized "service: status" pair. Two shapes are
// recognized: list items with a parenthesized status, and bold run-in
// labels ("<b>Service:</b> status text"). Pairs missing either half are
// skipped; unparseable markup yields an empty list.
func DescriptionHTML(fragment string) []types.Candidate {
	if strings.TrimSpace(fragment) == "" {
		return nil
	}

	// Feed descriptions usually arrive entity-escaped.
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html.UnescapeString(fragment)))
	if err != nil {
		return nil
	}

	var candidates []types.Candidate

	doc.Find("li").Each(func(_ int, sel *goquery.Selection) {
		m := liPairRe.FindStringSubmatch(collapseSpace(sel.Text()))
		if m == nil {
			return
		}
		service, status := strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
		if service == "" || status == "" {
			return
		}
		candidates = append(candidates, types.Candidate{Service: service, Status: status})
	})

	doc.Find("b, strong").Each(func(_ int, sel *goquery.Selection) {
		label := collapseSpace(sel.Text())
		if !strings.HasSuffix(label, ":") {
			return
		}
		service := strings.TrimSpace(strings.TrimSuffix(label, ":"))
		status := followingText(sel)
		if service == "" || status == "" {
			return
		}
		candidates = append(candidates, types.Candidate{Service: service, Status: status})
	})

	return candidates
}

// followingText collects the text that runs on after a label element, up
// to the next element boundary.
func followingText(sel *goquery.Selection) string {
	if len(sel.Nodes) == 0 {
		return ""
	}
	var parts []string
	for n := sel.Nodes[0].NextSibling; n != nil; n = n.NextSibling {
		if n.Type == xhtml.ElementNode && n.Data != "a" && n.Data != "span" {
			break
		}
		parts = append(parts, nodeText(n))
	}
	return collapseSpace(strings.Join(parts, " "))
}

func nodeText(n *xhtml.Node) string {
	if n.Type == xhtml.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(nodeText(c))
	}
	return sb.String()
}
