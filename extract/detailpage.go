package extract

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	xhtml "golang.org/x/net/html"

	"statuswatch/types"
)

// Variant selects a known incident-detail page layout. The set is closed;
// adapters declare at most one variant per provider.
type Variant string

const (
	// VariantNone disables the detail-page tier for a provider.
	VariantNone Variant = ""
	// VariantStatuspage covers Atlassian-Statuspage-style pages that state
	// "This incident affected: A, B, and C."
	VariantStatuspage Variant = "statuspage"
	// VariantBetterstack covers Better-Stack-style pages with an
	// "Affected services" block.
	VariantBetterstack Variant = "betterstack"
)

// DetailPage extracts affected services from already-fetched incident
// detail markup using the declared layout variant. The item title serves
// as the status text for every candidate, since detail pages report
// membership, not per-service status. Unknown variants and unparseable
// pages yield an empty list.
func DetailPage(pageHTML, pageURL, title string, variant Variant) []types.Candidate {
	if strings.TrimSpace(pageHTML) == "" || strings.TrimSpace(title) == "" {
		return nil
	}

	var services []string
	switch variant {
	case VariantStatuspage:
		services = statuspageServices(pageHTML, pageURL)
	case VariantBetterstack:
		services = betterstackServices(pageHTML)
	default:
		return nil
	}

	candidates := make([]types.Candidate, 0, len(services))
	for _, svc := range services {
		candidates = append(candidates, types.Candidate{Service: svc, Status: title})
	}
	return candidates
}

var sentenceEndRe = regexp.MustCompile(`\.(\s|$)`)

// statuspageServices recovers the readable page text and scans it for the
// "this incident affected:" sentence. Falls back to the page heading when
// the sentence is absent, matching how these pages title single-component
// incidents.
func statuspageServices(pageHTML, pageURL string) []string {
	text := readableText(pageHTML, pageURL)
	// ASCII-only lowering: full Unicode case mapping can change byte
	// length, which would desync offsets between lower and text.
	lower := asciiLower(text)

	const marker = "this incident affected:"
	if idx := strings.Index(lower, marker); idx >= 0 {
		rest := text[idx+len(marker):]
		if end := strings.IndexByte(rest, '\n'); end >= 0 {
			rest = rest[:end]
		}
		// Cut at a sentence-ending period, not at dots inside names like
		// "claude.ai".
		if loc := sentenceEndRe.FindStringIndex(rest); loc != nil {
			rest = rest[:loc[0]]
		}
		return splitServiceList(rest)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return nil
	}
	if heading := collapseSpace(doc.Find("h1").First().Text()); heading != "" {
		return []string{heading}
	}
	return nil
}

// readableText runs the page through readability to strip chrome and
// scripts; if that fails the raw markup text is used instead.
func readableText(pageHTML, pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil || u == nil {
		u = &url.URL{}
	}
	article, err := readability.FromReader(strings.NewReader(pageHTML), u)
	if err == nil && strings.TrimSpace(article.TextContent) != "" {
		return article.TextContent
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return ""
	}
	return doc.Text()
}

func asciiLower(s string) string {
	return strings.Map(func(r rune) rune {
		if 'A' <= r && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}, s)
}

// splitServiceList parses "A, B, and C" into its parts.
func splitServiceList(s string) []string {
	s = strings.ReplaceAll(s, " and ", ", ")
	var services []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSuffix(collapseSpace(part), ".")
		if part != "" {
			services = append(services, part)
		}
	}
	return services
}

// betterstackServices walks the page text nodes in document order and
// collects the entry following each "Affected services" label.
func betterstackServices(pageHTML string) []string {
	root, err := xhtml.Parse(strings.NewReader(pageHTML))
	if err != nil {
		return nil
	}

	var texts []string
	var walk func(n *xhtml.Node)
	walk = func(n *xhtml.Node) {
		if n.Type == xhtml.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == xhtml.TextNode {
			if t := collapseSpace(n.Data); t != "" {
				texts = append(texts, t)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	seen := make(map[string]bool)
	var services []string
	for i := 0; i < len(texts); i++ {
		if texts[i] != "Affected services" {
			continue
		}
		for j := i + 1; j < len(texts); j++ {
			candidate := texts[j]
			if candidate == "* * *" || candidate == "*" || candidate == "Affected services" {
				continue
			}
			if !seen[candidate] {
				seen[candidate] = true
				services = append(services, candidate)
			}
			i = j
			break
		}
	}
	return services
}
