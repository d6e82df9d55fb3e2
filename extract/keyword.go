package extract

import (
	"strings"

	"statuswatch/types"
)

// KeywordRule maps a title keyword to the service it implies. Rule order
// is significant: the first matching rule wins.
type KeywordRule struct {
	Keyword string `json:"keyword"`
	Service string `json:"service"`
}

// Keyword is the last-resort tier: a case-insensitive substring scan of
// the item title against the provider's declared rules. It yields at most
// one candidate, with the raw title as status text.
func Keyword(title string, rules []KeywordRule) []types.Candidate {
	if strings.TrimSpace(title) == "" {
		return nil
	}
	lower := strings.ToLower(title)
	for _, rule := range rules {
		if rule.Keyword == "" || rule.Service == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(rule.Keyword)) {
			return []types.Candidate{{Service: rule.Service, Status: title}}
		}
	}
	return nil
}
