// Package extract holds the pure extraction strategies that recover
// service/status candidates from raw provider content. Strategies never
// fail on malformed input; anything unrecognizable yields an empty list
// so the adapter can escalate to the next tier.
package extract

import (
	"errors"
	"regexp"
	"strings"
)

// ErrInvalidInput indicates a strategy was handed content it cannot even
// attempt to parse (nil payload). Programmer error, not a data condition.
var ErrInvalidInput = errors.New("invalid input")

var whitespaceRe = regexp.MustCompile(`\s+`)

// collapseSpace normalizes runs of whitespace to single spaces.
func collapseSpace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}
