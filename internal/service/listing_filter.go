package service

import (
	"regexp"
	"strings"
	"sync"
)

// Multi-card and junk listings that a single-card search still returns.
var exclusionPatterns = []string{
	`CHOOSE\s+YOUR`,
	`PICK\s+YOUR`,
	`PICK\s+A\s+CARD`,
	`LOT\s+OF`,
	`CARD\s+LOT`,
	`\bLOTS\b`,
	`\bBULK\b`,
	`\bBUNDLE\b`,
	`COMPLETE\s+SET`,
	`FULL\s+SET`,
	`\bPROXY\b`,
	`\bCUSTOM\b`,
	`\bREPLICA\b`,
	`\bREPRINT\b`,
	`\bDIGITAL\b`,
	`\bSTICKER\b`,
}

var (
	exclusionOnce  sync.Once
	exclusionRules []*regexp.Regexp
)

func compileExclusions() {
	for _, p := range exclusionPatterns {
		exclusionRules = append(exclusionRules, regexp.MustCompile(p))
	}
}

// ListingFilter decides whether a search result is a single listing of
// the tracked card. Marketplace text search is fuzzy, so titles are
// checked both for exclusion markers and for the card name itself.
type ListingFilter struct {
	CardName string
}

// Valid reports whether the title passes: no exclusion marker, and the
// card name (all words of it) present.
func (f ListingFilter) Valid(title string) bool {
	exclusionOnce.Do(compileExclusions)
	upper := strings.ToUpper(title)
	for _, re := range exclusionRules {
		if re.MatchString(upper) {
			return false
		}
	}
	for _, word := range strings.Fields(strings.ToUpper(f.CardName)) {
		if !strings.Contains(upper, word) {
			return false
		}
	}
	return true
}
