package grade

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// Result is the outcome of normalizing a listing's free text.
// Matched=false with Graded=true means the seller marked the card as
// graded but no recognizable authority signature was found; such
// listings are displayed but never correlated to a market value.
type Result struct {
	Grade   Token
	Matched bool
	Graded  bool
}

type rule struct {
	token       Token
	specificity int
	patterns    []*regexp.Regexp
}

// authority defines the valid grade range for one grading company.
// Grades outside this list are unmatchable by construction: no rule is
// generated for them, so "PSA 11" or "BGS 6" falls through to no match
// instead of being clamped to the nearest valid grade.
type authority struct {
	name   string
	grades []string
}

var authorities = []authority{
	{name: "PSA", grades: []string{"10", "9", "8", "7", "6", "5", "4", "3", "2", "1"}},
	{name: "BGS", grades: []string{"10", "9.5", "9", "8.5", "8", "7.5", "7"}},
	{name: "CGC", grades: []string{"10", "9.5", "9", "8.5", "8", "7.5", "7"}},
	{name: "SGC", grades: []string{"10", "9.5", "9", "8"}},
}

// Authority-specific labels that imply a grade without a numeric.
// Longer aliases carry higher specificity so "CGC GEM MINT" beats the
// bare "CGC 9" signature when both appear.
var aliases = []struct {
	token   Token
	sources []string
}{
	{PSA10, []string{`PSA\s+GEM\s+MT`, `PSA\s+GEM\s+MINT\s+10`}},
	{BGS10, []string{`BLACK\s+LABEL`, `BECKETT\s+10`}},
	{BGS95, []string{`BECKETT\s+9\.5`}},
	{BGS9, []string{`BECKETT\s+9([^.\d]|$)`}},
	{BGS85, []string{`BECKETT\s+8\.5`}},
	{BGS8, []string{`BECKETT\s+8([^.\d]|$)`}},
	{BGS75, []string{`BECKETT\s+7\.5`}},
	{BGS7, []string{`BECKETT\s+7([^.\d]|$)`}},
	{CGC10Pristine, []string{`CGC\s*10\s+PRISTINE`, `CGC\s+PRISTINE\s+10`, `CGC\s+PRISTINE`}},
	{CGC10, []string{`CGC\s+PERFECT`}},
	{CGC95, []string{`CGC\s+GEM\s+MINT`}},
	{CGC9, []string{`CGC\s+MINT`}},
}

var rawPatterns = []string{
	`\bRAW\b`,
	`UNGRADED`,
	`NOT\s+GRADED`,
	`NEVER\s+GRADED`,
}

var (
	compileOnce sync.Once
	gradeRules  []rule
	rawRules    []*regexp.Regexp
)

func compile() {
	for _, auth := range authorities {
		for _, g := range auth.grades {
			token := Token(auth.name + " " + g)
			if auth.name == "CGC" && g == "10" {
				// The pristine variant is a distinct token handled via aliases.
				token = CGC10
			}
			pattern := auth.name + `\s*` + regexp.QuoteMeta(g)
			if !strings.Contains(g, ".") {
				// Block half grades and longer numerics: "BGS 9" must not
				// match inside "BGS 9.5", nor "PSA 1" inside "PSA 10".
				pattern += `([^.\d]|$)`
			} else {
				pattern += `([^\d]|$)`
			}
			gradeRules = append(gradeRules, rule{
				token:       token,
				specificity: len(auth.name) + len(g),
				patterns:    []*regexp.Regexp{regexp.MustCompile(pattern)},
			})
		}
	}
	for _, alias := range aliases {
		res := make([]*regexp.Regexp, 0, len(alias.sources))
		longest := 0
		for _, src := range alias.sources {
			res = append(res, regexp.MustCompile(src))
			if plain := len(plainLength(src)); plain > longest {
				longest = plain
			}
		}
		gradeRules = append(gradeRules, rule{
			token:       alias.token,
			specificity: longest,
			patterns:    res,
		})
	}
	for _, src := range rawPatterns {
		rawRules = append(rawRules, regexp.MustCompile(src))
	}
}

// plainLength strips regex syntax so alias specificity reflects the
// literal signature length, comparable with the numeric signatures.
func plainLength(src string) string {
	replacer := strings.NewReplacer(
		`\s+`, " ", `\s*`, "", `\b`, "", `\.`, ".",
		`([^.\d]|$)`, "", `([^\d]|$)`, "",
	)
	return replacer.Replace(src)
}

// Normalize maps a listing title and condition text onto the canonical
// grade taxonomy. It is pure and deterministic: identical inputs always
// produce identical results. When several signatures overlap in the
// title the most specific one wins; among equally specific signatures
// the earlier rule in the table wins.
func Normalize(title, condition string) Result {
	compileOnce.Do(compile)

	titleUpper := strings.ToUpper(title)
	conditionUpper := strings.ToUpper(condition)

	best := -1
	var bestToken Token
	for _, r := range gradeRules {
		if r.specificity <= best {
			continue
		}
		for _, re := range r.patterns {
			if re.MatchString(titleUpper) {
				best = r.specificity
				bestToken = r.token
				break
			}
		}
	}
	if best >= 0 {
		return Result{Grade: bestToken, Matched: true, Graded: true}
	}

	for _, re := range rawRules {
		if re.MatchString(titleUpper) || re.MatchString(conditionUpper) {
			return Result{Grade: Raw, Matched: true, Graded: false}
		}
	}

	// The marketplace condition field says "Graded" (in several
	// languages "grad" is a stable stem) but the title carries no
	// recognizable signature: keep the graded flag, drop the token.
	if strings.Contains(strings.ToLower(condition), "grad") {
		return Result{Graded: true}
	}

	return Result{}
}

// MustToken converts a stored grade string back into a Token, for
// callers reading persisted rows. Unknown strings are an error rather
// than a silent passthrough so taxonomy drift surfaces loudly.
func MustToken(s string) (Token, error) {
	t := Token(s)
	if !Valid(t) {
		return "", fmt.Errorf("unknown grade token %q", s)
	}
	return t, nil
}
