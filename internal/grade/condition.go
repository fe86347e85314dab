package grade

import (
	"regexp"
	"strings"
	"sync"
)

// Condition is a coarse raw-card condition bucket detected from free
// text. It is display metadata only; valuation correlation uses grade
// tokens exclusively.
type Condition string

const (
	GemMint      Condition = "Gem Mint"
	NearMint     Condition = "Near Mint"
	Excellent    Condition = "Excellent"
	VeryGood     Condition = "Very Good"
	Good         Condition = "Good"
	LightPlay    Condition = "Light Play"
	ModeratePlay Condition = "Moderate Play"
	HeavyPlay    Condition = "Heavy Play"
	Damaged      Condition = "Damaged"
)

type conditionRule struct {
	condition Condition
	patterns  []*regexp.Regexp
}

var conditionSources = []struct {
	condition Condition
	patterns  []string
}{
	{GemMint, []string{`GEM\s*MINT`, `MINT\s*\+`, `PRISTINE`}},
	{NearMint, []string{`NEAR\s*MINT`, `\bNM\b`, `NM/M`}},
	{Excellent, []string{`EXCELLENT`, `\bEX\b`, `EX\+`, `EX/NM`}},
	{VeryGood, []string{`VERY\s*GOOD`, `\bVG\b`, `VG\+`, `VG/EX`}},
	{Good, []string{`\bGOOD\b`, `\bGD\b`}},
	{LightPlay, []string{`LIGHT\s*PLAY`, `\bLP\b`, `LIGHTLY\s*PLAYED`}},
	{ModeratePlay, []string{`MODERATE\s*PLAY`, `\bMP\b`, `MODERATELY\s*PLAYED`}},
	{HeavyPlay, []string{`HEAVY\s*PLAY`, `\bHP\b`, `HEAVILY\s*PLAYED`}},
	{Damaged, []string{`DAMAGED`, `\bDMG\b`, `\bPOOR\b`}},
}

var (
	conditionOnce  sync.Once
	conditionRules []conditionRule
)

func compileConditions() {
	for _, src := range conditionSources {
		res := make([]*regexp.Regexp, 0, len(src.patterns))
		for _, p := range src.patterns {
			res = append(res, regexp.MustCompile(p))
		}
		conditionRules = append(conditionRules, conditionRule{condition: src.condition, patterns: res})
	}
}

// DetectCondition scans the given texts in order and returns the first
// condition bucket matched. Earlier texts take precedence, so callers
// pass the listing title before the marketplace condition field.
func DetectCondition(texts ...string) (Condition, bool) {
	conditionOnce.Do(compileConditions)
	for _, text := range texts {
		upper := strings.ToUpper(text)
		for _, r := range conditionRules {
			for _, re := range r.patterns {
				if re.MatchString(upper) {
					return r.condition, true
				}
			}
		}
	}
	return "", false
}
