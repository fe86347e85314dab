package grade

// Token is a canonical grading-authority grade. Tokens are produced only
// by Normalize and are the keys of market value price tables; the set is
// closed and fixed at compile time.
type Token string

const (
	PSA10 Token = "PSA 10"
	PSA9  Token = "PSA 9"
	PSA8  Token = "PSA 8"
	PSA7  Token = "PSA 7"
	PSA6  Token = "PSA 6"
	PSA5  Token = "PSA 5"
	PSA4  Token = "PSA 4"
	PSA3  Token = "PSA 3"
	PSA2  Token = "PSA 2"
	PSA1  Token = "PSA 1"

	BGS10 Token = "BGS 10"
	BGS95 Token = "BGS 9.5"
	BGS9  Token = "BGS 9"
	BGS85 Token = "BGS 8.5"
	BGS8  Token = "BGS 8"
	BGS75 Token = "BGS 7.5"
	BGS7  Token = "BGS 7"

	CGC10Pristine Token = "CGC 10 Pristine"
	CGC10         Token = "CGC 10"
	CGC95         Token = "CGC 9.5"
	CGC9          Token = "CGC 9"
	CGC85         Token = "CGC 8.5"
	CGC8          Token = "CGC 8"
	CGC75         Token = "CGC 7.5"
	CGC7          Token = "CGC 7"

	SGC10 Token = "SGC 10"
	SGC95 Token = "SGC 9.5"
	SGC9  Token = "SGC 9"
	SGC8  Token = "SGC 8"

	// Raw is the sentinel for cards explicitly marked as ungraded.
	Raw Token = "Raw"
)

// Tokens returns the closed token set, graded tokens first.
func Tokens() []Token {
	return []Token{
		PSA10, PSA9, PSA8, PSA7, PSA6, PSA5, PSA4, PSA3, PSA2, PSA1,
		BGS10, BGS95, BGS9, BGS85, BGS8, BGS75, BGS7,
		CGC10Pristine, CGC10, CGC95, CGC9, CGC85, CGC8, CGC75, CGC7,
		SGC10, SGC95, SGC9, SGC8,
		Raw,
	}
}

// Valid reports whether t is a member of the closed token set.
func Valid(t Token) bool {
	for _, known := range Tokens() {
		if t == known {
			return true
		}
	}
	return false
}

func (t Token) String() string {
	return string(t)
}

// IsGraded reports whether the token represents a professional grade
// rather than the raw sentinel.
func (t Token) IsGraded() bool {
	return t != "" && t != Raw
}
