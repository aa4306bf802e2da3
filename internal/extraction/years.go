package extraction

import (
	"strconv"
	"strings"
)

// yearWords are the tokens that anchor the experience-year heuristic.
var yearWords = map[string]bool{
	"year":  true,
	"years": true,
	"yr":    true,
	"yrs":   true,
}

// yearProximity is how many tokens away from a year word a number may sit and
// still count ("5 years", "5+ years of", "experience of 5 years").
const yearProximity = 2

// experienceYears scans the token sequence for a number within yearProximity
// tokens of a year word and returns the maximum such number, or nil when none
// is found. Absence and zero are distinct: "0 years" yields a pointer to
// zero, silence yields nil.
func experienceYears(tokens []string) *int {
	var best *int

	for i, tok := range tokens {
		if !yearWords[tok] {
			continue
		}
		lo := max(0, i-yearProximity)
		hi := min(len(tokens)-1, i+yearProximity)
		for j := lo; j <= hi; j++ {
			if j == i {
				continue
			}
			n, ok := parseYearNumber(tokens[j])
			if !ok {
				continue
			}
			if best == nil || n > *best {
				value := n
				best = &value
			}
		}
	}

	return best
}

// parseYearNumber parses tokens like "5" or "5+" into a non-negative year
// count. Four-digit numbers are rejected so calendar years ("since 2019") do
// not masquerade as experience.
func parseYearNumber(tok string) (int, bool) {
	tok = strings.TrimSuffix(tok, "+")
	if tok == "" || len(tok) > 2 {
		return 0, false
	}
	n, err := strconv.Atoi(tok)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
