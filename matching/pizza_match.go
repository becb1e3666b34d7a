package matching

import (
	"strings"

	"pizza-club-api/models"
)

// Strategy names which matcher tier resolved a pizza. The winning strategy
// is logged by callers so near-miss name matches can be audited later.
type Strategy string

const (
	StrategyExact     Strategy = "exact"
	StrategyContains  Strategy = "contains"
	StrategyFirstWord Strategy = "first_word"
)

// Match is the result of a successful resolution: the catalog record plus
// the strategy that found it.
type Match struct {
	Pizza    models.Pizza
	Strategy Strategy
}

// matcher returns the catalog entries a query matches under one tier.
type matcher func(query string, catalog []models.Pizza) []models.Pizza

// tiers are tried in order; the first tier that yields exactly one match
// wins. A tier yielding zero or several matches defers to the next; the
// resolver never guesses between candidates.
var tiers = []struct {
	strategy Strategy
	match    matcher
}{
	{StrategyExact, matchExact},
	{StrategyContains, matchContains},
	{StrategyFirstWord, matchFirstWord},
}

// Normalize canonicalizes a human-entered pizza name: trims whitespace and
// strips a trailing "pizza" word case-insensitively, so "Margherita Pizza"
// and "margherita" search for the same thing.
func Normalize(name string) string {
	s := strings.TrimSpace(name)
	lower := strings.ToLower(s)
	if strings.HasSuffix(lower, "pizza") {
		s = strings.TrimSpace(s[:len(s)-len("pizza")])
	}
	return s
}

// Resolve runs the tier chain over the catalog. The second return is false
// when no tier produced exactly one match.
func Resolve(query string, catalog []models.Pizza) (Match, bool) {
	q := Normalize(query)
	if q == "" {
		return Match{}, false
	}
	for _, tier := range tiers {
		found := tier.match(q, catalog)
		if len(found) == 1 {
			return Match{Pizza: found[0], Strategy: tier.strategy}, true
		}
	}
	return Match{}, false
}

func matchExact(q string, catalog []models.Pizza) []models.Pizza {
	var out []models.Pizza
	for _, p := range catalog {
		if strings.EqualFold(q, p.Name) {
			out = append(out, p)
		}
	}
	return out
}

// matchContains accepts whole-string containment in either direction:
// "margherita di bufala" contains "margherita", and "pep" is contained in
// "Pepperoni".
func matchContains(q string, catalog []models.Pizza) []models.Pizza {
	lq := strings.ToLower(q)
	var out []models.Pizza
	for _, p := range catalog {
		ln := strings.ToLower(p.Name)
		if strings.Contains(ln, lq) || strings.Contains(lq, ln) {
			out = append(out, p)
		}
	}
	return out
}

func matchFirstWord(q string, catalog []models.Pizza) []models.Pizza {
	qw := firstWord(q)
	if qw == "" {
		return nil
	}
	var out []models.Pizza
	for _, p := range catalog {
		if strings.EqualFold(qw, firstWord(p.Name)) {
			out = append(out, p)
		}
	}
	return out
}

func firstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
