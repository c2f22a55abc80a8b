package enrich

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/daye-lim/shelfmate/internal/books"
)

// Match tiers, strongest first. Exact beats substring beats prefix;
// anything below a 4-rune shared prefix is weak.
const (
	tierNone = iota
	tierWeak
	tierPrefix
	tierSubstring
	tierExact
)

// bestMatch scores every candidate against the wanted title and keeps
// the highest tier. Earlier candidates win ties, preserving the
// catalog's own relevance order.
func bestMatch(title string, recs []books.Record) (books.Record, int) {
	want := canon(title)
	var best books.Record
	bestTier := tierNone
	for _, r := range recs {
		t := matchTier(want, canon(r.Title))
		if t > bestTier {
			best, bestTier = r, t
		}
	}
	return best, bestTier
}

func matchTier(want, got string) int {
	if want == "" || got == "" {
		return tierNone
	}
	switch {
	case got == want:
		return tierExact
	case strings.Contains(got, want) || strings.Contains(want, got):
		return tierSubstring
	case sharedPrefix(got, want) >= 4:
		return tierPrefix
	case sharedPrefix(got, want) >= 2:
		return tierWeak
	default:
		return tierNone
	}
}

func sharedPrefix(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	n := 0
	for n < len(ra) && n < len(rb) && ra[n] == rb[n] {
		n++
	}
	return n
}

// canon lowercases and strips everything but letters and digits, so
// "The Selfish Gene" and "the selfish gene!" compare equal.
func canon(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

var (
	tagRE    = regexp.MustCompile(`<[^>]*>`)
	spacesRE = regexp.MustCompile(`\s+`)
)

// CleanSynopsis strips markup, collapses whitespace, and truncates to
// limit runes with an ellipsis. A zero limit means no truncation.
func CleanSynopsis(s string, limit int) string {
	s = tagRE.ReplaceAllString(s, " ")
	s = spacesRE.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return strings.TrimSpace(string(runes[:limit])) + "…"
}
