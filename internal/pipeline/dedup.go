package pipeline

import (
	"log"
	"strings"
	"unicode"
)

// titleSimilarityThreshold is the token-overlap ratio at or above which
// two titles are considered the same idea.
const titleSimilarityThreshold = 0.8

// Deduplicate removes near-identical candidates. Two candidates are
// duplicates when their IDs match (a cross-post picked up from several
// sources) or their normalized titles overlap by at least the threshold.
// The survivor of a pair is the one with more upvotes; on a tie, the
// earlier post wins. Output order follows input order apart from the
// removals.
func Deduplicate(cands []Candidate) []Candidate {
	kept := make([]Candidate, 0, len(cands))

	for _, c := range cands {
		dup := -1
		for i := range kept {
			if isDuplicate(c, kept[i]) {
				dup = i
				break
			}
		}
		if dup < 0 {
			kept = append(kept, c)
			continue
		}
		if preferOver(c, kept[dup]) {
			kept[dup] = c
		}
	}

	if removed := len(cands) - len(kept); removed > 0 {
		log.Printf("Removed %d duplicate posts", removed)
	}
	return kept
}

func isDuplicate(a, b Candidate) bool {
	if a.ID == b.ID {
		return true
	}
	return titleSimilarity(a.Title, b.Title) >= titleSimilarityThreshold
}

// preferOver reports whether a should replace b as the surviving copy.
func preferOver(a, b Candidate) bool {
	if a.Upvotes != b.Upvotes {
		return a.Upvotes > b.Upvotes
	}
	return a.CreatedAt.Before(b.CreatedAt)
}

// titleSimilarity computes the token-overlap ratio of two normalized
// titles: |intersection| / |union| over the distinct token sets.
func titleSimilarity(a, b string) float64 {
	ta := tokenSet(a)
	tb := tokenSet(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	inter := 0
	for tok := range ta {
		if tb[tok] {
			inter++
		}
	}
	union := len(ta) + len(tb) - inter
	return float64(inter) / float64(union)
}

// tokenSet case-folds the text, strips punctuation, and returns the set
// of distinct tokens.
func tokenSet(s string) map[string]bool {
	normalized := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, s)

	set := make(map[string]bool)
	for _, tok := range strings.Fields(normalized) {
		set[tok] = true
	}
	return set
}
