package taxonomy

import "strings"

// fuzzyThreshold is the minimum similarity ratio for a fuzzy match to be
// accepted. Below this, the token is dropped as unrecognizable.
const fuzzyThreshold = 0.84

// Normalize resolves raw skill tokens to canonical skill ids. Resolution
// order per token: exact canonical name, synonym table, fuzzy match against
// canonical names and synonyms. Tokens matching nothing are dropped
// silently; partial extraction is expected and tolerated. The result is
// deduplicated and preserves first-seen order.
func (t *Taxonomy) Normalize(rawTokens []string) []string {
	seen := make(map[string]bool)
	var ids []string

	for _, raw := range rawTokens {
		id, ok := t.NormalizeToken(raw)
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}

	return ids
}

// NormalizeToken resolves a single raw token to a canonical skill id.
func (t *Taxonomy) NormalizeToken(raw string) (string, bool) {
	token := strings.ToLower(strings.TrimSpace(raw))
	if token == "" {
		return "", false
	}

	// Raw token may already be a canonical id.
	if _, ok := t.skills[token]; ok {
		return token, true
	}

	if id, ok := t.byName[token]; ok {
		return id, true
	}
	if id, ok := t.bySynonym[token]; ok {
		return id, true
	}

	return t.fuzzyMatch(token)
}

// fuzzyMatch scans canonical names and synonyms for the closest match above
// the threshold. Ties resolve to the alphabetically first skill id so the
// result is deterministic.
func (t *Taxonomy) fuzzyMatch(token string) (string, bool) {
	bestID := ""
	bestScore := 0.0

	for _, id := range t.ids {
		skill := t.skills[id]

		score := similarityRatio(token, strings.ToLower(skill.Name))
		for _, syn := range skill.Synonyms {
			if s := similarityRatio(token, strings.ToLower(syn)); s > score {
				score = s
			}
		}

		if score > bestScore {
			bestScore = score
			bestID = id
		}
		// Equal score keeps the earlier id: ids are scanned in sorted order.
	}

	if bestScore >= fuzzyThreshold {
		return bestID, true
	}
	return "", false
}

// similarityRatio returns a [0,1] similarity between two strings based on
// Levenshtein edit distance over the longer length. Both the distance and
// the length are measured in runes so multi-byte input scores the same as
// ASCII.
func similarityRatio(a, b string) float64 {
	if a == b {
		return 1.0
	}
	longest := max(len([]rune(a)), len([]rune(b)))
	if longest == 0 {
		return 1.0
	}
	return 1.0 - float64(levenshtein(a, b))/float64(longest)
}

// levenshtein computes edit distance with a two-row rolling buffer.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, min(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}
