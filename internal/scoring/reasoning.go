package scoring

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/skillmatch/internal/taxonomy"
	"github.com/jonathan/skillmatch/internal/types"
)

const (
	maxMatchedInReasoning = 3
	maxMissingInReasoning = 2
)

// buildReasoning produces the human-readable explanation for a result.
// The deterministic template always forms the base; provider reasoning,
// when available, extends it rather than replacing it so the explanation
// never regresses below the auditable minimum.
func buildReasoning(tax *taxonomy.Taxonomy, result *types.MatchResult, providerReasoning string) string {
	var parts []string

	parts = append(parts, overallBand(result.OverallScore))
	if s := matchedSentence(tax, result.MatchedSkills); s != "" {
		parts = append(parts, s)
	}
	if s := missingSentence(tax, result.MissingSkills); s != "" {
		parts = append(parts, s)
	}
	if result.SubScores.Experience >= 1.0 {
		parts = append(parts, "Your experience level meets the requirement.")
	} else if result.SubScores.Experience < 0.7 {
		parts = append(parts, "You may need more experience for this role.")
	}

	if providerReasoning = strings.TrimSpace(providerReasoning); providerReasoning != "" {
		parts = append(parts, providerReasoning)
	}

	return strings.Join(parts, " ")
}

// overallBand maps the overall score to a one-sentence assessment.
func overallBand(score float64) string {
	switch {
	case score >= 80:
		return "This is an excellent match for your profile."
	case score >= 60:
		return "This is a good match with some areas for growth."
	case score >= 40:
		return "This opportunity could be challenging but offers learning potential."
	default:
		return "This may be a stretch opportunity requiring significant skill development."
	}
}

func matchedSentence(tax *taxonomy.Taxonomy, matched []string) string {
	if len(matched) == 0 {
		return ""
	}
	names := skillNames(tax, matched, maxMatchedInReasoning)
	return fmt.Sprintf("Strong alignment on %s.", strings.Join(names, ", "))
}

func missingSentence(tax *taxonomy.Taxonomy, missing []types.MissingSkill) string {
	if len(missing) == 0 {
		return ""
	}

	// Most important gaps first.
	sorted := make([]types.MissingSkill, len(missing))
	copy(sorted, missing)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].ImportanceWeight != sorted[j].ImportanceWeight {
			return sorted[i].ImportanceWeight > sorted[j].ImportanceWeight
		}
		return sorted[i].SkillID < sorted[j].SkillID
	})

	ids := make([]string, 0, maxMissingInReasoning)
	for _, m := range sorted {
		ids = append(ids, m.SkillID)
		if len(ids) == maxMissingInReasoning {
			break
		}
	}
	return fmt.Sprintf("Key skills to develop: %s.", strings.Join(skillNames(tax, ids, len(ids)), ", "))
}

// skillNames maps canonical ids to display names, falling back to the id
// for skills outside the taxonomy.
func skillNames(tax *taxonomy.Taxonomy, ids []string, limit int) []string {
	names := make([]string, 0, limit)
	for _, id := range ids {
		if len(names) == limit {
			break
		}
		if skill, ok := tax.Skill(id); ok {
			names = append(names, skill.Name)
		} else {
			names = append(names, id)
		}
	}
	return names
}
