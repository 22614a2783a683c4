package scoring

import (
	"strings"

	"github.com/jonathan/skillmatch/internal/taxonomy"
	"github.com/jonathan/skillmatch/internal/types"
)

const (
	// experienceBonusPerYear rewards hands-on years with a skill, capped
	// so experience can round up a level fraction but never dominate it.
	experienceBonusPerYear = 0.05
	maxExperienceBonus     = 0.2

	// maxRelatedCredit caps the partial credit a same-category skill can
	// earn toward an otherwise missing, non-mandatory requirement.
	maxRelatedCredit = 0.6
)

// skillAssessment is the outcome of matching one profile against one
// job's skill requirements.
type skillAssessment struct {
	score            float64
	matched          []string
	missing          []types.MissingSkill
	strengths        []string
	missingMandatory bool
}

// assessSkills computes the importance-weighted skill sub-score. Each
// requirement earns a [0,1] fraction: level distance for a held skill
// (plus a small experience bonus), related-category credit for a missing
// non-mandatory skill, and zero for a missing mandatory one.
func assessSkills(tax *taxonomy.Taxonomy, profileSkills map[string]types.ProfileSkill, job *types.JobPosting) skillAssessment {
	if len(job.RequiredSkills) == 0 {
		return skillAssessment{score: 1.0}
	}

	var a skillAssessment
	totalWeight := 0.0
	matchedWeight := 0.0

	for _, required := range job.RequiredSkills {
		requiredID := canonicalID(tax, required.SkillID)
		weight := required.ImportanceWeight
		if weight <= 0 {
			weight = 1.0
		}
		totalWeight += weight

		held, ok := profileSkills[requiredID]
		if !ok {
			a.missing = append(a.missing, types.MissingSkill{
				SkillID:          requiredID,
				ImportanceWeight: weight,
			})
			if required.Mandatory {
				a.missingMandatory = true
				continue
			}
			matchedWeight += weight * relatedSkillCredit(tax, profileSkills, requiredID)
			continue
		}

		fraction := levelFraction(held.Level, required.MinLevel)
		if held.Years > 0 {
			bonus := held.Years * experienceBonusPerYear
			if bonus > maxExperienceBonus {
				bonus = maxExperienceBonus
			}
			fraction += bonus
		}
		if fraction > 1.0 {
			fraction = 1.0
		}

		matchedWeight += weight * fraction
		a.matched = append(a.matched, requiredID)

		if held.Level.Value() > required.MinLevel.Value() {
			a.strengths = append(a.strengths, requiredID)
		}
	}

	if totalWeight > 0 {
		a.score = matchedWeight / totalWeight
	}
	return a
}

// levelFraction compares held proficiency to the required minimum: full
// credit at or above, proportional credit below.
func levelFraction(held, required types.ProficiencyLevel) float64 {
	heldValue := held.Value()
	requiredValue := required.Value()
	if heldValue >= requiredValue {
		return 1.0
	}
	return float64(heldValue) / float64(requiredValue)
}

// relatedSkillCredit finds the strongest profile skill sharing the missing
// skill's category. A sibling skill suggests transferable knowledge but
// never substitutes fully.
func relatedSkillCredit(tax *taxonomy.Taxonomy, profileSkills map[string]types.ProfileSkill, missingID string) float64 {
	category, err := tax.CategoryOf(missingID)
	if err != nil {
		// Requirement outside the taxonomy; nothing to relate it to.
		return 0.0
	}

	best := 0.0
	for id, held := range profileSkills {
		heldCategory, err := tax.CategoryOf(id)
		if err != nil || heldCategory != category {
			continue
		}
		credit := float64(held.Level.Value()) / 4.0
		if credit > maxRelatedCredit {
			credit = maxRelatedCredit
		}
		if credit > best {
			best = credit
		}
	}
	return best
}

// normalizeProfileSkills canonicalizes the profile's skill list into a
// lookup keyed by canonical id. When duplicates collapse onto one
// canonical skill, the stronger proficiency wins.
func normalizeProfileSkills(tax *taxonomy.Taxonomy, profile *types.Profile) map[string]types.ProfileSkill {
	normalized := make(map[string]types.ProfileSkill, len(profile.Skills))
	for _, skill := range profile.Skills {
		id := canonicalID(tax, skill.SkillID)
		if existing, ok := normalized[id]; ok && existing.Level.Value() >= skill.Level.Value() {
			continue
		}
		normalized[id] = skill
	}
	return normalized
}

// canonicalID resolves a raw skill token through the taxonomy, falling
// back to the lowercased raw token for skills outside it so both sides of
// a match can still agree on exact strings.
func canonicalID(tax *taxonomy.Taxonomy, raw string) string {
	if id, ok := tax.NormalizeToken(raw); ok {
		return id
	}
	return strings.ToLower(strings.TrimSpace(raw))
}
