// Package types provides type definitions for structured data used throughout the skillmatch engine.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"
)

// ProficiencyLevel represents how proficient a candidate is with a skill.
type ProficiencyLevel string

// Proficiency levels, ordered from weakest to strongest.
const (
	LevelBeginner     ProficiencyLevel = "beginner"
	LevelIntermediate ProficiencyLevel = "intermediate"
	LevelAdvanced     ProficiencyLevel = "advanced"
	LevelExpert       ProficiencyLevel = "expert"
)

// Value returns the numeric rank of a proficiency level (1-4).
// Unknown levels rank as beginner so a malformed profile degrades
// rather than inflates a match.
func (l ProficiencyLevel) Value() int {
	switch ProficiencyLevel(strings.ToLower(string(l))) {
	case LevelBeginner:
		return 1
	case LevelIntermediate:
		return 2
	case LevelAdvanced:
		return 3
	case LevelExpert:
		return 4
	default:
		return 1
	}
}

// WorkMode represents where work is performed.
type WorkMode string

// Work modes recognized by the preference scorer.
const (
	WorkModeRemote WorkMode = "remote"
	WorkModeHybrid WorkMode = "hybrid"
	WorkModeOnsite WorkMode = "onsite"
)

// ProfileSkill is a single skill held by a candidate.
type ProfileSkill struct {
	SkillID string           `json:"skill_id" validate:"required"`
	Level   ProficiencyLevel `json:"proficiency_level" validate:"required,oneof=beginner intermediate advanced expert"`
	Years   float64          `json:"years,omitempty" validate:"gte=0"`
}

// Profile is a candidate profile as handed to the engine by the profile
// store. The engine treats it as a read-only value for the duration of a
// match operation.
type Profile struct {
	ID                   string         `json:"id" validate:"required"`
	NarrativeText        string         `json:"narrative_text"`
	Skills               []ProfileSkill `json:"skills" validate:"dive"`
	TotalExperienceYears float64        `json:"total_experience_years" validate:"gte=0"`
	PreferredLocations   []string       `json:"preferred_locations,omitempty"`
	PreferredWorkModes   []WorkMode     `json:"preferred_work_modes,omitempty" validate:"dive,oneof=remote hybrid onsite"`
	SalaryFloor          *float64       `json:"salary_floor,omitempty"`
	SalaryCeiling        *float64       `json:"salary_ceiling,omitempty"`
}

// ContentHash returns a stable hash over the profile's matching-relevant
// content. Two profiles with identical content hash identically regardless
// of skill ordering, so cached results keyed to the hash survive no-op
// edits but are invalidated by real ones.
func (p *Profile) ContentHash() string {
	canonical := struct {
		ID        string         `json:"id"`
		Narrative string         `json:"narrative"`
		Skills    []ProfileSkill `json:"skills"`
		Years     float64        `json:"years"`
		Locations []string       `json:"locations"`
		WorkModes []string       `json:"work_modes"`
		Floor     *float64       `json:"floor"`
		Ceiling   *float64       `json:"ceiling"`
	}{
		ID:        p.ID,
		Narrative: p.NarrativeText,
		Years:     p.TotalExperienceYears,
		Floor:     p.SalaryFloor,
		Ceiling:   p.SalaryCeiling,
	}

	canonical.Skills = append(canonical.Skills, p.Skills...)
	sort.Slice(canonical.Skills, func(i, j int) bool {
		return canonical.Skills[i].SkillID < canonical.Skills[j].SkillID
	})

	canonical.Locations = append(canonical.Locations, p.PreferredLocations...)
	sort.Strings(canonical.Locations)

	for _, mode := range p.PreferredWorkModes {
		canonical.WorkModes = append(canonical.WorkModes, string(mode))
	}
	sort.Strings(canonical.WorkModes)

	data, err := json.Marshal(canonical)
	if err != nil {
		// Marshal of plain structs cannot fail; hash the ID as a last resort.
		data = []byte(p.ID)
	}

	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// SkillByID returns the profile skill with the given ID, or nil if absent.
func (p *Profile) SkillByID(skillID string) *ProfileSkill {
	for i := range p.Skills {
		if p.Skills[i].SkillID == skillID {
			return &p.Skills[i]
		}
	}
	return nil
}

// PrefersWorkMode reports whether the profile lists the given work mode.
func (p *Profile) PrefersWorkMode(mode WorkMode) bool {
	for _, m := range p.PreferredWorkModes {
		if m == mode {
			return true
		}
	}
	return false
}

// PrefersLocation reports whether the given location matches one of the
// profile's preferred locations (case-insensitive substring match, the
// same tolerance the upstream profile editor applies).
func (p *Profile) PrefersLocation(location string) bool {
	if location == "" {
		return false
	}
	lower := strings.ToLower(location)
	for _, loc := range p.PreferredLocations {
		if loc == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(loc)) || strings.Contains(strings.ToLower(loc), lower) {
			return true
		}
	}
	return false
}
