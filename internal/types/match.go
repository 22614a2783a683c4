package types

import "time"

// SubScores holds the per-criterion breakdown of a match. Each component is
// in [0,1]. Qualitative is nil when the external scoring provider was
// unavailable and the term was dropped.
type SubScores struct {
	Skills      float64  `json:"skills"`
	Experience  float64  `json:"experience"`
	Location    float64  `json:"location"`
	Qualitative *float64 `json:"qualitative,omitempty"`
}

// MissingSkill is a job-required skill the profile lacks, carried on the
// result so callers can render gap guidance.
type MissingSkill struct {
	SkillID          string  `json:"skill_id"`
	ImportanceWeight float64 `json:"importance_weight"`
}

// MatchResult is the scored outcome for one (profile, job) pair. Results
// are never mutated after creation; a recomputation produces a new value.
type MatchResult struct {
	JobID         string         `json:"job_id"`
	OverallScore  float64        `json:"overall_score"` // 0-100
	SubScores     SubScores      `json:"sub_scores"`
	MatchedSkills []string       `json:"matched_skills,omitempty"`
	MissingSkills []MissingSkill `json:"missing_skills,omitempty"`
	Strengths     []string       `json:"strengths,omitempty"`
	Reasoning     string         `json:"reasoning"`
	Degraded      bool           `json:"degraded,omitempty"` // qualitative term dropped
	ComputedAt    time.Time      `json:"computed_at"`
}
