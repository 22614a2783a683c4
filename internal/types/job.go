package types

// RequiredSkill is a skill demanded by a job posting.
type RequiredSkill struct {
	SkillID          string           `json:"skill_id" validate:"required"`
	MinLevel         ProficiencyLevel `json:"min_level" validate:"required,oneof=beginner intermediate advanced expert"`
	ImportanceWeight float64          `json:"importance_weight" validate:"gte=0,lte=1"`
	Mandatory        bool             `json:"mandatory,omitempty"`
}

// SalaryRange is the advertised salary band for a posting.
type SalaryRange struct {
	Min float64 `json:"min,omitempty" validate:"gte=0"`
	Max float64 `json:"max,omitempty" validate:"gte=0"`
}

// JobPosting is a job opportunity as handed to the engine by the job store.
// Same read-only contract as Profile.
type JobPosting struct {
	ID                 string          `json:"id" validate:"required"`
	Title              string          `json:"title,omitempty"`
	DescriptionText    string          `json:"description_text"`
	RequiredSkills     []RequiredSkill `json:"required_skills" validate:"dive"`
	MinExperienceYears float64         `json:"min_experience_years" validate:"gte=0"`
	Location           string          `json:"location,omitempty"`
	WorkMode           WorkMode        `json:"work_mode,omitempty" validate:"omitempty,oneof=remote hybrid onsite"`
	Salary             *SalaryRange    `json:"salary_range,omitempty"`
	Active             bool            `json:"active"`
}

// MandatorySkills returns the subset of required skills marked mandatory.
func (j *JobPosting) MandatorySkills() []RequiredSkill {
	var mandatory []RequiredSkill
	for _, rs := range j.RequiredSkills {
		if rs.Mandatory {
			mandatory = append(mandatory, rs)
		}
	}
	return mandatory
}
