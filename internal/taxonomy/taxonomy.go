// Package taxonomy resolves free-text skill mentions to canonical skill
// identifiers from a static taxonomy embedded at compile time.
package taxonomy

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

//go:embed taxonomy.json
var taxonomyData []byte

// Skill is one canonical entry of the skill taxonomy. Reference data,
// loaded once and never mutated at runtime.
type Skill struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Synonyms []string `json:"synonyms"`
}

// Taxonomy holds the loaded skill taxonomy with lookup tables for
// normalization.
type Taxonomy struct {
	skills    map[string]Skill  // id -> skill
	byName    map[string]string // lowercased canonical name -> id
	bySynonym map[string]string // lowercased synonym -> id
	ids       []string          // sorted, for deterministic fuzzy scans
}

type taxonomyFile struct {
	Skills []Skill `json:"skills"`
}

// Load parses the embedded taxonomy. It is cheap enough to call per
// process; callers share one instance via the engine.
func Load() (*Taxonomy, error) {
	return parse(taxonomyData)
}

// LoadFrom parses a taxonomy from raw JSON, for deployments that override
// the built-in skill set.
func LoadFrom(data []byte) (*Taxonomy, error) {
	return parse(data)
}

func parse(data []byte) (*Taxonomy, error) {
	var file taxonomyFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse taxonomy: %w", err)
	}
	if len(file.Skills) == 0 {
		return nil, fmt.Errorf("taxonomy contains no skills")
	}

	t := &Taxonomy{
		skills:    make(map[string]Skill, len(file.Skills)),
		byName:    make(map[string]string, len(file.Skills)),
		bySynonym: make(map[string]string),
	}

	for _, skill := range file.Skills {
		if skill.ID == "" || skill.Name == "" {
			return nil, fmt.Errorf("taxonomy entry missing id or name: %+v", skill)
		}
		if _, exists := t.skills[skill.ID]; exists {
			return nil, fmt.Errorf("duplicate skill id %q in taxonomy", skill.ID)
		}
		t.skills[skill.ID] = skill
		t.byName[strings.ToLower(skill.Name)] = skill.ID
		for _, syn := range skill.Synonyms {
			t.bySynonym[strings.ToLower(syn)] = skill.ID
		}
		t.ids = append(t.ids, skill.ID)
	}
	sort.Strings(t.ids)

	return t, nil
}

// Skill returns the taxonomy entry for an id.
func (t *Taxonomy) Skill(id string) (Skill, bool) {
	s, ok := t.skills[id]
	return s, ok
}

// CategoryOf returns the category of a known skill id. An unknown id is an
// internal bug (ids only enter the system through Normalize), so a hard
// error is returned rather than a silent drop.
func (t *Taxonomy) CategoryOf(id string) (string, error) {
	skill, ok := t.skills[id]
	if !ok {
		return "", &UnknownSkillError{SkillID: id}
	}
	return skill.Category, nil
}

// Len returns the number of canonical skills loaded.
func (t *Taxonomy) Len() int {
	return len(t.skills)
}
