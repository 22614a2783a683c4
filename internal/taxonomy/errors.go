package taxonomy

import "fmt"

// UnknownSkillError indicates a lookup with a skill id that is not in the
// loaded taxonomy. Ids are produced by Normalize, so hitting this means an
// internal bug rather than bad user input.
type UnknownSkillError struct {
	SkillID string
}

func (e *UnknownSkillError) Error() string {
	return fmt.Sprintf("unknown skill id %q", e.SkillID)
}
