// Package model contains domain models passed between layers.
package model

// Experience and meeting-frequency bounds used when reading candidate and
// project records.
const (
	MinExperience           = 1
	MaxExperience           = 5
	DefaultExperience       = 3
	MinComplexity           = 1
	MaxComplexity           = 5
	DefaultComplexity       = 3
	MinMeetingFrequency     = 0
	MaxMeetingFrequency     = 10
	DefaultMeetingFrequency = 5
	MinSkillLevel           = 1
)

// Skill is a (skill-id, proficiency) pair held by a candidate.
type Skill struct {
	ID    string `json:"id"`
	Level int    `json:"level"` // 1..5; values <= 0 read as 1
}

// EffectiveLevel returns the proficiency used for coverage checks.
func (s Skill) EffectiveLevel() int {
	if s.Level < MinSkillLevel {
		return MinSkillLevel
	}
	return s.Level
}

// Candidate is a person eligible for team membership. Candidates are
// treated as immutable for the duration of a scoring call.
type Candidate struct {
	ID           string       `json:"id"`
	Name         string       `json:"name,omitempty"`
	Faculty      string       `json:"faculty"`
	Skills       []Skill      `json:"skills,omitempty"`
	Availability Availability `json:"availability"`
	Interests    []string     `json:"interests,omitempty"`
	Experience   int          `json:"experience,omitempty"`
	WorkStyle    *WorkStyle   `json:"workStyle,omitempty"`
}

// EffectiveExperience returns the experience level clamped to 1..5, with 0
// meaning "not stated" and mapping to the neutral default.
func (c *Candidate) EffectiveExperience() int {
	if c.Experience == 0 {
		return DefaultExperience
	}
	return clamp(c.Experience, MinExperience, MaxExperience)
}

// Requirement is a skill a project needs at a minimum level.
type Requirement struct {
	SkillID       string `json:"skillId" yaml:"skillId"`
	RequiredLevel int    `json:"requiredLevel" yaml:"requiredLevel"`
}

// EffectiveLevel returns the level a team must reach to meet the requirement.
func (r Requirement) EffectiveLevel() int {
	if r.RequiredLevel < MinSkillLevel {
		return MinSkillLevel
	}
	return r.RequiredLevel
}

// ProjectContext is the optional set of requirements a team is evaluated against.
type ProjectContext struct {
	RequiredSkills   []Requirement `json:"requiredSkills,omitempty" yaml:"requiredSkills"`
	Tags             []string      `json:"tags,omitempty" yaml:"tags"`
	Complexity       int           `json:"complexity,omitempty" yaml:"complexity"`
	MeetingFrequency *int          `json:"meetingFrequency,omitempty" yaml:"meetingFrequency"`
}

// Requirements returns the required skills, tolerating a nil project.
func (p *ProjectContext) Requirements() []Requirement {
	if p == nil {
		return nil
	}
	return p.RequiredSkills
}

// TopicTags returns the project tags, tolerating a nil project.
func (p *ProjectContext) TopicTags() []string {
	if p == nil {
		return nil
	}
	return p.Tags
}

// EffectiveComplexity returns the complexity clamped to 1..5 (default 3).
func (p *ProjectContext) EffectiveComplexity() int {
	if p == nil || p.Complexity == 0 {
		return DefaultComplexity
	}
	return clamp(p.Complexity, MinComplexity, MaxComplexity)
}

// EffectiveMeetingFrequency returns the meeting frequency used for members
// that do not state their own (default 5).
func (p *ProjectContext) EffectiveMeetingFrequency() int {
	if p == nil || p.MeetingFrequency == nil {
		return DefaultMeetingFrequency
	}
	return clamp(*p.MeetingFrequency, MinMeetingFrequency, MaxMeetingFrequency)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
