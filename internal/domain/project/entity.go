package project

import (
	"time"

	"dev-match/internal/domain/skill"

	"github.com/google/uuid"
)

type Status string

const (
	StatusDraft   Status = "draft"
	StatusMatched Status = "matched"
)

type SkillRequirement struct {
	Name     string
	MinLevel skill.Level
	Required bool
}

// Project is the requirement sheet submitted by a client. It is not edited
// after submission; later turns only extend the conversation.
type Project struct {
	ID              uuid.UUID
	Title           string
	Types           []string
	TypeOther       string
	RequiredSkills  []SkillRequirement
	RequiredOther   string
	PreferredSkills []SkillRequirement
	PreferredOther  string
	StartDate       string
	EndDate         string
	Notes           string
	Status          Status
	CreatedAt       time.Time
}

// Skills returns required entries followed by preferred entries.
func (p Project) Skills() []SkillRequirement {
	out := make([]SkillRequirement, 0, len(p.RequiredSkills)+len(p.PreferredSkills))
	for _, s := range p.RequiredSkills {
		s.Required = true
		out = append(out, s)
	}
	for _, s := range p.PreferredSkills {
		s.Required = false
		out = append(out, s)
	}
	return out
}
