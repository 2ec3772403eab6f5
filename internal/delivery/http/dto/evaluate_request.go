package dto

import (
	"strings"

	"dev-match/internal/domain/project"
	"dev-match/internal/domain/skill"
)

type SkillEntry struct {
	SkillName    string `json:"skill_name" validate:"required"`
	MinimumLevel string `json:"minimum_level" validate:"required,oneof=beginner intermediate advanced expert"`
}

type ProjectPayload struct {
	Title                  string       `json:"title" validate:"required"`
	ProjectType            []string     `json:"project_type" validate:"min=1,dive,required"`
	ProjectTypeOther       string       `json:"project_type_other"`
	RequiredSkills         []SkillEntry `json:"required_skills" validate:"dive"`
	RequiredSkillsOther    string       `json:"required_skills_other"`
	PreferredSkills        []SkillEntry `json:"preferred_skills" validate:"dive"`
	PreferredSkillsOther   string       `json:"preferred_skills_other"`
	StartDate              string       `json:"start_date"`
	EndDate                string       `json:"end_date"`
	AdditionalRequirements string       `json:"additional_requirements"`
}

type ChatTurn struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Message string `json:"message" validate:"required"`
}

// EvaluateRequest is either an initial submission carrying Project or a
// follow-up carrying ProjectID and Message.
type EvaluateRequest struct {
	ProjectID   string          `json:"project_id" validate:"omitempty,uuid"`
	Project     *ProjectPayload `json:"project"`
	Message     string          `json:"message"`
	ChatHistory []ChatTurn      `json:"chat_history" validate:"dive"`
}

func (r EvaluateRequest) IsInitial() bool {
	return r.Project != nil
}

func (r EvaluateRequest) IsFollowUp() bool {
	return r.Project == nil && strings.TrimSpace(r.ProjectID) != ""
}

func (p ProjectPayload) ToDomain() project.Project {
	return project.Project{
		Title:           strings.TrimSpace(p.Title),
		Types:           trimAll(p.ProjectType),
		TypeOther:       strings.TrimSpace(p.ProjectTypeOther),
		RequiredSkills:  toSkillRequirements(p.RequiredSkills, true),
		RequiredOther:   strings.TrimSpace(p.RequiredSkillsOther),
		PreferredSkills: toSkillRequirements(p.PreferredSkills, false),
		PreferredOther:  strings.TrimSpace(p.PreferredSkillsOther),
		StartDate:       strings.TrimSpace(p.StartDate),
		EndDate:         strings.TrimSpace(p.EndDate),
		Notes:           strings.TrimSpace(p.AdditionalRequirements),
	}
}

func toSkillRequirements(entries []SkillEntry, required bool) []project.SkillRequirement {
	out := make([]project.SkillRequirement, 0, len(entries))
	for _, e := range entries {
		// Unknown levels stay LevelUnknown and are rejected by project validation.
		lvl, _ := skill.ParseLevel(e.MinimumLevel)
		out = append(out, project.SkillRequirement{
			Name:     strings.TrimSpace(e.SkillName),
			MinLevel: lvl,
			Required: required,
		})
	}
	return out
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// ToConversation converts request chat history into conversation turns.
func ToConversation(turns []ChatTurn) project.Conversation {
	var conv project.Conversation
	for _, t := range turns {
		conv = conv.Append(project.Role(strings.ToLower(strings.TrimSpace(t.Role))), t.Message)
	}
	return conv
}
