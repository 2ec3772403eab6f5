package dto

import (
	"time"

	"dev-match/internal/domain/matching"
	"dev-match/internal/domain/skill"
	"dev-match/internal/repository"

	"github.com/google/uuid"
)

type SkillMatchResponse struct {
	Name            string      `json:"name"`
	RequiredLevel   skill.Level `json:"required_level"`
	DeveloperLevel  skill.Level `json:"developer_level"`
	YearsExperience int         `json:"years,omitempty"`
	Required        bool        `json:"required"`
	Met             bool        `json:"met"`
}

type MatchResultResponse struct {
	DeveloperID      uuid.UUID            `json:"developer_id"`
	DeveloperName    string               `json:"developer_name"`
	DeveloperEmail   string               `json:"developer_email"`
	MatchScore       int                  `json:"match_score"`
	MatchReason      string               `json:"match_reason"`
	SkillsMatched    []SkillMatchResponse `json:"skills_matched"`
	SkillsNotMatched []SkillMatchResponse `json:"skills_not_matched"`
}

func NewMatchResults(results []matching.Result) []MatchResultResponse {
	out := make([]MatchResultResponse, 0, len(results))
	for _, r := range results {
		item := MatchResultResponse{
			DeveloperID:      r.DeveloperID,
			DeveloperName:    r.DeveloperName,
			DeveloperEmail:   r.DeveloperEmail,
			MatchScore:       r.MatchScore,
			MatchReason:      r.Reason,
			SkillsMatched:    make([]SkillMatchResponse, 0, len(r.MatchedSkills)),
			SkillsNotMatched: make([]SkillMatchResponse, 0, len(r.MissingSkills)),
		}
		for _, m := range r.MatchedSkills {
			item.SkillsMatched = append(item.SkillsMatched, SkillMatchResponse{
				Name:            m.Name,
				RequiredLevel:   m.RequiredLevel,
				DeveloperLevel:  m.DeveloperLevel,
				YearsExperience: m.YearsExperience,
				Required:        m.Required,
				Met:             true,
			})
		}
		for _, m := range r.MissingSkills {
			item.SkillsNotMatched = append(item.SkillsNotMatched, SkillMatchResponse{
				Name:           m.Name,
				RequiredLevel:  m.RequiredLevel,
				DeveloperLevel: m.DeveloperLevel,
				Required:       m.Required,
			})
		}
		out = append(out, item)
	}
	return out
}

type StoredMatchResponse struct {
	ID             uuid.UUID `json:"id"`
	DeveloperID    uuid.UUID `json:"developer_id"`
	DeveloperName  string    `json:"developer_name"`
	DeveloperEmail string    `json:"developer_email"`
	MatchScore     int       `json:"match_score"`
	MatchReason    string    `json:"match_reason"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

func NewStoredMatches(items []repository.StoredMatch) []StoredMatchResponse {
	out := make([]StoredMatchResponse, 0, len(items))
	for _, m := range items {
		out = append(out, StoredMatchResponse{
			ID:             m.ID,
			DeveloperID:    m.DeveloperID,
			DeveloperName:  m.DeveloperName,
			DeveloperEmail: m.DeveloperEmail,
			MatchScore:     m.MatchScore,
			MatchReason:    m.Reason,
			Status:         m.Status,
			CreatedAt:      m.CreatedAt,
		})
	}
	return out
}
