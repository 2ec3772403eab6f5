package developer

import (
	"time"

	"dev-match/internal/domain/schedule"
	"dev-match/internal/domain/skill"

	"github.com/google/uuid"
)

const StatusActive = "active"

type Skill struct {
	Name            string      `json:"name"`
	Level           skill.Level `json:"level"`
	YearsExperience int         `json:"years_experience"`
}

// Profile is a developer record owned by the external store. The matcher only
// sees profiles that are active and public.
type Profile struct {
	ID            uuid.UUID      `json:"id"`
	Name          string         `json:"name"`
	Email         string         `json:"email"`
	IsPublic      bool           `json:"is_public"`
	Status        string         `json:"status"`
	AvailableFrom schedule.Start `json:"available_from"`
	Skills        []Skill        `json:"skills"`
	CreatedAt     time.Time      `json:"created_at"`
}

func (p Profile) Matchable() bool {
	return p.IsPublic && p.Status == StatusActive
}
