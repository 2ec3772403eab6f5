package repository

import (
	"context"

	"dev-match/internal/database"
	"dev-match/internal/domain/developer"
	"dev-match/internal/domain/schedule"
	"dev-match/internal/domain/skill"

	"github.com/google/uuid"
)

type DeveloperRepository interface {
	ListMatchable(ctx context.Context) ([]developer.Profile, error)
}

type PostgresDeveloperRepository struct {
	db database.DB
}

func NewPostgresDeveloperRepository(db database.DB) *PostgresDeveloperRepository {
	return &PostgresDeveloperRepository{db: db}
}

// ListMatchable returns active public developers with their skills, ordered
// by creation time so that ranking ties are reproducible.
func (r *PostgresDeveloperRepository) ListMatchable(ctx context.Context) ([]developer.Profile, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, email, is_public, status, COALESCE(available_from, ''), created_at
		 FROM developers
		 WHERE status = $1 AND is_public = true
		 ORDER BY created_at ASC, id ASC`,
		developer.StatusActive,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]developer.Profile, 0)
	index := map[uuid.UUID]int{}
	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var p developer.Profile
		var available string
		if err := rows.Scan(&p.ID, &p.Name, &p.Email, &p.IsPublic, &p.Status, &available, &p.CreatedAt); err != nil {
			return nil, err
		}
		// An unreadable availability is treated as unknown.
		p.AvailableFrom, _ = schedule.Parse(available)
		p.Skills = make([]developer.Skill, 0)
		index[p.ID] = len(out)
		ids = append(ids, p.ID)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return out, nil
	}

	skillRows, err := r.db.Query(ctx,
		`SELECT developer_id, skill_name, skill_level, COALESCE(years_experience, 0)
		 FROM developer_skills
		 WHERE developer_id = ANY($1)
		 ORDER BY skill_name ASC`,
		ids,
	)
	if err != nil {
		return nil, err
	}
	defer skillRows.Close()

	for skillRows.Next() {
		var devID uuid.UUID
		var s developer.Skill
		var level string
		if err := skillRows.Scan(&devID, &s.Name, &level, &s.YearsExperience); err != nil {
			return nil, err
		}
		lvl, err := skill.ParseLevel(level)
		if err != nil {
			continue
		}
		s.Level = lvl
		i, ok := index[devID]
		if !ok {
			continue
		}
		out[i].Skills = append(out[i].Skills, s)
	}
	if err := skillRows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
