package repository

import (
	"context"
	"fmt"
	"time"

	"dev-match/internal/database"
	"dev-match/internal/domain/match"
	"dev-match/internal/domain/project"

	"github.com/google/uuid"
)

// StoredMatch is a persisted suggestion joined with the developer contact.
type StoredMatch struct {
	match.Suggestion
	DeveloperName  string
	DeveloperEmail string
}

type MatchRepository interface {
	SaveRun(ctx context.Context, projectID uuid.UUID, suggestions []match.Suggestion) error
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]StoredMatch, error)
}

type PostgresMatchRepository struct {
	db database.DB
}

func NewPostgresMatchRepository(db database.DB) *PostgresMatchRepository {
	return &PostgresMatchRepository{db: db}
}

// SaveRun replaces the suggested matches of a project with the latest run and
// marks the project as matched.
func (r *PostgresMatchRepository) SaveRun(ctx context.Context, projectID uuid.UUID, suggestions []match.Suggestion) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	if _, err := tx.Exec(ctx,
		`DELETE FROM matches WHERE project_id = $1 AND status = $2`,
		projectID, match.StatusSuggested,
	); err != nil {
		return fmt.Errorf("clear previous matches: %w", err)
	}

	now := time.Now().UTC()
	for _, m := range suggestions {
		if m.DeveloperID == uuid.Nil {
			continue
		}
		if m.ID == uuid.Nil {
			m.ID = uuid.New()
		}
		if m.Status == "" {
			m.Status = match.StatusSuggested
		}
		if m.CreatedAt.IsZero() {
			m.CreatedAt = now
		}
		_, err := tx.Exec(ctx,
			`INSERT INTO matches (id, project_id, developer_id, match_score, match_reason, status, created_at)
			 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			m.ID,
			projectID,
			m.DeveloperID,
			m.MatchScore,
			m.Reason,
			m.Status,
			m.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert match: %w", err)
		}
	}

	affected, err := tx.Exec(ctx,
		`UPDATE projects SET status = $1, updated_at = $2 WHERE id = $3`,
		string(project.StatusMatched), now, projectID,
	)
	if err != nil {
		return fmt.Errorf("update project status: %w", err)
	}
	if affected == 0 {
		return ErrProjectNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *PostgresMatchRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]StoredMatch, error) {
	rows, err := r.db.Query(ctx,
		`SELECT m.id, m.project_id, m.developer_id, m.match_score, COALESCE(m.match_reason, ''), m.status, m.created_at,
			d.name, d.email
		 FROM matches m
		 JOIN developers d ON d.id = m.developer_id
		 WHERE m.project_id = $1
		 ORDER BY m.match_score DESC, m.created_at ASC`,
		projectID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]StoredMatch, 0)
	for rows.Next() {
		var m StoredMatch
		if err := rows.Scan(
			&m.ID,
			&m.ProjectID,
			&m.DeveloperID,
			&m.MatchScore,
			&m.Reason,
			&m.Status,
			&m.CreatedAt,
			&m.DeveloperName,
			&m.DeveloperEmail,
		); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
