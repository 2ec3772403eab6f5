package repository

import (
	"context"
	"fmt"

	"dev-match/internal/database"
	"dev-match/internal/domain/project"

	"github.com/google/uuid"
)

type ChatHistoryRepository interface {
	Append(ctx context.Context, projectID uuid.UUID, role project.Role, text string) (project.Turn, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) (project.Conversation, error)
}

type PostgresChatHistoryRepository struct {
	db database.DB
}

func NewPostgresChatHistoryRepository(db database.DB) *PostgresChatHistoryRepository {
	return &PostgresChatHistoryRepository{db: db}
}

// Append stores a turn after the current last ordinal of the project.
func (r *PostgresChatHistoryRepository) Append(ctx context.Context, projectID uuid.UUID, role project.Role, text string) (project.Turn, error) {
	if !role.Valid() {
		return project.Turn{}, fmt.Errorf("invalid role %q", role)
	}

	t := project.Turn{ID: uuid.New(), ProjectID: projectID, Role: role, Text: text}
	row := r.db.QueryRow(ctx,
		`INSERT INTO project_chat_history (id, project_id, role, message, ordinal)
		 SELECT $1, $2, $3, $4, COALESCE(MAX(ordinal), 0) + 1
		 FROM project_chat_history
		 WHERE project_id = $2
		 RETURNING ordinal, created_at`,
		t.ID, projectID, string(role), text,
	)
	if err := row.Scan(&t.Ordinal, &t.CreatedAt); err != nil {
		return project.Turn{}, err
	}
	return t, nil
}

func (r *PostgresChatHistoryRepository) ListByProject(ctx context.Context, projectID uuid.UUID) (project.Conversation, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, project_id, role, message, ordinal, created_at
		 FROM project_chat_history
		 WHERE project_id = $1
		 ORDER BY ordinal ASC, created_at ASC`,
		projectID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(project.Conversation, 0)
	for rows.Next() {
		var t project.Turn
		var role string
		if err := rows.Scan(&t.ID, &t.ProjectID, &role, &t.Text, &t.Ordinal, &t.CreatedAt); err != nil {
			return nil, err
		}
		t.Role = project.Role(role)
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
