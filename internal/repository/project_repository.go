package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"dev-match/internal/database"
	"dev-match/internal/domain/project"
	"dev-match/internal/domain/skill"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrProjectNotFound = errors.New("project not found")

type ProjectRepository interface {
	Create(ctx context.Context, p project.Project) (project.Project, error)
	FindByID(ctx context.Context, id uuid.UUID) (project.Project, error)
}

type PostgresProjectRepository struct {
	db database.DB
}

func NewPostgresProjectRepository(db database.DB) *PostgresProjectRepository {
	return &PostgresProjectRepository{db: db}
}

// Create inserts the project row and its skill rows in one transaction.
func (r *PostgresProjectRepository) Create(ctx context.Context, p project.Project) (project.Project, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Status == "" {
		p.Status = project.StatusDraft
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	if p.Types == nil {
		p.Types = []string{}
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return project.Project{}, err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	_, err = tx.Exec(ctx,
		`INSERT INTO projects (
			id, title, project_type, project_type_other, required_skills_other, preferred_skills_other,
			start_date, end_date, additional_requirements, status, created_at, updated_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$11)`,
		p.ID,
		p.Title,
		p.Types,
		p.TypeOther,
		p.RequiredOther,
		p.PreferredOther,
		p.StartDate,
		p.EndDate,
		p.Notes,
		string(p.Status),
		p.CreatedAt,
	)
	if err != nil {
		return project.Project{}, fmt.Errorf("insert project: %w", err)
	}

	for _, s := range p.Skills() {
		_, err := tx.Exec(ctx,
			`INSERT INTO project_required_skills (id, project_id, skill_name, minimum_level, is_required)
			 VALUES ($1,$2,$3,$4,$5)`,
			uuid.New(),
			p.ID,
			s.Name,
			s.MinLevel.String(),
			s.Required,
		)
		if err != nil {
			return project.Project{}, fmt.Errorf("insert project skill %s: %w", s.Name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return project.Project{}, fmt.Errorf("commit: %w", err)
	}
	return p, nil
}

func (r *PostgresProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (project.Project, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, title, project_type, project_type_other, required_skills_other, preferred_skills_other,
			start_date, end_date, additional_requirements, status, created_at
		 FROM projects
		 WHERE id = $1`,
		id,
	)

	var p project.Project
	var status string
	if err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Types,
		&p.TypeOther,
		&p.RequiredOther,
		&p.PreferredOther,
		&p.StartDate,
		&p.EndDate,
		&p.Notes,
		&status,
		&p.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return project.Project{}, ErrProjectNotFound
		}
		return project.Project{}, err
	}
	p.Status = project.Status(status)

	rows, err := r.db.Query(ctx,
		`SELECT skill_name, minimum_level, is_required
		 FROM project_required_skills
		 WHERE project_id = $1
		 ORDER BY is_required DESC, skill_name ASC`,
		id,
	)
	if err != nil {
		return project.Project{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var s project.SkillRequirement
		var level string
		if err := rows.Scan(&s.Name, &level, &s.Required); err != nil {
			return project.Project{}, err
		}
		s.MinLevel, _ = skill.ParseLevel(level)
		if s.Required {
			p.RequiredSkills = append(p.RequiredSkills, s)
		} else {
			p.PreferredSkills = append(p.PreferredSkills, s)
		}
	}
	if err := rows.Err(); err != nil {
		return project.Project{}, err
	}
	return p, nil
}
