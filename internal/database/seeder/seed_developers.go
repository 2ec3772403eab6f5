package seeder

import (
	"context"
	"fmt"

	"dev-match/internal/database"
	"dev-match/internal/domain/developer"
	"dev-match/internal/domain/skill"

	"github.com/google/uuid"
)

type SampleSkill struct {
	Name  string
	Level skill.Level
	Years int
}

type SampleDeveloper struct {
	Name          string
	Email         string
	Public        bool
	AvailableFrom string
	Skills        []SampleSkill
}

// SampleDevelopers is the demo pool loaded by DevelopersSeeder. One profile
// is private so that the public filter is visible when matching.
func SampleDevelopers() []SampleDeveloper {
	return []SampleDeveloper{
		{
			Name: "Aiko Tanaka", Email: "aiko@example.com", Public: true, AvailableFrom: "now",
			Skills: []SampleSkill{
				{"Python", skill.LevelExpert, 8},
				{"Django", skill.LevelAdvanced, 5},
				{"PostgreSQL", skill.LevelAdvanced, 6},
				{"Docker", skill.LevelIntermediate, 3},
			},
		},
		{
			Name: "Ben Carter", Email: "ben@example.com", Public: true, AvailableFrom: "2025-07-01",
			Skills: []SampleSkill{
				{"Go", skill.LevelExpert, 6},
				{"Kubernetes", skill.LevelAdvanced, 4},
				{"AWS", skill.LevelAdvanced, 5},
				{"PostgreSQL", skill.LevelIntermediate, 4},
			},
		},
		{
			Name: "Chiara Rossi", Email: "chiara@example.com", Public: true, AvailableFrom: "now",
			Skills: []SampleSkill{
				{"TypeScript", skill.LevelExpert, 7},
				{"React", skill.LevelExpert, 6},
				{"Next.js", skill.LevelAdvanced, 3},
				{"Node.js", skill.LevelAdvanced, 5},
			},
		},
		{
			Name: "Daichi Mori", Email: "daichi@example.com", Public: true, AvailableFrom: "2025-09-15",
			Skills: []SampleSkill{
				{"Swift", skill.LevelAdvanced, 5},
				{"Kotlin", skill.LevelIntermediate, 2},
				{"Flutter", skill.LevelIntermediate, 2},
			},
		},
		{
			Name: "Elena Petrova", Email: "elena@example.com", Public: true, AvailableFrom: "now",
			Skills: []SampleSkill{
				{"Python", skill.LevelAdvanced, 5},
				{"TensorFlow", skill.LevelAdvanced, 4},
				{"PyTorch", skill.LevelExpert, 4},
				{"Docker", skill.LevelBeginner, 1},
			},
		},
		{
			Name: "Farid Hakim", Email: "farid@example.com", Public: false, AvailableFrom: "now",
			Skills: []SampleSkill{
				{"Python", skill.LevelExpert, 10},
				{"Go", skill.LevelAdvanced, 3},
			},
		},
	}
}

// DevelopersSeeder inserts a small pool of active developers with skills.
type DevelopersSeeder struct{}

func (DevelopersSeeder) Name() string { return "developers" }

func (DevelopersSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "developers", "id", "name", "email", "is_public", "status", "available_from"); err != nil {
		return err
	}
	if err := EnsureTableColumns(ctx, db, "developer_skills", "id", "developer_id", "skill_name", "skill_level", "years_experience"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, d := range SampleDevelopers() {
		id := uuid.New()
		row := tx.QueryRow(
			ctx,
			`INSERT INTO developers (id, name, email, is_public, status, available_from)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
			RETURNING id`,
			id,
			d.Name,
			d.Email,
			d.Public,
			developer.StatusActive,
			d.AvailableFrom,
		)
		if err := row.Scan(&id); err != nil {
			return fmt.Errorf("insert developer %s: %w", d.Email, err)
		}

		for _, s := range d.Skills {
			_, err := tx.Exec(
				ctx,
				`INSERT INTO developer_skills (id, developer_id, skill_name, skill_level, years_experience)
				VALUES (gen_random_uuid(), $1, $2, $3, $4)
				ON CONFLICT (developer_id, skill_name) DO NOTHING`,
				id,
				s.Name,
				s.Level.String(),
				s.Years,
			)
			if err != nil {
				return fmt.Errorf("insert skill %s for %s: %w", s.Name, d.Email, err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
