package seeder

import (
	"context"
	"fmt"

	"dev-match/internal/database"
	"dev-match/internal/domain/skill"
)

// SkillsSeeder loads every catalog skill into the skills table.
type SkillsSeeder struct{}

func (SkillsSeeder) Name() string { return "skills" }

func (SkillsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "skills", "id", "name", "category", "created_at"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, cat := range skill.Categories() {
		for _, name := range cat.Skills {
			_, err := tx.Exec(
				ctx,
				`INSERT INTO skills (id, name, category) VALUES (gen_random_uuid(), $1, $2) ON CONFLICT (name) DO NOTHING`,
				name,
				cat.Key,
			)
			if err != nil {
				return fmt.Errorf("insert skill %s: %w", name, err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
