package usecase

import (
	"context"
	"fmt"

	"dev-match/internal/domain/skill"
	"dev-match/internal/infrastructure/cache"
	"dev-match/internal/pkg/logger"
	"dev-match/internal/repository"

	"go.uber.org/zap"
)

type SkillItem struct {
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Aliases  []string `json:"aliases,omitempty"`
}

// Catalog is everything the project form needs to offer choices.
type Catalog struct {
	Levels       []string            `json:"levels"`
	Categories   []skill.Category    `json:"categories"`
	ProjectTypes []skill.ProjectType `json:"project_types"`
	Skills       []SkillItem         `json:"skills"`
}

type SkillUsecase interface {
	Catalog(ctx context.Context) (Catalog, error)
}

type Skill struct {
	repo   repository.SkillRepository
	cache  Cache
	logger *zap.Logger
}

func NewSkillUsecase(repo repository.SkillRepository, c Cache, log *zap.Logger) *Skill {
	return &Skill{repo: repo, cache: c, logger: logger.OrNop(log)}
}

// Catalog merges the built-in catalog with skills stored in the database.
func (u *Skill) Catalog(ctx context.Context) (Catalog, error) {
	if u.cache != nil {
		var cached Catalog
		found, err := u.cache.GetJSON(ctx, cache.KeySkillCatalog, &cached)
		if err != nil {
			u.logger.Warn("skill catalog cache read failed", zap.Error(err))
		}
		if found {
			return cached, nil
		}
	}

	items, err := u.repo.GetAllSkills(ctx)
	if err != nil {
		return Catalog{}, fmt.Errorf("%w: list skills: %w", ErrInternal, err)
	}

	out := Catalog{
		Levels:       make([]string, 0, len(skill.Levels())),
		Categories:   skill.Categories(),
		ProjectTypes: skill.ProjectTypes(),
		Skills:       make([]SkillItem, 0, len(items)),
	}
	for _, l := range skill.Levels() {
		out.Levels = append(out.Levels, l.String())
	}
	for _, it := range items {
		category := it.Category
		if category == "" {
			category = skill.CategoryOf(it.Name)
		}
		item := SkillItem{Name: it.Name, Category: category}
		if alts := skill.Aliases(it.Name); len(alts) > 0 {
			item.Aliases = alts
		}
		out.Skills = append(out.Skills, item)
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, cache.KeySkillCatalog, out, 0); err != nil {
			u.logger.Warn("skill catalog cache write failed", zap.Error(err))
		}
	}
	return out, nil
}
