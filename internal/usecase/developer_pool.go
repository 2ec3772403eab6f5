package usecase

import (
	"context"
	"fmt"
	"time"

	"dev-match/internal/domain/developer"
	"dev-match/internal/infrastructure/cache"
	"dev-match/internal/pkg/logger"
	"dev-match/internal/repository"

	"go.uber.org/zap"
)

type DeveloperPool interface {
	Matchable(ctx context.Context) ([]developer.Profile, error)
	Invalidate(ctx context.Context) error
}

// CachedDeveloperPool serves the active public developer pool, caching it for
// a short TTL. Cache failures fall through to the store.
type CachedDeveloperPool struct {
	repo   repository.DeveloperRepository
	cache  Cache
	ttl    time.Duration
	logger *zap.Logger
}

func NewDeveloperPool(repo repository.DeveloperRepository, c Cache, ttl time.Duration, log *zap.Logger) *CachedDeveloperPool {
	return &CachedDeveloperPool{repo: repo, cache: c, ttl: ttl, logger: logger.OrNop(log)}
}

func (p *CachedDeveloperPool) Matchable(ctx context.Context) ([]developer.Profile, error) {
	if p.cache != nil {
		var cached []developer.Profile
		found, err := p.cache.GetJSON(ctx, cache.KeyDeveloperPool, &cached)
		if err != nil {
			p.logger.Warn("developer pool cache read failed", zap.Error(err))
		}
		if found {
			return cached, nil
		}
	}

	profiles, err := p.repo.ListMatchable(ctx)
	if err != nil {
		return nil, fmt.Errorf("list developers: %w", err)
	}

	out := make([]developer.Profile, 0, len(profiles))
	for _, prof := range profiles {
		if !prof.Matchable() {
			continue
		}
		out = append(out, prof)
	}

	if p.cache != nil {
		if err := p.cache.SetJSON(ctx, cache.KeyDeveloperPool, out, p.ttl); err != nil {
			p.logger.Warn("developer pool cache write failed", zap.Error(err))
		}
	}
	return out, nil
}

func (p *CachedDeveloperPool) Invalidate(ctx context.Context) error {
	if p.cache == nil {
		return nil
	}
	return p.cache.Delete(ctx, cache.KeyDeveloperPool)
}
