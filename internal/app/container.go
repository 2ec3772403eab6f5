package app

import (
	"context"
	"fmt"
	"time"

	"dev-match/internal/config"
	"dev-match/internal/database"
	dbpostgres "dev-match/internal/database/postgres"
	"dev-match/internal/infrastructure/cache"
	"dev-match/internal/infrastructure/oracle"
	"dev-match/internal/pkg/logger"
	"dev-match/internal/repository"
	"dev-match/internal/usecase"
	"dev-match/internal/usecase/evaluator"
	"dev-match/internal/ws"

	"go.uber.org/zap"
)

// Container owns the long-lived dependencies of the server process.
type Container struct {
	Config config.Config
	Logger *zap.Logger
	DB     database.DB
	Cache  *cache.Redis
	Hub    *ws.Hub

	Matching *usecase.Matching
	Skills   *usecase.Skill
	Pool     *usecase.CachedDeveloperPool
}

func NewContainer(ctx context.Context, cfg config.Config, log *zap.Logger) (*Container, error) {
	log = logger.OrNop(log)

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(connectCtx, cfg.Database)
	if err != nil {
		return nil, err
	}

	gemini, err := oracle.NewGemini(ctx, cfg.Oracle, log.Named("oracle"))
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init oracle: %w", err)
	}

	redis := cache.NewRedis(cfg.Redis, log.Named("cache"))
	hub := ws.NewHub(log.Named("ws"))

	pool := usecase.NewDeveloperPool(repository.NewPostgresDeveloperRepository(db), redis, cfg.Redis.TTL, log)
	skills := usecase.NewSkillUsecase(repository.NewPostgresSkillRepository(db), redis, log)
	matchingUC := usecase.NewMatchingUsecase(usecase.MatchingDeps{
		Projects:  repository.NewPostgresProjectRepository(db),
		History:   repository.NewPostgresChatHistoryRepository(db),
		Matches:   repository.NewPostgresMatchRepository(db),
		Pool:      pool,
		Evaluator: evaluator.New(gemini, log.Named("evaluator"), cfg.Oracle.Timeout),
		Notifier:  ws.NewNotifier(hub, log.Named("ws")),
		Policy:    cfg.Ranking.Policy(),
		Logger:    log.Named("matching"),
	})

	log.Info("container ready",
		zap.String("oracle_model", gemini.Model()),
		zap.Bool("cache", redis.Available()),
		zap.String("ranking_policy", cfg.Ranking.Preset),
		zap.Int("ranking_top_n", cfg.Ranking.TopN),
		zap.Int("ranking_min_score", cfg.Ranking.MinScore),
	)

	return &Container{
		Config:   cfg,
		Logger:   log,
		DB:       db,
		Cache:    redis,
		Hub:      hub,
		Matching: matchingUC,
		Skills:   skills,
		Pool:     pool,
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			c.Logger.Warn("close cache", zap.Error(err))
		}
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
