package main

import (
	"context"
	"time"

	"dev-match/internal/database/seeder"
	"dev-match/internal/infrastructure/cache"
	"dev-match/internal/repository"
	"dev-match/internal/usecase"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the skill catalog and sample developers, then drop cached pools",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
		defer cancel()

		e, err := setup(ctx)
		if err != nil {
			return err
		}
		defer e.close()

		if err := (seeder.Runner{Seeders: seeder.Defaults()}).Run(ctx, e.db); err != nil {
			return err
		}
		e.log.Info("seed complete", zap.Int("sample_developers", len(seeder.SampleDevelopers())))

		redis := cache.NewRedis(e.cfg.Redis, e.log.Named("cache"))
		defer func() { _ = redis.Close() }()
		pool := usecase.NewDeveloperPool(repository.NewPostgresDeveloperRepository(e.db), redis, e.cfg.Redis.TTL, e.log)
		if err := pool.Invalidate(ctx); err != nil {
			e.log.Warn("developer pool invalidation failed", zap.Error(err))
		}
		if err := redis.DeleteByPattern(ctx, cache.SkillKeysPattern); err != nil {
			e.log.Warn("skill cache invalidation failed", zap.Error(err))
		}
		return nil
	},
}
