package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"dev-match/internal/delivery/http/dto"
	"dev-match/internal/domain/matching"
	"dev-match/internal/infrastructure/cache"
	"dev-match/internal/repository"
	"dev-match/internal/usecase"
	"dev-match/internal/usecase/evaluator"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	scoreTopN     int
	scoreMinScore int
	scoreLegacy   bool
)

// scoreCmd ranks the developer pool against a stored project's form without
// consulting the oracle or writing matches.
var scoreCmd = &cobra.Command{
	Use:   "score <project-id>",
	Short: "Dry-run the matcher for a stored project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid project id: %w", err)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		e, err := setup(ctx)
		if err != nil {
			return err
		}
		defer e.close()

		p, err := repository.NewPostgresProjectRepository(e.db).FindByID(ctx, projectID)
		if err != nil {
			return err
		}
		reqs, ok := evaluator.RequirementsFromProject(p)
		if !ok {
			return fmt.Errorf("project %s has no required skills", projectID)
		}

		redis := cache.NewRedis(e.cfg.Redis, e.log.Named("cache"))
		defer func() { _ = redis.Close() }()
		pool := usecase.NewDeveloperPool(repository.NewPostgresDeveloperRepository(e.db), redis, e.cfg.Redis.TTL, e.log)
		profiles, err := pool.Matchable(ctx)
		if err != nil {
			return err
		}

		policy := scorePolicy(cmd, e.cfg.Ranking.Policy())
		results := matching.Score(reqs, usecase.Candidates(profiles), policy)

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(dto.MatchesResponse{
			Type:         string(usecase.OutcomeMatches),
			ProjectID:    projectID,
			Data:         dto.NewMatchResults(results),
			Requirements: reqs,
		})
	},
}

// scorePolicy applies the command's flags on top of the configured policy.
// --legacy swaps the base for matching.LegacyPolicy before --top and
// --min-score are applied.
func scorePolicy(cmd *cobra.Command, configured matching.Policy) matching.Policy {
	policy := configured
	if scoreLegacy {
		policy = matching.LegacyPolicy
	}
	if cmd.Flags().Changed("top") {
		policy.TopN = scoreTopN
	}
	if cmd.Flags().Changed("min-score") {
		policy.MinScore = scoreMinScore
	}
	return policy
}

func bindScoreFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&scoreTopN, "top", 0, "override RANKING_TOP_N (0 keeps every qualifier)")
	cmd.Flags().IntVar(&scoreMinScore, "min-score", 0, "override RANKING_MIN_SCORE")
	cmd.Flags().BoolVar(&scoreLegacy, "legacy", false, "rank with the legacy policy (top 10, score >= 50)")
}

func init() {
	bindScoreFlags(scoreCmd)
}
