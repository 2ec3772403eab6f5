package evaluator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dev-match/internal/domain/project"
	"dev-match/internal/pkg/logger"

	"go.uber.org/zap"
)

var ErrOracleUnavailable = errors.New("oracle unavailable")

const logPreviewLimit = 300

// Oracle is the hosted language model. Generate returns the raw text reply.
type Oracle interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

type Evaluator struct {
	oracle  Oracle
	logger  *zap.Logger
	timeout time.Duration
}

func New(oracle Oracle, log *zap.Logger, timeout time.Duration) *Evaluator {
	return &Evaluator{oracle: oracle, logger: logger.OrNop(log), timeout: timeout}
}

// Evaluate makes exactly one oracle call. Transport failures are returned
// wrapped in ErrOracleUnavailable; malformed replies become a Question.
func (e *Evaluator) Evaluate(ctx context.Context, p project.Project, history project.Conversation, latest string) (Result, error) {
	if e == nil || e.oracle == nil {
		return nil, ErrOracleUnavailable
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	prompt := BuildPrompt(p, history, latest)
	e.logger.Debug("oracle request",
		zap.String("project_id", p.ID.String()),
		zap.Int("history_turns", len(history)),
		zap.String("prompt", logger.TruncateForLog(prompt, logPreviewLimit)),
	)

	started := time.Now()
	text, err := e.oracle.Generate(ctx, systemInstruction, prompt)
	if err != nil {
		e.logger.Error("oracle call failed", zap.String("project_id", p.ID.String()), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrOracleUnavailable, err)
	}

	res := Parse(text, p)
	fields := []zap.Field{
		zap.String("project_id", p.ID.String()),
		zap.Duration("elapsed", time.Since(started)),
		zap.String("reply", logger.TruncateForLog(text, logPreviewLimit)),
	}
	switch r := res.(type) {
	case Sufficient:
		e.logger.Info("oracle verdict: sufficient", append(fields, zap.Int("skills", len(r.Requirements.Skills)))...)
	case Question:
		e.logger.Info("oracle verdict: question", fields...)
	}
	return res, nil
}
