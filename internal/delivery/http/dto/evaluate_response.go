package dto

import (
	"dev-match/internal/domain/matching"
	"dev-match/internal/domain/project"
	"dev-match/internal/usecase"

	"github.com/google/uuid"
)

type ChatTurnResponse struct {
	Role    string `json:"role"`
	Message string `json:"message"`
}

type QuestionResponse struct {
	Type        string             `json:"type"`
	ProjectID   uuid.UUID          `json:"project_id"`
	Message     string             `json:"message"`
	ChatHistory []ChatTurnResponse `json:"chat_history"`
}

type MatchesResponse struct {
	Type         string                `json:"type"`
	ProjectID    uuid.UUID             `json:"project_id"`
	Data         []MatchResultResponse `json:"data"`
	Requirements matching.Requirements `json:"requirements"`
}

func NewChatHistory(conv project.Conversation) []ChatTurnResponse {
	out := make([]ChatTurnResponse, 0, len(conv))
	for _, t := range conv {
		out = append(out, ChatTurnResponse{Role: string(t.Role), Message: t.Text})
	}
	return out
}

// NewEvaluateResponse renders an orchestrator outcome as the body the client
// expects: a QuestionResponse or a MatchesResponse.
func NewEvaluateResponse(out usecase.Outcome) interface{} {
	if out.Kind == usecase.OutcomeMatches {
		return MatchesResponse{
			Type:         string(usecase.OutcomeMatches),
			ProjectID:    out.ProjectID,
			Data:         NewMatchResults(out.Matches),
			Requirements: out.Requirements,
		}
	}
	return QuestionResponse{
		Type:        string(usecase.OutcomeQuestion),
		ProjectID:   out.ProjectID,
		Message:     out.Question,
		ChatHistory: NewChatHistory(out.History),
	}
}
