package ws

import (
	"encoding/json"
	"time"

	"dev-match/internal/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const EventMatchesReady = "matches_ready"

type MatchesReadyEvent struct {
	Type      string    `json:"type"`
	ProjectID uuid.UUID `json:"project_id"`
	Count     int       `json:"count"`
	Timestamp string    `json:"timestamp"`
}

// Notifier publishes matching events to websocket subscribers.
type Notifier struct {
	hub    *Hub
	logger *zap.Logger
	now    func() time.Time
}

func NewNotifier(hub *Hub, log *zap.Logger) *Notifier {
	return &Notifier{hub: hub, logger: logger.OrNop(log), now: time.Now}
}

func (n *Notifier) NotifyMatchesReady(projectID uuid.UUID, count int) {
	if n == nil || n.hub == nil {
		return
	}

	evt := MatchesReadyEvent{
		Type:      EventMatchesReady,
		ProjectID: projectID,
		Count:     count,
		Timestamp: n.now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		n.logger.Warn("encode matches_ready event", zap.Error(err))
		return
	}

	n.hub.Broadcast(projectID, b)
}
