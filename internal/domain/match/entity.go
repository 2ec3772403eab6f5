package match

import (
	"time"

	"github.com/google/uuid"
)

const StatusSuggested = "suggested"

// Suggestion is the persisted outcome of one ranked candidate in a matching run.
type Suggestion struct {
	ID          uuid.UUID
	ProjectID   uuid.UUID
	DeveloperID uuid.UUID
	MatchScore  int
	Reason      string
	Status      string
	CreatedAt   time.Time
}
