package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/okorolev/shopmaint/pkg/messaging"
)

// RunCompletedEvent is published after a maintenance run finishes in apply
// mode. Preview runs and failed runs never produce an event.
type RunCompletedEvent struct {
	RunID       uuid.UUID `json:"run_id"`
	Operation   string    `json:"operation"`
	Mutations   int       `json:"mutations"`
	CompletedAt time.Time `json:"completed_at"`
}

func (e RunCompletedEvent) Subject() string {
	return messaging.MaintenanceCompletedSubject
}

func (e RunCompletedEvent) Payload() ([]byte, error) {
	return json.Marshal(e)
}
