package messaging

import (
	"context"
)

// MaintenanceCompletedSubject is the JetStream subject for finished
// maintenance runs.
const MaintenanceCompletedSubject = "maintenance.run.completed"

type Event interface {
	Subject() string
	Payload() ([]byte, error)
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}
