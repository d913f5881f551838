package application

import (
	"time"

	"github.com/google/uuid"
)

const StatusApplied = "applied"

type Application struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	JobID     uuid.UUID
	TailorID  uuid.UUID
	Status    string
	AppliedAt time.Time
}
