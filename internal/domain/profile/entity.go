package profile

import (
	"time"

	"github.com/google/uuid"
)

// Resume is a user's master resume as plain text.
type Resume struct {
	UserID    uuid.UUID
	Content   string
	FileName  *string
	UpdatedAt time.Time
}

// Intent is a user's declared job-search preferences.
type Intent struct {
	UserID       uuid.UUID
	DesiredRoles []string
	Companies    []string
	Locations    []string
	WorkMode     string
	UpdatedAt    time.Time
}
