package jobs

import (
	"github.com/google/uuid"

	"github.com/MajorLift/metamask-core/datastore"
)

// Store manages data regarding jobs.
type Store interface {
	Jobs(datastore.ListOptions) ([]Job, error)
	Job(id uuid.UUID) (Job, error)
	InsertJob(*Job) error
	UpdateJob(*Job) error
}
