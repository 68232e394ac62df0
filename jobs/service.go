package jobs

import (
	"github.com/google/uuid"

	"github.com/MajorLift/metamask-core/datastore"
)

// Service lists jobs and fetches details for a single job.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store}
}

func (s *Service) List(limit, offset int) ([]Job, error) {
	o := datastore.ParseListOptions(limit, offset)
	return s.store.Jobs(o)
}

func (s *Service) Details(jobID string) (Job, error) {
	id, err := uuid.Parse(jobID)
	if err != nil {
		return Job{}, err
	}
	return s.store.Job(id)
}
