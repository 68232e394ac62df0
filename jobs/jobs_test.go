package jobs

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/MajorLift/metamask-core/datastore"
)

type memoryStore struct {
	mu   sync.Mutex
	jobs map[uuid.UUID]Job
}

func newMemoryStore() *memoryStore {
	return &memoryStore{jobs: make(map[uuid.UUID]Job)}
}

func (m *memoryStore) Jobs(o datastore.ListOptions) ([]Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	jj := make([]Job, 0, len(m.jobs))
	for _, j := range m.jobs {
		jj = append(jj, j)
	}
	return jj, nil
}

func (m *memoryStore) Job(id uuid.UUID) (Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[id]
	if !ok {
		return Job{}, fmt.Errorf("job not found")
	}
	return j, nil
}

func (m *memoryStore) InsertJob(j *Job) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[j.ID] = *j
	return nil
}

func (m *memoryStore) UpdateJob(j *Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[j.ID] = *j
	return nil
}

func waitForStatus(t *testing.T, store *memoryStore, id uuid.UUID, want Status) Job {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		j, err := store.Job(id)
		if err == nil && j.Status == want {
			return j
		}
		time.Sleep(5 * time.Millisecond)
	}
	j, _ := store.Job(id)
	t.Fatalf("job never reached status %s, last seen %s", want, j.Status)
	return Job{}
}

func TestWorkerPoolRunsJobs(t *testing.T) {
	store := newMemoryStore()
	pool := NewWorkerPool(store, 10, 2)
	pool.Start()
	defer pool.Stop()

	job, err := pool.AddJob("transaction_sync", func() (string, error) {
		return "synced 3 transactions", nil
	})
	if err != nil {
		t.Fatal(err)
	}

	done := waitForStatus(t, store, job.ID, Complete)
	if done.Result != "synced 3 transactions" {
		t.Errorf("unexpected result: %q", done.Result)
	}
	if done.Error != "" {
		t.Errorf("expected empty error, got %q", done.Error)
	}
}

func TestWorkerPoolRecordsFailure(t *testing.T) {
	store := newMemoryStore()
	pool := NewWorkerPool(store, 10, 1)
	pool.Start()
	defer pool.Stop()

	job, err := pool.AddJob("transaction_sync", func() (string, error) {
		return "", fmt.Errorf("explorer unavailable")
	})
	if err != nil {
		t.Fatal(err)
	}

	failed := waitForStatus(t, store, job.ID, Error)
	if failed.Error != "explorer unavailable" {
		t.Errorf("unexpected error message: %q", failed.Error)
	}
}

func TestWorkerPoolRejectsWhenFull(t *testing.T) {
	store := newMemoryStore()
	pool := NewWorkerPool(store, 1, 1)
	// Not started; nothing drains the queue.

	block := func() (string, error) { return "", nil }

	if _, err := pool.AddJob("transaction_sync", block); err != nil {
		t.Fatal(err)
	}

	job, err := pool.AddJob("transaction_sync", block)
	if err != ErrQueueFull {
		t.Fatalf("expected ErrQueueFull, got %v", err)
	}
	if job.Status != QueueFull {
		t.Errorf("expected status %s, got %s", QueueFull, job.Status)
	}

	pool.Start()
	pool.Stop()
}

func TestStatusTextRoundTrip(t *testing.T) {
	for _, s := range []Status{Init, Accepted, QueueFull, Error, Complete} {
		if got := StatusFromText(s.String()); got != s {
			t.Errorf("expected %s, got %s", s, got)
		}
	}
	if got := StatusFromText("bogus"); got != Unknown {
		t.Errorf("expected unknown status, got %s", got)
	}
}
