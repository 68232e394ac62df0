package jobs

import (
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
)

// ErrQueueFull is returned by AddJob when the queue has no room left. The
// caller decides whether to surface it as a capacity error.
var ErrQueueFull = fmt.Errorf("job queue is full")

// WorkerPool executes queued jobs on a fixed set of workers, recording every
// state transition in the store.
type WorkerPool struct {
	wg          sync.WaitGroup
	jobChan     chan *Job
	store       Store
	workerCount uint
}

func NewWorkerPool(store Store, capacity, workerCount uint) *WorkerPool {
	return &WorkerPool{
		jobChan:     make(chan *Job, capacity),
		store:       store,
		workerCount: workerCount,
	}
}

// AddJob queues a job for execution. Fails with ErrQueueFull when the queue
// is at capacity; the rejected job is still recorded with status QueueFull.
func (p *WorkerPool) AddJob(jobType string, do func() (string, error)) (*Job, error) {
	job := &Job{Type: jobType, Do: do, Status: Init}
	if err := p.store.InsertJob(job); err != nil {
		return nil, err
	}

	select {
	case p.jobChan <- job:
		job.Status = Accepted
	default:
		job.Status = QueueFull
	}

	if err := p.store.UpdateJob(job); err != nil {
		log.WithFields(log.Fields{"jobId": job.ID, "error": err}).Warn("Failed to update job status")
	}

	if job.Status == QueueFull {
		return job, ErrQueueFull
	}

	return job, nil
}

// PoolStatus is the liveness view of the pool.
type PoolStatus struct {
	QueueLength   int  `json:"queueLength"`
	QueueCapacity int  `json:"queueCapacity"`
	WorkerCount   uint `json:"workerCount"`
}

func (p *WorkerPool) Status() (PoolStatus, error) {
	return PoolStatus{
		QueueLength:   len(p.jobChan),
		QueueCapacity: cap(p.jobChan),
		WorkerCount:   p.workerCount,
	}, nil
}

func (p *WorkerPool) Start() {
	for i := uint(0); i < p.workerCount; i++ {
		p.wg.Add(1)
		go p.work()
	}
}

// Stop closes the queue and waits for in-flight jobs to finish.
func (p *WorkerPool) Stop() {
	close(p.jobChan)
	p.wg.Wait()
}

func (p *WorkerPool) work() {
	defer p.wg.Done()

	for job := range p.jobChan {
		p.process(job)
	}
}

func (p *WorkerPool) process(job *Job) {
	result, err := job.Do()
	if err != nil {
		job.Status = Error
		job.Error = err.Error()
		log.WithFields(log.Fields{"jobId": job.ID, "type": job.Type, "error": err}).Warn("Job failed")
	} else {
		job.Status = Complete
		job.Result = result
	}

	if err := p.store.UpdateJob(job); err != nil {
		log.WithFields(log.Fields{"jobId": job.ID, "error": err}).Warn("Failed to update job status")
	}
}
