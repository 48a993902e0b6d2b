// Package notify implements the in-process notification queue: a FIFO backlog
// drained by a bounded number of workers. Producers never block and never see
// job failures. A production deployment would put a durable broker here.
package notify

import (
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// TypeOrderCreated tags the notification emitted after a successful order.
const TypeOrderCreated = "ORDER_CREATED"

// Job is a fire-and-forget unit of work. The payload is opaque to the queue.
type Job struct {
	Type    string
	Payload map[string]any
}

// Handler processes a single job. Errors are swallowed by the queue.
type Handler func(job Job) error

// Stats is a point-in-time snapshot of queue counters, exposed so operators
// can watch backlog depth and failures without changing the enqueue contract.
type Stats struct {
	Enqueued  uint64
	Completed uint64
	Failed    uint64
	Backlog   int
	Active    int
}

// Queue is a bounded-concurrency producer-consumer queue. The backlog is
// unbounded: producers are never blocked or rejected, so a sustained enqueue
// rate above processing throughput grows memory without limit. That is a
// known limitation of the contract, not something the queue guards against.
type Queue struct {
	mu          sync.Mutex
	backlog     []Job
	active      int
	concurrency int
	handler     Handler

	enqueued  uint64
	completed uint64
	failed    uint64
}

// NewQueue builds a queue draining at most concurrency jobs at once.
// A concurrency below 1 is raised to 1. A nil handler gets the default
// simulated delivery.
func NewQueue(concurrency int, handler Handler) *Queue {
	if concurrency < 1 {
		concurrency = 1
	}
	if handler == nil {
		handler = deliverNotification
	}
	return &Queue{
		concurrency: concurrency,
		handler:     handler,
	}
}

// Enqueue appends the job to the backlog and kicks a drain pass. It always
// succeeds and never blocks on job processing.
func (q *Queue) Enqueue(job Job) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.backlog = append(q.backlog, job)
	q.enqueued++
	q.drainLocked()
}

// drainLocked starts workers for queued jobs while capacity remains.
// Callers must hold q.mu.
func (q *Queue) drainLocked() {
	for q.active < q.concurrency && len(q.backlog) > 0 {
		job := q.backlog[0]
		q.backlog = q.backlog[1:]
		q.active++
		go q.run(job)
	}
}

// run processes one job and then frees its worker slot. A job that fails or
// panics never affects the producer or the jobs behind it.
func (q *Queue) run(job Job) {
	err := q.process(job)

	q.mu.Lock()
	defer q.mu.Unlock()

	q.active--
	if err != nil {
		q.failed++
		log.Warn().Err(err).Str("job_type", job.Type).Msg("notify: job failed, dropping")
	} else {
		q.completed++
	}
	q.drainLocked()
}

func (q *Queue) process(job Job) (err error) {
	defer func() {
		if p := recover(); p != nil {
			log.Warn().Interface("panic_value", p).Str("job_type", job.Type).Msg("notify: job panicked")
			err = &panicError{value: p}
		}
	}()
	return q.handler(job)
}

// Stats returns a snapshot of the queue counters.
func (q *Queue) Stats() Stats {
	q.mu.Lock()
	defer q.mu.Unlock()

	return Stats{
		Enqueued:  q.enqueued,
		Completed: q.completed,
		Failed:    q.failed,
		Backlog:   len(q.backlog),
		Active:    q.active,
	}
}

// deliverNotification simulates sending a notification with variable latency.
func deliverNotification(job Job) error {
	time.Sleep(time.Duration(20+rand.Intn(60)) * time.Millisecond)
	log.Debug().Str("job_type", job.Type).Interface("payload", job.Payload).Msg("notify: notification delivered")
	return nil
}

type panicError struct {
	value any
}

func (e *panicError) Error() string {
	return "job handler panicked"
}
