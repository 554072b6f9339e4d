package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/cholospace/mission-control/internal/api/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

// Deleter removes a stored avatar blob.
type Deleter interface {
	Delete(ctx context.Context, ref string) error
}

type cleanupJob struct {
	username string
	ref      string
}

// Dispatcher deletes superseded avatar blobs on a fixed set of workers. Jobs
// are sharded by username so one identity's cleanups run in submission order.
type Dispatcher struct {
	workers []chan cleanupJob
	storage Deleter
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, storage Deleter, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan cleanupJob, numWorkers),
		storage: storage,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan cleanupJob, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue schedules ref for deletion. It never blocks the caller: when the
// worker's buffer is full the job is dropped and the blob stays orphaned.
func (d *Dispatcher) Enqueue(username, ref string) {
	idx := d.shardIndex(username)
	select {
	case d.workers[idx] <- cleanupJob{username: username, ref: ref}:
		metrics.JanitorQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.AvatarCleanupTotal.WithLabelValues("dropped").Inc()
		d.log.Warn().Str("username", username).Str("ref", ref).Msg("avatar cleanup queue full, job dropped")
	}
}

// shardIndex maps a username deterministically to a worker index.
func (d *Dispatcher) shardIndex(username string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(username))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan cleanupJob) {
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-ch:
			if !ok {
				return
			}
			metrics.JanitorQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			if err := d.storage.Delete(ctx, job.ref); err != nil {
				metrics.AvatarCleanupTotal.WithLabelValues("failed").Inc()
				d.log.Error().Err(err).
					Str("username", job.username).
					Str("ref", job.ref).
					Int("worker_id", id).
					Msg("avatar cleanup failed")
				continue
			}
			metrics.AvatarCleanupTotal.WithLabelValues("deleted").Inc()
			d.log.Debug().Str("username", job.username).Str("ref", job.ref).Msg("superseded avatar removed")
		}
	}
}
