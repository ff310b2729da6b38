package worker

import (
	"context"
	"time"

	"github.com/Raunak-23/EvalAI-paper-correction/internal/repository"
	"github.com/rs/zerolog"
)

const (
	PersistQueueSize    = 1024
	PersistBatchSize    = 50
	PersistBatchTimeout = 500 * time.Millisecond
)

// PersistJob is one key-value snapshot to write through to the state store.
type PersistJob struct {
	Key   string
	Value string
}

// StatePersister writes client state snapshots (notification logs, settings,
// preferences) to the key-value store in the background. Writes are
// fire-and-forget: every piece of state is reconstructible from defaults, so
// a dropped or failed write is logged and forgotten rather than retried.
type StatePersister struct {
	repo repository.StateRepository
	jobs chan PersistJob
	log  zerolog.Logger
}

// NewStatePersister creates a StatePersister.
func NewStatePersister(repo repository.StateRepository, log zerolog.Logger) *StatePersister {
	return &StatePersister{
		repo: repo,
		jobs: make(chan PersistJob, PersistQueueSize),
		log:  log.With().Str("component", "state_persister").Logger(),
	}
}

// Enqueue queues a snapshot for writing. Never blocks; if the queue is full
// the job is dropped and counted.
func (w *StatePersister) Enqueue(job PersistJob) {
	select {
	case w.jobs <- job:
	default:
		w.log.Warn().Str("key", job.Key).Msg("Persist queue full, snapshot dropped")
	}
}

// ----------------------------------------------------------------
// Worker loop with batching
// ----------------------------------------------------------------

// Start runs the persist loop until ctx is cancelled, then drains what is
// left in the queue.
func (w *StatePersister) Start(ctx context.Context) {
	w.log.Info().Msg("StatePersister started")

	batch := make([]PersistJob, 0, PersistBatchSize)
	timer := time.NewTimer(PersistBatchTimeout)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Shutdown requested. Flushing remaining snapshots...")
			w.drain(batch)
			return

		case job := <-w.jobs:
			batch = append(batch, job)
			if len(batch) >= PersistBatchSize {
				w.flush(context.Background(), batch)
				batch = batch[:0]
			}

		case <-timer.C:
			if len(batch) > 0 {
				w.flush(context.Background(), batch)
				batch = batch[:0]
			}
			timer.Reset(PersistBatchTimeout)
		}
	}
}

// drain empties the channel and flushes everything synchronously.
func (w *StatePersister) drain(batch []PersistJob) {
	for {
		select {
		case job := <-w.jobs:
			batch = append(batch, job)
		default:
			w.flush(context.Background(), batch)
			return
		}
	}
}

// flush writes a batch, keeping only the latest snapshot per key.
func (w *StatePersister) flush(ctx context.Context, batch []PersistJob) {
	if len(batch) == 0 {
		return
	}

	latest := make(map[string]string, len(batch))
	order := make([]string, 0, len(batch))
	for _, job := range batch {
		if _, seen := latest[job.Key]; !seen {
			order = append(order, job.Key)
		}
		latest[job.Key] = job.Value
	}

	for _, key := range order {
		if err := w.repo.Set(ctx, key, latest[key]); err != nil {
			w.log.Error().Err(err).Str("key", key).Msg("Persist write failed")
		}
	}

	w.log.Debug().Int("keys", len(order)).Int("jobs", len(batch)).Msg("Flushed state snapshots")
}
