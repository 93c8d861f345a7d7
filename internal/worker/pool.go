package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const QueueResumen = "jobs:resumen"

// Job is the generic envelope for all async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type resumenPayload struct {
	Fecha string `json:"fecha"` // YYYY-MM-DD
}

// ResumenRefresher recomputes the daily dashboard snapshot and writes it to
// the cache. Implemented by the report service; declared here so the worker
// pool does not depend on the service package.
type ResumenRefresher interface {
	RefrescarResumen(ctx context.Context, fecha string) error
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueResumen schedules a dashboard refresh for the given day after a
// sale commits. Failures are logged, never propagated: the sale already
// succeeded and the read path recomputes on cache miss anyway.
func (d *Dispatcher) EnqueueResumen(ctx context.Context, fecha string) {
	if err := d.enqueue(ctx, QueueResumen, "resumen", resumenPayload{Fecha: fecha}); err != nil {
		log.Warn().Str("fecha", fecha).Err(err).Msg("failed to enqueue resumen refresh")
	}
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: jobType, Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// StartWorkerPool launches numWorkers goroutines consuming the resumen queue.
// Each goroutine blocks on BRPOP — zero CPU when idle.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, numWorkers int, refresher ResumenRefresher) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, i, refresher)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, id int, refresher ResumenRefresher) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, QueueResumen).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, result[1], refresher)
		}
	}
}

func processJob(ctx context.Context, raw string, refresher ResumenRefresher) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Err(err).Msg("failed to unmarshal job")
		return
	}
	var p resumenPayload
	if err := json.Unmarshal(job.Payload, &p); err != nil {
		log.Error().Err(err).Msg("failed to unmarshal resumen payload")
		return
	}
	if err := refresher.RefrescarResumen(ctx, p.Fecha); err != nil {
		log.Error().Str("fecha", p.Fecha).Err(err).Msg("resumen refresh failed")
		return
	}
	log.Debug().Str("fecha", p.Fecha).Msg("resumen refreshed")
}
