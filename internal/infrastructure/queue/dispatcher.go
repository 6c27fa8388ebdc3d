package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/99minutos/tracking-aggregator/internal/core/ports"
	"github.com/99minutos/tracking-aggregator/internal/pkg/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes refresh requests to a fixed set of workers using
// consistent hashing on the tracking number, so one tracking number is never
// refreshed by two workers at once.
type Dispatcher struct {
	workers []chan ports.RefreshRequest
	service ports.RefreshService
	wg      sync.WaitGroup
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.RefreshService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.RefreshRequest, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.RefreshRequest, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Enqueue hands req to the worker responsible for its tracking number,
// blocking while that worker's buffer is full.
func (d *Dispatcher) Enqueue(ctx context.Context, req ports.RefreshRequest) error {
	idx := d.shardIndex(req.TrackingNumber)
	select {
	case d.workers[idx] <- req:
		metrics.RefreshQueueDepth.WithLabelValues(strconv.Itoa(idx)).Inc()
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// EnqueueBatch enqueues reqs in order and stops at the first failure.
// accepted is the number of leading requests already handed to workers;
// those run even when err is non-nil.
func (d *Dispatcher) EnqueueBatch(ctx context.Context, reqs []ports.RefreshRequest) (accepted int, err error) {
	for _, r := range reqs {
		if err := d.Enqueue(ctx, r); err != nil {
			return accepted, err
		}
		accepted++
	}
	return accepted, nil
}

// shardIndex maps a tracking number deterministically to a worker index.
func (d *Dispatcher) shardIndex(trackingNumber string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(trackingNumber))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.RefreshRequest) {
	defer d.wg.Done()
	depth := metrics.RefreshQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case req, ok := <-ch:
			if !ok {
				return
			}
			depth.Dec()
			if err := d.service.Refresh(ctx, req); err != nil {
				d.log.Error().Err(err).
					Str("job_id", req.JobID).
					Str("tracking_number", req.TrackingNumber).
					Int("worker_id", id).
					Msg("refresh failed")
			}
		}
	}
}
