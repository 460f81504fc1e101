package queue

import (
	"context"
	"hash/fnv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/goodsru/user-panel/internal/api/metrics"
	"github.com/goodsru/user-panel/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes audit entries to a fixed set of workers using consistent
// hashing on the actor, so the audit trail stays ordered per user. Writes
// never block the request path beyond channelBuffer capacity.
type Dispatcher struct {
	workers []chan ports.AuditEntryInput
	service ports.AuditService
	log     zerolog.Logger

	mu      sync.RWMutex
	stopped bool
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.AuditService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.AuditEntryInput, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.AuditEntryInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers run until Stop closes their
// channels; entries are persisted with a background context so records
// enqueued during the HTTP drain window still land.
func (d *Dispatcher) Start() {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(i, ch)
	}
}

// Stop closes the worker channels and blocks until every buffered entry has
// been processed. Call it after the HTTP server has drained; Enqueue calls
// arriving later are dropped with a warning instead of blocking.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	d.mu.Unlock()

	for _, ch := range d.workers {
		close(ch)
	}
	d.wg.Wait()
}

// Enqueue sends an entry to the worker responsible for its actor.
func (d *Dispatcher) Enqueue(entry ports.AuditEntryInput) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.stopped {
		d.log.Warn().
			Str("actor", entry.Actor).
			Str("action", string(entry.Action)).
			Msg("audit entry dropped after dispatcher stop")
		return
	}
	d.workers[d.shardIndex(entry.Actor)] <- entry
}

// shardIndex maps an actor deterministically to a worker index.
func (d *Dispatcher) shardIndex(actor string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(actor))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(id int, ch <-chan ports.AuditEntryInput) {
	defer d.wg.Done()
	for entry := range ch {
		if err := d.service.Process(context.Background(), entry); err != nil {
			metrics.AuditErrorsTotal.WithLabelValues(string(entry.Action)).Inc()
			d.log.Error().Err(err).
				Str("actor", entry.Actor).
				Int("worker_id", id).
				Msg("audit entry processing failed")
			continue
		}
		metrics.AuditRecordsTotal.WithLabelValues(string(entry.Action)).Inc()
	}
}
