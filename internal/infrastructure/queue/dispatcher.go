package queue

import (
	"context"
	"hash/fnv"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/tenderhub/portal-client/internal/core/domain"
	"github.com/tenderhub/portal-client/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher imports proposals into the catalog through a fixed set of
// workers. Proposals of one contractor always land on the same worker, so
// they are created in submission order.
type Dispatcher struct {
	workers []chan domain.Proposal
	catalog ports.CatalogService
	log     zerolog.Logger

	wg      sync.WaitGroup
	created atomic.Int64
	failed  atomic.Int64
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, catalog ports.CatalogService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.Proposal, numWorkers),
		catalog: catalog,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.Proposal, channelBuffer)
	}
	return d
}

// Start launches the workers. They stop when ctx is cancelled or after Close
// once their queue is drained.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands p to the worker that owns its contractor. It blocks once that
// worker's buffer is full. Enqueue after Close panics.
func (d *Dispatcher) Enqueue(p domain.Proposal) {
	d.workers[d.shardIndex(p.ContractorID)] <- p
}

func (d *Dispatcher) EnqueueBatch(proposals []domain.Proposal) {
	for _, p := range proposals {
		d.Enqueue(p)
	}
}

// Close stops accepting work and waits for the workers to finish. It returns
// the number of proposals created and failed.
func (d *Dispatcher) Close() (created, failed int64) {
	for _, ch := range d.workers {
		close(ch)
	}
	d.wg.Wait()
	return d.created.Load(), d.failed.Load()
}

// shardIndex maps a contractor deterministically to a worker index.
func (d *Dispatcher) shardIndex(contractorID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(contractorID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.Proposal) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case p, ok := <-ch:
			if !ok {
				return
			}
			if _, err := d.catalog.CreateProposal(ctx, p); err != nil {
				d.failed.Add(1)
				d.log.Error().Err(err).
					Str("contractor_id", p.ContractorID).
					Int("worker_id", id).
					Msg("proposal import failed")
				continue
			}
			d.created.Add(1)
		}
	}
}
