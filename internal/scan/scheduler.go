package scan

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/connscan/connscan/internal/logger"
	"github.com/connscan/connscan/internal/model"
	"github.com/connscan/connscan/internal/probe"
)

// Scheduler drives probes across a port set while keeping at most
// Limit probes in flight.
type Scheduler struct {
	Prober *probe.Prober
	Limit  int
}

func NewScheduler(p *probe.Prober, limit int) *Scheduler {
	if limit < 1 {
		limit = 1
	}
	return &Scheduler{Prober: p, Limit: limit}
}

// Scan probes every port in spec against ip and folds Open outcomes
// into store. Admission is gated by a weighted semaphore; a slot frees
// as soon as its probe completes, so the next queued port is admitted
// immediately.
//
// Scan does not return until every dispatched probe has completed and
// its outcome is folded in — the store is stable on return. On ctx
// cancellation no further ports are dispatched; in-flight probes run
// to their own timeout and are still folded in, and the ctx error is
// returned to mark the result partial.
func (s *Scheduler) Scan(ctx context.Context, ip string, spec []int, store *Store) error {
	sem := semaphore.NewWeighted(int64(s.Limit))
	var wg sync.WaitGroup

	for _, port := range spec {
		if err := sem.Acquire(ctx, 1); err != nil {
			// Cancelled while waiting for a slot: stop dispatching,
			// join what is already in flight.
			break
		}

		wg.Add(1)
		go func(port int) {
			defer wg.Done()
			defer sem.Release(1)

			res := s.Prober.Probe(ctx, ip, port)
			if !res.Open() {
				return
			}
			store.Add(model.Finding{Port: res.Port, Service: res.Service})
			logger.Infof("open port %d: %s", res.Port, res.Service)
		}(port)
	}

	wg.Wait()
	return ctx.Err()
}
