package scan

import (
	"context"
	"fmt"
	"time"

	"github.com/connscan/connscan/internal/config"
	"github.com/connscan/connscan/internal/logger"
	"github.com/connscan/connscan/internal/model"
	"github.com/connscan/connscan/internal/netutil"
	"github.com/connscan/connscan/internal/probe"
	"github.com/connscan/connscan/internal/storage"
)

// Options describes one scan invocation.
type Options struct {
	Target    string
	Ports     []int
	Mode      string // human-readable scan mode label
	PortsSpec string // the spec text as given, for the run record
}

// Runner resolves the target, drives the scheduler and records the
// run in scan history.
type Runner struct {
	cfg     *config.Config
	history *storage.Storage
	pg      *storage.Postgres
}

func NewRunner(cfg *config.Config) *Runner {
	return &Runner{cfg: cfg}
}

// SetHistory attaches the local history store. Optional.
func (r *Runner) SetHistory(s *storage.Storage) {
	r.history = s
}

// SetPostgres attaches the Postgres sink. Optional.
func (r *Runner) SetPostgres(pg *storage.Postgres) {
	r.pg = pg
}

// Run performs one scan. It returns an error only when the target
// cannot be resolved; an interrupt produces a partial run marked
// interrupted, not an error.
func (r *Runner) Run(ctx context.Context, opts Options) (*model.ScanRun, []model.Finding, error) {
	if len(opts.Ports) == 0 {
		return nil, nil, fmt.Errorf("no ports to scan")
	}

	ip, err := netutil.ResolveIPv4(opts.Target)
	if err != nil {
		return nil, nil, err
	}
	logger.Infof("resolved %s to %s", opts.Target, ip)
	logger.Infof("scanning %d ports on %s (concurrency %d, timeout %s)",
		len(opts.Ports), ip, r.cfg.Concurrency, r.cfg.ProbeTimeout())

	run := &model.ScanRun{
		ID:        fmt.Sprintf("%d", time.Now().UTC().UnixNano()),
		Target:    opts.Target,
		IP:        ip,
		Mode:      opts.Mode,
		PortsSpec: opts.PortsSpec,
		StartedAt: time.Now().UTC(),
		Probed:    len(opts.Ports),
		Status:    model.StatusCompleted,
	}

	store := NewStore()
	sched := NewScheduler(probe.New(r.cfg.ProbeTimeout()), r.cfg.Concurrency)

	if err := sched.Scan(ctx, ip, opts.Ports, store); err != nil {
		logger.Infof("scan interrupted: %v", err)
		run.Status = model.StatusInterrupted
	}

	run.FinishedAt = time.Now().UTC()
	findings := store.Snapshot()
	run.Found = len(findings)

	r.persist(run, findings)

	return run, findings, nil
}

func (r *Runner) persist(run *model.ScanRun, findings []model.Finding) {
	if r.history != nil {
		if err := r.history.AddScanRun(run, findings); err != nil {
			logger.Errorf("history store error: %v", err)
		}
	}
	if r.pg != nil {
		if err := r.pg.AddScanRun(run, findings); err != nil {
			logger.Errorf("postgres store error: %v", err)
		}
	}
}
