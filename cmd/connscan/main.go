package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/connscan/connscan/internal/compare"
	"github.com/connscan/connscan/internal/config"
	"github.com/connscan/connscan/internal/logger"
	"github.com/connscan/connscan/internal/model"
	"github.com/connscan/connscan/internal/nmap"
	"github.com/connscan/connscan/internal/ports"
	"github.com/connscan/connscan/internal/report"
	"github.com/connscan/connscan/internal/scan"
	"github.com/connscan/connscan/internal/storage"
)

func main() {
	target := flag.String("target", "", "target hostname or IP address (required)")
	portSpec := flag.String("p", "", "port range (e.g. 1-1000) or list (e.g. 22,80,443)")
	common := flag.Bool("common", false, "scan only the common-ports catalog")
	concurrency := flag.Int("concurrency", 0, "max simultaneous probes (default 100)")
	timeout := flag.Int("timeout", 0, "per-probe timeout in seconds (default 1)")
	withNmap := flag.Bool("nmap", false, "compare results with nmap")
	configPath := flag.String("config", "", "path to YAML config")
	history := flag.Int("history", 0, "list the last N stored scan runs and exit")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Parse()

	cfg := loadConfig(*configPath)
	if *concurrency > 0 {
		cfg.Concurrency = *concurrency
	}
	if *timeout > 0 {
		cfg.ProbeTimeoutSec = *timeout
	}
	logger.SetVerbose(*verbose || cfg.Verbose)

	if *history > 0 {
		listHistory(cfg, *history)
		return
	}

	if *target == "" {
		fmt.Fprintln(os.Stderr, "error: -target is required")
		flag.Usage()
		os.Exit(2)
	}

	opts, err := buildOptions(*target, *portSpec, *common)
	if err != nil {
		logger.Fatalf("invalid port spec: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := scan.NewRunner(cfg)
	attachStores(runner, cfg)

	run, findings, err := runner.Run(ctx, opts)
	if err != nil {
		logger.Fatalf("scan failed: %v", err)
	}

	report.PrintScan(os.Stdout, run, findings)

	if *withNmap && run.Status != model.StatusInterrupted {
		// Restrict the reference scan only when the user gave an
		// explicit finite list; ranges and the catalog use nmap's
		// fast mode.
		var restrict []int
		if *portSpec != "" && !strings.Contains(*portSpec, "-") {
			restrict = opts.Ports
		}
		runComparison(cfg, run.IP, localPorts(findings), restrict)
	}
}

func loadConfig(path string) *config.Config {
	if path == "" {
		return config.Default()
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

// buildOptions expands the CLI port selection into scan options. The
// common-ports catalog is the default when no spec is given.
func buildOptions(target, spec string, common bool) (scan.Options, error) {
	opts := scan.Options{Target: target}

	switch {
	case common || spec == "":
		opts.Ports = ports.Common()
		opts.Mode = "Common Ports"
		opts.PortsSpec = "common"
	case strings.Contains(spec, "-"):
		parsed, err := ports.ParseSpec(spec)
		if err != nil {
			return scan.Options{}, err
		}
		opts.Ports = parsed
		opts.Mode = fmt.Sprintf("Port Range %s", spec)
		opts.PortsSpec = spec
	default:
		parsed, err := ports.ParseSpec(spec)
		if err != nil {
			return scan.Options{}, err
		}
		opts.Ports = parsed
		opts.Mode = fmt.Sprintf("Specific Ports: %s", spec)
		opts.PortsSpec = spec
	}

	return opts, nil
}

func attachStores(runner *scan.Runner, cfg *config.Config) {
	if cfg.HistoryPath != "" {
		hist, err := storage.NewStorage(cfg.HistoryPath)
		if err != nil {
			logger.Errorf("history store unavailable: %v", err)
		} else {
			runner.SetHistory(hist)
		}
	}

	if cfg.Database.DSN != "" {
		pg, err := storage.NewPostgres(cfg.Database.DSN)
		if err != nil {
			logger.Errorf("postgres unavailable: %v", err)
		} else {
			runner.SetPostgres(pg)
		}
	}
}

// runComparison runs the nmap cross-check and prints the result.
// Failures here are diagnostics only; the scan report above stands
// regardless.
func runComparison(cfg *config.Config, ip string, local, restrict []int) {
	comparator := compare.New(nmap.NewRunner(cfg.NmapPath, cfg.NmapTimeout()))

	cmp, err := comparator.Compare(context.Background(), ip, local, restrict)
	if err != nil {
		switch {
		case errors.Is(err, nmap.ErrNotFound):
			logger.Errorf("nmap not found; install nmap to use the comparison feature")
		case errors.Is(err, nmap.ErrTimeout):
			logger.Errorf("nmap comparison timed out")
		default:
			var runErr *nmap.RunError
			if errors.As(err, &runErr) {
				logger.Errorf("nmap comparison failed: %v", runErr)
			} else {
				logger.Errorf("nmap comparison error: %v", err)
			}
		}
		return
	}

	report.PrintComparison(os.Stdout, cmp)
}

func listHistory(cfg *config.Config, limit int) {
	hist, err := storage.NewStorage(cfg.HistoryPath)
	if err != nil {
		logger.Fatalf("history store unavailable: %v", err)
	}
	defer hist.Close()

	runs, err := hist.ListScanRuns(limit)
	if err != nil {
		logger.Fatalf("failed to list scan history: %v", err)
	}
	report.PrintHistory(os.Stdout, runs)
}

func localPorts(findings []model.Finding) []int {
	out := make([]int, len(findings))
	for i, f := range findings {
		out[i] = f.Port
	}
	return out
}
