// Package nmap invokes the external nmap binary as a reference
// scanner and extracts the open TCP ports it reports.
package nmap

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/connscan/connscan/internal/logger"
)

var (
	// ErrNotFound means the nmap binary is absent from PATH.
	ErrNotFound = errors.New("nmap not found in PATH")
	// ErrTimeout means the reference scan exceeded its wall-clock limit.
	ErrTimeout = errors.New("nmap scan timed out")
)

// RunError means nmap exited with nonzero status.
type RunError struct {
	Stderr string
}

func (e *RunError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		return "nmap exited with an error"
	}
	return "nmap failed: " + msg
}

// Runner invokes nmap with a hard wall-clock timeout.
type Runner struct {
	Path    string
	Timeout time.Duration
}

func NewRunner(path string, timeout time.Duration) *Runner {
	if path == "" {
		path = "nmap"
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Runner{Path: path, Timeout: timeout}
}

// OpenPorts runs a reference scan against ip and returns the ports
// nmap reports open. A non-empty ports list restricts the scan with
// -p; otherwise nmap runs in fast mode (-F).
func (r *Runner) OpenPorts(ctx context.Context, ip string, ports []int) ([]int, error) {
	if _, err := exec.LookPath(r.Path); err != nil {
		return nil, ErrNotFound
	}

	args := buildArgs(ip, ports)

	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	logger.Infof("running reference scan: %s %s", r.Path, strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, r.Path, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, &RunError{Stderr: stderr.String()}
		}
		return nil, fmt.Errorf("nmap error: %w", err)
	}

	return ParseOpenPorts(&stdout), nil
}

func buildArgs(ip string, ports []int) []string {
	if len(ports) == 0 {
		return []string{"-F", ip}
	}
	strs := make([]string, len(ports))
	for i, p := range ports {
		strs[i] = strconv.Itoa(p)
	}
	return []string{"-p", strings.Join(strs, ","), ip}
}

// ParseOpenPorts scans nmap's line-oriented output and collects every
// port reported open over TCP. The match is a loose heuristic: a line
// counts if it contains both "/tcp" and the word "open", whatever the
// surrounding columns. Unrecognized lines are ignored.
func ParseOpenPorts(r io.Reader) []int {
	seen := map[int]struct{}{}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.Contains(line, "/tcp") || !strings.Contains(line, "open") {
			continue
		}

		var port int
		if _, err := fmt.Sscanf(line, "%d/tcp", &port); err != nil {
			continue
		}
		if port < 1 || port > 65535 {
			continue
		}
		seen[port] = struct{}{}
	}

	out := make([]int, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Ints(out)
	return out
}
