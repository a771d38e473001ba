package probe

import (
	"context"
	"net"
	"strconv"
	"time"

	"github.com/connscan/connscan/internal/ports"
)

// State classifies the outcome of a single connection attempt.
type State int

const (
	// StateOpen means the port accepted the connection.
	StateOpen State = iota
	// StateClosed means the connection was actively refused.
	StateClosed
	// StateFiltered means the attempt timed out or failed otherwise.
	StateFiltered
)

// Result is the outcome of one probe. Only Open results carry a
// service name; Closed and Filtered are equally non-findings.
type Result struct {
	Port    int
	State   State
	Service string
	Err     error
}

// Open reports whether the probe confirmed the port accepts connections.
func (r Result) Open() bool {
	return r.State == StateOpen
}

// Prober performs single TCP connect attempts with a fixed timeout.
type Prober struct {
	Timeout time.Duration

	dialer net.Dialer
}

// New returns a Prober with the given per-attempt timeout.
func New(timeout time.Duration) *Prober {
	if timeout <= 0 {
		timeout = time.Second
	}
	return &Prober{Timeout: timeout}
}

// Probe attempts one TCP connection to ip:port. The attempt is bounded
// by the Prober timeout and by ctx; the socket is closed on every
// path. A single attempt is authoritative, there are no retries.
func (p *Prober) Probe(ctx context.Context, ip string, port int) Result {
	addr := net.JoinHostPort(ip, strconv.Itoa(port))

	dialCtx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	conn, err := p.dialer.DialContext(dialCtx, "tcp", addr)
	if err == nil {
		_ = conn.Close()
		return Result{
			Port:    port,
			State:   StateOpen,
			Service: ports.ServiceName(port),
		}
	}

	if ne, ok := err.(net.Error); ok && ne.Timeout() {
		return Result{Port: port, State: StateFiltered, Err: err}
	}
	return Result{Port: port, State: StateClosed, Err: err}
}
