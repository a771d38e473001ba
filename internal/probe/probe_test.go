package probe

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// listen opens a loopback listener on an ephemeral port and returns
// its port number.
func listen(t *testing.T) (net.Listener, int) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })
	return ln, ln.Addr().(*net.TCPAddr).Port
}

func TestProbeOpenPort(t *testing.T) {
	_, port := listen(t)

	p := New(time.Second)
	res := p.Probe(context.Background(), "127.0.0.1", port)

	assert.True(t, res.Open())
	assert.Equal(t, port, res.Port)
	assert.NotEmpty(t, res.Service)
}

func TestProbeClosedPort(t *testing.T) {
	// Grab an ephemeral port and close the listener so the port is
	// known-free; connecting to it is refused on loopback.
	ln, port := listen(t)
	require.NoError(t, ln.Close())

	p := New(time.Second)
	res := p.Probe(context.Background(), "127.0.0.1", port)

	assert.False(t, res.Open())
	assert.Error(t, res.Err)
}

func TestProbeServiceFallback(t *testing.T) {
	_, port := listen(t)

	p := New(time.Second)
	res := p.Probe(context.Background(), "127.0.0.1", port)

	require.True(t, res.Open())
	// Ephemeral ports are not in the catalog.
	assert.Equal(t, "Unknown", res.Service)
}

func TestProbeCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := New(time.Second)
	res := p.Probe(ctx, "127.0.0.1", 80)

	assert.False(t, res.Open())
}

func TestNewDefaultTimeout(t *testing.T) {
	p := New(0)
	assert.Equal(t, time.Second, p.Timeout)
}
