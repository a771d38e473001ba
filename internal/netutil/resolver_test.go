package netutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveIPv4Literal(t *testing.T) {
	ip, err := ResolveIPv4("127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", ip)
}

func TestResolveIPv4RejectsIPv6Literal(t *testing.T) {
	_, err := ResolveIPv4("::1")
	assert.Error(t, err)
}

func TestResolveIPv4Localhost(t *testing.T) {
	ip, err := ResolveIPv4("localhost")
	if err != nil {
		t.Skipf("localhost did not resolve: %v", err)
	}
	assert.NotEmpty(t, ip)
}

func TestResolveIPv4Unresolvable(t *testing.T) {
	_, err := ResolveIPv4("host.invalid")
	assert.Error(t, err)
}
