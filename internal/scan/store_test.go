package scan

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/connscan/connscan/internal/model"
)

func TestStoreAddAndSnapshotSorted(t *testing.T) {
	s := NewStore()
	s.Add(model.Finding{Port: 443, Service: "HTTPS"})
	s.Add(model.Finding{Port: 22, Service: "SSH"})
	s.Add(model.Finding{Port: 80, Service: "HTTP"})

	snap := s.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, []model.Finding{
		{Port: 22, Service: "SSH"},
		{Port: 80, Service: "HTTP"},
		{Port: 443, Service: "HTTPS"},
	}, snap)
}

func TestStoreDeduplicatesByPort(t *testing.T) {
	s := NewStore()
	s.Add(model.Finding{Port: 22, Service: "SSH"})
	s.Add(model.Finding{Port: 22, Service: "SSH"})

	assert.Equal(t, 1, s.Len())
}

func TestStoreConcurrentAdds(t *testing.T) {
	s := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(port int) {
			defer wg.Done()
			s.Add(model.Finding{Port: port, Service: "Unknown"})
		}(i + 1)
	}
	wg.Wait()

	snap := s.Snapshot()
	require.Len(t, snap, 100)
	for i, f := range snap {
		assert.Equal(t, i+1, f.Port)
	}
}

func TestStorePorts(t *testing.T) {
	s := NewStore()
	s.Add(model.Finding{Port: 80, Service: "HTTP"})
	s.Add(model.Finding{Port: 22, Service: "SSH"})

	assert.Equal(t, []int{22, 80}, s.Ports())
}
