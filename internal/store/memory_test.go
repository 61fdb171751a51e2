package store

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatestNotFound(t *testing.T) {
	s := NewHealthStore(0, 0)

	_, err := s.Latest("openweathermap")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, s.LatestAll())
}

func TestRecordAndLatest(t *testing.T) {
	s := NewHealthStore(0, 0)
	base := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	s.Record(ProbeResult{Provider: "openweathermap", OK: true, Latency: 120 * time.Millisecond, CheckedAt: base})
	s.Record(ProbeResult{Provider: "openweathermap", OK: false, Error: "status 401", CheckedAt: base.Add(time.Minute)})

	got, err := s.Latest("openweathermap")
	require.NoError(t, err)
	assert.False(t, got.OK)
	assert.Equal(t, "status 401", got.Error)

	all, err := s.History("openweathermap", base, base.Add(time.Minute))
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, int64(120), all[0].LatencyMS)
}

func TestRecordStampsTime(t *testing.T) {
	s := NewHealthStore(0, 0)
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	s.Record(ProbeResult{Provider: "p", OK: true})

	got, err := s.Latest("p")
	require.NoError(t, err)
	assert.Equal(t, fixed, got.CheckedAt)
}

func TestRetentionByCount(t *testing.T) {
	s := NewHealthStore(3, 0)
	base := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		s.Record(ProbeResult{Provider: "p", OK: true, CheckedAt: base.Add(time.Duration(i) * time.Minute)})
	}

	all, err := s.History("p", base, base.Add(time.Hour))

	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, base.Add(2*time.Minute), all[0].CheckedAt)
}

func TestRetentionByAge(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	s := NewHealthStore(0, 10*time.Minute)
	s.now = func() time.Time { return now }

	s.Record(ProbeResult{Provider: "p", CheckedAt: now.Add(-time.Hour)})
	s.Record(ProbeResult{Provider: "p", CheckedAt: now.Add(-5 * time.Minute)})
	s.Record(ProbeResult{Provider: "p", CheckedAt: now})

	all, err := s.History("p", now.Add(-2*time.Hour), now)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// A lone stale result is still reported as the latest.
	s.Record(ProbeResult{Provider: "q", CheckedAt: now.Add(-time.Hour)})
	_, err = s.Latest("q")
	assert.NoError(t, err)
}

func TestHistoryOutsideRange(t *testing.T) {
	s := NewHealthStore(0, 0)
	base := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	s.Record(ProbeResult{Provider: "p", CheckedAt: base})

	_, err := s.History("p", base.Add(time.Second), base.Add(time.Hour))

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLatestAllSorted(t *testing.T) {
	s := NewHealthStore(0, 0)
	s.Record(ProbeResult{Provider: "openweathermap", OK: true})
	s.Record(ProbeResult{Provider: "google", OK: false})

	all := s.LatestAll()

	require.Len(t, all, 2)
	assert.Equal(t, "google", all[0].Provider)
	assert.Equal(t, "openweathermap", all[1].Provider)
}

func TestConcurrentRecord(t *testing.T) {
	s := NewHealthStore(50, 0)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				s.Record(ProbeResult{Provider: fmt.Sprintf("p%d", i%4), OK: true})
				_ = s.LatestAll()
			}
		}(i)
	}
	wg.Wait()

	assert.Len(t, s.LatestAll(), 4)
}
