package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-dashboard/internal/store"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

type fakeProber struct {
	err   error
	calls atomic.Int32
	coord atomic.Value
}

func (f *fakeProber) Probe(ctx context.Context, coord weather.Coordinate) error {
	f.calls.Add(1)
	f.coord.Store(coord)
	return f.err
}

func (f *fakeProber) ProviderName() string { return "fake" }

func TestRunOnceRecordsSuccess(t *testing.T) {
	p := &fakeProber{}
	health := store.NewHealthStore(10, 0)
	coord := weather.Coordinate{Latitude: 51.5, Longitude: -0.12}
	s := New(p, health, coord, time.Minute, nil)

	res := s.RunOnce(context.Background())

	assert.True(t, res.OK)
	assert.Equal(t, coord, p.coord.Load())
	got, err := health.Latest("fake")
	require.NoError(t, err)
	assert.True(t, got.OK)
	assert.Empty(t, got.Error)
}

func TestRunOnceRecordsFailure(t *testing.T) {
	p := &fakeProber{err: &weather.ConfigurationError{Setting: "OPENWEATHER_API_KEY"}}
	health := store.NewHealthStore(10, 0)
	s := New(p, health, weather.Coordinate{}, time.Minute, nil)

	s.RunOnce(context.Background())

	got, err := health.Latest("fake")
	require.NoError(t, err)
	assert.False(t, got.OK)
	assert.Equal(t, "OPENWEATHER_API_KEY not configured", got.Error)
}

func TestStartDisabled(t *testing.T) {
	p := &fakeProber{}
	health := store.NewHealthStore(10, 0)
	s := New(p, health, weather.Coordinate{}, 0, nil)

	require.NoError(t, s.Start())
	defer s.Stop()
	time.Sleep(50 * time.Millisecond)

	assert.Zero(t, p.calls.Load())
	_, err := health.Latest("fake")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStartRunsProbe(t *testing.T) {
	p := &fakeProber{err: errors.New("down")}
	health := store.NewHealthStore(10, 0)
	s := New(p, health, weather.Coordinate{}, time.Hour, nil)

	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Eventually(t, func() bool { return p.calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Eventually(t, func() bool {
		_, err := health.Latest("fake")
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)
}
