package store

import (
	"errors"
	"sort"
	"sync"
	"time"
)

var (
	// ErrNotFound is returned when no probe has been recorded for a provider.
	ErrNotFound = errors.New("no probe results for provider")
)

// ProbeResult is the outcome of one upstream health probe.
type ProbeResult struct {
	Provider  string        `json:"provider"`
	OK        bool          `json:"ok"`
	Error     string        `json:"error,omitempty"`
	Latency   time.Duration `json:"-"`
	LatencyMS int64         `json:"latency_ms"`
	CheckedAt time.Time     `json:"checked_at"`
}

// probeHistory holds a time-ordered list of probe results for a provider.
type probeHistory struct {
	results []ProbeResult
}

// HealthStore is a concurrency-safe in-memory record of upstream probes.
type HealthStore struct {
	mu sync.RWMutex

	// key: provider name
	data map[string]*probeHistory

	maxHistory int           // max results kept per provider
	maxAge     time.Duration // optional max age for results

	now func() time.Time
}

// NewHealthStore creates a HealthStore. maxHistory <= 0 and maxAge <= 0 mean
// unlimited.
func NewHealthStore(maxHistory int, maxAge time.Duration) *HealthStore {
	return &HealthStore{
		data:       make(map[string]*probeHistory),
		maxHistory: maxHistory,
		maxAge:     maxAge,
		now:        time.Now,
	}
}

// Record appends a probe result and enforces retention.
func (s *HealthStore) Record(result ProbeResult) {
	if result.CheckedAt.IsZero() {
		result.CheckedAt = s.now()
	}
	result.LatencyMS = result.Latency.Milliseconds()

	s.mu.Lock()
	defer s.mu.Unlock()

	history, ok := s.data[result.Provider]
	if !ok {
		history = &probeHistory{}
		s.data[result.Provider] = history
	}
	history.results = append(history.results, result)

	if s.maxHistory > 0 && len(history.results) > s.maxHistory {
		over := len(history.results) - s.maxHistory
		history.results = history.results[over:]
	}

	// The newest result always survives age pruning.
	if s.maxAge > 0 {
		cutoff := s.now().Add(-s.maxAge)
		i := 0
		for ; i < len(history.results)-1; i++ {
			if !history.results[i].CheckedAt.Before(cutoff) {
				break
			}
		}
		history.results = history.results[i:]
	}
}

// Latest returns the most recent probe for provider.
func (s *HealthStore) Latest(provider string) (ProbeResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.data[provider]
	if !ok || len(history.results) == 0 {
		return ProbeResult{}, ErrNotFound
	}
	return history.results[len(history.results)-1], nil
}

// History returns all retained probes for provider between from and to
// (inclusive).
func (s *HealthStore) History(provider string, from, to time.Time) ([]ProbeResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.data[provider]
	if !ok || len(history.results) == 0 {
		return nil, ErrNotFound
	}

	var result []ProbeResult
	for _, r := range history.results {
		if !r.CheckedAt.Before(from) && !r.CheckedAt.After(to) {
			result = append(result, r)
		}
	}
	if len(result) == 0 {
		return nil, ErrNotFound
	}
	return result, nil
}

// LatestAll returns the most recent probe of every provider, sorted by name.
func (s *HealthStore) LatestAll() []ProbeResult {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]ProbeResult, 0, len(s.data))
	for _, history := range s.data {
		if len(history.results) > 0 {
			out = append(out, history.results[len(history.results)-1])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Provider < out[j].Provider })
	return out
}
