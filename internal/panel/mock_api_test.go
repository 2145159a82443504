package panel_test

import (
	"context"
	"errors"
	"sync"

	"shortpanel/internal/api"
	"shortpanel/internal/history"
)

var errMock = errors.New("mock error")

// mockAPI is a test double for the backend client. Per-code stats
// results and errors are configurable; calls are recorded.
type mockAPI struct {
	mu sync.Mutex

	shortenResult *api.ShortenResult
	shortenErr    error
	shortenCalls  int
	lastShorten   api.ShortenRequest

	statsResults map[string]*api.StatsResult
	statsErrs    map[string]error
	statsCalls   []string
}

func (m *mockAPI) Shorten(_ context.Context, req api.ShortenRequest) (*api.ShortenResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.shortenCalls++
	m.lastShorten = req

	if m.shortenErr != nil {
		return nil, m.shortenErr
	}

	return m.shortenResult, nil
}

func (m *mockAPI) Stats(_ context.Context, code string) (*api.StatsResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.statsCalls = append(m.statsCalls, code)

	if err, ok := m.statsErrs[code]; ok {
		return nil, err
	}

	if stats, ok := m.statsResults[code]; ok {
		return stats, nil
	}

	return nil, &api.Error{StatusCode: 404, Detail: "not found"}
}

func (m *mockAPI) statsCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.statsCalls)
}

// memStore is an in-memory history.Store with configurable failures.
type memStore struct {
	list    history.List
	loadErr error
	saveErr error
	saves   int
}

func (s *memStore) Load() (history.List, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}

	return s.list, nil
}

func (s *memStore) Save(list history.List) error {
	s.saves++

	if s.saveErr != nil {
		return s.saveErr
	}

	s.list = list

	return nil
}

// mockClipboard records the last copied text.
type mockClipboard struct {
	text string
	err  error
}

func (c *mockClipboard) WriteAll(text string) error {
	if c.err != nil {
		return c.err
	}

	c.text = text

	return nil
}
