package api

import "time"

// ShortenRequest is the payload for creating a short link.
// Optional fields are omitted from the wire format when unset.
type ShortenRequest struct {
	OriginalURL    string `json:"original_url"`
	CustomSlug     string `json:"custom_slug,omitempty"`
	ExpiresInHours int    `json:"expires_in_hours,omitempty"`
}

// ShortenResult is the backend's response to a successful creation.
// The backend is the source of truth for every field.
type ShortenResult struct {
	ShortCode   string     `json:"short_code"`
	ShortURL    string     `json:"short_url"`
	OriginalURL string     `json:"original_url"`
	CreatedAt   time.Time  `json:"created_at"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	Clicks      int        `json:"clicks"`
}

// StatsResult is the backend's response to a stats lookup.
type StatsResult struct {
	ShortCode   string     `json:"short_code"`
	TotalClicks int        `json:"total_clicks"`
	OriginalURL string     `json:"original_url"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}

// HealthStatus is the backend's health report.
type HealthStatus struct {
	Status       string            `json:"status"`
	Dependencies map[string]string `json:"dependencies"`
}

// Error is a structured error returned by the backend with a non-success
// status. Detail carries the server-provided message verbatim.
type Error struct {
	StatusCode int
	Detail     string
}

func (e *Error) Error() string {
	return e.Detail
}
