// Package panel implements the client-side control flow of the URL
// shortener: submitting long URLs, remembering the link created in the
// current session, copying it, and overlaying live click statistics on
// the locally persisted recent list.
package panel

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"shortpanel/internal/api"
	"shortpanel/internal/history"
)

var (
	// ErrEmptyURL is returned when a submission has no original URL.
	// URL well-formedness is the backend's job; only presence is checked.
	ErrEmptyURL = errors.New("original url is required")

	// ErrNoCurrentLink is returned by session-scoped operations before a
	// link has been created in this session.
	ErrNoCurrentLink = errors.New("no short link created in this session")

	// ErrNoClipboard is returned when no clipboard is available.
	ErrNoClipboard = errors.New("clipboard is not available")
)

// API is the subset of the backend client the controller needs.
type API interface {
	Shorten(ctx context.Context, req api.ShortenRequest) (*api.ShortenResult, error)
	Stats(ctx context.Context, code string) (*api.StatsResult, error)
}

// Clipboard writes text to the system clipboard.
type Clipboard interface {
	WriteAll(text string) error
}

// RecentView is a recent entry overlaid with live statistics. When Live
// is false the lookup failed and Clicks/IsActive fall back to the last
// persisted snapshot, with the entry assumed active.
type RecentView struct {
	Entry    history.Entry
	Clicks   int
	IsActive bool
	Live     bool
}

// Controller owns one frontend session's state. Construct one per page
// render or per terminal invocation; the remembered current link lives
// for the controller's lifetime only.
type Controller struct {
	api     API
	store   history.Store
	clip    Clipboard
	logger  *zap.Logger
	current *api.ShortenResult
}

// New creates a controller. clip may be nil when the frontend handles
// copying itself.
func New(client API, store history.Store, clip Clipboard, logger *zap.Logger) *Controller {
	return &Controller{
		api:    client,
		store:  store,
		clip:   clip,
		logger: logger,
	}
}

// Submit issues exactly one create request. customSlug is sent only when
// non-empty, expiresInHours only when positive. On success the result
// becomes the session's current link and is prepended to the persisted
// recent list; a failed history save is logged, not returned, because
// the shortening itself succeeded.
func (c *Controller) Submit(ctx context.Context, originalURL, customSlug string, expiresInHours int) (*api.ShortenResult, error) {
	if strings.TrimSpace(originalURL) == "" {
		return nil, ErrEmptyURL
	}

	req := api.ShortenRequest{OriginalURL: originalURL}
	if customSlug != "" {
		req.CustomSlug = customSlug
	}

	if expiresInHours > 0 {
		req.ExpiresInHours = expiresInHours
	}

	result, err := c.api.Shorten(ctx, req)
	if err != nil {
		return nil, err
	}

	c.current = result
	c.remember(result)

	return result, nil
}

func (c *Controller) remember(result *api.ShortenResult) {
	list, err := c.store.Load()
	if err != nil {
		c.logger.Warn("loading recent links failed", zap.Error(err))

		list = history.List{}
	}

	list = list.Prepend(history.Entry{
		ShortCode:   result.ShortCode,
		OriginalURL: result.OriginalURL,
		ShortURL:    result.ShortURL,
		Clicks:      result.Clicks,
		CreatedAt:   result.CreatedAt,
	})

	if err := c.store.Save(list); err != nil {
		c.logger.Warn("saving recent links failed",
			zap.String("code", result.ShortCode),
			zap.Error(err),
		)
	}
}

// Current returns the link created in this session, or nil.
func (c *Controller) Current() *api.ShortenResult {
	return c.current
}

// ViewStats looks up statistics for the session's current link. Without
// a current link it performs no network call and returns
// ErrNoCurrentLink.
func (c *Controller) ViewStats(ctx context.Context) (*api.StatsResult, error) {
	if c.current == nil {
		return nil, ErrNoCurrentLink
	}

	return c.api.Stats(ctx, c.current.ShortCode)
}

// CopyShortURL places the current link's short URL on the clipboard.
func (c *Controller) CopyShortURL() error {
	if c.current == nil {
		return ErrNoCurrentLink
	}

	if c.clip == nil {
		return ErrNoClipboard
	}

	return c.clip.WriteAll(c.current.ShortURL)
}

// RefreshRecent loads the persisted recent list and fetches live stats
// for every entry concurrently. All lookups are awaited before views are
// returned; a failed lookup downgrades that entry to its persisted
// snapshot instead of failing the batch. The persisted list is never
// rewritten here.
func (c *Controller) RefreshRecent(ctx context.Context) ([]RecentView, error) {
	list, err := c.store.Load()
	if err != nil {
		return nil, err
	}

	if len(list) == 0 {
		return nil, nil
	}

	views := make([]RecentView, len(list))

	var group errgroup.Group

	for i, entry := range list {
		group.Go(func() error {
			stats, err := c.api.Stats(ctx, entry.ShortCode)
			if err != nil {
				c.logger.Debug("stats refresh failed, keeping cached values",
					zap.String("code", entry.ShortCode),
					zap.Error(err),
				)

				views[i] = RecentView{Entry: entry, Clicks: entry.Clicks, IsActive: true}

				return nil
			}

			views[i] = RecentView{
				Entry:    entry,
				Clicks:   stats.TotalClicks,
				IsActive: stats.IsActive,
				Live:     true,
			}

			return nil
		})
	}

	// Goroutines never return errors; Wait is a pure barrier.
	_ = group.Wait()

	return views, nil
}
