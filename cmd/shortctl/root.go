// shortctl is a terminal client for the URL shortener backend. It keeps
// the same capped recent-links history the web console keeps in a
// cookie, persisted as a JSON file under the user's config directory.
package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"shortpanel/internal/api"
	"shortpanel/internal/history"
	"shortpanel/internal/panel"
)

type rootOptions struct {
	apiURL      string
	timeout     time.Duration
	historyPath string
	verbose     bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "shortctl",
		Short:         "Shorten URLs and track their clicks from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.apiURL, "api", "http://localhost:8000", "base URL of the shortener backend")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "request timeout")
	cmd.PersistentFlags().StringVar(&opts.historyPath, "history-file", "", "path to the recent-links file (defaults to the user config dir)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(
		newShortenCmd(opts),
		newStatsCmd(opts),
		newRecentCmd(opts),
	)

	return cmd
}

func (o *rootOptions) logger() (*zap.Logger, error) {
	if o.verbose {
		return zap.NewDevelopment()
	}

	return zap.NewNop(), nil
}

func (o *rootOptions) client(logger *zap.Logger) *api.Client {
	return api.NewClient(o.apiURL, o.timeout, logger)
}

func (o *rootOptions) controller() (*panel.Controller, error) {
	logger, err := o.logger()
	if err != nil {
		return nil, err
	}

	path := o.historyPath
	if path == "" {
		path, err = history.DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	store := history.NewFileStore(path)

	return panel.New(o.client(logger), store, systemClipboard{}, logger), nil
}

// systemClipboard adapts the platform clipboard to panel.Clipboard.
type systemClipboard struct{}

func (systemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

const timeLayout = "Jan 2, 2006 15:04 MST"

func printResult(cmd *cobra.Command, result *api.ShortenResult) {
	cmd.Println("Short URL:   ", result.ShortURL)
	cmd.Println("Short code:  ", result.ShortCode)
	cmd.Println("Original URL:", result.OriginalURL)
	cmd.Println("Created:     ", result.CreatedAt.Format(timeLayout))

	if result.ExpiresAt != nil {
		cmd.Println("Expires:     ", result.ExpiresAt.Format(timeLayout))
	}
}

func printStats(cmd *cobra.Command, stats *api.StatsResult) {
	status := "active"
	if !stats.IsActive {
		status = "inactive"
	}

	cmd.Println("Short code:  ", stats.ShortCode)
	cmd.Println("Total clicks:", stats.TotalClicks)
	cmd.Println("Original URL:", stats.OriginalURL)
	cmd.Println("Status:      ", status)
	cmd.Println("Created:     ", stats.CreatedAt.Format(timeLayout))

	if stats.ExpiresAt != nil {
		cmd.Println("Expires:     ", stats.ExpiresAt.Format(timeLayout))
	}
}

// describeError keeps backend detail messages verbatim and prefixes
// transport failures.
func describeError(err error) error {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return errors.New(apiErr.Detail)
	}

	if errors.Is(err, panel.ErrEmptyURL) || errors.Is(err, panel.ErrNoCurrentLink) {
		return err
	}

	return fmt.Errorf("network error: %w", err)
}
