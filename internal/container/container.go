// Package container wires the console's services together.
package container

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/securecookie"
	"github.com/samber/do"
	"go.uber.org/zap"

	"shortpanel/internal/api"
	"shortpanel/internal/health"
	"shortpanel/internal/history"
	"shortpanel/internal/middleware"
	"shortpanel/internal/web"
)

// Options holds the console's runtime configuration, populated from
// flags and environment by humacli.
type Options struct {
	Port           int    `default:"8080"                  help:"Port to listen on"                                              short:"p"`
	UpstreamURL    string `default:"http://localhost:8000" help:"Base URL of the shortener backend"                              short:"u"`
	RequestTimeout int    `default:"10"                    help:"Upstream request timeout in seconds"                            short:"t"`
	CookieHashKey  string `default:""                      help:"Base64 key signing the recent-links cookie (32 bytes)"`
	CookieBlockKey string `default:""                      help:"Base64 key encrypting the recent-links cookie (16/24/32 bytes)"`
}

// LoggerPackage provides the application logger.
func LoggerPackage(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (*zap.Logger, error) {
		return zap.NewProduction()
	})
}

// APIClientPackage provides the backend API client.
func APIClientPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*api.Client, error) {
		options := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)

		timeout := time.Duration(options.RequestTimeout) * time.Second

		return api.NewClient(options.UpstreamURL, timeout, logger), nil
	})
}

// HistoryPackage provides the recent-links cookie codec. Without
// configured keys a random pair is generated, which invalidates
// existing cookies on every restart.
func HistoryPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*history.CookieCodec, error) {
		options := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)

		hashKey, err := cookieKey(options.CookieHashKey, 32)
		if err != nil {
			return nil, fmt.Errorf("cookie hash key: %w", err)
		}

		blockKey, err := cookieKey(options.CookieBlockKey, 32)
		if err != nil {
			return nil, fmt.Errorf("cookie block key: %w", err)
		}

		if options.CookieHashKey == "" || options.CookieBlockKey == "" {
			logger.Warn("cookie keys not configured, recent links will not survive restarts")
		}

		return history.NewCookieCodec(hashKey, blockKey), nil
	})
}

// HTTPPackage provides the router with all console routes mounted.
func HTTPPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*chi.Mux, error) {
		logger := do.MustInvoke[*zap.Logger](i)
		client := do.MustInvoke[*api.Client](i)
		codec := do.MustInvoke[*history.CookieCodec](i)

		handler, err := web.NewHandler(client, codec, logger)
		if err != nil {
			return nil, err
		}

		router := chi.NewMux()
		router.Use(middleware.RequestID)
		router.Use(middleware.Logging(logger))

		handler.RegisterRoutes(router)
		health.RegisterRoutes(router, health.NewHandler(health.NewUpstreamChecker(client)))

		return router, nil
	})
}

func cookieKey(encoded string, size int) ([]byte, error) {
	if encoded == "" {
		return securecookie.GenerateRandomKey(size), nil
	}

	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, err
	}

	return key, nil
}
