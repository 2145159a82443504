// Package web serves the shortener console: a server-rendered page with
// the shorten form, the result and error panels, the recent-links
// section with live statistics, and a QR endpoint for short links.
package web

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"

	"shortpanel/internal/api"
	"shortpanel/internal/history"
	"shortpanel/internal/panel"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const qrSize = 256

// Handler renders the console pages.
type Handler struct {
	client *api.Client
	codec  *history.CookieCodec
	logger *zap.Logger
	tmpl   *template.Template
}

// NewHandler parses the embedded templates and creates a handler.
func NewHandler(client *api.Client, codec *history.CookieCodec, logger *zap.Logger) (*Handler, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	return &Handler{
		client: client,
		codec:  codec,
		logger: logger,
		tmpl:   tmpl,
	}, nil
}

// RegisterRoutes mounts the console routes on the router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Index)
	r.Post("/shorten", h.Shorten)
	r.Get("/stats/{code}", h.Stats)
	r.Get("/qr/{code}.png", h.QR)

	static, _ := fs.Sub(staticFS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))
}

type formValues struct {
	OriginalURL    string
	CustomSlug     string
	ExpiresInHours string
}

type indexData struct {
	Result    *api.ShortenResult
	Error     string
	Recent    []panel.RecentView
	Form      formValues
	DocsURL   string
	HealthURL string
}

type statsData struct {
	Code      string
	Stats     *api.StatsResult
	Error     string
	ShortURL  string
	DocsURL   string
	HealthURL string
}

// Index renders the form page with the recent list refreshed from live
// statistics.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	ctrl := h.controller(w, r)

	recent, err := ctrl.RefreshRecent(r.Context())
	if err != nil {
		h.logger.Warn("recent list refresh failed", zap.Error(err))
	}

	h.renderIndex(w, indexData{Recent: recent})
}

// Shorten handles the form submission. The create request fully resolves
// before the recent list is re-read and re-rendered.
func (h *Handler) Shorten(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)

		return
	}

	form := formValues{
		OriginalURL:    strings.TrimSpace(r.PostFormValue("original_url")),
		CustomSlug:     strings.TrimSpace(r.PostFormValue("custom_slug")),
		ExpiresInHours: strings.TrimSpace(r.PostFormValue("expires_in_hours")),
	}

	expiresInHours := 0
	if form.ExpiresInHours != "" {
		expiresInHours, _ = strconv.Atoi(form.ExpiresInHours)
	}

	ctrl := h.controller(w, r)

	result, err := ctrl.Submit(r.Context(), form.OriginalURL, form.CustomSlug, expiresInHours)
	if err != nil {
		recent, refreshErr := ctrl.RefreshRecent(r.Context())
		if refreshErr != nil {
			h.logger.Warn("recent list refresh failed", zap.Error(refreshErr))
		}

		h.renderIndex(w, indexData{
			Error:  errorMessage(err),
			Form:   form,
			Recent: recent,
		})

		return
	}

	recent, refreshErr := ctrl.RefreshRecent(r.Context())
	if refreshErr != nil {
		h.logger.Warn("recent list refresh failed", zap.Error(refreshErr))
	}

	h.renderIndex(w, indexData{
		Result: result,
		Recent: recent,
	})
}

// Stats renders statistics for one short code.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	data := statsData{
		Code:      code,
		ShortURL:  h.client.ShortURL(code),
		DocsURL:   h.client.DocsURL(),
		HealthURL: h.client.HealthURL(),
	}

	stats, err := h.client.Stats(r.Context(), code)
	if err != nil {
		data.Error = errorMessage(err)
	} else {
		data.Stats = stats
	}

	h.render(w, "stats.html.tmpl", data)
}

// QR serves a PNG QR code for a short link.
func (h *Handler) QR(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	png, err := qrcode.Encode(h.client.ShortURL(code), qrcode.Medium, qrSize)
	if err != nil {
		h.logger.Error("qr encoding failed", zap.String("code", code), zap.Error(err))
		http.Error(w, "qr encoding failed", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write(png)
}

func (h *Handler) controller(w http.ResponseWriter, r *http.Request) *panel.Controller {
	store := history.NewRequestStore(h.codec, w, r)

	// Copying happens in the page script, so no clipboard here.
	return panel.New(h.client, store, nil, h.logger)
}

func (h *Handler) renderIndex(w http.ResponseWriter, data indexData) {
	data.DocsURL = h.client.DocsURL()
	data.HealthURL = h.client.HealthURL()

	h.render(w, "index.html.tmpl", data)
}

func (h *Handler) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if err := h.tmpl.ExecuteTemplate(w, name, data); err != nil {
		h.logger.Error("template render failed", zap.String("template", name), zap.Error(err))
	}
}

// errorMessage maps an error to what the page shows: the backend's
// detail verbatim, or a generic network prefix with the underlying
// description.
func errorMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}

	if errors.Is(err, panel.ErrEmptyURL) {
		return "Please enter a URL to shorten."
	}

	return "Network error: " + err.Error()
}
