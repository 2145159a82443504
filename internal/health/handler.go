// Package health reports the console's own health, including whether
// the upstream shortener API is reachable.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"shortpanel/internal/api"
)

// Checker defines the interface for checking a dependency's health.
type Checker interface {
	Ping(ctx context.Context) error
}

// UpstreamChecker adapts the backend API client to the Checker interface.
type UpstreamChecker struct {
	client *api.Client
}

// NewUpstreamChecker creates a health checker for the upstream API.
func NewUpstreamChecker(client *api.Client) *UpstreamChecker {
	return &UpstreamChecker{client: client}
}

// Ping checks upstream reachability and reported status.
func (u *UpstreamChecker) Ping(ctx context.Context) error {
	status, err := u.client.Health(ctx)
	if err != nil {
		return err
	}

	if status.Status != "healthy" {
		return fmt.Errorf("upstream reports %q", status.Status)
	}

	return nil
}

// Handler handles health check operations.
type Handler struct {
	upstream Checker
}

// NewHandler creates a new health handler.
func NewHandler(upstream Checker) *Handler {
	return &Handler{upstream: upstream}
}

// Response is the response for the health check endpoint.
type Response struct {
	Status   string `json:"status"`
	Upstream string `json:"upstream"`
}

// Check performs a health check of the console and its upstream API.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	resp := Response{Status: "ok"}

	if err := h.upstream.Ping(r.Context()); err != nil {
		resp.Status = "degraded"
		resp.Upstream = "unhealthy"
	} else {
		resp.Upstream = "healthy"
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// RegisterRoutes registers health check routes.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/healthz", h.Check)
}
