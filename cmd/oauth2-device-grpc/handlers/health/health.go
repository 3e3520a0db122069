package health

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/wrale/oauth2-device-grpc/cmd/oauth2-device-grpc/handlers/common"
)

// Checker reports the health of one dependency
type Checker interface {
	CheckHealth(ctx context.Context) error
}

// CheckerFunc adapts a function to Checker
type CheckerFunc func(ctx context.Context) error

// CheckHealth calls f
func (f CheckerFunc) CheckHealth(ctx context.Context) error {
	return f(ctx)
}

// Handler processes health check requests
type Handler struct {
	checkers map[string]Checker
	version  string
	timeout  time.Duration
}

// Response represents the health check response.
// Version is omitted when empty.
type Response struct {
	Status  string         `json:"status"`
	Version string         `json:"version,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// New creates a health handler over the named checkers
func New(checkers map[string]Checker) *Handler {
	return &Handler{
		checkers: checkers,
		version:  "unknown",
		timeout:  5 * time.Second,
	}
}

// WithVersion sets the version for health check responses
func (h *Handler) WithVersion(version string) *Handler {
	h.version = version
	return h
}

// WithTimeout bounds how long all checks may take together
func (h *Handler) WithTimeout(d time.Duration) *Handler {
	h.timeout = d
	return h
}

// Check runs every checker concurrently and returns the per-component
// results. healthy is false when any checker failed.
func (h *Handler) Check(ctx context.Context) (healthy bool, details map[string]any) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	healthy = true
	details = make(map[string]any, len(h.checkers))
	for name, c := range h.checkers {
		wg.Add(1)
		go func(name string, c Checker) {
			defer wg.Done()
			err := c.CheckHealth(ctx)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				healthy = false
				details[name] = map[string]any{
					"status":  "unhealthy",
					"message": err.Error(),
				}
				return
			}
			details[name] = map[string]any{"status": "healthy"}
		}(name, c)
	}
	wg.Wait()
	return healthy, details
}

// ServeHTTP handles health check requests
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	healthy, details := h.Check(r.Context())

	response := Response{
		Status:  "healthy",
		Version: h.version,
		Details: details,
	}
	code := http.StatusOK
	if !healthy {
		response.Status = "unhealthy"
		code = http.StatusServiceUnavailable
	}

	common.WriteJSON(w, code, response)
}
