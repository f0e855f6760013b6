package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/askanything/board/internal/api/metrics"
	"github.com/askanything/board/internal/core/ports"
)

const subscriberBuffer = 16

// StreamHub fans persisted-key changes out to server-sent-event clients.
// It is the listener the change dispatcher delivers to.
type StreamHub struct {
	mu     sync.Mutex
	subs   map[chan ports.Change]struct{}
	closed bool
	log    zerolog.Logger
}

func NewStreamHub(log zerolog.Logger) *StreamHub {
	return &StreamHub{
		subs: make(map[chan ports.Change]struct{}),
		log:  log,
	}
}

var _ ports.ChangeListener = (*StreamHub)(nil)

// OnChange never blocks on a slow subscriber; the change is dropped for it.
func (h *StreamHub) OnChange(_ context.Context, c ports.Change) error {
	metrics.ChangesPublishedTotal.WithLabelValues(c.Key).Inc()

	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- c:
		default:
			h.log.Warn().Str("key", c.Key).Msg("stream subscriber lagging, change dropped")
		}
	}
	return nil
}

func (h *StreamHub) subscribe() (<-chan ports.Change, func()) {
	ch := make(chan ports.Change, subscriberBuffer)

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	metrics.StreamSubscribers.Inc()

	return ch, func() {
		h.mu.Lock()
		delete(h.subs, ch)
		h.mu.Unlock()
		metrics.StreamSubscribers.Dec()
	}
}

// Close ends every open stream and refuses new ones. http.Server.Shutdown
// does not cancel in-flight requests, so it must run before or during
// shutdown (RegisterOnShutdown).
func (h *StreamHub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for ch := range h.subs {
		close(ch)
		delete(h.subs, ch)
	}
}

// Subscribers returns the number of connected stream clients.
func (h *StreamHub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Stream handles GET /v1/stream. Each change is sent as
//
//	event: change
//	data: {"key":"questions","at":"..."}
func (h *StreamHub) Stream(c echo.Context) error {
	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(http.StatusOK)
	res.Flush()

	changes, unsubscribe := h.subscribe()
	defer unsubscribe()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case change, ok := <-changes:
			if !ok {
				return nil
			}
			payload, err := json.Marshal(change)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(res, "event: change\ndata: %s\n\n", payload); err != nil {
				return nil
			}
			res.Flush()
		}
	}
}
