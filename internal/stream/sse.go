// Package stream serves the server-sent-events keep-alive endpoint.
package stream

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// DefaultPingInterval is how often the keep-alive ping event fires.
const DefaultPingInterval = 15 * time.Second

// helloPayload is the first event sent on every connection.
const helloPayload = `{"status":"ok"}`

// Handler streams events to a connected client: one message event carrying a
// status payload, then ping events until the client goes away. Each
// connection owns exactly one ticker, stopped on disconnect.
type Handler struct {
	log      *logrus.Entry
	interval time.Duration
}

// NewHandler builds a stream handler. A non-positive interval falls back to
// DefaultPingInterval.
func NewHandler(log *logrus.Entry, interval time.Duration) *Handler {
	if interval <= 0 {
		interval = DefaultPingInterval
	}
	return &Handler{log: log, interval: interval}
}

// ServeHTTP implements the GET /sse endpoint.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)

	connID := uuid.NewString()
	h.logf(logrus.Fields{"conn": connID, "remote": r.RemoteAddr}, "sse connected")

	writeEvent(w, "message", helloPayload)
	flusher.Flush()

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			h.logf(logrus.Fields{"conn": connID}, "sse disconnected")
			return
		case <-ticker.C:
			writeEvent(w, "ping", "")
			flusher.Flush()
		}
	}
}

func writeEvent(w http.ResponseWriter, event, data string) {
	_, _ = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
}

func (h *Handler) logf(fields logrus.Fields, msg string) {
	if h.log != nil {
		h.log.WithFields(fields).Info(msg)
	}
}
