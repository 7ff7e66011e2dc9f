package mcp

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ferrolab/mcp-mockserver/internal/observer"
	"github.com/ferrolab/mcp-mockserver/internal/protocol"
)

// MaxBodyBytes is the hard cap on a JSON-RPC request body. A body past the
// cap tears down the connection with no JSON-RPC error; the client sees a
// reset, not a structured response. Deliberate, see the design notes.
const MaxBodyBytes = 1_000_000

// Handler is the HTTP transport for the dispatcher. POST dispatches a
// JSON-RPC request regardless of path; GET serves /health and /sse; every
// other method gets 405.
type Handler struct {
	server   *Server
	recorder observer.Recorder
	sse      http.Handler
	log      *logrus.Entry
}

// NewHandler wires the dispatcher, recorder and stream endpoint together.
// A nil recorder disables capture.
func NewHandler(server *Server, recorder observer.Recorder, sse http.Handler, log *logrus.Entry) *Handler {
	if recorder == nil {
		recorder = observer.Nop{}
	}
	return &Handler{server: server, recorder: recorder, sse: sse, log: log}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handleRPC(w, r)
	case http.MethodGet:
		switch r.URL.Path {
		case "/health":
			h.handleHealth(w, r)
		case "/sse":
			if h.sse != nil {
				h.sse.ServeHTTP(w, r)
				return
			}
			http.NotFound(w, r)
		default:
			http.NotFound(w, r)
		}
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (h *Handler) handleRPC(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, MaxBodyBytes+1))
	if err != nil {
		// Client went away mid-body; nothing useful to answer.
		return
	}
	if len(body) > MaxBodyBytes {
		panic(http.ErrAbortHandler)
	}

	var req protocol.Request
	if err := json.Unmarshal(body, &req); err != nil {
		resp := protocol.NewError(nil, protocol.CodeParseError, "Parse error")
		h.recorder.Record(observer.Event{Kind: observer.KindResponse, Payload: resp})
		h.writeJSON(w, resp, http.StatusBadRequest)
		return
	}

	h.recorder.Record(observer.Event{Kind: observer.KindRequest, Payload: req})
	resp := h.server.Handle(r.Context(), req)
	h.recorder.Record(observer.Event{Kind: observer.KindResponse, Payload: resp})
	h.writeJSON(w, resp, statusFor(resp))
}

// statusFor maps the envelope to an HTTP status. Successes and unmapped
// error codes stay 200.
func statusFor(resp protocol.Response) int {
	if resp.Error == nil {
		return http.StatusOK
	}
	switch resp.Error.Code {
	case protocol.CodeParseError, protocol.CodeInvalidParams:
		return http.StatusBadRequest
	case protocol.CodeMethodNotFound, protocol.CodeToolNotFound:
		return http.StatusNotFound
	default:
		return http.StatusOK
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, resp protocol.Response, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(resp); err != nil && h.log != nil {
		h.log.WithError(err).Warn("encode response")
	}
}

// RunHTTP serves the handler on addr until the listener fails.
func RunHTTP(h *Handler, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}
	if h.log != nil {
		h.log.Infof("mock server listening on %s", addr)
	}
	return srv.ListenAndServe()
}
