package observer

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileRecorder appends one JSON line per event, requests to one file and
// responses to another. Write and marshal errors are swallowed.
type FileRecorder struct {
	mu        sync.Mutex
	requests  io.Writer
	responses io.Writer
	closers   []io.Closer
}

// NewFileRecorder opens (or creates) the two log files in append mode.
func NewFileRecorder(requestPath, responsePath string) (*FileRecorder, error) {
	reqFile, err := openAppend(requestPath)
	if err != nil {
		return nil, err
	}
	respFile, err := openAppend(responsePath)
	if err != nil {
		_ = reqFile.Close()
		return nil, err
	}
	return &FileRecorder{
		requests:  reqFile,
		responses: respFile,
		closers:   []io.Closer{reqFile, respFile},
	}, nil
}

// NewWriterRecorder wires a recorder over arbitrary writers.
func NewWriterRecorder(requests, responses io.Writer) *FileRecorder {
	return &FileRecorder{requests: requests, responses: responses}
}

// Record appends the event to the file matching its kind.
func (r *FileRecorder) Record(e Event) {
	var w io.Writer
	switch e.Kind {
	case KindRequest:
		w = r.requests
	case KindResponse:
		w = r.responses
	default:
		return
	}

	line, err := json.Marshal(map[string]any{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"kind":      e.Kind,
		"payload":   e.Payload,
	})
	if err != nil {
		return
	}
	line = append(line, '\n')

	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = w.Write(line)
}

// Close releases the underlying files, if any.
func (r *FileRecorder) Close() error {
	var first error
	for _, c := range r.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func openAppend(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}
