package observer

import "sync"

// MemoryRecorder keeps a bounded ring of recent events. Intended for tests
// and for inspecting a running mock without touching the filesystem.
type MemoryRecorder struct {
	mu     sync.Mutex
	events []Event
	next   int
	count  int
}

// NewMemoryRecorder builds a recorder retaining at most size events.
func NewMemoryRecorder(size int) *MemoryRecorder {
	if size <= 0 {
		size = 200
	}
	return &MemoryRecorder{events: make([]Event, size)}
}

// Record stores the event, evicting the oldest once full.
func (r *MemoryRecorder) Record(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events[r.next] = e
	r.next = (r.next + 1) % len(r.events)
	if r.count < len(r.events) {
		r.count++
	}
}

// Tail returns up to n most recent events, oldest first.
func (r *MemoryRecorder) Tail(n int) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	if n <= 0 || r.count == 0 {
		return nil
	}
	if n > r.count {
		n = r.count
	}

	start := (r.next - n + len(r.events)) % len(r.events)
	out := make([]Event, n)
	for i := 0; i < n; i++ {
		out[i] = r.events[(start+i)%len(r.events)]
	}
	return out
}

// ByKind returns the recorded events of one kind, oldest first.
func (r *MemoryRecorder) ByKind(kind string) []Event {
	var out []Event
	for _, e := range r.Tail(r.len()) {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

func (r *MemoryRecorder) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}
