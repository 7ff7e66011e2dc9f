// Package observer captures the requests and responses flowing through the
// dispatcher as append-only events. Recording is strictly best-effort: a sink
// that cannot write must never affect the client-visible response.
package observer

// Event kinds.
const (
	KindRequest  = "request"
	KindResponse = "response"
)

// Event is one recorded request or response.
type Event struct {
	Kind    string `json:"kind"`
	Payload any    `json:"payload"`
}

// Recorder receives dispatch events.
type Recorder interface {
	Record(e Event)
}

// Nop discards every event.
type Nop struct{}

func (Nop) Record(Event) {}
