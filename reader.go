package termline

import (
	"context"
	"errors"
	"sync"
	"time"
)

// DefaultInputPollInterval is how often a pending Read checks for a response.
const DefaultInputPollInterval = 100 * time.Millisecond

// ErrReadPending is returned when Read is called while another Read is waiting.
var ErrReadPending = errors.New("an input request is already pending")

// Reader lets a running command ask the user for more input.
//
// Read publishes a prompt label to subscribers and waits until Respond supplies a
// value. A request stays pending until Read has picked up its answer, so the editor
// keeps routing Enter to Respond instead of dispatching the line as a command.
// Answers given before Read picks them up are queued for the following reads.
type Reader struct {
	mu          sync.Mutex
	interval    time.Duration
	label       string
	pending     bool
	responses   []string
	subscribers []func(label string)
}

// NewReader creates a reader polling for responses every interval.
func NewReader(interval time.Duration) *Reader {
	if interval <= 0 {
		interval = DefaultInputPollInterval
	}
	return &Reader{interval: interval}
}

// Subscribe registers fn to receive the prompt label whenever it changes. An empty
// label means the request has been answered.
func (r *Reader) Subscribe(fn func(label string)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subscribers = append(r.subscribers, fn)
}

func (r *Reader) publish(label string) {
	r.mu.Lock()
	subscribers := append([]func(string){}, r.subscribers...)
	r.mu.Unlock()
	for _, fn := range subscribers {
		fn(label)
	}
}

// Read asks for input with the given prompt label and blocks until a response
// arrives or ctx is done. Empty responses are valid.
func (r *Reader) Read(ctx context.Context, label string) (string, error) {
	r.mu.Lock()
	if r.pending {
		r.mu.Unlock()
		return "", ErrReadPending
	}
	r.pending = true
	r.label = label
	r.mu.Unlock()
	r.publish(label)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.finish()
			return "", ctx.Err()
		case <-ticker.C:
			if response, ok := r.take(); ok {
				r.publish("")
				return response, nil
			}
		}
	}
}

func (r *Reader) take() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.responses) == 0 {
		return "", false
	}
	response := r.responses[0]
	r.responses = r.responses[1:]
	r.pending = false
	r.label = ""
	return response, true
}

func (r *Reader) finish() {
	r.mu.Lock()
	r.pending = false
	r.responses = nil
	r.label = ""
	r.mu.Unlock()
	r.publish("")
}

// Respond answers the pending request. Further answers given before Read picks up
// the first one are queued. It returns false when nothing is pending.
func (r *Reader) Respond(value string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.pending {
		return false
	}
	r.responses = append(r.responses, value)
	return true
}

// Pending reports whether a Read is waiting, including while its answer has been
// supplied but not yet picked up.
func (r *Reader) Pending() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pending
}

// Label returns the prompt label of the pending request, or "".
func (r *Reader) Label() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.label
}
