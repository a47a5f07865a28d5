package termline

import "sync"

// RecordKind is the role of an output record.
type RecordKind int

// Output record kinds
const (
	RecordEcho RecordKind = iota
	RecordWarning
	RecordError
	RecordInfo
	RecordFreeform
	RecordClear
)

func (k RecordKind) String() string {
	switch k {
	case RecordEcho:
		return "echo"
	case RecordWarning:
		return "warning"
	case RecordError:
		return "error"
	case RecordInfo:
		return "info"
	case RecordFreeform:
		return "freeform"
	case RecordClear:
		return "clear"
	default:
		return "unknown"
	}
}

// Record is one piece of program output. Styles name color scheme roles for
// freeform records; Target names an alternate output area, empty for the main one.
type Record struct {
	Kind   RecordKind
	Text   string
	Styles []string
	Target string
}

// Writer fans output records out to its subscribers. It is safe for concurrent use.
type Writer struct {
	mu          sync.RWMutex
	subscribers []func(Record)
}

// NewWriter creates a writer without subscribers.
func NewWriter() *Writer {
	return &Writer{}
}

// Subscribe registers fn to receive every record written after the call.
func (w *Writer) Subscribe(fn func(Record)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.subscribers = append(w.subscribers, fn)
}

// Write delivers rec to every subscriber.
func (w *Writer) Write(rec Record) {
	w.mu.RLock()
	subscribers := append([]func(Record){}, w.subscribers...)
	w.mu.RUnlock()
	for _, fn := range subscribers {
		fn(rec)
	}
}

// Echo writes plain output.
func (w *Writer) Echo(text string) {
	w.Write(Record{Kind: RecordEcho, Text: text})
}

// Warn writes a warning.
func (w *Writer) Warn(text string) {
	w.Write(Record{Kind: RecordWarning, Text: text})
}

// Error writes an error message.
func (w *Writer) Error(text string) {
	w.Write(Record{Kind: RecordError, Text: text})
}

// Info writes an informational message.
func (w *Writer) Info(text string) {
	w.Write(Record{Kind: RecordInfo, Text: text})
}

// Freeform writes text styled with the given color scheme roles.
func (w *Writer) Freeform(text string, styles ...string) {
	w.Write(Record{Kind: RecordFreeform, Text: text, Styles: styles})
}

// FreeformTo writes styled text to an alternate output area.
func (w *Writer) FreeformTo(target, text string, styles ...string) {
	w.Write(Record{Kind: RecordFreeform, Text: text, Styles: styles, Target: target})
}

// Clear asks subscribers to clear the output.
func (w *Writer) Clear() {
	w.Write(Record{Kind: RecordClear})
}
