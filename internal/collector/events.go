package collector

import (
	"log"
	"sync"
)

// EventKind tells why an asset was left out of a scan.
type EventKind string

const (
	KindInsufficientData    EventKind = "insufficient_data"
	KindUnresolvableSymbol  EventKind = "unresolvable_symbol"
	KindProviderUnavailable EventKind = "provider_unavailable"
	KindComputationError    EventKind = "computation_error"
)

// Level is the severity of an Event.
type Level string

const (
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// Event describes a skipped asset.
type Event struct {
	Level  Level
	Kind   EventKind
	Symbol string
	Reason string
	Err    error
}

// EventSink receives scan events. Implementations must be safe for
// concurrent use.
type EventSink interface {
	Emit(evt Event)
}

// LogSink writes events to the standard logger.
type LogSink struct{}

func (LogSink) Emit(evt Event) {
	if evt.Err != nil {
		log.Printf("[%s] %s: %s (%s): %v", evt.Level, evt.Symbol, evt.Reason, evt.Kind, evt.Err)
		return
	}
	log.Printf("[%s] %s: %s (%s)", evt.Level, evt.Symbol, evt.Reason, evt.Kind)
}

// MemorySink keeps events in memory.
type MemorySink struct {
	mu     sync.Mutex
	events []Event
}

func (m *MemorySink) Emit(evt Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, evt)
}

// Events returns a copy of the collected events.
func (m *MemorySink) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Event, len(m.events))
	copy(out, m.events)
	return out
}
