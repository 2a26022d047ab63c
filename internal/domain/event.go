package domain

// EventType classifies a corridor traffic event
type EventType string

const (
	EventAccident     EventType = "accident"
	EventClosure      EventType = "closure"
	EventConstruction EventType = "construction"
	EventEMS          EventType = "ems"
	EventClear        EventType = "clear"
)

// Valid reports whether t is one of the known event types
func (t EventType) Valid() bool {
	switch t {
	case EventAccident, EventClosure, EventConstruction, EventEMS, EventClear:
		return true
	}
	return false
}

// EventUpdateRequest is the body of POST /api/event
type EventUpdateRequest struct {
	Type     EventType `json:"type"`
	NodeID   *string   `json:"nodeId"`
	Severity *int      `json:"severity"`
}

// Validate checks the request against the schema rules and returns
// field-level errors keyed by JSON field name. Severity outside 1..5 is
// rejected, not clamped.
func (r EventUpdateRequest) Validate() map[string]string {
	fields := make(map[string]string)
	if !r.Type.Valid() {
		fields["type"] = "must be one of accident, closure, construction, ems, clear"
	}
	if r.Severity != nil && (*r.Severity < 1 || *r.Severity > 5) {
		fields["severity"] = "must be between 1 and 5"
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// StateSnapshot is a read-only copy of the shared state record.
// Invariant: EventActive == (EventType != EventClear).
type StateSnapshot struct {
	EventActive bool      `json:"eventActive"`
	EventType   EventType `json:"eventType"`
	Severity    int       `json:"severity"`
	FocusNodeID *string   `json:"focusNodeId"`
}

// KPI holds the derived corridor performance metrics
type KPI struct {
	ETAEMS           int `json:"eta_ems"`
	TravelTimeDelta  int `json:"travel_time_delta"`
	QueueLenEstimate int `json:"queue_len_estimate"`
}

// StreamFrame is one WebSocket push on /ws/stream
type StreamFrame struct {
	KPI KPI   `json:"kpi"`
	TS  int64 `json:"ts"`
}
