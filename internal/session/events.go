package session

import "time"

// EventType identifies the kind of session event.
type EventType string

const (
	EventRunStart     EventType = "run_start"
	EventRunEnd       EventType = "run_complete"
	EventCheckStart   EventType = "check_start"
	EventCheckEnd     EventType = "check_complete"
	EventCheckSkipped EventType = "check_skipped"
	EventFixStart     EventType = "fix_start"
	EventFixEnd       EventType = "fix_complete"
	EventError        EventType = "error"
)

// Event is a single timestamped entry in a session log.
type Event struct {
	Timestamp time.Time      `json:"timestamp"`
	Type      EventType      `json:"type"`
	Data      map[string]any `json:"data,omitempty"`
}

// NewEvent creates an event with the current timestamp.
func NewEvent(t EventType, data map[string]any) Event {
	return Event{
		Timestamp: time.Now().UTC(),
		Type:      t,
		Data:      data,
	}
}

// RunStartData returns event data for the start of a blueprint run.
func RunStartData(blueprint string, checkCount int) map[string]any {
	return map[string]any{
		"blueprint":   blueprint,
		"check_count": checkCount,
	}
}

// RunCompleteData returns event data for the end of a blueprint run.
func RunCompleteData(blueprint string, total, failed, skipped int, durationMs int64) map[string]any {
	return map[string]any{
		"blueprint":   blueprint,
		"total":       total,
		"failed":      failed,
		"skipped":     skipped,
		"duration_ms": durationMs,
	}
}

// CheckStartData returns event data for the start of one check.
func CheckStartData(name string, num, total int) map[string]any {
	return map[string]any{
		"check": name,
		"num":   num,
		"total": total,
	}
}

// CheckCompleteData returns event data for a finished check.
func CheckCompleteData(name, status string, durationMs int64) map[string]any {
	return map[string]any{
		"check":       name,
		"status":      status,
		"duration_ms": durationMs,
	}
}

// CheckSkippedData returns event data for a skipped check.
func CheckSkippedData(name, reason string) map[string]any {
	return map[string]any{
		"check":  name,
		"reason": reason,
	}
}

// FixData returns event data for a fix attempt on one check.
func FixData(name, status string) map[string]any {
	return map[string]any{
		"check":  name,
		"status": status,
	}
}

// ErrorData returns event data for an error.
func ErrorData(message string, details map[string]any) map[string]any {
	d := map[string]any{
		"message": message,
	}
	for k, v := range details {
		d[k] = v
	}
	return d
}
