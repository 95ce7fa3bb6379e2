package game

import (
	"fmt"
	"strings"
)

// Event log categories.
const (
	CatSession = "session"
	CatLevel   = "level"
	CatInput   = "input"
	CatFly     = "fly"
	CatTimer   = "timer"
	CatAudio   = "audio"
)

// EventLogEntry is one recorded gameplay event.
type EventLogEntry struct {
	Frame    int
	Level    int
	Category string  // session, level, input, fly, timer, audio
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[F=00042] L1 input    hit              (412,300)
func (e EventLogEntry) String() string {
	return fmt.Sprintf("[F=%05d] L%d %-9s %-16s %s",
		e.Frame, e.Level, e.Category, e.Key, e.Value)
}

// EventLog collects structured events for a session. It is unbounded and
// machine-readable; the debug feed shows only its tail.
type EventLog struct {
	entries []EventLogEntry
}

// NewEventLog creates an empty log.
func NewEventLog() *EventLog {
	return &EventLog{}
}

// Add records a new entry.
func (el *EventLog) Add(frame, level int, category, key, value string, numVal float64) {
	el.entries = append(el.entries, EventLogEntry{
		Frame:    frame,
		Level:    level,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// Entries returns all recorded entries.
func (el *EventLog) Entries() []EventLogEntry {
	return el.entries
}

// Tail returns at most n of the newest entries, oldest first.
func (el *EventLog) Tail(n int) []EventLogEntry {
	if n >= len(el.entries) {
		return el.entries
	}
	return el.entries[len(el.entries)-n:]
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (el *EventLog) Filter(category, key string) []EventLogEntry {
	var out []EventLogEntry
	for _, e := range el.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterLevel returns entries recorded while the given level was current.
func (el *EventLog) FilterLevel(level int) []EventLogEntry {
	var out []EventLogEntry
	for _, e := range el.entries {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (el *EventLog) CountCategory(category, key string) int {
	n := 0
	for _, e := range el.entries {
		if (category == "" || e.Category == category) && (key == "" || e.Key == key) {
			n++
		}
	}
	return n
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (el *EventLog) LastOf(category, key string) (EventLogEntry, bool) {
	for i := len(el.entries) - 1; i >= 0; i-- {
		e := el.entries[i]
		if (category == "" || e.Category == category) && (key == "" || e.Key == key) {
			return e, true
		}
	}
	return EventLogEntry{}, false
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (el *EventLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range el.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log as a single string for t.Log output.
func (el *EventLog) Format() string {
	var sb strings.Builder
	for _, e := range el.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
