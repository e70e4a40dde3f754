// Package telemetry provides frame timing, session events and CSV output.
package telemetry

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// EventType identifies session events.
type EventType string

const (
	EventElementShown EventType = "element_shown"
	EventPaused       EventType = "paused"
	EventResumed      EventType = "resumed"
	EventBloomOn      EventType = "bloom_on"
	EventBloomOff     EventType = "bloom_off"
	EventCameraReset  EventType = "camera_reset"
	EventResized      EventType = "resized"
)

// Event is one user-visible state change, written as a CSV row.
type Event struct {
	Type      EventType `csv:"type"`
	Frame     int64     `csv:"frame"`
	TimeSec   float64   `csv:"time_sec"`
	Element   string    `csv:"element"`
	Protons   int       `csv:"protons"`
	Neutrons  int       `csv:"neutrons"`
	Electrons int       `csv:"electrons"`
	Shells    string    `csv:"shells"` // electron configuration, e.g. "2-8-1"
	Detail    string    `csv:"detail"`
}

// NewElementEvent records that an element became the displayed atom.
func NewElementEvent(frame int64, t float64, symbol string, protons, neutrons int, shells []int) Event {
	electrons := 0
	for _, n := range shells {
		electrons += n
	}
	return Event{
		Type:      EventElementShown,
		Frame:     frame,
		TimeSec:   t,
		Element:   symbol,
		Protons:   protons,
		Neutrons:  neutrons,
		Electrons: electrons,
		Shells:    FormatShells(shells),
	}
}

// NewResizeEvent records a framebuffer resize.
func NewResizeEvent(frame int64, t float64, width, height int32) Event {
	return Event{
		Type:    EventResized,
		Frame:   frame,
		TimeSec: t,
		Detail:  fmt.Sprintf("%dx%d", width, height),
	}
}

// NewEvent creates an event with no payload.
func NewEvent(typ EventType, frame int64, t float64) Event {
	return Event{Type: typ, Frame: frame, TimeSec: t}
}

// FormatShells renders an electron configuration as "2-8-1".
func FormatShells(shells []int) string {
	parts := make([]string, len(shells))
	for i, n := range shells {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, "-")
}

// Log writes the event with slog.
func (e Event) Log() {
	attrs := []any{"type", string(e.Type), "frame", e.Frame}
	if e.Element != "" {
		attrs = append(attrs,
			"element", e.Element,
			"protons", e.Protons,
			"neutrons", e.Neutrons,
			"shells", e.Shells,
		)
	}
	if e.Detail != "" {
		attrs = append(attrs, "detail", e.Detail)
	}
	slog.Info("event", attrs...)
}
