// Package events defines the messages published on the campus event stream.
package events

import (
	"time"

	"campus/pkg/geo"
)

// HighlightEvent is published whenever a highlighted render request is
// composed. It is telemetry about a render, never server-side selection
// state: the directory stays read-only and the next request carries its own
// selection.
type HighlightEvent struct {
	Name   string    `json:"name"`
	Center geo.Point `json:"center"`
	Zoom   int       `json:"zoom"`
	At     time.Time `json:"at"`
}
