// Package render shapes the request handed to an external map widget. The
// widget owns every pixel-level detail (icons, popups, draw tools, the locate
// control); this package only decides the one presentation rule the service is
// responsible for: a highlighted location dims the campus and gets an accent
// circle plus a pulsing marker.
package render

import (
	"fmt"

	"campus/internal/directory"
	"campus/internal/models"
	"campus/pkg/geo"
)

// State of a single render request. Selected per request, never persisted.
type State string

const (
	StatePlain       State = "plain"
	StateHighlighted State = "highlighted"
)

// Highlight styling, matching the reference presentation.
const (
	overlayColor     = "#000000"
	overlayOpacity   = 0.5
	highlightColor   = "#FFD700"
	highlightOpacity = 0.3
	highlightWeight  = 2
)

// Marker is one map pin. Pulse is set on the highlighted location only.
type Marker struct {
	Point   geo.Point `json:"point"`
	Name    string    `json:"name"`
	Tooltip string    `json:"tooltip"`
	Popup   string    `json:"popup"`
	Pulse   bool      `json:"pulse"`
}

// Overlay is the dark rectangle drawn over the campus bounds while a location
// is highlighted.
type Overlay struct {
	Bounds      geo.Bounds `json:"bounds"`
	Color       string     `json:"color"`
	FillOpacity float64    `json:"fill_opacity"`
}

// Circle is the accent circle around the highlighted location, sized by the
// location's configured radius.
type Circle struct {
	Center      geo.Point `json:"center"`
	Radius      float64   `json:"radius"`
	Color       string    `json:"color"`
	FillOpacity float64   `json:"fill_opacity"`
	Weight      int       `json:"weight"`
}

// DrawOptions is the draw-tool configuration passed through verbatim to the
// widget's draw plugin.
type DrawOptions struct {
	Position     string `json:"position"`
	Export       bool   `json:"export"`
	Polyline     bool   `json:"polyline"`
	Marker       bool   `json:"marker"`
	Circle       bool   `json:"circle"`
	Rectangle    bool   `json:"rectangle"`
	Polygon      bool   `json:"polygon"`
	CircleMarker bool   `json:"circlemarker"`
}

// Request is everything an external map widget needs to draw one frame.
type Request struct {
	Center    geo.Point   `json:"center"`
	Zoom      int         `json:"zoom"`
	State     State       `json:"state"`
	Highlight string      `json:"highlight,omitempty"`
	Overlay   *Overlay    `json:"overlay,omitempty"`
	Circle    *Circle     `json:"circle,omitempty"`
	Markers   []Marker    `json:"markers"`
	Draw      DrawOptions `json:"draw"`
	Locate    bool        `json:"locate"`
}

// Selection is the per-request selection state. It is owned by the caller
// (the UI layer, or a per-user session) and threaded through each call; the
// directory and the composer never store it.
type Selection struct {
	// SearchTerm, when non-empty and matching, highlights the first match.
	SearchTerm string
	// Selected is an exact location name picked from the directory listing.
	Selected string
}

// Composer builds render requests against a directory using fixed map
// defaults. It is stateless and safe for concurrent use.
type Composer struct {
	dir           *directory.Directory
	bounds        geo.Bounds
	center        geo.Point
	zoom          int
	highlightZoom int
}

func NewComposer(dir *directory.Directory, bounds geo.Bounds, center geo.Point, zoom, highlightZoom int) *Composer {
	return &Composer{
		dir:           dir,
		bounds:        bounds,
		center:        center,
		zoom:          zoom,
		highlightZoom: highlightZoom,
	}
}

// Compose computes the render request for a selection. A search term takes
// precedence over an explicit selection, mirroring the reference behavior; a
// term or selection that matches nothing falls back to the plain marker map.
// There are exactly two outcomes: Plain, or Highlighted with overlay, accent
// circle, and pulsing marker.
func (c *Composer) Compose(sel Selection) Request {
	if sel.SearchTerm != "" {
		if matches := c.dir.Search(sel.SearchTerm); len(matches) > 0 {
			return c.highlighted(matches[0])
		}
		return c.plain()
	}
	if sel.Selected != "" {
		if loc, ok := c.dir.Find(sel.Selected); ok {
			return c.highlighted(loc)
		}
	}
	return c.plain()
}

func (c *Composer) plain() Request {
	return Request{
		Center:  c.center,
		Zoom:    c.zoom,
		State:   StatePlain,
		Markers: c.markers(""),
		Draw:    defaultDraw(),
		Locate:  true,
	}
}

func (c *Composer) highlighted(loc models.Location) Request {
	return Request{
		Center:    loc.Point,
		Zoom:      c.highlightZoom,
		State:     StateHighlighted,
		Highlight: loc.Name,
		Overlay: &Overlay{
			Bounds:      c.bounds,
			Color:       overlayColor,
			FillOpacity: overlayOpacity,
		},
		Circle: &Circle{
			Center:      loc.Point,
			Radius:      loc.Radius,
			Color:       highlightColor,
			FillOpacity: highlightOpacity,
			Weight:      highlightWeight,
		},
		Markers: c.markers(loc.Name),
		Draw:    defaultDraw(),
		Locate:  true,
	}
}

func (c *Composer) markers(highlightName string) []Marker {
	all := c.dir.All()
	out := make([]Marker, 0, len(all))
	for _, l := range all {
		out = append(out, Marker{
			Point:   l.Point,
			Name:    l.Name,
			Tooltip: l.Name,
			Popup:   fmt.Sprintf("%s | Type: %s | Lat: %.4f | Lon: %.4f", l.Name, l.Type, l.Point.Lat, l.Point.Lon),
			Pulse:   l.Name == highlightName,
		})
	}
	return out
}

func defaultDraw() DrawOptions {
	return DrawOptions{
		Position: "topleft",
		Polyline: true,
		Marker:   true,
		Circle:   true,
	}
}
