// Package outfit holds the transient outfit planner: the fixed body zones,
// the per-view assignment of clothing items to zones, and the registry of
// open planner views.
package outfit

import (
	"errors"
	"fmt"
)

// ErrInvalidZone is returned when a zone identifier is not one of the fixed zones.
var ErrInvalidZone = errors.New("invalid zone")

// Zone is a body region that can hold one clothing item.
type Zone string

// The fixed set of zones.
const (
	ZoneHead  Zone = "head"
	ZoneTorso Zone = "torso"
	ZoneLegs  Zone = "legs"
	ZoneFeet  Zone = "feet"
)

// Zones lists every zone, top to bottom.
var Zones = []Zone{ZoneHead, ZoneTorso, ZoneLegs, ZoneFeet}

// Valid reports whether z is one of the fixed zones.
func (z Zone) Valid() bool {
	switch z {
	case ZoneHead, ZoneTorso, ZoneLegs, ZoneFeet:
		return true
	}
	return false
}

// ParseZone converts a zone identifier into a Zone.
func ParseZone(s string) (Zone, error) {
	z := Zone(s)
	if !z.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidZone, s)
	}
	return z, nil
}

// Anchor is the vertical edge a zone box is positioned from.
type Anchor string

// Anchors.
const (
	AnchorTop    Anchor = "top"
	AnchorBottom Anchor = "bottom"
)

// Geometry is a zone's box on the body silhouette, in percent of the
// silhouette's size. Boxes are horizontally centered.
type Geometry struct {
	Anchor Anchor `json:"anchor"`
	Offset int    `json:"offset"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Geometry returns the layout box for the zone. Invalid zones get the zero value.
func (z Zone) Geometry() Geometry {
	switch z {
	case ZoneHead:
		return Geometry{Anchor: AnchorTop, Offset: 5, Width: 25, Height: 20}
	case ZoneTorso:
		return Geometry{Anchor: AnchorTop, Offset: 25, Width: 50, Height: 30}
	case ZoneLegs:
		return Geometry{Anchor: AnchorTop, Offset: 55, Width: 40, Height: 35}
	case ZoneFeet:
		return Geometry{Anchor: AnchorBottom, Offset: 5, Width: 35, Height: 10}
	}
	return Geometry{}
}

// CSS renders the geometry as an inline style declaration.
func (g Geometry) CSS() string {
	return fmt.Sprintf("left:50%%;transform:translateX(-50%%);%s:%d%%;width:%d%%;height:%d%%",
		g.Anchor, g.Offset, g.Width, g.Height)
}
