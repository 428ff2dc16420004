package orbits

import (
	"errors"
	"fmt"

	"phasepositions/internal/geom"
)

// Constants are the pixel distances that govern where bodies may sit.
type Constants struct {
	MinRadius        float64 // closest a planet may get to the Sun
	MaxRadius        float64 // farthest a planet may get from the Sun
	MoonRadius       float64 // fixed distance of a moon from its planet
	CaptureThreshold float64 // a planet closer than this to the other body becomes its moon
	EscapeThreshold  float64 // a moon farther than this from its planet may break free
}

// Validate checks the relations the solver depends on.
func (c Constants) Validate() error {
	var errs []error
	if c.MinRadius < 0 {
		errs = append(errs, fmt.Errorf("min radius %v is negative", c.MinRadius))
	}
	if c.MaxRadius < c.MinRadius {
		errs = append(errs, fmt.Errorf("max radius %v below min radius %v", c.MaxRadius, c.MinRadius))
	}
	if c.MoonRadius <= 0 {
		errs = append(errs, fmt.Errorf("moon radius %v must be positive", c.MoonRadius))
	}
	if c.CaptureThreshold >= c.EscapeThreshold {
		errs = append(errs, fmt.Errorf("capture threshold %v must be below escape threshold %v",
			c.CaptureThreshold, c.EscapeThreshold))
	}
	return errors.Join(errs...)
}

// PlanetFix is the legal planet placement for a raw position.
type PlanetFix struct {
	Position     geom.Point
	WithinBounds bool    // false when the radius had to be clamped
	Angle        float64 // direction from the Sun
	Distance     float64 // normalized radius in [0, 1]
}

// PlanetGeometry clamps raw into the annulus [minRadius, maxRadius] around
// center. The angle always comes from raw itself; fallbackAngle is used only
// when raw coincides with center.
func PlanetGeometry(raw, center geom.Point, minRadius, maxRadius, fallbackAngle float64) PlanetFix {
	r := geom.Distance(center, raw)
	angle := geom.Angle(center, raw, fallbackAngle)
	fix := PlanetFix{Position: raw, WithinBounds: true, Angle: angle}
	if r < minRadius || r > maxRadius {
		r = geom.Clamp(r, minRadius, maxRadius)
		fix.Position = geom.Polar(center, r, angle)
		fix.WithinBounds = false
	}
	if span := maxRadius - minRadius; span > 0 {
		fix.Distance = geom.Clamp((r-minRadius)/span, 0, 1)
	}
	return fix
}

// MoonFix is the moon placement for a raw position.
type MoonFix struct {
	Position      geom.Point
	WithinCapture bool    // raw distance below the capture threshold
	ExceedsEscape bool    // raw distance above the escape threshold
	Angle         float64 // direction from the planet
}

// MoonGeometry projects raw onto the moon circle around planet. The flags
// describe the unprojected distance.
func MoonGeometry(raw, planet geom.Point, c Constants, fallbackAngle float64) MoonFix {
	d := geom.Distance(planet, raw)
	angle := geom.Angle(planet, raw, fallbackAngle)
	return MoonFix{
		Position:      geom.Polar(planet, c.MoonRadius, angle),
		WithinCapture: d < c.CaptureThreshold,
		ExceedsEscape: d > c.EscapeThreshold,
		Angle:         angle,
	}
}

// Transition names the outcome of ResolveBodyMove.
type Transition int

const (
	StayedPlanet    Transition = iota // planet clamped into the annulus
	Captured                          // planet became a moon of the other body
	StayedMoon                        // moon stayed on its circle
	Escaped                           // moon became a planet
	EscapeRejected                    // moon left the escape threshold but clamping put it back in capture range
	DraggedWithMoon                   // planet moved and its moon followed
)

func (t Transition) String() string {
	switch t {
	case StayedPlanet:
		return "stayed planet"
	case Captured:
		return "captured"
	case StayedMoon:
		return "stayed moon"
	case Escaped:
		return "escaped"
	case EscapeRejected:
		return "escape rejected"
	case DraggedWithMoon:
		return "dragged with moon"
	}
	return fmt.Sprintf("Transition(%d)", int(t))
}

// ResolveBodyMove places moving as close to proposed as the orbit rules
// allow and updates both bodies' states and positions. At most one of the two
// bodies is a moon afterwards.
func ResolveBodyMove(moving, other *Body, proposed, center geom.Point, c Constants) Transition {
	switch {
	case moving.isMoon:
		moon := MoonGeometry(proposed, other.position, c, moving.angle)
		if !moon.ExceedsEscape {
			moving.becomeMoon(moon)
			return StayedMoon
		}
		planet := PlanetGeometry(proposed, center, c.MinRadius, c.MaxRadius,
			geom.Angle(center, moving.position, 0))
		if !planet.WithinBounds {
			// Clamping toward the Sun can drop the candidate straight back into
			// capture range; stay a moon rather than flicker.
			if MoonGeometry(planet.Position, other.position, c, moon.Angle).WithinCapture {
				moving.becomeMoon(moon)
				return EscapeRejected
			}
		}
		moving.becomePlanet(planet)
		return Escaped

	case other.isMoon:
		planet := PlanetGeometry(proposed, center, c.MinRadius, c.MaxRadius, moving.angle)
		moving.becomePlanet(planet)
		other.becomeMoon(MoonGeometry(other.position, planet.Position, c, other.angle))
		return DraggedWithMoon

	default:
		planet := PlanetGeometry(proposed, center, c.MinRadius, c.MaxRadius, moving.angle)
		moon := MoonGeometry(planet.Position, other.position, c,
			geom.Angle(other.position, moving.position, 0))
		if moon.WithinCapture {
			moving.distance = planet.Distance
			moving.becomeMoon(moon)
			return Captured
		}
		moving.becomePlanet(planet)
		return StayedPlanet
	}
}
