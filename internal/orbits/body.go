package orbits

import (
	"image/color"

	"phasepositions/internal/drag"
	"phasepositions/internal/geom"
)

// HitRadii are the pixel radii used when deciding whether a contact grabs a
// body.
type HitRadii struct {
	Mouse  float64
	Touch  float64
	Backup float64 // generous radius for a backup touch taking over a drag
}

// DefaultHitRadii matches the drawn body radius for the mouse and a finger
// sized area for touch.
var DefaultHitRadii = HitRadii{Mouse: 10, Touch: 24, Backup: 36}

// Body is one of the two draggable bodies of a Scene. When it is a planet,
// angle and distance place it around the Sun; when it is a moon, angle is
// measured from the other body and distance keeps its last planet value.
type Body struct {
	name  string
	color color.RGBA

	isMoon   bool
	distance float64
	angle    float64
	position geom.Point

	scene *Scene
	radii HitRadii
	item  *drag.Item
}

func newBody(s *Scene, name string, clr color.RGBA) *Body {
	b := &Body{name: name, color: clr, scene: s, radii: s.radii}
	b.item = drag.NewItem(b.Position, func(p geom.Point) { s.MoveBody(b, p) })
	b.item.SetHitTest(b.hitTest)
	b.item.SetConstraint(b.constrain)
	return b
}

// DragItem exposes the body's drag capability.
func (b *Body) DragItem() *drag.Item { return b.item }

func (b *Body) Name() string { return b.name }

func (b *Body) Color() color.RGBA { return b.color }

// IsMoon reports whether the body orbits the other body.
func (b *Body) IsMoon() bool { return b.isMoon }

// Distance is the normalized planet radius in [0, 1].
func (b *Body) Distance() float64 { return b.distance }

// Angle is measured from the Sun for a planet and from the other body for a
// moon.
func (b *Body) Angle() float64 { return b.angle }

// Position is the body's pixel position in the orbits view.
func (b *Body) Position() geom.Point { return b.position }

func (b *Body) State() BodyState {
	return BodyState{IsMoon: b.isMoon, Angle: b.angle, Distance: b.distance}
}

func (b *Body) IsBeingDragged() bool { return b.item.IsBeingDragged() }

func (b *Body) hitTest(pointer, _ geom.Point, kind drag.PointerKind, backup bool) bool {
	r := pointer.Length()
	switch {
	case backup:
		return r <= b.radii.Backup
	case kind == drag.PointerMouse:
		return r <= b.radii.Mouse
	default:
		return r <= b.radii.Touch
	}
}

// constrain hands every proposed position to the scene, which places both
// bodies itself.
func (b *Body) constrain(proposed, _, _, _ geom.Point, _ drag.PointerKind) (geom.Point, bool) {
	b.scene.MoveBody(b, proposed)
	return geom.Point{}, false
}

func (b *Body) becomePlanet(fix PlanetFix) {
	b.isMoon = false
	b.angle = fix.Angle
	b.distance = fix.Distance
	b.position = fix.Position
}

func (b *Body) becomeMoon(fix MoonFix) {
	b.isMoon = true
	b.angle = fix.Angle
	b.position = fix.Position
}

// bodyElement is the circular touch area around a body, offset by the
// origin of the orbits view in window coordinates.
type bodyElement struct {
	body   *Body
	origin func() geom.Point
}

func (e bodyElement) Origin() geom.Point {
	return e.origin().Add(e.body.position)
}

func (e bodyElement) Contains(client geom.Point) bool {
	r := e.body.radii.Touch
	return client.Sub(e.Origin()).LengthSquared() <= r*r
}
