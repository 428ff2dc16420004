// Package orbits keeps two draggable bodies on legal orbits around a Sun.
//
// Each body is either a planet, confined to an annulus around the Sun, or the
// moon of the other body, confined to a fixed circle around it. Dragging a
// planet close to the other body captures it as a moon; dragging a moon far
// enough from its planet lets it escape. At most one body is a moon.
package orbits

import (
	"fmt"
	"image/color"
	"log/slog"
	"math"

	"phasepositions/internal/drag"
	"phasepositions/internal/geom"
)

// Config holds the size independent orbit tuning. The maximum planet radius
// is derived from the view size as half the shorter side minus EdgeMargin.
type Config struct {
	MinRadius        float64
	EdgeMargin       float64
	MoonRadius       float64
	CaptureThreshold float64
	EscapeThreshold  float64
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		MinRadius:        60,
		EdgeMargin:       60,
		MoonRadius:       60,
		CaptureThreshold: 75,
		EscapeThreshold:  125,
	}
}

// constants derives the solver constants for a view of the given size.
func (c Config) constants(width, height float64) Constants {
	maxR := 0.5*math.Min(width, height) - c.EdgeMargin
	if maxR < c.MinRadius {
		maxR = c.MinRadius
	}
	return Constants{
		MinRadius:        c.MinRadius,
		MaxRadius:        maxR,
		MoonRadius:       c.MoonRadius,
		CaptureThreshold: c.CaptureThreshold,
		EscapeThreshold:  c.EscapeThreshold,
	}
}

// Default body colors.
var (
	DefaultColor1 = color.RGBA{144, 144, 255, 255}
	DefaultColor2 = color.RGBA{255, 144, 144, 255}
)

// SceneOption configures a Scene.
type SceneOption func(*Scene)

// WithLogger sets the logger for warnings and transition diagnostics.
func WithLogger(l *slog.Logger) SceneOption {
	return func(s *Scene) { s.log = l }
}

// WithConstants replaces the default orbit tuning.
func WithConstants(c Config) SceneOption {
	return func(s *Scene) { s.cfg = c }
}

// WithColors sets the colors of body 1 and body 2.
func WithColors(c1, c2 color.RGBA) SceneOption {
	return func(s *Scene) { s.colors = [2]color.RGBA{c1, c2} }
}

// WithHitRadii sets the contact radii of both bodies.
func WithHitRadii(r HitRadii) SceneOption {
	return func(s *Scene) { s.radii = r }
}

// WithOnChange registers fn to run after any body moves.
func WithOnChange(fn func()) SceneOption {
	return func(s *Scene) { s.onChange = fn }
}

// Scene coordinates the two bodies, the Sun at the center of the view and
// the constants derived from the view size.
type Scene struct {
	log      *slog.Logger
	cfg      Config
	colors   [2]color.RGBA
	radii    HitRadii
	onChange func()

	width, height float64
	center        geom.Point
	consts        Constants

	body1, body2 *Body
	attached     bool
}

// NewScene returns a scene in DefaultState. It panics if the configured
// thresholds are inconsistent.
func NewScene(opts ...SceneOption) *Scene {
	s := &Scene{
		log:    slog.Default(),
		cfg:    DefaultConfig(),
		colors: [2]color.RGBA{DefaultColor1, DefaultColor2},
		radii:  DefaultHitRadii,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.consts = s.cfg.constants(0, 0)
	if err := s.consts.Validate(); err != nil {
		panic(fmt.Errorf("orbits: invalid config: %w", err))
	}
	s.body1 = newBody(s, "body1", s.colors[0])
	s.body2 = newBody(s, "body2", s.colors[1])
	s.applyState(DefaultState())
	return s
}

func (s *Scene) Body1() *Body { return s.body1 }

func (s *Scene) Body2() *Body { return s.body2 }

// Center is the Sun's position in the orbits view.
func (s *Scene) Center() geom.Point { return s.center }

// Constants returns the solver constants for the current view size.
func (s *Scene) Constants() Constants { return s.consts }

func (s *Scene) Size() (w, h float64) { return s.width, s.height }

// Moon returns the body that is currently a moon, or nil.
func (s *Scene) Moon() *Body {
	switch {
	case s.body1.isMoon:
		return s.body1
	case s.body2.isMoon:
		return s.body2
	}
	return nil
}

func (s *Scene) other(b *Body) *Body {
	if b == s.body1 {
		return s.body2
	}
	return s.body1
}

// AttachInput installs both bodies on d. origin returns the client position
// of the orbits view's top left corner. Calling it again moves both bodies to
// the new dispatcher.
func (s *Scene) AttachInput(d *drag.Dispatcher, origin func() geom.Point) {
	for _, b := range []*Body{s.body1, s.body2} {
		b.item.SetDragSurface(d, bodyElement{body: b, origin: origin})
	}
	if s.attached {
		return
	}
	s.body1.item.AddCompetingItem(s.body2)
	s.body2.item.AddCompetingItem(s.body1)
	s.attached = true
}

// CancelDrags ends any drag on either body.
func (s *Scene) CancelDrags() {
	s.body1.item.CancelDragging()
	s.body2.item.CancelDragging()
}

// SetDimensions resizes the orbits view. Active drags are cancelled and both
// bodies are repositioned from their normalized state.
func (s *Scene) SetDimensions(width, height float64) {
	s.CancelDrags()
	s.width, s.height = width, height
	s.center = geom.Pt(width/2, height/2)
	s.consts = s.cfg.constants(width, height)
	s.log.Debug("orbits resized",
		"width", width, "height", height,
		"min_radius", s.consts.MinRadius, "max_radius", s.consts.MaxRadius)
	s.updatePositions()
	s.notify()
}

// MoveBody resolves a proposed position for b and updates both bodies.
func (s *Scene) MoveBody(b *Body, proposed geom.Point) Transition {
	other := s.other(b)
	tr := ResolveBodyMove(b, other, proposed, s.center, s.consts)
	switch tr {
	case Captured, Escaped, EscapeRejected:
		s.log.Debug("body transition", "body", b.name, "transition", tr.String(),
			"angle", b.angle, "distance", b.distance)
	case DraggedWithMoon:
		if r := geom.Distance(s.center, other.position); r < s.consts.MinRadius || r > s.consts.MaxRadius {
			s.log.Debug("moon outside planet annulus", "moon", other.name, "radius", r,
				"min_radius", s.consts.MinRadius, "max_radius", s.consts.MaxRadius)
		}
	}
	s.notify()
	return tr
}

// PhaseAngles returns the phase of body 1 as seen from body 2 and the phase
// of body 2 as seen from body 1, both in [0, 2π).
func (s *Scene) PhaseAngles() (a1, a2 float64) {
	p1, p2 := s.body1.position, s.body2.position
	return geom.PhaseAngle(p2, p1, s.center), geom.PhaseAngle(p1, p2, s.center)
}

// updatePositions derives pixel positions from the bodies' normalized state.
// Planets are placed first since a moon hangs off its planet.
func (s *Scene) updatePositions() {
	for _, b := range []*Body{s.body1, s.body2} {
		if !b.isMoon {
			r := s.consts.MinRadius + b.distance*(s.consts.MaxRadius-s.consts.MinRadius)
			b.position = geom.Polar(s.center, r, b.angle)
		}
	}
	if m := s.Moon(); m != nil {
		m.position = geom.Polar(s.other(m).position, s.consts.MoonRadius, m.angle)
	}
	for _, b := range []*Body{s.body1, s.body2} {
		if b.IsBeingDragged() {
			b.item.RecalculateDragOffset()
		}
	}
}

func (s *Scene) notify() {
	if s.onChange != nil {
		s.onChange()
	}
}
