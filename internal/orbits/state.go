package orbits

import "math"

// BodyState is the normalized, size independent state of one body. For a
// moon, Distance is kept but unused.
type BodyState struct {
	IsMoon   bool    `yaml:"is_moon"`
	Angle    float64 `yaml:"angle"`
	Distance float64 `yaml:"distance"`
}

// State is the normalized state of both bodies.
type State struct {
	Body1 BodyState `yaml:"body1"`
	Body2 BodyState `yaml:"body2"`
}

const defaultDistance = 0.5

// DefaultState is the layout shown at startup: two free planets.
func DefaultState() State {
	return State{
		Body1: BodyState{Angle: math.Pi / 4, Distance: 0.4},
		Body2: BodyState{Angle: -math.Pi / 6, Distance: 0.85},
	}
}

// State returns the normalized state of both bodies.
func (s *Scene) State() State {
	return State{Body1: s.body1.State(), Body2: s.body2.State()}
}

// SetState replaces both bodies' state. Malformed values are replaced with
// defaults and logged; they never fail.
func (s *Scene) SetState(st State) {
	st.Body1 = s.sanitize("body1", st.Body1)
	st.Body2 = s.sanitize("body2", st.Body2)
	if st.Body1.IsMoon && st.Body2.IsMoon {
		s.log.Warn("both bodies are moons, resetting body2 to a planet")
		st.Body2 = BodyState{Angle: 0, Distance: defaultDistance}
	}
	s.applyState(st)
	s.notify()
}

func (s *Scene) sanitize(name string, b BodyState) BodyState {
	if math.IsNaN(b.Angle) || math.IsInf(b.Angle, 0) {
		s.log.Warn("invalid body angle, using 0", "body", name, "angle", b.Angle)
		b.Angle = 0
	}
	switch {
	case math.IsNaN(b.Distance) || math.IsInf(b.Distance, 0):
		s.log.Warn("invalid body distance, using default", "body", name,
			"distance", b.Distance, "default", defaultDistance)
		b.Distance = defaultDistance
	case b.Distance < 0 || b.Distance > 1:
		s.log.Warn("body distance out of range, clamping", "body", name, "distance", b.Distance)
		b.Distance = math.Max(0, math.Min(1, b.Distance))
	}
	return b
}

func (s *Scene) applyState(st State) {
	for _, p := range []struct {
		b  *Body
		st BodyState
	}{{s.body1, st.Body1}, {s.body2, st.Body2}} {
		p.b.isMoon = p.st.IsMoon
		p.b.angle = p.st.Angle
		p.b.distance = p.st.Distance
	}
	s.updatePositions()
}
