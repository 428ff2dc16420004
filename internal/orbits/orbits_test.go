package orbits

import (
	"bytes"
	"log/slog"
	"math"
	"strings"
	"testing"

	"phasepositions/internal/drag"
	"phasepositions/internal/geom"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < eps }

func nearPt(a, b geom.Point) bool { return near(a.X, b.X) && near(a.Y, b.Y) }

// newTestScene returns an 800x800 scene (center 400,400, radii 60..340) with
// body1 at (600,400) and body2 at (200,400).
func newTestScene(t *testing.T, opts ...SceneOption) *Scene {
	t.Helper()
	s := NewScene(opts...)
	s.SetDimensions(800, 800)
	s.SetState(State{
		Body1: BodyState{Angle: 0, Distance: 0.5},
		Body2: BodyState{Angle: math.Pi, Distance: 0.5},
	})
	if !nearPt(s.Body1().Position(), geom.Pt(600, 400)) || !nearPt(s.Body2().Position(), geom.Pt(200, 400)) {
		t.Fatalf("unexpected layout %v %v", s.Body1().Position(), s.Body2().Position())
	}
	return s
}

func TestConstantsFromDimensions(t *testing.T) {
	s := NewScene()
	s.SetDimensions(800, 600)
	c := s.Constants()
	if c.MinRadius != 60 || c.MaxRadius != 240 || c.MoonRadius != 60 {
		t.Fatalf("constants %+v", c)
	}
	if s.Center() != geom.Pt(400, 300) {
		t.Fatalf("center %v", s.Center())
	}
	s.SetDimensions(100, 100)
	if got := s.Constants().MaxRadius; got != 60 {
		t.Fatalf("tiny view max radius %v, want min radius", got)
	}
}

func TestPlanetGeometryClampsIntoAnnulus(t *testing.T) {
	center := geom.Pt(400, 400)
	cases := []struct {
		raw      geom.Point
		want     geom.Point
		within   bool
		distance float64
	}{
		{geom.Pt(600, 400), geom.Pt(600, 400), true, 0.5},
		{geom.Pt(410, 400), geom.Pt(460, 400), false, 0},
		{geom.Pt(1400, 400), geom.Pt(740, 400), false, 1},
		{geom.Pt(400, 60), geom.Pt(400, 60), true, 1},
	}
	for _, tc := range cases {
		fix := PlanetGeometry(tc.raw, center, 60, 340, 0)
		if !nearPt(fix.Position, tc.want) || fix.WithinBounds != tc.within || !near(fix.Distance, tc.distance) {
			t.Errorf("PlanetGeometry(%v) = %+v, want pos %v within %v distance %v",
				tc.raw, fix, tc.want, tc.within, tc.distance)
		}
		r := geom.Distance(center, fix.Position)
		if r < 60-eps || r > 340+eps {
			t.Errorf("radius %v outside annulus", r)
		}
	}
}

func TestPlanetGeometryAtCenterUsesFallback(t *testing.T) {
	fix := PlanetGeometry(geom.Pt(400, 400), geom.Pt(400, 400), 60, 340, math.Pi/2)
	if !nearPt(fix.Position, geom.Pt(400, 460)) || !near(fix.Angle, math.Pi/2) {
		t.Fatalf("fix %+v", fix)
	}
}

func TestPlanetGeometryDegenerateAnnulus(t *testing.T) {
	fix := PlanetGeometry(geom.Pt(500, 400), geom.Pt(400, 400), 60, 60, 0)
	if fix.Distance != 0 || !nearPt(fix.Position, geom.Pt(460, 400)) {
		t.Fatalf("fix %+v", fix)
	}
}

func TestMoonGeometryProjectsOntoCircle(t *testing.T) {
	c := DefaultConfig().constants(800, 800)
	planet := geom.Pt(200, 400)
	cases := []struct {
		raw             geom.Point
		capture, escape bool
	}{
		{geom.Pt(250, 400), true, false},
		{geom.Pt(200, 300), false, false},
		{geom.Pt(200, 600), false, true},
	}
	for _, tc := range cases {
		fix := MoonGeometry(tc.raw, planet, c, 0)
		if d := geom.Distance(planet, fix.Position); !near(d, c.MoonRadius) {
			t.Errorf("moon distance %v", d)
		}
		if fix.WithinCapture != tc.capture || fix.ExceedsEscape != tc.escape {
			t.Errorf("MoonGeometry(%v) = %+v", tc.raw, fix)
		}
	}
}

func TestPlanetStaysInAnnulus(t *testing.T) {
	s := newTestScene(t)
	b := s.Body1()
	for _, p := range []geom.Point{geom.Pt(410, 400), geom.Pt(1400, 400), geom.Pt(400, 400), geom.Pt(700, 700)} {
		if tr := s.MoveBody(b, p); tr != StayedPlanet {
			t.Fatalf("move to %v: transition %v", p, tr)
		}
		r := geom.Distance(s.Center(), b.Position())
		if r < 60-eps || r > 340+eps {
			t.Fatalf("move to %v: radius %v", p, r)
		}
		if b.Distance() < 0 || b.Distance() > 1 {
			t.Fatalf("distance %v", b.Distance())
		}
	}
}

func TestCaptureEscapeCycle(t *testing.T) {
	s := newTestScene(t)
	b1, b2 := s.Body1(), s.Body2()

	if tr := s.MoveBody(b1, geom.Pt(250, 400)); tr != Captured {
		t.Fatalf("transition %v, want captured", tr)
	}
	if !b1.IsMoon() || s.Moon() != b1 {
		t.Fatal("body1 should be a moon")
	}
	if !nearPt(b1.Position(), geom.Pt(260, 400)) {
		t.Fatalf("moon at %v", b1.Position())
	}
	if !near(b1.Distance(), 90.0/280) {
		t.Fatalf("captured moon keeps planet distance, got %v", b1.Distance())
	}

	if tr := s.MoveBody(b1, geom.Pt(200, 300)); tr != StayedMoon {
		t.Fatalf("transition %v, want stayed moon", tr)
	}
	if !nearPt(b1.Position(), geom.Pt(200, 340)) {
		t.Fatalf("moon at %v", b1.Position())
	}
	if d := geom.Distance(b1.Position(), b2.Position()); !near(d, 60) {
		t.Fatalf("moon distance %v", d)
	}

	if tr := s.MoveBody(b1, geom.Pt(200, 600)); tr != Escaped {
		t.Fatalf("transition %v, want escaped", tr)
	}
	if b1.IsMoon() || s.Moon() != nil {
		t.Fatal("body1 should be a planet")
	}
	if !nearPt(b1.Position(), geom.Pt(200, 600)) {
		t.Fatalf("planet at %v", b1.Position())
	}
}

func TestEscapeRejectedWhenClampLandsInCapture(t *testing.T) {
	s := newTestScene(t)
	s.SetState(State{
		Body1: BodyState{IsMoon: true, Angle: 0, Distance: 0.5},
		Body2: BodyState{Angle: math.Pi, Distance: 1},
	})
	b1, b2 := s.Body1(), s.Body2()
	if !nearPt(b2.Position(), geom.Pt(60, 400)) {
		t.Fatalf("planet at %v", b2.Position())
	}

	// 160px from the planet but beyond the annulus; clamping puts the
	// candidate right back on the planet.
	if tr := s.MoveBody(b1, geom.Pt(-100, 400)); tr != EscapeRejected {
		t.Fatalf("transition %v, want escape rejected", tr)
	}
	if !b1.IsMoon() {
		t.Fatal("body1 should stay a moon")
	}
	if !nearPt(b1.Position(), geom.Pt(0, 400)) {
		t.Fatalf("moon at %v", b1.Position())
	}
}

func TestMoonFollowsDraggedPlanet(t *testing.T) {
	s := newTestScene(t)
	b1, b2 := s.Body1(), s.Body2()
	s.MoveBody(b1, geom.Pt(250, 400))

	if tr := s.MoveBody(b2, geom.Pt(400, 200)); tr != DraggedWithMoon {
		t.Fatalf("transition %v", tr)
	}
	if !nearPt(b2.Position(), geom.Pt(400, 200)) {
		t.Fatalf("planet at %v", b2.Position())
	}
	if d := geom.Distance(b1.Position(), b2.Position()); !near(d, 60) {
		t.Fatalf("moon distance %v", d)
	}
	if !b1.IsMoon() || b2.IsMoon() {
		t.Fatal("moon relationship changed")
	}
	want := geom.Angle(geom.Pt(400, 200), geom.Pt(260, 400), 0)
	if !near(b1.Angle(), want) {
		t.Fatalf("moon angle %v, want %v", b1.Angle(), want)
	}
}

func TestPhaseAngles(t *testing.T) {
	s := newTestScene(t)
	s.SetState(State{
		Body1: BodyState{Angle: 0, Distance: 0.5},
		Body2: BodyState{Angle: 0, Distance: 1},
	})
	a1, a2 := s.PhaseAngles()
	if !near(a1, math.Pi) || !near(a2, 0) {
		t.Fatalf("phase angles %v %v", a1, a2)
	}

	s.SetState(State{
		Body1: BodyState{Angle: 0, Distance: 0.5},
		Body2: BodyState{Angle: math.Pi / 2, Distance: 0.5},
	})
	a1, a2 = s.PhaseAngles()
	for _, a := range []float64{a1, a2} {
		if a < 0 || a >= 2*math.Pi {
			t.Fatalf("phase angle %v not normalized", a)
		}
	}
}

func TestStateRoundTrip(t *testing.T) {
	s := newTestScene(t)
	want := State{
		Body1: BodyState{Angle: 1.25, Distance: 0.3},
		Body2: BodyState{IsMoon: true, Angle: -2.5, Distance: 0.9},
	}
	s.SetState(want)
	if got := s.State(); got != want {
		t.Fatalf("State() = %+v, want %+v", got, want)
	}
	if d := geom.Distance(s.Body1().Position(), s.Body2().Position()); !near(d, 60) {
		t.Fatalf("moon distance %v", d)
	}
}

func TestSetStateDefaultsMalformedInput(t *testing.T) {
	var buf bytes.Buffer
	s := newTestScene(t, WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))
	s.SetState(State{
		Body1: BodyState{IsMoon: true, Angle: math.NaN(), Distance: math.Inf(1)},
		Body2: BodyState{IsMoon: true, Angle: 1, Distance: 3},
	})
	got := s.State()
	want := State{
		Body1: BodyState{IsMoon: true, Angle: 0, Distance: 0.5},
		Body2: BodyState{Angle: 0, Distance: 0.5},
	}
	if got != want {
		t.Fatalf("State() = %+v, want %+v", got, want)
	}
	for _, msg := range []string{"invalid body angle", "invalid body distance", "out of range", "both bodies are moons"} {
		if !strings.Contains(buf.String(), msg) {
			t.Errorf("missing warning %q in %q", msg, buf.String())
		}
	}
}

func TestSetStateClampsDistance(t *testing.T) {
	s := newTestScene(t, WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))))
	s.SetState(State{
		Body1: BodyState{Distance: -1},
		Body2: BodyState{Angle: math.Pi, Distance: 2},
	})
	if d1, d2 := s.Body1().Distance(), s.Body2().Distance(); d1 != 0 || d2 != 1 {
		t.Fatalf("distances %v %v", d1, d2)
	}
}

func TestOnChangeNotified(t *testing.T) {
	n := 0
	s := newTestScene(t, WithOnChange(func() { n++ }))
	n = 0
	s.MoveBody(s.Body1(), geom.Pt(610, 400))
	s.SetDimensions(600, 600)
	s.SetState(DefaultState())
	if n != 3 {
		t.Fatalf("notified %d times, want 3", n)
	}
}

func TestMouseDragCapturesBody(t *testing.T) {
	s := newTestScene(t)
	d := drag.NewDispatcher()
	s.AttachInput(d, func() geom.Point { return geom.Point{} })

	if !d.MouseDown(geom.Pt(602, 400)) {
		t.Fatal("contact on body1 not consumed")
	}
	if !s.Body1().IsBeingDragged() || s.Body2().IsBeingDragged() {
		t.Fatal("wrong body dragged")
	}
	d.MouseMove(geom.Pt(252, 400))
	if !s.Body1().IsMoon() {
		t.Fatalf("body1 not captured, at %v", s.Body1().Position())
	}
	d.MouseUp(geom.Pt(252, 400))
	if s.Body1().IsBeingDragged() || d.Sessions() != 0 {
		t.Fatal("drag still active after mouse up")
	}
}

func TestMouseHitRadius(t *testing.T) {
	s := newTestScene(t)
	d := drag.NewDispatcher()
	s.AttachInput(d, func() geom.Point { return geom.Pt(100, 50) })

	// Inside the touch area but outside the mouse radius.
	if d.MouseDown(geom.Pt(715, 450)) {
		t.Fatal("mouse contact 15px away should not be consumed")
	}
	if !d.MouseDown(geom.Pt(705, 450)) {
		t.Fatal("mouse contact 5px away not consumed")
	}
}

func TestTouchDragsMoon(t *testing.T) {
	s := newTestScene(t)
	// Moon 60px from its planet, so their 24px touch areas nearly meet.
	s.MoveBody(s.Body1(), geom.Pt(250, 400))
	d := drag.NewDispatcher()
	s.AttachInput(d, func() geom.Point { return geom.Point{} })

	if !d.TouchStart([]drag.Touch{{ID: 1, Client: geom.Pt(238, 400)}}) {
		t.Fatal("touch not consumed")
	}
	if !s.Body1().IsBeingDragged() || s.Body2().IsBeingDragged() {
		t.Fatal("touch should drag the moon")
	}
	d.TouchEnd([]drag.Touch{{ID: 1, Client: geom.Pt(238, 400)}})
	if d.Sessions() != 0 {
		t.Fatal("session left open")
	}
}

func TestResizeCancelsDrags(t *testing.T) {
	s := newTestScene(t)
	d := drag.NewDispatcher()
	s.AttachInput(d, func() geom.Point { return geom.Point{} })
	d.MouseDown(geom.Pt(600, 400))

	s.SetDimensions(600, 600)
	if s.Body1().IsBeingDragged() || d.Sessions() != 0 {
		t.Fatal("resize should cancel drags")
	}
	if !nearPt(s.Body1().Position(), geom.Pt(300+60+0.5*180, 300)) {
		t.Fatalf("body1 at %v after resize", s.Body1().Position())
	}
}

func TestAttachInputTwice(t *testing.T) {
	s := newTestScene(t)
	d1, d2 := drag.NewDispatcher(), drag.NewDispatcher()
	s.AttachInput(d1, func() geom.Point { return geom.Point{} })
	s.AttachInput(d2, func() geom.Point { return geom.Point{} })
	if d1.MouseDown(geom.Pt(600, 400)) {
		t.Fatal("old dispatcher still routes")
	}
	if !d2.MouseDown(geom.Pt(600, 400)) {
		t.Fatal("new dispatcher does not route")
	}
}

func TestInvalidConfigPanics(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CaptureThreshold = cfg.EscapeThreshold
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	NewScene(WithConstants(cfg))
}

func TestTransitionString(t *testing.T) {
	if Captured.String() != "captured" || Transition(42).String() != "Transition(42)" {
		t.Fatal("unexpected transition names")
	}
}
