package main

import (
	"log"
	"math"
	"math/rand"
	"time"

	"phasepositions/internal/geom"
)

// autoDrag scripts mouse drags through the dispatcher, alternating between
// the two bodies, so profiles cover the drag and orbit code paths.
type autoDrag struct {
	active   bool
	deadline time.Time
	rand     *rand.Rand
	onDone   func()

	dragging bool
	body     int
	cursor   geom.Point
	dir      geom.Point
	frames   int
}

// enableAutoDrag schedules scripted dragging for a limited duration. onDone
// runs once when it ends.
func (g *Game) enableAutoDrag(duration time.Duration, onDone func()) {
	g.auto = autoDrag{
		active:   true,
		deadline: time.Now().Add(duration),
		rand:     rand.New(rand.NewSource(time.Now().UnixNano())),
		onDone:   onDone,
	}
}

// stepAutoDrag drives one tick of scripted input. It reports false once the
// script is over and real input should be polled instead.
func (g *Game) stepAutoDrag() bool {
	a := &g.auto
	if !a.active {
		return false
	}
	if time.Now().After(a.deadline) {
		if a.dragging {
			g.input.MouseUp(a.cursor)
		}
		a.active = false
		log.Printf("Scripted dragging finished")
		if a.onDone != nil {
			a.onDone()
		}
		return false
	}

	if !a.dragging {
		body := g.scene.Body1()
		if a.body == 1 {
			body = g.scene.Body2()
		}
		a.body = 1 - a.body
		a.cursor = g.orbitsOrigin().Add(body.Position())
		if !g.input.MouseDown(a.cursor) {
			return true
		}
		a.dragging = true
		a.randomizeDirection()
		return true
	}

	a.cursor = a.cursor.Add(a.dir.Mul(autoDragSpeed))
	view := g.orbitsRect()
	if a.cursor.X < float64(view.Min.X) || a.cursor.X > float64(view.Max.X) ||
		a.cursor.Y < float64(view.Min.Y) || a.cursor.Y > float64(view.Max.Y) {
		a.dir = a.dir.Mul(-1)
		a.cursor = a.cursor.Add(a.dir.Mul(2 * autoDragSpeed))
	}
	g.input.MouseMove(a.cursor)
	a.frames--
	if a.frames <= 0 {
		g.input.MouseUp(a.cursor)
		a.dragging = false
	}
	return true
}

// randomizeDirection chooses a new heading and drag length.
func (a *autoDrag) randomizeDirection() {
	angle := a.rand.Float64() * 2 * math.Pi
	a.dir = geom.Pt(math.Cos(angle), math.Sin(angle))
	a.frames = 20 + a.rand.Intn(50)
}
