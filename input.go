package main

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"phasepositions/internal/drag"
	"phasepositions/internal/geom"
)

// inputPoller turns ebiten's per-tick input state into dispatcher events.
// Contacts no drag consumes are handed to unconsumed.
type inputPoller struct {
	bounds     func() image.Rectangle
	unconsumed func(image.Point)

	mouseDown  bool
	mouseIn    bool
	lastCursor image.Point
	focused    bool

	touchIDs []ebiten.TouchID
	touches  map[ebiten.TouchID]geom.Point
	batch    []drag.Touch
}

func newInputPoller(bounds func() image.Rectangle, unconsumed func(image.Point)) *inputPoller {
	return &inputPoller{
		bounds:     bounds,
		unconsumed: unconsumed,
		focused:    true,
		touches:    make(map[ebiten.TouchID]geom.Point),
	}
}

// poll reads the current input state and feeds d.
func (p *inputPoller) poll(d *drag.Dispatcher) {
	if !ebiten.IsFocused() {
		if p.focused {
			p.releaseAll(d)
		}
		p.focused = false
		return
	}
	p.focused = true
	p.pollMouse(d)
	p.pollTouches(d)
}

// releaseAll ends every contact, as when the window loses focus.
func (p *inputPoller) releaseAll(d *drag.Dispatcher) {
	d.MouseLeave()
	p.mouseDown = false
	if len(p.touches) == 0 {
		return
	}
	p.batch = p.batch[:0]
	for id, pt := range p.touches {
		p.batch = append(p.batch, drag.Touch{ID: drag.TouchID(id), Client: pt})
		delete(p.touches, id)
	}
	d.TouchCancel(p.batch)
}

func (p *inputPoller) pollMouse(d *drag.Dispatcher) {
	x, y := ebiten.CursorPosition()
	cursor := image.Pt(x, y)
	client := geom.Pt(float64(x), float64(y))

	in := cursor.In(p.bounds())
	if p.mouseIn && !in {
		d.MouseLeave()
		p.mouseDown = false
	}
	p.mouseIn = in

	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && in:
		p.mouseDown = true
		if !d.MouseDown(client) {
			p.unconsumed(cursor)
		}
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		if p.mouseDown {
			d.MouseUp(client)
		}
		p.mouseDown = false
	case p.mouseDown && cursor != p.lastCursor:
		d.MouseMove(client)
	}
	p.lastCursor = cursor
}

func (p *inputPoller) pollTouches(d *drag.Dispatcher) {
	p.batch = p.batch[:0]
	for _, id := range inpututil.AppendJustReleasedTouchIDs(p.touchIDs[:0]) {
		if pt, ok := p.touches[id]; ok {
			p.batch = append(p.batch, drag.Touch{ID: drag.TouchID(id), Client: pt})
			delete(p.touches, id)
		}
	}
	if len(p.batch) > 0 {
		d.TouchEnd(p.batch)
	}

	p.batch = p.batch[:0]
	p.touchIDs = ebiten.AppendTouchIDs(p.touchIDs[:0])
	for _, id := range p.touchIDs {
		prev, ok := p.touches[id]
		if !ok {
			continue
		}
		x, y := ebiten.TouchPosition(id)
		if pt := geom.Pt(float64(x), float64(y)); pt != prev {
			p.touches[id] = pt
			p.batch = append(p.batch, drag.Touch{ID: drag.TouchID(id), Client: pt})
		}
	}
	if len(p.batch) > 0 {
		d.TouchMove(p.batch)
	}

	p.batch = p.batch[:0]
	for _, id := range inpututil.AppendJustPressedTouchIDs(p.touchIDs[:0]) {
		x, y := ebiten.TouchPosition(id)
		pt := geom.Pt(float64(x), float64(y))
		p.touches[id] = pt
		p.batch = append(p.batch, drag.Touch{ID: drag.TouchID(id), Client: pt})
	}
	if len(p.batch) > 0 && !d.TouchStart(p.batch) {
		for _, t := range p.batch {
			p.unconsumed(image.Pt(int(t.Client.X), int(t.Client.Y)))
		}
	}
}
