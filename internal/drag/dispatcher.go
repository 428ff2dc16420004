package drag

import "phasepositions/internal/geom"

type subscriptionKind int

const (
	subContact subscriptionKind = iota
	subMouse
	subTouch
)

// Subscription is a registration held by an item on a Dispatcher: either
// its element, which receives initial contacts, or the move/end listener of
// an active session.
type Subscription struct {
	d    *Dispatcher
	item *Item
	el   Element
	kind subscriptionKind
}

// Release removes the registration. Releasing twice is a no-op.
func (s *Subscription) Release() {
	if s == nil || s.d == nil {
		return
	}
	d := s.d
	s.d = nil
	if s.kind == subContact {
		d.contacts = removeSubscription(d.contacts, s)
	} else {
		d.listeners = removeSubscription(d.listeners, s)
	}
}

// Active reports whether the registration is still installed.
func (s *Subscription) Active() bool { return s != nil && s.d != nil }

func removeSubscription(subs []*Subscription, s *Subscription) []*Subscription {
	for i := range subs {
		if subs[i] == s {
			copy(subs[i:], subs[i+1:])
			subs[len(subs)-1] = nil
			return subs[:len(subs)-1]
		}
	}
	return subs
}

// Dispatcher routes raw pointer input, in client coordinates, to the items
// attached to it. Initial contacts go to the topmost element under the
// pointer (the most recently attached one wins); moves and releases go to
// every item with an active session of the matching kind.
//
// The boolean results of MouseDown and TouchStart report whether the
// contact was taken by a drag; unconsumed contacts are free for other UI.
type Dispatcher struct {
	contacts  []*Subscription
	listeners []*Subscription
}

// NewDispatcher returns an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

func (d *Dispatcher) attach(it *Item, el Element) *Subscription {
	s := &Subscription{d: d, item: it, el: el, kind: subContact}
	d.contacts = append(d.contacts, s)
	return s
}

func (d *Dispatcher) listen(it *Item, kind PointerKind) *Subscription {
	s := &Subscription{d: d, item: it, kind: subMouse}
	if kind == PointerTouch {
		s.kind = subTouch
	}
	d.listeners = append(d.listeners, s)
	return s
}

// target returns the item whose element is topmost at client.
func (d *Dispatcher) target(client geom.Point) *Item {
	for i := len(d.contacts) - 1; i >= 0; i-- {
		if d.contacts[i].el.Contains(client) {
			return d.contacts[i].item
		}
	}
	return nil
}

// sessionItems snapshots the items listening for kind so callbacks may
// start or stop sessions while the event is delivered.
func (d *Dispatcher) sessionItems(kind subscriptionKind) []*Item {
	var items []*Item
	for _, s := range d.listeners {
		if s.kind == kind {
			items = append(items, s.item)
		}
	}
	return items
}

// Sessions returns the number of active drag sessions.
func (d *Dispatcher) Sessions() int { return len(d.listeners) }

// MouseDown starts a mouse drag on the best item for the contact.
func (d *Dispatcher) MouseDown(client geom.Point) bool {
	target := d.target(client)
	if target == nil {
		return false
	}
	best, _ := target.arbitrate(client, PointerMouse)
	if best == nil {
		return false
	}
	best.startDragging(client, PointerMouse)
	return true
}

// MouseMove advances mouse drags.
func (d *Dispatcher) MouseMove(client geom.Point) {
	for _, it := range d.sessionItems(subMouse) {
		if it.kind == PointerMouse {
			it.updateDragging(client)
		}
	}
}

// MouseUp ends mouse drags.
func (d *Dispatcher) MouseUp(client geom.Point) {
	for _, it := range d.sessionItems(subMouse) {
		if it.kind == PointerMouse {
			it.client = client
			it.stopDragging(false)
		}
	}
}

// MouseLeave ends mouse drags when the pointer leaves the window.
func (d *Dispatcher) MouseLeave() {
	for _, it := range d.sessionItems(subMouse) {
		it.stopDragging(false)
	}
}

type scoredTouch struct {
	touch Touch
	score float64
}

type touchBin struct {
	item    *Item
	touches []scoredTouch
}

// TouchStart handles every touch that began in one input event. All touches
// are assigned to items before any session starts, since two touches of one
// event may each belong to a different item.
func (d *Dispatcher) TouchStart(touches []Touch) bool {
	var bins []touchBin
	for _, t := range touches {
		target := d.target(t.Client)
		if target == nil {
			continue
		}
		best, score := target.arbitrate(t.Client, PointerTouch)
		if best == nil {
			continue
		}
		idx := -1
		for i := range bins {
			if bins[i].item == best {
				idx = i
				break
			}
		}
		if idx < 0 {
			bins = append(bins, touchBin{item: best})
			idx = len(bins) - 1
		}
		bins[idx].touches = append(bins[idx].touches, scoredTouch{touch: t, score: score})
	}
	for _, b := range bins {
		b.item.acceptTouches(b.touches)
	}
	return len(bins) > 0
}

// TouchMove delivers moved touches to touch drags.
func (d *Dispatcher) TouchMove(changed []Touch) {
	for _, it := range d.sessionItems(subTouch) {
		if it.kind == PointerTouch {
			it.touchesMoved(changed)
		}
	}
}

// TouchEnd delivers lifted touches to touch drags.
func (d *Dispatcher) TouchEnd(changed []Touch) {
	d.touchesFinished(changed)
}

// TouchCancel delivers touches the platform cancelled; they are treated
// like lifted touches.
func (d *Dispatcher) TouchCancel(changed []Touch) {
	d.touchesFinished(changed)
}

func (d *Dispatcher) touchesFinished(changed []Touch) {
	for _, it := range d.sessionItems(subTouch) {
		if it.kind == PointerTouch {
			it.touchesFinished(changed)
		}
	}
}
