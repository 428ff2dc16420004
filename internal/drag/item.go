// Package drag gives arbitrary visual items mouse and multi-touch
// draggability.
//
// An Item is attached to a Dispatcher through an Element, the area of the
// screen that receives the item's initial contacts. Items with large,
// overlapping hit areas can be registered as competitors of one another so
// that a contact starts dragging on the closest item rather than on whichever
// element happened to receive it. While a touch drag is active, additional
// touches on the item are kept as backups and take over seamlessly when the
// active touch lifts.
package drag

import (
	"errors"
	"fmt"
	"math"

	"phasepositions/internal/geom"
)

// Programmer errors. These are raised with panic and never recovered
// internally.
var (
	ErrInvalidPointerKind  = errors.New("drag: invalid pointer kind")
	ErrNotCompetitor       = errors.New("drag: competing item has no drag capability")
	ErrDuplicateCompetitor = errors.New("drag: competing item already registered")
	ErrUnknownCompetitor   = errors.New("drag: competing item not registered")
	ErrNilAccessor         = errors.New("drag: position accessors must not be nil")
)

// PointerKind identifies the input device driving a drag.
type PointerKind int

const (
	PointerNone PointerKind = iota
	PointerMouse
	PointerTouch
)

func (k PointerKind) String() string {
	switch k {
	case PointerNone:
		return "none"
	case PointerMouse:
		return "mouse"
	case PointerTouch:
		return "touch"
	}
	return fmt.Sprintf("PointerKind(%d)", int(k))
}

// mustBeActive panics unless k is PointerMouse or PointerTouch.
func (k PointerKind) mustBeActive() {
	if k != PointerMouse && k != PointerTouch {
		panic(fmt.Errorf("%w: %v", ErrInvalidPointerKind, k))
	}
}

// TouchID identifies a touch contact for its lifetime.
type TouchID int

// Touch is a touch contact in client coordinates.
type Touch struct {
	ID     TouchID
	Client geom.Point
}

// HitTestFunc decides whether a contact at pointer (relative to the item's
// origin) hits an item currently at current. backup is true when a backup
// touch is being considered to take over a drag, in which case the test may
// be more generous.
type HitTestFunc func(pointer, current geom.Point, kind PointerKind, backup bool) bool

// ConstraintFunc maps the proposed position of a drag update to the position
// actually used. Returning false leaves the item where it is while keeping
// the drag active; the function is then responsible for any relocation.
type ConstraintFunc func(proposed, pointer, current, start geom.Point, kind PointerKind) (geom.Point, bool)

// Element is the screen area that receives an item's initial contacts.
type Element interface {
	// Contains reports whether the client point lies on the element.
	Contains(client geom.Point) bool
	// Origin is the client position of the item's coordinate space origin.
	Origin() geom.Point
}

// Competitor is implemented by anything that owns a drag Item and may take
// part in contact arbitration.
type Competitor interface {
	DragItem() *Item
}

// Item is the drag capability of one visual entity. It is not safe for
// concurrent use; all calls are expected from the input loop.
type Item struct {
	get func() geom.Point
	set func(geom.Point)

	hitTest    HitTestFunc
	constraint ConstraintFunc
	onStart    func(start geom.Point, kind PointerKind)
	onUpdate   func(next, prev geom.Point)
	onStop     func(cancelled bool)

	draggable   bool
	competitors []*Item

	dispatcher *Dispatcher
	element    Element
	surface    *Subscription

	// Session state, meaningful only while kind != PointerNone.
	kind        PointerKind
	activeTouch TouchID
	client      geom.Point
	offset      geom.Point
	start       geom.Point
	backups     []Touch
	listener    *Subscription
}

// NewItem returns a draggable item whose position is read and written
// through get and set.
func NewItem(get func() geom.Point, set func(geom.Point)) *Item {
	it := &Item{draggable: true}
	it.SetPositionAccessors(get, set)
	return it
}

// DragItem lets a bare Item act as a Competitor.
func (it *Item) DragItem() *Item { return it }

// SetPositionAccessors replaces the functions used to read and write the
// item's position.
func (it *Item) SetPositionAccessors(get func() geom.Point, set func(geom.Point)) {
	if get == nil || set == nil {
		panic(ErrNilAccessor)
	}
	it.get = get
	it.set = set
}

// SetDragSurface installs the item's contact handling on d for element el,
// releasing any previous installation. A nil element uninstalls.
func (it *Item) SetDragSurface(d *Dispatcher, el Element) {
	if it.surface != nil {
		it.surface.Release()
		it.surface = nil
	}
	if el == nil {
		it.CancelDragging()
	}
	it.dispatcher = d
	it.element = el
	if d != nil && el != nil {
		it.surface = d.attach(it, el)
	}
}

// Element returns the element installed by SetDragSurface.
func (it *Item) Element() Element { return it.element }

// SetHitTest sets the hit test; nil accepts any contact on the element.
func (it *Item) SetHitTest(fn HitTestFunc) { it.hitTest = fn }

// SetConstraint sets the drag constraint; nil leaves dragging unconstrained.
func (it *Item) SetConstraint(fn ConstraintFunc) { it.constraint = fn }

// OnDragStart sets the callback fired after a drag starts.
func (it *Item) OnDragStart(fn func(start geom.Point, kind PointerKind)) { it.onStart = fn }

// OnDragUpdate sets the callback fired after the engine moves the item.
func (it *Item) OnDragUpdate(fn func(next, prev geom.Point)) { it.onUpdate = fn }

// OnDragStop sets the callback fired when a drag ends or is cancelled.
func (it *Item) OnDragStop(fn func(cancelled bool)) { it.onStop = fn }

// SetDraggable enables or disables new drags. It does not cancel a drag in
// progress.
func (it *Item) SetDraggable(v bool) { it.draggable = v }

// IsDraggable reports whether new drags may start.
func (it *Item) IsDraggable() bool { return it.draggable }

// IsBeingDragged reports whether a drag session is active.
func (it *Item) IsBeingDragged() bool {
	return it.kind == PointerMouse || it.kind == PointerTouch
}

// Kind returns the pointer kind of the active session, or PointerNone.
func (it *Item) Kind() PointerKind { return it.kind }

// Position returns the item's position through its accessor.
func (it *Item) Position() geom.Point { return it.get() }

// AddCompetingItem makes c a candidate whenever a contact lands on this
// item's element. Competition is one-way; register both sides for mutual
// competition.
func (it *Item) AddCompetingItem(c Competitor) {
	other := competitorItem(c)
	for _, existing := range it.competitors {
		if existing == other {
			panic(ErrDuplicateCompetitor)
		}
	}
	it.competitors = append(it.competitors, other)
}

// RemoveCompetingItem removes a competitor added with AddCompetingItem.
func (it *Item) RemoveCompetingItem(c Competitor) {
	other := competitorItem(c)
	for i, existing := range it.competitors {
		if existing == other {
			it.competitors = append(it.competitors[:i], it.competitors[i+1:]...)
			return
		}
	}
	panic(ErrUnknownCompetitor)
}

func competitorItem(c Competitor) *Item {
	if c == nil {
		panic(ErrNotCompetitor)
	}
	other := c.DragItem()
	if other == nil {
		panic(ErrNotCompetitor)
	}
	return other
}

// CancelDragging ends any active drag immediately, leaving the item where
// it is. The stop callback receives cancelled = true.
func (it *Item) CancelDragging() {
	it.stopDragging(true)
}

// RecalculateDragOffset must be called when the item is repositioned by
// other means during a drag, otherwise later drag deltas are computed from a
// stale offset. It is safe to call at any time.
func (it *Item) RecalculateDragOffset() {
	if it.element == nil {
		return
	}
	it.offset = it.offsetPoint(it.client)
}

// Dispose cancels any drag and releases every subscription the item holds.
func (it *Item) Dispose() {
	it.CancelDragging()
	it.SetDragSurface(nil, nil)
}

// offsetPoint converts a client point into the item's coordinate space.
func (it *Item) offsetPoint(client geom.Point) geom.Point {
	return client.Sub(it.element.Origin())
}

// score rates how well a new contact fits this item: +Inf when the item may
// not take the contact, otherwise the squared distance from the item origin.
func (it *Item) score(client geom.Point, kind PointerKind) float64 {
	kind.mustBeActive()
	if !it.draggable || it.element == nil {
		return math.Inf(1)
	}
	switch kind {
	case PointerMouse:
		// Mouse drags are exclusive.
		if it.IsBeingDragged() {
			return math.Inf(1)
		}
	case PointerTouch:
		// A touch may join a touch drag as a backup but never a mouse drag.
		if it.kind == PointerMouse {
			return math.Inf(1)
		}
	}
	pointer := it.offsetPoint(client)
	if it.hitTest != nil && !it.hitTest(pointer, it.get(), kind, false) {
		return math.Inf(1)
	}
	return pointer.LengthSquared()
}

// arbitrate picks, among this item and its competitors, the item a new
// contact belongs to. It returns nil when no item qualifies.
func (it *Item) arbitrate(client geom.Point, kind PointerKind) (*Item, float64) {
	best := it
	bestScore := it.score(client, kind)
	for _, c := range it.competitors {
		if s := c.score(client, kind); s < bestScore {
			best, bestScore = c, s
		}
	}
	if math.IsInf(bestScore, 1) {
		return nil, bestScore
	}
	return best, bestScore
}
