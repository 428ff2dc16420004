package drag

import (
	"math"

	"phasepositions/internal/geom"
)

// startDragging begins a session. Callers have already established that the
// item is draggable, idle, and hit by the contact.
func (it *Item) startDragging(client geom.Point, kind PointerKind) {
	kind.mustBeActive()
	it.listener = it.dispatcher.listen(it, kind)
	it.kind = kind
	it.client = client
	it.RecalculateDragOffset()
	it.start = it.get()
	if it.onStart != nil {
		it.onStart(it.start, kind)
	}
}

// updateDragging moves the item so the pointer keeps its offset from the
// item origin.
func (it *Item) updateDragging(client geom.Point) {
	it.client = client
	pointer := it.offsetPoint(client)
	prev := it.get()
	next := prev.Add(pointer.Sub(it.offset))
	if it.constraint != nil {
		var ok bool
		next, ok = it.constraint(next, pointer, prev, it.start, it.kind)
		if !ok {
			return
		}
	}
	it.set(next)
	if it.onUpdate != nil {
		it.onUpdate(next, prev)
	}
}

// stopDragging ends the session, if any.
func (it *Item) stopDragging(cancelled bool) {
	if !it.IsBeingDragged() {
		return
	}
	if it.listener != nil {
		it.listener.Release()
		it.listener = nil
	}
	it.kind = PointerNone
	it.backups = nil
	if it.onStop != nil {
		it.onStop(cancelled)
	}
}

// acceptTouches takes the touches of one input event that arbitration
// assigned to this item. An idle item starts dragging with the best of them
// and keeps the rest as backups; an item already being dragged keeps all of
// them as backups.
func (it *Item) acceptTouches(touches []scoredTouch) {
	if len(touches) == 0 {
		return
	}
	if it.IsBeingDragged() {
		for _, st := range touches {
			it.backups = append(it.backups, st.touch)
		}
		return
	}
	bestIdx := 0
	for i := 1; i < len(touches); i++ {
		if touches[i].score < touches[bestIdx].score {
			bestIdx = i
		}
	}
	backups := make([]Touch, 0, len(touches)-1)
	for i, st := range touches {
		if i != bestIdx {
			backups = append(backups, st.touch)
		}
	}
	best := touches[bestIdx].touch
	it.activeTouch = best.ID
	it.startDragging(best.Client, PointerTouch)
	// startDragging may have been stopped by the start callback.
	if it.kind == PointerTouch {
		it.backups = backups
	}
}

// touchesMoved refreshes backup positions and advances the drag when the
// active touch is among the changed touches.
func (it *Item) touchesMoved(changed []Touch) {
	for _, t := range changed {
		for i := range it.backups {
			if it.backups[i].ID == t.ID {
				it.backups[i].Client = t.Client
				break
			}
		}
	}
	if t, ok := findTouch(changed, it.activeTouch); ok {
		it.updateDragging(t.Client)
	}
}

// touchesFinished handles ended or cancelled touches, handing the drag to a
// backup touch when the active touch is among them.
func (it *Item) touchesFinished(changed []Touch) {
	kept := it.backups[:0]
	for _, b := range it.backups {
		if _, gone := findTouch(changed, b.ID); !gone {
			kept = append(kept, b)
		}
	}
	it.backups = kept
	if _, ok := findTouch(changed, it.activeTouch); !ok {
		return
	}
	if backup, ok := it.selectBackup(); ok {
		it.client = backup.Client
		it.RecalculateDragOffset()
		return
	}
	it.stopDragging(false)
}

// selectBackup removes the closest backup touch that passes the generous
// hit test and makes it the active touch.
func (it *Item) selectBackup() (Touch, bool) {
	current := it.get()
	bestD2 := math.Inf(1)
	bestIdx := -1
	for i, b := range it.backups {
		pointer := it.offsetPoint(b.Client)
		d2 := pointer.LengthSquared()
		if d2 >= bestD2 {
			continue
		}
		if it.hitTest != nil && !it.hitTest(pointer, current, PointerTouch, true) {
			continue
		}
		bestD2 = d2
		bestIdx = i
	}
	if bestIdx < 0 {
		return Touch{}, false
	}
	t := it.backups[bestIdx]
	it.backups = append(it.backups[:bestIdx], it.backups[bestIdx+1:]...)
	it.activeTouch = t.ID
	return t, true
}

// Backups returns a copy of the backup touches of the active session.
func (it *Item) Backups() []Touch {
	return append([]Touch(nil), it.backups...)
}

// ActiveTouch returns the touch driving a touch session.
func (it *Item) ActiveTouch() (TouchID, bool) {
	return it.activeTouch, it.kind == PointerTouch
}

func findTouch(touches []Touch, id TouchID) (Touch, bool) {
	for _, t := range touches {
		if t.ID == id {
			return t, true
		}
	}
	return Touch{}, false
}
