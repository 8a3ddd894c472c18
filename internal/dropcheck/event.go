package dropcheck

import (
	"fmt"

	"github.com/sunholo/ownhir/internal/hirpath"
)

type eventKind int

const (
	eventUsage eventKind = iota
	eventAssign
	eventNoop
)

// Event is one step in a root variable's EventSeries: a Usage
// occurrence, a whole-path Assign, or a pruned-away Noop.
type Event struct {
	kind   eventKind
	usage  hirpath.Usage
	assign hirpath.Path
}

// UsageEvent records a usage occurrence.
func UsageEvent(u hirpath.Usage) Event { return Event{kind: eventUsage, usage: u} }

// AssignEvent records a whole-path assignment.
func AssignEvent(p hirpath.Path) Event { return Event{kind: eventAssign, assign: p} }

var noop = Event{kind: eventNoop}

func (e Event) isNoop() bool { return e.kind == eventNoop }

func (e Event) String() string {
	switch e.kind {
	case eventUsage:
		return fmt.Sprintf("usage(%s, %s)", e.usage.Kind, e.usage.Path)
	case eventAssign:
		return fmt.Sprintf("assign(%s)", e.assign)
	default:
		return "noop"
	}
}

// Equal compares two events structurally; used when merging a
// successor's carried-in base events so the same event is never added
// twice (CollisionChecker's "if !baseEvents.contains(&event)" check).
func (e Event) Equal(o Event) bool {
	if e.kind != o.kind {
		return false
	}
	switch e.kind {
	case eventUsage:
		return e.usage.Kind == o.usage.Kind && e.usage.Path.Same(o.usage.Path) &&
			e.usage.Path.Location == o.usage.Path.Location
	case eventAssign:
		return e.assign.Same(o.assign) && e.assign.Location == o.assign.Location
	default:
		return true
	}
}

// pathOf returns the path an event touches, for overwrite-containment
// checks; Noop events have no path and never overwrite anything.
func (e Event) pathOf() (hirpath.Path, bool) {
	switch e.kind {
	case eventUsage:
		return e.usage.Path, true
	case eventAssign:
		return e.assign, true
	default:
		return hirpath.Path{}, false
	}
}

// EventSeries is the ordered sequence of events observed for a single
// root variable, in program order.
type EventSeries struct {
	events []Event
}

// NewEventSeries returns an empty series.
func NewEventSeries() EventSeries { return EventSeries{} }

// Push appends an event.
func (s *EventSeries) Push(e Event) { s.events = append(s.events, e) }

// Len returns the number of (possibly pruned) events.
func (s EventSeries) Len() int { return len(s.events) }

// Events exposes the raw event slice for read-only iteration.
func (s EventSeries) Events() []Event {
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}

func usageOverwritten(e Event, assignPath hirpath.Path) bool {
	p, ok := e.pathOf()
	if !ok {
		return false
	}
	return p.Contains(assignPath)
}

// prune scans the series from right to left, starting at limit, erasing
// (marking Noop) every earlier event that the triggering event at each
// position overwrites (spec.md §4.4 "Compression"): an Assign or a Move
// Usage erases every earlier event whose path it contains; a Ref usage
// erases only an earlier Ref on the exact same path. It returns a new
// series of the same length with some entries replaced by Noop, so
// caller-held indices still line up with the original positions.
func (s EventSeries) prune(limit int) EventSeries {
	pruned := make([]Event, len(s.events))
	copy(pruned, s.events)

	for index := limit; index > 0; index-- {
		trigger := pruned[index]
		switch trigger.kind {
		case eventAssign:
			for i := 0; i < index; i++ {
				if usageOverwritten(pruned[i], trigger.assign) {
					pruned[i] = noop
				}
			}
		case eventUsage:
			if trigger.usage.Kind == hirpath.Move {
				for i := 0; i < index; i++ {
					if usageOverwritten(pruned[i], trigger.usage.Path) {
						pruned[i] = noop
					}
				}
			} else {
				for i := 0; i < index; i++ {
					prev := pruned[i]
					if prev.kind == eventUsage && prev.usage.Kind == hirpath.RefUse && prev.usage.Path.Same(trigger.usage.Path) {
						pruned[i] = noop
					}
				}
			}
		}
	}
	return EventSeries{events: pruned}
}

// compress prunes the whole series and drops every Noop, yielding the
// final compacted form (spec.md §4.4).
func (s EventSeries) Compress() EventSeries {
	if len(s.events) == 0 {
		return s
	}
	pruned := s.prune(len(s.events) - 1)
	out := make([]Event, 0, len(pruned.events))
	for _, e := range pruned.events {
		if !e.isNoop() {
			out = append(out, e)
		}
	}
	return EventSeries{events: out}
}

// Collision reports that a path was used after an earlier move of an
// overlapping path, optionally attributing it to the previous iteration
// of a loop when both locations coincide (spec.md §4.4 "Validation").
type Collision struct {
	Path        hirpath.Path
	PrevMove    hirpath.Path
	LoopCarried bool
}

// validate walks the raw (unpruned) series and, for every Usage event,
// compresses the strict prefix before its position and checks whether an
// earlier surviving Move usage shares a prefix with it (spec.md §4.4
// "Validation"): at most one live move per overlapping path. The prefix
// is pruned on its own, excluding the event under test, so a Move never
// erases the very evidence it should collide with: a trigger at the
// boundary position would otherwise mark an identical-path predecessor
// Noop before the comparison runs, hiding back-to-back moves of the same
// path (spec.md S1). A collision whose previous-move location equals the
// current usage's location is flagged loop-carried, since that can only
// happen when the same instruction produced both across separate loop
// laps (spec.md S3).
func (s EventSeries) validate() []Collision {
	var collisions []Collision
	for index, e := range s.events {
		if e.kind != eventUsage || index == 0 {
			continue
		}
		prefix := EventSeries{events: s.events[:index]}
		compressed := prefix.prune(index - 1)
		for _, prev := range compressed.events {
			if prev.kind != eventUsage || prev.usage.Kind != hirpath.Move {
				continue
			}
			if prev.usage.Path.SharesPrefixWith(e.usage.Path) {
				collisions = append(collisions, Collision{
					Path:        e.usage.Path,
					PrevMove:    prev.usage.Path,
					LoopCarried: prev.usage.Path.Location == e.usage.Path.Location,
				})
			}
		}
	}
	return collisions
}
