package graphview

// EventType identifies a kind of view event.
type EventType uint8

const (
	EventNodeClick        EventType = iota // press and release over the same node
	EventNodeDragStart                     // movement exceeded the drag dead zone
	EventNodeDrag                          // fires each frame while dragging
	EventNodeDragEnd                       // pointer released after dragging
	EventPointerEnter                      // pointer entered a node
	EventPointerLeave                      // pointer left a node
	EventSelectionChanged                  // node or edge selection replaced
)

var eventTypeNames = [...]string{
	EventNodeClick:        "node_click",
	EventNodeDragStart:    "node_drag_start",
	EventNodeDrag:         "node_drag",
	EventNodeDragEnd:      "node_drag_end",
	EventPointerEnter:     "pointer_enter",
	EventPointerLeave:     "pointer_leave",
	EventSelectionChanged: "selection_changed",
}

// String returns the snake_case event name.
func (t EventType) String() string {
	if int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return "unknown"
}

// ViewEvent describes a user-visible change or interaction. Coordinates are
// in stage space.
type ViewEvent struct {
	Type     EventType
	Kind     EntityKind
	EntityID string
	X, Y     float64
	// Drag fields (valid for the drag events)
	StartX, StartY float64
	DeltaX, DeltaY float64
	// Selected is the new selection (valid for EventSelectionChanged).
	Selected []string
}

// EventSink receives view events. Set one through Config.Events.
type EventSink interface {
	EmitEvent(event ViewEvent)
}

// EventSinkFunc adapts a function to EventSink.
type EventSinkFunc func(ViewEvent)

// EmitEvent calls f.
func (f EventSinkFunc) EmitEvent(e ViewEvent) { f(e) }
