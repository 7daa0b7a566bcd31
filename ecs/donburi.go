package ecs

import (
	"github.com/phanxgames/graphview"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// ViewEventType is the Donburi event type for graphview events.
// Subscribe to it in your ECS systems to receive clicks, drags, hover and
// selection changes.
var ViewEventType = events.NewEventType[graphview.ViewEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink returns an EventSink that publishes view events to
// ViewEventType in world. Events are queued until ProcessEvents runs.
func NewDonburiSink(world donburi.World) graphview.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event graphview.ViewEvent) {
	ViewEventType.Publish(s.world, event)
}
