package ecs

import (
	"testing"

	"github.com/phanxgames/graphview"

	"github.com/yohamta/donburi"
)

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	if NewDonburiSink(world) == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
}

func TestDonburiSink_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []graphview.ViewEvent
	ViewEventType.Subscribe(world, func(w donburi.World, e graphview.ViewEvent) {
		received = append(received, e)
	})

	sink.EmitEvent(graphview.ViewEvent{
		Type:     graphview.EventNodeClick,
		Kind:     graphview.KindNode,
		EntityID: "a",
		X:        100,
		Y:        200,
	})
	sink.EmitEvent(graphview.ViewEvent{
		Type:     graphview.EventSelectionChanged,
		Kind:     graphview.KindEdge,
		Selected: []string{"e1", "e2"},
	})

	// Queued until processed.
	if len(received) != 0 {
		t.Fatalf("received %d events before ProcessEvents", len(received))
	}
	ViewEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	e0 := received[0]
	if e0.Type != graphview.EventNodeClick || e0.EntityID != "a" {
		t.Errorf("event 0: %+v", e0)
	}
	if e0.X != 100 || e0.Y != 200 {
		t.Errorf("event 0 position: (%v,%v)", e0.X, e0.Y)
	}
	e1 := received[1]
	if e1.Type != graphview.EventSelectionChanged || len(e1.Selected) != 2 {
		t.Errorf("event 1: %+v", e1)
	}
}

func TestDonburiSink_ViewClick(t *testing.T) {
	world := donburi.NewWorld()

	g := graphview.NewMemGraph()
	if err := g.AddNode("a"); err != nil {
		t.Fatal(err)
	}
	layout := graphview.NewMapLayout()
	layout.Set("a", graphview.Vec2{X: 100, Y: 100})

	cfg := graphview.DefaultConfig()
	cfg.Layout = layout
	cfg.Events = NewDonburiSink(world)
	r := graphview.NewHeadlessRenderer(400, 300)
	view, err := graphview.New(g, r, cfg)
	if err != nil {
		t.Fatal(err)
	}

	var clicks []string
	ViewEventType.Subscribe(world, func(w donburi.World, e graphview.ViewEvent) {
		if e.Type == graphview.EventNodeClick {
			clicks = append(clicks, e.EntityID)
		}
	})

	view.RenderFrame()
	r.InjectClick(100, 100)
	for range 3 {
		view.RenderFrame()
	}
	ViewEventType.ProcessEvents(world)

	if len(clicks) != 1 || clicks[0] != "a" {
		t.Errorf("clicks = %v, want [a]", clicks)
	}
}
