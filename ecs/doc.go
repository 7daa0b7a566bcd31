// Package ecs bridges graphview events into an ECS world.
//
// [NewDonburiSink] publishes every [graphview.ViewEvent] (node click, drag,
// hover, selection change) to a [Donburi] world as a typed event. Subscribe
// to [ViewEventType] in your systems to receive them.
//
// Usage:
//
//	cfg := graphview.DefaultConfig()
//	cfg.Events = ecs.NewDonburiSink(world)
//	view, err := graphview.New(g, renderer, cfg)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
