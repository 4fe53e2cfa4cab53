package events

import "github.com/kelindar/event"

// SubscribeToChannel copies every T published on bus into ch. The /api/events
// handler merges all four LED event types into one channel this way. A slow
// client loses events once ch is full; it never blocks the LED runner.
func SubscribeToChannel[T Event](bus *Bus, ch chan<- any) func() {
	return event.Subscribe(bus.dispatcher, func(e T) {
		select {
		case ch <- e:
		default:
		}
	})
}
