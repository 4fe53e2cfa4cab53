package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/sse"
	"github.com/smazurov/ledseq/internal/events"
)

// registerSSERoutes registers the native Huma SSE endpoint.
func (s *Server) registerSSERoutes() {
	sse.Register(s.api, huma.Operation{
		OperationID: "events-stream",
		Method:      http.MethodGet,
		Path:        "/api/events",
		Summary:     "Server-Sent Events Stream",
		Description: "Real-time stream of sequence definitions, run starts and ends, and every line write",
		Tags:        []string{"events"},
		Security:    withAuth(),
		Errors:      []int{401},
	}, map[string]any{
		"sequence-added":     events.SequenceAddedEvent{},
		"run-started":        events.RunStartedEvent{},
		"run-finished":       events.RunFinishedEvent{},
		"line-state-changed": events.LineStateChangedEvent{},
	}, func(ctx context.Context, _ *struct{}, send sse.Sender) {
		// Sized for a few full passes of a fast sequence on both lines
		eventCh := make(chan any, 64)

		unsubscribers := []func(){
			events.SubscribeToChannel[events.SequenceAddedEvent](s.eventBus, eventCh),
			events.SubscribeToChannel[events.RunStartedEvent](s.eventBus, eventCh),
			events.SubscribeToChannel[events.RunFinishedEvent](s.eventBus, eventCh),
			events.SubscribeToChannel[events.LineStateChangedEvent](s.eventBus, eventCh),
		}
		defer func() {
			for _, unsub := range unsubscribers {
				unsub()
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case event := <-eventCh:
				if err := send.Data(event); err != nil {
					return
				}
			}
		}
	})
}
