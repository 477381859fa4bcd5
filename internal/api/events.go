package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/sse"

	"github.com/MikeBeradino/neoctl/internal/events"
)

// registerSSERoutes registers the native Huma SSE endpoint.
func (s *Server) registerSSERoutes() {
	sse.Register(s.api, huma.Operation{
		OperationID: "events-stream",
		Method:      http.MethodGet,
		Path:        "/api/events",
		Summary:     "Server-Sent Events Stream",
		Description: "Real-time event stream for segment colors, connection state, sent commands, and status updates",
		Tags:        []string{"events"},
	}, map[string]any{
		"segment-color-changed":    events.SegmentColorChangedEvent{},
		"connection-state-changed": events.ConnectionStateChangedEvent{},
		"command-sent":             events.CommandSentEvent{},
		"status":                   events.StatusEvent{},
		"layout-changed":           events.LayoutChangedEvent{},
	}, func(ctx context.Context, _ *struct{}, send sse.Sender) {
		eventCh := make(chan any, 10)

		unsubscribers := []func(){
			events.SubscribeToChannel[events.SegmentColorChangedEvent](s.eventBus, eventCh),
			events.SubscribeToChannel[events.ConnectionStateChangedEvent](s.eventBus, eventCh),
			events.SubscribeToChannel[events.CommandSentEvent](s.eventBus, eventCh),
			events.SubscribeToChannel[events.StatusEvent](s.eventBus, eventCh),
			events.SubscribeToChannel[events.LayoutChangedEvent](s.eventBus, eventCh),
		}
		defer func() {
			for _, unsubscribe := range unsubscribers {
				unsubscribe()
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
