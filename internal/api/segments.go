package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/MikeBeradino/neoctl/internal/strip"
)

// SegmentsResponse is the full per-segment state snapshot.
type SegmentsResponse struct {
	Body struct {
		Segments []strip.SegmentState `json:"segments" doc:"State of every configured segment"`
	}
}

// SegmentColorRequest sets a segment's live color. The write itself is
// debounced; this only records the target color and arms the timer.
type SegmentColorRequest struct {
	SID  int `path:"sid" example:"0" doc:"Segment identifier"`
	Body struct {
		R int `json:"r" minimum:"0" maximum:"255" example:"255" doc:"Red channel"`
		G int `json:"g" minimum:"0" maximum:"255" example:"1" doc:"Green channel"`
		B int `json:"b" minimum:"0" maximum:"255" example:"128" doc:"Blue channel"`
	}
}

// SegmentRequest addresses a single segment.
type SegmentRequest struct {
	SID int `path:"sid" example:"0" doc:"Segment identifier"`
}

// SegmentResponse reports one segment's state after an operation.
type SegmentResponse struct {
	Body strip.SegmentState
}

// mapSegmentError translates controller errors into HTTP problems.
func mapSegmentError(err error) error {
	switch {
	case errors.Is(err, strip.ErrUnknownSegment):
		return huma.Error404NotFound("Unknown segment", err)
	case errors.Is(err, strip.ErrNotConnected):
		return huma.Error409Conflict("Not connected", err)
	default:
		return huma.Error500InternalServerError("Segment operation failed", err)
	}
}

func (s *Server) segmentState(sid int) strip.SegmentState {
	for _, st := range s.controller.Segments() {
		if st.SID == sid {
			return st
		}
	}
	return strip.SegmentState{SID: sid}
}

func (s *Server) registerSegmentRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "list-segments",
		Method:      http.MethodGet,
		Path:        "/api/segments",
		Summary:     "List Segments",
		Description: "Get the current and last-sent color of every segment",
		Tags:        []string{"segments"},
	}, func(ctx context.Context, input *struct{}) (*SegmentsResponse, error) {
		resp := &SegmentsResponse{}
		resp.Body.Segments = s.controller.Segments()
		return resp, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "set-segment-color",
		Method:      http.MethodPut,
		Path:        "/api/segments/{sid}/color",
		Summary:     "Set Segment Color",
		Description: "Set a segment's live color. The serial write is debounced and suppressed when the color is unchanged.",
		Tags:        []string{"segments"},
		Errors:      []int{404},
	}, func(ctx context.Context, input *SegmentColorRequest) (*SegmentResponse, error) {
		if err := s.controller.SetSegmentLive(input.SID, input.Body.R, input.Body.G, input.Body.B); err != nil {
			return nil, mapSegmentError(err)
		}
		return &SegmentResponse{Body: s.segmentState(input.SID)}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "segment-on",
		Method:      http.MethodPost,
		Path:        "/api/segments/{sid}/on",
		Summary:     "Segment On",
		Description: "Set a segment to full white immediately, bypassing the debounce",
		Tags:        []string{"segments"},
		Errors:      []int{404, 409},
	}, func(ctx context.Context, input *SegmentRequest) (*SegmentResponse, error) {
		if err := s.controller.SegmentOn(input.SID); err != nil {
			return nil, mapSegmentError(err)
		}
		return &SegmentResponse{Body: s.segmentState(input.SID)}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "segment-off",
		Method:      http.MethodPost,
		Path:        "/api/segments/{sid}/off",
		Summary:     "Segment Off",
		Description: "Turn a segment off immediately, bypassing the debounce",
		Tags:        []string{"segments"},
		Errors:      []int{404, 409},
	}, func(ctx context.Context, input *SegmentRequest) (*SegmentResponse, error) {
		if err := s.controller.SegmentOff(input.SID); err != nil {
			return nil, mapSegmentError(err)
		}
		return &SegmentResponse{Body: s.segmentState(input.SID)}, nil
	})
}
