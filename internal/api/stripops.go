package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/MikeBeradino/neoctl/internal/strip"
)

// StripColorRequest sets every LED to one color.
type StripColorRequest struct {
	Body struct {
		R int `json:"r" minimum:"0" maximum:"255" example:"0" doc:"Red channel"`
		G int `json:"g" minimum:"0" maximum:"255" example:"0" doc:"Green channel"`
		B int `json:"b" minimum:"0" maximum:"255" example:"0" doc:"Blue channel"`
	}
}

// StatusResponse carries the controller's status line after a strip-wide
// operation.
type StatusResponse struct {
	Body struct {
		Status string `json:"status" example:"Sent: 1" doc:"Controller status line"`
	}
}

func mapStripError(err error) error {
	if errors.Is(err, strip.ErrNotConnected) {
		return huma.Error409Conflict("Not connected", err)
	}
	return huma.Error500InternalServerError("Strip operation failed", err)
}

func (s *Server) statusResponse() *StatusResponse {
	resp := &StatusResponse{}
	resp.Body.Status = s.controller.Status()
	return resp
}

// registerStripRoutes registers the strip-wide immediate operations. These
// never touch per-segment bookkeeping; segment state intentionally goes stale
// until the next per-segment write.
func (s *Server) registerStripRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "strip-on",
		Method:      http.MethodPost,
		Path:        "/api/strip/on",
		Summary:     "Strip On",
		Description: "Set every LED to full white immediately",
		Tags:        []string{"strip"},
		Errors:      []int{409},
	}, func(ctx context.Context, input *struct{}) (*StatusResponse, error) {
		if err := s.controller.AllOn(); err != nil {
			return nil, mapStripError(err)
		}
		return s.statusResponse(), nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "strip-off",
		Method:      http.MethodPost,
		Path:        "/api/strip/off",
		Summary:     "Strip Off",
		Description: "Turn every LED off immediately",
		Tags:        []string{"strip"},
		Errors:      []int{409},
	}, func(ctx context.Context, input *struct{}) (*StatusResponse, error) {
		if err := s.controller.AllOff(); err != nil {
			return nil, mapStripError(err)
		}
		return s.statusResponse(), nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "strip-color",
		Method:      http.MethodPost,
		Path:        "/api/strip/color",
		Summary:     "Strip Color",
		Description: "Set every LED to one color immediately",
		Tags:        []string{"strip"},
		Errors:      []int{409},
	}, func(ctx context.Context, input *StripColorRequest) (*StatusResponse, error) {
		if err := s.controller.AllColor(input.Body.R, input.Body.G, input.Body.B); err != nil {
			return nil, mapStripError(err)
		}
		return s.statusResponse(), nil
	})
}
