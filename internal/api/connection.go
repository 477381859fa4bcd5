package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/MikeBeradino/neoctl/internal/serial"
	"github.com/MikeBeradino/neoctl/internal/strip"
)

// ConnectRequest asks the controller to open a serial link.
type ConnectRequest struct {
	Body struct {
		Port string `json:"port" example:"/dev/ttyUSB0" doc:"Serial device to open"`
		Baud string `json:"baud,omitempty" default:"9600" example:"9600" doc:"Baud rate; must be a positive integer"`
	}
}

// ConnectionResponse reports the connection snapshot after an operation.
type ConnectionResponse struct {
	Body strip.ConnectionState
}

// PortsResponse lists the serial devices available on the host.
type PortsResponse struct {
	Body struct {
		Ports []serial.PortInfo `json:"ports" doc:"Available serial devices"`
	}
}

// registerConnectionRoutes registers connection lifecycle and port
// enumeration endpoints.
func (s *Server) registerConnectionRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "list-ports",
		Method:      http.MethodGet,
		Path:        "/api/ports",
		Summary:     "List Serial Ports",
		Description: "Enumerate serial devices available on the host",
		Tags:        []string{"connection"},
		Errors:      []int{500},
	}, func(ctx context.Context, input *struct{}) (*PortsResponse, error) {
		ports, err := s.listPorts()
		if err != nil {
			return nil, huma.Error500InternalServerError("Failed to enumerate serial ports", err)
		}
		resp := &PortsResponse{}
		resp.Body.Ports = ports
		return resp, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "get-connection",
		Method:      http.MethodGet,
		Path:        "/api/connection",
		Summary:     "Connection State",
		Description: "Get the current serial connection state and status line",
		Tags:        []string{"connection"},
	}, func(ctx context.Context, input *struct{}) (*ConnectionResponse, error) {
		return &ConnectionResponse{Body: s.controller.Connection()}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "connect",
		Method:      http.MethodPost,
		Path:        "/api/connection",
		Summary:     "Connect",
		Description: "Open the serial link to the strip. Closes any existing link first.",
		Tags:        []string{"connection"},
		Errors:      []int{400, 502},
	}, func(ctx context.Context, input *ConnectRequest) (*ConnectionResponse, error) {
		if err := s.controller.Connect(input.Body.Port, input.Body.Baud); err != nil {
			if errors.Is(err, strip.ErrInvalidBaud) {
				return nil, huma.Error400BadRequest("Invalid baud rate", err)
			}
			return nil, huma.Error502BadGateway("Could not open port", err)
		}
		return &ConnectionResponse{Body: s.controller.Connection()}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "disconnect",
		Method:      http.MethodDelete,
		Path:        "/api/connection",
		Summary:     "Disconnect",
		Description: "Close the serial link. A no-op when already disconnected.",
		Tags:        []string{"connection"},
	}, func(ctx context.Context, input *struct{}) (*ConnectionResponse, error) {
		s.controller.Disconnect()
		return &ConnectionResponse{Body: s.controller.Connection()}, nil
	})
}
