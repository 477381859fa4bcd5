package serial

import (
	"fmt"

	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"
)

// PortInfo describes one serial device available on the host.
type PortInfo struct {
	Device      string `json:"device" example:"/dev/ttyUSB0" doc:"OS device path or name"`
	Description string `json:"description,omitempty" example:"USB Serial (VID 2341, PID 0043)" doc:"Human-readable device description"`
}

// ListPorts enumerates the serial devices available on the host. It prefers
// the detailed enumeration (USB metadata) and falls back to the plain port
// list on platforms where enumeration is unavailable.
func ListPorts() ([]PortInfo, error) {
	details, err := enumerator.GetDetailedPortsList()
	if err == nil {
		ports := make([]PortInfo, 0, len(details))
		for _, d := range details {
			info := PortInfo{Device: d.Name}
			if d.IsUSB {
				info.Description = fmt.Sprintf("USB Serial (VID %s, PID %s)", d.VID, d.PID)
				if d.Product != "" {
					info.Description = d.Product
				}
			}
			ports = append(ports, info)
		}
		return ports, nil
	}

	names, listErr := serial.GetPortsList()
	if listErr != nil {
		return nil, fmt.Errorf("list ports: %w", listErr)
	}
	ports := make([]PortInfo, 0, len(names))
	for _, name := range names {
		ports = append(ports, PortInfo{Device: name})
	}
	return ports, nil
}
