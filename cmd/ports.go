package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MikeBeradino/neoctl/internal/serial"
)

// CreatePortsCmd creates the ports command.
func CreatePortsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ports",
		Short: "List serial ports",
		Long:  `Enumerates serial devices on this host, the same list the connection API offers.`,
		Run: func(_ *cobra.Command, _ []string) {
			ports, err := serial.ListPorts()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to list serial ports: %v\n", err)
				os.Exit(1)
			}
			if len(ports) == 0 {
				fmt.Println("No serial ports found")
				return
			}
			for _, p := range ports {
				if p.Description != "" {
					fmt.Printf("%s\t%s\n", p.Device, p.Description)
				} else {
					fmt.Println(p.Device)
				}
			}
		},
	}
}
