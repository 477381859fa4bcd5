package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MikeBeradino/neoctl/internal/logging"
	"github.com/MikeBeradino/neoctl/internal/protocol"
	"github.com/MikeBeradino/neoctl/internal/serial"
)

// CreateSendCmd creates the send command.
func CreateSendCmd() *cobra.Command {
	var baud int

	cmd := &cobra.Command{
		Use:   "send <port> <line>",
		Short: "Send one protocol line to the strip",
		Long: `Opens the serial port, waits for the board to settle, writes a single ` +
			`protocol line (for example "S,0,255,0,0" or "1"), and closes the port again. ` +
			`The line is validated before the port is touched.`,
		Args: cobra.ExactArgs(2),
		Run: func(_ *cobra.Command, args []string) {
			port, line := args[0], args[1]

			command, err := protocol.Decode(line)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Invalid protocol line %q: %v\n", line, err)
				os.Exit(1)
			}

			logging.Initialize(logging.Config{Level: "warn", Format: "text"})
			bridge := serial.NewBridge(logging.GetLogger("serial"))
			if err := bridge.Open(port, baud); err != nil {
				fmt.Fprintf(os.Stderr, "Failed to open %s: %v\n", port, err)
				os.Exit(1)
			}
			defer bridge.Close()

			if !bridge.WriteLine(command.Encode()) {
				fmt.Fprintln(os.Stderr, "Write failed")
				os.Exit(1)
			}
			fmt.Printf("Sent: %s\n", command.Encode())
		},
	}

	cmd.Flags().IntVarP(&baud, "baud", "b", 9600, "Baud rate")
	return cmd
}
