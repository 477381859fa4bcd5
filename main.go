package main

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/danielgtaylor/huma/v2/humacli"

	"github.com/MikeBeradino/neoctl/cmd"
	"github.com/MikeBeradino/neoctl/internal/api"
	"github.com/MikeBeradino/neoctl/internal/config"
	"github.com/MikeBeradino/neoctl/internal/events"
	"github.com/MikeBeradino/neoctl/internal/logging"
	"github.com/MikeBeradino/neoctl/internal/metrics"
	"github.com/MikeBeradino/neoctl/internal/serial"
	"github.com/MikeBeradino/neoctl/internal/strip"
)

// Options for the CLI - flat structure with toml mapping.
type Options struct {
	Config string `help:"Path to configuration file" short:"c" default:"config.toml"`

	// Server settings
	Port string `help:"Port to listen on" short:"p" default:":8090" toml:"server.port" env:"SERVER_PORT"`

	// Strip settings
	StripConfigFile string `help:"Strip layout file" default:"strip.toml" toml:"strip.config_file" env:"STRIP_CONFIG_FILE"`
	DebounceMs      int    `help:"Quiet period before live color updates reach hardware, in milliseconds" default:"120" toml:"strip.debounce_ms" env:"STRIP_DEBOUNCE_MS"`

	// Serial settings
	SerialPort        string `help:"Serial port to auto-connect at startup" default:"" toml:"serial.port" env:"SERIAL_PORT"`
	SerialBaud        string `help:"Baud rate for auto-connect" default:"9600" toml:"serial.baud" env:"SERIAL_BAUD"`
	SerialAutoConnect bool   `help:"Connect to the serial port at startup" default:"false" toml:"serial.auto_connect" env:"SERIAL_AUTO_CONNECT"`

	// Metrics settings
	MetricsEnabled bool `help:"Enable Prometheus metrics" default:"true" toml:"metrics.enabled" env:"METRICS_ENABLED"`

	// Logging settings
	LoggingLevel  string `help:"Global logging level (debug, info, warn, error)" default:"info" toml:"logging.level" env:"LOGGING_LEVEL"`
	LoggingFormat string `help:"Logging format (text, json)" default:"text" toml:"logging.format" env:"LOGGING_FORMAT"`
	LoggingStrip  string `help:"Strip controller logging level" default:"info" toml:"logging.strip" env:"LOGGING_STRIP"`
	LoggingSerial string `help:"Serial bridge logging level" default:"info" toml:"logging.serial" env:"LOGGING_SERIAL"`
	LoggingConfig string `help:"Config watcher logging level" default:"info" toml:"logging.config" env:"LOGGING_CONFIG"`
	LoggingAPI    string `help:"API logging level" default:"info" toml:"logging.api" env:"LOGGING_API"`
}

func main() {
	var cli humacli.CLI
	cli = humacli.New(func(hooks humacli.Hooks, opts *Options) {
		// Load configuration automatically
		if loadErr := config.LoadConfig(opts, cli.Root()); loadErr != nil {
			slog.Warn("Failed to load config", "error", loadErr)
		}

		// Initialize logging system
		logging.Initialize(logging.Config{
			Level:  opts.LoggingLevel,
			Format: opts.LoggingFormat,
			Modules: map[string]string{
				"strip":  opts.LoggingStrip,
				"serial": opts.LoggingSerial,
				"config": opts.LoggingConfig,
				"api":    opts.LoggingAPI,
			},
		})

		logger := logging.GetLogger("main")

		// Event bus for in-process state-change notifications
		eventBus := events.New()

		var m *metrics.Metrics
		if opts.MetricsEnabled {
			m = metrics.New()
		}

		// Segment layout; a missing file means the default five-segment strip
		layout, layoutErr := config.LoadLayout(opts.StripConfigFile)
		if layoutErr != nil {
			logger.Error("Failed to load strip layout", "file", opts.StripConfigFile, "error", layoutErr)
			os.Exit(1)
		}
		logger.Info("Strip layout loaded", "segments", len(layout.Segments))

		bridge := serial.NewBridge(logging.GetLogger("serial"))
		controller := strip.New(&strip.Options{
			Transport:     bridge,
			LEDCounts:     layout.LEDCounts(),
			DebounceDelay: time.Duration(opts.DebounceMs) * time.Millisecond,
			Bus:           eventBus,
			Metrics:       m,
			Logger:        logging.GetLogger("strip"),
		})

		// Watch the layout file so collaborators hear about edits. The segment
		// count is fixed for the process lifetime; a reload only notifies.
		watcher := config.NewConfigWatcher(
			opts.StripConfigFile,
			config.LoadLayout,
			logging.GetLogger("config"),
		)
		watcher.OnReload(func(l config.Layout) {
			logger.Info("Strip layout file changed; restart to apply a new segment count",
				"file", opts.StripConfigFile, "segments", len(l.Segments))
			eventBus.Publish(events.LayoutChangedEvent{
				Path:      opts.StripConfigFile,
				Timestamp: time.Now().Format(time.RFC3339),
			})
		})

		apiOpts := &api.Options{
			Controller: controller,
			EventBus:   eventBus,
		}
		if m != nil {
			apiOpts.PrometheusHandler = m.Handler()
		}
		server := api.NewServer(apiOpts)

		hooks.OnStart(func() {
			if watchErr := watcher.Start(); watchErr != nil {
				logger.Warn("Failed to watch strip layout file", "error", watchErr)
			}

			if opts.SerialAutoConnect && opts.SerialPort != "" {
				if connErr := controller.Connect(opts.SerialPort, opts.SerialBaud); connErr != nil {
					logger.Warn("Auto-connect failed", "port", opts.SerialPort, "error", connErr)
				}
			}

			logger.Info("Starting HTTP server", "port", opts.Port)
			if startErr := server.Start(opts.Port); startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
				logger.Error("Failed to start HTTP server", "error", startErr)
				os.Exit(1)
			}
		})

		hooks.OnStop(func() {
			logger.Info("Shutting down")
			if stopErr := server.Stop(); stopErr != nil {
				logger.Error("Error stopping HTTP server", "error", stopErr)
			}
			if stopErr := watcher.Stop(); stopErr != nil {
				logger.Error("Error stopping layout watcher", "error", stopErr)
			}
			// Stops debounce timers and releases the serial port.
			controller.Stop()
		})
	})

	cli.Root().AddCommand(cmd.CreatePortsCmd())
	cli.Root().AddCommand(cmd.CreateSendCmd())

	cli.Run()
}
