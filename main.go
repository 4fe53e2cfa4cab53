package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/smazurov/ledseq/cmd"
	"github.com/smazurov/ledseq/internal/api"
	"github.com/smazurov/ledseq/internal/config"
	"github.com/smazurov/ledseq/internal/events"
	"github.com/smazurov/ledseq/internal/led"
	"github.com/smazurov/ledseq/internal/logging"
	"github.com/smazurov/ledseq/internal/metrics"
	"go.opentelemetry.io/otel"
)

// stopTimeout bounds how long shutdown waits for running sequences to finish
// their current step and switch their line off.
const stopTimeout = 5 * time.Second

// Options for the CLI - flat structure with toml mapping.
type Options struct {
	Config string `help:"Path to configuration file" short:"c" default:"config.toml"`

	// Server settings
	Port string `help:"Port to listen on" short:"p" default:":8090" toml:"server.port" env:"SERVER_PORT"`

	// Sequence settings
	SequencesFile  string `help:"Sequence definitions file (TOML or YAML)" default:"sequences.toml" toml:"sequences.file" env:"SEQUENCES_FILE"`
	SequencesWatch bool   `help:"Reload the sequence file when it changes" default:"true" toml:"sequences.watch" env:"SEQUENCES_WATCH"`

	// LED line settings
	LinesPrimary   string `help:"sysfs LED name for the primary line (auto-detected when empty)" toml:"lines.primary" env:"LINES_PRIMARY"`
	LinesSecondary string `help:"sysfs LED name for the secondary line (auto-detected when empty)" toml:"lines.secondary" env:"LINES_SECONDARY"`
	LinesSysfsRoot string `help:"LED class directory" default:"/sys/class/leds" toml:"lines.sysfs_root" env:"LINES_SYSFS_ROOT"`

	// Auth settings
	AuthUsername string `help:"Basic auth username" default:"admin" toml:"auth.username" env:"AUTH_USERNAME"`
	AuthPassword string `help:"Basic auth password" default:"password" toml:"auth.password" env:"AUTH_PASSWORD"`

	// Metrics settings
	MetricsEnabled bool `help:"Expose Prometheus metrics on /metrics" default:"true" toml:"metrics.enabled" env:"METRICS_ENABLED"`

	// Logging settings
	LoggingLevel  string `help:"Global logging level (debug, info, warn, error)" default:"info" toml:"logging.level" env:"LOGGING_LEVEL"`
	LoggingFormat string `help:"Logging format (text, json)" default:"text" toml:"logging.format" env:"LOGGING_FORMAT"`
	LoggingLED    string `help:"LED engine logging level" default:"info" toml:"logging.led" env:"LOGGING_LED"`
	LoggingAPI    string `help:"API logging level" default:"info" toml:"logging.api" env:"LOGGING_API"`
}

func main() {
	var cli humacli.CLI

	cli = humacli.New(func(hooks humacli.Hooks, opts *Options) {
		// Load configuration automatically
		if loadErr := config.LoadConfig(opts, cli.Root()); loadErr != nil {
			slog.Warn("Failed to load config", "error", loadErr)
		}

		// Extra [logging] keys become per-module levels
		loggingConfig := config.LoadLoggingConfig(opts.Config)
		loggingConfig.Level = opts.LoggingLevel
		loggingConfig.Format = opts.LoggingFormat
		loggingConfig.Modules["led"] = opts.LoggingLED
		loggingConfig.Modules["api"] = opts.LoggingAPI
		logging.Initialize(loggingConfig)

		logger := logging.GetLogger("main")
		ledLogger := logging.GetLogger("led")

		// Create event bus for in-process event handling
		eventBus := events.New()

		board := led.OpenBoard(led.BoardConfig{
			SysfsRoot: opts.LinesSysfsRoot,
			Primary:   opts.LinesPrimary,
			Secondary: opts.LinesSecondary,
		}, ledLogger)

		observers := led.MultiObserver{events.NewPublisher(eventBus)}
		if opts.MetricsEnabled {
			observers = append(observers, metrics.NewObserver())
		}

		manager := led.NewBoardManager(board,
			led.WithObserver(observers),
			led.WithTracer(otel.Tracer("ledseq")),
			led.WithLogger(ledLogger),
		)
		led.RegisterBuiltins(manager)

		addSequences := func(seqs config.Sequences) {
			for _, name := range seqs.Names() {
				if addErr := manager.Add(name, seqs[name]); addErr != nil {
					logger.Warn("Failed to add sequence", "sequence", name, "error", addErr)
				}
			}
			logger.Info("Sequences loaded", "file", opts.SequencesFile, "count", len(seqs))
		}

		if seqs, loadErr := config.LoadSequences(opts.SequencesFile); loadErr != nil {
			logger.Warn("Failed to load sequence file, using built-in sequences", "error", loadErr)
		} else {
			addSequences(seqs)
		}

		// Lines start dark regardless of what the kernel trigger left behind
		for _, line := range led.Lines() {
			if setErr := manager.SetState(line, led.Off); setErr != nil {
				logger.Warn("Failed to switch line off", "line", line.String(), "error", setErr)
			}
		}

		panel := led.NewPanel(manager, ledLogger)

		var watcher *config.Watcher[config.Sequences]
		if opts.SequencesWatch {
			watcher = config.NewConfigWatcher(opts.SequencesFile, config.LoadSequences, logging.GetLogger("config"))
			watcher.OnReload(addSequences)
		}

		apiOpts := &api.Options{
			AuthUsername: opts.AuthUsername,
			AuthPassword: opts.AuthPassword,
			Panel:        panel,
			BoardModel:   board.Model,
			EventBus:     eventBus,
		}
		if opts.MetricsEnabled {
			apiOpts.PrometheusHandler = metrics.Handler()
		}

		server := api.NewServer(apiOpts)

		hooks.OnStart(func() {
			if watcher != nil {
				if startErr := watcher.Start(); startErr != nil {
					logger.Warn("Failed to watch sequence file", "file", opts.SequencesFile, "error", startErr)
				}
			}

			if sent, notifyErr := daemon.SdNotify(false, daemon.SdNotifyReady); notifyErr != nil {
				logger.Warn("Failed to notify systemd", "error", notifyErr)
			} else if sent {
				logger.Debug("Notified systemd of readiness")
			}

			logger.Info("Starting HTTP server", "port", opts.Port, "board", board.Model)
			if startErr := server.Start(opts.Port); startErr != nil {
				logger.Error("Failed to start HTTP server", "error", startErr)
				os.Exit(1)
			}
		})

		hooks.OnStop(func() {
			logger.Info("Shutting down server")
			_, _ = daemon.SdNotify(false, daemon.SdNotifyStopping)

			if stopErr := server.Stop(); stopErr != nil {
				logger.Error("Error stopping HTTP server", "error", stopErr)
			}

			if watcher != nil {
				if stopErr := watcher.Stop(); stopErr != nil {
					logger.Warn("Error stopping sequence watcher", "error", stopErr)
				}
			}

			// Every line must end off before the process exits
			ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
			defer cancel()
			if stopErr := panel.StopAll(ctx); stopErr != nil {
				logger.Warn("Sequences did not stop in time", "error", stopErr)
			}

			if closeErr := manager.Close(); closeErr != nil {
				logger.Warn("Error closing LED lines", "error", closeErr)
			}
		})
	})

	cli.Root().Use = "ledseq"
	cli.Root().Short = "LED sequence engine and HTTP API"

	cli.Root().AddCommand(cmd.CreateSequencesCmd())
	cli.Root().AddCommand(cmd.CreateBlinkCmd())

	// Run the CLI
	cli.Run()
}
