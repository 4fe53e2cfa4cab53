package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/smazurov/ledseq/internal/led"
	"github.com/smazurov/ledseq/internal/logging"
	"github.com/spf13/cobra"
)

// CreateBlinkCmd creates the blink command.
func CreateBlinkCmd() *cobra.Command {
	var (
		file      string
		lineName  string
		once      bool
		duration  time.Duration
		sysfsRoot string
		logJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "blink [sequence]",
		Short: "Run a sequence on the local board",
		Long: `Runs a named sequence directly against the board LEDs without starting the API server. ` +
			`Stops on SIGINT/SIGTERM, after --duration, or after one pass with --once. The line is always left off.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loggingConfig := logging.Config{Level: "info", Format: "text"}
			if logJSON {
				loggingConfig.Format = "json"
			}
			logging.Initialize(loggingConfig)
			logger := logging.GetLogger("led")

			line, err := led.ParseLine(lineName)
			if err != nil {
				return err
			}

			catalog, err := loadCatalog(file)
			if err != nil {
				return err
			}
			entry, ok := catalog[args[0]]
			if !ok {
				return fmt.Errorf("unknown sequence %q", args[0])
			}

			board := led.OpenBoard(led.BoardConfig{SysfsRoot: sysfsRoot}, logger)
			manager := led.NewBoardManager(board, led.WithLogger(logger))
			defer func() {
				if closeErr := manager.Close(); closeErr != nil {
					logger.Warn("Failed to restore LED triggers", "error", closeErr)
				}
			}()
			if err := manager.Add(entry.name, entry.seq); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, infoMsg("Running %s on %s (%s)", entry.name, line, board.Model))

			outcome, err := blink(ctx, manager, entry.name, line, once, duration)
			if err != nil {
				fmt.Fprintln(out, errorMsg("Sequence %s failed: %v", entry.name, err))
				return err
			}
			fmt.Fprintln(out, successMsg("Sequence %s %s, %s is off", entry.name, outcome, line))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "sequences.toml", "Sequence definitions file (TOML or YAML)")
	cmd.Flags().StringVarP(&lineName, "line", "l", "secondary", "LED line: primary or secondary")
	cmd.Flags().BoolVar(&once, "once", false, "Run a single pass instead of looping")
	cmd.Flags().DurationVarP(&duration, "duration", "d", 0, "Stop after this long (0 runs until interrupted)")
	cmd.Flags().StringVar(&sysfsRoot, "sysfs-root", "", "LED class directory (default /sys/class/leds)")
	cmd.Flags().BoolVar(&logJSON, "log-json", false, "Log in JSON format")
	return cmd
}

// blink runs name on line until ctx is done or duration elapses. A single
// pass (once) always completes, even when ctx is cancelled first.
func blink(ctx context.Context, m *led.Manager, name string, line led.Line, once bool, duration time.Duration) (led.Outcome, error) {
	if duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, duration)
		defer cancel()
	}

	run, err := m.Run(ctx, name, line, !once)
	if err != nil {
		return "", err
	}
	<-run.Done()
	return run.Outcome(), run.Err()
}
