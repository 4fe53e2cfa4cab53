package led

import (
	"log/slog"
	"os"
	"strings"
)

const deviceTreeModelPath = "/proc/device-tree/model"

// BoardConfig controls how LED outputs are discovered.
type BoardConfig struct {
	// SysfsRoot defaults to /sys/class/leds.
	SysfsRoot string
	// ModelPath defaults to /proc/device-tree/model.
	ModelPath string
	// Primary and Secondary override the detected sysfs LED names.
	Primary   string
	Secondary string
}

// Board holds the outputs for both lines.
type Board struct {
	Model     string
	Primary   Output
	Secondary Output
}

// boardLEDs lists candidate sysfs names per board, newest kernel naming first.
type boardLEDs struct {
	primary   []string
	secondary []string
}

// OpenBoard detects the board and opens both LED lines.
// Falls back to no-op outputs when a line is not available.
func OpenBoard(cfg BoardConfig, logger *slog.Logger) *Board {
	if logger == nil {
		logger = slog.Default()
	}

	boardModel := detectBoard(cfg.ModelPath)
	logger.Info("Detecting board for LED control", "board_model", boardModel)

	leds := ledsForBoard(boardModel)
	if cfg.Primary != "" {
		leds.primary = []string{cfg.Primary}
	}
	if cfg.Secondary != "" {
		leds.secondary = []string{cfg.Secondary}
	}

	return &Board{
		Model:     boardModel,
		Primary:   openFirst(cfg.SysfsRoot, Primary, leds.primary, logger),
		Secondary: openFirst(cfg.SysfsRoot, Secondary, leds.secondary, logger),
	}
}

func ledsForBoard(boardModel string) boardLEDs {
	switch {
	case strings.Contains(boardModel, "Raspberry Pi"):
		return boardLEDs{
			primary:   []string{"PWR", "led1"},
			secondary: []string{"ACT", "led0"},
		}
	case strings.Contains(boardModel, "NanoPC-T6"):
		return boardLEDs{
			primary:   []string{"sys_led"},
			secondary: []string{"usr_led"},
		}
	case strings.Contains(boardModel, "Orange Pi"):
		return boardLEDs{
			primary:   []string{"red_led", "blue_led"},
			secondary: []string{"green_led"},
		}
	default:
		return boardLEDs{}
	}
}

func openFirst(root string, line Line, names []string, logger *slog.Logger) Output {
	for _, name := range names {
		out, err := openSysfs(root, name)
		if err != nil {
			logger.Debug("LED candidate unavailable", "line", line.String(), "led", name, "error", err)
			continue
		}
		logger.Info("Using sysfs LED", "line", line.String(), "led", name)
		return out
	}

	logger.Info("No LED available, using no-op output", "line", line.String())
	return newNoop(line.String(), logger)
}

// detectBoard reads the device tree model to identify the board.
func detectBoard(path string) string {
	if path == "" {
		path = deviceTreeModelPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "unknown"
	}

	// Device tree model contains null bytes, trim them
	model := strings.TrimRight(string(data), "\x00")
	return model
}
