package led

import "log/slog"

// noopOutput implements Output for lines that are not present on this system
type noopOutput struct {
	name   string
	logger *slog.Logger
}

// newNoop creates a new no-op LED output
func newNoop(name string, logger *slog.Logger) *noopOutput {
	if logger == nil {
		logger = slog.Default()
	}
	return &noopOutput{
		name:   name,
		logger: logger,
	}
}

// Write logs the request but performs no actual LED control
func (n *noopOutput) Write(high bool) error {
	n.logger.Debug("LED control not available (no-op)",
		"led", n.name,
		"high", high)
	return nil
}

// Close does nothing
func (n *noopOutput) Close() error {
	return nil
}
