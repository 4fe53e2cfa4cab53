package led

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const sysfsLEDPath = "/sys/class/leds"

// sysfs implements Output using the Linux sysfs LED interface
type sysfs struct {
	name          string
	path          string
	trigger       string // trigger that was active before we took over
	maxBrightness string

	mu     sync.Mutex
	closed bool
}

// openSysfs takes manual control of the LED named name under root.
// The kernel trigger is switched to "none" so brightness writes stick.
func openSysfs(root, name string) (*sysfs, error) {
	if root == "" {
		root = sysfsLEDPath
	}
	ledPath := filepath.Join(root, name)

	if _, err := os.Stat(ledPath); err != nil {
		return nil, fmt.Errorf("LED %q not found at %s: %w", name, ledPath, err)
	}

	s := &sysfs{
		name:          name,
		path:          ledPath,
		maxBrightness: "1",
	}

	if data, err := os.ReadFile(filepath.Join(ledPath, "max_brightness")); err == nil {
		if v := strings.TrimSpace(string(data)); v != "" && v != "0" {
			s.maxBrightness = v
		}
	}

	triggerPath := filepath.Join(ledPath, "trigger")
	if data, err := os.ReadFile(triggerPath); err == nil {
		s.trigger = activeTrigger(string(data))
	}

	if err := os.WriteFile(triggerPath, []byte("none"), 0644); err != nil {
		return nil, fmt.Errorf("failed to set LED trigger: %w", err)
	}

	return s, nil
}

// Write sets brightness to max_brightness (high) or 0 (low)
func (s *sysfs) Write(high bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	value := "0"
	if high {
		value = s.maxBrightness
	}

	brightnessPath := filepath.Join(s.path, "brightness")
	if err := os.WriteFile(brightnessPath, []byte(value), 0644); err != nil {
		return fmt.Errorf("failed to set LED brightness: %w", err)
	}
	return nil
}

// Close turns the LED off and gives it back to its original trigger
func (s *sysfs) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	var errs []error
	if err := os.WriteFile(filepath.Join(s.path, "brightness"), []byte("0"), 0644); err != nil {
		errs = append(errs, fmt.Errorf("failed to turn off LED %q: %w", s.name, err))
	}
	if s.trigger != "" && s.trigger != "none" {
		if err := os.WriteFile(filepath.Join(s.path, "trigger"), []byte(s.trigger), 0644); err != nil {
			errs = append(errs, fmt.Errorf("failed to restore LED trigger %q: %w", s.trigger, err))
		}
	}
	return errors.Join(errs...)
}

// activeTrigger extracts the bracketed entry from a sysfs trigger listing,
// e.g. "none rc-feedback [mmc0] heartbeat" -> "mmc0".
func activeTrigger(listing string) string {
	for _, field := range strings.Fields(listing) {
		if strings.HasPrefix(field, "[") && strings.HasSuffix(field, "]") {
			return strings.Trim(field, "[]")
		}
	}
	return ""
}
