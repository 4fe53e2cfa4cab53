package led

import (
	"fmt"
	"strings"
	"time"
)

// Predefined step delays.
const (
	Shortest = 100 * time.Millisecond
	Shorter  = 250 * time.Millisecond
	Short    = 500 * time.Millisecond
	Medium   = 750 * time.Millisecond
	Long     = 1000 * time.Millisecond
	Longer   = 1250 * time.Millisecond
	Longest  = 1500 * time.Millisecond
)

var intervals = map[string]time.Duration{
	"shortest": Shortest,
	"shorter":  Shorter,
	"short":    Short,
	"medium":   Medium,
	"long":     Long,
	"longer":   Longer,
	"longest":  Longest,
}

// ParseDelay accepts either an interval name ("shorter", "long", ...) or a
// Go duration string ("250ms").
func ParseDelay(value string) (time.Duration, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if d, ok := intervals[v]; ok {
		return d, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, NewError(ErrCodeInvalidArgument, fmt.Sprintf("invalid delay %q", value), err)
	}
	if d < 0 {
		return 0, NewError(ErrCodeInvalidArgument, fmt.Sprintf("negative delay %q", value), nil)
	}
	return d, nil
}
