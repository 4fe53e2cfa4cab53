package led

import (
	"fmt"
	"strings"
)

// State is the logical level written to an LED line.
type State int

const (
	// Off drives the line low.
	Off State = iota
	// On drives the line high.
	On
)

// String returns "on" or "off".
func (s State) String() string {
	if s == On {
		return "on"
	}
	return "off"
}

// High reports whether the state maps to a logical high value.
func (s State) High() bool {
	return s == On
}

// ParseState converts a user supplied value into a State.
func ParseState(value string) (State, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "on", "high", "1", "true":
		return On, nil
	case "off", "low", "0", "false":
		return Off, nil
	default:
		return Off, NewError(ErrCodeInvalidArgument, fmt.Sprintf("invalid LED state %q", value), nil)
	}
}

// Line identifies one of the two independently controlled LED lines.
type Line int

const (
	// Primary is the red power LED on boards that have one.
	Primary Line = iota
	// Secondary is the green status/activity LED.
	Secondary
)

const lineCount = 2

// Lines returns both line identities in order.
func Lines() []Line {
	return []Line{Primary, Secondary}
}

// String returns the canonical line name.
func (l Line) String() string {
	switch l {
	case Primary:
		return "primary"
	case Secondary:
		return "secondary"
	default:
		return fmt.Sprintf("line(%d)", int(l))
	}
}

func (l Line) valid() bool {
	return l == Primary || l == Secondary
}

// ParseLine accepts the canonical names plus the colour and role aliases
// used on Raspberry Pi boards (red/power, green/status/activity).
func ParseLine(value string) (Line, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "primary", "red", "power", "pwr":
		return Primary, nil
	case "secondary", "green", "status", "activity", "act":
		return Secondary, nil
	default:
		return Primary, NewError(ErrCodeInvalidArgument, fmt.Sprintf("invalid LED line %q", value), nil)
	}
}
