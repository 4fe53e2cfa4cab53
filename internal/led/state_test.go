package led

import (
	"errors"
	"testing"
	"time"
)

func TestParseState(t *testing.T) {
	tests := []struct {
		input   string
		want    State
		wantErr bool
	}{
		{"on", On, false},
		{"ON", On, false},
		{"high", On, false},
		{"1", On, false},
		{" off ", Off, false},
		{"low", Off, false},
		{"false", Off, false},
		{"blink", Off, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseState(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseState(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("ParseState(%q) error = %v, want ErrInvalidArgument", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseState(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		input   string
		want    Line
		wantErr bool
	}{
		{"primary", Primary, false},
		{"red", Primary, false},
		{"PWR", Primary, false},
		{"secondary", Secondary, false},
		{"green", Secondary, false},
		{"status", Secondary, false},
		{"act", Secondary, false},
		{"blue", Primary, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLine(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLine(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseLine(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLineString(t *testing.T) {
	if Primary.String() != "primary" || Secondary.String() != "secondary" {
		t.Errorf("line names = %s/%s", Primary, Secondary)
	}
	if On.String() != "on" || Off.String() != "off" {
		t.Errorf("state names = %s/%s", On, Off)
	}
}

func TestParseDelay(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Duration
		wantErr bool
	}{
		{"shortest", 100 * time.Millisecond, false},
		{"Shorter", 250 * time.Millisecond, false},
		{"short", 500 * time.Millisecond, false},
		{"medium", 750 * time.Millisecond, false},
		{"long", time.Second, false},
		{"longer", 1250 * time.Millisecond, false},
		{"longest", 1500 * time.Millisecond, false},
		{"40ms", 40 * time.Millisecond, false},
		{"0s", 0, false},
		{"-5ms", 0, true},
		{"soon", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDelay(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDelay(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseDelay(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
