package config

import (
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/smazurov/ledseq/internal/led"
)

const tomlSequences = `
[sequences.Heartbeat]
steps = [
  { state = "on", delay = "shortest" },
  { state = "off", delay = "100ms" },
  { state = "on", delay = "shortest" },
  { state = "off", delay = "longest" },
]

[sequences.Solid]
steps = [{ state = "on" }]
`

const yamlSequences = `
sequences:
  Heartbeat:
    steps:
      - {state: on, delay: shortest}
      - {state: off, delay: 100ms}
      - {state: on, delay: shortest}
      - {state: off, delay: longest}
  Solid:
    steps:
      - state: "on"
`

func heartbeatSteps() []led.Step {
	return []led.Step{
		{State: led.On, Delay: led.Shortest},
		{State: led.Off, Delay: 100 * time.Millisecond},
		{State: led.On, Delay: led.Shortest},
		{State: led.Off, Delay: led.Longest},
	}
}

func TestParseSequences(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		data   string
	}{
		{"toml", FormatTOML, tomlSequences},
		{"yaml", FormatYAML, yamlSequences},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seqs, err := ParseSequences([]byte(tt.data), tt.format)
			if err != nil {
				t.Fatalf("ParseSequences() error = %v", err)
			}

			if got := seqs.Names(); !reflect.DeepEqual(got, []string{"Heartbeat", "Solid"}) {
				t.Errorf("Names() = %v", got)
			}
			if got := seqs["Heartbeat"].Steps(); !reflect.DeepEqual(got, heartbeatSteps()) {
				t.Errorf("Heartbeat steps = %v", got)
			}
			if got := seqs["Solid"].Steps(); !reflect.DeepEqual(got, []led.Step{{State: led.On}}) {
				t.Errorf("Solid steps = %v", got)
			}
		})
	}
}

func TestParseSequencesEmptyFile(t *testing.T) {
	for _, format := range []Format{FormatTOML, FormatYAML} {
		seqs, err := ParseSequences(nil, format)
		if err != nil {
			t.Errorf("ParseSequences(empty, %s) error = %v", format, err)
		}
		if len(seqs) != 0 {
			t.Errorf("ParseSequences(empty, %s) = %v", format, seqs)
		}
	}
}

func TestParseSequencesInvalid(t *testing.T) {
	tests := []struct {
		name    string
		format  Format
		data    string
		wantErr string
		code    error
	}{
		{
			name:    "bad state",
			format:  FormatTOML,
			data:    "[sequences.X]\nsteps = [{ state = \"blue\", delay = \"short\" }]\n",
			wantErr: `sequence "X": step 0`,
			code:    led.ErrInvalidArgument,
		},
		{
			name:    "bad delay",
			format:  FormatYAML,
			data:    "sequences:\n  X:\n    steps:\n      - {state: off, delay: forever}\n",
			wantErr: `sequence "X": step 0`,
			code:    led.ErrInvalidArgument,
		},
		{
			name:    "negative delay",
			format:  FormatTOML,
			data:    "[sequences.X]\nsteps = [{ state = \"on\", delay = \"-1s\" }]\n",
			wantErr: "negative delay",
			code:    led.ErrInvalidArgument,
		},
		{
			name:    "no steps",
			format:  FormatTOML,
			data:    "[sequences.Empty]\nsteps = []\n",
			wantErr: `sequence "Empty"`,
			code:    led.ErrInvalidArgument,
		},
		{
			name:    "unknown field",
			format:  FormatTOML,
			data:    "[sequences.X]\nsteps = [{ state = \"on\", colour = \"red\" }]\n",
			wantErr: "failed to parse TOML",
		},
		{
			name:    "malformed yaml",
			format:  FormatYAML,
			data:    "sequences: [unclosed",
			wantErr: "failed to parse YAML",
		},
		{
			name:    "unsupported format",
			format:  Format("json"),
			data:    "{}",
			wantErr: "unsupported sequence format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSequences([]byte(tt.data), tt.format)
			if err == nil {
				t.Fatal("ParseSequences() expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
			if tt.code != nil && !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want errors.Is %v", err, tt.code)
			}
		})
	}
}

func TestLoadSequences(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"sequences.toml", "sequences.yaml", "sequences.yml"} {
		content := tomlSequences
		if FormatForPath(name) == FormatYAML {
			content = yamlSequences
		}
		path := filepath.Join(dir, name)
		writeFile(t, path, content)

		seqs, err := LoadSequences(path)
		if err != nil {
			t.Errorf("LoadSequences(%s) error = %v", name, err)
			continue
		}
		if len(seqs) != 2 {
			t.Errorf("LoadSequences(%s) returned %d sequences", name, len(seqs))
		}
	}

	if _, err := LoadSequences(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("LoadSequences() on missing file should fail")
	}
}

func TestFormatForPath(t *testing.T) {
	tests := map[string]Format{
		"seq.toml":      FormatTOML,
		"seq.yaml":      FormatYAML,
		"SEQ.YML":       FormatYAML,
		"seq":           FormatTOML,
		"/etc/seq.conf": FormatTOML,
	}
	for path, want := range tests {
		if got := FormatForPath(path); got != want {
			t.Errorf("FormatForPath(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestSpecForRoundTrip(t *testing.T) {
	seq := led.MustSequence(heartbeatSteps()...)

	spec := SpecFor(seq)
	if len(spec.Steps) != 4 || spec.Steps[0].State != "on" || spec.Steps[3].Delay != "1.5s" {
		t.Errorf("SpecFor() = %+v", spec)
	}

	back, err := spec.Sequence()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(back.Steps(), seq.Steps()) {
		t.Errorf("round trip = %v, want %v", back.Steps(), seq.Steps())
	}
}
