package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/smazurov/ledseq/internal/led"
	"gopkg.in/yaml.v3"
)

// Format identifies the encoding of a sequence file.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// SequenceFile is the on-disk shape shared by the TOML and YAML encodings:
//
//	[sequences.Heartbeat]
//	steps = [
//	  { state = "on", delay = "shortest" },
//	  { state = "off", delay = "1s" },
//	]
type SequenceFile struct {
	Sequences map[string]SequenceSpec `toml:"sequences" yaml:"sequences"`
}

// SequenceSpec is one named sequence.
type SequenceSpec struct {
	Steps []StepSpec `toml:"steps" yaml:"steps"`
}

// StepSpec is one step. Delay accepts an interval name or a Go duration;
// an empty delay means zero.
type StepSpec struct {
	State string `toml:"state" yaml:"state"`
	Delay string `toml:"delay" yaml:"delay"`
}

// Sequences maps names to validated sequences.
type Sequences map[string]*led.Sequence

// Names returns the sequence names in sorted order.
func (s Sequences) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// FormatForPath picks the encoding from the file extension, defaulting to TOML.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// LoadSequences reads and validates a sequence file.
func LoadSequences(path string) (Sequences, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sequence file: %w", err)
	}
	seqs, err := ParseSequences(data, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return seqs, nil
}

// ParseSequences decodes data and converts every entry. The whole file is
// rejected if any sequence is invalid.
func ParseSequences(data []byte, format Format) (Sequences, error) {
	var file SequenceFile
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse YAML sequences: %w", err)
		}
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&file); err != nil {
			return nil, fmt.Errorf("failed to parse TOML sequences: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported sequence format %q", format)
	}

	seqs := make(Sequences, len(file.Sequences))
	for name, spec := range file.Sequences {
		seq, err := spec.Sequence()
		if err != nil {
			return nil, fmt.Errorf("sequence %q: %w", name, err)
		}
		seqs[name] = seq
	}
	return seqs, nil
}

// Sequence converts the spec into a validated led.Sequence.
func (s SequenceSpec) Sequence() (*led.Sequence, error) {
	steps := make([]led.Step, 0, len(s.Steps))
	for i, spec := range s.Steps {
		step, err := spec.Step()
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		steps = append(steps, step)
	}
	return led.NewSequence(steps...)
}

// Step converts the spec into a led.Step.
func (s StepSpec) Step() (led.Step, error) {
	state, err := led.ParseState(s.State)
	if err != nil {
		return led.Step{}, err
	}
	if s.Delay == "" {
		return led.Step{State: state}, nil
	}
	delay, err := led.ParseDelay(s.Delay)
	if err != nil {
		return led.Step{}, err
	}
	return led.Step{State: state, Delay: delay}, nil
}

// SpecFor converts a sequence back into its file representation.
func SpecFor(seq *led.Sequence) SequenceSpec {
	spec := SequenceSpec{Steps: make([]StepSpec, 0, seq.Len())}
	for _, step := range seq.All() {
		spec.Steps = append(spec.Steps, StepSpec{
			State: step.State.String(),
			Delay: step.Delay.String(),
		})
	}
	return spec
}
