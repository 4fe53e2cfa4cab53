package cmd

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/smazurov/ledseq/internal/led"
	"github.com/spf13/cobra"
)

// CreateSequencesCmd creates the sequences command.
func CreateSequencesCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "sequences",
		Short: "List available LED sequences",
		Long:  `Prints the built-in sequences and those defined in the sequence file, with their steps and pass length.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := loadCatalog(file)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"NAME", "STEPS", "PASS", "SOURCE", "PATTERN"},
				sequenceRows(catalog),
			))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "sequences.toml", "Sequence definitions file (TOML or YAML)")
	return cmd
}

// sequenceRows returns one table row per sequence, sorted by name.
func sequenceRows(catalog map[string]catalogEntry) [][]string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	slices.Sort(names)

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		entry := catalog[name]
		rows = append(rows, []string{
			name,
			strconv.Itoa(entry.seq.Len()),
			entry.seq.Duration().String(),
			mutedStyle.Render(entry.source),
			pattern(entry.seq),
		})
	}
	return rows
}

// pattern renders steps compactly, e.g. "on 250ms, off 1s".
func pattern(seq *led.Sequence) string {
	parts := make([]string, 0, seq.Len())
	for _, step := range seq.All() {
		state := step.State.String()
		if step.State == led.On {
			state = onStyle.Render(state)
		}
		parts = append(parts, state+" "+step.Delay.String())
	}
	return strings.Join(parts, ", ")
}
