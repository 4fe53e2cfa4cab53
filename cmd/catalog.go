package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/smazurov/ledseq/internal/config"
	"github.com/smazurov/ledseq/internal/led"
)

// catalogEntry is a sequence plus where it was defined.
type catalogEntry struct {
	name   string
	source string
	seq    *led.Sequence
}

// loadCatalog returns the built-in sequences overlaid with those in file.
// A missing file is not an error.
func loadCatalog(file string) (map[string]catalogEntry, error) {
	catalog := make(map[string]catalogEntry)
	for name, seq := range led.Builtins() {
		catalog[name] = catalogEntry{name: name, source: "builtin", seq: seq}
	}
	if file == "" {
		return catalog, nil
	}

	seqs, err := config.LoadSequences(file)
	if errors.Is(err, fs.ErrNotExist) {
		return catalog, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load sequences: %w", err)
	}
	for name, seq := range seqs {
		catalog[name] = catalogEntry{name: name, source: file, seq: seq}
	}
	return catalog, nil
}
