package pages

import (
	"cmp"
	"encoding/json"
	"errors"
	"io/fs"
	"math"
	"path/filepath"
	"slices"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// ConfigFileName is the per-directory ordering configuration.
const ConfigFileName = "config.json"

// directoryConfig is the content of a ConfigFileName file.
type directoryConfig struct {
	// Order lists page basenames (without extension) in the desired order.
	Order []string `json:"order"`
}

// Ranks maps a page basename to its 1-based position in a directory's order list.
type Ranks map[string]int

// NewRanks builds a rank map from an ordered list of basenames. The first occurrence of a
// name wins.
func NewRanks(order []string) Ranks {
	ranks := make(Ranks, len(order))
	for i, name := range order {
		if _, ok := ranks[name]; !ok {
			ranks[name] = i + 1
		}
	}
	return ranks
}

// ReadRanks loads the ordering configuration of dir. A missing or malformed configuration
// yields an empty rank map.
func ReadRanks(fsys afero.Fs, dir string, logger logrus.FieldLogger) Ranks {
	path := filepath.Join(dir, ConfigFileName)

	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.WithError(err).WithField("path", path).Warn("Ignoring unreadable ordering configuration")
		}
		return Ranks{}
	}

	var cfg directoryConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		logger.WithError(err).WithField("path", path).Warn("Ignoring malformed ordering configuration")
		return Ranks{}
	}

	return NewRanks(cfg.Order)
}

// SortByRank orders items by precedence: the directory rank, then the item's declared
// order, then the item's position in items. Ranks and declared orders share one numeric
// scale. Items with neither, or with a NaN declared order, follow every ordered item. The
// sort is stable and items is not modified.
func SortByRank[T any](items []T, ranks Ranks, key func(T) (name string, declared *float64)) []T {
	type ranked struct {
		item    T
		ordered bool
		value   float64
		index   int
	}

	entries := make([]ranked, len(items))
	for i, item := range items {
		name, declared := key(item)

		entry := ranked{item: item, index: i}
		if r, ok := ranks[name]; ok {
			entry.ordered, entry.value = true, float64(r)
		} else if declared != nil && !math.IsNaN(*declared) {
			entry.ordered, entry.value = true, *declared
		}

		entries[i] = entry
	}

	slices.SortStableFunc(entries, func(a, b ranked) int {
		switch {
		case a.ordered && !b.ordered:
			return -1
		case !a.ordered && b.ordered:
			return 1
		case a.ordered:
			return cmp.Compare(a.value, b.value)
		default:
			return cmp.Compare(a.index, b.index)
		}
	})

	sorted := make([]T, len(entries))
	for i, entry := range entries {
		sorted[i] = entry.item
	}
	return sorted
}
