package model

import (
	"slices"
	"sort"
	"strconv"
)

// CategoricalColumns are the level-valued columns of a record, in schema order.
var CategoricalColumns = []string{"Valencia_wind_deg", "Seville_pressure"}

var categoricalLevels = map[string][]string{
	"Valencia_wind_deg": sortedLevels("level_", 10),
	"Seville_pressure":  sortedLevels("sp", 25),
}

func sortedLevels(prefix string, n int) []string {
	levels := make([]string, n)
	for i := range levels {
		levels[i] = prefix + strconv.Itoa(i+1)
	}
	sort.Strings(levels)
	return levels
}

// Levels returns the known levels of a categorical column in lexicographic
// order, or nil when the column is not categorical.
func Levels(column string) []string {
	return slices.Clone(categoricalLevels[column])
}

func IsCategorical(column string) bool {
	_, ok := categoricalLevels[column]
	return ok
}

// KnownLevel reports whether level is one of column's levels.
func KnownLevel(column, level string) bool {
	return slices.Contains(categoricalLevels[column], level)
}
