package cmd

import (
	"fmt"
	"sort"
)

// rankedEntries returns map entries sorted by descending value, names
// breaking ties so output is stable across runs.
func rankedEntries(m map[string]float64) []struct {
	Name  string
	Value float64
} {
	entries := make([]struct {
		Name  string
		Value float64
	}, 0, len(m))
	for name, value := range m {
		entries = append(entries, struct {
			Name  string
			Value float64
		}{name, value})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Value != entries[j].Value {
			return entries[i].Value > entries[j].Value
		}
		return entries[i].Name < entries[j].Name
	})
	return entries
}

func printProbabilityTable(title string, probabilities map[string]float64) {
	fmt.Printf("%s\n", title)
	for i, e := range rankedEntries(probabilities) {
		fmt.Printf("  %2d. %-24s %6.2f%%\n", i+1, e.Name, e.Value*100)
	}
}

func printPointsTable(title string, points map[string]float64) {
	fmt.Printf("%s\n", title)
	for i, e := range rankedEntries(points) {
		fmt.Printf("  %2d. %-24s %7.2f\n", i+1, e.Name, e.Value)
	}
}
