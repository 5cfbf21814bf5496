package dataset

import (
	"sort"
	"time"
)

// Mission is one historical launch record after feature engineering.
type Mission struct {
	Name        string
	Vehicle     string
	Orbit       string
	Application string
	Outcome     string
	Site        string
	LaunchDate  time.Time

	// Derived at load time.
	OutcomeNorm string
	Success     int // 1 if the mission succeeded
	Year        int
	Month       string // English month name
	Cumulative  int    // 1-based rank by ascending launch date
}

// Dataset is an ordered collection of missions, immutable after construction.
type Dataset []Mission

// Empty reports whether the dataset has no records.
func (d Dataset) Empty() bool { return len(d) == 0 }

// SuccessRate returns the mean success flag across all records, 0 when empty.
func (d Dataset) SuccessRate() float64 {
	if len(d) == 0 {
		return 0
	}
	sum := 0
	for _, m := range d {
		sum += m.Success
	}
	return float64(sum) / float64(len(d))
}

// Vehicles returns the distinct launch vehicle names, sorted.
func (d Dataset) Vehicles() []string {
	return distinct(d, func(m Mission) string { return m.Vehicle })
}

// Orbits returns the distinct orbit types, sorted.
func (d Dataset) Orbits() []string {
	return distinct(d, func(m Mission) string { return m.Orbit })
}

func distinct(d Dataset, key func(Mission) string) []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, m := range d {
		k := key(m)
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
