// Package analytics provides pure read-only aggregate queries over the
// engineered mission dataset. Every query returns an empty (non-nil)
// collection on an empty dataset. The JSON field names are part of the
// dashboard contract and must not change.
package analytics

import (
	"sort"

	"missionlens/internal/dataset"
)

// YearCount is one point of the annual growth trend.
type YearCount struct {
	Year         int `json:"Year"`
	MissionCount int `json:"Mission_Count"`
}

// GrowthTrend counts missions per launch year, ascending by year.
func GrowthTrend(data dataset.Dataset) []YearCount {
	counts := make(map[int]int)
	for _, m := range data {
		counts[m.Year]++
	}
	out := make([]YearCount, 0, len(counts))
	for year, n := range counts {
		out = append(out, YearCount{Year: year, MissionCount: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// FamilyRate summarizes launch volume and success rate for one vehicle
// family.
type FamilyRate struct {
	Family        string  `json:"Family"`
	TotalLaunches int     `json:"Total_Launches"`
	SuccessRate   float64 `json:"Success_Rate"`
}

// SuccessRates returns the top three vehicle families by launch volume with
// their mean success flag. Ties in volume break to the family name.
func SuccessRates(data dataset.Dataset) []FamilyRate {
	totals := make(map[string]int)
	successes := make(map[string]int)
	for _, m := range data {
		fam := dataset.Family(m.Vehicle)
		totals[fam]++
		successes[fam] += m.Success
	}
	out := make([]FamilyRate, 0, len(totals))
	for fam, n := range totals {
		out = append(out, FamilyRate{
			Family:        fam,
			TotalLaunches: n,
			SuccessRate:   float64(successes[fam]) / float64(n),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalLaunches != out[j].TotalLaunches {
			return out[i].TotalLaunches > out[j].TotalLaunches
		}
		return out[i].Family < out[j].Family
	})
	if len(out) > 3 {
		out = out[:3]
	}
	return out
}

// ApplicationCount is one slice of the mission-application distribution.
type ApplicationCount struct {
	Application string `json:"Application"`
	Count       int    `json:"Count"`
}

// StrategicFocus counts missions per application, descending by count. Ties
// break to the application name.
func StrategicFocus(data dataset.Dataset) []ApplicationCount {
	counts := make(map[string]int)
	for _, m := range data {
		counts[m.Application]++
	}
	out := make([]ApplicationCount, 0, len(counts))
	for app, n := range counts {
		out = append(out, ApplicationCount{Application: app, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Application < out[j].Application
	})
	return out
}

// OrbitLink is one family-to-orbit edge of the capability sankey.
type OrbitLink struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Value  int    `json:"value"`
}

// OrbitComplexity counts observed (family, orbit) combinations. Combinations
// that never occur are omitted, so every value is positive.
func OrbitComplexity(data dataset.Dataset) []OrbitLink {
	counts := make(map[[2]string]int)
	for _, m := range data {
		counts[[2]string{dataset.Family(m.Vehicle), m.Orbit}]++
	}
	out := make([]OrbitLink, 0, len(counts))
	for key, n := range counts {
		out = append(out, OrbitLink{Source: key[0], Target: key[1], Value: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Source != out[j].Source {
			return out[i].Source < out[j].Source
		}
		return out[i].Target < out[j].Target
	})
	return out
}

// OverallSuccessRate is the mean success flag across the dataset, 0 when
// empty.
func OverallSuccessRate(data dataset.Dataset) float64 {
	return data.SuccessRate()
}
