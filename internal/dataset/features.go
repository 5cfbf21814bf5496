package dataset

import (
	"sort"
	"strconv"
	"strings"

	"github.com/araddon/dateparse"
)

// Engineer cleans raw rows and derives the engineered dataset. Steps run in a
// fixed order so the result is deterministic: mode-fill the categorical
// columns, derive the normalized outcome and success flag, parse launch
// dates (fail-fast on the whole batch), derive Year/Month, then sort by
// launch date and assign cumulative ranks. No rows are dropped.
func Engineer(raws []Raw) (Dataset, error) {
	if len(raws) == 0 {
		return Dataset{}, nil
	}

	columns := []struct {
		name string
		get  func(r *Raw) **string
	}{
		{"orbit_type", func(r *Raw) **string { return &r.Orbit }},
		{"launch_vehicle", func(r *Raw) **string { return &r.Vehicle }},
		{"application", func(r *Raw) **string { return &r.Application }},
		{"outcome", func(r *Raw) **string { return &r.Outcome }},
		{"launch_site", func(r *Raw) **string { return &r.Site }},
	}
	for _, col := range columns {
		mode, ok := columnMode(raws, col.get)
		if !ok {
			return nil, &IntegrityError{Reason: "column " + col.name + " has no non-null values"}
		}
		for i := range raws {
			p := col.get(&raws[i])
			if *p == nil {
				v := mode
				*p = &v
			}
		}
	}

	missions := make(Dataset, len(raws))
	for i := range raws {
		r := &raws[i]
		m := Mission{
			Vehicle:     *r.Vehicle,
			Orbit:       *r.Orbit,
			Application: *r.Application,
			Outcome:     *r.Outcome,
			Site:        *r.Site,
		}
		if r.Name != nil {
			m.Name = *r.Name
		}

		m.OutcomeNorm = strings.ToLower(strings.TrimSpace(m.Outcome))
		if strings.Contains(m.OutcomeNorm, "success") && !strings.Contains(m.OutcomeNorm, "unsuccessful") {
			m.Success = 1
		}

		if r.LaunchDate == nil {
			return nil, &IntegrityError{Reason: "record " + strconv.Itoa(i) + " has no launch_date"}
		}
		date, err := dateparse.ParseAny(*r.LaunchDate)
		if err != nil {
			return nil, &IntegrityError{Reason: "unparseable launch_date " + strconv.Quote(*r.LaunchDate), Err: err}
		}
		m.LaunchDate = date
		m.Year = date.Year()
		m.Month = date.Month().String()

		missions[i] = m
	}

	// Stable sort keeps original order for same-day launches.
	sort.SliceStable(missions, func(i, j int) bool {
		return missions[i].LaunchDate.Before(missions[j].LaunchDate)
	})
	for i := range missions {
		missions[i].Cumulative = i + 1
	}

	return missions, nil
}

// columnMode returns the most frequent non-null value of a column. Ties break
// to the lexicographically smallest value.
func columnMode(raws []Raw, get func(*Raw) **string) (string, bool) {
	counts := make(map[string]int)
	for i := range raws {
		if p := *get(&raws[i]); p != nil {
			counts[*p]++
		}
	}
	if len(counts) == 0 {
		return "", false
	}
	var best string
	bestN := -1
	for v, n := range counts {
		if n > bestN || (n == bestN && v < best) {
			best, bestN = v, n
		}
	}
	return best, true
}
