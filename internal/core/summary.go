package core

import (
	"maps"
	"slices"
)

// Count is a label with the number of participants carrying it.
type Count struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Summary holds roster statistics for the results screen.
type Summary struct {
	Total    int     `json:"total"`
	Male     int     `json:"male"`
	Female   int     `json:"female"`
	ByLevel  []Count `json:"byLevel"`
	ByRegion []Count `json:"byRegion"`
	BySchool []Count `json:"bySchool"`
}

// Summarize computes statistics over every participant in g. Levels follow
// display order; regions and schools are sorted by name.
func Summarize(g Grouping) Summary {
	var s Summary
	regions := make(map[string]int)
	schools := make(map[string]int)

	for _, lvl := range g.Levels() {
		n := 0
		for _, group := range g[lvl] {
			for _, p := range group {
				n++
				switch p.Gender {
				case GenderMale:
					s.Male++
				case GenderFemale:
					s.Female++
				}
				regions[p.Region]++
				schools[p.School]++
			}
		}
		s.Total += n
		s.ByLevel = append(s.ByLevel, Count{Label: string(lvl), Count: n})
	}

	s.ByRegion = sortedCounts(regions)
	s.BySchool = sortedCounts(schools)
	return s
}

func sortedCounts(m map[string]int) []Count {
	out := make([]Count, 0, len(m))
	for _, label := range slices.Sorted(maps.Keys(m)) {
		out = append(out, Count{Label: label, Count: m[label]})
	}
	return out
}
