package core

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// MinTargetSize is the smallest group size Partition accepts in balanced mode.
const MinTargetSize = 2

// ErrInvalidTargetSize is returned when a balanced partition is requested with
// a target size below MinTargetSize.
var ErrInvalidTargetSize = errors.New("invalid target size")

// Partition splits one cohort into groups.
//
// If any participant carries a group id, the cohort is grouped by those ids
// verbatim (first appearance decides group order, blank ids share the
// UnassignedGroup bucket) and targetSize is ignored. Otherwise the cohort is
// sorted by region, school and gender, cut into chunks of targetSize, and an
// undersized trailing chunk is spread over the other groups.
//
// Every participant of cohort appears in exactly one returned group. The
// input slice is not modified.
func Partition(cohort []Participant, targetSize int) ([][]Participant, error) {
	if hasGroupIDs(cohort) {
		return groupByID(cohort), nil
	}
	if targetSize < MinTargetSize {
		return nil, fmt.Errorf("%w: %d (minimum %d)", ErrInvalidTargetSize, targetSize, MinTargetSize)
	}
	if len(cohort) == 0 {
		return [][]Participant{}, nil
	}

	sorted := slices.Clone(cohort)
	sortForBalance(sorted)

	groups := chunk(sorted, targetSize)
	return redistributeTail(groups, targetSize), nil
}

// hasGroupIDs reports whether any participant has a non-blank group id.
func hasGroupIDs(cohort []Participant) bool {
	return slices.ContainsFunc(cohort, func(p Participant) bool {
		return strings.TrimSpace(p.GroupID) != ""
	})
}

func groupByID(cohort []Participant) [][]Participant {
	var (
		order   []string
		buckets = make(map[string][]Participant)
	)
	for _, p := range cohort {
		key := strings.TrimSpace(p.GroupID)
		if key == "" {
			key = UnassignedGroup
		}
		if _, seen := buckets[key]; !seen {
			order = append(order, key)
		}
		buckets[key] = append(buckets[key], p)
	}

	groups := make([][]Participant, 0, len(order))
	for _, key := range order {
		groups = append(groups, buckets[key])
	}
	return groups
}

// sortForBalance orders participants by region, then school, then gender
// using Korean collation, so schoolmates end up next to each other.
func sortForBalance(ps []Participant) {
	// Collators keep scratch buffers and are not safe for concurrent use.
	col := collate.New(language.Korean)
	slices.SortStableFunc(ps, func(a, b Participant) int {
		if c := col.CompareString(a.Region, b.Region); c != 0 {
			return c
		}
		if c := col.CompareString(a.School, b.School); c != 0 {
			return c
		}
		return col.CompareString(a.Gender, b.Gender)
	})
}

func chunk(ps []Participant, size int) [][]Participant {
	groups := make([][]Participant, 0, (len(ps)+size-1)/size)
	for start := 0; start < len(ps); start += size {
		end := min(start+size, len(ps))
		group := make([]Participant, end-start, size+2)
		copy(group, ps[start:end])
		groups = append(groups, group)
	}
	return groups
}

// redistributeTail dissolves a trailing group of at most targetSize/2 members
// by dealing its members round-robin onto the other groups. Groups that have
// reached the soft cap of targetSize+2 are skipped; if every group is capped
// while members remain, those members form one final group.
func redistributeTail(groups [][]Participant, targetSize int) [][]Participant {
	last := len(groups) - 1
	if len(groups) <= 1 || len(groups[last]) > targetSize/2 {
		return groups
	}

	tail := groups[last]
	groups = groups[:last]
	softCap := targetSize + 2

	next := 0
	for next < len(tail) {
		for i := range groups {
			if next >= len(tail) {
				break
			}
			if len(groups[i]) < softCap {
				groups[i] = append(groups[i], tail[next])
				next++
			}
		}
		if next < len(tail) && allCapped(groups, softCap) {
			overflow := slices.Clone(tail[next:])
			return append(groups, overflow)
		}
	}
	return groups
}

func allCapped(groups [][]Participant, softCap int) bool {
	for _, g := range groups {
		if len(g) < softCap {
			return false
		}
	}
	return true
}
