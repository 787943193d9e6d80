package core

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

var (
	// ErrGroupNotFound is returned when a level or group index does not exist.
	ErrGroupNotFound = errors.New("group not found")

	// ErrMemberNotFound is returned when a moved member is not in its source group.
	ErrMemberNotFound = errors.New("member not found in group")

	// ErrGroupNotEmpty is returned when deleting a group that still has members.
	ErrGroupNotEmpty = errors.New("group is not empty")
)

// Grouping maps each education tier to its ordered groups.
type Grouping map[Level][][]Participant

// GroupRef addresses one group inside a Grouping.
type GroupRef struct {
	Level Level `json:"level"`
	Index int   `json:"index"`
}

func (r GroupRef) String() string {
	return fmt.Sprintf("%s#%d", r.Level, r.Index)
}

// NumberedGroup is a group with its roster-wide number (1-based).
type NumberedGroup struct {
	Number  int           `json:"number"`
	Ref     GroupRef      `json:"ref"`
	Members []Participant `json:"members"`
}

// SplitByLevel groups participants into cohorts, keeping input order inside
// each cohort.
func SplitByLevel(participants []Participant) map[Level][]Participant {
	cohorts := make(map[Level][]Participant)
	for _, p := range participants {
		lvl := cohortLevel(p)
		cohorts[lvl] = append(cohorts[lvl], p)
	}
	return cohorts
}

// BuildGrouping partitions every cohort of participants. The target size is
// validated for all balanced cohorts before any cohort is partitioned, so an
// invalid size yields no grouping at all.
func BuildGrouping(participants []Participant, targetSize int) (Grouping, error) {
	cohorts := SplitByLevel(participants)

	if targetSize < MinTargetSize {
		for _, cohort := range cohorts {
			if !hasGroupIDs(cohort) {
				return nil, fmt.Errorf("%w: %d (minimum %d)", ErrInvalidTargetSize, targetSize, MinTargetSize)
			}
		}
	}

	g := make(Grouping, len(cohorts))
	for lvl, cohort := range cohorts {
		groups, err := Partition(cohort, targetSize)
		if err != nil {
			return nil, fmt.Errorf("partition %s: %w", lvl, err)
		}
		g[lvl] = groups
	}
	return g, nil
}

// Levels returns the levels present in g in display order.
func (g Grouping) Levels() []Level {
	levels := slices.Collect(maps.Keys(g))
	slices.SortFunc(levels, compareLevels)
	return levels
}

// Count returns the number of participants across all groups.
func (g Grouping) Count() int {
	n := 0
	for _, groups := range g {
		for _, group := range groups {
			n += len(group)
		}
	}
	return n
}

// Numbered lists every group numbered continuously across levels in display
// order.
func (g Grouping) Numbered() []NumberedGroup {
	var out []NumberedGroup
	for _, lvl := range g.Levels() {
		for i, members := range g[lvl] {
			out = append(out, NumberedGroup{
				Number:  len(out) + 1,
				Ref:     GroupRef{Level: lvl, Index: i},
				Members: members,
			})
		}
	}
	return out
}

// Clone returns a deep copy of g.
func (g Grouping) Clone() Grouping {
	if g == nil {
		return nil
	}
	out := make(Grouping, len(g))
	for lvl, groups := range g {
		cp := make([][]Participant, len(groups))
		for i, group := range groups {
			cp[i] = slices.Clone(group)
			if cp[i] == nil {
				cp[i] = []Participant{}
			}
		}
		out[lvl] = cp
	}
	return out
}

func (g Grouping) group(ref GroupRef) ([]Participant, error) {
	groups, ok := g[ref.Level]
	if !ok || ref.Index < 0 || ref.Index >= len(groups) {
		return nil, fmt.Errorf("%w: %s", ErrGroupNotFound, ref)
	}
	return groups[ref.Index], nil
}

// Move moves the first member with memberID from one group to the end of
// another. Moving within the same group is a no-op. A member moved to another
// level takes that level.
func (g Grouping) Move(memberID string, from, to GroupRef) error {
	src, err := g.group(from)
	if err != nil {
		return err
	}
	if _, err := g.group(to); err != nil {
		return err
	}

	idx := slices.IndexFunc(src, func(p Participant) bool { return p.ID == memberID })
	if idx < 0 {
		return fmt.Errorf("%w: %q in %s", ErrMemberNotFound, memberID, from)
	}
	if from == to {
		return nil
	}

	member := src[idx]
	member.Level = to.Level
	g[from.Level][from.Index] = slices.Delete(src, idx, idx+1)
	g[to.Level][to.Index] = append(g[to.Level][to.Index], member)
	return nil
}

// AddGroup appends an empty group to level and returns its index.
func (g Grouping) AddGroup(level Level) int {
	g[level] = append(g[level], []Participant{})
	return len(g[level]) - 1
}

// DeleteGroup removes an empty group. Groups with members cannot be deleted,
// since their members would otherwise drop out of the grouping.
func (g Grouping) DeleteGroup(ref GroupRef) error {
	group, err := g.group(ref)
	if err != nil {
		return err
	}
	if len(group) > 0 {
		return fmt.Errorf("%w: %s has %d members", ErrGroupNotEmpty, ref, len(group))
	}
	g[ref.Level] = slices.Delete(g[ref.Level], ref.Index, ref.Index+1)
	return nil
}
