package core

import "slices"

// Level is an education tier. Parsed rosters only produce the five constants
// below, but reviewers may type anything, so it stays an open string type.
type Level string

const (
	LevelElementary Level = "초등"
	LevelMiddle     Level = "중등"
	LevelHigh       Level = "고등"
	LevelCollege    Level = "대학"
	LevelOther      Level = "기타"
)

// LevelOrder is the fixed tier order used for display, numbering and export.
var LevelOrder = []Level{LevelElementary, LevelMiddle, LevelHigh, LevelCollege, LevelOther}

const (
	GenderMale    = "남"
	GenderFemale  = "여"
	GenderUnknown = "기타"
)

const (
	// Unclassified fills school and region when the line does not carry them.
	Unclassified = "미분류"

	// UnassignedGroup collects participants without a group id when a cohort
	// is grouped by pre-assigned ids.
	UnassignedGroup = "미지정"

	placeholderNamePrefix = "참가자-"
)

// Participant is one parsed roster line.
type Participant struct {
	ID      string `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Gender  string `json:"gender" yaml:"gender"`
	School  string `json:"school" yaml:"school"`
	Level   Level  `json:"level" yaml:"level"`
	Region  string `json:"region" yaml:"region"`
	GroupID string `json:"groupId,omitempty" yaml:"groupId,omitempty"`
}

// levelRank returns the position of l in LevelOrder, or len(LevelOrder) for
// levels typed in by hand.
func levelRank(l Level) int {
	if i := slices.Index(LevelOrder, l); i >= 0 {
		return i
	}
	return len(LevelOrder)
}

// compareLevels orders known tiers by LevelOrder and everything else after
// them, alphabetically.
func compareLevels(a, b Level) int {
	ra, rb := levelRank(a), levelRank(b)
	if ra != rb {
		return ra - rb
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// cohortLevel maps a blank level to LevelOther.
func cohortLevel(p Participant) Level {
	if p.Level == "" {
		return LevelOther
	}
	return p.Level
}
