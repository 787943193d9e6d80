package core

import (
	"errors"
	"slices"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// roster builds n participants of one cohort with ids "1".."n".
func roster(n int) []Participant {
	ps := make([]Participant, n)
	for i := range ps {
		ps[i] = Participant{
			ID:     strconv.Itoa(i + 1),
			Name:   "참가자" + strconv.Itoa(i+1),
			Gender: GenderMale,
			School: "서울중학교",
			Level:  LevelMiddle,
			Region: "서울",
		}
	}
	return ps
}

func sizes(groups [][]Participant) []int {
	out := make([]int, len(groups))
	for i, g := range groups {
		out[i] = len(g)
	}
	return out
}

func ids(groups [][]Participant) []string {
	var out []string
	for _, g := range groups {
		for _, p := range g {
			out = append(out, p.ID)
		}
	}
	return out
}

func TestPartition_Sizes(t *testing.T) {
	tests := []struct {
		name       string
		n          int
		targetSize int
		want       []int
	}{
		{"exact multiple", 8, 4, []int{4, 4}},
		{"small tail is redistributed", 9, 4, []int{5, 4}},
		{"tail at threshold is redistributed", 10, 4, []int{5, 5}},
		{"tail above threshold is kept", 11, 4, []int{4, 4, 3}},
		{"single short group", 3, 4, []int{3}},
		{"single member", 1, 2, []int{1}},
		{"pairs", 5, 2, []int{3, 2}},
		{"tail fills several groups", 22, 6, []int{6, 6, 6, 4}},
		{"tail spread evenly", 14, 6, []int{7, 7}},
		{"soft cap overflows into final group", 12, 8, []int{10, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			groups, err := Partition(roster(tt.n), tt.targetSize)
			if err != nil {
				t.Fatalf("Partition() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, sizes(groups)); diff != "" {
				t.Errorf("group sizes mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPartition_TailGoesRoundRobin(t *testing.T) {
	groups, err := Partition(roster(9), 4)
	if err != nil {
		t.Fatalf("Partition() error = %v", err)
	}

	want := [][]string{{"1", "2", "3", "4", "9"}, {"5", "6", "7", "8"}}
	got := make([][]string, len(groups))
	for i, g := range groups {
		for _, p := range g {
			got[i] = append(got[i], p.ID)
		}
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("groups mismatch (-want +got):\n%s", diff)
	}
}

func TestPartition_EveryMemberOnce(t *testing.T) {
	for n := 0; n <= 40; n++ {
		for size := MinTargetSize; size <= 9; size++ {
			groups, err := Partition(roster(n), size)
			if err != nil {
				t.Fatalf("Partition(%d, %d) error = %v", n, size, err)
			}

			got := ids(groups)
			slices.SortFunc(got, func(a, b string) int {
				x, _ := strconv.Atoi(a)
				y, _ := strconv.Atoi(b)
				return x - y
			})
			want := ids([][]Participant{roster(n)})
			if !slices.Equal(got, want) {
				t.Fatalf("Partition(%d, %d) members = %v, want %v", n, size, got, want)
			}

			for i, g := range groups {
				if len(g) == 0 {
					t.Fatalf("Partition(%d, %d) produced empty group %d", n, size, i)
				}
			}
		}
	}
}

func TestPartition_SortsByRegionSchoolGender(t *testing.T) {
	cohort := []Participant{
		{ID: "1", Region: "서울", School: "나중학교", Gender: GenderMale},
		{ID: "2", Region: "부산", School: "가중학교", Gender: GenderMale},
		{ID: "3", Region: "서울", School: "가중학교", Gender: GenderMale},
		{ID: "4", Region: "서울", School: "가중학교", Gender: GenderFemale},
		{ID: "5", Region: "부산", School: "가중학교", Gender: GenderFemale},
		{ID: "6", Region: "대전", School: "다중학교", Gender: GenderMale},
	}

	groups, err := Partition(cohort, 2)
	if err != nil {
		t.Fatalf("Partition() error = %v", err)
	}

	// Hangul collation: 대전 < 부산 < 서울, 남 < 여.
	want := []string{"6", "2", "5", "3", "4", "1"}
	if diff := cmp.Diff(want, ids(groups)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestPartition_DoesNotModifyInput(t *testing.T) {
	cohort := []Participant{
		{ID: "1", Region: "서울"},
		{ID: "2", Region: "부산"},
		{ID: "3", Region: "대구"},
	}
	before := slices.Clone(cohort)

	if _, err := Partition(cohort, 2); err != nil {
		t.Fatalf("Partition() error = %v", err)
	}
	if diff := cmp.Diff(before, cohort); diff != "" {
		t.Errorf("input modified (-before +after):\n%s", diff)
	}
}

func TestPartition_GroupIDs(t *testing.T) {
	cohort := []Participant{
		{ID: "1", GroupID: "2"},
		{ID: "2", GroupID: "1"},
		{ID: "3"},
		{ID: "4", GroupID: " 2 "},
		{ID: "5", GroupID: "  "},
	}

	// Target size is ignored when group ids are present.
	groups, err := Partition(cohort, 0)
	if err != nil {
		t.Fatalf("Partition() error = %v", err)
	}

	want := [][]string{{"1", "4"}, {"2"}, {"3", "5"}}
	got := make([][]string, len(groups))
	for i, g := range groups {
		for _, p := range g {
			got[i] = append(got[i], p.ID)
		}
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("groups mismatch (-want +got):\n%s", diff)
	}
}

func TestPartition_InvalidTargetSize(t *testing.T) {
	for _, size := range []int{1, 0, -3} {
		_, err := Partition(roster(5), size)
		if !errors.Is(err, ErrInvalidTargetSize) {
			t.Errorf("Partition(size=%d) error = %v, want ErrInvalidTargetSize", size, err)
		}
	}
}

func TestPartition_EmptyCohort(t *testing.T) {
	groups, err := Partition(nil, 4)
	if err != nil {
		t.Fatalf("Partition() error = %v", err)
	}
	if groups == nil || len(groups) != 0 {
		t.Errorf("Partition(nil) = %#v, want empty non-nil", groups)
	}
}
