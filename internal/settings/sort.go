package settings

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidSortToken = errors.New("invalid world sort")

// WorldSort is the order worlds are listed in the navigator. The orders form
// a cycle: Next and Previous wrap around.
type WorldSort int

const (
	SortNameAToZ WorldSort = iota
	SortNameZToA
	SortProjectAToZ
	SortProjectZToA
	SortStatusNotStarted
	SortStatusFinished
	SortNewestFirst
	SortOldestFirst

	numWorldSorts = iota
)

var sortTokens = [numWorldSorts]string{
	SortNameAToZ:         "NAME_A_TO_Z",
	SortNameZToA:         "NAME_Z_TO_A",
	SortProjectAToZ:      "PROJECT_A_TO_Z",
	SortProjectZToA:      "PROJECT_Z_TO_A",
	SortStatusNotStarted: "STATUS_NOT_STARTED",
	SortStatusFinished:   "STATUS_FINISHED",
	SortNewestFirst:      "NEWEST_FIRST",
	SortOldestFirst:      "OLDEST_FIRST",
}

// WorldSorts returns every order in cycle order.
func WorldSorts() []WorldSort {
	out := make([]WorldSort, numWorldSorts)
	for i := range out {
		out[i] = WorldSort(i)
	}
	return out
}

func (s WorldSort) valid() bool {
	return s >= 0 && s < numWorldSorts
}

func (s WorldSort) String() string {
	if !s.valid() {
		return sortTokens[SortNameAToZ]
	}
	return sortTokens[s]
}

func (s WorldSort) Next() WorldSort {
	if !s.valid() {
		s = SortNameAToZ
	}
	return (s + 1) % numWorldSorts
}

func (s WorldSort) Previous() WorldSort {
	if !s.valid() {
		s = SortNameAToZ
	}
	return (s + numWorldSorts - 1) % numWorldSorts
}

// ParseWorldSort matches a token case-insensitively. Unknown tokens return
// SortNameAToZ alongside ErrInvalidSortToken.
func ParseWorldSort(str string) (WorldSort, error) {
	for i, tok := range sortTokens {
		if strings.EqualFold(tok, strings.TrimSpace(str)) {
			return WorldSort(i), nil
		}
	}
	return SortNameAToZ, fmt.Errorf("%w: %q", ErrInvalidSortToken, str)
}

func (s WorldSort) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText never fails; unknown tokens fall back to SortNameAToZ.
func (s *WorldSort) UnmarshalText(text []byte) error {
	*s, _ = ParseWorldSort(string(text))
	return nil
}
