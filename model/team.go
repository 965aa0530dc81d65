package model

import "strings"

type SortMode string

const (
	SortBalanced SortMode = "balanced"
	SortRandom   SortMode = "random"
)

func ParseSortMode(s string) SortMode {
	if strings.ToLower(s) == "random" {
		return SortRandom
	}
	return SortBalanced
}

// Team is one side produced by a draw. Teams are ephemeral: they are computed
// fresh on every sort request and never persisted.
type Team struct {
	Name           string   `json:"name"`
	Players        []Player `json:"players"`
	AverageOverall int      `json:"averageOverall"`
}

// TeamDraw is the result of one sorter invocation. OverallDifference is the
// spread between the strongest and weakest non-empty team's average overall;
// it is advisory only, the presentation layer decides what counts as "fair".
type TeamDraw struct {
	Mode              SortMode `json:"mode"`
	Teams             []Team   `json:"teams"`
	OverallDifference int      `json:"overallDifference"`
}
