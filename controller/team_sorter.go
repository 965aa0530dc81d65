package controller

import (
	"context"
	"math"
	"math/rand"
	"sort"
	"strconv"

	"github.com/fabianojp06/pelada-hero/model"
)

// sizePenalty is added to a team's running overall sum once per player it
// already holds when picking the next destination. Without it the raw sums
// alone would keep feeding the smallest-sum team even when headcounts are
// already uneven.
const sizePenalty = 5

var teamNames = []string{"Team A", "Team B", "Team C", "Team D", "Team E"}

// SortTeams loads the confirmed roster and partitions it. The result is
// ephemeral: nothing is written back, a new request recomputes from scratch.
func (c *controller) SortTeams(ctx context.Context, matchID string, mode model.SortMode) (*model.TeamDraw, error) {
	m, err := c.db.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	players, err := c.db.ListConfirmedPlayers(ctx, matchID)
	if err != nil {
		return nil, err
	}

	return drawTeams(players, m.PlayersPerSide, mode), nil
}

// drawTeams is a total function: any roster, including empty or single-player
// ones, produces a complete partition. Every input player lands in exactly one
// team and no team exceeds playersPerSide.
func drawTeams(players []model.Player, playersPerSide int, mode model.SortMode) *model.TeamDraw {
	if playersPerSide < 1 {
		playersPerSide = 1
	}

	n := numTeams(len(players), playersPerSide)

	var teams []model.Team
	if mode == model.SortRandom {
		teams = sortRandom(players, playersPerSide, n)
	} else {
		teams = sortBalanced(players, playersPerSide, n)
	}

	return &model.TeamDraw{
		Mode:              mode,
		Teams:             teams,
		OverallDifference: overallDifference(teams),
	}
}

// numTeams keeps small rosters on two sides: extra teams only appear once the
// roster exceeds double the per-side count, so a short turnout is never
// fragmented into several half-empty teams.
func numTeams(playerCount, playersPerSide int) int {
	if playerCount <= playersPerSide*2 {
		return 2
	}
	return (playerCount + playersPerSide - 1) / playersPerSide
}

// sortBalanced is a greedy pass over the roster in descending overall order:
// each player goes to the open team with the lowest penalized sum. O(n*teams),
// a heuristic rather than an optimal partition, but deterministic and good
// enough that the strongest players spread out first.
func sortBalanced(players []model.Player, playersPerSide, n int) []model.Team {
	sorted := make([]model.Player, len(players))
	copy(sorted, players)
	// Stable: players with equal overall keep their roster order.
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Overall > sorted[j].Overall
	})

	groups := make([][]model.Player, n)
	sums := make([]int, n)

	for _, p := range sorted {
		best := -1
		for i := 0; i < n; i++ {
			if len(groups[i]) >= playersPerSide {
				continue
			}
			if best == -1 || sums[i]+len(groups[i])*sizePenalty < sums[best]+len(groups[best])*sizePenalty {
				best = i
			}
		}
		if best == -1 {
			// Roster larger than total capacity has no valid assignment under
			// the cap; numTeams prevents this, the guard is for callers that
			// bypass drawTeams.
			break
		}
		groups[best] = append(groups[best], p)
		sums[best] += p.Overall
	}

	return buildTeams(groups)
}

// sortRandom shuffles uniformly (Fisher-Yates via rand.Shuffle, not a random
// comparator) and deals round-robin. A full round-robin slot spills the player
// into the first team with room, so nobody gets dropped.
func sortRandom(players []model.Player, playersPerSide, n int) []model.Team {
	shuffled := make([]model.Player, len(players))
	copy(shuffled, players)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	groups := make([][]model.Player, n)
	for idx, p := range shuffled {
		i := idx % n
		if len(groups[i]) >= playersPerSide {
			for j := 0; j < n; j++ {
				if len(groups[j]) < playersPerSide {
					i = j
					break
				}
			}
			if len(groups[i]) >= playersPerSide {
				break
			}
		}
		groups[i] = append(groups[i], p)
	}

	return buildTeams(groups)
}

func buildTeams(groups [][]model.Player) []model.Team {
	teams := make([]model.Team, len(groups))
	for i, g := range groups {
		teams[i] = model.Team{
			Name:           teamName(i),
			Players:        g,
			AverageOverall: averageOverall(g),
		}
	}
	return teams
}

func teamName(i int) string {
	if i < len(teamNames) {
		return teamNames[i]
	}
	return "Team " + strconv.Itoa(i+1)
}

func averageOverall(players []model.Player) int {
	if len(players) == 0 {
		return 0
	}
	sum := 0
	for _, p := range players {
		sum += p.Overall
	}
	return int(math.Round(float64(sum) / float64(len(players))))
}

// overallDifference is the advisory balance signal: the spread between the
// strongest and weakest non-empty team's average.
func overallDifference(teams []model.Team) int {
	min, max := 0, 0
	seen := false
	for _, t := range teams {
		if len(t.Players) == 0 {
			continue
		}
		if !seen {
			min, max = t.AverageOverall, t.AverageOverall
			seen = true
			continue
		}
		if t.AverageOverall < min {
			min = t.AverageOverall
		}
		if t.AverageOverall > max {
			max = t.AverageOverall
		}
	}
	return max - min
}
