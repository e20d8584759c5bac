package schedule

import (
	"fmt"
	"math/rand"

	"github.com/dmdaguan/pickleball/internal/pairing"
)

// DefaultOptimal is the target number of times each pair of players
// should meet as opponents across the schedule.
const DefaultOptimal = 2

// PlayerMetrics holds per-player schedule statistics.
type PlayerMetrics struct {
	Games    int
	Byes     int // rounds sat out
	Partners int // distinct partners
}

// Result is the output of the scheduling pipeline.
type Result struct {
	Schedule      Schedule
	Games         []pairing.Game
	Players       int
	Courts        int
	InitialCost   float64
	Cost          float64
	InitialRounds int
	Tally         map[pairing.Pair]int
	Dropped       *pairing.Pair // the unmatched pair when C(P,2) is odd
	PlayerMetrics map[int]*PlayerMetrics
	Warnings      []string
}

// sideCombos are the four ways a trial swap can pick one pair from each
// of two games: (first,first), (second,second), (first,second),
// (second,first).
var sideCombos = [4][2]int{{0, 0}, {1, 1}, {0, 1}, {1, 0}}

// Generate builds a doubles round-robin schedule for players on courts
// and spends iterations trials of hillclimbing on it. Each trial swaps
// one pair between two randomly chosen games and keeps the swap only
// when it worsens neither the opponent-balance cost nor the round
// count, and both touched games still hold four distinct players. All
// randomness comes from a single stream seeded with seed, so identical
// inputs reproduce the identical schedule.
func Generate(players, courts, iterations int, seed int64, optimal int) (*Result, error) {
	if players < 4 {
		return nil, fmt.Errorf("need at least 4 players to form a game, got %d", players)
	}
	if courts < 1 {
		return nil, fmt.Errorf("need at least 1 court, got %d", courts)
	}
	if iterations < 0 {
		return nil, fmt.Errorf("iterations must not be negative, got %d", iterations)
	}

	pairs, err := pairing.AllPairs(players)
	if err != nil {
		return nil, err
	}
	games, err := pairing.MakeGames(pairs)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(seed))

	diff := OpponentDifference(games, pairs, optimal)
	sched := Rounds(games, courts)

	result := &Result{
		Players:       players,
		Courts:        courts,
		InitialCost:   diff,
		InitialRounds: len(sched),
	}

	for trial := 0; trial < iterations && len(games) >= 2; trial++ {
		// Draw order is fixed: game i, game j, side combination.
		i := rng.Intn(len(games))
		j := rng.Intn(len(games) - 1)
		if j >= i {
			j++
		}
		combo := sideCombos[rng.Intn(len(sideCombos))]
		a, b := combo[0], combo[1]

		games[i].Pairs[a], games[j].Pairs[b] = games[j].Pairs[b], games[i].Pairs[a]

		accepted := false
		if games[i].Valid() && games[j].Valid() {
			if diff2 := OpponentDifference(games, pairs, optimal); diff2 <= diff {
				if candidate := Rounds(games, courts); len(candidate) <= len(sched) {
					sched = candidate
					diff = diff2
					accepted = true
				}
			}
		}
		if !accepted {
			games[i].Pairs[a], games[j].Pairs[b] = games[j].Pairs[b], games[i].Pairs[a]
		}
	}

	result.Schedule = sched
	result.Games = games
	result.Cost = diff
	result.Tally = Opponents(games)
	result.Dropped = droppedPair(pairs, games)
	result.Warnings, result.PlayerMetrics = buildMetrics(result, pairs, optimal)
	return result, nil
}

// droppedPair returns the pair that never partners, if any. Swaps only
// move partnerships between games, so the leftover from the initial
// matching is still the leftover after optimization.
func droppedPair(pairs []pairing.Pair, games []pairing.Game) *pairing.Pair {
	used := make(map[pairing.Pair]bool, len(games)*2)
	for _, g := range games {
		used[g.Pairs[0]] = true
		used[g.Pairs[1]] = true
	}
	for _, p := range pairs {
		if !used[p] {
			dropped := p
			return &dropped
		}
	}
	return nil
}

func buildMetrics(r *Result, pairs []pairing.Pair, optimal int) ([]string, map[int]*PlayerMetrics) {
	var warnings []string
	metrics := make(map[int]*PlayerMetrics, r.Players)

	partners := make(map[int]map[int]bool)
	for p := 0; p < r.Players; p++ {
		metrics[p] = &PlayerMetrics{}
		partners[p] = make(map[int]bool)
	}

	for _, g := range r.Games {
		for _, p := range g.Players() {
			metrics[p].Games++
		}
		for _, pr := range g.Pairs {
			partners[pr.Low][pr.High] = true
			partners[pr.High][pr.Low] = true
		}
	}
	for p := 0; p < r.Players; p++ {
		metrics[p].Partners = len(partners[p])
	}

	for _, round := range r.Schedule {
		playing := round.Players()
		for p := 0; p < r.Players; p++ {
			if !playing[p] {
				metrics[p].Byes++
			}
		}
	}

	if r.Dropped != nil {
		warnings = append(warnings, fmt.Sprintf(
			"players %d and %d never partner and play one fewer game than the rest",
			r.Dropped.Low, r.Dropped.High))
	}

	for _, p := range pairs {
		if count := r.Tally[p]; count != optimal {
			warnings = append(warnings, fmt.Sprintf(
				"players %d and %d meet %d times as opponents (target %d)",
				p.Low, p.High, count, optimal))
		}
	}

	return warnings, metrics
}
