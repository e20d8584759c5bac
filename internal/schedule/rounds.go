package schedule

import (
	"github.com/dmdaguan/pickleball/internal/pairing"
)

// Round is the set of games played simultaneously, one per court.
type Round []pairing.Game

// Players returns the set of players appearing in the round.
func (r Round) Players() map[int]bool {
	players := make(map[int]bool, len(r)*4)
	for _, g := range r {
		for _, p := range g.Players() {
			players[p] = true
		}
	}
	return players
}

// Schedule is an ordered sequence of rounds covering the tournament.
type Schedule []Round

// Games returns the total number of games across all rounds.
func (s Schedule) Games() int {
	total := 0
	for _, r := range s {
		total += len(r)
	}
	return total
}

// Rounds packs games into rounds of at most courts games with pairwise
// disjoint player sets. Greedy first-fit: each round is built by a
// single forward scan of the remaining games, accepting a game when it
// fits, with no lookahead. Every input game lands in exactly one round;
// a round may be left short even when a better reordering would have
// filled it. The input slice is not modified.
func Rounds(games []pairing.Game, courts int) Schedule {
	remaining := make([]pairing.Game, len(games))
	copy(remaining, games)

	var sched Schedule
	for len(remaining) > 0 {
		var round Round
		busy := make(map[int]bool)
		var next []pairing.Game

		for _, g := range remaining {
			if len(round) < courts && !anyBusy(g, busy) {
				round = append(round, g)
				for _, p := range g.Players() {
					busy[p] = true
				}
			} else {
				next = append(next, g)
			}
		}

		sched = append(sched, round)
		remaining = next
	}
	return sched
}

func anyBusy(g pairing.Game, busy map[int]bool) bool {
	for _, p := range g.Players() {
		if busy[p] {
			return true
		}
	}
	return false
}
