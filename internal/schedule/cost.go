package schedule

import (
	"math"

	"github.com/dmdaguan/pickleball/internal/pairing"
)

// Opponents tallies how many times each pair of players has stood on
// opposite sides of a game. Keys are canonical pairs, so the tally is
// symmetric by construction.
func Opponents(games []pairing.Game) map[pairing.Pair]int {
	tally := make(map[pairing.Pair]int)
	for _, g := range games {
		a, b := g.Pairs[0], g.Pairs[1]
		tally[pairing.NewPair(a.Low, b.Low)]++
		tally[pairing.NewPair(a.Low, b.High)]++
		tally[pairing.NewPair(a.High, b.Low)]++
		tally[pairing.NewPair(a.High, b.High)]++
	}
	return tally
}

// OpponentDifference scores how far the opponent distribution sits from
// every pair meeting exactly optimal times: the sum of |tally-optimal|³
// over all pairs. Cubing penalizes a badly skewed pair far more than
// several mildly skewed ones, which is what steers the search. Pairs
// absent from games still count, at |0-optimal|³ each. Zero means every
// pair meets exactly optimal times.
func OpponentDifference(games []pairing.Game, pairs []pairing.Pair, optimal int) float64 {
	tally := Opponents(games)

	total := 0.0
	for _, p := range pairs {
		d := math.Abs(float64(tally[p] - optimal))
		total += d * d * d
	}
	return total
}
