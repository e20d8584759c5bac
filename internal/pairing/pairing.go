package pairing

import (
	"errors"
	"fmt"
)

// Pair is an unordered pair of players who partner for one game.
// Players are integer identifiers in [0, P). The pair is stored as
// (Low, High) so equal pairs compare equal however they were built.
type Pair struct {
	Low  int
	High int
}

// NewPair returns the canonical form of the pair {a, b}.
func NewPair(a, b int) Pair {
	if a > b {
		a, b = b, a
	}
	return Pair{Low: a, High: b}
}

// Has reports whether player is a member of the pair.
func (p Pair) Has(player int) bool {
	return p.Low == player || p.High == player
}

// Overlaps reports whether the two pairs share a player.
func (p Pair) Overlaps(q Pair) bool {
	return p.Has(q.Low) || p.Has(q.High)
}

func (p Pair) String() string {
	return fmt.Sprintf("%d & %d", p.Low, p.High)
}

// Game is two pairs competing against each other. A well-formed game
// has four distinct players.
type Game struct {
	Pairs [2]Pair
}

// Valid reports whether the game's four players are all distinct.
func (g Game) Valid() bool {
	return !g.Pairs[0].Overlaps(g.Pairs[1])
}

// Players returns the four players of the game.
func (g Game) Players() [4]int {
	return [4]int{g.Pairs[0].Low, g.Pairs[0].High, g.Pairs[1].Low, g.Pairs[1].High}
}

func (g Game) String() string {
	return fmt.Sprintf("%s v %s", g.Pairs[0], g.Pairs[1])
}

// AllPairs enumerates every unordered pair of players in lexicographic
// order: (0,1), (0,2), ..., (players-2, players-1).
func AllPairs(players int) ([]Pair, error) {
	if players < 2 {
		return nil, fmt.Errorf("need at least 2 players to form a pair, got %d", players)
	}

	pairs := make([]Pair, 0, players*(players-1)/2)
	for i := 0; i < players; i++ {
		for j := i + 1; j < players; j++ {
			pairs = append(pairs, Pair{Low: i, High: j})
		}
	}
	return pairs, nil
}

// ErrNoMatching is returned by MakeGames when the backtracking search
// exhausts every branch without pairing off the input.
var ErrNoMatching = errors.New("pairs cannot be matched into games")

// MakeGames partitions pairs into games of two player-disjoint pairs.
// The input order determines which matching is found: the first
// remaining pair anchors each game and candidates are tried in list
// order, backtracking on dead ends. When the input has an odd number
// of pairs, exactly one leftover pair is dropped; its two players
// simply never partner. Fewer than two remaining pairs is success,
// not failure: only exhausting every branch yields ErrNoMatching.
func MakeGames(pairs []Pair) ([]Game, error) {
	games, ok := match(pairs)
	if !ok {
		return nil, ErrNoMatching
	}
	return games, nil
}

// match is the backtracking core. The boolean distinguishes a genuine
// dead end from the trivial base case so the two are never conflated.
func match(pairs []Pair) ([]Game, bool) {
	if len(pairs) < 2 {
		return nil, true
	}

	anchor := pairs[0]
	rest := pairs[1:]

	for i, candidate := range rest {
		if anchor.Overlaps(candidate) {
			continue
		}

		remaining := make([]Pair, 0, len(rest)-1)
		remaining = append(remaining, rest[:i]...)
		remaining = append(remaining, rest[i+1:]...)

		if games, ok := match(remaining); ok {
			result := make([]Game, 0, len(games)+1)
			result = append(result, Game{Pairs: [2]Pair{anchor, candidate}})
			result = append(result, games...)
			return result, true
		}
	}

	return nil, false
}
