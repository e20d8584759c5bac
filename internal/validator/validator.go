package validator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/dmdaguan/pickleball/internal/config"
	"github.com/dmdaguan/pickleball/internal/excel"
	"github.com/dmdaguan/pickleball/internal/pairing"
	"github.com/dmdaguan/pickleball/internal/schedule"
)

// Violation represents a constraint violation found during validation.
type Violation struct {
	Row     int
	Type    string // "error" or "warning"
	Message string
}

// Validate reads a schedule workbook and checks it against the config.
// The workbook may have been hand-edited since generation; structural
// problems in individual cells are reported as violations rather than
// aborting the whole run.
func Validate(cfg *config.Config, path string) ([]Violation, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	rounds, violations, err := readRounds(f, cfg)
	if err != nil {
		return nil, fmt.Errorf("reading schedule: %w", err)
	}

	// Hard constraints
	violations = append(violations, checkRoundsDisjoint(rounds)...)
	violations = append(violations, checkCourtCapacity(cfg, rounds)...)
	violations = append(violations, checkPartnerships(cfg, rounds)...)

	// Soft constraints
	violations = append(violations, checkOpponentBalance(cfg, rounds)...)
	violations = append(violations, checkMatrixFreshness(cfg, f, rounds)...)

	return violations, nil
}

// parsedRound is one schedule row: the games that parsed cleanly plus
// the sheet row they came from.
type parsedRound struct {
	Row   int
	Games []pairing.Game
}

func readRounds(f *excelize.File, cfg *config.Config) ([]parsedRound, []Violation, error) {
	rows, err := f.GetRows(excel.ScheduleSheet)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s sheet: %w", excel.ScheduleSheet, err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("%s sheet is empty", excel.ScheduleSheet)
	}

	// Header row determines the court columns.
	var courtCols []int
	for i, h := range rows[0] {
		if strings.HasPrefix(h, "Court ") {
			courtCols = append(courtCols, i)
		}
	}
	if len(courtCols) == 0 {
		return nil, nil, fmt.Errorf("%s sheet has no court columns", excel.ScheduleSheet)
	}

	index := make(map[string]int)
	for i, name := range cfg.PlayerNames() {
		index[name] = i
	}

	var rounds []parsedRound
	var violations []Violation

	for ri, row := range rows[1:] {
		sheetRow := ri + 2
		round := parsedRound{Row: sheetRow}

		for _, col := range courtCols {
			if col >= len(row) || strings.TrimSpace(row[col]) == "" {
				continue
			}
			game, err := parseGameCell(row[col], index)
			if err != nil {
				violations = append(violations, Violation{
					Row:     sheetRow,
					Type:    "error",
					Message: fmt.Sprintf("row %d: %v", sheetRow, err),
				})
				continue
			}
			round.Games = append(round.Games, game)
		}

		if len(round.Games) > 0 {
			rounds = append(rounds, round)
		}
	}

	return rounds, violations, nil
}

// parseGameCell parses "A & B v C & D" back into a game.
func parseGameCell(cell string, index map[string]int) (pairing.Game, error) {
	sides := strings.Split(cell, " v ")
	if len(sides) != 2 {
		return pairing.Game{}, fmt.Errorf("malformed game cell %q", cell)
	}

	var pairs [2]pairing.Pair
	for i, side := range sides {
		members := strings.Split(side, " & ")
		if len(members) != 2 {
			return pairing.Game{}, fmt.Errorf("malformed side %q in game cell %q", side, cell)
		}
		a, ok := index[strings.TrimSpace(members[0])]
		if !ok {
			return pairing.Game{}, fmt.Errorf("unknown player %q", strings.TrimSpace(members[0]))
		}
		b, ok := index[strings.TrimSpace(members[1])]
		if !ok {
			return pairing.Game{}, fmt.Errorf("unknown player %q", strings.TrimSpace(members[1]))
		}
		if a == b {
			return pairing.Game{}, fmt.Errorf("player %q partners themself in %q", members[0], cell)
		}
		pairs[i] = pairing.NewPair(a, b)
	}

	return pairing.Game{Pairs: pairs}, nil
}

func allGames(rounds []parsedRound) []pairing.Game {
	var games []pairing.Game
	for _, r := range rounds {
		games = append(games, r.Games...)
	}
	return games
}

// checkRoundsDisjoint flags any player appearing twice in one round,
// which also covers games without four distinct players.
func checkRoundsDisjoint(rounds []parsedRound) []Violation {
	var violations []Violation
	for _, r := range rounds {
		seen := make(map[int]bool)
		for _, g := range r.Games {
			for _, p := range g.Players() {
				if seen[p] {
					violations = append(violations, Violation{
						Row:     r.Row,
						Type:    "error",
						Message: fmt.Sprintf("row %d: player %d appears twice in the round", r.Row, p),
					})
				}
				seen[p] = true
			}
		}
	}
	return violations
}

func checkCourtCapacity(cfg *config.Config, rounds []parsedRound) []Violation {
	var violations []Violation
	for _, r := range rounds {
		if len(r.Games) > cfg.Courts {
			violations = append(violations, Violation{
				Row:     r.Row,
				Type:    "error",
				Message: fmt.Sprintf("row %d: %d games but only %d courts", r.Row, len(r.Games), cfg.Courts),
			})
		}
	}
	return violations
}

// checkPartnerships verifies every partnership occurs at most once and
// that at most one possible pair never partners (the unavoidable
// leftover when the pair count is odd).
func checkPartnerships(cfg *config.Config, rounds []parsedRound) []Violation {
	var violations []Violation
	names := cfg.PlayerNames()

	count := make(map[pairing.Pair]int)
	for _, r := range rounds {
		for _, g := range r.Games {
			count[g.Pairs[0]]++
			count[g.Pairs[1]]++
		}
	}

	for p, c := range count {
		if c > 1 {
			violations = append(violations, Violation{
				Type: "error",
				Message: fmt.Sprintf("%s and %s partner %d times, max 1",
					names[p.Low], names[p.High], c),
			})
		}
	}

	pairs, err := pairing.AllPairs(cfg.Players)
	if err != nil {
		return violations
	}
	var missing []pairing.Pair
	for _, p := range pairs {
		if count[p] == 0 {
			missing = append(missing, p)
		}
	}
	allowed := 0
	if len(pairs)%2 == 1 {
		allowed = 1
	}
	if len(missing) > allowed {
		for _, p := range missing {
			violations = append(violations, Violation{
				Type: "error",
				Message: fmt.Sprintf("%s and %s never partner",
					names[p.Low], names[p.High]),
			})
		}
	}

	return violations
}

func checkOpponentBalance(cfg *config.Config, rounds []parsedRound) []Violation {
	var violations []Violation
	names := cfg.PlayerNames()
	optimal := cfg.Optimal()

	tally := schedule.Opponents(allGames(rounds))
	pairs, err := pairing.AllPairs(cfg.Players)
	if err != nil {
		return violations
	}

	for _, p := range pairs {
		if c := tally[p]; c != optimal {
			violations = append(violations, Violation{
				Type: "warning",
				Message: fmt.Sprintf("%s and %s meet %d times as opponents (target %d)",
					names[p.Low], names[p.High], c, optimal),
			})
		}
	}
	return violations
}

// checkMatrixFreshness compares the Opponents sheet against the counts
// implied by the schedule rows, catching hand edits that updated one
// but not the other. A missing matrix sheet is not a violation.
func checkMatrixFreshness(cfg *config.Config, f *excelize.File, rounds []parsedRound) []Violation {
	idx, err := f.GetSheetIndex(excel.OpponentsSheet)
	if err != nil || idx < 0 {
		return nil
	}

	var violations []Violation
	names := cfg.PlayerNames()
	tally := schedule.Opponents(allGames(rounds))

	for a := 0; a < cfg.Players; a++ {
		for b := a + 1; b < cfg.Players; b++ {
			cell, err := f.GetCellValue(excel.OpponentsSheet, cellRef(b+2, a+2))
			if err != nil {
				continue
			}
			got, err := strconv.Atoi(strings.TrimSpace(cell))
			if err != nil {
				continue
			}
			want := tally[pairing.NewPair(a, b)]
			if got != want {
				violations = append(violations, Violation{
					Type: "warning",
					Message: fmt.Sprintf("opponents matrix says %s and %s meet %d times but the schedule has %d",
						names[a], names[b], got, want),
				})
			}
		}
	}
	return violations
}

func cellRef(col, row int) string {
	result := ""
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return fmt.Sprintf("%s%d", result, row)
}
