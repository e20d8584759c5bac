package excel

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/dmdaguan/pickleball/internal/config"
	"github.com/dmdaguan/pickleball/internal/pairing"
	"github.com/dmdaguan/pickleball/internal/schedule"
)

// ScheduleSheet is the name of the master round-by-round sheet.
const ScheduleSheet = "Schedule"

// OpponentsSheet is the name of the opponent-count matrix sheet.
const OpponentsSheet = "Opponents"

// Generate creates an Excel workbook with the master schedule, the
// opponent-count matrix, and per-player sheets.
func Generate(cfg *config.Config, result *schedule.Result) (*excelize.File, error) {
	f := excelize.NewFile()

	// Set default font for the workbook
	f.SetDefaultFont("Arial")

	names := cfg.PlayerNames()

	if err := writeScheduleSheet(f, cfg, result, names); err != nil {
		return nil, fmt.Errorf("writing schedule sheet: %w", err)
	}

	if err := writeOpponentsSheet(f, result, names); err != nil {
		return nil, fmt.Errorf("writing opponents sheet: %w", err)
	}

	if err := writePlayerSheets(f, result, names); err != nil {
		return nil, fmt.Errorf("writing player sheets: %w", err)
	}

	f.DeleteSheet("Sheet1")
	return f, nil
}

// GameCell formats a game the way it appears in a schedule cell.
func GameCell(g pairing.Game, names []string) string {
	return fmt.Sprintf("%s & %s v %s & %s",
		names[g.Pairs[0].Low], names[g.Pairs[0].High],
		names[g.Pairs[1].Low], names[g.Pairs[1].High])
}

func headerStyle(f *excelize.File) int {
	style, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 16, Family: "Arial"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#4472C4"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	return style
}

func cellStyle(f *excelize.File) int {
	style, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 16, Family: "Arial"},
	})
	return style
}

func writeScheduleSheet(f *excelize.File, cfg *config.Config, result *schedule.Result, names []string) error {
	sheet := ScheduleSheet
	f.NewSheet(sheet)

	headers := []string{"Round"}
	for c := 1; c <= cfg.Courts; c++ {
		headers = append(headers, fmt.Sprintf("Court %d", c))
	}
	headers = append(headers, "Sitting Out")
	for i, h := range headers {
		f.SetCellValue(sheet, cellRef(i+1, 1), h)
	}

	hs := headerStyle(f)
	if hs != 0 {
		for i := range headers {
			f.SetCellStyle(sheet, cellRef(i+1, 1), cellRef(i+1, 1), hs)
		}
	}
	cs := cellStyle(f)

	for ri, round := range result.Schedule {
		row := ri + 2
		f.SetCellValue(sheet, cellRef(1, row), ri+1)

		for ci, game := range round {
			f.SetCellValue(sheet, cellRef(ci+2, row), GameCell(game, names))
		}

		playing := round.Players()
		var idle []string
		for p := 0; p < result.Players; p++ {
			if !playing[p] {
				idle = append(idle, names[p])
			}
		}
		f.SetCellValue(sheet, cellRef(len(headers), row), strings.Join(idle, ", "))

		if cs != 0 {
			for col := 1; col <= len(headers); col++ {
				f.SetCellStyle(sheet, cellRef(col, row), cellRef(col, row), cs)
			}
		}
	}

	// Set column widths (sized for Arial 16)
	f.SetColWidth(sheet, "A", "A", 10)
	for c := 0; c < cfg.Courts; c++ {
		col := colLetter(c + 2)
		f.SetColWidth(sheet, col, col, 36)
	}
	idleCol := colLetter(cfg.Courts + 2)
	f.SetColWidth(sheet, idleCol, idleCol, 28)

	return nil
}

func writeOpponentsSheet(f *excelize.File, result *schedule.Result, names []string) error {
	sheet := OpponentsSheet
	f.NewSheet(sheet)

	hs := headerStyle(f)
	for p := 0; p < result.Players; p++ {
		f.SetCellValue(sheet, cellRef(p+2, 1), names[p])
		f.SetCellValue(sheet, cellRef(1, p+2), names[p])
		if hs != 0 {
			f.SetCellStyle(sheet, cellRef(p+2, 1), cellRef(p+2, 1), hs)
			f.SetCellStyle(sheet, cellRef(1, p+2), cellRef(1, p+2), hs)
		}
	}

	for a := 0; a < result.Players; a++ {
		for b := 0; b < result.Players; b++ {
			if a == b {
				continue
			}
			count := result.Tally[pairing.NewPair(a, b)]
			f.SetCellValue(sheet, cellRef(b+2, a+2), count)
		}
	}

	f.SetColWidth(sheet, "A", "A", 16)
	for p := 0; p < result.Players; p++ {
		col := colLetter(p + 2)
		f.SetColWidth(sheet, col, col, 12)
	}

	return nil
}

func writePlayerSheets(f *excelize.File, result *schedule.Result, names []string) error {
	for p := 0; p < result.Players; p++ {
		sheet := names[p]
		f.NewSheet(sheet)

		headers := []string{"Round", "Court", "Partner", "Opponents"}
		for i, h := range headers {
			f.SetCellValue(sheet, cellRef(i+1, 1), h)
		}
		hs := headerStyle(f)
		if hs != 0 {
			for i := range headers {
				f.SetCellStyle(sheet, cellRef(i+1, 1), cellRef(i+1, 1), hs)
			}
		}
		cs := cellStyle(f)

		for ri, round := range result.Schedule {
			row := ri + 2
			f.SetCellValue(sheet, cellRef(1, row), ri+1)

			placed := false
			for ci, game := range round {
				mine := -1
				for side, pr := range game.Pairs {
					if pr.Has(p) {
						mine = side
					}
				}
				if mine < 0 {
					continue
				}

				partner := game.Pairs[mine].Low
				if partner == p {
					partner = game.Pairs[mine].High
				}
				other := game.Pairs[1-mine]

				f.SetCellValue(sheet, cellRef(2, row), ci+1)
				f.SetCellValue(sheet, cellRef(3, row), names[partner])
				f.SetCellValue(sheet, cellRef(4, row),
					fmt.Sprintf("%s & %s", names[other.Low], names[other.High]))
				placed = true
				break
			}
			if !placed {
				f.SetCellValue(sheet, cellRef(3, row), "bye")
			}

			if cs != 0 {
				for col := 1; col <= len(headers); col++ {
					f.SetCellStyle(sheet, cellRef(col, row), cellRef(col, row), cs)
				}
			}
		}

		widths := map[string]float64{"A": 10, "B": 10, "C": 16, "D": 28}
		keys := make([]string, 0, len(widths))
		for col := range widths {
			keys = append(keys, col)
		}
		sort.Strings(keys)
		for _, col := range keys {
			f.SetColWidth(sheet, col, col, widths[col])
		}
	}

	return nil
}

func cellRef(col, row int) string {
	return fmt.Sprintf("%s%d", colLetter(col), row)
}

func colLetter(col int) string {
	result := ""
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}
