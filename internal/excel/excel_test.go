package excel

import (
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/dmdaguan/pickleball/internal/config"
	"github.com/dmdaguan/pickleball/internal/schedule"
)

func testData(t *testing.T) (*config.Config, *schedule.Result) {
	t.Helper()
	cfg := &config.Config{
		Players:    8,
		Courts:     2,
		Iterations: 200,
		Seed:       1,
		Names:      []string{"Ann", "Bob", "Cam", "Dee", "Eli", "Fay", "Gus", "Hal"},
	}
	result, err := schedule.Generate(cfg.Players, cfg.Courts, cfg.Iterations, cfg.Seed, cfg.Optimal())
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	return cfg, result
}

func TestGenerateWorkbook(t *testing.T) {
	cfg, result := testData(t)

	f, err := Generate(cfg, result)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	t.Run("has Schedule sheet", func(t *testing.T) {
		idx, err := f.GetSheetIndex(ScheduleSheet)
		if err != nil {
			t.Fatalf("GetSheetIndex error: %v", err)
		}
		if idx < 0 {
			t.Error("Schedule sheet not found")
		}
	})

	t.Run("schedule sheet has headers", func(t *testing.T) {
		val, _ := f.GetCellValue(ScheduleSheet, "A1")
		if val != "Round" {
			t.Errorf("A1 = %q, want Round", val)
		}
		val, _ = f.GetCellValue(ScheduleSheet, "B1")
		if val != "Court 1" {
			t.Errorf("B1 = %q, want Court 1", val)
		}
		val, _ = f.GetCellValue(ScheduleSheet, "D1")
		if val != "Sitting Out" {
			t.Errorf("D1 = %q, want Sitting Out", val)
		}
	})

	t.Run("schedule sheet has one row per round", func(t *testing.T) {
		rows, _ := f.GetRows(ScheduleSheet)
		if len(rows) != len(result.Schedule)+1 {
			t.Errorf("%d rows, want %d rounds + header", len(rows), len(result.Schedule))
		}
	})

	t.Run("game cells use the roster", func(t *testing.T) {
		rows, _ := f.GetRows(ScheduleSheet)
		for _, row := range rows[1:] {
			if len(row) < 2 {
				continue
			}
			if !strings.Contains(row[1], " v ") || !strings.Contains(row[1], " & ") {
				t.Errorf("court cell %q is not in pair-v-pair form", row[1])
			}
		}
	})

	t.Run("has Opponents matrix", func(t *testing.T) {
		val, _ := f.GetCellValue(OpponentsSheet, "B1")
		if val != "Ann" {
			t.Errorf("Opponents B1 = %q, want Ann", val)
		}
		val, _ = f.GetCellValue(OpponentsSheet, "A2")
		if val != "Ann" {
			t.Errorf("Opponents A2 = %q, want Ann", val)
		}
		// Symmetry: (Ann, Bob) == (Bob, Ann)
		ab, _ := f.GetCellValue(OpponentsSheet, "C2")
		ba, _ := f.GetCellValue(OpponentsSheet, "B3")
		if ab != ba {
			t.Errorf("matrix not symmetric: C2=%q B3=%q", ab, ba)
		}
	})

	t.Run("has per-player sheets", func(t *testing.T) {
		for _, name := range cfg.Names {
			idx, err := f.GetSheetIndex(name)
			if err != nil {
				t.Fatalf("GetSheetIndex error: %v", err)
			}
			if idx < 0 {
				t.Errorf("sheet for %s not found", name)
			}
		}
	})

	t.Run("player sheet covers every round", func(t *testing.T) {
		rows, _ := f.GetRows("Ann")
		if len(rows) != len(result.Schedule)+1 {
			t.Errorf("Ann sheet has %d rows, want %d rounds + header", len(rows), len(result.Schedule))
		}
	})

	t.Run("default Sheet1 removed", func(t *testing.T) {
		idx, _ := f.GetSheetIndex("Sheet1")
		if idx >= 0 {
			t.Error("Sheet1 should be removed")
		}
	})
}

func TestWriteAndRead(t *testing.T) {
	cfg, result := testData(t)

	f, err := Generate(cfg, result)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	path := t.TempDir() + "/test.xlsx"
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs error: %v", err)
	}

	// Verify we can read it back
	f2, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile error: %v", err)
	}
	defer f2.Close()

	val, _ := f2.GetCellValue(ScheduleSheet, "A1")
	if val != "Round" {
		t.Errorf("re-read A1 = %q, want Round", val)
	}
}
