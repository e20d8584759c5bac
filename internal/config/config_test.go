package config

import (
	"strings"
	"testing"
)

const testConfigYAML = `
players: 8
courts: 2
iterations: 5000
seed: 42
optimal_meetings: 2
names: [Ann, Bob, Cam, Dee, Eli, Fay, Gus, Hal]
`

func TestLoadFromBytes(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(testConfigYAML))
	if err != nil {
		t.Fatalf("LoadFromBytes error: %v", err)
	}

	t.Run("fields parsed", func(t *testing.T) {
		if cfg.Players != 8 {
			t.Errorf("Players = %d, want 8", cfg.Players)
		}
		if cfg.Courts != 2 {
			t.Errorf("Courts = %d, want 2", cfg.Courts)
		}
		if cfg.Iterations != 5000 {
			t.Errorf("Iterations = %d, want 5000", cfg.Iterations)
		}
		if cfg.Seed != 42 {
			t.Errorf("Seed = %d, want 42", cfg.Seed)
		}
		if cfg.Optimal() != 2 {
			t.Errorf("Optimal() = %d, want 2", cfg.Optimal())
		}
	})

	t.Run("roster names used", func(t *testing.T) {
		names := cfg.PlayerNames()
		if len(names) != 8 {
			t.Fatalf("got %d names, want 8", len(names))
		}
		if names[0] != "Ann" || names[7] != "Hal" {
			t.Errorf("names = %v", names)
		}
	})
}

func TestDefaults(t *testing.T) {
	cfg, err := LoadFromBytes([]byte("players: 12\ncourts: 3\niterations: 100\n"))
	if err != nil {
		t.Fatalf("LoadFromBytes error: %v", err)
	}

	t.Run("optimal meetings default to 2", func(t *testing.T) {
		if cfg.Optimal() != 2 {
			t.Errorf("Optimal() = %d, want 2", cfg.Optimal())
		}
	})

	t.Run("generated player names", func(t *testing.T) {
		names := cfg.PlayerNames()
		if len(names) != 12 {
			t.Fatalf("got %d names, want 12", len(names))
		}
		if names[0] != "Player 1" || names[11] != "Player 12" {
			t.Errorf("names = %v", names)
		}
	})
}

func TestValidation(t *testing.T) {
	cases := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "too few players",
			yaml:    "players: 3\ncourts: 1\n",
			wantErr: "players must be at least 4",
		},
		{
			name:    "no courts",
			yaml:    "players: 8\ncourts: 0\n",
			wantErr: "courts must be at least 1",
		},
		{
			name:    "negative iterations",
			yaml:    "players: 8\ncourts: 2\niterations: -5\n",
			wantErr: "iterations must not be negative",
		},
		{
			name:    "negative optimal meetings",
			yaml:    "players: 8\ncourts: 2\noptimal_meetings: -1\n",
			wantErr: "optimal_meetings must not be negative",
		},
		{
			name:    "wrong roster size",
			yaml:    "players: 8\ncourts: 2\nnames: [Ann, Bob]\n",
			wantErr: "names lists 2 players but players is 8",
		},
		{
			name:    "duplicate name",
			yaml:    "players: 4\ncourts: 1\nnames: [Ann, Bob, Ann, Dee]\n",
			wantErr: "appears twice",
		},
		{
			name:    "empty name",
			yaml:    "players: 4\ncourts: 1\nnames: [Ann, Bob, \"\", Dee]\n",
			wantErr: "empty",
		},
		{
			name:    "malformed yaml",
			yaml:    "players: [not a number\n",
			wantErr: "parsing config",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadFromBytes([]byte(tc.yaml))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error %q does not contain %q", err, tc.wantErr)
			}
		})
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if _, err := LoadFromFile(t.TempDir() + "/nope.yaml"); err == nil {
		t.Error("expected an error for a missing file")
	}
}
