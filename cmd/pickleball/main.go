package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmdaguan/pickleball/internal/config"
	"github.com/dmdaguan/pickleball/internal/excel"
	"github.com/dmdaguan/pickleball/internal/schedule"
	"github.com/dmdaguan/pickleball/internal/validator"
)

const defaultConfigFile = "config.yaml"

func resolveConfigPath(configFlag string) (string, error) {
	if configFlag != "" {
		return configFlag, nil
	}
	if _, err := os.Stat(defaultConfigFile); err == nil {
		return defaultConfigFile, nil
	}
	return "", fmt.Errorf("no config file found. Either create %s in the current directory or pass --config", defaultConfigFile)
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "pickleball",
		Short: "Round-robin doubles schedule generator",
	}

	var initOutputPath string
	initCmd := &cobra.Command{
		Use:          "init",
		Short:        "Create a starter config.yaml in the current directory",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(initOutputPath)
		},
	}
	initCmd.Flags().StringVarP(&initOutputPath, "output", "o", defaultConfigFile, "Output path for the config file")

	scheduleCmd := &cobra.Command{
		Use:   "schedule",
		Short: "Generate and validate schedules",
	}

	var configFile string
	scheduleCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to config file (default: config.yaml in current directory)")

	var outputFile string
	generateCmd := &cobra.Command{
		Use:          "generate",
		Short:        "Generate a schedule from a config file",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := resolveConfigPath(configFile)
			if err != nil {
				return err
			}
			return runGenerate(configPath, outputFile)
		},
	}
	generateCmd.Flags().StringVarP(&outputFile, "output", "o", "schedule.xlsx", "Output Excel file path")

	validateCmd := &cobra.Command{
		Use:          "validate <schedule.xlsx>",
		Short:        "Validate a schedule against config rules",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := resolveConfigPath(configFile)
			if err != nil {
				return err
			}
			return runValidate(configPath, args[0])
		},
	}

	scheduleCmd.AddCommand(generateCmd, validateCmd)
	rootCmd.AddCommand(initCmd, scheduleCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runInit(outputPath string) error {
	if _, err := os.Stat(outputPath); err == nil {
		return fmt.Errorf("%s already exists; remove it first or use -o to write elsewhere", outputPath)
	}

	if err := os.WriteFile(outputPath, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("✓ Created %s\n", outputPath)
	return nil
}

const configTemplate = `# Pickleball Session Configuration
# ================================
# This file defines the parameters for generating a round-robin
# doubles schedule: every pair of players partners (about) once, and
# every pair of players should meet as opponents about twice.

# Number of players. Must be at least 4. When players or players-1 is
# divisible by 4 every pairing is used; otherwise one pair of players
# will never partner and plays one fewer game than everyone else.
players: 16

# Number of courts available each round. Rounds hold at most this many
# simultaneous games.
courts: 4

# How many hillclimbing trials to spend balancing opponent meetings.
# More iterations give a more even schedule but take longer. Each trial
# swaps two partnerships and keeps the swap only when it helps.
iterations: 200000

# Seed for the random search. The same players/courts/iterations/seed
# always produce the identical schedule.
seed: 42

# Target number of times each pair of players meets as opponents.
# Usually left at 2.
optimal_meetings: 2

# Optional roster. When present it must list exactly 'players' unique
# names; schedules and reports then use names instead of numbers.
# names: [Ann, Bob, Cam, Dee, Eli, Fay, Gus, Hal,
#         Ida, Jan, Kim, Lou, Mia, Ned, Ola, Pat]
`

func runGenerate(configPath, outputPath string) error {
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	fmt.Printf("Scheduling %d players on %d courts (%d trials)...\n",
		cfg.Players, cfg.Courts, cfg.Iterations)

	result, err := schedule.Generate(cfg.Players, cfg.Courts, cfg.Iterations, cfg.Seed, cfg.Optimal())
	if err != nil {
		return fmt.Errorf("generating schedule: %w", err)
	}

	fmt.Printf("✓ %d games in %d rounds (imbalance %.0f, down from %.0f)\n",
		len(result.Games), len(result.Schedule), result.Cost, result.InitialCost)

	names := cfg.PlayerNames()
	fmt.Println("\nPer Player Metrics:")
	fmt.Printf("  %-15s %6s %5s %9s\n", "Player", "Games", "Byes", "Partners")
	for p := 0; p < cfg.Players; p++ {
		m := result.PlayerMetrics[p]
		fmt.Printf("  %-15s %6d %5d %9d\n", names[p], m.Games, m.Byes, m.Partners)
	}

	if len(result.Warnings) > 0 {
		fmt.Printf("\nBalance notes (%d):\n", len(result.Warnings))
		for _, w := range result.Warnings {
			fmt.Printf("  ⚠ %s\n", w)
		}
	} else {
		fmt.Println("\n✓ Perfectly balanced schedule")
	}

	f, err := excel.Generate(cfg, result)
	if err != nil {
		return fmt.Errorf("generating Excel: %w", err)
	}

	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("saving file: %w", err)
	}

	fmt.Printf("\n✓ Schedule saved to %s\n", outputPath)
	return nil
}

func runValidate(configPath, schedulePath string) error {
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	violations, err := validator.Validate(cfg, schedulePath)
	if err != nil {
		return fmt.Errorf("validating: %w", err)
	}

	errors := 0
	warnings := 0
	for _, v := range violations {
		switch v.Type {
		case "error":
			errors++
			fmt.Printf("✗ Rule violation: %s\n", v.Message)
		case "warning":
			warnings++
			fmt.Printf("⚠ Balance note: %s\n", v.Message)
		}
	}

	fmt.Printf("\nValidation complete: %d rule violations, %d balance notes\n", errors, warnings)

	if errors > 0 {
		return fmt.Errorf("%d constraint violations found", errors)
	}
	return nil
}
