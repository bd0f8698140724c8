package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tradenly/poopee-crush/internal/core"
	"github.com/tradenly/poopee-crush/internal/games/crush"
	"github.com/tradenly/poopee-crush/internal/platform/tui"
	"github.com/tradenly/poopee-crush/internal/registry"
)

var (
	flagDifficulty string
	flagLevel      int
	flagPickLevel  bool
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game. An unfinished level saved for
your account is resumed instead of starting a new one.

Controls:
  Arrows/hjkl  - Move the cursor
  Space/Enter  - Pick a tile, then pick a neighbour to swap
  Mouse click  - Pick or swap the clicked tile
  Esc          - Drop the picked tile
  1/2/3/4      - Hammer / Shuffle / Extra moves / Hint boosters
  P            - Pause
  X            - End the level now
  R            - Replay (after the level ends)
  N            - Next level (after a win)
  ?            - All keys
  Q/Ctrl+C     - Quit (the level is saved for later)

Difficulty options:
  easy   - More moves, lower targets
  normal - The config file's settings
  hard   - Fewer moves, higher targets
  fixed  - Every level plays like level 1, no progression

Examples:
  arcade play crush
  arcade play crush --level 7
  arcade play crush --pick-level
  arcade play crush_classic --difficulty hard
  arcade play crush --config ./my-crush.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Level to start at (0 = saved or configured level)")
	playCmd.Flags().BoolVar(&flagPickLevel, "pick-level", false, "Choose the level from a menu")
}

// terminalConfig builds the runtime config from the flags and terminal size.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
		Player:   flagUser,
	}
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}
	if err := crush.SetDifficultyPreset(flagDifficulty); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	svc, err := openServices(flagLogFile, "arcade")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := terminalConfig()
	cfg.StartLevel = flagLevel
	if flagPickLevel {
		selection, updated, selErr := tui.RunCrushModeSelector(gameID, cfg)
		if selErr != nil {
			svc.Close()
			fmt.Fprintf(os.Stderr, "Error: %v\n", selErr)
			os.Exit(1)
		}
		if selection == nil {
			svc.Close()
			return
		}
		cfg = updated
		cfg.StartLevel = selection.Level
	}

	game, err := registry.Create(gameID)
	if err != nil {
		svc.Close()
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	runErr := tui.Run(game, cfg)
	svc.Close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
