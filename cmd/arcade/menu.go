package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tradenly/poopee-crush/internal/platform/tui"
	"github.com/tradenly/poopee-crush/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a game picker menu",
	Long: `Start the arcade in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a game, then choose
to continue or pick a level. Press B after a level ends (or while
paused) to return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - Scores and recent games
  Q            - Quit

Examples:
  arcade menu
  arcade menu --user alice
  arcade menu --db ./scores.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	svc, err := openServices(flagLogFile, "arcade")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer svc.Close()

	var credits tui.BalanceSource
	var scores tui.ScoreSource
	if svc.store != nil {
		credits, scores = svc.store, svc.store
	}

	cfg := terminalConfig()

	for {
		menuResult, err := tui.RunMenu(credits, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(scores, cfg.Player, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			return
		}

		selection, updated, selErr := tui.RunCrushModeSelector(menuResult.GameID, cfg)
		if selErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", selErr)
			continue
		}
		if selection == nil {
			continue
		}
		cfg = updated

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		gameCfg := cfg
		gameCfg.Seed = time.Now().UnixNano()
		gameCfg.StartLevel = selection.Level

		backToMenu, err := tui.RunFromMenu(game, gameCfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
		if !backToMenu {
			return
		}
	}
}
