package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tradenly/poopee-crush/internal/config"
	"github.com/tradenly/poopee-crush/internal/storage"
)

var (
	flagGrant       int
	flagLedger      bool
	flagLedgerLimit int
)

var creditsCmd = &cobra.Command{
	Use:   "credits",
	Short: "Show a player's credits",
	Long: `Show the credit balance for --user. New accounts are opened with
the configured starting credits.

Examples:
  arcade credits
  arcade credits --user alice --ledger
  arcade credits --user alice --grant 50`,
	Args: cobra.NoArgs,
	Run:  runCredits,
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show finished sessions",
	Long: `List the most recent finished levels for --user, or for everyone
with --all.

Examples:
  arcade history
  arcade history --user alice
  arcade history --all --limit 50`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

var (
	flagHistoryAll   bool
	flagHistoryLimit int
)

func init() {
	creditsCmd.Flags().IntVar(&flagGrant, "grant", 0, "Add this many credits to the account")
	creditsCmd.Flags().BoolVar(&flagLedger, "ledger", false, "List recent balance changes")
	creditsCmd.Flags().IntVar(&flagLedgerLimit, "limit", 20, "Number of ledger entries to show")

	historyCmd.Flags().BoolVar(&flagHistoryAll, "all", false, "Show every player's sessions")
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Number of sessions to show")
}

// openLedger opens the database with the configured starting credits.
func openLedger() (*storage.Store, error) {
	cfg, err := config.LoadCrush(flagConfig)
	if err != nil {
		return nil, err
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil, err
	}
	store.SetStartingCredits(cfg.Economy.StartingCredits)
	return store, nil
}

func runCredits(_ *cobra.Command, _ []string) {
	store, err := openLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx := context.Background()
	if flagGrant != 0 {
		if err := store.Earn(ctx, flagUser, flagGrant, "grant", ""); err != nil {
			fmt.Fprintf(os.Stderr, "Error granting credits: %v\n", err)
			return
		}
	}

	balance, err := store.Balance(ctx, flagUser)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading balance: %v\n", err)
		return
	}
	fmt.Printf("%s: %d credits\n", flagUser, balance)

	if !flagLedger {
		return
	}
	entries, err := store.Ledger(ctx, flagUser, flagLedgerLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading ledger: %v\n", err)
		return
	}
	fmt.Println()
	fmt.Printf("  %-16s  %7s  %7s  %s\n", "Date", "Change", "Balance", "Reason")
	fmt.Printf("  %-16s  %7s  %7s  %s\n", "----", "------", "-------", "------")
	for _, e := range entries {
		fmt.Printf("  %-16s  %+7d  %7d  %s\n", e.CreatedAt.Local().Format("2006-01-02 15:04"), e.Delta, e.Balance, e.Reason)
	}
}

func runHistory(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	user := flagUser
	if flagHistoryAll {
		user = ""
	}
	recs, err := store.RecentSessions(context.Background(), user, flagHistoryLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading sessions: %v\n", err)
		return
	}
	if len(recs) == 0 {
		fmt.Println("No finished sessions yet.")
		return
	}

	fmt.Printf("  %-16s  %-10s  %-13s  %3s  %8s  %-5s  %-14s  %5s  %s\n", "Ended", "Player", "Game", "Lvl", "Score", "Stars", "Result", "Spent", "Reward")
	for _, r := range recs {
		fmt.Printf("  %-16s  %-10s  %-13s  %3d  %8d  %-5d  %-14s  %5d  %d\n",
			r.EndedAt.Local().Format("2006-01-02 15:04"), r.User, r.GameType,
			r.Level, r.Score, r.Stars, r.Status, r.CreditsSpent, r.Reward)
	}
}
