package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tradenly/poopee-crush/internal/session"
)

// LedgerEntry is one balance change.
type LedgerEntry struct {
	ID         int64
	User       string
	Delta      int
	Balance    int
	Reason     string
	SessionRef string
	CreatedAt  time.Time
}

// SetStartingCredits sets the grant for users seen for the first time.
func (s *Store) SetStartingCredits(n int) {
	if n < 0 {
		n = 0
	}
	s.startingCredits = n
}

// Balance returns the user's credits, opening the account if needed.
func (s *Store) Balance(ctx context.Context, user string) (int, error) {
	var balance int
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		var err error
		balance, err = s.account(ctx, tx, user)
		return err
	})
	return balance, err
}

// Spend debits amount. The balance never goes below zero: a spend that
// would overdraw fails with session.ErrInsufficientFunds and changes nothing.
func (s *Store) Spend(ctx context.Context, user string, amount int, reason string) error {
	if amount <= 0 {
		return fmt.Errorf("storage: spend amount must be positive, got %d", amount)
	}
	return s.inTx(ctx, func(tx *sql.Tx) error {
		balance, err := s.account(ctx, tx, user)
		if err != nil {
			return err
		}
		if balance < amount {
			return fmt.Errorf("storage: %s has %d, needs %d: %w", user, balance, amount, session.ErrInsufficientFunds)
		}
		return s.post(ctx, tx, user, -amount, balance-amount, reason, "")
	})
}

// Earn credits amount, linking the entry to a session when sessionRef is set.
func (s *Store) Earn(ctx context.Context, user string, amount int, reason, sessionRef string) error {
	if amount <= 0 {
		return fmt.Errorf("storage: earn amount must be positive, got %d", amount)
	}
	return s.inTx(ctx, func(tx *sql.Tx) error {
		balance, err := s.account(ctx, tx, user)
		if err != nil {
			return err
		}
		return s.post(ctx, tx, user, amount, balance+amount, reason, sessionRef)
	})
}

// Ledger returns the user's most recent balance changes, newest first.
func (s *Store) Ledger(ctx context.Context, user string, limit int) ([]LedgerEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user, delta, balance, reason, COALESCE(session_ref, ''), created_at
		 FROM ledger
		 WHERE user = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		user, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query ledger: %w", err)
	}
	defer rows.Close()

	var entries []LedgerEntry
	for rows.Next() {
		var e LedgerEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.User, &e.Delta, &e.Balance, &e.Reason, &e.SessionRef, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// account returns the balance, opening the account with the starting grant
// on first sight.
func (s *Store) account(ctx context.Context, tx *sql.Tx, user string) (int, error) {
	var balance int
	err := tx.QueryRowContext(ctx, "SELECT balance FROM accounts WHERE user = ?", user).Scan(&balance)
	if err == nil {
		return balance, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("storage: cannot read balance: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "INSERT INTO accounts (user, balance) VALUES (?, 0)", user); err != nil {
		return 0, fmt.Errorf("storage: cannot open account: %w", err)
	}
	if s.startingCredits > 0 {
		if err := s.post(ctx, tx, user, s.startingCredits, s.startingCredits, "starting credits", ""); err != nil {
			return 0, err
		}
	}
	return s.startingCredits, nil
}

func (s *Store) post(ctx context.Context, tx *sql.Tx, user string, delta, balance int, reason, ref string) error {
	if _, err := tx.ExecContext(ctx, "UPDATE accounts SET balance = ? WHERE user = ?", balance, user); err != nil {
		return fmt.Errorf("storage: cannot update balance: %w", err)
	}
	var sessionRef any
	if ref != "" {
		sessionRef = ref
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO ledger (user, delta, balance, reason, session_ref) VALUES (?, ?, ?, ?, ?)",
		user, delta, balance, reason, sessionRef,
	); err != nil {
		return fmt.Errorf("storage: cannot write ledger: %w", err)
	}
	return nil
}

func (s *Store) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit: %w", err)
	}
	return nil
}
