// Package repository persists formatted ledger entries. Entries are appended
// to one Beancount file per calendar year, named {year}.bean.
package repository

import (
	"context"

	"github.com/beanbot-dev/beanbot/ast"
)

// Store appends formatted entries to a ledger. Implementations are invoked
// after the core pipeline has returned its text; parse failures never reach
// a store.
type Store interface {
	// Save appends the formatted entry for the given transaction.
	Save(ctx context.Context, tx *ast.Transaction, entry string) error
}

// ledgerFile returns the ledger filename for a transaction.
func ledgerFile(tx *ast.Transaction) string {
	return tx.Date.Year() + ".bean"
}

// appendEntry joins existing file content and a new entry, keeping a blank
// line between entries.
func appendEntry(existing, entry string) string {
	if existing == "" {
		return entry
	}
	if existing[len(existing)-1] != '\n' {
		existing += "\n"
	}
	return existing + "\n" + entry
}
