// Package ast defines the value types produced by the shorthand parser and
// consumed by the formatter and the repository stores.
package ast

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Amount represents a numerical value with its associated currency code.
// The value is stored as a string to preserve the exact decimal representation
// from the input, avoiding floating-point precision issues.
type Amount struct {
	Value    string
	Currency string
}

// Account represents a Beancount account name consisting of at least two
// colon-separated segments. The first segment must be one of the five account
// categories: Assets, Liabilities, Equity, Income, or Expenses. Subsequent
// segments must start with an uppercase letter or digit and can contain
// letters, numbers, and hyphens.
//
// Example accounts:
//
//	Assets:Bank:CBA
//	Liabilities:CreditCard:AMEX
//	Expenses:Food
type Account string

// accountSegmentRegex validates account segments after the first.
var accountSegmentRegex = regexp.MustCompile(`^[A-Z0-9][A-Za-z0-9-]*$`)

// ParseAccount validates s as a Beancount account name.
func ParseAccount(s string) (Account, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return "", fmt.Errorf("account must have at least two segments: %s", s)
	}

	switch parts[0] {
	case "Assets", "Liabilities", "Equity", "Income", "Expenses":
	default:
		return "", fmt.Errorf("unexpected account type %q", parts[0])
	}

	for i := 1; i < len(parts); i++ {
		if !accountSegmentRegex.MatchString(parts[i]) {
			return "", fmt.Errorf("invalid account segment at position %d: %s", i, parts[i])
		}
	}

	return Account(s), nil
}

// Date represents a calendar date in ISO 8601 format (YYYY-MM-DD).
type Date struct {
	time.Time
}

// ParseDate parses a YYYY-MM-DD string into a Date, rejecting values that
// are not real calendar dates (month 13, day 40, and the like).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date: %s", s)
	}
	return Date{t}, nil
}

// DateOf truncates t to its calendar date.
func DateOf(t time.Time) Date {
	return Date{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// Format renders the date in YYYY-MM-DD form.
func (d Date) Format() string {
	return d.Time.Format("2006-01-02")
}

// Year returns the four-digit year, used by stores to pick the ledger file.
func (d Date) Year() string {
	return d.Time.Format("2006")
}

// Posting assigns an amount to one ledger account. A nil Amount marks the
// balancing posting; Beancount infers its amount so the transaction sums
// to zero.
type Posting struct {
	Account Account
	Amount  *Amount
}

// Transaction is a single cleared Beancount transaction with exactly two
// postings. The first posting carries the explicit amount (the categorized
// side), the second is the balancing posting.
type Transaction struct {
	Date      Date
	Flag      string
	Payee     string
	Narration string

	Postings []*Posting
}
