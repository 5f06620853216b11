// Package formatter renders transactions as Beancount text.
//
// Layout:
//
//	{date} * "{payee}" "{narration}"
//	  {category_account}          {amount} {currency}
//	  {balancing_account}
//
// The amount is right-aligned so that the currency starts at a fixed column,
// keeping amounts visually aligned across typical account name lengths. The
// balancing posting carries no amount; Beancount infers it.
package formatter

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/beanbot-dev/beanbot/ast"
)

const (
	// DefaultCurrencyColumn is the default column (1-indexed) at which the
	// currency code starts on posting lines.
	DefaultCurrencyColumn = 32

	// DefaultIndentation is the indentation for posting lines.
	DefaultIndentation = 2

	// MinimumSpacing is the minimum number of spaces between the account
	// name and the amount.
	MinimumSpacing = 2
)

// Formatter renders transactions with proper amount alignment.
type Formatter struct {
	// CurrencyColumn is the target column for currency alignment.
	// If 0, DefaultCurrencyColumn is used.
	CurrencyColumn int
}

// Option is a functional option for configuring a Formatter.
type Option func(*Formatter)

// WithCurrencyColumn sets a specific column for currency alignment.
func WithCurrencyColumn(col int) Option {
	return func(f *Formatter) {
		f.CurrencyColumn = col
	}
}

// New creates a new Formatter with the given options.
func New(opts ...Option) *Formatter {
	f := &Formatter{
		CurrencyColumn: DefaultCurrencyColumn,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Format writes the transaction as Beancount text. Formatting is total for
// any transaction produced by the parser; the only possible error comes from
// the writer.
func (f *Formatter) Format(t *ast.Transaction, w io.Writer) error {
	_, err := io.WriteString(w, f.FormatString(t))
	return err
}

// FormatString renders the transaction as Beancount text, ending with a
// single trailing newline.
func (f *Formatter) FormatString(t *ast.Transaction) string {
	var buf strings.Builder

	buf.WriteString(t.Date.Format())
	buf.WriteByte(' ')
	buf.WriteString(t.Flag)
	buf.WriteString(` "`)
	buf.WriteString(escapeString(t.Payee))
	buf.WriteString(`" "`)
	buf.WriteString(escapeString(t.Narration))
	buf.WriteString("\"\n")

	for _, posting := range t.Postings {
		f.writePosting(&buf, posting)
	}

	return buf.String()
}

func (f *Formatter) writePosting(buf *strings.Builder, p *ast.Posting) {
	buf.WriteString(strings.Repeat(" ", DefaultIndentation))
	buf.WriteString(string(p.Account))

	if p.Amount != nil {
		buf.WriteString(strings.Repeat(" ", f.amountPadding(p)))
		buf.WriteString(p.Amount.Value)
		buf.WriteByte(' ')
		buf.WriteString(p.Amount.Currency)
	}

	buf.WriteByte('\n')
}

// amountPadding computes the spacing between the account name and the amount
// so the currency starts at CurrencyColumn. Long account names fall back to
// the minimum spacing rather than truncating.
func (f *Formatter) amountPadding(p *ast.Posting) int {
	prefix := DefaultIndentation + runewidth.StringWidth(string(p.Account))
	pad := (f.CurrencyColumn - 1) - prefix - runewidth.StringWidth(p.Amount.Value) - 1
	if pad < MinimumSpacing {
		return MinimumSpacing
	}
	return pad
}
