package formatter

import (
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/beanbot-dev/beanbot/ast"
)

func tx(t *testing.T, date, payee, narration, toAccount, value, currency, fromAccount string) *ast.Transaction {
	t.Helper()

	d, err := ast.ParseDate(date)
	assert.NoError(t, err)

	return &ast.Transaction{
		Date:      d,
		Flag:      "*",
		Payee:     payee,
		Narration: narration,
		Postings: []*ast.Posting{
			{Account: ast.Account(toAccount), Amount: &ast.Amount{Value: value, Currency: currency}},
			{Account: ast.Account(fromAccount)},
		},
	}
}

func TestFormatString(t *testing.T) {
	tests := []struct {
		name string
		tx   *ast.Transaction
		want string
	}{
		{
			name: "bank source",
			tx:   tx(t, "2021-09-08", "KFC", "hamburger", "Expenses:Food", "12.40", "AUD", "Assets:Bank:CBA"),
			want: "2021-09-08 * \"KFC\" \"hamburger\"\n" +
				"  Expenses:Food          12.40 AUD\n" +
				"  Assets:Bank:CBA\n",
		},
		{
			name: "credit card source",
			tx:   tx(t, "2021-09-08", "Woolworths", "weekly groceries", "Expenses:Food", "55.10", "AUD", "Liabilities:CreditCard:AMEX"),
			want: "2021-09-08 * \"Woolworths\" \"weekly groceries\"\n" +
				"  Expenses:Food          55.10 AUD\n" +
				"  Liabilities:CreditCard:AMEX\n",
		},
		{
			name: "empty narration",
			tx:   tx(t, "2021-11-23", "KFL", "", "Expenses:Food", "22.34", "USD", "Assets:Bank:CBA"),
			want: "2021-11-23 * \"KFL\" \"\"\n" +
				"  Expenses:Food          22.34 USD\n" +
				"  Assets:Bank:CBA\n",
		},
		{
			name: "integer amount rendered verbatim",
			tx:   tx(t, "2021-09-08", "KFC", "hamburger", "Expenses:Food", "12", "AUD", "Assets:Bank:CBA"),
			want: "2021-09-08 * \"KFC\" \"hamburger\"\n" +
				"  Expenses:Food             12 AUD\n" +
				"  Assets:Bank:CBA\n",
		},
		{
			name: "long account falls back to minimum spacing",
			tx:   tx(t, "2021-09-08", "Zoo", "tickets", "Expenses:Entertainment:Family-Outings", "33.70", "AUD", "Assets:Bank:CBA"),
			want: "2021-09-08 * \"Zoo\" \"tickets\"\n" +
				"  Expenses:Entertainment:Family-Outings  33.70 AUD\n" +
				"  Assets:Bank:CBA\n",
		},
		{
			name: "embedded quotes escaped",
			tx:   tx(t, "2021-09-08", `K"F"C`, `say "hi"`, "Expenses:Food", "12.40", "AUD", "Assets:Bank:CBA"),
			want: "2021-09-08 * \"K\\\"F\\\"C\" \"say \\\"hi\\\"\"\n" +
				"  Expenses:Food          12.40 AUD\n" +
				"  Assets:Bank:CBA\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New().FormatString(tt.tx)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Amounts of different widths align on the currency column.
func TestFormatAlignment(t *testing.T) {
	f := New()

	short := f.FormatString(tx(t, "2021-09-08", "A", "x", "Expenses:Food", "5", "AUD", "Assets:Bank:CBA"))
	long := f.FormatString(tx(t, "2021-09-08", "B", "y", "Expenses:Food", "1234.56", "AUD", "Assets:Bank:CBA"))

	assert.Equal(t, strings.Index(short, "AUD"), strings.Index(long, "AUD"))
}

func TestFormatWithCurrencyColumn(t *testing.T) {
	f := New(WithCurrencyColumn(25))

	got := f.FormatString(tx(t, "2021-09-08", "KFC", "hamburger", "Expenses:Food", "12.40", "AUD", "Assets:Bank:CBA"))

	want := "2021-09-08 * \"KFC\" \"hamburger\"\n" +
		"  Expenses:Food   12.40 AUD\n" +
		"  Assets:Bank:CBA\n"
	assert.Equal(t, want, got)
}

func TestFormatWriter(t *testing.T) {
	var buf strings.Builder

	err := New().Format(tx(t, "2021-09-08", "KFC", "hamburger", "Expenses:Food", "12.40", "AUD", "Assets:Bank:CBA"), &buf)
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(buf.String(), "2021-09-08 * \"KFC\""))
}
