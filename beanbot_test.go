package beanbot

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/beanbot-dev/beanbot/config"
	"github.com/beanbot-dev/beanbot/parser"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg, err := config.Parse([]byte(`
currency: AUD
accounts:
  cba: Assets:Bank:CBA
  food: Expenses:Food
  amex: Liabilities:CreditCard:AMEX
`))
	assert.NoError(t, err)
	return cfg
}

func TestParseAndFormat(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "bank source",
			input: "2021-09-08 @KFC hamburger 12.40 AUD cba > food",
			want: "2021-09-08 * \"KFC\" \"hamburger\"\n" +
				"  Expenses:Food          12.40 AUD\n" +
				"  Assets:Bank:CBA\n",
		},
		{
			name:  "credit card source",
			input: "2021-09-08 @Woolworths weekly groceries 55.10 AUD amex > food",
			want: "2021-09-08 * \"Woolworths\" \"weekly groceries\"\n" +
				"  Expenses:Food          55.10 AUD\n" +
				"  Liabilities:CreditCard:AMEX\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAndFormat(tt.input, testConfig(t))
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAndFormatErrors(t *testing.T) {
	cfg := testConfig(t)

	_, err := ParseAndFormat("2021-09-08 @KFC hamburger 12.40 cba > food", cfg)
	var syntaxErr *parser.SyntaxError
	assert.True(t, errors.As(err, &syntaxErr), "expected *SyntaxError, got %T", err)

	_, err = ParseAndFormat("2021-09-08 @KFC hamburger 12.40 AUD xyz > food", cfg)
	var accountErr *parser.UnknownAccountError
	assert.True(t, errors.As(err, &accountErr), "expected *UnknownAccountError, got %T", err)
	assert.Equal(t, "xyz", accountErr.Tag)

	_, err = ParseAndFormat("2021-13-40 @KFC hamburger 12.40 AUD cba > food", cfg)
	var dateErr *parser.InvalidDateError
	assert.True(t, errors.As(err, &dateErr), "expected *InvalidDateError, got %T", err)
}

// Identical input and configuration always yield byte-identical output.
func TestParseAndFormatDeterministic(t *testing.T) {
	cfg := testConfig(t)
	input := "2021-09-08 @KFC hamburger 12.40 AUD cba > food"

	first, err := ParseAndFormat(input, cfg)
	assert.NoError(t, err)

	for i := 0; i < 10; i++ {
		got, err := ParseAndFormat(input, cfg)
		assert.NoError(t, err)
		assert.Equal(t, first, got)
	}
}
