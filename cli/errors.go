package cli

import (
	"errors"
	"fmt"

	"github.com/beanbot-dev/beanbot/parser"
)

// renderParseError translates the parser's typed errors into the messages
// shown to the user. Unknown error kinds fall through unchanged.
func renderParseError(err error) string {
	var (
		syntaxErr   *parser.SyntaxError
		dateErr     *parser.InvalidDateError
		amountErr   *parser.InvalidAmountError
		currencyErr *parser.InvalidCurrencyError
		accountErr  *parser.UnknownAccountError
	)

	switch {
	case errors.As(err, &syntaxErr):
		return fmt.Sprintf("syntax error: %s", syntaxErr.Message)
	case errors.As(err, &dateErr):
		return fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", dateErr.Value)
	case errors.As(err, &amountErr):
		return fmt.Sprintf("invalid amount %q, expected a non-negative decimal", amountErr.Value)
	case errors.As(err, &currencyErr):
		if currencyErr.Value == "" {
			return "missing currency code"
		}
		return fmt.Sprintf("invalid currency %q, expected an alphabetic code", currencyErr.Value)
	case errors.As(err, &accountErr):
		return fmt.Sprintf("account %q doesn't exist in the configuration", accountErr.Tag)
	default:
		return err.Error()
	}
}
