package parser

import "fmt"

// The parser reports failures through a closed set of error types so that
// callers (the CLI and the bot layer) can match on the failure kind with
// errors.As and translate it into a user-facing message.

// SyntaxError reports a structural grammar violation: a missing payee marker,
// a missing amount, a missing '>' separator or too few fields.
type SyntaxError struct {
	Column  int // Column number (1-indexed), 0 when the input ended early
	Message string
}

func (e *SyntaxError) Error() string {
	if e.Column > 0 {
		return fmt.Sprintf("column %d: %s", e.Column, e.Message)
	}
	return e.Message
}

// InvalidDateError reports a date field that is not a valid calendar date.
type InvalidDateError struct {
	Value string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date %q", e.Value)
}

// InvalidAmountError reports an amount field that is not a valid non-negative
// decimal number.
type InvalidAmountError struct {
	Value string
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("invalid amount %q, expected a non-negative decimal", e.Value)
}

// InvalidCurrencyError reports a missing or non-alphabetic currency code.
type InvalidCurrencyError struct {
	Value string
}

func (e *InvalidCurrencyError) Error() string {
	if e.Value == "" {
		return "missing currency code"
	}
	return fmt.Sprintf("invalid currency %q, expected an alphabetic code", e.Value)
}

// UnknownAccountError reports an account tag that is absent from the
// configured account map. Unresolved tags are a hard failure, never
// silently defaulted.
type UnknownAccountError struct {
	Tag string
}

func (e *UnknownAccountError) Error() string {
	return fmt.Sprintf("account %q doesn't exist in the configuration", e.Tag)
}
