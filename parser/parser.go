// Package parser turns a single line of transaction shorthand into a
// structured Beancount transaction.
//
// The input grammar is positional:
//
//	[date] @payee [narration...] amount currency from > to
//
// The date defaults to today when omitted. The narration is everything
// between the payee and the first field that scans as a decimal number.
// The "from" tag names the paying account and becomes the balancing posting;
// the "to" tag names the category and carries the amount. Both tags must
// resolve through the configured account map.
package parser

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/beanbot-dev/beanbot/ast"
)

// Resolver maps short account tags to fully-qualified ledger accounts.
// *config.Config satisfies this interface.
type Resolver interface {
	// Lookup resolves a tag to an account. Matching is case-insensitive.
	Lookup(tag string) (ast.Account, bool)

	// DefaultCurrency returns the currency code configured as the default.
	DefaultCurrency() string
}

// Parser builds transactions from shorthand lines. It is stateless apart
// from the resolver reference and safe for concurrent use.
type Parser struct {
	resolver Resolver
	now      func() time.Time
}

// Option is a functional option for configuring a Parser.
type Option func(*Parser)

// WithNow overrides the clock used to default the date when the input line
// omits one. Useful in tests.
func WithNow(now func() time.Time) Option {
	return func(p *Parser) {
		p.now = now
	}
}

// New creates a Parser that resolves account tags through the given resolver.
func New(resolver Resolver, opts ...Option) *Parser {
	p := &Parser{
		resolver: resolver,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Parse builds a transaction from a single shorthand line. It returns one of
// the typed errors from this package when the line violates the grammar or
// its semantic checks; it never partially succeeds.
func (p *Parser) Parse(raw string) (*ast.Transaction, error) {
	source := []byte(raw)
	tokens := NewLexer(source).ScanAll()

	c := &cursor{source: source, tokens: tokens}

	date, err := p.parseDate(c)
	if err != nil {
		return nil, err
	}

	payee, err := parsePayee(c)
	if err != nil {
		return nil, err
	}

	narration, amount, err := parseNarrationAndAmount(c)
	if err != nil {
		return nil, err
	}

	currency, err := parseCurrency(c)
	if err != nil {
		return nil, err
	}

	fromTag, toTag, err := parseAccountTags(c)
	if err != nil {
		return nil, err
	}

	// Resolve in input order so the error names the first unresolved tag.
	fromAccount, ok := p.resolver.Lookup(fromTag)
	if !ok {
		return nil, &UnknownAccountError{Tag: fromTag}
	}
	toAccount, ok := p.resolver.Lookup(toTag)
	if !ok {
		return nil, &UnknownAccountError{Tag: toTag}
	}

	// The category side is listed first and carries the amount; the paying
	// side is listed second and left implicit so Beancount balances it.
	return &ast.Transaction{
		Date:      date,
		Flag:      "*",
		Payee:     payee,
		Narration: narration,
		Postings: []*ast.Posting{
			{Account: toAccount, Amount: &ast.Amount{Value: amount, Currency: currency}},
			{Account: fromAccount},
		},
	}, nil
}

// cursor tracks the token position during parsing.
type cursor struct {
	source []byte
	tokens []Token
	pos    int
}

func (c *cursor) peek() Token {
	return c.tokens[c.pos]
}

func (c *cursor) next() Token {
	tok := c.tokens[c.pos]
	if tok.Type != EOF {
		c.pos++
	}
	return tok
}

func (c *cursor) text(tok Token) string {
	return tok.String(c.source)
}

// parseDate consumes the leading date field, or defaults to today when the
// line starts directly with the payee marker.
func (p *Parser) parseDate(c *cursor) (ast.Date, error) {
	switch tok := c.peek(); tok.Type {
	case DATE:
		c.next()
		date, err := ast.ParseDate(c.text(tok))
		if err != nil {
			return ast.Date{}, &InvalidDateError{Value: c.text(tok)}
		}
		return date, nil
	case PAYEE:
		return ast.DateOf(p.now()), nil
	case EOF:
		return ast.Date{}, &SyntaxError{Message: "empty input"}
	default:
		return ast.Date{}, &SyntaxError{Column: tok.Column, Message: "expected a date or a payee marked with '@'"}
	}
}

func parsePayee(c *cursor) (string, error) {
	tok := c.next()
	if tok.Type != PAYEE {
		return "", &SyntaxError{Column: tok.Column, Message: "expected a payee marked with '@'"}
	}
	return string(tok.Bytes(c.source)[1:]), nil
}

// parseNarrationAndAmount consumes everything up to and including the first
// number field. The words before it, joined with single spaces, form the
// narration; the number field is the amount, preserved verbatim.
func parseNarrationAndAmount(c *cursor) (narration, amount string, err error) {
	var words []string

	for {
		switch tok := c.next(); tok.Type {
		case NUMBER:
			value, err := validateAmount(c.text(tok))
			return joinWords(words), value, err
		case WORD, DATE, PAYEE:
			words = append(words, c.text(tok))
		case ARROW, EOF:
			return "", "", &SyntaxError{Column: tok.Column, Message: "missing amount"}
		default:
			return "", "", &SyntaxError{Column: tok.Column, Message: "unexpected token " + c.text(tok)}
		}
	}
}

// validateAmount checks that the field is an exact non-negative decimal.
// The original digit string is kept; no float round-tripping.
func validateAmount(value string) (string, error) {
	d, err := decimal.NewFromString(value)
	if err != nil || d.IsNegative() {
		return "", &InvalidAmountError{Value: value}
	}
	return value, nil
}

func parseCurrency(c *cursor) (string, error) {
	tok := c.next()
	if tok.Type == EOF {
		return "", &InvalidCurrencyError{}
	}
	value := c.text(tok)
	if tok.Type != WORD || !isAlphabetic(value) {
		return "", &InvalidCurrencyError{Value: value}
	}
	return value, nil
}

// parseAccountTags consumes the trailing "from > to" fields. The separator
// is mandatory, and nothing may follow the final tag.
func parseAccountTags(c *cursor) (from, to string, err error) {
	fromTok := c.next()
	if fromTok.Type != WORD {
		return "", "", &SyntaxError{Column: fromTok.Column, Message: "expected an account tag"}
	}

	if tok := c.next(); tok.Type != ARROW {
		return "", "", &SyntaxError{Column: tok.Column, Message: "expected '>' separator"}
	}

	toTok := c.next()
	if toTok.Type != WORD {
		return "", "", &SyntaxError{Column: toTok.Column, Message: "expected an account tag after '>'"}
	}

	if tok := c.next(); tok.Type != EOF {
		return "", "", &SyntaxError{Column: tok.Column, Message: "unexpected input after account tags"}
	}

	return c.text(fromTok), c.text(toTok), nil
}

func joinWords(words []string) string {
	switch len(words) {
	case 0:
		return ""
	case 1:
		return words[0]
	}

	n := len(words) - 1
	for _, w := range words {
		n += len(w)
	}

	buf := make([]byte, 0, n)
	for i, w := range words {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = append(buf, w...)
	}
	return string(buf)
}

func isAlphabetic(s string) bool {
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if (ch < 'a' || ch > 'z') && (ch < 'A' || ch > 'Z') {
			return false
		}
	}
	return len(s) > 0
}
