package parser

// Lexer implements a zero-copy scanner for a single shorthand line.
//
// Fields are whitespace-delimited, except for '>' which always forms its own
// token so that "cba>food" and "cba > food" scan identically. Tokens store
// byte offsets into the source line; text is materialized only on demand.

// Lexer tokenizes one line of transaction shorthand.
type Lexer struct {
	source []byte  // Source line
	pos    int     // Current byte position
	tokens []Token // Token buffer (pre-allocated)
}

// NewLexer creates a new lexer for the given source line.
func NewLexer(source []byte) *Lexer {
	// A shorthand line holds around a dozen fields at most.
	return &Lexer{
		source: source,
		tokens: make([]Token, 0, 16),
	}
}

// ScanAll lexes the entire line and returns all tokens, ending with EOF.
// This is a single-pass scanner with no backtracking.
func (l *Lexer) ScanAll() []Token {
	for l.pos < len(l.source) {
		l.skipWhitespace()

		if l.pos >= len(l.source) {
			break
		}

		l.tokens = append(l.tokens, l.scanToken())
	}

	l.tokens = append(l.tokens, Token{
		Type:   EOF,
		Start:  l.pos,
		End:    l.pos,
		Column: l.pos + 1,
	})

	return l.tokens
}

// scanToken scans the next token from the current position.
func (l *Lexer) scanToken() Token {
	start := l.pos

	if l.source[l.pos] == '>' {
		l.pos++
		return Token{Type: ARROW, Start: start, End: l.pos, Column: start + 1}
	}

	// Consume a field up to the next whitespace or '>'.
	for l.pos < len(l.source) && !isWhitespace(l.source[l.pos]) && l.source[l.pos] != '>' {
		l.pos++
	}

	return Token{
		Type:   classify(l.source[start:l.pos]),
		Start:  start,
		End:    l.pos,
		Column: start + 1,
	}
}

// classify determines the token type of a scanned field.
func classify(field []byte) TokenType {
	switch {
	case field[0] == '@':
		if len(field) == 1 {
			return ILLEGAL
		}
		return PAYEE
	case isDatePattern(field):
		return DATE
	case isNumberPattern(field):
		return NUMBER
	default:
		return WORD
	}
}

// isDatePattern reports whether field is shaped like YYYY-MM-DD. Calendar
// validity is checked later by the builder.
func isDatePattern(field []byte) bool {
	if len(field) != 10 || field[4] != '-' || field[7] != '-' {
		return false
	}
	for _, i := range [...]int{0, 1, 2, 3, 5, 6, 8, 9} {
		if !isDigit(field[i]) {
			return false
		}
	}
	return true
}

// isNumberPattern reports whether field is shaped like a decimal number with
// an optional sign and an optional fractional part.
func isNumberPattern(field []byte) bool {
	i := 0
	if field[i] == '+' || field[i] == '-' {
		i++
	}

	digits := 0
	for i < len(field) && isDigit(field[i]) {
		i++
		digits++
	}
	if digits == 0 {
		return false
	}
	if i == len(field) {
		return true
	}

	// Fractional part
	if field[i] != '.' {
		return false
	}
	i++
	digits = 0
	for i < len(field) && isDigit(field[i]) {
		i++
		digits++
	}
	return digits > 0 && i == len(field)
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.source) && isWhitespace(l.source[l.pos]) {
		l.pos++
	}
}

func isWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
