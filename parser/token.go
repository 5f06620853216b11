package parser

// TokenType represents the type of token scanned from the input line.
type TokenType uint8

const (
	// Special tokens
	EOF TokenType = iota
	ILLEGAL

	// Literals
	DATE   // YYYY-MM-DD
	PAYEE  // @Payee
	NUMBER // 12.40
	WORD   // narration words, currency codes, account tags

	// Symbols
	ARROW // >
)

var tokenNames = map[TokenType]string{
	EOF:     "EOF",
	ILLEGAL: "ILLEGAL",

	DATE:   "DATE",
	PAYEE:  "PAYEE",
	NUMBER: "NUMBER",
	WORD:   "WORD",

	ARROW: ">",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// Token represents a lexical token with zero-copy semantics. Instead of
// storing the token text as a string (which would allocate), it stores byte
// offsets into the original source line.
type Token struct {
	Type   TokenType
	Start  int // Byte offset into source line
	End    int // End offset (exclusive)
	Column int // Column number (1-indexed)
}

// String materializes the token text from the source line.
func (t Token) String(source []byte) string {
	if t.Start >= len(source) || t.End > len(source) || t.Start > t.End {
		return ""
	}
	return string(source[t.Start:t.End])
}

// Bytes returns a zero-copy view of the token text.
func (t Token) Bytes(source []byte) []byte {
	if t.Start >= len(source) || t.End > len(source) || t.Start > t.End {
		return nil
	}
	return source[t.Start:t.End]
}

// Len returns the length of the token in bytes.
func (t Token) Len() int {
	return t.End - t.Start
}
