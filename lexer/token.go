package lexer

import "fmt"

type TokenType int

// The list of token types
const (
	EOF TokenType = iota
	ERROR

	// Keywords
	CLASS
	INHERITS
	ISVOID
	IF
	ELSE
	FI
	THEN
	LET
	IN
	WHILE
	CASE
	ESAC
	LOOP
	POOL
	NEW
	OF
	NOT

	// Data types
	STR_CONST
	BOOL_CONST
	INT_CONST

	// Identifiers
	TYPEID
	OBJECTID

	// Operators
	ASSIGN // <-
	DARROW // =>
	LT     // <
	LE     // <=
	EQ     // =
	PLUS   // +
	MINUS  // -
	TIMES  // *
	DIVIDE // /
	LPAREN // (
	RPAREN // )
	LBRACE // {
	RBRACE // }
	SEMI   // ;
	COLON  // :
	COMMA  // ,
	DOT    // .
	AT     // @
	NEG    // ~
)

var tokenNames = [...]string{
	"EOF", "ERROR",
	// Keywords
	"CLASS", "INHERITS", "ISVOID", "IF", "ELSE", "FI", "THEN",
	"LET", "IN", "WHILE", "CASE", "ESAC", "LOOP", "POOL",
	"NEW", "OF", "NOT",
	// Data types
	"STR_CONST", "BOOL_CONST", "INT_CONST",
	// Identifiers
	"TYPEID", "OBJECTID",
	// Operators and Punctuation
	"ASSIGN", "DARROW", "LT", "LE", "EQ", "PLUS", "MINUS",
	"TIMES", "DIVIDE", "LPAREN", "RPAREN", "LBRACE", "RBRACE",
	"SEMI", "COLON", "COMMA", "DOT", "AT", "NEG",
}

func (tt TokenType) String() string {
	if tt < 0 || int(tt) >= len(tokenNames) {
		return fmt.Sprintf("TokenType(%d)", int(tt))
	}
	return tokenNames[tt]
}

// Token is the lexical token the parser attaches to every AST node. Line is
// 1-based; a zero Line means the node has no source location (built-in
// classes and synthesized nodes).
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

// Position renders the token location as line:column.
func (t Token) Position() string {
	return fmt.Sprintf("%d:%d", t.Line, t.Column)
}
