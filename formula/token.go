package formula

// tokenKind enumerates the lexical categories of the arithmetic formula
// grammar this façade supports: numbers, cell references, the four
// binary operators, unary +/-, parens, and end of input.
type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenNumber
	tokenRef
	tokenPlus
	tokenMinus
	tokenStar
	tokenSlash
	tokenLParen
	tokenRParen
)

type token struct {
	kind tokenKind
	text string // raw lexeme; numeric/ref tokens carry their source text here
}
