// Package parser reads game transcripts back from the text that
// output.OutputRecord writes.
package parser

// TokenType represents the type of a lexical token.
type TokenType int

const (
	// Tokens returned to the parser
	EOFToken TokenType = iota
	TagToken
	StringToken
	CommentToken
	MoveNumber
	MoveToken
	TerminatingResult

	// Internal tokens used for identification
	Whitespace
	TagStart
	TagEnd
	DoubleQuote
	CommentStart
	CommentEnd
	Dot
	Percent
	Digit
	Star
	EOS
	NoToken
	ErrorToken
)

// tokenTypeNames maps token types to their string representations.
var tokenTypeNames = [...]string{
	EOFToken:          "EOF",
	TagToken:          "TAG",
	StringToken:       "STRING",
	CommentToken:      "COMMENT",
	MoveNumber:        "MOVE_NUMBER",
	MoveToken:         "MOVE",
	TerminatingResult: "TERMINATING_RESULT",
	Whitespace:        "WHITESPACE",
	TagStart:          "TAG_START",
	TagEnd:            "TAG_END",
	DoubleQuote:       "DOUBLE_QUOTE",
	CommentStart:      "COMMENT_START",
	CommentEnd:        "COMMENT_END",
	Dot:               "DOT",
	Percent:           "PERCENT",
	Digit:             "DIGIT",
	Star:              "STAR",
	EOS:               "EOS",
	NoToken:           "NO_TOKEN",
	ErrorToken:        "ERROR_TOKEN",
}

// String returns the string representation of a token type.
func (t TokenType) String() string {
	if int(t) >= 0 && int(t) < len(tokenTypeNames) {
		return tokenTypeNames[t]
	}
	return "UNKNOWN"
}

// Token represents a lexical token with its value.
type Token struct {
	Type TokenType

	// TokenString is used for tag names, tag values, comments, actions
	// and results
	TokenString string

	// MoveNum holds turn numbers
	MoveNum uint

	// Line for error reporting
	Line uint
}

// Result tokens. A numeric result is lexed as a MoveToken and recognised by
// the parser when it ends the turn list.
const (
	ResultBlackWins  = "2-0"
	ResultRedWins    = "0-2"
	ResultDraw       = "1-1"
	ResultInProgress = "*"
)

// isResult reports whether text is one of the result tokens.
func isResult(text string) bool {
	switch text {
	case ResultBlackWins, ResultRedWins, ResultDraw, ResultInProgress:
		return true
	}
	return false
}
