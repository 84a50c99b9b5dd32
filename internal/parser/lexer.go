package parser

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/rs/zerolog/log"
)

// Lexer tokenizes transcript input.
type Lexer struct {
	reader  *bufio.Reader
	line    string
	pos     int
	lineNum uint
	eof     bool

	// warnings collects problems found since the last RestartForNewGame.
	warnings []string
}

// Character classification table
var chTab [256]TokenType

// Action character classification table
var moveChars [256]bool

func init() {
	initLexTables()
}

// initLexTables initializes the character classification tables.
func initLexTables() {
	for i := range chTab {
		chTab[i] = ErrorToken
	}

	for _, c := range []byte{' ', '\t', '\r', '\n'} {
		chTab[c] = Whitespace
	}

	chTab['['] = TagStart
	chTab[']'] = TagEnd
	chTab['"'] = DoubleQuote
	chTab['{'] = CommentStart
	chTab['}'] = CommentEnd
	chTab['.'] = Dot
	chTab['%'] = Percent
	chTab['*'] = Star
	chTab[0] = EOS

	for c := byte('0'); c <= '9'; c++ {
		chTab[c] = Digit
		moveChars[c] = true
	}
	for _, c := range []byte{'-', 'x', 'X'} {
		moveChars[c] = true
	}
}

// NewLexer creates a new lexer for the given reader.
func NewLexer(r io.Reader) *Lexer {
	return &Lexer{reader: bufio.NewReader(r)}
}

// readLine reads the next line from input.
func (l *Lexer) readLine() bool {
	if l.eof {
		return false
	}
	line, err := l.reader.ReadString('\n')
	if err != nil {
		if err == io.EOF && len(line) > 0 {
			l.line = line
			l.pos = 0
			l.lineNum++
			return true
		}
		l.eof = true
		return false
	}
	l.line = line
	l.pos = 0
	l.lineNum++
	return true
}

// currentChar returns the current character or 0 if at end of line.
func (l *Lexer) currentChar() byte {
	if l.pos >= len(l.line) {
		return 0
	}
	return l.line[l.pos]
}

// advance moves to the next character.
func (l *Lexer) advance() {
	if l.pos < len(l.line) {
		l.pos++
	}
}

// warn records a problem on the current line.
func (l *Lexer) warn(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.warnings = append(l.warnings, fmt.Sprintf("line %d: %s", l.lineNum, msg))
	log.Debug().Uint("line", l.lineNum).Msg(msg)
}

// NextToken returns the next token from the input.
func (l *Lexer) NextToken() *Token {
	for {
		token := l.getNextSymbol()
		if token.Type != NoToken {
			token.Line = l.lineNum
			return token
		}
	}
}

// getNextSymbol identifies the next symbol.
func (l *Lexer) getNextSymbol() *Token {
	if l.line == "" || l.pos >= len(l.line) {
		if !l.readLine() {
			return &Token{Type: EOFToken}
		}
		return &Token{Type: NoToken}
	}

	ch := l.currentChar()
	symbolStart := l.pos
	l.advance()

	switch chTab[ch] {
	case Whitespace:
		for l.pos < len(l.line) && chTab[l.currentChar()] == Whitespace {
			l.advance()
		}
		return &Token{Type: NoToken}

	case TagStart:
		return l.gatherTag()

	case TagEnd:
		return &Token{Type: NoToken}

	case DoubleQuote:
		return l.gatherString()

	case CommentStart:
		return l.gatherComment()

	case CommentEnd:
		l.warn("unmatched comment end")
		return &Token{Type: NoToken}

	case Dot:
		for l.pos < len(l.line) && chTab[l.currentChar()] == Dot {
			l.advance()
		}
		return &Token{Type: NoToken}

	case Percent:
		// Skip rest of line
		l.pos = len(l.line)
		return &Token{Type: NoToken}

	case Digit:
		return l.gatherNumeric(symbolStart)

	case Star:
		return &Token{Type: TerminatingResult, TokenString: ResultInProgress}

	case EOS:
		if !l.readLine() {
			return &Token{Type: EOFToken}
		}
		return &Token{Type: NoToken}

	default:
		for l.pos < len(l.line) && chTab[l.currentChar()] != Whitespace {
			l.advance()
		}
		l.warn("unknown text %q", l.line[symbolStart:l.pos])
		return &Token{Type: NoToken}
	}
}

// gatherTag gathers a tag name after '['.
func (l *Lexer) gatherTag() *Token {
	for l.pos < len(l.line) && chTab[l.currentChar()] == Whitespace {
		l.advance()
	}

	start := l.pos
	for l.pos < len(l.line) {
		ch := l.currentChar()
		if unicode.IsLetter(rune(ch)) || unicode.IsDigit(rune(ch)) || ch == '_' {
			l.advance()
		} else {
			break
		}
	}

	if l.pos > start {
		return &Token{Type: TagToken, TokenString: l.line[start:l.pos]}
	}
	l.warn("missing tag name")
	return &Token{Type: NoToken}
}

// gatherString gathers a quoted string.
func (l *Lexer) gatherString() *Token {
	var sb strings.Builder
	escaped := false

	for l.pos < len(l.line) {
		ch := l.currentChar()
		l.advance()

		if escaped {
			sb.WriteByte(ch)
			escaped = false
			continue
		}
		if ch == '\\' {
			escaped = true
			continue
		}
		if ch == '"' {
			return &Token{Type: StringToken, TokenString: sb.String()}
		}
		sb.WriteByte(ch)
	}

	l.warn("missing closing quote")
	return &Token{Type: StringToken, TokenString: strings.TrimRight(sb.String(), "\r\n")}
}

// gatherComment gathers a comment block, which may span lines.
func (l *Lexer) gatherComment() *Token {
	var sb strings.Builder
	for {
		for l.pos < len(l.line) {
			ch := l.currentChar()
			l.advance()
			if ch == '}' {
				return &Token{Type: CommentToken, TokenString: strings.TrimSpace(sb.String())}
			}
			sb.WriteByte(ch)
		}
		if !l.readLine() {
			break
		}
	}

	l.warn("missing end of comment")
	return &Token{Type: CommentToken, TokenString: strings.TrimSpace(sb.String())}
}

// gatherNumeric handles a token starting with a digit: a turn number
// ("12." or "12...") or an action ("9-13", "9x18x27").
func (l *Lexer) gatherNumeric(start int) *Token {
	for l.pos < len(l.line) && chTab[l.currentChar()] == Digit {
		l.advance()
	}

	if l.currentChar() == '.' {
		var n uint
		for _, c := range l.line[start:l.pos] {
			n = n*10 + uint(c-'0')
		}
		for l.pos < len(l.line) && l.currentChar() == '.' {
			l.advance()
		}
		return &Token{Type: MoveNumber, MoveNum: n}
	}

	for l.pos < len(l.line) && moveChars[l.currentChar()] {
		l.advance()
	}
	text := l.line[start:l.pos]
	if !actionSeemsValid(text) {
		l.warn("unknown action text %s", text)
		return &Token{Type: NoToken}
	}
	return &Token{Type: MoveToken, TokenString: text}
}

// actionSeemsValid checks that text is two or more tile numbers joined by a
// single kind of separator.
func actionSeemsValid(text string) bool {
	sep := "-"
	if strings.ContainsAny(text, "xX") {
		if strings.Contains(text, "-") {
			return false
		}
		sep = "x"
		text = strings.ReplaceAll(text, "X", "x")
	}
	parts := strings.Split(text, sep)
	if len(parts) < 2 || (sep == "-" && len(parts) != 2) {
		return false
	}
	for _, p := range parts {
		if p == "" {
			return false
		}
	}
	return true
}

// RestartForNewGame clears per-game lexer state and returns the warnings
// gathered for the previous game.
func (l *Lexer) RestartForNewGame() []string {
	w := l.warnings
	l.warnings = nil
	return w
}

// LineNumber returns the current line number.
func (l *Lexer) LineNumber() uint {
	return l.lineNum
}
