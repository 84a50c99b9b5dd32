package parser

import (
	"io"
	"strconv"

	"github.com/lgbarn/checkers-go/internal/config"
	"github.com/lgbarn/checkers-go/internal/engine"
	"github.com/lgbarn/checkers-go/internal/errors"
	"github.com/lgbarn/checkers-go/internal/output"
)

// Transcript is one game as read from transcript text. Actions are kept as
// written; Record resolves them against a replay.
type Transcript struct {
	Tags      map[string]string
	Actions   []string
	Comments  []string
	Result    string
	StartLine uint
	EndLine   uint
	Warnings  []string
}

// GetTag returns the value of a tag, or "" when it is absent.
func (t *Transcript) GetTag(name string) string {
	return t.Tags[name]
}

// Config returns base with the board size taken from the Size tag, if any.
func (t *Transcript) Config(base config.GameConfig) (config.GameConfig, error) {
	cfg := base
	if s := t.GetTag("Size"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return cfg, errors.Wrapf(errors.ErrInvalidConfig, "size tag %q", s)
		}
		cfg.BoardSize = n
	}
	return cfg, cfg.Validate()
}

// Record replays the transcript from its Start tag (or the starting layout)
// and returns the resolved record. Each written action must match exactly
// one legal action at its turn.
func (t *Transcript) Record(base config.GameConfig) (*output.Record, error) {
	cfg, err := t.Config(base)
	if err != nil {
		return nil, err
	}

	var g *engine.Game
	if start := t.GetTag("Start"); start != "" {
		g, err = engine.ParsePosition(cfg, start)
	} else {
		g, err = engine.NewGame(cfg)
	}
	if err != nil {
		return nil, err
	}

	r := output.NewRecord(g)
	for i, text := range t.Actions {
		n, err := engine.ParseNotation(text)
		if err != nil {
			return r, errors.Wrapf(err, "turn %d", i+1)
		}
		action, err := g.FindAction(n)
		if err != nil {
			return r, errors.Wrapf(err, "turn %d", i+1)
		}
		applied, err := g.ResolveTurn(action)
		if err != nil {
			return r, errors.Wrapf(err, "turn %d", i+1)
		}
		r.Add(g, applied)
	}
	return r, nil
}

// Parser parses transcript input into Transcripts.
type Parser struct {
	lexer        *Lexer
	currentToken *Token
}

// NewParser creates a new parser for the given reader.
func NewParser(r io.Reader) *Parser {
	return &Parser{lexer: NewLexer(r)}
}

// nextToken gets the next token from the lexer.
func (p *Parser) nextToken() {
	p.currentToken = p.lexer.NextToken()
}

// ParseGame parses a single game from the input.
// Returns nil if no more games are available.
func (p *Parser) ParseGame() (*Transcript, error) {
	if p.currentToken == nil {
		p.nextToken()
	}

	p.skipToNextGame()

	game := &Transcript{Tags: make(map[string]string), StartLine: p.lexer.LineNumber()}
	game.Comments = p.parseOptCommentList()

	if err := p.parseOptTagList(game); err != nil {
		game.Warnings = p.lexer.RestartForNewGame()
		return game, err
	}

	game.Actions = p.parseTurnList(game)
	game.Result = p.parseResult()
	if game.Result == "" && len(game.Actions) > 0 && isResult(game.Actions[len(game.Actions)-1]) {
		game.Result = game.Actions[len(game.Actions)-1]
		game.Actions = game.Actions[:len(game.Actions)-1]
	}
	game.Comments = append(game.Comments, p.parseOptCommentList()...)
	game.EndLine = p.lexer.LineNumber()
	game.Warnings = p.lexer.RestartForNewGame()

	if p.currentToken.Type == EOFToken && len(game.Actions) == 0 && len(game.Tags) == 0 && game.Result == "" {
		return nil, nil
	}
	return game, nil
}

// skipToNextGame skips tokens until the start of a game is found.
func (p *Parser) skipToNextGame() {
	for {
		switch p.currentToken.Type {
		case EOFToken, TagToken, MoveToken, MoveNumber, TerminatingResult, CommentToken:
			return
		default:
			p.nextToken()
		}
	}
}

// parseOptTagList parses zero or more tags.
func (p *Parser) parseOptTagList(game *Transcript) error {
	for p.currentToken.Type == TagToken {
		name := p.currentToken.TokenString
		p.nextToken()

		if p.currentToken.Type != StringToken {
			return errors.Wrapf(errors.ErrTranscript, "line %d: missing value for tag %s", p.currentToken.Line, name)
		}
		game.Tags[name] = p.currentToken.TokenString
		p.nextToken()

		game.Comments = append(game.Comments, p.parseOptCommentList()...)
	}
	return nil
}

// parseTurnList parses numbered actions up to the result.
func (p *Parser) parseTurnList(game *Transcript) []string {
	var actions []string
	for {
		switch p.currentToken.Type {
		case MoveNumber:
			p.nextToken()
		case MoveToken:
			actions = append(actions, p.currentToken.TokenString)
			p.nextToken()
		case CommentToken:
			game.Comments = append(game.Comments, p.currentToken.TokenString)
			p.nextToken()
		default:
			return actions
		}
	}
}

// parseOptCommentList parses zero or more comments.
func (p *Parser) parseOptCommentList() []string {
	var comments []string
	for p.currentToken.Type == CommentToken {
		comments = append(comments, p.currentToken.TokenString)
		p.nextToken()
	}
	return comments
}

// parseResult parses a "*" result token.
func (p *Parser) parseResult() string {
	if p.currentToken.Type == TerminatingResult {
		result := p.currentToken.TokenString
		// Set to NoToken to help skip between games
		p.currentToken = &Token{Type: NoToken}
		return result
	}
	return ""
}

// ParseAllGames parses all games from the input.
func (p *Parser) ParseAllGames() ([]*Transcript, error) {
	var games []*Transcript
	for {
		game, err := p.ParseGame()
		if err != nil {
			return games, err
		}
		if game == nil {
			break
		}
		games = append(games, game)
	}
	return games, nil
}
