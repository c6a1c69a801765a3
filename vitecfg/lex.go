package vitecfg

import (
	"errors"
	"io"
	"unicode"
	"unicode/utf8"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/js"
)

// token is one significant (non-trivia) token with its byte span in the
// original source. All edit positions are derived from these spans, so the
// untouched remainder of the file survives byte for byte.
type token struct {
	tt   js.TokenType
	text string
	pos  int
}

func (t token) end() int { return t.pos + len(t.text) }

// span marks a trivia region (comment) in the source.
type span struct {
	pos, end int
}

var errLex = errors.New("unsupported token in source")

// lexAll tokenizes src, dropping whitespace and comments but recording
// comment spans so later edits can avoid splicing through them. The regular
// expression ambiguity of `/` is resolved with the usual previous-token
// heuristic: after a value-like token it is division, otherwise the lexer is
// asked to re-scan it as a regular expression literal.
func lexAll(src string) ([]token, []span, error) {
	l := js.NewLexer(parse.NewInputString(src))

	var toks []token
	var comments []span
	pos := 0
	for {
		tt, text := l.Next()
		switch tt {
		case js.ErrorToken:
			if l.Err() == io.EOF {
				return toks, comments, nil
			}
			return nil, nil, errLex
		case js.WhitespaceToken, js.LineTerminatorToken:
			// trivia
		case js.CommentToken, js.CommentLineTerminatorToken:
			comments = append(comments, span{pos, pos + len(text)})
		case js.DivToken, js.DivEqToken:
			if regExpAllowed(toks) {
				tt, text = l.RegExp()
				if tt == js.ErrorToken {
					return nil, nil, errLex
				}
			}
			toks = append(toks, token{tt, string(text), pos})
		default:
			toks = append(toks, token{tt, string(text), pos})
		}
		pos += len(text)
	}
}

// regExpAllowed reports whether a `/` at the current position can start a
// regular expression literal, based on the preceding significant token.
func regExpAllowed(toks []token) bool {
	if len(toks) == 0 {
		return true
	}
	prev := toks[len(toks)-1]
	switch prev.tt {
	case js.IdentifierToken, js.NumericToken, js.StringToken,
		js.TemplateToken, js.TemplateEndToken, js.RegExpToken,
		js.CloseParenToken, js.CloseBracketToken, js.CloseBraceToken:
		return false
	}
	// Keyword tokens like `return` or `typeof` allow a regexp; operators do
	// too. Only the value-like tokens above end an expression.
	return true
}

// identLike reports whether a token can serve as an identifier-form property
// key. The lexer hands back dedicated token types for reserved words, which
// are legal as keys, so the check is on the text rather than the type.
func identLike(t token) bool {
	if t.text == "" {
		return false
	}
	for i, r := range t.text {
		if r == '_' || r == '$' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return utf8.ValidString(t.text)
}
