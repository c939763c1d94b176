package sparql

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ParseError reports a SPARQL syntax error with its source line.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("sparql: line %d: %s", e.Line, e.Message)
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokWord           // bare word: keywords, the 'a' shorthand, true/false
	tokVar            // ?name or $name (Text holds the bare name)
	tokIRIRef         // <...> (Text holds the IRI without brackets)
	tokPName          // prefix:local (Text holds the full prefixed name)
	tokBlank          // _:label (Text holds the label)
	tokString         // quoted string (Text holds the unescaped form)
	tokLangTag        // @tag (Text holds the tag)
	tokNumber         // integer or decimal literal
	tokPunct          // single punctuation: { } . ; , ( ) * =
	tokDatatypeSep    // ^^
)

type token struct {
	kind tokenKind
	text string
	line int
}

func (t token) describe() string {
	switch t.kind {
	case tokEOF:
		return "end of input"
	default:
		return fmt.Sprintf("%q", t.text)
	}
}

// isKeyword reports whether the token is the given bare keyword,
// case-insensitively (SPARQL keywords are case-insensitive).
func (t token) isKeyword(kw string) bool {
	return t.kind == tokWord && strings.EqualFold(t.text, kw)
}

func (t token) isPunct(p string) bool {
	return t.kind == tokPunct && t.text == p
}

// lex tokenizes a SPARQL query or update string.
func lex(src string) ([]token, error) {
	l := &lexer{src: src, line: 1}
	var toks []token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.kind == tokEOF {
			return toks, nil
		}
	}
}

type lexer struct {
	src  string
	pos  int
	line int
}

func (l *lexer) errf(format string, args ...any) error {
	return &ParseError{Line: l.line, Message: fmt.Sprintf(format, args...)}
}

func (l *lexer) next() (token, error) {
	l.skipWS()
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, line: l.line}, nil
	}
	line := l.line
	c := l.src[l.pos]
	switch {
	case c == '<':
		end := strings.IndexByte(l.src[l.pos:], '>')
		if end < 0 {
			return token{}, l.errf("unterminated IRI")
		}
		text := l.src[l.pos+1 : l.pos+end]
		l.pos += end + 1
		return token{kind: tokIRIRef, text: text, line: line}, nil
	case c == '?' || c == '$':
		l.pos++
		start := l.pos
		for l.pos < len(l.src) && isNameChar(l.src[l.pos]) {
			l.pos++
		}
		if l.pos == start {
			return token{}, l.errf("empty variable name")
		}
		return token{kind: tokVar, text: l.src[start:l.pos], line: line}, nil
	case c == '"' || c == '\'':
		text, err := l.quoted(c)
		if err != nil {
			return token{}, err
		}
		return token{kind: tokString, text: text, line: line}, nil
	case c == '@':
		l.pos++
		start := l.pos
		for l.pos < len(l.src) && (isNameChar(l.src[l.pos]) || l.src[l.pos] == '-') {
			l.pos++
		}
		if l.pos == start {
			return token{}, l.errf("empty language tag")
		}
		return token{kind: tokLangTag, text: l.src[start:l.pos], line: line}, nil
	case strings.HasPrefix(l.src[l.pos:], "^^"):
		l.pos += 2
		return token{kind: tokDatatypeSep, text: "^^", line: line}, nil
	case strings.HasPrefix(l.src[l.pos:], "_:"):
		l.pos += 2
		start := l.pos
		for l.pos < len(l.src) && isNameChar(l.src[l.pos]) {
			l.pos++
		}
		if l.pos == start {
			return token{}, l.errf("empty blank node label")
		}
		return token{kind: tokBlank, text: l.src[start:l.pos], line: line}, nil
	case strings.IndexByte("{}.;,()*=", c) >= 0:
		l.pos++
		return token{kind: tokPunct, text: string(c), line: line}, nil
	case c == '+' || c == '-' || unicode.IsDigit(rune(c)):
		return l.number(line)
	default:
		start := l.pos
		hasColon := false
		for l.pos < len(l.src) {
			b := l.src[l.pos]
			if isNameChar(b) {
				l.pos++
				continue
			}
			if b == ':' {
				hasColon = true
				l.pos++
				continue
			}
			break
		}
		if l.pos == start {
			r, _ := utf8.DecodeRuneInString(l.src[l.pos:])
			return token{}, l.errf("unexpected character %q", r)
		}
		text := l.src[start:l.pos]
		if hasColon {
			return token{kind: tokPName, text: text, line: line}, nil
		}
		return token{kind: tokWord, text: text, line: line}, nil
	}
}

func (l *lexer) quoted(quote byte) (string, error) {
	l.pos++
	var b strings.Builder
	for {
		if l.pos >= len(l.src) {
			return "", l.errf("unterminated string literal")
		}
		c := l.src[l.pos]
		switch c {
		case quote:
			l.pos++
			return b.String(), nil
		case '\n':
			return "", l.errf("newline in string literal")
		case '\\':
			l.pos++
			if l.pos >= len(l.src) {
				return "", l.errf("unterminated escape")
			}
			esc := l.src[l.pos]
			l.pos++
			switch esc {
			case 't':
				b.WriteByte('\t')
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case '"', '\'', '\\':
				b.WriteByte(esc)
			case 'u', 'U':
				width := 4
				if esc == 'U' {
					width = 8
				}
				if l.pos+width > len(l.src) {
					return "", l.errf("truncated unicode escape")
				}
				code, err := strconv.ParseUint(l.src[l.pos:l.pos+width], 16, 32)
				if err != nil {
					return "", l.errf("invalid unicode escape")
				}
				b.WriteRune(rune(code))
				l.pos += width
			default:
				return "", l.errf("invalid escape \\%c", esc)
			}
		default:
			b.WriteByte(c)
			l.pos++
		}
	}
}

func (l *lexer) number(line int) (token, error) {
	start := l.pos
	if l.src[l.pos] == '+' || l.src[l.pos] == '-' {
		l.pos++
	}
	digits := false
	for l.pos < len(l.src) && unicode.IsDigit(rune(l.src[l.pos])) {
		l.pos++
		digits = true
	}
	if l.pos < len(l.src) && l.src[l.pos] == '.' &&
		l.pos+1 < len(l.src) && unicode.IsDigit(rune(l.src[l.pos+1])) {
		l.pos++
		for l.pos < len(l.src) && unicode.IsDigit(rune(l.src[l.pos])) {
			l.pos++
		}
	}
	if !digits {
		return token{}, l.errf("malformed number")
	}
	return token{kind: tokNumber, text: l.src[start:l.pos], line: line}, nil
}

func (l *lexer) skipWS() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == '\n':
			l.line++
			l.pos++
		case c == ' ' || c == '\t' || c == '\r':
			l.pos++
		case c == '#':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
		default:
			return
		}
	}
}

func isNameChar(c byte) bool {
	if c >= utf8.RuneSelf {
		return true
	}
	return c == '_' || c == '-' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}
