package lux

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Scanner converts source text into tokens in a single forward pass.
// Lexical errors are reported and skipped; scanning never stops early.
type Scanner struct {
	source   string
	start    int
	current  int
	line     int
	tokens   []Token
	reporter Reporter
}

func NewScanner(source string, reporter Reporter) *Scanner {
	if reporter == nil {
		reporter = &CollectingReporter{}
	}
	return &Scanner{
		source:   source,
		line:     1,
		reporter: reporter,
	}
}

// Scan tokenizes source, reporting lexical errors to reporter.
func Scan(source string, reporter Reporter) []Token {
	return NewScanner(source, reporter).ScanTokens()
}

// ScanTokens returns the token sequence, always terminated by EOF.
func (s *Scanner) ScanTokens() []Token {
	for !s.isAtEnd() {
		s.start = s.current
		s.scanToken()
	}
	s.tokens = append(s.tokens, Token{Type: EOF, Lexeme: "", Line: s.line})
	return s.tokens
}

func (s *Scanner) isAtEnd() bool {
	return s.current >= len(s.source)
}

// advance returns 0 past the end of input.
func (s *Scanner) advance() byte {
	if s.isAtEnd() {
		return 0
	}
	c := s.source[s.current]
	s.current++
	return c
}

func (s *Scanner) peek() byte {
	if s.isAtEnd() {
		return 0
	}
	return s.source[s.current]
}

func (s *Scanner) peekNext() byte {
	if s.current+1 >= len(s.source) {
		return 0
	}
	return s.source[s.current+1]
}

func (s *Scanner) match(expected byte) bool {
	if s.peek() != expected || s.isAtEnd() {
		return false
	}
	s.current++
	return true
}

func (s *Scanner) addToken(typ TokenType, literal Value) {
	s.tokens = append(s.tokens, Token{
		Type:    typ,
		Lexeme:  s.source[s.start:s.current],
		Literal: literal,
		Line:    s.line,
	})
}

func (s *Scanner) error(message string) {
	s.reporter.Report(Diagnostic{Phase: PhaseScan, Line: s.line, Message: message})
}

func (s *Scanner) scanToken() {
	c := s.advance()
	switch c {
	case ' ', '\t', '\r':
	case '\n':
		s.line++
	case '(':
		s.addToken(LEFT_PAREN, nil)
	case ')':
		s.addToken(RIGHT_PAREN, nil)
	case '{':
		s.addToken(LEFT_BRACE, nil)
	case '}':
		s.addToken(RIGHT_BRACE, nil)
	case ',':
		s.addToken(COMMA, nil)
	case '.':
		s.addToken(DOT, nil)
	case '-':
		s.addToken(MINUS, nil)
	case '+':
		s.addToken(PLUS, nil)
	case ';':
		s.addToken(SEMICOLON, nil)
	case '*':
		s.addToken(STAR, nil)
	case '?':
		s.addToken(QUESTION, nil)
	case ':':
		s.addToken(COLON, nil)
	case '!':
		s.addTwoCharToken('=', BANG_EQUAL, BANG)
	case '=':
		s.addTwoCharToken('=', EQUAL_EQUAL, EQUAL)
	case '<':
		s.addTwoCharToken('=', LESS_EQUAL, LESS)
	case '>':
		s.addTwoCharToken('=', GREATER_EQUAL, GREATER)
	case '/':
		switch {
		case s.match('/'):
			s.lineComment()
		case s.match('*'):
			s.blockComment()
		default:
			s.addToken(SLASH, nil)
		}
	case '"':
		s.scanString()
	default:
		switch {
		case isDigit(c):
			s.number()
		case isAlpha(c):
			s.identifier()
		default:
			s.unexpected()
		}
	}
}

func (s *Scanner) addTwoCharToken(next byte, two, one TokenType) {
	if s.match(next) {
		s.addToken(two, nil)
		return
	}
	s.addToken(one, nil)
}

// lineComment leaves the newline for scanToken so the line counter stays in one place.
func (s *Scanner) lineComment() {
	for s.peek() != '\n' && !s.isAtEnd() {
		s.advance()
	}
}

func (s *Scanner) blockComment() {
	for {
		if s.isAtEnd() {
			s.error("Unterminated Comment")
			return
		}
		c := s.advance()
		if c == '\n' {
			s.line++
		}
		if c == '*' && s.peek() == '/' {
			s.advance()
			return
		}
	}
}

func (s *Scanner) scanString() {
	var sb strings.Builder
	for {
		if s.isAtEnd() {
			s.error("Unterminated String")
			return
		}
		c := s.advance()
		if c == '"' {
			break
		}
		if c == '\\' {
			switch s.peek() {
			case '"':
				sb.WriteByte('"')
				s.advance()
			case 'n':
				sb.WriteByte('\n')
				s.advance()
			case '\\':
				sb.WriteByte('\\')
				s.advance()
			default:
				sb.WriteByte('\\')
			}
			continue
		}
		if c == '\n' {
			s.line++
		}
		sb.WriteByte(c)
	}
	s.addToken(STRING, String(sb.String()))
}

// number consumes a digit run with an optional fraction. A trailing '.' not
// followed by a digit is left for the next token.
func (s *Scanner) number() {
	for isDigit(s.peek()) {
		s.advance()
	}
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance()
		for isDigit(s.peek()) {
			s.advance()
		}
	}
	text := s.source[s.start:s.current]
	n, err := strconv.ParseFloat(text, 64)
	if err != nil {
		s.error(fmt.Sprintf("Invalid number '%s'", text))
		return
	}
	s.addToken(NUMBER, Number(n))
}

func (s *Scanner) identifier() {
	for isAlphaNumeric(s.peek()) {
		s.advance()
	}
	text := s.source[s.start:s.current]
	typ, ok := lookupKeyword(text)
	if !ok {
		s.addToken(IDENTIFIER, nil)
		return
	}
	switch typ {
	case TRUE:
		s.addToken(typ, Boolean(true))
	case FALSE:
		s.addToken(typ, Boolean(false))
	case NIL:
		s.addToken(typ, Nil)
	default:
		s.addToken(typ, nil)
	}
}

// unexpected reports the whole rune so multi-byte characters are skipped in one step.
func (s *Scanner) unexpected() {
	r, size := utf8.DecodeRuneInString(s.source[s.start:])
	if size > 1 {
		s.current = s.start + size
	}
	s.error(fmt.Sprintf("Unexpected Token: '%c'", r))
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isAlphaNumeric(c byte) bool {
	return isAlpha(c) || isDigit(c)
}
