package lux

import (
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenTypes(tokens []Token) []TokenType {
	out := make([]TokenType, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Type
	}
	return out
}

func TestScannerTokenTypes(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []TokenType
	}{
		{
			name:   "var declaration",
			source: "var x = 10.5;",
			want:   []TokenType{VAR, IDENTIFIER, EQUAL, NUMBER, SEMICOLON, EOF},
		},
		{
			name:   "two character operators",
			source: "!= == <= >= < > ! =",
			want:   []TokenType{BANG_EQUAL, EQUAL_EQUAL, LESS_EQUAL, GREATER_EQUAL, LESS, GREATER, BANG, EQUAL, EOF},
		},
		{
			name:   "punctuation",
			source: "(){},.-+;*/?:",
			want: []TokenType{LEFT_PAREN, RIGHT_PAREN, LEFT_BRACE, RIGHT_BRACE, COMMA, DOT, MINUS, PLUS,
				SEMICOLON, STAR, SLASH, QUESTION, COLON, EOF},
		},
		{
			name:   "keywords",
			source: "and class else false fun for if nil or return super this true var while",
			want: []TokenType{AND, CLASS, ELSE, FALSE, FUN, FOR, IF, NIL, OR, RETURN, SUPER, THIS, TRUE,
				VAR, WHILE, EOF},
		},
		{
			name:   "keywords ignore case",
			source: "VAR While",
			want:   []TokenType{VAR, WHILE, EOF},
		},
		{
			name:   "trailing dot is separate",
			source: "1.",
			want:   []TokenType{NUMBER, DOT, EOF},
		},
		{
			name:   "comments are skipped",
			source: "a // line\n/* block\n comment */ b",
			want:   []TokenType{IDENTIFIER, IDENTIFIER, EOF},
		},
		{
			name:   "empty input",
			source: "",
			want:   []TokenType{EOF},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &CollectingReporter{}
			got := tokenTypes(Scan(tt.source, r))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("token types mismatch (-want +got):\n%s", diff)
			}
			if r.Len() != 0 {
				t.Errorf("unexpected diagnostics: %v", r.Diagnostics())
			}
		})
	}
}

func TestScannerLiterals(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   Value
	}{
		{"integer", "42", Number(42)},
		{"fraction", "3.25", Number(3.25)},
		{"string", `"hello"`, String("hello")},
		{"escapes", `"a\"b\n\\"`, String("a\"b\n\\")},
		{"unknown escape kept", `"a\tb"`, String(`a\tb`)},
		{"true", "true", Boolean(true)},
		{"false", "false", Boolean(false)},
		{"nil", "nil", Nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := Scan(tt.source, nil)
			if len(tokens) != 2 {
				t.Fatalf("expected one token and EOF, got %v", tokens)
			}
			if diff := cmp.Diff(tt.want, tokens[0].Literal); diff != "" {
				t.Errorf("literal mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestScannerLines(t *testing.T) {
	source := "a\n\"multi\nline\" b\n/* x\ny */ c"
	tokens := Scan(source, nil)
	want := []int{1, 3, 3, 5, 5}
	got := make([]int, len(tokens))
	for i, tok := range tokens {
		got[i] = tok.Line
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestScannerErrors(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		types   []TokenType
		message string
		line    int
	}{
		{"unexpected character", "@ 1", []TokenType{NUMBER, EOF}, "Unexpected Token: '@'", 1},
		{"multi-byte character", "é;", []TokenType{SEMICOLON, EOF}, "Unexpected Token: 'é'", 1},
		{"unterminated string", "x \"abc", []TokenType{IDENTIFIER, EOF}, "Unterminated String", 1},
		{"unterminated comment", "/* open\n", []TokenType{EOF}, "Unterminated Comment", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &CollectingReporter{}
			got := tokenTypes(Scan(tt.source, r))
			if diff := cmp.Diff(tt.types, got); diff != "" {
				t.Errorf("token types mismatch (-want +got):\n%s", diff)
			}
			diags := r.Diagnostics()
			if len(diags) != 1 {
				t.Fatalf("expected one diagnostic, got %v", diags)
			}
			want := Diagnostic{Phase: PhaseScan, Line: tt.line, Message: tt.message}
			if diff := cmp.Diff(want, diags[0]); diff != "" {
				t.Errorf("diagnostic mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestScannerLexemeIsSourceSlice(t *testing.T) {
	source := `var name = "quoted" + 12.5;`
	for _, tok := range Scan(source, nil) {
		if tok.Type == EOF {
			continue
		}
		if !strings.Contains(source, tok.Lexeme) {
			t.Errorf("lexeme %q is not a slice of the source", tok.Lexeme)
		}
	}
}

func lettersOnly(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// Every lexeme scanned on its own yields a single token of the same kind.
func TestScannerLexemeRescan(t *testing.T) {
	src := `( ) { } , . - + ; / * ? : ! != = == > >= < <=
and class else false fun for if nil or return super this true var while
CLASS VAR While name _x9 "plain" "esc \" \\ \n" 0 42 3.25`
	r := &CollectingReporter{}
	tokens := Scan(src, r)
	require.Zero(t, r.Len(), "%v", r.Diagnostics())
	require.Greater(t, len(tokens), 40)

	for _, tok := range tokens[:len(tokens)-1] {
		t.Run(tok.Lexeme, func(t *testing.T) {
			again := Scan(tok.Lexeme, nil)
			require.Len(t, again, 2)
			assert.Equal(t, tok.Type, again[0].Type)
			assert.Equal(t, tok.Literal, again[0].Literal)
			assert.Equal(t, EOF, again[1].Type)
		})
	}
}

// Generated literal streams must scan back to the values they were printed from.
func TestScannerGeneratedRoundTrip(t *testing.T) {
	faker := gofakeit.New(42)
	for round := 0; round < 20; round++ {
		var (
			parts []string
			want  []Token
		)
		for i := 0; i < 30; i++ {
			switch faker.Number(0, 3) {
			case 0:
				n := Number(faker.Float64Range(0, 10000))
				parts = append(parts, formatNumber(float64(n)))
				want = append(want, Token{Type: NUMBER, Literal: n})
			case 1:
				s := faker.Sentence(faker.Number(1, 6))
				if faker.Bool() {
					s += "\n\"quoted\"\\"
				}
				parts = append(parts, quoteString(s))
				want = append(want, Token{Type: STRING, Literal: String(s)})
			case 2:
				name := "id_" + lettersOnly(faker.Word())
				parts = append(parts, name)
				want = append(want, Token{Type: IDENTIFIER, Lexeme: name})
			default:
				b := faker.Bool()
				if b {
					parts = append(parts, "true")
					want = append(want, Token{Type: TRUE, Literal: Boolean(true)})
				} else {
					parts = append(parts, "false")
					want = append(want, Token{Type: FALSE, Literal: Boolean(false)})
				}
			}
		}

		r := &CollectingReporter{}
		tokens := Scan(strings.Join(parts, " "), r)
		if r.Len() != 0 {
			t.Fatalf("round %d: unexpected diagnostics %v", round, r.Diagnostics())
		}
		if len(tokens) != len(want)+1 {
			t.Fatalf("round %d: got %d tokens, want %d", round, len(tokens), len(want)+1)
		}
		for i, w := range want {
			got := tokens[i]
			if got.Type != w.Type {
				t.Fatalf("round %d token %d: type %s, want %s", round, i, got.Type, w.Type)
			}
			if w.Type == IDENTIFIER {
				if got.Lexeme != w.Lexeme {
					t.Errorf("round %d token %d: lexeme %q, want %q", round, i, got.Lexeme, w.Lexeme)
				}
				continue
			}
			if diff := cmp.Diff(w.Literal, got.Literal); diff != "" {
				t.Errorf("round %d token %d literal mismatch (-want +got):\n%s", round, i, diff)
			}
		}
	}
}
