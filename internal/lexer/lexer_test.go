package lexer

import (
	"testing"

	"github.com/snek-lang/snek/internal/token"
)

func collectKinds(t *testing.T, src string) []token.Kind {
	t.Helper()
	lex, err := New([]byte(src), "<test>", 1, 1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var kinds []token.Kind
	for {
		tok, err := lex.ReadToken()
		if err != nil {
			t.Fatalf("ReadToken: %v", err)
		}
		kinds = append(kinds, tok.Kind)
		if tok.Kind == token.Eof {
			return kinds
		}
	}
}

func TestLexerPunctuationAndOperators(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []token.Kind
	}{
		{
			name:  "simple assignment",
			input: "let x = 1 + 2",
			want: []token.Kind{
				token.KeywordLet, token.Id, token.Assign, token.Int, token.Add, token.Int,
				token.NewLine, token.Eof,
			},
		},
		{
			name:  "compound assignment operators",
			input: "x += 1\ny &&= false",
			want: []token.Kind{
				token.Id, token.AssignAdd, token.Int, token.NewLine,
				token.Id, token.AssignLogicalAnd, token.KeywordFalse, token.NewLine,
				token.Eof,
			},
		},
		{
			name:  "spread and ternary",
			input: "[...xs]\na ? b",
			want: []token.Kind{
				token.LeftBracket, token.Spread, token.Id, token.RightBracket, token.NewLine,
				token.Id, token.Ternary, token.Id, token.NewLine,
				token.Eof,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := collectKinds(t, tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("%s: got %d tokens %v, want %d %v", tt.name, len(got), got, len(tt.want), tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("%s: token %d = %v, want %v", tt.name, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLexerIndentation(t *testing.T) {
	src := "if true\n    x\n    y\nz\n"
	lex, err := New([]byte(src), "<test>", 1, 1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var kinds []token.Kind
	for {
		tok, err := lex.ReadToken()
		if err != nil {
			t.Fatalf("ReadToken: %v", err)
		}
		kinds = append(kinds, tok.Kind)
		if tok.Kind == token.Eof {
			break
		}
	}
	var sawIndent, sawDedent bool
	for _, k := range kinds {
		if k == token.Indent {
			sawIndent = true
		}
		if k == token.Dedent {
			sawDedent = true
		}
	}
	if !sawIndent || !sawDedent {
		t.Fatalf("expected both Indent and Dedent tokens, got %v", kinds)
	}
}

func TestLexerStringEscapes(t *testing.T) {
	lex, err := New([]byte(`"a\nb\t\"c\""`), "<test>", 1, 1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	tok, err := lex.ReadToken()
	if err != nil {
		t.Fatalf("ReadToken: %v", err)
	}
	if tok.Kind != token.String {
		t.Fatalf("kind = %v, want String", tok.Kind)
	}
	want := "a\nb\t\"c\""
	if tok.Text != want {
		t.Errorf("text = %q, want %q", tok.Text, want)
	}
}

func TestLexerInvalidUTF8(t *testing.T) {
	_, err := New([]byte{0xff, 0xfe}, "<test>", 1, 1)
	if err == nil {
		t.Fatal("expected an error decoding invalid UTF-8")
	}
}

func TestLexerUnreadToken(t *testing.T) {
	lex, err := New([]byte("a b"), "<test>", 1, 1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	first, err := lex.ReadToken()
	if err != nil {
		t.Fatalf("ReadToken: %v", err)
	}
	lex.UnreadToken(first)
	again, err := lex.ReadToken()
	if err != nil {
		t.Fatalf("ReadToken after unread: %v", err)
	}
	if again.Text != first.Text || again.Kind != first.Kind {
		t.Fatalf("UnreadToken did not replay the same token: got %+v, want %+v", again, first)
	}
}
