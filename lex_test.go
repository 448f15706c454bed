package ratcalc

import (
	"errors"
	"io"
	"testing"
)

func numTok(num, den int64) Token {
	return Token{Kind: TokenNumber, Num: ratN(num, den)}
}

func opTok(op Operator) Token {
	return Token{Kind: TokenOperator, Op: op}
}

func idTok(id string) Token {
	return Token{Kind: TokenId, Id: id}
}

var (
	lparen = Token{Kind: TokenBracket, Bracket: ParenLeft}
	rparen = Token{Kind: TokenBracket, Bracket: ParenRight}
)

func sameToken(a, b Token) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case TokenNumber:
		return a.Num.Equal(b.Num)
	case TokenBracket:
		return a.Bracket == b.Bracket
	case TokenOperator:
		return a.Op == b.Op
	case TokenId:
		return a.Id == b.Id
	}
	return true
}

func scanAll(t *testing.T, src string) ([]Token, error) {
	t.Helper()
	sc := NewScanner(src)
	var tokens []Token
	for {
		tok, err := sc.Next()
		if err == io.EOF {
			return tokens, nil
		}
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
	}
}

func TestScan(t *testing.T) {
	cases := []struct {
		src    string
		tokens []Token
	}{
		{"", nil},
		{" \t \r\n ", nil},
		{"0", []Token{numTok(0, 1)}},
		{"42", []Token{numTok(42, 1)}},
		{"1.1", []Token{numTok(11, 10)}},
		{".5", []Token{numTok(1, 2)}},
		{"0.25", []Token{numTok(1, 4)}},
		{"0b101", []Token{numTok(5, 1)}},
		{"0o17", []Token{numTok(15, 1)}},
		{"0xff", []Token{numTok(255, 1)}},
		{"0xFF", []Token{numTok(255, 1)}},
		{"0xff.8", []Token{numTok(511, 2)}},
		{"0b1.1", []Token{numTok(3, 2)}},
		// a radix prefix with no digit of that radix ends the number
		{"0b2", []Token{numTok(0, 1), numTok(2, 1)}},
		{"2*3+4", []Token{numTok(2, 1), opTok(OpMultiply), numTok(3, 1), opTok(OpPlus), numTok(4, 1)}},
		{"16 mod 3", []Token{numTok(16, 1), opTok(OpModulo), numTok(3, 1)}},
		{"5%3", []Token{numTok(5, 1), opTok(OpModulo), numTok(3, 1)}},
		{"2^10", []Token{numTok(2, 1), opTok(OpPower), numTok(10, 1)}},
		{"1-2/3", []Token{numTok(1, 1), opTok(OpMinus), numTok(2, 1), opTok(OpDivide), numTok(3, 1)}},
		{"5!", []Token{numTok(5, 1), {Kind: TokenFactorial}}},
		{"sqrt(2)", []Token{idTok("sqrt"), lparen, numTok(2, 1), rparen}},
		{"root(2, 64)", []Token{idTok("root"), lparen, numTok(2, 1), {Kind: TokenComma}, numTok(64, 1), rparen}},
		{"pi()", []Token{idTok("pi"), lparen, rparen}},
		{"my_const2()", []Token{idTok("my_const2"), lparen, rparen}},
		{"modx", []Token{idTok("modx")}},
		{"|3|", []Token{{Kind: TokenBracket, Bracket: VerticalLine}, numTok(3, 1), {Kind: TokenBracket, Bracket: VerticalLine}}},
		{"  1\t+ 2 ", []Token{numTok(1, 1), opTok(OpPlus), numTok(2, 1)}},
		{"2(3)", []Token{numTok(2, 1), lparen, numTok(3, 1), rparen}},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			tokens, err := scanAll(t, c.src)
			if err != nil {
				t.Fatalf("scan %q err = %v", c.src, err)
			}
			if len(tokens) != len(c.tokens) {
				t.Fatalf("scan %q = %v, want %v", c.src, tokens, c.tokens)
			}
			for i := range tokens {
				if !sameToken(tokens[i], c.tokens[i]) {
					t.Errorf("scan %q token %d = %v, want %v", c.src, i, tokens[i], c.tokens[i])
				}
			}
		})
	}
}

func TestScanErrors(t *testing.T) {
	cases := []struct {
		src string
		col int
	}{
		{"@", 1},
		{"1 ` 2", 3},
		{"2*3 $", 5},
		{".x", 2},
		{".", 1},
		{"1.&", 3},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			_, err := scanAll(t, c.src)
			var lexErr *LexError
			if !errors.As(err, &lexErr) {
				t.Fatalf("scan %q err = %v, want LexError", c.src, err)
			}
			if lexErr.Pos() != c.col {
				t.Errorf("scan %q error column = %d, want %d", c.src, lexErr.Pos(), c.col)
			}
		})
	}
}

func TestFormatScanRoundTrip(t *testing.T) {
	// Rendering a value and scanning it back reproduces the value up to the
	// rendering precision.
	const prec = 12
	grid := ratN(1, 1)
	for i := 0; i < prec; i++ {
		grid = grid.Mul(ratN(1, 10))
	}
	for _, n := range []Number{ratN(1, 4), ratN(2, 3), FromInt(42), ratN(22, 7), Pi()} {
		s := n.ToString(Dec, prec)
		tokens, err := scanAll(t, s)
		if err != nil {
			t.Fatalf("scan %q err = %v", s, err)
		}
		if len(tokens) != 1 || tokens[0].Kind != TokenNumber {
			t.Fatalf("scan %q = %v, want one number", s, tokens)
		}
		if diff := tokens[0].Num.Sub(n).Abs(); diff.Cmp(grid) > 0 {
			t.Errorf("round trip of %v through %q drifted by %v", n, s, diff)
		}
	}
}

func TestScanEOFSticky(t *testing.T) {
	sc := NewScanner("1")
	if _, err := sc.Next(); err != nil {
		t.Fatalf("first Next err = %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := sc.Next(); err != io.EOF {
			t.Fatalf("Next after end err = %v, want io.EOF", err)
		}
	}
}
