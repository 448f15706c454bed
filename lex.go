package ratcalc

import (
	"io"
	"math/big"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Bracket identifies a grouping character.
type Bracket int

// The bracket kinds.
const (
	ParenLeft Bracket = iota
	ParenRight
	VerticalLine
)

// Operator identifies a binary operator.
type Operator int

// The operator kinds. OpModulo is produced by both '%' and the keyword
// "mod".
const (
	OpPlus Operator = iota
	OpMinus
	OpMultiply
	OpDivide
	OpPower
	OpModulo
)

func (op Operator) String() string {
	switch op {
	case OpPlus:
		return "+"
	case OpMinus:
		return "-"
	case OpMultiply:
		return "*"
	case OpDivide:
		return "/"
	case OpPower:
		return "^"
	case OpModulo:
		return "mod"
	}
	return "op(?)"
}

// TokenKind discriminates the variants of Token.
type TokenKind int

// The token kinds.
const (
	TokenNumber TokenKind = iota
	TokenBracket
	TokenFactorial
	TokenComma
	TokenOperator
	TokenId
)

// Token is one lexical element of an expression. Exactly one of the payload
// fields is meaningful, selected by Kind.
type Token struct {
	Kind    TokenKind
	Num     Number
	Bracket Bracket
	Op      Operator
	Id      string
}

func (t Token) String() string {
	switch t.Kind {
	case TokenNumber:
		return t.Num.String()
	case TokenBracket:
		switch t.Bracket {
		case ParenLeft:
			return "("
		case ParenRight:
			return ")"
		case VerticalLine:
			return "|"
		}
	case TokenFactorial:
		return "!"
	case TokenComma:
		return ","
	case TokenOperator:
		return t.Op.String()
	case TokenId:
		return t.Id
	}
	return "token(?)"
}

type scanState int

const (
	stateStart scanState = iota
	stateIdent
	stateNumberStart // a leading 0, possibly a radix prefix
	stateNumber
	stateFractionStart // a bare '.', must be followed by a digit
	stateFraction
)

// Scanner converts an expression string into a finite, forward-only Token
// sequence. Next returns io.EOF once the input is exhausted; a Scanner is
// not restartable, so a new scan needs a new Scanner.
type Scanner struct {
	src   string
	off   int // byte offset into src
	col   int // runes consumed, for error positions
	state scanState

	buf    rune // pending rune pushed back by a state transition
	hasBuf bool
	done   bool

	ident strings.Builder
	radix int
	num   *big.Int
	fract int // fractional digits accumulated
}

// NewScanner creates a Scanner over s.
func NewScanner(s string) *Scanner {
	return &Scanner{src: s, num: new(big.Int)}
}

// read returns the next rune of the input, preferring a pushed-back one.
func (s *Scanner) read() (rune, bool) {
	if s.hasBuf {
		s.hasBuf = false
		return s.buf, true
	}
	if s.off >= len(s.src) {
		return 0, false
	}
	r, sz := utf8.DecodeRuneInString(s.src[s.off:])
	s.off += sz
	s.col++
	return r, true
}

// unread pushes r back so the next read returns it again.
func (s *Scanner) unread(r rune) {
	if s.hasBuf {
		panic("ratcalc: double unread")
	}
	s.buf = r
	s.hasBuf = true
}

// Next scans the next token. It returns io.EOF after the last token; any
// other error stops the scan for good.
func (s *Scanner) Next() (Token, error) {
	if s.done && !s.hasBuf {
		return Token{}, io.EOF
	}
	for {
		r, ok := s.read()
		if !ok {
			s.done = true
			tok, emitted, err := s.finish()
			if err != nil {
				return Token{}, err
			}
			if !emitted {
				return Token{}, io.EOF
			}
			return tok, nil
		}
		switch s.state {
		case stateStart:
			tok, emitted, err := s.startRune(r)
			if err != nil {
				s.done = true
				return Token{}, err
			}
			if emitted {
				return tok, nil
			}
		case stateIdent:
			if isIdentPart(r) {
				s.ident.WriteRune(r)
				continue
			}
			s.unread(r)
			return s.emitIdent(), nil
		case stateNumberStart:
			switch {
			case r == 'b':
				s.beginNumber(2)
			case r == 'o':
				s.beginNumber(8)
			case r == 'x':
				s.beginNumber(16)
			case r == '.':
				s.beginFraction(10)
			case r >= '0' && r <= '9':
				s.beginNumber(10)
				s.num.SetInt64(int64(r - '0'))
			default:
				s.unread(r)
				s.state = stateStart
				return Token{Kind: TokenNumber}, nil // a lone 0
			}
		case stateNumber:
			if r == '.' {
				s.state = stateFraction
				continue
			}
			d, ok := digitVal(r, s.radix)
			if !ok {
				s.unread(r)
				return s.emitNumber(), nil
			}
			s.accumulate(d)
		case stateFractionStart:
			d, ok := digitVal(r, s.radix)
			if !ok {
				s.done = true
				return Token{}, &LexError{Col: s.col}
			}
			s.state = stateFraction
			s.accumulate(d)
			s.fract = 1
		case stateFraction:
			d, ok := digitVal(r, s.radix)
			if !ok {
				s.unread(r)
				return s.emitNumber(), nil
			}
			s.accumulate(d)
			s.fract++
		}
	}
}

// startRune handles a rune in the start state. Single-character tokens are
// emitted immediately; anything longer switches the accumulating state.
func (s *Scanner) startRune(r rune) (Token, bool, error) {
	switch {
	case unicode.IsSpace(r):
		return Token{}, false, nil
	case r == '(':
		return Token{Kind: TokenBracket, Bracket: ParenLeft}, true, nil
	case r == ')':
		return Token{Kind: TokenBracket, Bracket: ParenRight}, true, nil
	case r == '|':
		return Token{Kind: TokenBracket, Bracket: VerticalLine}, true, nil
	case r == ',':
		return Token{Kind: TokenComma}, true, nil
	case r == '!':
		return Token{Kind: TokenFactorial}, true, nil
	case r == '+':
		return Token{Kind: TokenOperator, Op: OpPlus}, true, nil
	case r == '-':
		return Token{Kind: TokenOperator, Op: OpMinus}, true, nil
	case r == '*':
		return Token{Kind: TokenOperator, Op: OpMultiply}, true, nil
	case r == '/':
		return Token{Kind: TokenOperator, Op: OpDivide}, true, nil
	case r == '^':
		return Token{Kind: TokenOperator, Op: OpPower}, true, nil
	case r == '%':
		return Token{Kind: TokenOperator, Op: OpModulo}, true, nil
	case r == '0':
		s.state = stateNumberStart
		return Token{}, false, nil
	case r >= '1' && r <= '9':
		s.beginNumber(10)
		s.num.SetInt64(int64(r - '0'))
		return Token{}, false, nil
	case r == '.':
		s.beginFraction(10)
		s.state = stateFractionStart
		return Token{}, false, nil
	case isIdentStart(r):
		s.ident.Reset()
		s.ident.WriteRune(r)
		s.state = stateIdent
		return Token{}, false, nil
	}
	return Token{}, false, &LexError{Col: s.col}
}

// finish emits the token pending in the current state at end of input.
func (s *Scanner) finish() (Token, bool, error) {
	switch s.state {
	case stateStart:
		return Token{}, false, nil
	case stateIdent:
		return s.emitIdent(), true, nil
	case stateNumberStart:
		s.state = stateStart
		return Token{Kind: TokenNumber}, true, nil
	case stateNumber, stateFraction:
		return s.emitNumber(), true, nil
	default: // stateFractionStart: a trailing bare '.'
		return Token{}, false, &LexError{Col: s.col}
	}
}

func (s *Scanner) beginNumber(radix int) {
	s.state = stateNumber
	s.radix = radix
	s.num.SetInt64(0)
	s.fract = 0
}

func (s *Scanner) beginFraction(radix int) {
	s.state = stateFraction
	s.radix = radix
	s.num.SetInt64(0)
	s.fract = 0
}

func (s *Scanner) accumulate(d int64) {
	s.num.Mul(s.num, big.NewInt(int64(s.radix)))
	s.num.Add(s.num, big.NewInt(d))
}

// emitNumber builds the Number token for the accumulated digits: the integer
// value divided by radix^fract, an exact rational.
func (s *Scanner) emitNumber() Token {
	den := new(big.Int).Exp(big.NewInt(int64(s.radix)), big.NewInt(int64(s.fract)), nil)
	val := Number{new(big.Rat).SetFrac(new(big.Int).Set(s.num), den)}
	s.state = stateStart
	return Token{Kind: TokenNumber, Num: val}
}

// emitIdent builds an identifier token, folding the keyword "mod" into the
// modulo operator.
func (s *Scanner) emitIdent() Token {
	id := s.ident.String()
	s.state = stateStart
	if id == "mod" {
		return Token{Kind: TokenOperator, Op: OpModulo}
	}
	return Token{Kind: TokenId, Id: id}
}

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || (r >= '0' && r <= '9')
}

func digitVal(r rune, radix int) (int64, bool) {
	var d int64
	switch {
	case r >= '0' && r <= '9':
		d = int64(r - '0')
	case r >= 'a' && r <= 'f':
		d = int64(r-'a') + 10
	case r >= 'A' && r <= 'F':
		d = int64(r-'A') + 10
	default:
		return 0, false
	}
	if d >= int64(radix) {
		return 0, false
	}
	return d, true
}
