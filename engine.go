package ratcalc

// Engine evaluates a token sequence against a set of named variables.
type Engine interface {
	// ValidateTokens checks the sequence for structural errors that are
	// cheaper to reject up front than to detect mid-evaluation.
	ValidateTokens(tokens []Token, vars map[string]Variable) error
	// Evaluate computes the value of the sequence. The sequence should have
	// passed ValidateTokens first; Evaluate still fails, rather than
	// panicking, on sequences that did not.
	Evaluate(tokens []Token, vars map[string]Variable) (Number, error)
}

// Execute validates and then evaluates tokens on e.
func Execute(e Engine, tokens []Token, vars map[string]Variable) (Number, error) {
	if err := e.ValidateTokens(tokens, vars); err != nil {
		return Number{}, err
	}
	return e.Evaluate(tokens, vars)
}

type pendingKind int

const (
	pendOperator pendingKind = iota
	pendOpenParen
	pendComma
	pendVariable
)

// pending is one entry on the operator stack: an operator awaiting its right
// operand, a grouping barrier, or a call awaiting its arguments.
type pending struct {
	kind pendingKind
	op   Operator
	v    Variable
}

// ShuntingYard evaluates infix token sequences with a pair of stacks, one
// for operands and one for operators and call frames. The zero value is
// ready to use; a single ShuntingYard must not be shared between goroutines.
type ShuntingYard struct {
	operators []pending
	operands  []Number
}

// NewShuntingYard returns a ready engine.
func NewShuntingYard() *ShuntingYard {
	return &ShuntingYard{}
}

var _ Engine = (*ShuntingYard)(nil)

// ValidateTokens rejects sequences that cannot evaluate: dangling operators,
// adjacent numbers, unknown or mis-called identifiers, mismatched argument
// counts, unbalanced parens, and vertical lines, which the scanner accepts
// but no engine interprets.
//
// Every identifier must be applied with parens, constants included, so "pi"
// alone is an error and "pi()" is the way to spell it. Two bracketed groups
// in a row, as in "(1+2)(3+4)", are rejected rather than multiplied.
func (sy *ShuntingYard) ValidateTokens(tokens []Token, vars map[string]Variable) error {
	// argCounts holds one entry per open paren: how many comma-separated
	// values the group still expects. Plain parens expect exactly one.
	var argCounts []int
	for i := 0; i < len(tokens); i++ {
		switch tok := tokens[i]; tok.Kind {
		case TokenOperator:
			if i == len(tokens)-1 {
				return ErrMissingOperand
			}
			next := tokens[i+1]
			if next.Kind == TokenOperator && next.Op != OpPlus && next.Op != OpMinus {
				return ErrMissingOperand
			}
		case TokenNumber:
			if i+1 < len(tokens) && tokens[i+1].Kind == TokenNumber {
				return ErrMissingOperator
			}
		case TokenId:
			if i+1 >= len(tokens) || !isBracket(tokens[i+1], ParenLeft) {
				return ErrInvalidToken
			}
			v, ok := vars[tok.Id]
			if !ok {
				return ErrInvalidToken
			}
			i++ // the '('
			if v.Argc() == 0 {
				// Zero-arity calls are exactly "name()".
				if i+1 >= len(tokens) || !isBracket(tokens[i+1], ParenRight) {
					return ErrInvalidArguments
				}
				i++ // the ')'
				if i+1 < len(tokens) && isBracket(tokens[i+1], ParenLeft) {
					return ErrMissingOperator
				}
				continue
			}
			argCounts = append(argCounts, v.Argc())
		case TokenComma:
			if len(argCounts) == 0 || argCounts[len(argCounts)-1] == 0 {
				return ErrInvalidArguments
			}
			argCounts[len(argCounts)-1]--
		case TokenBracket:
			switch tok.Bracket {
			case ParenLeft:
				argCounts = append(argCounts, 1)
			case ParenRight:
				if len(argCounts) == 0 {
					return ErrInvalidToken
				}
				if argCounts[len(argCounts)-1] != 1 {
					return ErrInvalidArguments
				}
				argCounts = argCounts[:len(argCounts)-1]
				if i+1 < len(tokens) && isBracket(tokens[i+1], ParenLeft) {
					return ErrMissingOperator
				}
			case VerticalLine:
				return ErrInvalidToken
			}
		}
	}
	if len(argCounts) != 0 {
		return ErrInvalidToken
	}
	return nil
}

func isBracket(tok Token, b Bracket) bool {
	return tok.Kind == TokenBracket && tok.Bracket == b
}

// Evaluate runs the token sequence through the yard. Runs of plus and minus
// fold into a single sign, which attaches to the following number when it
// has no left operand; implicit multiplication is inserted between a value
// and a following number, identifier, or open paren.
func (sy *ShuntingYard) Evaluate(tokens []Token, vars map[string]Variable) (Number, error) {
	sy.operators = sy.operators[:0]
	sy.operands = sy.operands[:0]

	var lastTok Token
	haveLast := false
	negate := false
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		switch tok.Kind {
		case TokenNumber:
			n := tok.Num
			if negate {
				n = n.Neg()
				negate = false
			}
			sy.operands = append(sy.operands, n)
		case TokenOperator:
			op := tok.Op
			// Fold "4--8" into "4+8" and "1+-2" into "1-2".
			for i+1 < len(tokens) && isSignPair(op, tokens[i+1]) {
				if op == tokens[i+1].Op {
					op = OpPlus
				} else {
					op = OpMinus
				}
				i++
			}
			if (op == OpPlus || op == OpMinus) && unaryPosition(lastTok, haveLast) &&
				i+1 < len(tokens) && tokens[i+1].Kind == TokenNumber {
				negate = op == OpMinus
				continue
			}
			if err := sy.pushOperator(op); err != nil {
				return Number{}, err
			}
		case TokenFactorial:
			n, ok := sy.popOperand()
			if !ok {
				return Number{}, ErrMissingOperand
			}
			res, err := n.Factorial()
			if err != nil {
				return Number{}, err
			}
			sy.operands = append(sy.operands, res)
		case TokenId:
			v, ok := vars[tok.Id]
			if !ok {
				return Number{}, ErrInvalidToken
			}
			sy.operators = append(sy.operators, pending{kind: pendVariable, v: v})
		case TokenComma:
			res, got, err := sy.finalize()
			if err != nil {
				return Number{}, err
			}
			if got {
				sy.operands = append(sy.operands, res)
			}
			sy.operators = append(sy.operators, pending{kind: pendComma})
		case TokenBracket:
			switch tok.Bracket {
			case ParenLeft:
				sy.operators = append(sy.operators, pending{kind: pendOpenParen})
			case ParenRight:
				if err := sy.closeBracket(); err != nil {
					return Number{}, err
				}
			default:
				return Number{}, ErrInvalidToken
			}
		}

		// Implicit multiplication: a completed value directly followed by the
		// start of another one, as in "2(3+4)" or "3pi()".
		if i+1 < len(tokens) && implicitMul(tok, tokens[i+1]) {
			if err := sy.pushOperator(OpMultiply); err != nil {
				return Number{}, err
			}
		}
		lastTok = tok
		haveLast = true
	}

	res, got, err := sy.finalize()
	if err != nil {
		return Number{}, err
	}
	if got {
		return res, nil
	}
	n, ok := sy.popOperand()
	if !ok {
		return Number{}, ErrMissingOperand
	}
	return n, nil
}

// isSignPair reports whether op and the token after it are both additive
// signs, and so fold into one.
func isSignPair(op Operator, next Token) bool {
	if op != OpPlus && op != OpMinus {
		return false
	}
	return next.Kind == TokenOperator && (next.Op == OpPlus || next.Op == OpMinus)
}

// unaryPosition reports whether an additive sign at this point has no left
// operand and therefore attaches to the following number.
func unaryPosition(last Token, haveLast bool) bool {
	if !haveLast {
		return true
	}
	switch last.Kind {
	case TokenComma:
		return true
	case TokenBracket:
		return last.Bracket == ParenLeft
	case TokenOperator:
		switch last.Op {
		case OpMultiply, OpDivide, OpPower, OpModulo:
			return true
		}
	}
	return false
}

// implicitMul reports whether a multiplication is implied between tok and
// next.
func implicitMul(tok, next Token) bool {
	switch tok.Kind {
	case TokenNumber, TokenFactorial:
	case TokenBracket:
		if tok.Bracket != ParenRight {
			return false
		}
	default:
		return false
	}
	switch next.Kind {
	case TokenNumber, TokenId:
		return true
	case TokenBracket:
		return next.Bracket == ParenLeft
	}
	return false
}

// pushOperator applies stacked operators of no lower precedence, then stacks
// op. All operators associate left.
func (sy *ShuntingYard) pushOperator(op Operator) error {
	for len(sy.operators) > 0 {
		top := sy.operators[len(sy.operators)-1]
		if top.kind != pendOperator || precedence(op) > precedence(top.op) {
			break
		}
		sy.operators = sy.operators[:len(sy.operators)-1]
		rhs, ok := sy.popOperand()
		if !ok {
			return ErrMissingOperand
		}
		lhs, err := sy.lhsOperand(top.op)
		if err != nil {
			return err
		}
		res, err := evalOp(top.op, lhs, rhs)
		if err != nil {
			return err
		}
		sy.operands = append(sy.operands, res)
	}
	sy.operators = append(sy.operators, pending{kind: pendOperator, op: op})
	return nil
}

// lhsOperand pops the left operand for op. An additive sign with nothing on
// its left takes zero, which makes "-pi()" and "(-3)" work without special
// cases upstream.
func (sy *ShuntingYard) lhsOperand(op Operator) (Number, error) {
	if lhs, ok := sy.popOperand(); ok {
		return lhs, nil
	}
	if op == OpPlus || op == OpMinus {
		return Zero(), nil
	}
	return Number{}, ErrMissingOperand
}

// closeBracket finalizes the innermost group. If the group was a call's
// argument list, the call is applied.
func (sy *ShuntingYard) closeBracket() error {
	res, got, err := sy.finalize()
	if err != nil {
		return err
	}
	if got {
		sy.operands = append(sy.operands, res)
	}
	if len(sy.operators) > 0 && sy.operators[len(sy.operators)-1].kind == pendVariable {
		call := sy.operators[len(sy.operators)-1]
		sy.operators = sy.operators[:len(sy.operators)-1]
		argc := call.v.Argc()
		args := make([]Number, argc)
		for i := argc - 1; i >= 0; i-- {
			a, ok := sy.popOperand()
			if !ok {
				return ErrInvalidArguments
			}
			args[i] = a
		}
		n, err := call.v.Calc(args)
		if err != nil {
			return err
		}
		sy.operands = append(sy.operands, n)
	}
	return nil
}

// finalize applies stacked operators down to and including the nearest
// barrier, which is discarded. Call frames stay put so that closeBracket
// finds them. It reports whether it produced a value; an empty group, as in
// "pi()", produces none.
func (sy *ShuntingYard) finalize() (Number, bool, error) {
	var res Number
	got := false
	for len(sy.operators) > 0 {
		top := sy.operators[len(sy.operators)-1]
		if top.kind == pendVariable {
			break
		}
		sy.operators = sy.operators[:len(sy.operators)-1]
		if top.kind != pendOperator {
			break
		}
		rhs := res
		if !got {
			n, ok := sy.popOperand()
			if !ok {
				return Number{}, false, ErrMissingOperand
			}
			rhs = n
		}
		lhs, err := sy.lhsOperand(top.op)
		if err != nil {
			return Number{}, false, err
		}
		n, err := evalOp(top.op, lhs, rhs)
		if err != nil {
			return Number{}, false, err
		}
		res = n
		got = true
	}
	return res, got, nil
}

func (sy *ShuntingYard) popOperand() (Number, bool) {
	if len(sy.operands) == 0 {
		return Number{}, false
	}
	n := sy.operands[len(sy.operands)-1]
	sy.operands = sy.operands[:len(sy.operands)-1]
	return n, true
}

func evalOp(op Operator, lhs, rhs Number) (Number, error) {
	switch op {
	case OpPlus:
		return lhs.Add(rhs), nil
	case OpMinus:
		return lhs.Sub(rhs), nil
	case OpMultiply:
		return lhs.Mul(rhs), nil
	case OpDivide:
		return lhs.Div(rhs)
	case OpPower:
		return lhs.Power(rhs)
	case OpModulo:
		return lhs.Modulo(rhs)
	}
	return Number{}, ErrInvalidToken
}

func precedence(op Operator) int {
	switch op {
	case OpPlus, OpMinus:
		return 0
	case OpMultiply, OpDivide:
		return 1
	}
	return 2 // power, modulo
}
