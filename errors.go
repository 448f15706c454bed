package ratcalc

import (
	"errors"
	"strconv"
)

// Errors reported by Number operations.
var (
	ErrDivisionZero       = errors.New("division by zero")
	ErrFactorialNegative  = errors.New("factorial of a negative number")
	ErrLogUndefinedBase   = errors.New("logarithm base must be positive")
	ErrLogUndefinedNumber = errors.New("logarithm of a non-positive number")
	ErrZeroNthRoot        = errors.New("zeroth root is undefined")
	ErrNegativeRoot       = errors.New("even root of a negative number")
	ErrOutOfRange         = errors.New("argument outside the function domain")

	// ErrNoConvergence reports an iterative computation that hit its
	// iteration cap before reaching the guarantee precision, or an argument
	// too large for the computation to ever finish.
	ErrNoConvergence = errors.New("computation did not converge within the iteration limit")
)

// Errors reported by the token validator. Evaluate also returns them when it
// detects an inconsistency the validator missed.
var (
	ErrMissingOperand   = errors.New("operator is missing an operand")
	ErrMissingOperator  = errors.New("adjacent values with no operator between them")
	ErrInvalidToken     = errors.New("invalid token")
	ErrInvalidArguments = errors.New("wrong number of arguments")
)

// LexError indicates a character that can neither extend the token being
// scanned nor start a new one. It implements InputError.
type LexError struct {
	// Col is the total number of runes scanned up to and including the
	// offending one.
	Col int
}

func (err *LexError) Error() string {
	return "unsupported token at column " + strconv.Itoa(err.Col)
}

func (err *LexError) Pos() int {
	return err.Col
}

// InputError is an error with position information.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the character that caused it.
	Pos() int
}

var _ InputError = (*LexError)(nil)
