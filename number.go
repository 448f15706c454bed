package ratcalc

import (
	"math"
	"math/big"
	"math/rand"
	"strings"

	"github.com/zephyrtronium/bigfloat"
)

// Radix is the numeral base used to render a Number.
type Radix int

// The supported output radices.
const (
	Bin Radix = 2
	Oct Radix = 8
	Dec Radix = 10
	Hex Radix = 16
)

// DefaultPrecision is the number of fractional digits String renders.
const DefaultPrecision = 6

const (
	// epsilonDigits sets the guarantee precision: iterative approximations
	// run until successive terms differ by less than 10^-epsilonDigits.
	epsilonDigits = 12
	// clampDigits is the decimal grid intermediate results are rounded to.
	// It carries guard digits past the guarantee so clamping never eats into
	// it, while keeping denominators bounded across iterations.
	clampDigits = epsilonDigits + 12
	// floatPrec is the precision in bits of internal big.Float scratch
	// values used for logarithms, gamma, and the pi and e snapshots.
	floatPrec = 128
	// maxIterations caps every convergence loop so adversarial inputs
	// surface ErrNoConvergence instead of spinning.
	maxIterations = 500
	// maxFactorialArg bounds the iterative factorial product.
	maxFactorialArg = 100000
	// maxExponentBits bounds integer exponents in Power and Root degrees.
	maxExponentBits = 20
)

// Number is an exact rational value. The zero value is 0. Numbers are
// immutable: every operation returns a new value and never mutates its
// operands.
type Number struct {
	r *big.Rat
}

var (
	ratZero    = new(big.Rat)
	intOne     = big.NewInt(1)
	ratHalf    = big.NewRat(1, 2)
	ratPi      *big.Rat
	ratE       *big.Rat
	ratEps     *big.Rat
	clampScale *big.Int
	epsScale   *big.Int
)

func init() {
	f := new(big.Float).SetPrec(floatPrec)
	ratPi, _ = bigfloat.Pi(f).Rat(nil)
	one := new(big.Float).SetPrec(floatPrec).SetInt64(1)
	ratE, _ = bigfloat.Exp(f, one).Rat(nil)
	epsScale = new(big.Int).Exp(big.NewInt(10), big.NewInt(epsilonDigits), nil)
	clampScale = new(big.Int).Exp(big.NewInt(10), big.NewInt(clampDigits), nil)
	ratEps = new(big.Rat).SetFrac(intOne, epsScale)
}

// New creates the rational num/den. It fails with ErrDivisionZero when den
// is zero.
func New(num, den int64) (Number, error) {
	if den == 0 {
		return Number{}, ErrDivisionZero
	}
	return Number{big.NewRat(num, den)}, nil
}

// FromInt creates the integer Number v.
func FromInt(v int64) Number {
	return Number{new(big.Rat).SetInt64(v)}
}

// FromBigInt creates the integer Number v.
func FromBigInt(v *big.Int) Number {
	return Number{new(big.Rat).SetInt(v)}
}

// Zero returns 0.
func Zero() Number { return Number{} }

// One returns 1.
func One() Number { return FromInt(1) }

// Pi returns the circle constant as a rational snapshot at the internal
// working precision.
func Pi() Number { return Number{ratPi} }

// E returns Euler's number as a rational snapshot at the internal working
// precision.
func E() Number { return Number{ratE} }

// Epsilon returns the guarantee precision: two results closer than this are
// considered equal by the convergence loops.
func Epsilon() Number { return Number{ratEps} }

// rat returns the backing rational, which must not be mutated.
func (n Number) rat() *big.Rat {
	if n.r == nil {
		return ratZero
	}
	return n.r
}

// Rat returns a copy of n as a big.Rat.
func (n Number) Rat() *big.Rat { return new(big.Rat).Set(n.rat()) }

// Sign returns -1, 0, or +1 depending on the sign of n.
func (n Number) Sign() int { return n.rat().Sign() }

// Cmp compares n and m, returning -1, 0, or +1.
func (n Number) Cmp(m Number) int { return n.rat().Cmp(m.rat()) }

// Equal reports whether n and m are the same rational value.
func (n Number) Equal(m Number) bool { return n.Cmp(m) == 0 }

// IsInt reports whether n is an integer.
func (n Number) IsInt() bool { return n.rat().IsInt() }

// Add returns n + m.
func (n Number) Add(m Number) Number {
	return Number{new(big.Rat).Add(n.rat(), m.rat())}
}

// Sub returns n - m.
func (n Number) Sub(m Number) Number {
	return Number{new(big.Rat).Sub(n.rat(), m.rat())}
}

// Mul returns n * m.
func (n Number) Mul(m Number) Number {
	return Number{new(big.Rat).Mul(n.rat(), m.rat())}
}

// Div returns n / m. It fails with ErrDivisionZero when m is zero.
func (n Number) Div(m Number) (Number, error) {
	if m.Sign() == 0 {
		return Number{}, ErrDivisionZero
	}
	return Number{new(big.Rat).Quo(n.rat(), m.rat())}, nil
}

// Neg returns -n.
func (n Number) Neg() Number {
	return Number{new(big.Rat).Neg(n.rat())}
}

// Abs returns |n|.
func (n Number) Abs() Number {
	return Number{new(big.Rat).Abs(n.rat())}
}

// Power raises n to a rational exponent. An integer exponent is applied by
// exponentiation by squaring on the reduced numerator and denominator; a
// fractional exponent p/q takes the q-th root first, then raises to p.
//
// Conventions: x^0 == 1 for every x including 0, and 0 raised to a negative
// exponent is also defined as 1 (a degenerate historical convention kept
// deliberately; both are covered by tests).
func (n Number) Power(exp Number) (Number, error) {
	e := exp.rat()
	if e.Sign() == 0 {
		return One(), nil
	}
	if n.Sign() == 0 && e.Sign() < 0 {
		return One(), nil
	}
	base := n
	if q := e.Denom(); q.Cmp(intOne) != 0 {
		r, err := n.Root(FromBigInt(q))
		if err != nil {
			return Number{}, err
		}
		base = r
	}
	return base.powInt(e.Num())
}

// powInt raises n to an integer power by squaring the numerator and
// denominator. A negative power inverts the result.
func (n Number) powInt(p *big.Int) (Number, error) {
	abs := new(big.Int).Abs(p)
	if abs.BitLen() > maxExponentBits {
		return Number{}, ErrNoConvergence
	}
	r := n.rat()
	num := new(big.Int).Exp(r.Num(), abs, nil)
	den := new(big.Int).Exp(r.Denom(), abs, nil)
	out := new(big.Rat).SetFrac(num, den)
	if p.Sign() < 0 {
		if out.Sign() == 0 {
			return Number{}, ErrDivisionZero
		}
		out.Inv(out)
	}
	return Number{out}, nil
}

// Remainder returns the truncating-division remainder of n by m; its sign
// follows n. It fails with ErrDivisionZero when m is zero.
func (n Number) Remainder(m Number) (Number, error) {
	if m.Sign() == 0 {
		return Number{}, ErrDivisionZero
	}
	q := new(big.Rat).Quo(n.rat(), m.rat())
	t := new(big.Int).Quo(q.Num(), q.Denom())
	prod := new(big.Rat).Mul(new(big.Rat).SetInt(t), m.rat())
	return Number{new(big.Rat).Sub(n.rat(), prod)}, nil
}

// Modulo returns the Euclidean-style floor modulo of n by m: the result has
// the sign of m and magnitude below |m|. It fails with ErrDivisionZero when
// m is zero.
func (n Number) Modulo(m Number) (Number, error) {
	rem, err := n.Remainder(m)
	if err != nil {
		return Number{}, err
	}
	return rem.Add(m).Remainder(m)
}

// Factorial returns n!. Negative arguments fail with ErrFactorialNegative.
// Integer arguments use the iterative product 2*3*...*n; non-integer
// arguments route through Gamma(n+1). Arguments above an internal cap fail
// with ErrNoConvergence rather than running unbounded.
func (n Number) Factorial() (Number, error) {
	if n.Sign() < 0 {
		return Number{}, ErrFactorialNegative
	}
	if !n.IsInt() {
		return n.Add(One()).Gamma()
	}
	v := n.rat().Num()
	if !v.IsInt64() || v.Int64() > maxFactorialArg {
		return Number{}, ErrNoConvergence
	}
	k := v.Int64()
	acc := big.NewInt(1)
	f := new(big.Int)
	for i := int64(2); i <= k; i++ {
		acc.Mul(acc, f.SetInt64(i))
	}
	return FromBigInt(acc), nil
}

// lanczos holds the g=7, n=9 coefficient set for the Lanczos approximation.
var lanczos = [...]float64{
	0.99999999999980993,
	676.5203681218851,
	-1259.1392167224028,
	771.32342877765313,
	-176.61502916214059,
	12.507343278686905,
	-0.13857109526572012,
	9.9843695780195716e-6,
	1.5056327351493116e-7,
}

// Gamma computes the gamma function by the Lanczos approximation, using the
// reflection formula for arguments below 1/2. Poles (zero and the negative
// integers) fail with ErrOutOfRange.
func (n Number) Gamma() (Number, error) {
	z := n.rat()
	if z.Sign() <= 0 && z.IsInt() {
		return Number{}, ErrOutOfRange
	}
	if new(big.Rat).Abs(z).Cmp(new(big.Rat).SetInt64(maxFactorialArg)) > 0 {
		return Number{}, ErrNoConvergence
	}
	if z.Cmp(ratHalf) < 0 {
		// gamma(z) = pi / (sin(pi*z) * gamma(1-z))
		s, err := Pi().Mul(n).Sin()
		if err != nil {
			return Number{}, err
		}
		if s.Sign() == 0 {
			return Number{}, ErrOutOfRange
		}
		g, err := One().Sub(n).Gamma()
		if err != nil {
			return Number{}, err
		}
		return Pi().Div(s.Mul(g))
	}
	zf := floatFromRat(z)
	zf.Sub(zf, big.NewFloat(1).SetPrec(floatPrec))
	x := big.NewFloat(lanczos[0]).SetPrec(floatPrec)
	den := new(big.Float).SetPrec(floatPrec)
	term := new(big.Float).SetPrec(floatPrec)
	for i := 1; i < len(lanczos); i++ {
		den.Add(zf, new(big.Float).SetInt64(int64(i)))
		term.SetFloat64(lanczos[i])
		x.Add(x, term.Quo(term, den))
	}
	// t = z + g + 1/2 with g = 7
	t := new(big.Float).SetPrec(floatPrec).Add(zf, big.NewFloat(7.5).SetPrec(floatPrec))
	// t^(z+1/2)
	e := new(big.Float).SetPrec(floatPrec).Add(zf, big.NewFloat(0.5).SetPrec(floatPrec))
	pw := bigfloat.Pow(new(big.Float).SetPrec(floatPrec), t, e)
	// e^-t
	ex := bigfloat.Exp(new(big.Float).SetPrec(floatPrec), new(big.Float).SetPrec(floatPrec).Neg(t))
	// sqrt(2*pi)
	twoPi := new(big.Float).SetPrec(floatPrec).SetRat(new(big.Rat).Add(ratPi, ratPi))
	s2p := new(big.Float).SetPrec(floatPrec).Sqrt(twoPi)
	out := new(big.Float).SetPrec(floatPrec).Mul(s2p, pw)
	out.Mul(out, ex)
	out.Mul(out, x)
	r, err := ratFromFloat(out)
	if err != nil {
		return Number{}, err
	}
	return Number{clampRat(r)}, nil
}

// Log returns the logarithm of n in the given base. It fails with
// ErrLogUndefinedBase when base <= 0 and ErrLogUndefinedNumber when n <= 0.
// log(1, base) is 0 and log(x, x) is 1 exactly.
func (n Number) Log(base Number) (Number, error) {
	if base.Sign() <= 0 {
		return Number{}, ErrLogUndefinedBase
	}
	if n.Sign() <= 0 {
		return Number{}, ErrLogUndefinedNumber
	}
	if n.Equal(One()) {
		return Zero(), nil
	}
	if n.Equal(base) {
		return One(), nil
	}
	ln := bigfloat.Log(new(big.Float).SetPrec(floatPrec), floatFromRat(n.rat()))
	lb := bigfloat.Log(new(big.Float).SetPrec(floatPrec), floatFromRat(base.rat()))
	if lb.Sign() == 0 {
		return Number{}, ErrDivisionZero
	}
	q := new(big.Float).SetPrec(floatPrec).Quo(ln, lb)
	r, err := ratFromFloat(q)
	if err != nil {
		return Number{}, err
	}
	return Number{clampRat(r)}, nil
}

// Ln returns the natural logarithm of n.
func (n Number) Ln() (Number, error) { return n.Log(E()) }

// Log2 returns the base-2 logarithm of n.
func (n Number) Log2() (Number, error) { return n.Log(FromInt(2)) }

// Log10 returns the base-10 logarithm of n.
func (n Number) Log10() (Number, error) { return n.Log(FromInt(10)) }

// Sqrt returns the square root of n.
func (n Number) Sqrt() (Number, error) { return n.Root(FromInt(2)) }

// Root returns the deg-th root of n. A zero degree fails with
// ErrZeroNthRoot; an even root of a negative number fails with
// ErrNegativeRoot (odd-degree real roots of negatives are permitted). A
// negative degree is the reciprocal of the positive root; a fractional
// degree p/q is the q-th power of the p-th root.
func (n Number) Root(deg Number) (Number, error) {
	if deg.Sign() == 0 {
		return Number{}, ErrZeroNthRoot
	}
	if deg.Sign() < 0 {
		r, err := n.Root(deg.Neg())
		if err != nil {
			return Number{}, err
		}
		return One().Div(r)
	}
	d := deg.rat()
	p := d.Num()
	if n.Sign() < 0 && p.Bit(0) == 0 {
		return Number{}, ErrNegativeRoot
	}
	root, err := n.nthRoot(p)
	if err != nil {
		return Number{}, err
	}
	if q := d.Denom(); q.Cmp(intOne) != 0 {
		return root.powInt(q)
	}
	return root, nil
}

// nthRoot computes the k-th root (k a positive integer) by Newton's method
// on rationals, clamping intermediate precision each step and converging
// when successive approximations differ by less than epsilon.
func (n Number) nthRoot(k *big.Int) (Number, error) {
	if n.Sign() == 0 {
		return Zero(), nil
	}
	if k.Cmp(intOne) == 0 {
		return n, nil
	}
	if !k.IsInt64() || k.BitLen() > maxExponentBits {
		return Number{}, ErrNoConvergence
	}
	neg := n.Sign() < 0
	x := n.Abs()
	kk := k.Int64()
	kNum := FromBigInt(k)
	kLess := new(big.Int).Sub(k, intOne)
	y := rootGuess(x.rat(), kk)
	for i := 0; i < maxIterations; i++ {
		// y' = ((k-1)*y + x/y^(k-1)) / k
		yk, err := y.powInt(kLess)
		if err != nil {
			return Number{}, err
		}
		quo, err := x.Div(yk)
		if err != nil {
			return Number{}, err
		}
		next := FromBigInt(kLess).Mul(y).Add(quo)
		next, err = next.Div(kNum)
		if err != nil {
			return Number{}, err
		}
		next = Number{clampRat(next.rat())}
		if next.Sub(y).Abs().Cmp(Epsilon()) < 0 {
			r := snapRoot(next, x, k)
			if neg {
				r = r.Neg()
			}
			return r, nil
		}
		y = next
	}
	return Number{}, ErrNoConvergence
}

// rootGuess builds a starting point for Newton iteration, from float64 when
// the value fits and from the binary magnitude otherwise.
func rootGuess(x *big.Rat, k int64) Number {
	f, _ := x.Float64()
	if g := math.Pow(f, 1/float64(k)); !math.IsInf(g, 0) && !math.IsNaN(g) && g > 0 {
		return Number{new(big.Rat).SetFloat64(g)}
	}
	e := int64(x.Num().BitLen() - x.Denom().BitLen())
	g := new(big.Rat).SetFrac(new(big.Int).Lsh(intOne, uint(max64(e/k, 0))), intOne)
	return Number{g}
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

// snapRoot rounds a converged approximation to the guarantee grid and keeps
// the rounded value when it is the exact root, so perfect roots like
// sqrt(64) come out as integers.
func snapRoot(y, x Number, k *big.Int) Number {
	cand := Number{roundToGrid(y.rat(), epsScale)}
	if p, err := cand.powInt(k); err == nil && p.Equal(x) {
		return cand
	}
	return y
}

// Sin returns the sine of n (radians). The argument is range-reduced modulo
// 2*pi; the four quadrant boundaries short-circuit to exact values and
// everything else sums the Taylor series to the guarantee precision.
func (n Number) Sin() (Number, error) {
	twoPi := Number{new(big.Rat).Add(ratPi, ratPi)}
	x, err := n.Modulo(twoPi)
	if err != nil {
		return Number{}, err
	}
	halfPi := Number{new(big.Rat).Mul(ratPi, ratHalf)}
	pi := Pi()
	switch {
	case x.Sign() == 0:
		return Zero(), nil
	case x.Equal(halfPi):
		return One(), nil
	case x.Equal(pi):
		return Zero(), nil
	case x.Equal(pi.Add(halfPi)):
		return One().Neg(), nil
	}
	x = Number{clampRat(x.rat())}
	x2 := Number{clampRat(x.Mul(x).rat())}
	term := x
	sum := x
	for k := int64(1); ; k++ {
		if k > maxIterations {
			return Number{}, ErrNoConvergence
		}
		term = term.Mul(x2).Neg()
		d, err := term.Div(FromInt(2 * k).Mul(FromInt(2*k + 1)))
		if err != nil {
			return Number{}, err
		}
		term = Number{clampRat(d.rat())}
		sum = sum.Add(term)
		if term.Abs().Cmp(Epsilon()) < 0 {
			return Number{clampRat(sum.rat())}, nil
		}
	}
}

// Cos returns the cosine of n (radians), as sin(pi/2 - n).
func (n Number) Cos() (Number, error) {
	halfPi := Number{new(big.Rat).Mul(ratPi, ratHalf)}
	return halfPi.Sub(n).Sin()
}

// Tg returns the tangent of n, sin/cos. It fails with ErrDivisionZero where
// the cosine is exactly zero.
func (n Number) Tg() (Number, error) {
	s, err := n.Sin()
	if err != nil {
		return Number{}, err
	}
	c, err := n.Cos()
	if err != nil {
		return Number{}, err
	}
	return s.Div(c)
}

// Cotg returns the cotangent of n, cos/sin. It fails with ErrDivisionZero
// where the sine is exactly zero.
func (n Number) Cotg() (Number, error) {
	s, err := n.Sin()
	if err != nil {
		return Number{}, err
	}
	c, err := n.Cos()
	if err != nil {
		return Number{}, err
	}
	return c.Div(s)
}

// Arctg returns the inverse tangent of n, by argument-halving reduction and
// the Taylor series.
func (n Number) Arctg() (Number, error) {
	x := Number{clampRat(n.rat())}
	neg := x.Sign() < 0
	if neg {
		x = x.Neg()
	}
	// Halve the argument with x -> x / (1 + sqrt(1+x^2)) until the series
	// converges quickly; each step doubles the result.
	halvings := 0
	for x.Cmp(ratHalfNum) > 0 {
		if halvings > 64 {
			return Number{}, ErrNoConvergence
		}
		s, err := One().Add(x.Mul(x)).Sqrt()
		if err != nil {
			return Number{}, err
		}
		x, err = x.Div(One().Add(s))
		if err != nil {
			return Number{}, err
		}
		x = Number{clampRat(x.rat())}
		halvings++
	}
	x2 := Number{clampRat(x.Mul(x).rat())}
	pow := x
	sum := x
	for k := int64(1); ; k++ {
		if k > maxIterations {
			return Number{}, ErrNoConvergence
		}
		pow = Number{clampRat(pow.Mul(x2).Neg().rat())}
		d, err := pow.Div(FromInt(2*k + 1))
		if err != nil {
			return Number{}, err
		}
		sum = sum.Add(d)
		if d.Abs().Cmp(Epsilon()) < 0 {
			break
		}
	}
	for i := 0; i < halvings; i++ {
		sum = sum.Add(sum)
	}
	if neg {
		sum = sum.Neg()
	}
	return Number{clampRat(sum.rat())}, nil
}

var ratHalfNum = Number{ratHalf}

// Arcsin returns the inverse sine of n. Arguments outside [-1, 1] fail with
// ErrOutOfRange.
func (n Number) Arcsin() (Number, error) {
	one := One()
	if n.Abs().Cmp(one) > 0 {
		return Number{}, ErrOutOfRange
	}
	halfPi := Number{new(big.Rat).Mul(ratPi, ratHalf)}
	switch {
	case n.Sign() == 0:
		return Zero(), nil
	case n.Equal(one):
		return halfPi, nil
	case n.Equal(one.Neg()):
		return halfPi.Neg(), nil
	}
	// arcsin(x) = arctg(x / sqrt(1 - x^2))
	s, err := one.Sub(n.Mul(n)).Sqrt()
	if err != nil {
		return Number{}, err
	}
	t, err := n.Div(s)
	if err != nil {
		return Number{}, err
	}
	return t.Arctg()
}

// Arccos returns the inverse cosine of n, pi/2 - arcsin(n). Arguments
// outside [-1, 1] fail with ErrOutOfRange.
func (n Number) Arccos() (Number, error) {
	a, err := n.Arcsin()
	if err != nil {
		return Number{}, err
	}
	halfPi := Number{new(big.Rat).Mul(ratPi, ratHalf)}
	return halfPi.Sub(a), nil
}

// Arccotg returns the inverse cotangent of n, pi/2 - arctg(n).
func (n Number) Arccotg() (Number, error) {
	a, err := n.Arctg()
	if err != nil {
		return Number{}, err
	}
	halfPi := Number{new(big.Rat).Mul(ratPi, ratHalf)}
	return halfPi.Sub(a), nil
}

// Combination returns the binomial coefficient C(n, k). Negative arguments
// fail with ErrFactorialNegative; k > n yields 0; k == 0 or k == n yields 1.
func Combination(n, k Number) (Number, error) {
	if n.Sign() < 0 || k.Sign() < 0 {
		return Number{}, ErrFactorialNegative
	}
	if k.Cmp(n) > 0 {
		return Zero(), nil
	}
	if k.Sign() == 0 || k.Equal(n) {
		return One(), nil
	}
	nf, err := n.Factorial()
	if err != nil {
		return Number{}, err
	}
	kf, err := k.Factorial()
	if err != nil {
		return Number{}, err
	}
	nkf, err := n.Sub(k).Factorial()
	if err != nil {
		return Number{}, err
	}
	return nf.Div(kf.Mul(nkf))
}

// Random returns a uniform rational in [0, 1) with 2^-53 resolution.
func Random() Number {
	return Number{new(big.Rat).SetFrac64(rand.Int63n(1<<53), 1<<53)}
}

// ToString formats n in the given radix with at most precision fractional
// digits. The digit following the last kept one rounds half up; trailing
// zero digits and a trailing radix point are trimmed, and negative zero
// renders as "0".
func (n Number) ToString(radix Radix, precision int) string {
	if precision < 0 {
		precision = 0
	}
	base := big.NewInt(int64(radix))
	scale := new(big.Int).Exp(base, big.NewInt(int64(precision)), nil)
	abs := new(big.Rat).Abs(n.rat())
	scaled := new(big.Rat).Mul(abs, new(big.Rat).SetInt(scale))
	v := roundHalfUp(scaled)
	if v.Sign() == 0 {
		return "0"
	}
	ip, fp := new(big.Int).QuoRem(v, scale, new(big.Int))
	s := ip.Text(int(radix))
	if fp.Sign() != 0 {
		digits := fp.Text(int(radix))
		if pad := precision - len(digits); pad > 0 {
			digits = strings.Repeat("0", pad) + digits
		}
		digits = strings.TrimRight(digits, "0")
		s += "." + digits
	}
	if n.Sign() < 0 {
		s = "-" + s
	}
	return s
}

// String renders n in decimal at the default precision.
func (n Number) String() string { return n.ToString(Dec, DefaultPrecision) }

// roundHalfUp rounds a non-negative rational to the nearest integer, halves
// upward.
func roundHalfUp(r *big.Rat) *big.Int {
	num := new(big.Int).Lsh(r.Num(), 1)
	num.Add(num, r.Denom())
	den := new(big.Int).Lsh(r.Denom(), 1)
	return num.Quo(num, den)
}

// roundToGrid rounds r to the grid of multiples of 1/scale, halves away from
// zero.
func roundToGrid(r *big.Rat, scale *big.Int) *big.Rat {
	num := new(big.Int).Mul(r.Num(), scale)
	num.Lsh(num, 1)
	if r.Sign() >= 0 {
		num.Add(num, r.Denom())
	} else {
		num.Sub(num, r.Denom())
	}
	den := new(big.Int).Lsh(r.Denom(), 1)
	num.Quo(num, den)
	return new(big.Rat).SetFrac(num, new(big.Int).Set(scale))
}

// clampRat bounds the denominator of intermediate results by rounding to the
// clamp grid. Values already in lowest terms with small denominators pass
// through untouched.
func clampRat(r *big.Rat) *big.Rat {
	if r.Denom().BitLen() <= floatPrec {
		return r
	}
	return roundToGrid(r, clampScale)
}

// floatFromRat converts a rational to a big.Float at the internal working
// precision.
func floatFromRat(r *big.Rat) *big.Float {
	return new(big.Float).SetPrec(floatPrec).SetRat(r)
}

// ratFromFloat converts a finite big.Float back to a rational.
func ratFromFloat(f *big.Float) (*big.Rat, error) {
	if f.IsInf() {
		return nil, ErrNoConvergence
	}
	r, _ := f.Rat(nil)
	return r, nil
}
