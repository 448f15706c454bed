// Package ratcalc implements an exact-rational infix calculator.
//
// Expressions are ordinary infix math: "2*3+4", "2(3+4)" (implicit
// multiplication), "5!" (postfix factorial), "16 mod 3", and function calls
// like "root(2, 64)" or "pi()". Numeric literals may carry a radix prefix
// ("0b101", "0o17", "0xff.8") and fractional literals are scanned exactly,
// so "0.1" is the rational 1/10 rather than the nearest binary float.
//
// Values are Numbers: arbitrary-precision rationals. Field operations are
// exact; transcendental operations (roots, logarithms, trigonometry, gamma)
// are computed to a guaranteed decimal precision.
//
// A Calculator holds the builtin function table, user constants, and the
// last answer under the name "ans":
//
//	calc := ratcalc.NewCalculator()
//	n, err := calc.Evaluate("sqrt(2) * pi()")
//	if err != nil {
//		// ...
//	}
//	fmt.Println(n.ToString(ratcalc.Dec, 6))
package ratcalc
