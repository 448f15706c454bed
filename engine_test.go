package ratcalc_test

import (
	"errors"
	"testing"

	"ratcalc"
)

func TestEvaluate(t *testing.T) {
	cases := []struct {
		src  string
		want string // decimal rendering at the default precision
	}{
		{"2*3+4", "10"},
		{"2(3+4)", "14"},
		{"(1+2)*(3+4)", "21"},
		{"root(2, 64)", "8"},
		{"root(3, -27)", "-3"},
		{"comb(4, 2)", "6"},
		{"pi()", "3.141593"},
		{"3pi()", "9.424778"},
		{"-pi()", "-3.141593"},
		{"e()", "2.718282"},
		{"ln(e())", "1"},
		{"4--8", "12"},
		{"1+-2", "-1"},
		{"1--.5", "1.5"},
		{"2^3^2", "64"},
		{"2^-2", "0.25"},
		{"2^0.5", "1.414214"},
		{"16 mod 3", "1"},
		{"-11 mod 7", "3"},
		{"5%3", "2"},
		{"0!", "1"},
		{"5!", "120"},
		{"5!/3!", "20"},
		{"5!3", "360"},
		{"-(2*3)*-4", "24"},
		{"abs(-3)", "3"},
		{"sqrt(2)", "1.414214"},
		{"sin(pi()/2)", "1"},
		{"cos(0)", "1"},
		{"log(8, 2)", "3"},
		{"log10(1000)", "3"},
		{"pow(2, 10)", "1024"},
		{"arctg(1)*4", "3.141593"},
		{"0b101 + 0o17 + 0xff", "275"},
		{"0xff.8 * 2", "511"},
		{"2 * -3", "-6"},
		{"10/4", "2.5"},
		{"(1+2)sqrt(4)", "6"},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			n, err := ratcalc.Evaluate(c.src)
			if err != nil {
				t.Fatalf("evaluate %q err = %v", c.src, err)
			}
			if got := n.String(); got != c.want {
				t.Errorf("evaluate %q = %s, want %s", c.src, got, c.want)
			}
		})
	}
}

func TestEvaluateErrors(t *testing.T) {
	cases := []struct {
		src string
		err error
	}{
		// structure
		{"", ratcalc.ErrMissingOperand},
		{"2*", ratcalc.ErrMissingOperand},
		{"1*/2", ratcalc.ErrMissingOperand},
		{"2 3", ratcalc.ErrMissingOperator},
		{"(1+2)(3+4)", ratcalc.ErrMissingOperator},
		{"pi()(2)", ratcalc.ErrMissingOperator},
		{"((1+2) - 2", ratcalc.ErrInvalidToken},
		{")", ratcalc.ErrInvalidToken},
		{"|3|", ratcalc.ErrInvalidToken},
		// identifiers
		{"foo(2)", ratcalc.ErrInvalidToken},
		{"sqrt 2", ratcalc.ErrInvalidToken},
		{"sqrt", ratcalc.ErrInvalidToken},
		{"pi", ratcalc.ErrInvalidToken},
		// arity
		{"root(2)", ratcalc.ErrInvalidArguments},
		{"sqrt(1, 2)", ratcalc.ErrInvalidArguments},
		{"pi(3)", ratcalc.ErrInvalidArguments},
		{"mod(16, 3)", ratcalc.ErrInvalidArguments},
		{"1, 2", ratcalc.ErrInvalidArguments},
		// domain
		{"16/0", ratcalc.ErrDivisionZero},
		{"16 mod 0", ratcalc.ErrDivisionZero},
		{"sqrt(-4)", ratcalc.ErrNegativeRoot},
		{"root(0, 5)", ratcalc.ErrZeroNthRoot},
		{"log(0, 5)", ratcalc.ErrLogUndefinedNumber},
		{"log(5, -2)", ratcalc.ErrLogUndefinedBase},
		{"-5!", ratcalc.ErrFactorialNegative},
		{"arcsin(2)", ratcalc.ErrOutOfRange},
		{"tg(pi()/2)", ratcalc.ErrDivisionZero},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			_, err := ratcalc.Evaluate(c.src)
			if !errors.Is(err, c.err) {
				t.Errorf("evaluate %q err = %v, want %v", c.src, err, c.err)
			}
		})
	}
}

func TestEvaluateExact(t *testing.T) {
	// Field operations are exact, with no floating drift.
	n, err := ratcalc.Evaluate("0.1 + 0.2")
	if err != nil {
		t.Fatal(err)
	}
	want, err := ratcalc.New(3, 10)
	if err != nil {
		t.Fatal(err)
	}
	if !n.Equal(want) {
		t.Errorf("0.1 + 0.2 = %v, want exactly 3/10", n)
	}

	n, err = ratcalc.Evaluate("1/3 + 1/3 + 1/3")
	if err != nil {
		t.Fatal(err)
	}
	if !n.Equal(ratcalc.One()) {
		t.Errorf("1/3 + 1/3 + 1/3 = %v, want exactly 1", n)
	}
}

func TestEvaluateRandom(t *testing.T) {
	n, err := ratcalc.Evaluate("random()")
	if err != nil {
		t.Fatalf("evaluate random() err = %v", err)
	}
	if n.Sign() < 0 || n.Cmp(ratcalc.One()) >= 0 {
		t.Errorf("random() = %v, want in [0, 1)", n)
	}
}
