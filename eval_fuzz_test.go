package ratcalc_test

import (
	"testing"

	"ratcalc"
)

func FuzzEvaluate(f *testing.F) {
	f.Add("2*3+4")
	f.Add("root(2, 64)")
	f.Add("pi()(")
	f.Add("0xff.8%-.5!")
	f.Add("((((")
	f.Fuzz(func(t *testing.T, s string) {
		// Every input either evaluates or errors; none may panic.
		ratcalc.Evaluate(s)
	})
}
