package ratcalc

import (
	"io"
	"strings"
)

// Variable is a named value usable in expressions: either a constant or a
// function of a fixed arity. Constants are zero-arity syntactically, so an
// expression applies every name with parens: "pi()", "my_const()".
type Variable struct {
	num  Number
	fn   func([]Number) (Number, error)
	argc int
}

// Constant makes a Variable holding a fixed value.
func Constant(num Number) Variable {
	return Variable{num: num}
}

// Function makes a Variable computing fn over argc arguments.
func Function(argc int, fn func([]Number) (Number, error)) Variable {
	return Variable{fn: fn, argc: argc}
}

// Argc returns the number of arguments the variable applies to. Constants
// take none.
func (v Variable) Argc() int {
	if v.fn == nil {
		return 0
	}
	return v.argc
}

// Calc computes the variable's value over args.
func (v Variable) Calc(args []Number) (Number, error) {
	if v.fn == nil {
		return v.num, nil
	}
	return v.fn(args)
}

func (v Variable) isConstant() bool {
	return v.fn == nil
}

// Calculator owns the builtin function table, user constants, and the last
// answer, available in expressions as "ans()". A Calculator is not safe for
// concurrent use.
type Calculator struct {
	engine    Engine
	variables map[string]Variable
	reserved  map[string]bool
	tokens    []Token
}

// NewCalculator returns a Calculator with the builtin functions and the
// constants e and pi registered.
func NewCalculator() *Calculator {
	c := &Calculator{
		engine:    NewShuntingYard(),
		variables: make(map[string]Variable),
		reserved:  make(map[string]bool),
	}
	c.variables["e"] = Constant(E())
	c.variables["pi"] = Constant(Pi())
	c.addBuiltins()
	for _, kw := range []string{"mod", "e", "pi"} {
		c.reserved[kw] = true
	}
	return c
}

func (c *Calculator) addBuiltins() {
	add := func(name string, argc int, fn func([]Number) (Number, error)) {
		c.variables[name] = Function(argc, fn)
		c.reserved[name] = true
	}

	add("root", 2, func(a []Number) (Number, error) { return a[1].Root(a[0]) })
	add("sqrt", 1, func(a []Number) (Number, error) { return a[0].Sqrt() })
	add("ln", 1, func(a []Number) (Number, error) { return a[0].Ln() })
	add("log2", 1, func(a []Number) (Number, error) { return a[0].Log2() })
	add("log10", 1, func(a []Number) (Number, error) { return a[0].Log10() })
	add("log", 2, func(a []Number) (Number, error) { return a[0].Log(a[1]) })
	add("sin", 1, func(a []Number) (Number, error) { return a[0].Sin() })
	add("cos", 1, func(a []Number) (Number, error) { return a[0].Cos() })
	add("tg", 1, func(a []Number) (Number, error) { return a[0].Tg() })
	add("cotg", 1, func(a []Number) (Number, error) { return a[0].Cotg() })
	add("arcsin", 1, func(a []Number) (Number, error) { return a[0].Arcsin() })
	add("arccos", 1, func(a []Number) (Number, error) { return a[0].Arccos() })
	add("arctg", 1, func(a []Number) (Number, error) { return a[0].Arctg() })
	add("arccotg", 1, func(a []Number) (Number, error) { return a[0].Arccotg() })
	add("pow", 2, func(a []Number) (Number, error) { return a[0].Power(a[1]) })
	add("abs", 1, func(a []Number) (Number, error) { return a[0].Abs(), nil })
	add("comb", 2, func(a []Number) (Number, error) { return Combination(a[0], a[1]) })
	add("random", 0, func([]Number) (Number, error) { return Random(), nil })
}

// SetEngine replaces the evaluation engine. The default is a ShuntingYard.
func (c *Calculator) SetEngine(e Engine) {
	c.engine = e
}

// Evaluate computes the value of the expression s. On success the result is
// also stored as the constant "ans"; on failure the registry is unchanged.
func (c *Calculator) Evaluate(s string) (Number, error) {
	c.tokens = c.tokens[:0]
	sc := NewScanner(s)
	for {
		tok, err := sc.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Number{}, err
		}
		c.tokens = append(c.tokens, tok)
	}
	ans, err := Execute(c.engine, c.tokens, c.variables)
	if err != nil {
		return Number{}, err
	}
	c.variables["ans"] = Constant(ans)
	return ans, nil
}

// AddConstant registers or updates the user constant name, which is
// case-insensitive. It reports false without touching the registry when the
// name collides with a builtin.
func (c *Calculator) AddConstant(name string, num Number) bool {
	name = strings.ToLower(name)
	if c.reserved[name] {
		return false
	}
	c.variables[name] = Constant(num)
	return true
}

// RemoveConstant deletes the constant name and returns its value. Builtin
// functions are not removable.
func (c *Calculator) RemoveConstant(name string) (Number, bool) {
	name = strings.ToLower(name)
	v, ok := c.variables[name]
	if !ok || !v.isConstant() {
		return Number{}, false
	}
	delete(c.variables, name)
	return v.num, true
}

// GetConstant returns the value of the constant name, if registered.
func (c *Calculator) GetConstant(name string) (Number, bool) {
	v, ok := c.variables[strings.ToLower(name)]
	if !ok || !v.isConstant() {
		return Number{}, false
	}
	return v.num, true
}

// Constants returns a snapshot of all registered constants.
func (c *Calculator) Constants() map[string]Number {
	m := make(map[string]Number)
	for name, v := range c.variables {
		if v.isConstant() {
			m[name] = v.num
		}
	}
	return m
}

// Evaluate computes the expression s with a fresh Calculator. Callers that
// evaluate repeatedly, or that want "ans" and user constants to persist,
// should hold a Calculator instead.
func Evaluate(s string) (Number, error) {
	return NewCalculator().Evaluate(s)
}
