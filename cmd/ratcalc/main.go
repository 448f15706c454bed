package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/gookit/color"
	"github.com/gookit/ini/v2"

	"ratcalc"
)

// prompt is printed to the screen every time the user can type.
const prompt = "> "

var (
	errorf  = color.New(color.FgRed, color.Bold).Printf
	infof   = color.New(color.FgBlue, color.Bold).Printf
	resultf = color.New(color.FgGreen).Printf
)

type session struct {
	calc  *ratcalc.Calculator
	radix ratcalc.Radix
	prec  int
}

func main() {
	log.SetFlags(0)
	var (
		inname, radixName, constsFile string
		given                         [][2]string
		prec                          int
		noColor                       bool
	)
	addGiven := func(s string) error {
		name, val, ok := strings.Cut(s, "=")
		if !ok {
			return fmt.Errorf(`constant definitions must be "name=value", not %q`, s)
		}
		given = append(given, [2]string{strings.TrimSpace(name), strings.TrimSpace(val)})
		return nil
	}
	flag.StringVar(&inname, "in", "", "input file with one expression per line")
	flag.IntVar(&prec, "p", ratcalc.DefaultPrecision, "fractional digits in printed results")
	flag.StringVar(&radixName, "radix", "d", "output radix: b, o, d, or x")
	flag.StringVar(&constsFile, "consts", "", "INI file with a [constants] section")
	flag.Func("given", `"name=value" constant definition (any number of times)`, addGiven)
	flag.BoolVar(&noColor, "no-color", false, "disable colored output")
	flag.Parse()

	if noColor {
		color.Disable()
	}
	if prec < 0 {
		log.Fatalf("precision (%d) must not be negative", prec)
	}
	radix, err := parseRadix(radixName)
	if err != nil {
		log.Fatal(err)
	}

	s := &session{calc: ratcalc.NewCalculator(), radix: radix, prec: prec}
	if constsFile != "" {
		if err := loadConstants(s.calc, constsFile); err != nil {
			log.Fatal(err)
		}
	}
	for _, d := range given {
		n, err := ratcalc.Evaluate(d[1])
		if err != nil {
			log.Fatalf("setting %s: %v", d[0], err)
		}
		if !s.calc.AddConstant(d[0], n) {
			log.Fatalf("setting %s: name is reserved", d[0])
		}
	}

	if inname != "" || flag.NArg() > 0 {
		s.batch(inname, flag.Args())
		return
	}
	s.repl()
}

// batch evaluates the lines of the input file, then the argument
// expressions, printing one result per line. The first failure is fatal.
func (s *session) batch(inname string, args []string) {
	if inname != "" {
		f, err := os.Open(inname)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		sc := bufio.NewScanner(f)
		for lineno := 1; sc.Scan(); lineno++ {
			line := strings.TrimSpace(sc.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			n, err := s.calc.Evaluate(line)
			if err != nil {
				log.Fatalf("%s:%d: %v", inname, lineno, err)
			}
			fmt.Println(n.ToString(s.radix, s.prec))
		}
		if err := sc.Err(); err != nil {
			log.Fatal(err)
		}
	}
	for _, arg := range args {
		n, err := s.calc.Evaluate(arg)
		if err != nil {
			log.Fatalf("%q: %v", arg, err)
		}
		fmt.Println(n.ToString(s.radix, s.prec))
	}
}

func (s *session) repl() {
	rl, err := readline.New(prompt)
	if err != nil {
		log.Fatalf("failed to instantiate readline: %s", err)
	}
	defer rl.Close()
	infof("ratcalc | exact rational calculator\n")
	fmt.Println(`type ".help" for commands, "name = expr" to define a constant`)
	for {
		line, err := rl.Readline()
		if err != nil {
			// Interrupt or EOF
			fmt.Println()
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ".") {
			if line == ".exit" {
				return
			}
			if err := s.dotCommand(line); err != nil {
				errorf("%v\n", err)
			}
			continue
		}
		if name, expr, ok := splitAssign(line); ok {
			n, err := s.calc.Evaluate(expr)
			if err != nil {
				printEvalError(err)
				continue
			}
			if !s.calc.AddConstant(name, n) {
				errorf("%s is reserved\n", name)
				continue
			}
			resultf("%s = %s\n", strings.ToLower(name), n.ToString(s.radix, s.prec))
			continue
		}
		n, err := s.calc.Evaluate(line)
		if err != nil {
			printEvalError(err)
			continue
		}
		resultf("= %s\n", n.ToString(s.radix, s.prec))
	}
}

func (s *session) dotCommand(line string) error {
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	switch cmd {
	case ".help":
		fmt.Print(`commands:
  .help           show this help
  .exit           leave the calculator
  .consts         list defined constants
  .radix <b|o|d|x> set the output radix
  .precision <n>  set the number of printed fractional digits
expressions:
  2*3+4   2(3+4)   5!   16 mod 3   root(2, 64)   pi()   ans()
  name = expr defines a constant usable as name()
`)
	case ".consts":
		consts := s.calc.Constants()
		names := make([]string, 0, len(consts))
		for name := range consts {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("%s = %s\n", name, consts[name].ToString(s.radix, s.prec))
		}
	case ".radix":
		r, err := parseRadix(arg)
		if err != nil {
			return err
		}
		s.radix = r
	case ".precision":
		n, err := strconv.Atoi(arg)
		if err != nil || n < 0 {
			return fmt.Errorf("precision must be a non-negative integer, not %q", arg)
		}
		s.prec = n
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}

// printEvalError renders an evaluation failure, with the column when the
// error carries one.
func printEvalError(err error) {
	var inputErr ratcalc.InputError
	if errors.As(err, &inputErr) {
		errorf("error at column %d: %v\n", inputErr.Pos(), err)
		return
	}
	errorf("error: %v\n", err)
}

// splitAssign recognizes a "name = expr" constant definition. Anything whose
// left side is not a bare identifier is an expression, not an assignment.
func splitAssign(line string) (name, expr string, ok bool) {
	name, expr, ok = strings.Cut(line, "=")
	if !ok {
		return "", "", false
	}
	name = strings.TrimSpace(name)
	expr = strings.TrimSpace(expr)
	if expr == "" || !isIdentName(name) {
		return "", "", false
	}
	return name, expr, true
}

func isIdentName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func parseRadix(s string) (ratcalc.Radix, error) {
	switch strings.ToLower(s) {
	case "b", "bin", "2":
		return ratcalc.Bin, nil
	case "o", "oct", "8":
		return ratcalc.Oct, nil
	case "d", "dec", "10":
		return ratcalc.Dec, nil
	case "x", "hex", "16":
		return ratcalc.Hex, nil
	}
	return 0, fmt.Errorf("unknown radix %q (want b, o, d, or x)", s)
}

// loadConstants reads user constants from the [constants] section of an INI
// file. Values are themselves expressions.
func loadConstants(calc *ratcalc.Calculator, path string) error {
	cfg := ini.New()
	if err := cfg.LoadFiles(path); err != nil {
		return err
	}
	for name, val := range cfg.StringMap("constants") {
		n, err := ratcalc.Evaluate(val)
		if err != nil {
			return fmt.Errorf("constant %s: %w", name, err)
		}
		if !calc.AddConstant(name, n) {
			return fmt.Errorf("constant %s: name is reserved", name)
		}
	}
	return nil
}
