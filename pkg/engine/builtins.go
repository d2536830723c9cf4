package engine

import (
	"errors"
	"fmt"
	"math"

	zygo "github.com/glycerine/zygomys/zygo"
)

var (
	errDivideByZero = errors.New("division by zero")
	errModuloByZero = errors.New("modulo by zero")
)

// number is an integer or float operand taken from a Sexp.
type number struct {
	i       int64
	f       float64
	isFloat bool
}

func (n number) float() float64 {
	if n.isFloat {
		return n.f
	}
	return float64(n.i)
}

func toNumber(s zygo.Sexp) (number, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return number{i: v.Val}, nil
	case *zygo.SexpFloat:
		return number{f: v.Val, isFloat: true}, nil
	default:
		return number{}, fmt.Errorf("expected number, got %T", s)
	}
}

func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T", s)
}

// builtinFunc is the signature zygomys expects from Go functions.
type builtinFunc = func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error)

// binary adapts an operator on two numbers to a zygomys function.
func binary(op func(a, b number) (zygo.Sexp, error)) builtinFunc {
	return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("%s requires exactly 2 arguments, got %d", name, len(args))
		}
		a, err := toNumber(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
		}
		b, err := toNumber(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
		}
		res, err := op(a, b)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
		}
		return res, nil
	}
}

// arith builds an operator that stays integral when both operands are.
func arith(ints func(a, b int64) int64, floats func(a, b float64) float64) builtinFunc {
	return binary(func(a, b number) (zygo.Sexp, error) {
		if !a.isFloat && !b.isFloat {
			return &zygo.SexpInt{Val: ints(a.i, b.i)}, nil
		}
		return &zygo.SexpFloat{Val: floats(a.float(), b.float())}, nil
	})
}

// registerBuiltins installs the operator builtins compiled boards call.
// (vemit name value) records a variable's value into values.
func registerBuiltins(env *zygo.Zlisp, values map[string]Value) {
	env.AddFunction("vadd", arith(
		func(a, b int64) int64 { return a + b },
		func(a, b float64) float64 { return a + b },
	))
	env.AddFunction("vsub", arith(
		func(a, b int64) int64 { return a - b },
		func(a, b float64) float64 { return a - b },
	))
	env.AddFunction("vmul", arith(
		func(a, b int64) int64 { return a * b },
		func(a, b float64) float64 { return a * b },
	))

	// Integer division truncates toward zero and always yields an integer.
	env.AddFunction("vidiv", binary(func(a, b number) (zygo.Sexp, error) {
		if b.float() == 0 {
			return nil, errDivideByZero
		}
		if !a.isFloat && !b.isFloat {
			return &zygo.SexpInt{Val: a.i / b.i}, nil
		}
		return &zygo.SexpInt{Val: int64(math.Trunc(a.float() / b.float()))}, nil
	}))

	env.AddFunction("vmod", binary(func(a, b number) (zygo.Sexp, error) {
		if b.float() == 0 {
			return nil, errModuloByZero
		}
		if !a.isFloat && !b.isFloat {
			return &zygo.SexpInt{Val: a.i % b.i}, nil
		}
		return &zygo.SexpFloat{Val: math.Mod(a.float(), b.float())}, nil
	}))

	env.AddFunction("vemit", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("vemit requires a name and a value")
		}
		key, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vemit: name: %w", err)
		}
		n, err := toNumber(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vemit: %s: %w", key, err)
		}
		if n.isFloat {
			values[key] = FloatValue(n.f)
		} else {
			values[key] = IntValue(n.i)
		}
		return args[1], nil
	})
}
