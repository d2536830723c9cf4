// Package engine is the compiler front door for vlisp boards.
// It lowers a board snapshot to a Lisp program and evaluates it in a
// sandboxed zygomys environment, reporting each variable's value.
package engine

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/chazu/vlisp/pkg/graph"
	zygo "github.com/glycerine/zygomys/zygo"
)

// EvalError represents a non-fatal error encountered during evaluation,
// such as a board that does not compile or a runtime error like a division
// by zero.
type EvalError struct {
	Line    int
	Col     int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Value is the number a variable evaluated to. Integer results keep their
// full int64 range; they are not routed through float64.
type Value struct {
	Int     int64
	Float   float64
	IsFloat bool
}

// IntValue returns an integer Value.
func IntValue(i int64) Value { return Value{Int: i} }

// FloatValue returns a floating-point Value.
func FloatValue(f float64) Value { return Value{Float: f, IsFloat: true} }

// Float64 returns v as a float64, rounding large integers.
func (v Value) Float64() float64 {
	if v.IsFloat {
		return v.Float
	}
	return float64(v.Int)
}

func (v Value) String() string {
	if v.IsFloat {
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	}
	return strconv.FormatInt(v.Int, 10)
}

// MarshalJSON writes v as a bare JSON number with every integer digit.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.IsFloat && (math.IsInf(v.Float, 0) || math.IsNaN(v.Float)) {
		return nil, fmt.Errorf("value %v is not representable in JSON", v.Float)
	}
	return []byte(v.String()), nil
}

// Result is the output of a successful evaluation.
type Result struct {
	Source    string           // compiled program
	Variables []string         // variable names in evaluation order
	Values    map[string]Value // value of each variable
}

// Engine evaluates boards. It is safe for concurrent use; each call to
// Evaluate creates a fresh sandboxed environment.
type Engine struct {
	runs runs
}

// NewEngine creates a new Engine with the default timeout.
func NewEngine() *Engine {
	e := &Engine{}
	e.runs.limit = EvalTimeout
	return e
}

// WithTimeout sets the hard limit for one evaluation and returns e.
func (e *Engine) WithTimeout(d time.Duration) *Engine {
	if d > 0 {
		e.runs.setLimit(d)
	}
	return e
}

// Evaluate compiles and runs a board snapshot.
//
// Return semantics:
//   - On success: returns result + nil errors + nil error
//   - On compile/eval failure: returns nil result + eval errors + nil error
//   - On fatal failure (timeout, panic, superseded): returns nil + nil + error
func (e *Engine) Evaluate(s graph.Snapshot) (*Result, []EvalError, error) {
	ticket, limit := e.runs.start()
	ch := make(chan outcome, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- outcome{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()

		res, evalErrs, err := e.evaluate(s)
		ch <- outcome{result: res, errors: evalErrs, err: err}
	}()

	return e.runs.await(ch, ticket, limit)
}

// evaluate performs the compilation and the zygomys run in a fresh sandbox.
func (e *Engine) evaluate(s graph.Snapshot) (*Result, []EvalError, error) {
	p, err := compile(s)
	if err != nil {
		return nil, []EvalError{{Message: err.Error()}}, nil
	}

	res := &Result{
		Source:    p.source,
		Variables: p.variables,
		Values:    make(map[string]Value, len(p.variables)),
	}
	// An empty board is a valid program with no variables.
	if strings.TrimSpace(p.source) == "" {
		return res, nil, nil
	}

	// Sandbox mode prevents the program from reaching the filesystem or syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()
	registerBuiltins(env, res.Values)

	if err := env.LoadString(p.source); err != nil {
		return nil, parseZygomysError(err), nil
	}
	if _, err := env.Run(); err != nil {
		return nil, parseZygomysError(err), nil
	}
	return res, nil, nil
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into EvalError values, keeping
// the line number when the message carries one.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	if m := linePattern.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return []EvalError{{
			Line:    line,
			Message: strings.TrimSpace(m[2]),
		}}
	}

	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
