package engine

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/chazu/vlisp/pkg/graph"
	"github.com/chazu/vlisp/pkg/kind"
)

// CompileError reports why a board cannot be lowered to a program.
type CompileError struct {
	Node    graph.NodeID
	Message string
}

func (e CompileError) Error() string {
	return fmt.Sprintf("node %d: %s", e.Node, e.Message)
}

// builtin names the sandbox function implementing each operator kind.
var builtin = map[graph.Kind]string{
	kind.Add:           "vadd",
	kind.Subtract:      "vsub",
	kind.Multiply:      "vmul",
	kind.IntegerDivide: "vidiv",
	kind.Modulo:        "vmod",
}

// program is a compiled board.
type program struct {
	source    string
	variables []string // in emit order
}

// Compile lowers a board snapshot to a Lisp program. Every frame becomes a
// (def nK expr) form, emitted after the frames it reads from, and every
// variable's value is reported under its name.
func Compile(s graph.Snapshot) (string, error) {
	p, err := compile(s)
	if err != nil {
		return "", err
	}
	return p.source, nil
}

func compile(s graph.Snapshot) (*program, error) {
	specs := make([]kind.Spec, len(s.Nodes))
	for i, n := range s.Nodes {
		spec, err := kind.Lookup(n.Kind)
		if err != nil {
			return nil, CompileError{Node: n.ID, Message: err.Error()}
		}
		specs[i] = spec
	}

	// sources[node][slot] is the node feeding that input.
	sources := make([]map[int]graph.NodeID, len(s.Nodes))
	for _, r := range s.Edges {
		if r.Output == "" || r.Input == "" {
			continue
		}
		out, err := graph.ParseEndpoint(r.Output)
		if err != nil {
			return nil, err
		}
		in, err := graph.ParseEndpoint(r.Input)
		if err != nil {
			return nil, err
		}
		if int(in.Node) >= len(s.Nodes) || int(out.Node) >= len(s.Nodes) {
			return nil, fmt.Errorf("edge %s -> %s references a missing node", r.Output, r.Input)
		}
		if !specs[out.Node].HasEndpoint(out) {
			return nil, CompileError{Node: out.Node, Message: fmt.Sprintf("%s has no connector %s", specs[out.Node].Kind, out)}
		}
		if !specs[in.Node].HasEndpoint(in) {
			return nil, CompileError{Node: in.Node, Message: fmt.Sprintf("%s has no connector %s", specs[in.Node].Kind, in)}
		}
		if sources[in.Node] == nil {
			sources[in.Node] = make(map[int]graph.NodeID)
		}
		if prev, ok := sources[in.Node][in.Slot]; ok && prev != out.Node {
			return nil, CompileError{Node: in.Node, Message: fmt.Sprintf("%s is wired more than once", in)}
		}
		sources[in.Node][in.Slot] = out.Node
	}

	order, err := topoSort(len(s.Nodes), sources)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	p := &program{}
	names := make(map[string]graph.NodeID)
	for _, id := range order {
		n := s.Nodes[id]
		expr, err := expression(n, specs[id], sources[id])
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(&b, "(def %s %s)\n", symbol(id), expr)

		if n.Kind != kind.Variable {
			continue
		}
		name := n.Fields[kind.FieldName]
		if name == "" {
			name = symbol(id)
		}
		if other, ok := names[name]; ok {
			return nil, CompileError{Node: id, Message: fmt.Sprintf("variable name %q already used by node %d", name, other)}
		}
		names[name] = id
		p.variables = append(p.variables, name)
		fmt.Fprintf(&b, "(vemit %q %s)\n", name, symbol(id))
	}
	p.source = b.String()
	return p, nil
}

func symbol(id graph.NodeID) string {
	return "n" + strconv.Itoa(int(id))
}

func expression(n graph.NodeFrame, spec kind.Spec, inputs map[int]graph.NodeID) (string, error) {
	switch n.Kind {
	case kind.Constant:
		return literal(n)
	case kind.Variable:
		if src, ok := inputs[0]; ok {
			return symbol(src), nil
		}
		if n.Fields[kind.FieldValue] == "" {
			return "", CompileError{Node: n.ID, Message: "variable has neither an input nor a value"}
		}
		return literal(n)
	}

	fn, ok := builtin[n.Kind]
	if !ok || !spec.Binop() {
		return "", CompileError{Node: n.ID, Message: fmt.Sprintf("cannot compile kind %q", n.Kind)}
	}
	a, okA := inputs[0]
	b, okB := inputs[1]
	if !okA || !okB {
		return "", CompileError{Node: n.ID, Message: fmt.Sprintf("%s needs two operands", spec.Label)}
	}
	return fmt.Sprintf("(%s %s %s)", fn, symbol(a), symbol(b)), nil
}

// literal formats the frame's value field as a Lisp number. Integers stay
// integers; anything else must parse as a finite float.
func literal(n graph.NodeFrame) (string, error) {
	v := strings.TrimSpace(n.Fields[kind.FieldValue])
	if i, err := strconv.ParseInt(v, 10, 64); err == nil {
		return strconv.FormatInt(i, 10), nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return "", CompileError{Node: n.ID, Message: fmt.Sprintf("bad numeric literal %q", v)}
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s, nil
}

// topoSort orders nodes so every node follows the nodes feeding it, using
// DFS with 3-color marking. Roots are visited in id order for a stable
// result.
func topoSort(n int, sources []map[int]graph.NodeID) ([]graph.NodeID, error) {
	const (
		gray  = 1
		black = 2
	)
	color := make([]int, n)
	order := make([]graph.NodeID, 0, n)

	var visit func(id graph.NodeID) error
	visit = func(id graph.NodeID) error {
		switch color[id] {
		case gray:
			return CompileError{Node: id, Message: "is part of a cycle"}
		case black:
			return nil
		}
		color[id] = gray
		slots := make([]int, 0, len(sources[id]))
		for slot := range sources[id] {
			slots = append(slots, slot)
		}
		sort.Ints(slots)
		for _, slot := range slots {
			if err := visit(sources[id][slot]); err != nil {
				return err
			}
		}
		color[id] = black
		order = append(order, id)
		return nil
	}

	for id := 0; id < n; id++ {
		if err := visit(graph.NodeID(id)); err != nil {
			return nil, err
		}
	}
	return order, nil
}
