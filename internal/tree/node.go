package tree

import "strconv"

// Op identifies an operator carried by an internal node.
type Op int

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpSin
	OpCos
)

// Arity reports how many children the operator takes.
func (o Op) Arity() int {
	switch o {
	case OpSin, OpCos:
		return 1
	default:
		return 2
	}
}

func (o Op) String() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "%"
	case OpSin:
		return "sin"
	case OpCos:
		return "cos"
	default:
		return "op(" + strconv.Itoa(int(o)) + ")"
	}
}

// Node is one expression-tree node. Variants are Binary, Unary, Variable and
// Constant; a nil Node never appears inside a valid program.
type Node interface {
	Depth() int
	Size() int
	Clone() Node
	String() string
	Latex() string
}

// Binary applies a two-argument operator to its children.
type Binary struct {
	Op    Op
	Left  Node
	Right Node
}

// Unary applies a one-argument operator to its child.
type Unary struct {
	Op    Op
	Child Node
}

// Variable is a named leaf resolved against the evaluation environment.
type Variable struct {
	Name string
}

// Constant is a numeric leaf. Integer marks ephemeral constants drawn from
// the integer range; the value is still stored as a float.
type Constant struct {
	Value   float64
	Integer bool
}

func (n *Binary) Depth() int {
	left := n.Left.Depth()
	right := n.Right.Depth()
	if right > left {
		left = right
	}
	return 1 + left
}

func (n *Unary) Depth() int    { return 1 + n.Child.Depth() }
func (n *Variable) Depth() int { return 1 }
func (n *Constant) Depth() int { return 1 }

func (n *Binary) Size() int   { return 1 + n.Left.Size() + n.Right.Size() }
func (n *Unary) Size() int    { return 1 + n.Child.Size() }
func (n *Variable) Size() int { return 1 }
func (n *Constant) Size() int { return 1 }

func (n *Binary) Clone() Node {
	return &Binary{Op: n.Op, Left: n.Left.Clone(), Right: n.Right.Clone()}
}

func (n *Unary) Clone() Node {
	return &Unary{Op: n.Op, Child: n.Child.Clone()}
}

func (n *Variable) Clone() Node { return &Variable{Name: n.Name} }
func (n *Constant) Clone() Node { return &Constant{Value: n.Value, Integer: n.Integer} }

// Equal reports structural equality of two trees.
func Equal(a, b Node) bool {
	switch left := a.(type) {
	case *Binary:
		right, ok := b.(*Binary)
		return ok && left.Op == right.Op && Equal(left.Left, right.Left) && Equal(left.Right, right.Right)
	case *Unary:
		right, ok := b.(*Unary)
		return ok && left.Op == right.Op && Equal(left.Child, right.Child)
	case *Variable:
		right, ok := b.(*Variable)
		return ok && left.Name == right.Name
	case *Constant:
		right, ok := b.(*Constant)
		return ok && left.Value == right.Value
	default:
		return a == nil && b == nil
	}
}
