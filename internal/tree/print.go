package tree

import (
	"fmt"
	"strconv"
)

// String renders the program as fully parenthesized infix. The rendering is
// unambiguous and doubles as the structural key for generation-0 uniqueness.

func (n *Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", n.Left, n.Op, n.Right)
}

func (n *Unary) String() string {
	return fmt.Sprintf("%s(%s)", n.Op, n.Child)
}

func (n *Variable) String() string { return n.Name }

func (n *Constant) String() string {
	if n.Integer {
		return strconv.FormatFloat(n.Value, 'f', 0, 64)
	}
	return strconv.FormatFloat(n.Value, 'g', -1, 64)
}

// Latex renders the program for typesetting consumers. Protected division is
// written as a fraction.

func (n *Binary) Latex() string {
	switch n.Op {
	case OpDiv:
		return fmt.Sprintf("\\frac{%s}{%s}", n.Left.Latex(), n.Right.Latex())
	case OpMul:
		return fmt.Sprintf("%s \\cdot %s", n.Left.Latex(), n.Right.Latex())
	default:
		return fmt.Sprintf("\\left(%s %s %s\\right)", n.Left.Latex(), n.Op, n.Right.Latex())
	}
}

func (n *Unary) Latex() string {
	return fmt.Sprintf("\\%s\\left(%s\\right)", n.Op, n.Child.Latex())
}

func (n *Variable) Latex() string { return n.Name }
func (n *Constant) Latex() string { return n.String() }
