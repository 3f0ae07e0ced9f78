package tree

import (
	"errors"
	"fmt"
)

// ErrStructural marks an internal invariant violation: a crossover or
// mutation point that exceeds the addressable nodes of a tree.
var ErrStructural = errors.New("structural invariant violated")

// CountScheme selects how tree nodes are numbered when locating crossover
// and mutation points. Numbering is left-to-right, depth-first, from 0.
type CountScheme int

const (
	// FunctionPoints counts only internal (operator) nodes.
	FunctionPoints CountScheme = iota
	// AnyPoints counts every node, except that beneath a unary operator it
	// falls back to function-point counting. The asymmetry is deliberate and
	// load-bearing: it changes which points are eligible targets beneath a
	// sin/cos node, and the point distributions downstream depend on it.
	AnyPoints
)

// Count returns the number of addressable points in the tree under the scheme.
func Count(scheme CountScheme, n Node) int {
	switch node := n.(type) {
	case *Binary:
		return 1 + Count(scheme, node.Left) + Count(scheme, node.Right)
	case *Unary:
		return 1 + Count(FunctionPoints, node.Child)
	default:
		if scheme == AnyPoints {
			return 1
		}
		return 0
	}
}

// Subtree returns the subtree rooted at the given point. Point 0 is the tree
// itself.
func Subtree(scheme CountScheme, n Node, point int) (Node, error) {
	if point == 0 {
		return n, nil
	}
	switch node := n.(type) {
	case *Binary:
		leftCount := Count(scheme, node.Left)
		if point <= leftCount {
			return Subtree(scheme, node.Left, point-1)
		}
		return Subtree(scheme, node.Right, point-leftCount-1)
	case *Unary:
		return Subtree(FunctionPoints, node.Child, point-1)
	default:
		return nil, fmt.Errorf("%w: point %d descends past a leaf", ErrStructural, point)
	}
}

// ReplaceAt substitutes fragment for the subtree at the given point,
// returning the resulting tree. Nodes along the path are rebuilt; branches
// off the path are shared with the input.
func ReplaceAt(scheme CountScheme, n Node, fragment Node, point int) (Node, error) {
	if point == 0 {
		return fragment, nil
	}
	switch node := n.(type) {
	case *Binary:
		leftCount := Count(scheme, node.Left)
		if point <= leftCount {
			left, err := ReplaceAt(scheme, node.Left, fragment, point-1)
			if err != nil {
				return nil, err
			}
			return &Binary{Op: node.Op, Left: left, Right: node.Right}, nil
		}
		right, err := ReplaceAt(scheme, node.Right, fragment, point-leftCount-1)
		if err != nil {
			return nil, err
		}
		return &Binary{Op: node.Op, Left: node.Left, Right: right}, nil
	case *Unary:
		child, err := ReplaceAt(FunctionPoints, node.Child, fragment, point-1)
		if err != nil {
			return nil, err
		}
		return &Unary{Op: node.Op, Child: child}, nil
	default:
		return nil, fmt.Errorf("%w: point %d descends past a leaf", ErrStructural, point)
	}
}
