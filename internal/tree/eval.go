package tree

import (
	"errors"
	"fmt"
	"math"
)

// ErrEvaluation marks failures raised while folding a program over an
// environment: an unbound variable, or a nil node inside the tree.
var ErrEvaluation = errors.New("evaluation failed")

// Env binds variable names to values for one fitness-case evaluation. It is
// scratch state: rebound per case and never shared across evaluations.
type Env map[string]float64

// Eval folds the tree into a value. Division is protected: a divisor of
// exactly 0.0 yields 1.0.
func Eval(n Node, env Env) (float64, error) {
	switch node := n.(type) {
	case *Binary:
		left, err := Eval(node.Left, env)
		if err != nil {
			return 0, err
		}
		right, err := Eval(node.Right, env)
		if err != nil {
			return 0, err
		}
		switch node.Op {
		case OpAdd:
			return left + right, nil
		case OpSub:
			return left - right, nil
		case OpMul:
			return left * right, nil
		case OpDiv:
			if right == 0.0 {
				return 1.0, nil
			}
			return left / right, nil
		default:
			return 0, fmt.Errorf("%w: operator %s is not binary", ErrEvaluation, node.Op)
		}
	case *Unary:
		child, err := Eval(node.Child, env)
		if err != nil {
			return 0, err
		}
		switch node.Op {
		case OpSin:
			return math.Sin(child), nil
		case OpCos:
			return math.Cos(child), nil
		default:
			return 0, fmt.Errorf("%w: operator %s is not unary", ErrEvaluation, node.Op)
		}
	case *Variable:
		value, ok := env[node.Name]
		if !ok {
			return 0, fmt.Errorf("%w: unbound variable %q", ErrEvaluation, node.Name)
		}
		return value, nil
	case *Constant:
		return node.Value, nil
	default:
		return 0, fmt.Errorf("%w: nil node in program", ErrEvaluation)
	}
}
