package compositor

import (
	"math"
	"strconv"
	"strings"
)

// TransformKind names one stage of a transform chain.
type TransformKind string

const (
	TranslateX TransformKind = "translateX"
	Translate  TransformKind = "translate"
	RotateX    TransformKind = "rotateX"
	RotateY    TransformKind = "rotateY"
	RotateZ    TransformKind = "rotateZ"
	Skew       TransformKind = "skew"
	Scale      TransformKind = "scale"
)

// TransformOp is one stage with its arguments in Unit.
type TransformOp struct {
	Kind   TransformKind `json:"kind"`
	Values []float64     `json:"values"`
	Unit   string        `json:"unit,omitempty"`
}

func (op TransformOp) CSS() string {
	args := make([]string, len(op.Values))
	for i, v := range op.Values {
		args[i] = strconv.FormatFloat(v, 'f', -1, 64) + op.Unit
	}
	return string(op.Kind) + "(" + strings.Join(args, ", ") + ")"
}

// Chain is an ordered transform composition; order is significant.
type Chain []TransformOp

func (c Chain) CSS() string {
	parts := make([]string, len(c))
	for i, op := range c {
		parts[i] = op.CSS()
	}
	return strings.Join(parts, " ")
}

// Kinds lists the stage kinds in order.
func (c Chain) Kinds() []TransformKind {
	kinds := make([]TransformKind, len(c))
	for i, op := range c {
		kinds[i] = op.Kind
	}
	return kinds
}

func deg(kind TransformKind, values ...float64) TransformOp {
	return TransformOp{Kind: kind, Values: values, Unit: "deg"}
}

// Mat3 is the linear part of a transform, row major.
type Mat3 [3][3]float64

func identity() Mat3 {
	return Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

func (m Mat3) mul(o Mat3) Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				r[i][j] += m[i][k] * o[k][j]
			}
		}
	}
	return r
}

// Linear composes the chain's linear part left to right the way a CSS
// transform list does. Translations are relative to the element box and
// carry no linear component, so they are skipped.
func (c Chain) Linear() Mat3 {
	m := identity()
	for _, op := range c {
		m = m.mul(op.linear())
	}
	return m
}

func (op TransformOp) linear() Mat3 {
	arg := func(i int) float64 {
		if i < len(op.Values) {
			return op.Values[i]
		}
		return 0
	}
	rad := func(i int) float64 { return arg(i) * math.Pi / 180 }

	switch op.Kind {
	case RotateX:
		s, c := math.Sincos(rad(0))
		return Mat3{{1, 0, 0}, {0, c, -s}, {0, s, c}}
	case RotateY:
		s, c := math.Sincos(rad(0))
		return Mat3{{c, 0, s}, {0, 1, 0}, {-s, 0, c}}
	case RotateZ:
		s, c := math.Sincos(rad(0))
		return Mat3{{c, -s, 0}, {s, c, 0}, {0, 0, 1}}
	case Skew:
		return Mat3{{1, math.Tan(rad(0)), 0}, {math.Tan(rad(1)), 1, 0}, {0, 0, 1}}
	case Scale:
		s := arg(0)
		return Mat3{{s, 0, 0}, {0, s, 0}, {0, 0, 1}}
	}
	return identity()
}
