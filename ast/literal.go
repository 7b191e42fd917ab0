package ast

import (
	"math"
	"strconv"
)

// Int64 returns the value of a decimal, hexadecimal or octal literal.
func (n *Integer) Int64() (int64, error) {
	return strconv.ParseInt(n.Value, 0, 64)
}

func (n *Decimal) Float64() (float64, error) {
	return strconv.ParseFloat(n.Value, 64)
}

func (n *FloatConstant) Float64() float64 {
	switch n.Value {
	case "Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	return math.NaN()
}
