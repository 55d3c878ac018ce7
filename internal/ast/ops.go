package ast

// BinOp enumerates binary operators.
type BinOp uint8

const (
	BinOrOr BinOp = iota
	BinAndAnd
	BinEq
	BinNe
	BinLt
	BinLe
	BinGt
	BinGe
	BinAdd
	BinSub
	BinMul
	BinDiv
	BinRem
)

// Precedence returns the binding strength of the operator; higher binds
// tighter. Mirrors the grammar: || < && < comparisons < additive <
// multiplicative.
func (op BinOp) Precedence() int {
	switch op {
	case BinOrOr:
		return 1
	case BinAndAnd:
		return 2
	case BinEq, BinNe, BinLt, BinLe, BinGt, BinGe:
		return 3
	case BinAdd, BinSub:
		return 4
	case BinMul, BinDiv, BinRem:
		return 5
	}
	return 0
}

func (op BinOp) String() string {
	switch op {
	case BinOrOr:
		return "||"
	case BinAndAnd:
		return "&&"
	case BinEq:
		return "=="
	case BinNe:
		return "!="
	case BinLt:
		return "<"
	case BinLe:
		return "<="
	case BinGt:
		return ">"
	case BinGe:
		return ">="
	case BinAdd:
		return "+"
	case BinSub:
		return "-"
	case BinMul:
		return "*"
	case BinDiv:
		return "/"
	case BinRem:
		return "%"
	}
	return "?"
}

// UnaryOp enumerates unary operators.
type UnaryOp uint8

const (
	UnaryNot UnaryOp = iota
	UnaryNeg
)

func (op UnaryOp) String() string {
	switch op {
	case UnaryNot:
		return "!"
	case UnaryNeg:
		return "-"
	}
	return "?"
}
