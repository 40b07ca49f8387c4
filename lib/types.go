package lib

import "fmt"

type LaiType int

const (
	// TypeUnknown marks a node whose type could not be determined. It is
	// never a valid operand type and must be reported before code generation.
	TypeUnknown LaiType = iota
	TypeInt
	TypeString
)

func (t LaiType) String() string {
	switch t {
	case TypeUnknown:
		return "unknown"
	case TypeInt:
		return "int"
	case TypeString:
		return "string"
	default:
		return fmt.Sprintf("LaiType(%d)", int(t))
	}
}

// typeForToken maps a type-name keyword to its LaiType.
func typeForToken(kind TokenKind) (LaiType, bool) {
	switch kind {
	case TokenTypeInt:
		return TypeInt, true
	case TokenTypeString:
		return TypeString, true
	default:
		return TypeUnknown, false
	}
}

// binaryMathType is the propagation rule for arithmetic: both operands must
// share one known type, which becomes the result. Anything else is unknown.
func binaryMathType(left LaiType, right LaiType) LaiType {
	if left == right && left != TypeUnknown {
		return left
	}
	return TypeUnknown
}
