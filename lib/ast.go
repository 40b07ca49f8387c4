package lib

import "fmt"

type mathOpType int

const (
	MathOpAdd mathOpType = iota
	MathOpSubtract
	MathOpMultiply
	MathOpDivide
)

func (op mathOpType) String() string {
	switch op {
	case MathOpAdd:
		return "+"
	case MathOpSubtract:
		return "-"
	case MathOpMultiply:
		return "*"
	case MathOpDivide:
		return "/"
	default:
		return fmt.Sprintf("mathOpType(%d)", int(op))
	}
}

type compareOpType int

const (
	CompareOpEqual compareOpType = iota
	CompareOpNotEqual
)

func (op compareOpType) String() string {
	switch op {
	case CompareOpEqual:
		return "=="
	case CompareOpNotEqual:
		return "!="
	default:
		return fmt.Sprintf("compareOpType(%d)", int(op))
	}
}

// File is the typed tree of one source file.
type File struct {
	Name       string
	Statements []Statement
}

type Statement interface {
	isStatement()
	Location() Location
}

func (d VariableDeclaration) isStatement() {}
func (a Assignment) isStatement()          {}
func (p PrintStatement) isStatement()      {}
func (i IfStatement) isStatement()         {}
func (b Block) isStatement()               {}

// Expression is any node that yields a value. Its type is fixed when the node
// is built.
type Expression interface {
	isExpression()
	ReturnType() LaiType
	Location() Location
}

func (i IntLiteral) isExpression()           {}
func (s StringLiteral) isExpression()        {}
func (v VariableExpression) isExpression()   {}
func (b BinaryMathExpression) isExpression() {}

type IntLiteral struct {
	Value int32
	Loc   Location
}

func (i IntLiteral) ReturnType() LaiType { return TypeInt }
func (i IntLiteral) Location() Location  { return i.Loc }
func (i IntLiteral) String() string      { return fmt.Sprintf("%d", i.Value) }

type StringLiteral struct {
	Value string
	Loc   Location
}

func (s StringLiteral) ReturnType() LaiType { return TypeString }
func (s StringLiteral) Location() Location  { return s.Loc }
func (s StringLiteral) String() string      { return fmt.Sprintf("%q", s.Value) }

// VariableExpression reads a variable. Type is copied from the declaration in
// scope; Declared is false when no declaration was found.
type VariableExpression struct {
	Name     string
	Type     LaiType
	Declared bool
	Loc      Location
}

func (v VariableExpression) ReturnType() LaiType { return v.Type }
func (v VariableExpression) Location() Location  { return v.Loc }
func (v VariableExpression) String() string      { return v.Name }

// BinaryMathExpression owns both operands. Build it with NewBinaryMath so the
// result type is always set.
type BinaryMathExpression struct {
	Op         mathOpType
	Left       Expression
	Right      Expression
	Loc        Location
	returnType LaiType
}

func NewBinaryMath(op mathOpType, left Expression, right Expression, loc Location) BinaryMathExpression {
	return BinaryMathExpression{
		Op:         op,
		Left:       left,
		Right:      right,
		Loc:        loc,
		returnType: binaryMathType(left.ReturnType(), right.ReturnType()),
	}
}

func (b BinaryMathExpression) ReturnType() LaiType { return b.returnType }
func (b BinaryMathExpression) Location() Location  { return b.Loc }
func (b BinaryMathExpression) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right)
}

// Condition is the test of an if statement. It is not an expression because
// Lai has no boolean type.
type Condition struct {
	Op    compareOpType
	Left  Expression
	Right Expression
	Loc   Location
}

func (c Condition) String() string {
	return fmt.Sprintf("%s %s %s", c.Left, c.Op, c.Right)
}

// VariableDeclaration covers "x := v", "x : T" and "x : T = v". Value is nil
// when no initializer was given. For inferred declarations Type is the
// initializer's type.
type VariableDeclaration struct {
	Name     string
	Type     LaiType
	Value    Expression
	Inferred bool
	Loc      Location
}

func (d VariableDeclaration) Location() Location { return d.Loc }

type Assignment struct {
	Name       string
	TargetType LaiType
	Declared   bool
	Value      Expression
	Loc        Location
}

func (a Assignment) Location() Location { return a.Loc }

type PrintStatement struct {
	Value Expression
	Loc   Location
}

func (p PrintStatement) Location() Location { return p.Loc }

// IfStatement holds an optional Else, which is either a Block or another
// IfStatement.
type IfStatement struct {
	Cond Condition
	Then Block
	Else Statement
	Loc  Location
}

func (i IfStatement) Location() Location { return i.Loc }

type Block struct {
	Statements []Statement
	Loc        Location
}

func (b Block) Location() Location { return b.Loc }
