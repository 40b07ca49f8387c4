package lib

// Check walks a typed tree and reports every node that cannot be compiled.
// Each unknown type is reported once, at its root cause: a binary node whose
// operand is already invalid is not reported again, and neither is a read of
// a variable whose declaration was invalid.
func Check(file *File) []Diagnostic {
	c := checker{sink: &diagnosticSink{file: file.Name}}
	for _, stmt := range file.Statements {
		c.checkStatement(stmt)
	}
	return c.sink.diagnostics
}

type checker struct {
	sink *diagnosticSink
}

func (c *checker) errorf(loc Location, msg string, args ...interface{}) {
	c.sink.errorf(SemanticTypeError, loc, msg, args...)
}

func (c *checker) checkStatement(stmt Statement) {
	switch s := stmt.(type) {
	case VariableDeclaration:
		if s.Value == nil {
			return
		}
		if !c.checkExpr(s.Value) || s.Inferred {
			return
		}
		if s.Value.ReturnType() != s.Type {
			c.errorf(s.Value.Location(), "Cannot initialize %s variable '%s' with a %s value",
				s.Type, s.Name, s.Value.ReturnType())
		}

	case Assignment:
		if !s.Declared {
			c.errorf(s.Loc, "Assignment to undeclared variable '%s'", s.Name)
		}
		if !c.checkExpr(s.Value) || !s.Declared || s.TargetType == TypeUnknown {
			return
		}
		if s.Value.ReturnType() != s.TargetType {
			c.errorf(s.Value.Location(), "Cannot assign a %s value to %s variable '%s'",
				s.Value.ReturnType(), s.TargetType, s.Name)
		}

	case PrintStatement:
		c.checkExpr(s.Value)

	case IfStatement:
		c.checkCondition(s.Cond)
		c.checkStatement(s.Then)
		if s.Else != nil {
			c.checkStatement(s.Else)
		}

	case Block:
		for _, inner := range s.Statements {
			c.checkStatement(inner)
		}
	}
}

func (c *checker) checkCondition(cond Condition) {
	leftOK := c.checkExpr(cond.Left)
	rightOK := c.checkExpr(cond.Right)
	if !leftOK || !rightOK {
		return
	}
	if cond.Left.ReturnType() != cond.Right.ReturnType() {
		c.errorf(cond.Loc, "Cannot compare %s with %s", cond.Left.ReturnType(), cond.Right.ReturnType())
	}
}

// checkExpr reports problems in expr and returns true when expr has a usable
// type.
func (c *checker) checkExpr(expr Expression) bool {
	switch e := expr.(type) {
	case IntLiteral, StringLiteral:
		return true

	case VariableExpression:
		if !e.Declared {
			c.errorf(e.Loc, "Undeclared variable '%s'", e.Name)
			return false
		}
		return e.Type != TypeUnknown

	case BinaryMathExpression:
		leftOK := c.checkExpr(e.Left)
		rightOK := c.checkExpr(e.Right)
		if !leftOK || !rightOK {
			return false
		}
		if e.ReturnType() == TypeUnknown {
			c.errorf(e.Loc, "Mismatched types %s %s %s", e.Left.ReturnType(), e.Op, e.Right.ReturnType())
			return false
		}
		if e.ReturnType() == TypeString && e.Op != MathOpAdd {
			c.errorf(e.Loc, "Operator %s is not defined on string", e.Op)
			return false
		}
		return true

	default:
		return expr != nil && expr.ReturnType() != TypeUnknown
	}
}
