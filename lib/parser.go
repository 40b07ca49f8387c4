package lib

import (
	"errors"
	"fmt"
)

// AssembleFile builds the typed tree for one file and validates it. Syntax
// errors and type errors both come back as diagnostics, in source order; the
// returned tree contains every statement that parsed.
func AssembleFile(fileID string, tokens []Token) (*File, []Diagnostic) {
	file, diags := parseFile(fileID, tokens)
	diags = append(diags, Check(file)...)
	sortDiagnostics(diags)
	return file, diags
}

func parseFile(fileID string, tokens []Token) (*File, []Diagnostic) {
	p := parser{
		reader: newTokenBuffer(tokens),
		scopes: []map[string]LaiType{{}},
		sink:   &diagnosticSink{file: fileID},
	}
	statements := p.scanStatements(false)
	return &File{Name: fileID, Statements: statements}, p.sink.diagnostics
}

type parser struct {
	reader tokenReader
	prev   Token
	scopes []map[string]LaiType
	sink   *diagnosticSink
}

type parseError struct {
	loc Location
	msg string
}

func (e *parseError) Error() string {
	return fmt.Sprintf("%s: %s", e.loc, e.msg)
}

func (p *parser) errorAt(loc Location, msg string, args ...interface{}) error {
	return &parseError{loc: loc, msg: fmt.Sprintf(msg, args...)}
}

// scanStatements reads statements until EOF or, inside a block, until the
// closing brace. A failed statement is reported and the rest of its line is
// skipped.
func (p *parser) scanStatements(inBlock bool) []Statement {
	statements := []Statement{}

	for {
		tok, done := p.reader.Peek()
		if done {
			return statements
		}
		if inBlock && tok.Kind == TokenCloseBrace {
			return statements
		}

		stmt, err := p.scanStatement()
		if err != nil {
			p.report(err)
			p.skipLine(tok.Location.Line)
			continue
		}
		statements = append(statements, stmt)
	}
}

// report records err as a syntax error. Errors that carry no position are
// placed at the last consumed token.
func (p *parser) report(err error) {
	var perr *parseError
	if errors.As(err, &perr) {
		p.sink.errorf(SyntaxError, perr.loc, "%s", perr.msg)
		return
	}
	p.sink.errorf(SyntaxError, p.prev.Location, "%s", err.Error())
}

// skipLine drops the remaining tokens of the statement that started on
// startLine, up to the line of the last consumed token.
func (p *parser) skipLine(startLine int) {
	line := startLine
	if p.prev.Location.Line > line {
		line = p.prev.Location.Line
	}
	for {
		tok, done := p.reader.Peek()
		if done || tok.Location.Line > line {
			return
		}
		p.next()
	}
}

func (p *parser) scanStatement() (Statement, error) {
	tok, _ := p.reader.Peek()

	switch tok.Kind {
	case TokenIdentifier:
		return p.scanNamed()
	case TokenPrint:
		return p.scanPrint()
	case TokenIf:
		return p.scanIf()
	case TokenOpenBrace:
		return p.scanBlock()
	default:
		p.next()
		return nil, p.errorAt(tok.Location, "Expecting start of statement but got %s", tok.describe())
	}
}

// Reads "x := v", "x : T", "x : T = v" or "x = v".
func (p *parser) scanNamed() (Statement, error) {
	name := p.next()

	op, done := p.reader.Peek()
	if done {
		return nil, p.errorAt(name.Location, "Expecting ':=', ':' or '=' after '%s' but got EOF", name.Text)
	}

	switch op.Kind {
	case TokenInferAssign:
		p.next()
		value, err := p.scanExpr()
		if err != nil {
			return nil, err
		}
		decl := VariableDeclaration{
			Name:     name.Text,
			Type:     value.ReturnType(),
			Value:    value,
			Inferred: true,
			Loc:      name.Location,
		}
		p.declare(decl)
		return decl, nil

	case TokenDeclareType:
		p.next()
		typeTok, err := p.requireAny("type name")
		if err != nil {
			return nil, err
		}
		typ, ok := typeForToken(typeTok.Kind)
		if !ok {
			return nil, p.errorAt(typeTok.Location, "Expecting type name but got %s", typeTok.describe())
		}
		decl := VariableDeclaration{
			Name: name.Text,
			Type: typ,
			Loc:  name.Location,
		}
		if _, found := p.checkToken(TokenAssign); found {
			value, err := p.scanExpr()
			if err != nil {
				return nil, err
			}
			decl.Value = value
		}
		p.declare(decl)
		return decl, nil

	case TokenAssign:
		p.next()
		value, err := p.scanExpr()
		if err != nil {
			return nil, err
		}
		target, declared := p.lookup(name.Text)
		return Assignment{
			Name:       name.Text,
			TargetType: target,
			Declared:   declared,
			Value:      value,
			Loc:        name.Location,
		}, nil

	default:
		return nil, p.errorAt(op.Location, "Expecting ':=', ':' or '=' after '%s' but got %s", name.Text, op.describe())
	}
}

func (p *parser) scanPrint() (Statement, error) {
	keyword := p.next()

	if _, err := p.requireToken(TokenOpenParen); err != nil {
		return nil, err
	}
	value, err := p.scanExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.requireToken(TokenCloseParen); err != nil {
		return nil, err
	}

	return PrintStatement{Value: value, Loc: keyword.Location}, nil
}

func (p *parser) scanIf() (Statement, error) {
	keyword := p.next()

	if _, err := p.requireToken(TokenOpenParen); err != nil {
		return nil, err
	}
	cond, err := p.scanCondition()
	if err != nil {
		return nil, err
	}
	if _, err := p.requireToken(TokenCloseParen); err != nil {
		return nil, err
	}

	then, err := p.scanBlock()
	if err != nil {
		return nil, err
	}

	result := IfStatement{Cond: cond, Then: then, Loc: keyword.Location}

	if _, found := p.checkToken(TokenElse); !found {
		return result, nil
	}

	// else if ...
	if _, isIf := p.peekToken(TokenIf); isIf {
		elseIf, err := p.scanIf()
		if err != nil {
			return nil, err
		}
		result.Else = elseIf
		return result, nil
	}

	elseBlock, err := p.scanBlock()
	if err != nil {
		return nil, err
	}
	result.Else = elseBlock
	return result, nil
}

func (p *parser) scanCondition() (Condition, error) {
	left, err := p.scanExpr()
	if err != nil {
		return Condition{}, err
	}

	opTok, err := p.requireAny("'==' or '!='")
	if err != nil {
		return Condition{}, err
	}
	op, isOp := getCompareOpType(opTok)
	if !isOp {
		return Condition{}, p.errorAt(opTok.Location, "Expecting '==' or '!=' but got %s", opTok.describe())
	}

	right, err := p.scanExpr()
	if err != nil {
		return Condition{}, err
	}

	return Condition{Op: op, Left: left, Right: right, Loc: opTok.Location}, nil
}

func (p *parser) scanBlock() (Block, error) {
	open, err := p.requireToken(TokenOpenBrace)
	if err != nil {
		return Block{}, err
	}

	p.pushScope()
	statements := p.scanStatements(true)
	p.popScope()

	if _, err := p.requireToken(TokenCloseBrace); err != nil {
		return Block{}, err
	}

	return Block{Statements: statements, Loc: open.Location}, nil
}

func (p *parser) scanExpr() (Expression, error) {
	return p.scanBinary(1)
}

// scanBinary reads operators of at least minPrecedence, so that "a - b * c"
// groups as "a - (b * c)" and equal precedence associates left.
func (p *parser) scanBinary(minPrecedence int) (Expression, error) {
	left, err := p.scanSubExpr()
	if err != nil {
		return nil, err
	}

	for {
		opToken, done := p.reader.Peek()
		if done {
			break
		}

		op, isOp := getMathOpType(opToken)
		if !isOp || getPrecedence(op) < minPrecedence {
			break
		}
		p.next()

		right, err := p.scanBinary(getPrecedence(op) + 1)
		if err != nil {
			return nil, err
		}

		left = NewBinaryMath(op, left, right, opToken.Location)
	}

	return left, nil
}

func (p *parser) scanSubExpr() (Expression, error) {
	tok, done := p.reader.Peek()
	if done {
		return nil, p.errorAt(p.prev.Location, "Expecting expression but found EOF")
	}

	switch tok.Kind {
	case TokenIntegerLiteral:
		p.next()
		return IntLiteral{Value: tok.Int, Loc: tok.Location}, nil

	case TokenStringLiteral:
		p.next()
		return StringLiteral{Value: tok.Text, Loc: tok.Location}, nil

	case TokenIdentifier:
		p.next()
		typ, declared := p.lookup(tok.Text)
		return VariableExpression{
			Name:     tok.Text,
			Type:     typ,
			Declared: declared,
			Loc:      tok.Location,
		}, nil

	case TokenOpenParen:
		p.next()
		return p.scanParenthetical()

	default:
		return nil, p.errorAt(tok.Location, "Expecting expression but got %s", tok.describe())
	}
}

func (p *parser) scanParenthetical() (Expression, error) {
	expr, err := p.scanExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.requireToken(TokenCloseParen); err != nil {
		return nil, err
	}
	return expr, nil
}

func (p *parser) pushScope() {
	p.scopes = append(p.scopes, map[string]LaiType{})
}

func (p *parser) popScope() {
	p.scopes = p.scopes[:len(p.scopes)-1]
}

func (p *parser) declare(decl VariableDeclaration) {
	scope := p.scopes[len(p.scopes)-1]
	if _, exists := scope[decl.Name]; exists {
		p.sink.errorf(SemanticTypeError, decl.Loc, "Variable '%s' is already declared in this scope", decl.Name)
		return
	}
	scope[decl.Name] = decl.Type
}

func (p *parser) lookup(name string) (LaiType, bool) {
	for i := len(p.scopes) - 1; i >= 0; i-- {
		if typ, ok := p.scopes[i][name]; ok {
			return typ, true
		}
	}
	return TypeUnknown, false
}

func (p *parser) next() Token {
	tok, done := p.reader.Next()
	if !done {
		p.prev = tok
	}
	return tok
}

func (p *parser) requireAny(what string) (Token, error) {
	next, done := p.reader.Next()
	if done {
		return Token{}, p.errorAt(p.prev.Location, "Expecting %s but got EOF", what)
	}
	p.prev = next
	return next, nil
}

func (p *parser) requireToken(kind TokenKind) (Token, error) {
	next, done := p.reader.Peek()
	if done {
		return Token{}, p.errorAt(p.prev.Location, "Expecting '%s' but got EOF", kind.Text())
	}
	if next.Kind != kind {
		return Token{}, p.errorAt(next.Location, "Expecting '%s' but got %s", kind.Text(), next.describe())
	}
	p.next()
	return next, nil
}

func (p *parser) peekToken(kind TokenKind) (Token, bool) {
	next, done := p.reader.Peek()
	if done || next.Kind != kind {
		return Token{}, false
	}
	return next, true
}

func (p *parser) checkToken(kind TokenKind) (Token, bool) {
	tok, found := p.peekToken(kind)
	if found {
		p.next()
	}
	return tok, found
}

func getMathOpType(tok Token) (mathOpType, bool) {
	switch tok.Kind {
	case TokenPlus:
		return MathOpAdd, true
	case TokenMinus:
		return MathOpSubtract, true
	case TokenAsterisk:
		return MathOpMultiply, true
	case TokenSlash:
		return MathOpDivide, true
	}

	return 0, false
}

func getCompareOpType(tok Token) (compareOpType, bool) {
	switch tok.Kind {
	case TokenEqual:
		return CompareOpEqual, true
	case TokenNotEqual:
		return CompareOpNotEqual, true
	}

	return 0, false
}

func getPrecedence(op mathOpType) int {
	switch op {
	case MathOpAdd:
		return 1
	case MathOpSubtract:
		return 1
	case MathOpMultiply:
		return 2
	case MathOpDivide:
		return 2
	default:
		return 100
	}
}
