package lib

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/template"
	"unicode"
)

var templateString = `/* This code was generated by laic. */

#include <stdio.h>
#include <stdlib.h>
#include <string.h>

static const char *lai_rt_concat(const char *a, const char *b) {
	size_t la = strlen(a);
	size_t lb = strlen(b);
	char *out = malloc(la + lb + 1);
	if (out == NULL) {
		fputs("lai: out of memory\n", stderr);
		exit(1);
	}
	memcpy(out, a, la);
	memcpy(out + la, b, lb + 1);
	return out;
}

int main(void) {
{{range .Files}}	/* {{.Comment}} */
	{
{{range .Lines}}{{.}}
{{end}}	}
{{end}}	return 0;
}
`

var cTemplate = template.Must(template.New("c").Parse(templateString))

// Backend turns validated trees into target source text. It must only be
// called once every error gate has passed.
type Backend interface {
	Compile(files []*File) (string, error)
}

// CBackend emits a single C translation unit. Each file becomes its own
// block inside main, so files do not share variables.
type CBackend struct{}

func (CBackend) Compile(files []*File) (string, error) {
	vm, err := newViewModel(files)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	err = writeCode(&out, vm)
	if err != nil {
		return "", err
	}
	return out.String(), nil
}

type codeGenViewModel struct {
	Files []fileViewModel
}

type fileViewModel struct {
	Comment string
	Lines   []string
}

func writeCode(writer io.Writer, vm codeGenViewModel) error {
	return cTemplate.Execute(writer, vm)
}

func newViewModel(files []*File) (codeGenViewModel, error) {
	vm := codeGenViewModel{
		Files: []fileViewModel{},
	}

	for _, file := range files {
		e := newCEmitter(file.Name)
		for _, stmt := range file.Statements {
			if err := e.statement(stmt); err != nil {
				return codeGenViewModel{}, err
			}
		}
		vm.Files = append(vm.Files, fileViewModel{
			Comment: strings.ReplaceAll(file.Name, "*/", "* /"),
			Lines:   e.lines,
		})
	}

	return vm, nil
}

// cEmitter renders the statements of one file. It tracks Lai scopes itself so
// that every declaration gets its own C name: a shadowing declaration may read
// the variable it shadows in its initializer.
type cEmitter struct {
	file     string
	lines    []string
	depth    int
	scopes   []map[string]string
	declared map[string]int
}

func newCEmitter(file string) *cEmitter {
	return &cEmitter{
		file:     file,
		depth:    2,
		scopes:   []map[string]string{{}},
		declared: map[string]int{},
	}
}

// declare binds name in the innermost scope and returns its C name. The first
// declaration of a name in a file keeps the plain mangled name, later ones get
// a numeric suffix.
func (e *cEmitter) declare(name string) string {
	e.declared[name]++
	c := cName(name)
	if n := e.declared[name]; n > 1 {
		c += "_" + strconv.Itoa(n)
	}
	e.scopes[len(e.scopes)-1][name] = c
	return c
}

func (e *cEmitter) lookup(name string, loc Location) (string, error) {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if c, ok := e.scopes[i][name]; ok {
			return c, nil
		}
	}
	return "", e.errorf(loc, "undeclared variable '%s'", name)
}

func (e *cEmitter) line(s string) {
	e.lines = append(e.lines, strings.Repeat("\t", e.depth)+s)
}

func (e *cEmitter) errorf(loc Location, msg string, args ...interface{}) error {
	return fmt.Errorf("%s:%s: %s", e.file, loc, fmt.Sprintf(msg, args...))
}

func (e *cEmitter) statement(stmt Statement) error {
	switch s := stmt.(type) {
	case VariableDeclaration:
		value := ""
		if s.Value != nil {
			v, err := e.expr(s.Value)
			if err != nil {
				return err
			}
			value = v
		} else {
			zero, err := e.zeroValue(s.Type, s.Loc)
			if err != nil {
				return err
			}
			value = zero
		}
		// The initializer was rendered against the outer binding.
		decl, err := e.declaration(s.Type, e.declare(s.Name), s.Loc)
		if err != nil {
			return err
		}
		e.line(decl + " = " + value + ";")

	case Assignment:
		value, err := e.expr(s.Value)
		if err != nil {
			return err
		}
		target, err := e.lookup(s.Name, s.Loc)
		if err != nil {
			return err
		}
		e.line(target + " = " + value + ";")

	case PrintStatement:
		value, err := e.expr(s.Value)
		if err != nil {
			return err
		}
		switch s.Value.ReturnType() {
		case TypeInt:
			e.line(`printf("%d\n", ` + value + `);`)
		case TypeString:
			e.line(`printf("%s\n", ` + value + `);`)
		default:
			return e.errorf(s.Loc, "cannot print a value of type %s", s.Value.ReturnType())
		}

	case IfStatement:
		return e.ifStatement(s, "")

	case Block:
		e.line("{")
		if err := e.block(s); err != nil {
			return err
		}
		e.line("}")

	default:
		return e.errorf(stmt.Location(), "unsupported statement %T", stmt)
	}

	return nil
}

// ifStatement writes an if chain. prefix is "} else " when continuing one.
func (e *cEmitter) ifStatement(s IfStatement, prefix string) error {
	cond, err := e.condition(s.Cond)
	if err != nil {
		return err
	}
	e.line(prefix + "if (" + cond + ") {")
	if err := e.block(s.Then); err != nil {
		return err
	}

	switch elseStmt := s.Else.(type) {
	case nil:
		e.line("}")
	case IfStatement:
		return e.ifStatement(elseStmt, "} else ")
	case Block:
		e.line("} else {")
		if err := e.block(elseStmt); err != nil {
			return err
		}
		e.line("}")
	default:
		return e.errorf(s.Loc, "unsupported else branch %T", s.Else)
	}
	return nil
}

func (e *cEmitter) block(b Block) error {
	e.depth++
	e.scopes = append(e.scopes, map[string]string{})
	defer func() {
		e.depth--
		e.scopes = e.scopes[:len(e.scopes)-1]
	}()
	for _, stmt := range b.Statements {
		if err := e.statement(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (e *cEmitter) condition(c Condition) (string, error) {
	left, err := e.expr(c.Left)
	if err != nil {
		return "", err
	}
	right, err := e.expr(c.Right)
	if err != nil {
		return "", err
	}

	switch c.Left.ReturnType() {
	case TypeInt:
		return left + " " + c.Op.String() + " " + right, nil
	case TypeString:
		return "strcmp(" + left + ", " + right + ") " + c.Op.String() + " 0", nil
	default:
		return "", e.errorf(c.Loc, "cannot compare values of type %s", c.Left.ReturnType())
	}
}

func (e *cEmitter) expr(expr Expression) (string, error) {
	if expr.ReturnType() == TypeUnknown {
		return "", e.errorf(expr.Location(), "expression has unknown type")
	}

	switch x := expr.(type) {
	case IntLiteral:
		return strconv.FormatInt(int64(x.Value), 10), nil

	case StringLiteral:
		return cStringLiteral(x.Value), nil

	case VariableExpression:
		return e.lookup(x.Name, x.Loc)

	case BinaryMathExpression:
		left, err := e.expr(x.Left)
		if err != nil {
			return "", err
		}
		right, err := e.expr(x.Right)
		if err != nil {
			return "", err
		}
		if x.ReturnType() == TypeString {
			if x.Op != MathOpAdd {
				return "", e.errorf(x.Loc, "operator %s is not defined on string", x.Op)
			}
			return "lai_rt_concat(" + left + ", " + right + ")", nil
		}
		return "(" + left + " " + x.Op.String() + " " + right + ")", nil

	default:
		return "", e.errorf(expr.Location(), "unsupported expression %T", expr)
	}
}

func (e *cEmitter) declaration(t LaiType, cVar string, loc Location) (string, error) {
	switch t {
	case TypeInt:
		return "int " + cVar, nil
	case TypeString:
		return "const char *" + cVar, nil
	default:
		return "", e.errorf(loc, "variable %s has unknown type", cVar)
	}
}

func (e *cEmitter) zeroValue(t LaiType, loc Location) (string, error) {
	switch t {
	case TypeInt:
		return "0", nil
	case TypeString:
		return `""`, nil
	default:
		return "", e.errorf(loc, "no zero value for type %s", t)
	}
}

// cName mangles a Lai identifier into the lai_v_ namespace, which no runtime
// helper uses (they live under lai_rt_). ASCII letters and digits are kept;
// every other rune, '_' included, becomes _<hex>_. The encoding is one to one,
// and appending _<digits> to an encoded name never yields another encoded
// name, which leaves that suffix free for declare.
func cName(name string) string {
	var b strings.Builder
	b.WriteString("lai_v_")
	for _, ch := range name {
		if ch < 128 && (unicode.IsLetter(ch) || unicode.IsDigit(ch)) {
			b.WriteRune(ch)
			continue
		}
		fmt.Fprintf(&b, "_%x_", ch)
	}
	return b.String()
}

func cStringLiteral(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch == '\\':
			b.WriteString(`\\`)
		case ch == '"':
			b.WriteString(`\"`)
		case ch == '\n':
			b.WriteString(`\n`)
		case ch == '\t':
			b.WriteString(`\t`)
		case ch == '?':
			// avoid trigraphs
			b.WriteString(`\?`)
		case ch < 0x20 || ch == 0x7f:
			fmt.Fprintf(&b, `\%03o`, ch)
		default:
			b.WriteByte(ch)
		}
	}
	b.WriteByte('"')
	return b.String()
}
