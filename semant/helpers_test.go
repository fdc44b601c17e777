package semant

import (
	"fmt"
	"strings"
	"testing"

	"cool-semant/ast"
	"cool-semant/lexer"
)

var dummyToken = lexer.Token{Type: lexer.OBJECTID, Literal: "dummy", Line: 1}

func tok(line int) lexer.Token {
	return lexer.Token{Type: lexer.OBJECTID, Literal: "dummy", Line: line}
}

func id(name string) *ast.ObjectIdentifier {
	return &ast.ObjectIdentifier{Value: name, Token: dummyToken}
}

func typ(name string) *ast.TypeIdentifier {
	return &ast.TypeIdentifier{Value: name, Token: dummyToken}
}

func class(name, parent string, features ...ast.Feature) *ast.Class {
	c := &ast.Class{
		Token:    dummyToken,
		Name:     typ(name),
		Features: features,
		Filename: "test.cl",
	}
	if parent != "" {
		c.Parent = typ(parent)
	}
	return c
}

func method(name, returnType string, body ast.Expression, formals ...*ast.Formal) *ast.Method {
	return &ast.Method{
		Token:      dummyToken,
		Name:       id(name),
		Parameters: formals,
		ReturnType: typ(returnType),
		Body:       body,
	}
}

func formal(name, typeName string) *ast.Formal {
	return &ast.Formal{Token: dummyToken, Name: id(name), Type: typ(typeName)}
}

func attr(name, typeName string, init ast.Expression) *ast.Attribute {
	return &ast.Attribute{Token: dummyToken, Name: id(name), Type: typ(typeName), Init: init}
}

func intLit(v int) *ast.IntegerLiteral {
	return &ast.IntegerLiteral{Token: dummyToken, Value: v}
}

func strLit(v string) *ast.StringLiteral {
	return &ast.StringLiteral{Token: dummyToken, Value: v}
}

func boolLit(v bool) *ast.BooleanLiteral {
	return &ast.BooleanLiteral{Token: dummyToken, Value: v}
}

func newExpr(typeName string) *ast.NewExpression {
	return &ast.NewExpression{Token: dummyToken, Type: typ(typeName)}
}

func call(object ast.Expression, name string, args ...ast.Expression) *ast.MethodCall {
	return &ast.MethodCall{Token: dummyToken, Object: object, Method: id(name), Arguments: args}
}

func staticCall(object ast.Expression, typeName, name string, args ...ast.Expression) *ast.MethodCall {
	return &ast.MethodCall{Token: dummyToken, Object: object, Type: typ(typeName), Method: id(name), Arguments: args}
}

func infix(left ast.Expression, op string, right ast.Expression) *ast.InfixExpression {
	return &ast.InfixExpression{Token: dummyToken, Left: left, Operator: op, Right: right}
}

func block(exprs ...ast.Expression) *ast.BlockExpression {
	return &ast.BlockExpression{Token: dummyToken, Expressions: exprs}
}

func let(name, typeName string, init, body ast.Expression) *ast.LetExpression {
	return &ast.LetExpression{
		Token:    dummyToken,
		Bindings: []*ast.Binding{{Name: id(name), Type: typ(typeName), Init: init}},
		Body:     body,
	}
}

func branch(name, typeName string, body ast.Expression) *ast.Case {
	return &ast.Case{Token: dummyToken, Name: id(name), Type: typ(typeName), Expression: body}
}

func caseOf(expr ast.Expression, branches ...*ast.Case) *ast.CaseExpression {
	return &ast.CaseExpression{Token: dummyToken, Expression: expr, Cases: branches}
}

// mainClass is a well-formed entry class with extra features.
func mainClass(features ...ast.Feature) *ast.Class {
	features = append(features, method("main", "Object", intLit(0)))
	return class("Main", "", features...)
}

func analyze(classes ...*ast.Class) *Result {
	sa := NewSemanticAnalyzer()
	return sa.Analyze(&ast.Program{Classes: classes})
}

// checkInMain types body as the body of Main.main, Main having the given
// parent and extra features. Other classes are added to the program.
func checkInMain(body ast.Expression, parent string, features []ast.Feature, others ...*ast.Class) *Result {
	features = append(features, method("main", "Object", body))
	main := class("Main", parent, features...)
	return analyze(append([]*ast.Class{main}, others...)...)
}

func assertErrorsContain(t *testing.T, errors []string, substr string) {
	t.Helper()
	for _, err := range errors {
		if strings.Contains(err, substr) {
			return
		}
	}
	t.Errorf("Expected error containing %q, got: %v", substr, errors)
}

func assertNoErrors(t *testing.T, errors []string) {
	t.Helper()
	if len(errors) > 0 {
		t.Errorf("Expected no errors, got: %v", errors)
	}
}

func assertKindCount(t *testing.T, res *Result, kind ErrorKind, want int) {
	t.Helper()
	if got := len(res.Of(kind)); got != want {
		t.Errorf("Expected %d %s errors, got %d: %v", want, kind, got, res.Errors())
	}
}

func assertOnly(t *testing.T, res *Result, kinds ...ErrorKind) {
	t.Helper()
	got := make([]string, 0, res.ErrorCount())
	for _, d := range res.Diagnostics() {
		got = append(got, d.Kind.String())
	}
	want := make([]string, len(kinds))
	for i, k := range kinds {
		want[i] = k.String()
	}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("Expected diagnostics %v, got %v: %v", want, got, res.Errors())
	}
}
