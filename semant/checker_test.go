package semant

import (
	"testing"

	"cool-semant/ast"
)

func TestExpressionTyping(t *testing.T) {
	classA := func() *ast.Class { return class("A", "", method("f", "Int", intLit(0))) }
	classB := func() *ast.Class { return class("B", "A") }
	classC := func() *ast.Class { return class("C", "A") }

	tests := []struct {
		name     string
		body     ast.Expression
		parent   string
		features []ast.Feature
		others   []*ast.Class
		want     string
		kinds    []ErrorKind
	}{
		{name: "integer", body: intLit(1), want: "Int"},
		{name: "string", body: strLit("s"), want: "String"},
		{name: "boolean", body: boolLit(true), want: "Bool"},
		{name: "self", body: id("self"), want: "SELF_TYPE"},
		{name: "undeclared identifier", body: id("nope"), want: "Object", kinds: []ErrorKind{UndefinedIdentifier}},
		{
			name:     "attribute",
			body:     id("n"),
			features: []ast.Feature{attr("n", "Int", nil)},
			want:     "Int",
		},
		{
			name:   "inherited attribute",
			body:   id("n"),
			parent: "A",
			others: []*ast.Class{class("A", "", attr("n", "String", nil))},
			want:   "String",
		},

		{
			name:  "assign to self",
			body:  &ast.Assignment{Token: dummyToken, Name: id("self"), Expression: intLit(1)},
			want:  "Int",
			kinds: []ErrorKind{IllegalSelfAssignment},
		},
		{
			name:  "assign to undeclared",
			body:  &ast.Assignment{Token: dummyToken, Name: id("nope"), Expression: intLit(1)},
			want:  "Int",
			kinds: []ErrorKind{UndefinedIdentifier},
		},
		{
			name:     "assign mismatch",
			body:     &ast.Assignment{Token: dummyToken, Name: id("n"), Expression: strLit("s")},
			features: []ast.Feature{attr("n", "Int", nil)},
			want:     "String",
			kinds:    []ErrorKind{TypeMismatch},
		},
		{
			name:     "assign subtype",
			body:     &ast.Assignment{Token: dummyToken, Name: id("o"), Expression: intLit(1)},
			features: []ast.Feature{attr("o", "Object", nil)},
			want:     "Int",
		},

		{name: "new class", body: newExpr("A"), others: []*ast.Class{classA()}, want: "A"},
		{name: "new SELF_TYPE", body: newExpr("SELF_TYPE"), want: "SELF_TYPE"},
		{name: "new undefined", body: newExpr("Missing"), want: "Object", kinds: []ErrorKind{UndefinedType}},
		{name: "isvoid", body: &ast.IsVoidExpression{Token: dummyToken, Expression: newExpr("Object")}, want: "Bool"},

		{name: "arithmetic", body: infix(intLit(1), ast.OpTimes, intLit(2)), want: "Int"},
		{
			name:  "arithmetic with Bool",
			body:  infix(intLit(1), ast.OpPlus, boolLit(true)),
			want:  "Int",
			kinds: []ErrorKind{TypeMismatch},
		},
		{
			name:  "arithmetic with two bad operands",
			body:  infix(strLit("a"), ast.OpMinus, boolLit(true)),
			want:  "Int",
			kinds: []ErrorKind{TypeMismatch},
		},
		{name: "less than", body: infix(intLit(1), ast.OpLT, intLit(2)), want: "Bool"},
		{
			name:  "less or equal with String",
			body:  infix(intLit(1), ast.OpLE, strLit("s")),
			want:  "Bool",
			kinds: []ErrorKind{TypeMismatch},
		},
		{name: "equal Int", body: infix(intLit(1), ast.OpEQ, intLit(2)), want: "Bool"},
		{name: "equal String", body: infix(strLit("a"), ast.OpEQ, strLit("b")), want: "Bool"},
		{
			name:  "equal Int and String",
			body:  infix(intLit(1), ast.OpEQ, strLit("s")),
			want:  "Bool",
			kinds: []ErrorKind{IllegalComparison},
		},
		{
			name:  "equal Object and Int",
			body:  infix(newExpr("Object"), ast.OpEQ, intLit(1)),
			want:  "Bool",
			kinds: []ErrorKind{IllegalComparison},
		},
		{
			name:   "equal objects",
			body:   infix(newExpr("A"), ast.OpEQ, newExpr("B")),
			others: []*ast.Class{classA(), classB()},
			want:   "Bool",
		},
		{name: "negate", body: &ast.NegExpression{Token: dummyToken, Expression: intLit(1)}, want: "Int"},
		{
			name:  "negate Bool",
			body:  &ast.NegExpression{Token: dummyToken, Expression: boolLit(true)},
			want:  "Int",
			kinds: []ErrorKind{TypeMismatch},
		},
		{
			name:  "not Int",
			body:  &ast.NotExpression{Token: dummyToken, Expression: intLit(1)},
			want:  "Bool",
			kinds: []ErrorKind{TypeMismatch},
		},

		{
			name: "if Int or Bool",
			body: &ast.IfExpression{Token: dummyToken, Condition: boolLit(true), Consequence: intLit(1), Alternative: boolLit(false)},
			want: "Object",
		},
		{
			name: "if IO or IO",
			body: &ast.IfExpression{Token: dummyToken, Condition: boolLit(true), Consequence: newExpr("IO"), Alternative: newExpr("IO")},
			want: "IO",
		},
		{
			name:   "if siblings",
			body:   &ast.IfExpression{Token: dummyToken, Condition: boolLit(true), Consequence: newExpr("B"), Alternative: newExpr("C")},
			others: []*ast.Class{classA(), classB(), classC()},
			want:   "A",
		},
		{
			name: "if without else",
			body: &ast.IfExpression{Token: dummyToken, Condition: boolLit(true), Consequence: intLit(1)},
			want: "Int",
		},
		{
			name:  "if with Int predicate",
			body:  &ast.IfExpression{Token: dummyToken, Condition: intLit(1), Consequence: intLit(1), Alternative: intLit(2)},
			want:  "Int",
			kinds: []ErrorKind{TypeMismatch},
		},
		{
			name: "while",
			body: &ast.WhileExpression{Token: dummyToken, Condition: boolLit(false), Body: intLit(1)},
			want: "Object",
		},
		{
			name:  "while with Int condition",
			body:  &ast.WhileExpression{Token: dummyToken, Condition: intLit(1), Body: intLit(1)},
			want:  "Object",
			kinds: []ErrorKind{TypeMismatch},
		},
		{name: "block", body: block(intLit(1), strLit("s")), want: "String"},
		{name: "empty block", body: block(), want: "Object"},

		{name: "let", body: let("x", "Int", intLit(1), id("x")), want: "Int"},
		{name: "let without init", body: let("x", "String", nil, id("x")), want: "String"},
		{
			name:  "let undefined type",
			body:  let("x", "Missing", nil, id("x")),
			want:  "Object",
			kinds: []ErrorKind{UndefinedType},
		},
		{
			name:  "let self",
			body:  let("self", "Int", nil, intLit(1)),
			want:  "Int",
			kinds: []ErrorKind{IllegalSelfBinding},
		},
		{
			name:  "let init mismatch",
			body:  let("x", "Int", strLit("s"), id("x")),
			want:  "Int",
			kinds: []ErrorKind{TypeMismatch},
		},
		{
			name:  "let init does not see its binding",
			body:  let("x", "Int", id("x"), id("x")),
			want:  "Int",
			kinds: []ErrorKind{UndefinedIdentifier, TypeMismatch},
		},
		{
			name: "let multiple bindings",
			body: &ast.LetExpression{
				Token:    dummyToken,
				Bindings: []*ast.Binding{
					{Name: id("a"), Type: typ("Int"), Init: intLit(1)},
					{Name: id("b"), Type: typ("Int"), Init: id("a")},
				},
				Body: infix(id("a"), ast.OpPlus, id("b")),
			},
			want: "Int",
		},
		{
			name:     "let shadows attribute",
			body:     let("n", "Int", intLit(1), infix(id("n"), ast.OpPlus, intLit(1))),
			features: []ast.Feature{attr("n", "String", nil)},
			want:     "Int",
		},
		{
			name:  "let scope ends",
			body:  block(let("x", "Int", intLit(1), id("x")), id("x")),
			want:  "Object",
			kinds: []ErrorKind{UndefinedIdentifier},
		},

		{
			name:  "case duplicate branch",
			body:  caseOf(intLit(1), branch("a", "Int", intLit(1)), branch("b", "Int", intLit(2))),
			want:  "Int",
			kinds: []ErrorKind{DuplicateBranchType},
		},
		{
			name: "case join",
			body: caseOf(intLit(1), branch("i", "Int", id("i")), branch("s", "String", id("s"))),
			want: "Object",
		},
		{
			name:   "case join classes",
			body:   caseOf(newExpr("A"), branch("b", "B", id("b")), branch("c", "C", id("c"))),
			others: []*ast.Class{classA(), classB(), classC()},
			want:   "A",
		},
		{
			name:  "case undefined branch type",
			body:  caseOf(intLit(1), branch("m", "Missing", intLit(1))),
			want:  "Int",
			kinds: []ErrorKind{UndefinedType},
		},
		{
			name:  "case SELF_TYPE branch",
			body:  caseOf(intLit(1), branch("s", "SELF_TYPE", intLit(1))),
			want:  "Int",
			kinds: []ErrorKind{IllegalSelfType},
		},
		{
			name:  "case self binding",
			body:  caseOf(intLit(1), branch("self", "Int", intLit(1))),
			want:  "Int",
			kinds: []ErrorKind{IllegalSelfBinding},
		},
		{
			name:  "case branch scope ends",
			body:  block(caseOf(intLit(1), branch("i", "Int", id("i"))), id("i")),
			want:  "Object",
			kinds: []ErrorKind{UndefinedIdentifier},
		},

		{
			name:  "concat with Int",
			body:  call(strLit("hello"), "concat", intLit(5)),
			want:  "String",
			kinds: []ErrorKind{TypeMismatch},
		},
		{name: "concat", body: call(strLit("hello"), "concat", strLit(" world")), want: "String"},
		{name: "length", body: call(strLit("hello"), "length"), want: "Int"},
		{
			name:  "substr arity",
			body:  call(strLit("hello"), "substr", intLit(1)),
			want:  "String",
			kinds: []ErrorKind{ArityMismatch},
		},
		{
			name:  "undefined method",
			body:  call(strLit("hello"), "missing"),
			want:  "Object",
			kinds: []ErrorKind{UndefinedMethod},
		},
		{
			name:  "undeclared receiver",
			body:  call(id("nope"), "length"),
			want:  "Object",
			kinds: []ErrorKind{UndefinedIdentifier, UndefinedMethod},
		},
		{name: "SELF_TYPE return on IO", body: call(newExpr("IO"), "out_string", strLit("x")), want: "IO"},
		{name: "implicit self dispatch", body: call(nil, "out_string", strLit("x")), parent: "IO", want: "SELF_TYPE"},
		{name: "copy of self", body: call(id("self"), "copy"), want: "SELF_TYPE"},
		{name: "copy of object", body: call(newExpr("A"), "copy"), others: []*ast.Class{classA()}, want: "A"},
		{name: "inherited method", body: call(newExpr("B"), "f"), others: []*ast.Class{classA(), classB()}, want: "Int"},

		{name: "static dispatch", body: staticCall(newExpr("B"), "A", "f"), others: []*ast.Class{classA(), classB()}, want: "Int"},
		{
			name:   "static dispatch SELF_TYPE return",
			body:   staticCall(newExpr("B"), "A", "copy"),
			others: []*ast.Class{classA(), classB()},
			want:   "B",
		},
		{
			name:   "static dispatch to subclass",
			body:   staticCall(newExpr("A"), "B", "f"),
			others: []*ast.Class{classA(), classB()},
			want:   "Int",
			kinds:  []ErrorKind{StaticDispatchViolation},
		},
		{
			name:  "static dispatch to SELF_TYPE",
			body:  staticCall(id("self"), "SELF_TYPE", "copy"),
			want:  "Object",
			kinds: []ErrorKind{UndefinedType},
		},
		{
			name:  "static dispatch to undefined class",
			body:  staticCall(id("self"), "Missing", "copy"),
			want:  "Object",
			kinds: []ErrorKind{UndefinedType},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := checkInMain(tt.body, tt.parent, tt.features, tt.others...)
			if got := tt.body.StaticType().String(); got != tt.want {
				t.Errorf("Expected type %s, got %s", tt.want, got)
			}
			assertOnly(t, res, tt.kinds...)
		})
	}
}

func TestAnnotations(t *testing.T) {
	t.Run("Nested Expressions Are Annotated", func(t *testing.T) {
		left := intLit(1)
		arg := strLit("x")
		receiver := newExpr("IO")
		body := block(infix(left, ast.OpPlus, intLit(2)), call(receiver, "out_string", arg))
		checkInMain(body, "", nil)

		for _, tc := range []struct {
			expr ast.Expression
			want string
		}{
			{left, "Int"},
			{body.Expressions[0], "Int"},
			{arg, "String"},
			{receiver, "IO"},
			{body, "IO"},
		} {
			if got := tc.expr.StaticType().String(); got != tc.want {
				t.Errorf("Expected %s to have type %s, got %s", ast.Serialize(tc.expr), tc.want, got)
			}
		}
	})

	t.Run("Argument Errors Point At The Argument", func(t *testing.T) {
		arg := intLit(5)
		arg.Token = tok(7)
		res := checkInMain(call(strLit("hello"), "concat", arg), "", nil)
		assertOnly(t, res, TypeMismatch)
		d := res.Of(TypeMismatch)[0]
		if d.Line != 7 {
			t.Errorf("Expected line 7, got %d", d.Line)
		}
		want := "test.cl:7: In call of method concat, type Int of parameter s does not conform to declared type String."
		if d.Error() != want {
			t.Errorf("Expected %q, got %q", want, d.Error())
		}
	})

	t.Run("Unchecked Nodes Keep No Type", func(t *testing.T) {
		expr := intLit(1)
		if got := expr.StaticType().String(); got != "_no_type" {
			t.Errorf("Expected _no_type, got %s", got)
		}
	})
}
