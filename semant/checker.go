package semant

import (
	"cool-semant/ast"
	"cool-semant/types"
)

// checker types the features of one class at a time. Every rule returns a
// type; errors are reported and replaced by Object so checking continues.
type checker struct {
	cfg     *Config
	names   types.Names
	classes *ClassTable
	methods *MethodTable
	diags   *Diagnostics
	env     *Environment
	class   *ast.Class
}

func newChecker(cfg *Config, classes *ClassTable, methods *MethodTable, diags *Diagnostics) *checker {
	return &checker{
		cfg:     cfg,
		names:   cfg.Names,
		classes: classes,
		methods: methods,
		diags:   diags,
		env:     NewEnvironment(),
	}
}

func (c *checker) current() string { return c.class.Name.Value }

func (c *checker) errorf(kind ErrorKind, node ast.Node, format string, args ...interface{}) {
	c.diags.Reportf(kind, c.class.Filename, node.Line(), format, args...)
}

func (c *checker) conforms(sub, super types.Type) bool {
	return c.classes.Conforms(sub, super, c.current())
}

func (c *checker) join(a, b types.Type) types.Type {
	return c.classes.Join(a, b, c.current())
}

func (c *checker) object() types.Type { return c.names.ObjectType() }

// typeOf resolves a type written inside an expression. SELF_TYPE is kept
// when allowed; undefined or disallowed names fall back to Object.
func (c *checker) typeOf(name string, allowSelf bool) (types.Type, bool) {
	if name == c.names.SelfType {
		if allowSelf {
			return types.Self, true
		}
		return c.object(), false
	}
	if !c.classes.IsDefined(name) {
		return c.object(), false
	}
	return types.Class(name), true
}

func (c *checker) checkClass(class *ast.Class) {
	c.class = class
	defer func() { c.class = nil }()

	for _, feature := range class.Features {
		switch f := feature.(type) {
		case *ast.Attribute:
			c.checkAttribute(f)
		case *ast.Method:
			c.checkMethod(f)
		}
	}
}

func (c *checker) checkAttribute(attr *ast.Attribute) {
	if attr.Init == nil {
		return
	}
	declared, ok := c.typeOf(attr.Type.Value, true)
	c.env.Scoped(func() {
		c.env.Bind(c.names.Self, types.Self)
		initType := c.check(attr.Init)
		if ok && !c.conforms(initType, declared) {
			c.errorf(TypeMismatch, attr,
				"Inferred type %s of initialization of attribute %s does not conform to declared type %s.",
				initType, attr.Name.Value, declared)
		}
	})
}

func (c *checker) checkMethod(method *ast.Method) {
	if method.Body == nil {
		return
	}
	c.env.Scoped(func() {
		c.env.Bind(c.names.Self, types.Self)
		for _, formal := range method.Parameters {
			if formal.Name.Value == c.names.Self {
				continue
			}
			ty, _ := c.typeOf(formal.Type.Value, false)
			c.env.Bind(formal.Name.Value, ty)
		}

		bodyType := c.check(method.Body)
		declared, ok := c.typeOf(method.ReturnType.Value, true)
		if ok && !c.conforms(bodyType, declared) {
			c.errorf(TypeMismatch, method,
				"Inferred return type %s of method %s does not conform to declared return type %s.",
				bodyType, method.Name.Value, declared)
		}
	})
}

// check types expr and records the result on the node.
func (c *checker) check(expr ast.Expression) types.Type {
	t := c.infer(expr)
	expr.SetStaticType(t)
	return t
}

func (c *checker) infer(expr ast.Expression) types.Type {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return c.names.IntType()
	case *ast.StringLiteral:
		return c.names.StringType()
	case *ast.BooleanLiteral:
		return c.names.BoolType()
	case *ast.ObjectIdentifier:
		return c.checkIdentifier(e)
	case *ast.Assignment:
		return c.checkAssignment(e)
	case *ast.NewExpression:
		return c.checkNew(e)
	case *ast.IsVoidExpression:
		c.check(e.Expression)
		return c.names.BoolType()
	case *ast.InfixExpression:
		return c.checkInfix(e)
	case *ast.NegExpression:
		operand := c.check(e.Expression)
		if !c.conforms(operand, c.names.IntType()) {
			c.errorf(TypeMismatch, e, "Argument of '~' has type %s instead of Int.", operand)
		}
		return c.names.IntType()
	case *ast.NotExpression:
		operand := c.check(e.Expression)
		if !c.conforms(operand, c.names.BoolType()) {
			c.errorf(TypeMismatch, e, "Argument of 'not' has type %s instead of Bool.", operand)
		}
		return c.names.BoolType()
	case *ast.IfExpression:
		return c.checkIf(e)
	case *ast.WhileExpression:
		cond := c.check(e.Condition)
		if !c.conforms(cond, c.names.BoolType()) {
			c.errorf(TypeMismatch, e, "Loop condition does not have type Bool.")
		}
		c.check(e.Body)
		return c.object()
	case *ast.BlockExpression:
		last := c.object()
		for _, sub := range e.Expressions {
			last = c.check(sub)
		}
		return last
	case *ast.LetExpression:
		return c.checkLet(e, 0)
	case *ast.CaseExpression:
		return c.checkCase(e)
	case *ast.MethodCall:
		return c.checkDispatch(e)
	}
	return c.object()
}

// lookup resolves an identifier: scopes first, then the attributes of the
// current class and its ancestors.
func (c *checker) lookup(name string) (types.Type, bool) {
	if name == c.names.Self {
		return types.Self, true
	}
	if t, ok := c.env.Lookup(name); ok {
		return t, true
	}
	if attr, ok := c.methods.AttributeOf(c.current(), name); ok {
		return attr.Type, true
	}
	return types.None, false
}

func (c *checker) checkIdentifier(id *ast.ObjectIdentifier) types.Type {
	t, ok := c.lookup(id.Value)
	if !ok {
		c.errorf(UndefinedIdentifier, id, "Undeclared identifier %s.", id.Value)
		return c.object()
	}
	return t
}

func (c *checker) checkAssignment(a *ast.Assignment) types.Type {
	valueType := c.check(a.Expression)
	name := a.Name.Value
	if name == c.names.Self {
		c.errorf(IllegalSelfAssignment, a, "Cannot assign to 'self'.")
		return valueType
	}
	declared, ok := c.lookup(name)
	if !ok {
		c.errorf(UndefinedIdentifier, a, "Assignment to undeclared variable %s.", name)
		return valueType
	}
	if !c.conforms(valueType, declared) {
		c.errorf(TypeMismatch, a,
			"Type %s of assigned expression does not conform to declared type %s of identifier %s.",
			valueType, declared, name)
	}
	return valueType
}

func (c *checker) checkNew(n *ast.NewExpression) types.Type {
	t, ok := c.typeOf(n.Type.Value, true)
	if !ok {
		c.errorf(UndefinedType, n, "'new' used with undefined class %s.", n.Type.Value)
	}
	return t
}

func (c *checker) checkInfix(e *ast.InfixExpression) types.Type {
	left := c.check(e.Left)
	right := c.check(e.Right)
	intType := c.names.IntType()

	switch e.Operator {
	case ast.OpPlus, ast.OpMinus, ast.OpTimes, ast.OpDivide:
		if !c.conforms(left, intType) || !c.conforms(right, intType) {
			c.errorf(TypeMismatch, e, "non-Int arguments: %s %s %s", left, e.Operator, right)
		}
		return intType
	case ast.OpLT, ast.OpLE:
		if !c.conforms(left, intType) || !c.conforms(right, intType) {
			c.errorf(TypeMismatch, e, "non-Int arguments: %s %s %s", left, e.Operator, right)
		}
		return c.names.BoolType()
	case ast.OpEQ:
		l, r := left.Resolve(c.current()), right.Resolve(c.current())
		if (c.names.IsPrimitive(l.Name()) || c.names.IsPrimitive(r.Name())) && !l.Equal(r) {
			c.errorf(IllegalComparison, e, "Illegal comparison between %s and %s.", left, right)
		}
		return c.names.BoolType()
	}
	c.errorf(TypeMismatch, e, "Unsupported operator %q.", e.Operator)
	return c.object()
}

func (c *checker) checkIf(e *ast.IfExpression) types.Type {
	cond := c.check(e.Condition)
	if !c.conforms(cond, c.names.BoolType()) {
		c.errorf(TypeMismatch, e, "Predicate of 'if' does not have type Bool.")
	}
	then := c.check(e.Consequence)
	if e.Alternative == nil {
		return then
	}
	return c.join(then, c.check(e.Alternative))
}

// checkLet handles binding i and everything after it as a nested let. The
// initializer is checked before its identifier enters scope.
func (c *checker) checkLet(e *ast.LetExpression, i int) types.Type {
	if i == len(e.Bindings) {
		return c.check(e.Body)
	}
	b := e.Bindings[i]
	declared, ok := c.typeOf(b.Type.Value, true)
	if !ok {
		c.errorf(UndefinedType, b.Name, "Class %s of let-bound identifier %s is undefined.",
			b.Type.Value, b.Name.Value)
	}
	if b.Init != nil {
		initType := c.check(b.Init)
		if ok && !c.conforms(initType, declared) {
			c.errorf(TypeMismatch, b.Name,
				"Inferred type %s of initialization of %s does not conform to identifier's declared type %s.",
				initType, b.Name.Value, declared)
		}
	}

	var body types.Type
	c.env.Scoped(func() {
		if b.Name.Value == c.names.Self {
			c.errorf(IllegalSelfBinding, b.Name, "'self' cannot be bound in a 'let' expression.")
		} else {
			c.env.Bind(b.Name.Value, declared)
		}
		body = c.checkLet(e, i+1)
	})
	return body
}

func (c *checker) checkCase(e *ast.CaseExpression) types.Type {
	c.check(e.Expression)

	seen := make(map[string]bool)
	var result types.Type
	for _, branch := range e.Cases {
		typeName := branch.Type.Value
		declared, ok := c.typeOf(typeName, false)
		if !ok {
			if typeName == c.names.SelfType {
				c.errorf(IllegalSelfType, branch, "Identifier %s declared with type SELF_TYPE in case branch.",
					branch.Name.Value)
			} else {
				c.errorf(UndefinedType, branch, "Class %s of case branch is undefined.", typeName)
			}
		}
		if seen[typeName] {
			c.errorf(DuplicateBranchType, branch, "Duplicate branch %s in case statement.", typeName)
		}
		seen[typeName] = true

		var bodyType types.Type
		c.env.Scoped(func() {
			if branch.Name.Value == c.names.Self {
				c.errorf(IllegalSelfBinding, branch, "'self' bound in 'case'.")
			} else {
				c.env.Bind(branch.Name.Value, declared)
			}
			bodyType = c.check(branch.Expression)
		})

		if !result.IsValid() {
			result = bodyType
		} else {
			result = c.join(result, bodyType)
		}
	}
	if !result.IsValid() {
		return c.object()
	}
	return result
}

func (c *checker) checkDispatch(call *ast.MethodCall) types.Type {
	receiver := types.Self
	if call.Object != nil {
		receiver = c.check(call.Object)
	}
	args := make([]types.Type, len(call.Arguments))
	for i, arg := range call.Arguments {
		args[i] = c.check(arg)
	}

	methodName := call.Method.Value
	lookupIn := receiver.Resolve(c.current()).Name()
	if call.Type != nil {
		target := call.Type.Value
		if target == c.names.SelfType || !c.classes.IsDefined(target) {
			c.errorf(UndefinedType, call, "Static dispatch to undefined class %s.", target)
			return c.object()
		}
		if !c.conforms(receiver, types.Class(target)) {
			c.errorf(StaticDispatchViolation, call,
				"Expression type %s does not conform to declared static dispatch type %s.",
				receiver, target)
		}
		lookupIn = target
	}

	sig, ok := c.methods.SignatureOf(lookupIn, methodName)
	if !ok {
		c.errorf(UndefinedMethod, call, "Dispatch to undefined method %s.", methodName)
		return c.object()
	}

	if len(args) != sig.Arity() {
		c.errorf(ArityMismatch, call, "Method %s called with wrong number of arguments: expected %d, got %d.",
			methodName, sig.Arity(), len(args))
	} else {
		for i, argType := range args {
			if !c.conforms(argType, sig.FormalTypes[i]) {
				c.errorf(TypeMismatch, call.Arguments[i],
					"In call of method %s, type %s of parameter %s does not conform to declared type %s.",
					methodName, argType, sig.FormalNames[i], sig.FormalTypes[i])
			}
		}
	}

	if sig.Return.IsSelf() {
		return receiver
	}
	return sig.Return
}
