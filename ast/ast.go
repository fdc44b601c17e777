package ast

import (
	"cool-semant/lexer"
	"cool-semant/types"
)

type Node interface {
	TokenLiteral() string
	Line() int
}

// Expression nodes carry the static type assigned by semantic analysis.
type Expression interface {
	Node
	expressionNode()
	StaticType() types.Type
	SetStaticType(types.Type)
}

type Feature interface {
	Node
	featureNode()
}

// Typed is the annotation slot embedded in every expression. It is the only
// field written after parsing.
type Typed struct {
	static types.Type
}

func (t *Typed) StaticType() types.Type      { return t.static }
func (t *Typed) SetStaticType(ty types.Type) { t.static = ty }

type TypeIdentifier struct {
	Token lexer.Token
	Value string
}

func (ti *TypeIdentifier) TokenLiteral() string { return ti.Token.Literal }
func (ti *TypeIdentifier) Line() int            { return ti.Token.Line }

type ObjectIdentifier struct {
	Typed
	Token lexer.Token
	Value string
}

func (oi *ObjectIdentifier) TokenLiteral() string { return oi.Token.Literal }
func (oi *ObjectIdentifier) Line() int            { return oi.Token.Line }
func (oi *ObjectIdentifier) expressionNode()      {}

type Program struct {
	Classes []*Class
}

func (p *Program) TokenLiteral() string { return "" }
func (p *Program) Line() int            { return 0 }

type Class struct {
	Token    lexer.Token
	Name     *TypeIdentifier
	Parent   *TypeIdentifier // nil means Object
	Features []Feature
	Filename string
}

func (c *Class) TokenLiteral() string { return c.Token.Literal }
func (c *Class) Line() int            { return c.Token.Line }

type Attribute struct {
	Token lexer.Token
	Name  *ObjectIdentifier
	Type  *TypeIdentifier
	Init  Expression
}

func (a *Attribute) TokenLiteral() string { return a.Token.Literal }
func (a *Attribute) Line() int            { return a.Token.Line }
func (a *Attribute) featureNode()         {}

type Method struct {
	Token      lexer.Token
	Name       *ObjectIdentifier
	Parameters []*Formal
	ReturnType *TypeIdentifier
	Body       Expression
}

func (m *Method) TokenLiteral() string { return m.Token.Literal }
func (m *Method) Line() int            { return m.Token.Line }
func (m *Method) featureNode()         {}

type Formal struct {
	Token lexer.Token
	Name  *ObjectIdentifier
	Type  *TypeIdentifier
}

func (f *Formal) TokenLiteral() string { return f.Token.Literal }
func (f *Formal) Line() int            { return f.Token.Line }

// block expression
type BlockExpression struct {
	Typed
	Token       lexer.Token
	Expressions []Expression
}

func (be *BlockExpression) TokenLiteral() string { return be.Token.Literal }
func (be *BlockExpression) Line() int            { return be.Token.Line }
func (be *BlockExpression) expressionNode()      {}

// IfExpression may have a nil Alternative.
type IfExpression struct {
	Typed
	Token       lexer.Token
	Condition   Expression
	Consequence Expression
	Alternative Expression
}

func (ie *IfExpression) TokenLiteral() string { return ie.Token.Literal }
func (ie *IfExpression) Line() int            { return ie.Token.Line }
func (ie *IfExpression) expressionNode()      {}

type WhileExpression struct {
	Typed
	Token     lexer.Token
	Condition Expression
	Body      Expression
}

func (we *WhileExpression) TokenLiteral() string { return we.Token.Literal }
func (we *WhileExpression) Line() int            { return we.Token.Line }
func (we *WhileExpression) expressionNode()      {}

// Binding is one `name : Type [<- init]` of a let.
type Binding struct {
	Name *ObjectIdentifier
	Type *TypeIdentifier
	Init Expression
}

// LetExpression with several bindings behaves like nested lets: each binding
// is visible to the initializers after it.
type LetExpression struct {
	Typed
	Token    lexer.Token
	Bindings []*Binding
	Body     Expression
}

func (le *LetExpression) TokenLiteral() string { return le.Token.Literal }
func (le *LetExpression) Line() int            { return le.Token.Line }
func (le *LetExpression) expressionNode()      {}

type CaseExpression struct {
	Typed
	Token      lexer.Token
	Expression Expression
	Cases      []*Case
}

func (ce *CaseExpression) TokenLiteral() string { return ce.Token.Literal }
func (ce *CaseExpression) Line() int            { return ce.Token.Line }
func (ce *CaseExpression) expressionNode()      {}

type Case struct {
	Token      lexer.Token
	Name       *ObjectIdentifier
	Type       *TypeIdentifier
	Expression Expression
}

func (c *Case) TokenLiteral() string { return c.Token.Literal }
func (c *Case) Line() int            { return c.Token.Line }

type NewExpression struct {
	Typed
	Token lexer.Token
	Type  *TypeIdentifier
}

func (ne *NewExpression) TokenLiteral() string { return ne.Token.Literal }
func (ne *NewExpression) Line() int            { return ne.Token.Line }
func (ne *NewExpression) expressionNode()      {}

type IsVoidExpression struct {
	Typed
	Token      lexer.Token
	Expression Expression
}

func (ie *IsVoidExpression) TokenLiteral() string { return ie.Token.Literal }
func (ie *IsVoidExpression) Line() int            { return ie.Token.Line }
func (ie *IsVoidExpression) expressionNode()      {}

type NotExpression struct {
	Typed
	Token      lexer.Token
	Expression Expression
}

func (ne *NotExpression) TokenLiteral() string { return ne.Token.Literal }
func (ne *NotExpression) Line() int            { return ne.Token.Line }
func (ne *NotExpression) expressionNode()      {}

// NegExpression is the integer complement ~e.
type NegExpression struct {
	Typed
	Token      lexer.Token
	Expression Expression
}

func (ne *NegExpression) TokenLiteral() string { return ne.Token.Literal }
func (ne *NegExpression) Line() int            { return ne.Token.Line }
func (ne *NegExpression) expressionNode()      {}

type BooleanLiteral struct {
	Typed
	Token lexer.Token
	Value bool
}

func (be *BooleanLiteral) TokenLiteral() string { return be.Token.Literal }
func (be *BooleanLiteral) Line() int            { return be.Token.Line }
func (be *BooleanLiteral) expressionNode()      {}

type IntegerLiteral struct {
	Typed
	Token lexer.Token
	Value int
}

func (ie *IntegerLiteral) TokenLiteral() string { return ie.Token.Literal }
func (ie *IntegerLiteral) Line() int            { return ie.Token.Line }
func (ie *IntegerLiteral) expressionNode()      {}

type StringLiteral struct {
	Typed
	Token lexer.Token
	Value string
}

func (se *StringLiteral) TokenLiteral() string { return se.Token.Literal }
func (se *StringLiteral) Line() int            { return se.Token.Line }
func (se *StringLiteral) expressionNode()      {}

// MethodCall covers every dispatch form. A nil Object is the implicit self
// receiver of `m(args)`; a non-nil Type is the static dispatch `e@T.m(args)`.
type MethodCall struct {
	Typed
	Token     lexer.Token
	Object    Expression
	Type      *TypeIdentifier
	Method    *ObjectIdentifier
	Arguments []Expression
}

func (mc *MethodCall) TokenLiteral() string { return mc.Token.Literal }
func (mc *MethodCall) Line() int {
	if mc.Token.Line == 0 && mc.Method != nil {
		return mc.Method.Token.Line
	}
	return mc.Token.Line
}
func (mc *MethodCall) expressionNode() {}

type Assignment struct {
	Typed
	Token      lexer.Token
	Name       *ObjectIdentifier
	Expression Expression
}

func (a *Assignment) TokenLiteral() string { return a.Token.Literal }
func (a *Assignment) Line() int            { return a.Token.Line }
func (a *Assignment) expressionNode()      {}

// Binary operators carried by InfixExpression.
const (
	OpPlus   = "+"
	OpMinus  = "-"
	OpTimes  = "*"
	OpDivide = "/"
	OpLT     = "<"
	OpLE     = "<="
	OpEQ     = "="
)

type InfixExpression struct {
	Typed
	Token    lexer.Token
	Left     Expression
	Operator string
	Right    Expression
}

func (ie *InfixExpression) TokenLiteral() string { return ie.Token.Literal }
func (ie *InfixExpression) Line() int            { return ie.Token.Line }
func (ie *InfixExpression) expressionNode()      {}
