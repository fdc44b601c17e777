package ast

import (
	"fmt"
	"strings"
)

// PrintTyped renders the program as a tree with every expression followed
// by its static type. This is the hand-off form of an analyzed program.
func PrintTyped(program *Program) string {
	var sb strings.Builder
	sb.WriteString("Program\n")
	for i, class := range program.Classes {
		printClass(&sb, class, "", i == len(program.Classes)-1)
	}
	return sb.String()
}

func branch(last bool) (string, string) {
	if last {
		return "└── ", "    "
	}
	return "├── ", "│   "
}

func printClass(sb *strings.Builder, class *Class, indent string, last bool) {
	head, tail := branch(last)
	label := "Class: " + class.Name.Value
	if class.Parent != nil {
		label += " inherits " + class.Parent.Value
	}
	if class.Filename != "" {
		label += " (" + class.Filename + ")"
	}
	sb.WriteString(indent + head + label + "\n")
	childIndent := indent + tail
	for j, feature := range class.Features {
		lastFeature := j == len(class.Features)-1
		switch f := feature.(type) {
		case *Method:
			fhead, ftail := branch(lastFeature)
			params := make([]string, len(f.Parameters))
			for k, param := range f.Parameters {
				params[k] = param.Name.Value + ": " + param.Type.Value
			}
			sb.WriteString(fmt.Sprintf("%s%sMethod: %s(%s) : %s\n",
				childIndent, fhead, f.Name.Value, strings.Join(params, ", "), f.ReturnType.Value))
			if f.Body != nil {
				printExpression(sb, f.Body, childIndent+ftail, true)
			}
		case *Attribute:
			fhead, ftail := branch(lastFeature)
			sb.WriteString(fmt.Sprintf("%s%sAttribute: %s : %s\n",
				childIndent, fhead, f.Name.Value, f.Type.Value))
			if f.Init != nil {
				printExpression(sb, f.Init, childIndent+ftail, true)
			}
		}
	}
}

func printExpression(sb *strings.Builder, exp Expression, indent string, last bool) {
	head, tail := branch(last)
	child := indent + tail
	line := func(label string) {
		sb.WriteString(indent + head + label + " : " + exp.StaticType().String() + "\n")
	}

	switch node := exp.(type) {
	case *IntegerLiteral:
		line(fmt.Sprintf("Integer: %d", node.Value))
	case *StringLiteral:
		line(fmt.Sprintf("String: %q", node.Value))
	case *BooleanLiteral:
		line(fmt.Sprintf("Boolean: %t", node.Value))
	case *ObjectIdentifier:
		line("Identifier: " + node.Value)
	case *Assignment:
		line("Assignment: " + node.Name.Value)
		printExpression(sb, node.Expression, child, true)
	case *MethodCall:
		label := "Dispatch: " + node.Method.Value
		if node.Type != nil {
			label = "StaticDispatch: " + node.Type.Value + "." + node.Method.Value
		}
		line(label)
		if node.Object != nil {
			printExpression(sb, node.Object, child, len(node.Arguments) == 0)
		}
		for i, arg := range node.Arguments {
			printExpression(sb, arg, child, i == len(node.Arguments)-1)
		}
	case *BlockExpression:
		line("Block")
		for i, expr := range node.Expressions {
			printExpression(sb, expr, child, i == len(node.Expressions)-1)
		}
	case *IfExpression:
		line("If")
		printExpression(sb, node.Condition, child, false)
		printExpression(sb, node.Consequence, child, node.Alternative == nil)
		if node.Alternative != nil {
			printExpression(sb, node.Alternative, child, true)
		}
	case *WhileExpression:
		line("While")
		printExpression(sb, node.Condition, child, false)
		printExpression(sb, node.Body, child, true)
	case *LetExpression:
		line("Let")
		for _, binding := range node.Bindings {
			sb.WriteString(child + "├── Binding: " + binding.Name.Value + " : " + binding.Type.Value + "\n")
			if binding.Init != nil {
				printExpression(sb, binding.Init, child+"│   ", true)
			}
		}
		printExpression(sb, node.Body, child, true)
	case *CaseExpression:
		line("Case")
		printExpression(sb, node.Expression, child, len(node.Cases) == 0)
		for i, c := range node.Cases {
			chead, ctail := branch(i == len(node.Cases)-1)
			sb.WriteString(child + chead + "Branch: " + c.Name.Value + " : " + c.Type.Value + "\n")
			printExpression(sb, c.Expression, child+ctail, true)
		}
	case *NewExpression:
		line("New: " + node.Type.Value)
	case *IsVoidExpression:
		line("IsVoid")
		printExpression(sb, node.Expression, child, true)
	case *NotExpression:
		line("Not")
		printExpression(sb, node.Expression, child, true)
	case *NegExpression:
		line("Negation")
		printExpression(sb, node.Expression, child, true)
	case *InfixExpression:
		line("Infix: " + node.Operator)
		printExpression(sb, node.Left, child, false)
		printExpression(sb, node.Right, child, true)
	default:
		line(fmt.Sprintf("Unknown: %T", node))
	}
}
