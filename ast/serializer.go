package ast

import (
	"fmt"
	"strings"
)

// Serialize renders an expression back to single-line source form.
func Serialize(exp Expression) string {
	switch node := exp.(type) {
	case nil:
		return ""
	case *IntegerLiteral:
		return fmt.Sprintf("%d", node.Value)
	case *StringLiteral:
		return fmt.Sprintf("%q", node.Value)
	case *BooleanLiteral:
		return fmt.Sprintf("%t", node.Value)
	case *ObjectIdentifier:
		return node.Value
	case *Assignment:
		return fmt.Sprintf("%s <- %s", node.Name.Value, Serialize(node.Expression))
	case *MethodCall:
		args := make([]string, len(node.Arguments))
		for i, arg := range node.Arguments {
			args[i] = Serialize(arg)
		}
		if node.Object == nil {
			return fmt.Sprintf("%s(%s)", node.Method.Value, strings.Join(args, ", "))
		}
		if node.Type != nil {
			return fmt.Sprintf("%s@%s.%s(%s)",
				Serialize(node.Object),
				node.Type.Value,
				node.Method.Value,
				strings.Join(args, ", "))
		}
		return fmt.Sprintf("%s.%s(%s)",
			Serialize(node.Object),
			node.Method.Value,
			strings.Join(args, ", "))
	case *InfixExpression:
		return fmt.Sprintf("(%s %s %s)",
			Serialize(node.Left),
			node.Operator,
			Serialize(node.Right))
	case *CaseExpression:
		var sb strings.Builder
		sb.WriteString("case ")
		sb.WriteString(Serialize(node.Expression))
		sb.WriteString(" of ")
		for _, c := range node.Cases {
			sb.WriteString(fmt.Sprintf("%s : %s => %s; ",
				c.Name.Value,
				c.Type.Value,
				Serialize(c.Expression)))
		}
		sb.WriteString("esac")
		return sb.String()
	case *NotExpression:
		return fmt.Sprintf("not %s", Serialize(node.Expression))
	case *NegExpression:
		return fmt.Sprintf("~%s", Serialize(node.Expression))
	case *IfExpression:
		if node.Alternative == nil {
			return fmt.Sprintf("if %s then %s fi",
				Serialize(node.Condition),
				Serialize(node.Consequence))
		}
		return fmt.Sprintf("if %s then %s else %s fi",
			Serialize(node.Condition),
			Serialize(node.Consequence),
			Serialize(node.Alternative))
	case *WhileExpression:
		return fmt.Sprintf("while %s loop %s pool",
			Serialize(node.Condition),
			Serialize(node.Body))
	case *BlockExpression:
		var sb strings.Builder
		sb.WriteString("{ ")
		for _, expr := range node.Expressions {
			sb.WriteString(Serialize(expr))
			sb.WriteString("; ")
		}
		sb.WriteString("}")
		return sb.String()
	case *LetExpression:
		var sb strings.Builder
		sb.WriteString("let ")
		for i, binding := range node.Bindings {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(binding.Name.Value)
			sb.WriteString(" : ")
			sb.WriteString(binding.Type.Value)
			if binding.Init != nil {
				sb.WriteString(" <- ")
				sb.WriteString(Serialize(binding.Init))
			}
		}
		sb.WriteString(" in ")
		sb.WriteString(Serialize(node.Body))
		return sb.String()
	case *NewExpression:
		return fmt.Sprintf("new %s", node.Type.Value)
	case *IsVoidExpression:
		return fmt.Sprintf("isvoid %s", Serialize(node.Expression))
	default:
		return fmt.Sprintf("<%T>", node)
	}
}
