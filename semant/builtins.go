package semant

import (
	"cool-semant/ast"
	"cool-semant/types"
)

func typeID(name string) *ast.TypeIdentifier {
	return &ast.TypeIdentifier{Value: name}
}

func objectID(name string) *ast.ObjectIdentifier {
	return &ast.ObjectIdentifier{Value: name}
}

func builtinMethod(name, returnType string, formals ...*ast.Formal) *ast.Method {
	return &ast.Method{
		Name:       objectID(name),
		Parameters: formals,
		ReturnType: typeID(returnType),
	}
}

func builtinFormal(name, typeName string) *ast.Formal {
	return &ast.Formal{Name: objectID(name), Type: typeID(typeName)}
}

func builtinAttribute(name, typeName string) *ast.Attribute {
	return &ast.Attribute{Name: objectID(name), Type: typeID(typeName)}
}

// basicClasses builds the declarations of the five predefined classes. They
// have no method bodies; the runtime supplies them.
func basicClasses(n types.Names) []*ast.Class {
	object := &ast.Class{
		Name:     typeID(n.Object),
		Filename: n.BasicFile,
		Features: []ast.Feature{
			builtinMethod(n.Abort, n.Object),
			builtinMethod(n.TypeName, n.String),
			builtinMethod(n.Copy, n.SelfType),
		},
	}

	io := &ast.Class{
		Name:     typeID(n.IO),
		Parent:   typeID(n.Object),
		Filename: n.BasicFile,
		Features: []ast.Feature{
			builtinMethod(n.OutString, n.SelfType, builtinFormal("x", n.String)),
			builtinMethod(n.OutInt, n.SelfType, builtinFormal("x", n.Int)),
			builtinMethod(n.InString, n.String),
			builtinMethod(n.InInt, n.Int),
		},
	}

	integer := &ast.Class{
		Name:     typeID(n.Int),
		Parent:   typeID(n.Object),
		Filename: n.BasicFile,
		Features: []ast.Feature{
			builtinAttribute(n.Val, n.PrimSlot),
		},
	}

	boolean := &ast.Class{
		Name:     typeID(n.Bool),
		Parent:   typeID(n.Object),
		Filename: n.BasicFile,
		Features: []ast.Feature{
			builtinAttribute(n.Val, n.PrimSlot),
		},
	}

	// String keeps its length in _val and the characters in _str_field.
	str := &ast.Class{
		Name:     typeID(n.String),
		Parent:   typeID(n.Object),
		Filename: n.BasicFile,
		Features: []ast.Feature{
			builtinAttribute(n.Val, n.Int),
			builtinAttribute(n.StrField, n.PrimSlot),
			builtinMethod(n.Length, n.Int),
			builtinMethod(n.Concat, n.String, builtinFormal("s", n.String)),
			builtinMethod(n.Substr, n.String, builtinFormal("i", n.Int), builtinFormal("l", n.Int)),
		},
	}

	return []*ast.Class{object, io, integer, boolean, str}
}
