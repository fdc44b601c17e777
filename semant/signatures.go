package semant

import (
	"fmt"

	"cool-semant/ast"
	"cool-semant/types"
)

// Signature is the declared interface of a method in the class that
// introduces or overrides it.
type Signature struct {
	Class       string
	Name        string
	FormalNames []string
	FormalTypes []types.Type
	Return      types.Type
	Decl        *ast.Method
}

func (s *Signature) Arity() int { return len(s.FormalTypes) }

func (s *Signature) String() string {
	params := ""
	for i, t := range s.FormalTypes {
		if i > 0 {
			params += ", "
		}
		params += t.String()
	}
	return fmt.Sprintf("%s.%s(%s) : %s", s.Class, s.Name, params, s.Return)
}

// AttributeInfo records an accepted attribute declaration.
type AttributeInfo struct {
	Class string
	Name  string
	Type  types.Type
	Decl  *ast.Attribute
}

// MethodTable holds the method signatures and attributes of every valid
// class. Built once, top-down, so a parent is complete before its children.
type MethodTable struct {
	cfg     *Config
	classes *ClassTable

	methods     map[string]map[string]*Signature
	methodOrder map[string][]string
	attrs       map[string]map[string]*AttributeInfo
	attrOrder   map[string][]string
}

func NewMethodTable(classes *ClassTable, cfg *Config, diags *Diagnostics) *MethodTable {
	mt := &MethodTable{
		cfg:         cfg,
		classes:     classes,
		methods:     make(map[string]map[string]*Signature),
		methodOrder: make(map[string][]string),
		attrs:       make(map[string]map[string]*AttributeInfo),
		attrOrder:   make(map[string][]string),
	}
	for _, class := range classes.TopDown() {
		mt.declareClass(class, diags)
	}
	return mt
}

func (mt *MethodTable) declareClass(class *ast.Class, diags *Diagnostics) {
	className := class.Name.Value
	mt.methods[className] = make(map[string]*Signature)
	mt.attrs[className] = make(map[string]*AttributeInfo)
	builtin := mt.classes.IsBuiltin(className)
	seen := make(map[string]bool)

	for _, feature := range class.Features {
		switch f := feature.(type) {
		case *ast.Method:
			if seen[f.Name.Value] {
				diags.Reportf(DuplicateMethod, class.Filename, f.Line(),
					"Method %s is multiply defined in class %s.", f.Name.Value, className)
				continue
			}
			seen[f.Name.Value] = true
			mt.cfg.tracef("Adding method %s to class %s\n", f.Name.Value, className)
			mt.declareMethod(class, f, builtin, diags)
		case *ast.Attribute:
			mt.cfg.tracef("Adding attribute %s to class %s\n", f.Name.Value, className)
			mt.declareAttribute(class, f, builtin, diags)
		}
	}
}

// declaredType resolves a type written in a declaration. Undefined names fall
// back to the root class; ok reports whether the name was usable.
func (mt *MethodTable) declaredType(name string, allowSelf bool) (types.Type, bool) {
	names := mt.cfg.Names
	if name == names.SelfType {
		if allowSelf {
			return types.Self, true
		}
		return names.ObjectType(), false
	}
	if !mt.classes.IsDefined(name) {
		return names.ObjectType(), false
	}
	return types.Class(name), true
}

func (mt *MethodTable) declareMethod(class *ast.Class, m *ast.Method, builtin bool, diags *Diagnostics) {
	names := mt.cfg.Names
	className := class.Name.Value
	sig := &Signature{
		Class: className,
		Name:  m.Name.Value,
		Decl:  m,
	}

	formalSeen := make(map[string]bool)
	for _, formal := range m.Parameters {
		formalName := formal.Name.Value
		typeName := formal.Type.Value
		switch {
		case formalName == names.Self:
			diags.Reportf(IllegalSelfBinding, class.Filename, formal.Line(),
				"'self' cannot be the name of a formal parameter.")
		case formalSeen[formalName]:
			diags.Reportf(DuplicateFormal, class.Filename, formal.Line(),
				"Formal parameter %s is multiply defined.", formalName)
		}
		formalSeen[formalName] = true

		ty, ok := mt.declaredType(typeName, false)
		if !ok && !builtin {
			if typeName == names.SelfType {
				diags.Reportf(IllegalSelfType, class.Filename, formal.Line(),
					"Formal parameter %s cannot have type SELF_TYPE.", formalName)
			} else {
				diags.Reportf(UndefinedType, class.Filename, formal.Line(),
					"Class %s of formal parameter %s is undefined.", typeName, formalName)
			}
		}
		sig.FormalNames = append(sig.FormalNames, formalName)
		sig.FormalTypes = append(sig.FormalTypes, ty)
	}

	ret, ok := mt.declaredType(m.ReturnType.Value, true)
	if !ok && !builtin {
		diags.Reportf(UndefinedType, class.Filename, m.Line(),
			"Undefined return type %s in method %s.", m.ReturnType.Value, m.Name.Value)
	}
	sig.Return = ret

	if parent, ok := mt.classes.Parent(className); ok {
		if inherited, found := mt.SignatureOf(parent, m.Name.Value); found {
			if err := sameSignature(inherited.Decl, m); err != nil {
				diags.Reportf(IncompatibleOverride, class.Filename, m.Line(),
					"In redefined method %s, %v.", m.Name.Value, err)
				return
			}
		}
	}

	mt.methods[className][sig.Name] = sig
	mt.methodOrder[className] = append(mt.methodOrder[className], sig.Name)
}

// sameSignature requires an override to repeat the inherited declaration
// exactly: same number of formals, same formal types, same return type.
func sameSignature(inherited, override *ast.Method) error {
	if len(inherited.Parameters) != len(override.Parameters) {
		return fmt.Errorf("number of formal parameters %d differs from original number %d",
			len(override.Parameters), len(inherited.Parameters))
	}
	for i, formal := range override.Parameters {
		want := inherited.Parameters[i].Type.Value
		if formal.Type.Value != want {
			return fmt.Errorf("parameter type %s is different from original type %s",
				formal.Type.Value, want)
		}
	}
	if override.ReturnType.Value != inherited.ReturnType.Value {
		return fmt.Errorf("return type %s is different from original return type %s",
			override.ReturnType.Value, inherited.ReturnType.Value)
	}
	return nil
}

func (mt *MethodTable) declareAttribute(class *ast.Class, a *ast.Attribute, builtin bool, diags *Diagnostics) {
	names := mt.cfg.Names
	className := class.Name.Value
	attrName := a.Name.Value

	if attrName == names.Self {
		diags.Reportf(IllegalSelfBinding, class.Filename, a.Line(),
			"'self' cannot be the name of an attribute.")
		return
	}
	if prev, found := mt.AttributeOf(className, attrName); found {
		if prev.Class == className {
			diags.Reportf(DuplicateAttribute, class.Filename, a.Line(),
				"Attribute %s is multiply defined in class %s.", attrName, className)
		} else {
			diags.Reportf(DuplicateAttribute, class.Filename, a.Line(),
				"Attribute %s of class %s is already an attribute of inherited class %s.",
				attrName, className, prev.Class)
		}
		return
	}

	ty := types.Class(a.Type.Value)
	if !builtin {
		var ok bool
		ty, ok = mt.declaredType(a.Type.Value, true)
		if !ok {
			diags.Reportf(UndefinedType, class.Filename, a.Line(),
				"Class %s of attribute %s is undefined.", a.Type.Value, attrName)
		}
	}

	mt.attrs[className][attrName] = &AttributeInfo{
		Class: className,
		Name:  attrName,
		Type:  ty,
		Decl:  a,
	}
	mt.attrOrder[className] = append(mt.attrOrder[className], attrName)
}

// SignatureOf finds a method on className or its nearest ancestor.
func (mt *MethodTable) SignatureOf(className, methodName string) (*Signature, bool) {
	for _, c := range mt.classes.AncestorChain(className) {
		if sig, ok := mt.methods[c][methodName]; ok {
			return sig, true
		}
	}
	return nil, false
}

// AttributeOf finds an attribute on className or its nearest ancestor.
func (mt *MethodTable) AttributeOf(className, attrName string) (*AttributeInfo, bool) {
	for _, c := range mt.classes.AncestorChain(className) {
		if attr, ok := mt.attrs[c][attrName]; ok {
			return attr, true
		}
	}
	return nil, false
}

// Declared lists the signatures className itself introduces or overrides.
func (mt *MethodTable) Declared(className string) []*Signature {
	var out []*Signature
	for _, name := range mt.methodOrder[className] {
		out = append(out, mt.methods[className][name])
	}
	return out
}

// MethodsOf lists every method visible on className in dispatch-table order:
// inherited slots first, an override replacing the slot it redefines.
func (mt *MethodTable) MethodsOf(className string) []*Signature {
	chain := mt.classes.AncestorChain(className)
	var out []*Signature
	slot := make(map[string]int)
	for i := len(chain) - 1; i >= 0; i-- {
		for _, sig := range mt.Declared(chain[i]) {
			if k, ok := slot[sig.Name]; ok {
				out[k] = sig
				continue
			}
			slot[sig.Name] = len(out)
			out = append(out, sig)
		}
	}
	return out
}

// Attributes lists every attribute of className, inherited ones first.
func (mt *MethodTable) Attributes(className string) []*AttributeInfo {
	chain := mt.classes.AncestorChain(className)
	var out []*AttributeInfo
	for i := len(chain) - 1; i >= 0; i-- {
		for _, name := range mt.attrOrder[chain[i]] {
			out = append(out, mt.attrs[chain[i]][name])
		}
	}
	return out
}
