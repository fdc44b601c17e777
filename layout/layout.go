// Package layout lowers the class hierarchy of an accepted program into LLVM
// declarations: one object struct and one dispatch table per class, plus a
// function declaration for every method a class introduces or overrides.
package layout

import (
	"fmt"
	"sort"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/pkg/errors"

	"cool-semant/semant"
	cooltypes "cool-semant/types"
)

// Slot is one field of an object struct or one entry of a dispatch table.
type Slot struct {
	Name string
	// Class declares the attribute, or implements the method.
	Class string
	Index int
	Type  types.Type
	Func  *ir.Func
}

// ClassLayout is the lowered shape of one class. Field 0 of Object is the
// vtable pointer, so attribute indices start at 1.
type ClassLayout struct {
	Name       string
	Parent     string
	Attributes []Slot
	Methods    []Slot
	Object     *types.StructType
	VTable     *types.StructType
	Global     *ir.Global
}

func (c *ClassLayout) Attribute(name string) (Slot, bool) {
	for _, s := range c.Attributes {
		if s.Name == name {
			return s, true
		}
	}
	return Slot{}, false
}

func (c *ClassLayout) Method(name string) (Slot, bool) {
	for _, s := range c.Methods {
		if s.Name == name {
			return s, true
		}
	}
	return Slot{}, false
}

type Layout struct {
	Module  *ir.Module
	classes map[string]*ClassLayout
	order   []string
}

type Option func(*Layout)

func WithTargetTriple(triple string) Option {
	return func(l *Layout) { l.Module.TargetTriple = triple }
}

// Lookup returns the layout of a class.
func (l *Layout) Lookup(class string) (*ClassLayout, bool) {
	c, ok := l.classes[class]
	return c, ok
}

// Classes lists the class layouts, parents before children.
func (l *Layout) Classes() []*ClassLayout {
	out := make([]*ClassLayout, len(l.order))
	for i, name := range l.order {
		out[i] = l.classes[name]
	}
	return out
}

func (l *Layout) String() string { return l.Module.String() }

type builder struct {
	res   *semant.Result
	names cooltypes.Names
	l     *Layout
	funcs map[string]*ir.Func
}

// Build lowers res. A rejected result is refused with its error.
func Build(res *semant.Result, opts ...Option) (*Layout, error) {
	if res == nil {
		return nil, errors.New("layout: no analysis result")
	}
	if err := res.Err(); err != nil {
		return nil, errors.Wrap(err, "layout")
	}

	l := &Layout{
		Module:  ir.NewModule(),
		classes: make(map[string]*ClassLayout),
	}
	for _, opt := range opts {
		opt(l)
	}
	b := &builder{
		res:   res,
		names: res.Classes.Names(),
		l:     l,
		funcs: make(map[string]*ir.Func),
	}

	// Struct types first, so fields can point at any class.
	for _, class := range res.Classes.TopDown() {
		name := class.Name.Value
		parent, _ := res.Classes.Parent(name)
		c := &ClassLayout{
			Name:   name,
			Parent: parent,
			Object: types.NewStruct(),
			VTable: types.NewStruct(),
		}
		l.Module.NewTypeDef(name, c.Object)
		l.Module.NewTypeDef(name+"_vtable_t", c.VTable)
		l.classes[name] = c
		l.order = append(l.order, name)
	}

	for _, name := range l.order {
		if err := b.layoutAttributes(l.classes[name]); err != nil {
			return nil, err
		}
	}
	for _, name := range l.order {
		b.declareMethods(name)
	}
	for _, name := range l.order {
		if err := b.layoutMethods(l.classes[name]); err != nil {
			return nil, err
		}
	}
	return l, nil
}

func (b *builder) pointerTo(class string) types.Type {
	return types.NewPointer(b.l.classes[class].Object)
}

// valueType maps a COOL type to the LLVM type of a value of that type.
// SELF_TYPE values travel as root object pointers.
func (b *builder) valueType(t cooltypes.Type) (types.Type, error) {
	n := b.names
	switch {
	case t.IsSelf():
		return b.pointerTo(n.Object), nil
	case t.Is(n.Int):
		return types.I32, nil
	case t.Is(n.Bool):
		return types.I1, nil
	}
	if _, ok := b.l.classes[t.Name()]; !ok {
		return nil, errors.Errorf("layout: no class %s", t)
	}
	return b.pointerTo(t.Name()), nil
}

// slotType is valueType plus the raw primitive slot, which holds the machine
// value of Int, Bool and String.
func (b *builder) slotType(holder string, t cooltypes.Type) (types.Type, error) {
	if !t.Is(b.names.PrimSlot) {
		return b.valueType(t)
	}
	switch holder {
	case b.names.Int:
		return types.I32, nil
	case b.names.Bool:
		return types.I1, nil
	}
	return types.I8Ptr, nil
}

func (b *builder) layoutAttributes(c *ClassLayout) error {
	fields := []types.Type{types.NewPointer(c.VTable)}
	for _, attr := range b.res.Methods.Attributes(c.Name) {
		t, err := b.slotType(attr.Class, attr.Type)
		if err != nil {
			return errors.Wrapf(err, "attribute %s.%s", attr.Class, attr.Name)
		}
		c.Attributes = append(c.Attributes, Slot{
			Name:  attr.Name,
			Class: attr.Class,
			Index: len(fields),
			Type:  t,
		})
		fields = append(fields, t)
	}
	c.Object.Fields = fields
	return nil
}

func funcName(class, method string) string {
	return fmt.Sprintf("%s_%s", class, method)
}

// declareMethods declares Class_method for every method the class itself
// defines. Overrides share the inherited signature, so self is always a root
// object pointer and the vtable slot type is the same down the hierarchy.
func (b *builder) declareMethods(class string) {
	for _, sig := range b.res.Methods.Declared(class) {
		ret, err := b.valueType(sig.Return)
		if err != nil {
			ret = b.pointerTo(b.names.Object)
		}
		params := []*ir.Param{ir.NewParam(b.names.Self, b.pointerTo(b.names.Object))}
		for i, t := range sig.FormalTypes {
			pt, err := b.valueType(t)
			if err != nil {
				pt = b.pointerTo(b.names.Object)
			}
			params = append(params, ir.NewParam(sig.FormalNames[i], pt))
		}
		b.funcs[funcName(class, sig.Name)] = b.l.Module.NewFunc(funcName(class, sig.Name), ret, params...)
	}
}

func (b *builder) layoutMethods(c *ClassLayout) error {
	name := b.l.Module.NewGlobalDef(c.Name+"_name", constant.NewCharArrayFromString(c.Name+"\x00"))
	name.Immutable = true

	fields := []types.Type{types.I8Ptr, types.I8Ptr}
	init := []constant.Constant{constant.NewBitCast(name, types.I8Ptr)}
	if parent, ok := b.l.classes[c.Parent]; ok {
		init = append(init, constant.NewBitCast(parent.Global, types.I8Ptr))
	} else {
		init = append(init, constant.NewNull(types.I8Ptr))
	}

	for _, sig := range b.res.Methods.MethodsOf(c.Name) {
		fn, ok := b.funcs[funcName(sig.Class, sig.Name)]
		if !ok {
			return errors.Errorf("layout: method %s.%s was not declared", sig.Class, sig.Name)
		}
		c.Methods = append(c.Methods, Slot{
			Name:  sig.Name,
			Class: sig.Class,
			Index: len(fields),
			Type:  fn.Type(),
			Func:  fn,
		})
		fields = append(fields, fn.Type())
		init = append(init, fn)
	}
	c.VTable.Fields = fields
	c.Global = b.l.Module.NewGlobalDef(c.Name+"_vtable", constant.NewStruct(c.VTable, init...))
	return nil
}

// Functions lists every declared method function by name.
func (l *Layout) Functions() []string {
	var out []string
	for _, f := range l.Module.Funcs {
		out = append(out, f.Name())
	}
	sort.Strings(out)
	return out
}
