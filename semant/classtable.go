package semant

import (
	"cool-semant/ast"
	"cool-semant/types"
)

const noClass = -1

type classEntry struct {
	decl    *ast.Class
	parent  int
	builtin bool
	// valid is set when the parent chain reaches the root without a cycle or
	// a bad link. Features of invalid classes are not checked.
	valid bool
	chain []int
}

func (e *classEntry) name() string { return e.decl.Name.Value }

// ClassTable is the validated inheritance tree. Entries live in a slice and
// refer to their parent by index.
type ClassTable struct {
	cfg      *Config
	entries  []*classEntry
	index    map[string]int
	children [][]int
	root     int
}

// NewClassTable installs the basic classes, registers the program's classes
// and validates every parent link. Problems are reported to diags; the table
// stays queryable for whatever was validated.
func NewClassTable(program *ast.Program, cfg *Config, diags *Diagnostics) *ClassTable {
	ct := &ClassTable{
		cfg:   cfg,
		index: make(map[string]int),
		root:  noClass,
	}
	names := cfg.Names

	for _, class := range basicClasses(names) {
		ct.insert(class, true)
	}
	ct.root = ct.index[names.Object]

	for _, class := range program.Classes {
		className := class.Name.Value
		if className == names.SelfType || names.IsBasic(className) {
			diags.Reportf(DuplicateClass, class.Filename, class.Line(),
				"Redefinition of basic class %s.", className)
			continue
		}
		if _, exists := ct.index[className]; exists {
			diags.Reportf(DuplicateClass, class.Filename, class.Line(),
				"Class %s was previously defined.", className)
			continue
		}
		cfg.tracef("Registering class: %s\n", className)
		ct.insert(class, false)
	}

	if _, ok := ct.index[names.EntryClass]; !ok {
		diags.Reportf(MissingEntryClass, "", 0, "Class %s is not defined.", names.EntryClass)
	}

	ct.linkParents(diags)
	ct.detectCycles(diags)
	ct.buildChains()
	return ct
}

func (ct *ClassTable) insert(class *ast.Class, builtin bool) {
	ct.index[class.Name.Value] = len(ct.entries)
	ct.entries = append(ct.entries, &classEntry{
		decl:    class,
		parent:  noClass,
		builtin: builtin,
	})
}

func (ct *ClassTable) linkParents(diags *Diagnostics) {
	names := ct.cfg.Names
	for i, entry := range ct.entries {
		if i == ct.root {
			continue
		}
		parentName := names.Object
		if entry.decl.Parent != nil {
			parentName = entry.decl.Parent.Value
		}
		if parentName == names.SelfType || names.IsPrimitive(parentName) {
			diags.Reportf(IllegalInheritance, entry.decl.Filename, entry.decl.Line(),
				"Class %s cannot inherit class %s.", entry.name(), parentName)
			continue
		}
		parent, ok := ct.index[parentName]
		if !ok {
			diags.Reportf(UndefinedParent, entry.decl.Filename, entry.decl.Line(),
				"Class %s inherits from an undefined class %s.", entry.name(), parentName)
			continue
		}
		entry.parent = parent
	}
}

// detectCycles walks each parent chain once. A walk that comes back to a
// class on its own path has found a cycle, reported once on the member
// declared first. Every class on the walked path shares the validity of
// the point where the walk stopped.
func (ct *ClassTable) detectCycles(diags *Diagnostics) {
	const (
		unvisited = iota
		onPath
		done
	)
	state := make([]int, len(ct.entries))

	for start := range ct.entries {
		if state[start] != unvisited {
			continue
		}
		var path []int
		cur := start
		for cur != noClass && state[cur] == unvisited {
			state[cur] = onPath
			path = append(path, cur)
			cur = ct.entries[cur].parent
		}

		valid := false
		switch {
		case cur == noClass:
			valid = path[len(path)-1] == ct.root
		case state[cur] == done:
			valid = ct.entries[cur].valid
		default:
			ct.reportCycle(path, cur, diags)
		}

		for _, i := range path {
			state[i] = done
			ct.entries[i].valid = valid
		}
	}
}

func (ct *ClassTable) reportCycle(path []int, back int, diags *Diagnostics) {
	first := back
	inCycle := false
	for _, i := range path {
		if i == back {
			inCycle = true
		}
		if inCycle && i < first {
			first = i
		}
	}
	decl := ct.entries[first].decl
	diags.Reportf(InheritanceCycle, decl.Filename, decl.Line(),
		"Class %s, or an ancestor of %s, is involved in an inheritance cycle.",
		decl.Name.Value, decl.Name.Value)
}

func (ct *ClassTable) buildChains() {
	ct.children = make([][]int, len(ct.entries))
	for i, entry := range ct.entries {
		if !entry.valid {
			continue
		}
		if entry.parent != noClass {
			ct.children[entry.parent] = append(ct.children[entry.parent], i)
		}
	}
	for i, entry := range ct.entries {
		if entry.valid {
			entry.chain = ct.walk(i)
		}
	}
}

// walk follows parent links from i, stopping at the root, a missing link or
// a class already seen.
func (ct *ClassTable) walk(i int) []int {
	seen := make(map[int]bool)
	var chain []int
	for cur := i; cur != noClass && !seen[cur]; cur = ct.entries[cur].parent {
		if ct.entries[cur].chain != nil {
			return append(chain, ct.entries[cur].chain...)
		}
		seen[cur] = true
		chain = append(chain, cur)
	}
	return chain
}

func (ct *ClassTable) chainOf(i int) []int {
	if chain := ct.entries[i].chain; chain != nil {
		return chain
	}
	return ct.walk(i)
}

func (ct *ClassTable) Names() types.Names { return ct.cfg.Names }

func (ct *ClassTable) Len() int { return len(ct.entries) }

// Resolve returns the declaration of a class.
func (ct *ClassTable) Resolve(name string) (*ast.Class, bool) {
	i, ok := ct.index[name]
	if !ok {
		return nil, false
	}
	return ct.entries[i].decl, true
}

// IsDefined reports whether name is a class in the table.
func (ct *ClassTable) IsDefined(name string) bool {
	_, ok := ct.index[name]
	return ok
}

// IsValid reports whether name has a well-formed chain to the root.
func (ct *ClassTable) IsValid(name string) bool {
	i, ok := ct.index[name]
	return ok && ct.entries[i].valid
}

func (ct *ClassTable) IsBuiltin(name string) bool {
	i, ok := ct.index[name]
	return ok && ct.entries[i].builtin
}

// Parent returns the resolved parent of a class. The root and classes with a
// bad parent link have none.
func (ct *ClassTable) Parent(name string) (string, bool) {
	i, ok := ct.index[name]
	if !ok || ct.entries[i].parent == noClass {
		return "", false
	}
	return ct.entries[ct.entries[i].parent].name(), true
}

// AncestorChain lists name and its ancestors, nearest first.
func (ct *ClassTable) AncestorChain(name string) []string {
	i, ok := ct.index[name]
	if !ok {
		return nil
	}
	chain := ct.chainOf(i)
	out := make([]string, len(chain))
	for k, c := range chain {
		out[k] = ct.entries[c].name()
	}
	return out
}

// TopDown returns the valid classes with every parent before its children,
// siblings in declaration order.
func (ct *ClassTable) TopDown() []*ast.Class {
	var out []*ast.Class
	queue := []int{ct.root}
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		out = append(out, ct.entries[i].decl)
		queue = append(queue, ct.children[i]...)
	}
	return out
}

// Conforms reports whether sub conforms to super, with SELF_TYPE standing for
// current. Only SELF_TYPE conforms to SELF_TYPE.
func (ct *ClassTable) Conforms(sub, super types.Type, current string) bool {
	if sub.Equal(super) {
		return true
	}
	if !sub.IsValid() || !super.IsValid() || super.IsSelf() {
		return false
	}
	i, ok := ct.index[sub.Resolve(current).Name()]
	if !ok {
		return false
	}
	for _, a := range ct.chainOf(i) {
		if ct.entries[a].name() == super.Name() {
			return true
		}
	}
	return false
}

// Join returns the least upper bound of a and b: the nearest class that both
// conform to. The join of two SELF_TYPEs stays SELF_TYPE.
func (ct *ClassTable) Join(a, b types.Type, current string) types.Type {
	if a.IsSelf() && b.IsSelf() {
		return types.Self
	}
	a, b = a.Resolve(current), b.Resolve(current)
	if a.Equal(b) {
		return a
	}
	object := ct.cfg.Names.ObjectType()
	ia, okA := ct.index[a.Name()]
	ib, okB := ct.index[b.Name()]
	if !okA || !okB {
		return object
	}

	ancestors := make(map[int]bool)
	for _, c := range ct.chainOf(ia) {
		ancestors[c] = true
	}
	for _, c := range ct.chainOf(ib) {
		if ancestors[c] {
			return types.Class(ct.entries[c].name())
		}
	}
	return object
}
