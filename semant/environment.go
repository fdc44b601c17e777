package semant

import "cool-semant/types"

// Environment is the stack of identifier scopes active while checking one
// expression tree: the method frame, then one frame per let binding or case
// branch. Attributes are not stored here.
type Environment struct {
	frames []map[string]types.Type
}

func NewEnvironment() *Environment {
	return &Environment{}
}

func (e *Environment) EnterScope() {
	e.frames = append(e.frames, make(map[string]types.Type))
}

func (e *Environment) ExitScope() {
	if len(e.frames) > 0 {
		e.frames = e.frames[:len(e.frames)-1]
	}
}

// Scoped runs fn inside a fresh scope, popped on every exit path.
func (e *Environment) Scoped(fn func()) {
	e.EnterScope()
	defer e.ExitScope()
	fn()
}

// Bind adds name to the innermost scope, shadowing outer bindings.
func (e *Environment) Bind(name string, t types.Type) {
	if len(e.frames) == 0 {
		e.EnterScope()
	}
	e.frames[len(e.frames)-1][name] = t
}

// Lookup returns the nearest binding of name.
func (e *Environment) Lookup(name string) (types.Type, bool) {
	for i := len(e.frames) - 1; i >= 0; i-- {
		if t, ok := e.frames[i][name]; ok {
			return t, true
		}
	}
	return types.None, false
}

func (e *Environment) Depth() int { return len(e.frames) }
