package interp

import "slang/internal/source"

// ScopeID indexes a scope record in the environment arena.
type ScopeID int32

// GlobalScope holds the top-level functions; every activation's root scope
// has it as parent, which is why functions never see their caller's locals.
const GlobalScope ScopeID = 0

const noScope ScopeID = -1

type scopeRecord struct {
	parent ScopeID
	vars   map[source.StringID]*Value
}

// Env is an arena of scopes linked by parent index. Scopes are pushed and
// popped in stack order.
type Env struct {
	scopes []scopeRecord
}

// NewEnv creates an environment containing only the global scope.
func NewEnv() *Env {
	env := &Env{scopes: make([]scopeRecord, 0, 64)}
	env.scopes = append(env.scopes, scopeRecord{parent: noScope, vars: make(map[source.StringID]*Value)})
	return env
}

// Push opens a child scope of parent.
func (e *Env) Push(parent ScopeID) ScopeID {
	e.scopes = append(e.scopes, scopeRecord{parent: parent, vars: make(map[source.StringID]*Value, 4)})
	return ScopeID(len(e.scopes) - 1)
}

// Pop discards scope id and everything opened after it.
func (e *Env) Pop(id ScopeID) {
	if id <= GlobalScope || int(id) >= len(e.scopes) {
		return
	}
	for i := int(id); i < len(e.scopes); i++ {
		e.scopes[i] = scopeRecord{}
	}
	e.scopes = e.scopes[:id]
}

// Define binds name in scope id, replacing a binding of the same scope.
func (e *Env) Define(id ScopeID, name source.StringID, v Value) {
	slot := v
	e.scopes[id].vars[name] = &slot
}

// Lookup walks the parent chain and returns the storage of name.
func (e *Env) Lookup(id ScopeID, name source.StringID) (*Value, bool) {
	for cur := id; cur != noScope; cur = e.scopes[cur].parent {
		if v, ok := e.scopes[cur].vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Assign rewrites the nearest scope that already owns name. It reports false
// when no enclosing scope defines it.
func (e *Env) Assign(id ScopeID, name source.StringID, v Value) bool {
	slot, ok := e.Lookup(id, name)
	if !ok {
		return false
	}
	*slot = v
	return true
}

// Depth is the number of live scopes, the global scope included.
func (e *Env) Depth() int {
	return len(e.scopes)
}
