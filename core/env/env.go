// Package env implements the two-tier variable store: session bindings laid
// over an immutable snapshot of the host environment.
package env

import (
	"sort"
	"strings"
	"sync"
)

// Env resolves variable names session-first, then host. All methods are safe
// for concurrent use.
type Env struct {
	mu      sync.RWMutex
	host    map[string]string
	session map[string]string
}

// New builds an Env over the given host environment in "KEY=value" form.
// Malformed entries without an equals sign are skipped.
func New(host []string) *Env {
	e := &Env{
		host:    make(map[string]string, len(host)),
		session: make(map[string]string),
	}
	for _, kv := range host {
		k, v, ok := cut(kv)
		if !ok {
			continue
		}
		e.host[k] = v
	}
	return e
}

func cut(kv string) (string, string, bool) {
	idx := strings.IndexByte(kv, '=')
	if idx < 0 {
		return "", "", false
	}
	return kv[:idx], kv[idx+1:], true
}

// Lookup resolves name, preferring session bindings over host ones.
func (e *Env) Lookup(name string) (string, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if v, ok := e.session[name]; ok {
		return v, true
	}
	v, ok := e.host[name]
	return v, ok
}

// Get resolves name, returning the empty string when it is unset.
func (e *Env) Get(name string) string {
	v, _ := e.Lookup(name)
	return v
}

// Set binds name in the session tier, shadowing any host value.
func (e *Env) Set(name, value string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.session[name] = value
}

// Unset removes a session binding. A host value with the same name becomes
// visible again; host values themselves are never removed.
func (e *Env) Unset(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.session, name)
}

// Environ returns the effective environment as sorted "KEY=value" pairs,
// session bindings shadowing host ones.
func (e *Env) Environ() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	merged := make(map[string]string, len(e.host)+len(e.session))
	for k, v := range e.host {
		merged[k] = v
	}
	for k, v := range e.session {
		merged[k] = v
	}
	out := make([]string, 0, len(merged))
	for k, v := range merged {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}

// Snapshot returns an independent copy with the same effective bindings.
// Later mutations on either side are invisible to the other.
func (e *Env) Snapshot() *Env {
	e.mu.RLock()
	defer e.mu.RUnlock()

	clone := &Env{
		host:    make(map[string]string, len(e.host)),
		session: make(map[string]string, len(e.session)),
	}
	for k, v := range e.host {
		clone.host[k] = v
	}
	for k, v := range e.session {
		clone.session[k] = v
	}
	return clone
}

// Bind sets name to value and returns a restore function that puts the
// previous state back, whether that was a different value or no binding at
// all. Loop variables and positional parameters use this to scope bindings
// to a body.
func (e *Env) Bind(name, value string) func() {
	e.mu.Lock()
	prev, had := e.session[name]
	e.session[name] = value
	e.mu.Unlock()

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if had {
			e.session[name] = prev
		} else {
			delete(e.session, name)
		}
	}
}
