package graph

import (
	"github.com/zackarychapple/rspack/internal/config"
)

// ModuleGraph resolves a module's assigned id. Id assignment happens in an
// earlier compilation phase; code generation only reads it.
type ModuleGraph interface {
	// ModuleID returns the id assigned to the module with the given
	// identifier, if one has been assigned.
	ModuleID(identifier string) (string, bool)
}

// ModuleIDMap is a plain map-backed ModuleGraph.
type ModuleIDMap map[string]string

func (m ModuleIDMap) ModuleID(identifier string) (string, bool) {
	id, ok := m[identifier]
	return id, ok
}

// Compilation is the read-only view of compilation-wide state that code
// generation consumes. Modules never mutate it, which is what makes
// generation safely reentrant.
type Compilation struct {
	Options     *config.Options
	ModuleGraph ModuleGraph
}

// AssignedModuleID looks up the id assigned to a module. A missing id (id
// assignment has not run, or the module is not in the graph) degrades to ""
// rather than failing; callers are expected to have ordered id assignment
// before generation.
func (c *Compilation) AssignedModuleID(identifier string) string {
	if c.ModuleGraph == nil {
		return ""
	}
	id, ok := c.ModuleGraph.ModuleID(identifier)
	if !ok {
		return ""
	}
	return id
}
