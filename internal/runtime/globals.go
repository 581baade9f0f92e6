package runtime

// Generated code can depend on named capabilities that the runtime bootstrap
// must provide (for example the define-property-getters helper). Modules
// accumulate these during code generation and the bootstrap for a chunk is
// assembled elsewhere from the union across all of its modules.

import "math/bits"

// Globals is a set of runtime capability flags. The zero value is the empty
// set. Sets combine by union, so accumulation is order-independent and
// requesting the same capability twice is a no-op.
type Globals uint64

const (
	GlobalRequire Globals = 1 << iota
	GlobalModule
	GlobalExports
	GlobalDefinePropertyGetters
	GlobalHasOwnProperty
	GlobalGlobal
	GlobalPublicPath
)

// Name returns the identifier the capability is reachable under in emitted
// code. It is only valid for single-flag values.
func (g Globals) Name() string {
	switch g {
	case GlobalRequire:
		return "__webpack_require__"
	case GlobalModule:
		return "module"
	case GlobalExports:
		return "__webpack_exports__"
	case GlobalDefinePropertyGetters:
		return "__webpack_require__.d"
	case GlobalHasOwnProperty:
		return "__webpack_require__.o"
	case GlobalGlobal:
		return "__webpack_require__.g"
	case GlobalPublicPath:
		return "__webpack_require__.p"
	default:
		panic("Internal error")
	}
}

func (g *Globals) Add(other Globals) {
	*g |= other
}

func (g Globals) Has(other Globals) bool {
	return g&other == other
}

func (g Globals) IsEmpty() bool {
	return g == 0
}

// Names returns the names of all flags in the set, ordered by flag value so
// the result is deterministic regardless of accumulation order.
func (g Globals) Names() []string {
	names := make([]string, 0, bits.OnesCount64(uint64(g)))
	for g != 0 {
		flag := Globals(1) << bits.TrailingZeros64(uint64(g))
		names = append(names, flag.Name())
		g &^= flag
	}
	return names
}
