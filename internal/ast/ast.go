package ast

// This file contains data structures that are shared between the module
// graph and the code generation packages. Keeping them here lets those
// packages talk about modules in a format-agnostic manner without importing
// each other.

// SourceType is the kind of output a module generates into. A module declares
// which source types it emits and code generation produces one entry per
// declared type.
type SourceType uint8

const (
	SourceTypeJavaScript SourceType = iota
	SourceTypeCSS
)

func (t SourceType) String() string {
	switch t {
	case SourceTypeJavaScript:
		return "javascript"
	case SourceTypeCSS:
		return "css"
	default:
		panic("Internal error")
	}
}

// ModuleType is the logical category of a module. This is distinct from the
// source types it emits into: an external module is categorized as JavaScript
// even when it only generates a CSS "@import" rule.
type ModuleType uint8

const (
	ModuleTypeJS ModuleType = iota
	ModuleTypeCSS
	ModuleTypeAsset
)

func (t ModuleType) String() string {
	switch t {
	case ModuleTypeJS:
		return "js"
	case ModuleTypeCSS:
		return "css"
	case ModuleTypeAsset:
		return "asset"
	default:
		panic("Internal error")
	}
}
