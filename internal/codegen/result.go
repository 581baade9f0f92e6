package codegen

import (
	"sort"

	"github.com/cespare/xxhash/v2"

	"github.com/zackarychapple/rspack/internal/ast"
	"github.com/zackarychapple/rspack/internal/runtime"
)

// CodeGenerationResult is what one module's generation pass produces: the
// generated text per source type, an open auxiliary-data map for
// collaborators (asset externals record their URL here), the runtime
// capabilities the text depends on, the init fragments it wants in the
// chunk preamble, and an optional content hash. A fresh result is produced
// on every pass; nothing in it is cached on the module.
type CodeGenerationResult struct {
	sources map[ast.SourceType]string

	Data                map[string]string
	RuntimeRequirements runtime.Globals
	ChunkInitFragments  ChunkInitFragments

	hash    uint64
	hasHash bool
}

func NewCodeGenerationResult() *CodeGenerationResult {
	return &CodeGenerationResult{
		Data: make(map[string]string),
	}
}

// Add records the generated content for one source type, replacing any
// previous content for that type.
func (r *CodeGenerationResult) Add(sourceType ast.SourceType, content string) {
	if r.sources == nil {
		r.sources = make(map[ast.SourceType]string)
	}
	r.sources[sourceType] = content
}

func (r *CodeGenerationResult) Source(sourceType ast.SourceType) (string, bool) {
	content, ok := r.sources[sourceType]
	return content, ok
}

// SourceTypes returns the source types that have content, in a fixed order.
func (r *CodeGenerationResult) SourceTypes() []ast.SourceType {
	var types []ast.SourceType
	for _, sourceType := range []ast.SourceType{ast.SourceTypeJavaScript, ast.SourceTypeCSS} {
		if _, ok := r.sources[sourceType]; ok {
			types = append(types, sourceType)
		}
	}
	return types
}

// SetHash finalizes the result by hashing every field that contributes to
// the emitted output, in a fixed order. Downstream caching compares this
// hash to detect unchanged output, so it must be identical across repeated
// generation passes with unchanged compilation state.
func (r *CodeGenerationResult) SetHash() {
	hash := xxhash.New()

	for _, sourceType := range r.SourceTypes() {
		hash.WriteString(sourceType.String())
		hash.WriteString("\x00")
		hash.WriteString(r.sources[sourceType])
		hash.WriteString("\x00")
	}

	for _, key := range r.ChunkInitFragments.sortedKeys() {
		fragment, _ := r.ChunkInitFragments.Get(key)
		hash.WriteString(key)
		hash.WriteString("\x00")
		hash.WriteString(fragment.Content)
		hash.WriteString("\x00")
		hash.WriteString(fragment.EndContent)
		hash.WriteString("\x00")
	}

	for _, name := range r.RuntimeRequirements.Names() {
		hash.WriteString(name)
		hash.WriteString("\x00")
	}

	keys := make([]string, 0, len(r.Data))
	for key := range r.Data {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		hash.WriteString(key)
		hash.WriteString("\x00")
		hash.WriteString(r.Data[key])
		hash.WriteString("\x00")
	}

	r.hash = hash.Sum64()
	r.hasHash = true
}

// Hash returns the content hash and whether SetHash has been called.
func (r *CodeGenerationResult) Hash() (uint64, bool) {
	return r.hash, r.hasHash
}
