package codegen

import (
	"sort"
	"strings"
)

// Stage is the ordering tier of an init fragment within a chunk's preamble.
// Lower stages render first. Import hoisting must come before everything
// that could reference an imported binding, so it gets its own early tier.
type Stage uint8

const (
	StageConstants Stage = iota
	StageAsyncBoundary
	StageHarmonyImports
	StageProvides
	StageAsyncDependencies
	StageAsyncHarmonyImports
)

// InitFragment is a once-per-chunk statement emitted ahead of the module
// sources. EndContent, when present, renders after the module sources in
// reverse insertion order so that nested wrappers close correctly.
type InitFragment struct {
	Content    string
	Stage      Stage
	EndContent string
}

// ChunkInitFragments collects init fragments keyed by a generator-chosen
// identity string. Inserting under an existing key is a no-op, which is how
// many externals sharing one strategy collapse to a single preamble line.
// First-insertion order is preserved within each stage. The zero value is
// ready to use; a fresh value is built per generation pass.
type ChunkInitFragments struct {
	keys      []string
	fragments map[string]InitFragment
}

// Entry inserts fragment under key if the key is not already present and
// reports whether the insert happened.
func (c *ChunkInitFragments) Entry(key string, fragment InitFragment) bool {
	if _, ok := c.fragments[key]; ok {
		return false
	}
	if c.fragments == nil {
		c.fragments = make(map[string]InitFragment)
	}
	c.fragments[key] = fragment
	c.keys = append(c.keys, key)
	return true
}

func (c *ChunkInitFragments) Get(key string) (InitFragment, bool) {
	fragment, ok := c.fragments[key]
	return fragment, ok
}

func (c *ChunkInitFragments) Len() int {
	return len(c.keys)
}

// Keys returns the fragment identities in first-insertion order.
func (c *ChunkInitFragments) Keys() []string {
	return append([]string(nil), c.keys...)
}

// AddAll merges other into c with the same insert-if-absent semantics as
// Entry, preserving other's insertion order for keys c has not seen.
func (c *ChunkInitFragments) AddAll(other ChunkInitFragments) {
	for _, key := range other.keys {
		c.Entry(key, other.fragments[key])
	}
}

// sortedKeys returns the fragment identities ordered by stage, keeping
// first-insertion order within a stage.
func (c *ChunkInitFragments) sortedKeys() []string {
	keys := c.Keys()
	sort.SliceStable(keys, func(i int, j int) bool {
		return c.fragments[keys[i]].Stage < c.fragments[keys[j]].Stage
	})
	return keys
}

// Render concatenates the fragment contents in stage order. This is the text
// a chunk renderer places ahead of the module sources.
func (c *ChunkInitFragments) Render() string {
	sb := strings.Builder{}
	for _, key := range c.sortedKeys() {
		sb.WriteString(c.fragments[key].Content)
	}
	return sb.String()
}

// RenderEnd concatenates the trailing contents in reverse stage order.
func (c *ChunkInitFragments) RenderEnd() string {
	keys := c.sortedKeys()
	sb := strings.Builder{}
	for i := len(keys) - 1; i >= 0; i-- {
		sb.WriteString(c.fragments[keys[i]].EndContent)
	}
	return sb.String()
}
