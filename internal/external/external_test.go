package external

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zackarychapple/rspack/internal/ast"
	"github.com/zackarychapple/rspack/internal/codegen"
	"github.com/zackarychapple/rspack/internal/config"
	"github.com/zackarychapple/rspack/internal/graph"
)

func compilationForTest(output config.OutputOptions, ids graph.ModuleIDMap) *graph.Compilation {
	options := config.Options{Output: output}
	options.ApplyDefaults()
	return &graph.Compilation{Options: &options, ModuleGraph: ids}
}

func jsSource(t *testing.T, m *ExternalModule, compilation *graph.Compilation) string {
	t.Helper()
	result, err := m.CodeGeneration(compilation)
	require.NoError(t, err)
	source, ok := result.Source(ast.SourceTypeJavaScript)
	require.True(t, ok)
	return source
}

func TestIdentityDependsOnTypeAndRequestOnly(t *testing.T) {
	a := New("jquery", "umd", "jquery")
	b := New("jquery", "umd", "jquery-from-alias")
	c := New("jquery", "var", "jquery")

	assert.Equal(t, "external umd jquery", a.Identifier())
	assert.Equal(t, a.Identifier(), b.Identifier())
	assert.NotEqual(t, a.Identifier(), c.Identifier())
}

func TestBuildAlwaysSucceeds(t *testing.T) {
	m := New("foo", "commonjs", "foo")
	assert.False(t, m.Built())

	result, err := m.Build(context.Background(), graph.BuildContext{})
	require.NoError(t, err)
	assert.Empty(t, result.Diagnostics)
	assert.True(t, m.Built())
}

func TestModuleCapabilities(t *testing.T) {
	m := New("foo", "commonjs", "foo-user")

	assert.Equal(t, ast.ModuleTypeJS, m.ModuleType())
	assert.Equal(t, []ast.SourceType{ast.SourceTypeJavaScript}, m.SourceTypes())
	assert.Equal(t, "external foo", m.ReadableIdentifier(""))
	assert.Equal(t, 42.0, m.Size(ast.SourceTypeJavaScript))

	libIdent, ok := m.LibIdent(graph.LibIdentOptions{})
	require.True(t, ok)
	assert.Equal(t, "foo-user", libIdent)

	_, ok = m.OriginalSource()
	assert.False(t, ok)

	css := New("style.css", "css-import", "style.css")
	assert.Equal(t, []ast.SourceType{ast.SourceTypeCSS}, css.SourceTypes())
	assert.Equal(t, ast.ModuleTypeJS, css.ModuleType())
}

func TestCommonJSFamily(t *testing.T) {
	compilation := compilationForTest(config.OutputOptions{}, nil)
	for _, externalType := range []string{"commonjs", "commonjs2", "commonjs-module", "commonjs-static"} {
		m := New("foo", externalType, "foo")
		assert.Equal(t, "module.exports = require('foo')", jsSource(t, m, compilation), externalType)
	}
}

func TestThis(t *testing.T) {
	compilation := compilationForTest(config.OutputOptions{}, nil)
	m := New("bar", "this", "bar")
	assert.Equal(t, "module.exports = (function() { return this['bar']; }())", jsSource(t, m, compilation))
}

func TestWindowAndSelf(t *testing.T) {
	compilation := compilationForTest(config.OutputOptions{}, nil)
	assert.Equal(t, "module.exports = window['jQuery']", jsSource(t, New("jQuery", "window", "jquery"), compilation))
	assert.Equal(t, "module.exports = self['jQuery']", jsSource(t, New("jQuery", "self", "jquery"), compilation))
}

func TestGlobalUsesConfiguredGlobalObject(t *testing.T) {
	compilation := compilationForTest(config.OutputOptions{GlobalObject: "globalThis"}, nil)
	m := New("process", "global", "process")
	assert.Equal(t, "module.exports = globalThis['process']", jsSource(t, m, compilation))
}

func TestNodeCommonJSWithoutESModuleOutput(t *testing.T) {
	compilation := compilationForTest(config.OutputOptions{}, nil)
	m := New("fs", "node-commonjs", "fs")
	result, err := m.CodeGeneration(compilation)
	require.NoError(t, err)

	source, _ := result.Source(ast.SourceTypeJavaScript)
	assert.Equal(t, "module.exports = require('fs')", source)
	assert.Zero(t, result.ChunkInitFragments.Len())
}

func TestNodeCommonJSSharesOneFragment(t *testing.T) {
	compilation := compilationForTest(config.OutputOptions{Module: true}, nil)
	a := New("fs", "node-commonjs", "fs")
	b := New("path", "node-commonjs", "path")

	resultA, err := a.CodeGeneration(compilation)
	require.NoError(t, err)
	resultB, err := b.CodeGeneration(compilation)
	require.NoError(t, err)

	sourceA, _ := resultA.Source(ast.SourceTypeJavaScript)
	sourceB, _ := resultB.Source(ast.SourceTypeJavaScript)
	assert.Equal(t, "__WEBPACK_EXTERNAL_createRequire(import.meta.url)('fs')", sourceA)
	assert.Equal(t, "__WEBPACK_EXTERNAL_createRequire(import.meta.url)('path')", sourceB)

	// Both modules generated into one chunk: the shared fragment key
	// collapses their preambles to a single import.
	var chunkFragments codegen.ChunkInitFragments
	chunkFragments.AddAll(resultA.ChunkInitFragments)
	chunkFragments.AddAll(resultB.ChunkInitFragments)

	require.Equal(t, 1, chunkFragments.Len())
	fragment, ok := chunkFragments.Get("external module node-commonjs")
	require.True(t, ok)
	assert.Equal(t, "import { createRequire as __WEBPACK_EXTERNAL_createRequire } from 'module';\n", fragment.Content)
	assert.Equal(t, codegen.StageHarmonyImports, fragment.Stage)
}

func TestLoaderBoundFamilyUsesAssignedID(t *testing.T) {
	for _, externalType := range []string{"amd", "amd-require", "umd", "umd2", "system", "jsonp"} {
		m := New("lodash", externalType, "lodash")
		ids := graph.ModuleIDMap{m.Identifier(): "vendor/lodash-4"}
		compilation := compilationForTest(config.OutputOptions{}, ids)
		assert.Equal(t, "module.exports = __WEBPACK_EXTERNAL_MODULE_vendor_lodash_4__",
			jsSource(t, m, compilation), externalType)
	}
}

func TestLoaderBoundFamilyMissingIDFallsBackToEmpty(t *testing.T) {
	compilation := compilationForTest(config.OutputOptions{}, nil)
	m := New("lodash", "umd", "lodash")
	assert.Equal(t, "module.exports = __WEBPACK_EXTERNAL_MODULE___", jsSource(t, m, compilation))
}

func TestImportUsesConfiguredFunctionName(t *testing.T) {
	m := New("react", "import", "react")

	compilation := compilationForTest(config.OutputOptions{}, nil)
	assert.Equal(t, "module.exports = import('react')", jsSource(t, m, compilation))

	compilation = compilationForTest(config.OutputOptions{ImportFunctionName: "__import__"}, nil)
	assert.Equal(t, "module.exports = __import__('react')", jsSource(t, m, compilation))
}

func TestVarFamilyTrustsRequestVerbatim(t *testing.T) {
	compilation := compilationForTest(config.OutputOptions{}, nil)
	for _, externalType := range []string{"var", "promise", "const", "let", "assign"} {
		m := New("root.child", externalType, "root.child")
		assert.Equal(t, "module.exports = root.child", jsSource(t, m, compilation), externalType)
	}
}

func TestModuleWithESModuleOutput(t *testing.T) {
	m := New("react", "module", "react")
	ids := graph.ModuleIDMap{m.Identifier(): "react"}
	compilation := compilationForTest(config.OutputOptions{Module: true}, ids)

	result, err := m.CodeGeneration(compilation)
	require.NoError(t, err)

	source, _ := result.Source(ast.SourceTypeJavaScript)
	assert.Equal(t,
		"var x = y => { var x = {}; __webpack_require__.d(x, y); return x; }\n"+
			"            var y = x => () => x\n"+
			"            module.exports = __WEBPACK_EXTERNAL_MODULE_react__",
		source)

	require.Equal(t, 1, result.ChunkInitFragments.Len())
	fragment, ok := result.ChunkInitFragments.Get("external module import react")
	require.True(t, ok)
	assert.Equal(t, "import * as __WEBPACK_EXTERNAL_MODULE_react__ from 'react';\n", fragment.Content)
	assert.Equal(t, codegen.StageHarmonyImports, fragment.Stage)

	assert.Equal(t, []string{"__webpack_require__.d"}, result.RuntimeRequirements.Names())
}

func TestModuleWithoutESModuleOutputBehavesLikeImport(t *testing.T) {
	compilation := compilationForTest(config.OutputOptions{ImportFunctionName: "__import__"}, nil)

	moduleResult, err := New("react", "module", "react").CodeGeneration(compilation)
	require.NoError(t, err)
	importResult, err := New("react", "import", "react").CodeGeneration(compilation)
	require.NoError(t, err)

	moduleSource, _ := moduleResult.Source(ast.SourceTypeJavaScript)
	importSource, _ := importResult.Source(ast.SourceTypeJavaScript)
	assert.Equal(t, importSource, moduleSource)
	assert.Zero(t, moduleResult.ChunkInitFragments.Len())
	assert.True(t, moduleResult.RuntimeRequirements.IsEmpty())
}

func TestAsset(t *testing.T) {
	compilation := compilationForTest(config.OutputOptions{}, nil)
	m := New("a.png", "asset", "a.png")

	result, err := m.CodeGeneration(compilation)
	require.NoError(t, err)

	source, ok := result.Source(ast.SourceTypeJavaScript)
	require.True(t, ok)
	assert.Equal(t, `module.exports = "a.png";`, source)
	assert.Empty(t, cmp.Diff(map[string]string{"url": "a.png"}, result.Data))

	assert.Zero(t, result.ChunkInitFragments.Len())
	assert.True(t, result.RuntimeRequirements.IsEmpty())
	_, ok = result.Hash()
	assert.False(t, ok)
}

func TestCSSImport(t *testing.T) {
	compilation := compilationForTest(config.OutputOptions{}, nil)
	m := New("style.css", "css-import", "style.css")

	result, err := m.CodeGeneration(compilation)
	require.NoError(t, err)

	css, ok := result.Source(ast.SourceTypeCSS)
	require.True(t, ok)
	assert.Equal(t, `@import url("style.css");`, css)

	_, ok = result.Source(ast.SourceTypeJavaScript)
	assert.False(t, ok)
	assert.Equal(t, []ast.SourceType{ast.SourceTypeCSS}, result.SourceTypes())
}

func TestAssetRequestMustBeValidUTF8(t *testing.T) {
	compilation := compilationForTest(config.OutputOptions{}, nil)
	m := New("a\xffb.png", "asset", "a.png")

	result, err := m.CodeGeneration(compilation)
	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestUnrecognizedAndScriptTypesGenerateNothing(t *testing.T) {
	compilation := compilationForTest(config.OutputOptions{}, nil)
	for _, externalType := range []string{"script", "not-a-real-type"} {
		m := New("foo", externalType, "foo")
		result, err := m.CodeGeneration(compilation)
		require.NoError(t, err, externalType)

		source, ok := result.Source(ast.SourceTypeJavaScript)
		require.True(t, ok, externalType)
		assert.Equal(t, "", source, externalType)
		assert.Zero(t, result.ChunkInitFragments.Len(), externalType)
		assert.True(t, result.RuntimeRequirements.IsEmpty(), externalType)
	}
}

func TestCodeGenerationIsIdempotent(t *testing.T) {
	m := New("react", "module", "react")
	ids := graph.ModuleIDMap{m.Identifier(): "react"}
	compilation := compilationForTest(config.OutputOptions{Module: true}, ids)

	first, err := m.CodeGeneration(compilation)
	require.NoError(t, err)
	second, err := m.CodeGeneration(compilation)
	require.NoError(t, err)

	firstSource, _ := first.Source(ast.SourceTypeJavaScript)
	secondSource, _ := second.Source(ast.SourceTypeJavaScript)
	assert.Equal(t, firstSource, secondSource)
	assert.Equal(t, first.ChunkInitFragments.Render(), second.ChunkInitFragments.Render())

	firstHash, ok := first.Hash()
	require.True(t, ok)
	secondHash, ok := second.Hash()
	require.True(t, ok)
	assert.Equal(t, firstHash, secondHash)
}

func TestKindRoundTrip(t *testing.T) {
	for name, kind := range map[string]Kind{
		"this": KindThis, "window": KindWindow, "self": KindSelf, "global": KindGlobal,
		"commonjs": KindCommonJS, "commonjs2": KindCommonJS2,
		"commonjs-module": KindCommonJSModule, "commonjs-static": KindCommonJSStatic,
		"node-commonjs": KindNodeCommonJS,
		"amd":           KindAMD, "amd-require": KindAMDRequire,
		"umd": KindUMD, "umd2": KindUMD2, "system": KindSystem, "jsonp": KindJSONP,
		"import": KindImport, "var": KindVar, "promise": KindPromise,
		"const": KindConst, "let": KindLet, "assign": KindAssign,
		"module": KindModule, "asset": KindAsset, "css-import": KindCSSImport,
		"script": KindScript,
	} {
		assert.Equal(t, kind, KindFromString(name))
		assert.Equal(t, name, kind.String())
	}
	assert.Equal(t, KindUnknown, KindFromString("no-such-type"))
	assert.Equal(t, "unknown", KindUnknown.String())
}
