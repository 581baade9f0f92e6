package external

import (
	"context"
	"fmt"

	"github.com/zackarychapple/rspack/internal/ast"
	"github.com/zackarychapple/rspack/internal/codegen"
	"github.com/zackarychapple/rspack/internal/graph"
	"github.com/zackarychapple/rspack/internal/helpers"
	"github.com/zackarychapple/rspack/internal/runtime"
)

var _ graph.Module = (*ExternalModule)(nil)

var jsSourceTypes = []ast.SourceType{ast.SourceTypeJavaScript}
var cssSourceTypes = []ast.SourceType{ast.SourceTypeCSS}

// ExternalModule represents a dependency that is deliberately left out of
// the bundle and obtained at runtime instead. It has no source of its own;
// everything it contributes to the output is synthesized during code
// generation from the request and the linkage kind.
type ExternalModule struct {
	// The externally-referenced name. Depending on the kind this may contain
	// kind-specific syntax and is trusted verbatim.
	Request string

	id   string
	kind Kind

	// The request as the user configured it, before normalization. Only used
	// for display and library identifiers; identity does not depend on it.
	userRequest string

	built bool
}

// New constructs an external module. Construction always succeeds; an
// unrecognized externalType degrades to empty generated output rather than
// failing. The identity derives from externalType and request only, so the
// same external reached through different configured aliases dedupes to one
// graph node.
func New(request string, externalType string, userRequest string) *ExternalModule {
	return &ExternalModule{
		Request:     request,
		id:          "external " + externalType + " " + request,
		kind:        KindFromString(externalType),
		userRequest: userRequest,
	}
}

func (m *ExternalModule) Identifier() string {
	return m.id
}

func (m *ExternalModule) Kind() Kind {
	return m.kind
}

func (m *ExternalModule) ModuleType() ast.ModuleType {
	return ast.ModuleTypeJS
}

func (m *ExternalModule) SourceTypes() []ast.SourceType {
	if m.kind == KindCSSImport {
		return cssSourceTypes
	}
	return jsSourceTypes
}

func (m *ExternalModule) OriginalSource() (string, bool) {
	return "", false
}

func (m *ExternalModule) ReadableIdentifier(contextDir string) string {
	return "external " + m.Request
}

func (m *ExternalModule) Size(sourceType ast.SourceType) float64 {
	// Roughly the size of a URL. Externals have no real byte payload, so
	// size-based heuristics get a small constant instead.
	return 42
}

func (m *ExternalModule) LibIdent(options graph.LibIdentOptions) (string, bool) {
	return m.userRequest, true
}

// Build satisfies the scheduler's module interface. There is nothing to
// parse and no I/O to do, so this completes immediately without suspending
// and can never fail. It transitions the module to built exactly once.
func (m *ExternalModule) Build(ctx context.Context, buildContext graph.BuildContext) (graph.BuildResult, error) {
	m.built = true
	return graph.BuildResult{}, nil
}

func (m *ExternalModule) Built() bool {
	return m.built
}

func (m *ExternalModule) sourceForCommonJS() string {
	return "module.exports = require('" + m.Request + "')"
}

func (m *ExternalModule) sourceForImport(compilation *graph.Compilation) string {
	return "module.exports = " + compilation.Options.Output.ImportFunctionName + "('" + m.Request + "')"
}

// source generates the script snippet for every kind that emits into the
// JavaScript slot, along with the init fragments and runtime capabilities
// the snippet depends on. Fragments are keyed so that many externals sharing
// one strategy within a chunk contribute exactly one preamble line.
func (m *ExternalModule) source(compilation *graph.Compilation) (string, codegen.ChunkInitFragments, runtime.Globals) {
	var fragments codegen.ChunkInitFragments
	var requirements runtime.Globals
	var source string

	switch m.kind {
	case KindThis:
		// Wrapping in an immediately-invoked function makes "this" resolve
		// to the global object no matter where the snippet ends up.
		source = "module.exports = (function() { return this['" + m.Request + "']; }())"

	case KindWindow, KindSelf:
		source = "module.exports = " + m.kind.String() + "['" + m.Request + "']"

	case KindGlobal:
		source = "module.exports = " + compilation.Options.Output.GlobalObject + "['" + m.Request + "']"

	case KindCommonJS, KindCommonJS2, KindCommonJSModule, KindCommonJSStatic:
		source = m.sourceForCommonJS()

	case KindNodeCommonJS:
		if compilation.Options.Output.Module {
			// ES module output has no require() of its own. Derive one from
			// the module's URL, once per chunk no matter how many externals
			// use this strategy.
			fragments.Entry("external module node-commonjs", codegen.InitFragment{
				Content: "import { createRequire as __WEBPACK_EXTERNAL_createRequire } from 'module';\n",
				Stage:   codegen.StageHarmonyImports,
			})
			source = "__WEBPACK_EXTERNAL_createRequire(import.meta.url)('" + m.Request + "')"
		} else {
			source = m.sourceForCommonJS()
		}

	case KindAMD, KindAMDRequire, KindUMD, KindUMD2, KindSystem, KindJSONP:
		// An external loader binds the value to a module-scoped variable at
		// runtime; generation only references that variable. A missing id
		// degrades to an empty identifier fragment instead of failing.
		id := compilation.AssignedModuleID(m.id)
		source = "module.exports = __WEBPACK_EXTERNAL_MODULE_" + helpers.ToIdentifier(id) + "__"

	case KindImport:
		source = m.sourceForImport(compilation)

	case KindVar, KindPromise, KindConst, KindLet, KindAssign:
		// The request is a raw expression here. Escaping it is the
		// configuration's responsibility, not ours.
		source = "module.exports = " + m.Request

	case KindModule:
		if compilation.Options.Output.Module {
			identifier := helpers.ToIdentifier(compilation.AssignedModuleID(m.id))
			fragments.Entry("external module import "+identifier, codegen.InitFragment{
				Content: "import * as __WEBPACK_EXTERNAL_MODULE_" + identifier + "__ from '" + m.Request + "';\n",
				Stage:   codegen.StageHarmonyImports,
			})
			// An ES module namespace is frozen but consumers expect a
			// mutable module.exports object, so copy the enumerable getters
			// into a fresh plain object and export that instead.
			requirements.Add(runtime.GlobalDefinePropertyGetters)
			source = "var x = y => { var x = {}; " + runtime.GlobalDefinePropertyGetters.Name() + "(x, y); return x; }\n" +
				"            var y = x => () => x\n" +
				"            module.exports = __WEBPACK_EXTERNAL_MODULE_" + identifier + "__"
		} else {
			source = m.sourceForImport(compilation)
		}

	case KindAsset, KindCSSImport:
		// Handled directly in CodeGeneration; never reaches here.

	case KindScript, KindUnknown:
		// TODO: implement the "script" external type. Until then both fall
		// through to an empty snippet so an unhandled kind never blocks the
		// rest of the pipeline.
	}

	return source, fragments, requirements
}

// CodeGeneration produces a fresh result from the module and the given
// compilation snapshot. It is pure and repeatable: the same inputs yield
// byte-identical output and an identical hash, any number of times.
func (m *ExternalModule) CodeGeneration(compilation *graph.Compilation) (*codegen.CodeGenerationResult, error) {
	result := codegen.NewCodeGenerationResult()

	switch m.kind {
	case KindAsset:
		quoted, err := helpers.QuoteForJSON(m.Request)
		if err != nil {
			return nil, fmt.Errorf("external %s: %w", m.Request, err)
		}
		result.Add(ast.SourceTypeJavaScript, "module.exports = "+quoted+";")
		// The verbatim request is recorded for the URL-rewriting pass.
		result.Data["url"] = m.Request

	case KindCSSImport:
		quoted, err := helpers.QuoteForJSON(m.Request)
		if err != nil {
			return nil, fmt.Errorf("external %s: %w", m.Request, err)
		}
		result.Add(ast.SourceTypeCSS, "@import url("+quoted+");")

	default:
		source, fragments, requirements := m.source(compilation)
		result.Add(ast.SourceTypeJavaScript, source)
		result.ChunkInitFragments = fragments
		result.RuntimeRequirements.Add(requirements)
		result.SetHash()
	}

	return result, nil
}
