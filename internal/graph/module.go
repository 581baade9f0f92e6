package graph

import (
	"context"

	"github.com/zackarychapple/rspack/internal/ast"
	"github.com/zackarychapple/rspack/internal/codegen"
	"github.com/zackarychapple/rspack/internal/logger"
)

// BuildContext carries the compilation-wide inputs a module may need while
// building. External modules ignore all of it, but the scheduler hands the
// same context to every module kind.
type BuildContext struct {
	// The directory module paths are displayed relative to in diagnostics.
	CompilerContext string
}

// BuildResult is what building a module produces. A module with nothing to
// parse returns the zero value: built, successful, no diagnostics.
type BuildResult struct {
	Diagnostics []logger.Msg
}

type LibIdentOptions struct {
	// The directory library identifiers are relativized against.
	Context string
}

// Module is the capability interface every module kind in the graph
// implements. Identity is the sole basis for module equality: two modules
// with the same identifier are the same logical graph node.
//
// Build takes a context because the scheduler builds many modules
// concurrently and some kinds do real work; implementations that have
// nothing to do just return immediately. CodeGeneration must be pure with
// respect to shared state: it reads the compilation and writes only into
// the result it returns, so it can be called again at any time.
type Module interface {
	Identifier() string
	ModuleType() ast.ModuleType
	SourceTypes() []ast.SourceType

	// OriginalSource returns the source text the module was built from, if
	// it has one. Synthetic modules report false.
	OriginalSource() (string, bool)

	// ReadableIdentifier is a short human-readable label for diagnostics,
	// relative to the given context directory where that applies.
	ReadableIdentifier(contextDir string) string

	// Size estimates the module's contribution to the output in bytes for
	// size-based heuristics. It need not be exact.
	Size(sourceType ast.SourceType) float64

	// LibIdent returns the identifier used when exposing this module from a
	// library build, if it has one.
	LibIdent(options LibIdentOptions) (string, bool)

	Build(ctx context.Context, buildContext BuildContext) (BuildResult, error)
	CodeGeneration(compilation *Compilation) (*codegen.CodeGenerationResult, error)
}
