package external

// Kind is the closed set of linkage strategies an external module can be
// configured with. It describes how the external value is obtained at
// runtime. The set is closed on purpose: code generation dispatches
// exhaustively over it, and anything that arrives as an unrecognized string
// maps to KindUnknown so the gap is visible at the type level instead of
// hiding in a string comparison.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindThis
	KindWindow
	KindSelf
	KindGlobal
	KindCommonJS
	KindCommonJS2
	KindCommonJSModule
	KindCommonJSStatic
	KindNodeCommonJS
	KindAMD
	KindAMDRequire
	KindUMD
	KindUMD2
	KindSystem
	KindJSONP
	KindImport
	KindVar
	KindPromise
	KindConst
	KindLet
	KindAssign
	KindModule
	KindAsset
	KindCSSImport

	// KindScript is recognized but code generation for it is not
	// implemented; it generates an empty snippet like KindUnknown does.
	KindScript
)

var kindsByName = map[string]Kind{
	"this":            KindThis,
	"window":          KindWindow,
	"self":            KindSelf,
	"global":          KindGlobal,
	"commonjs":        KindCommonJS,
	"commonjs2":       KindCommonJS2,
	"commonjs-module": KindCommonJSModule,
	"commonjs-static": KindCommonJSStatic,
	"node-commonjs":   KindNodeCommonJS,
	"amd":             KindAMD,
	"amd-require":     KindAMDRequire,
	"umd":             KindUMD,
	"umd2":            KindUMD2,
	"system":          KindSystem,
	"jsonp":           KindJSONP,
	"import":          KindImport,
	"var":             KindVar,
	"promise":         KindPromise,
	"const":           KindConst,
	"let":             KindLet,
	"assign":          KindAssign,
	"module":          KindModule,
	"asset":           KindAsset,
	"css-import":      KindCSSImport,
	"script":          KindScript,
}

// KindFromString maps a configured external type string to its Kind.
// Unrecognized strings map to KindUnknown, which is not an error: generation
// for unknown kinds degrades to an empty snippet.
func KindFromString(externalType string) Kind {
	return kindsByName[externalType]
}

func (k Kind) String() string {
	switch k {
	case KindThis:
		return "this"
	case KindWindow:
		return "window"
	case KindSelf:
		return "self"
	case KindGlobal:
		return "global"
	case KindCommonJS:
		return "commonjs"
	case KindCommonJS2:
		return "commonjs2"
	case KindCommonJSModule:
		return "commonjs-module"
	case KindCommonJSStatic:
		return "commonjs-static"
	case KindNodeCommonJS:
		return "node-commonjs"
	case KindAMD:
		return "amd"
	case KindAMDRequire:
		return "amd-require"
	case KindUMD:
		return "umd"
	case KindUMD2:
		return "umd2"
	case KindSystem:
		return "system"
	case KindJSONP:
		return "jsonp"
	case KindImport:
		return "import"
	case KindVar:
		return "var"
	case KindPromise:
		return "promise"
	case KindConst:
		return "const"
	case KindLet:
		return "let"
	case KindAssign:
		return "assign"
	case KindModule:
		return "module"
	case KindAsset:
		return "asset"
	case KindCSSImport:
		return "css-import"
	case KindScript:
		return "script"
	default:
		return "unknown"
	}
}
