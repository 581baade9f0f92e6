package config

// OutputOptions is the subset of the output configuration that code
// generation reads. These fields are snapshotted for the lifetime of a
// compilation; generation never mutates them.
type OutputOptions struct {
	// The function called for dynamic-import style externals. Usually
	// "import", but bundlers targeting older runtimes substitute a shim here.
	ImportFunctionName string `yaml:"importFunctionName"`

	// The expression that evaluates to the global object in the output
	// environment ("self", "window", "globalThis", ...).
	GlobalObject string `yaml:"globalObject"`

	// True when the output format is itself an ES module. Several linkage
	// strategies emit import-based glue in that case instead of require().
	Module bool `yaml:"module"`
}

type Options struct {
	Output OutputOptions `yaml:"output"`
}

// ApplyDefaults fills in the fields a partially-specified configuration
// leaves empty. The defaults match what the surrounding bundler configures
// for browser builds.
func (options *Options) ApplyDefaults() {
	if options.Output.ImportFunctionName == "" {
		options.Output.ImportFunctionName = "import"
	}
	if options.Output.GlobalObject == "" {
		options.Output.GlobalObject = "self"
	}
}

func NewOptions() Options {
	options := Options{}
	options.ApplyDefaults()
	return options
}
