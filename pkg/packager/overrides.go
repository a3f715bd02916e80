package packager

// Overrides carries the caller's explicit per-parameter values, created once
// per run and never mutated. A zero value means "not set": resolution falls
// through to the manifest and then to the defaults. No parameter in this
// domain has a meaningful empty value, so empty strings and nil slices stand
// in for absence. Boolean fields only force a value when true; an explicit
// false never masks a manifest setting.
type Overrides struct {
	Name         string
	Version      string
	Culture      string
	Locale       string
	Output       string
	Includes     []string
	CompilerArgs []string
	LinkerArgs   []string
	DebugBuild   bool
	DebugName    bool
	SkipBuild    bool
}
