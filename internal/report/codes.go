package report

// Error codes are namespaced by the phase that raises them, following
// spec.md §6/§7's per-component error taxonomy: TY (type checker), TR
// (trait engine), DR (drop checker), FG (function group engine), RS
// (resolver boundary — consumed, not produced, by the core, but named
// here so a driver forwarding a resolver error can still classify it
// alongside the core's own codes).
const (
	// Type checker (TY###)
	TY001 = "TY001" // TypeMismatch
	TY002 = "TY002" // FieldNotFound
	TY003 = "TY003" // MethodNotFound
	TY004 = "TY004" // MethodAmbiguous
	TY005 = "TY005" // TypeAnnotationNeeded
	TY006 = "TY006" // ArgCountMismatch
	TY007 = "TY007" // ImmutableAssign

	// Trait engine (TR###)
	TR001 = "TR001" // InstanceNotFound
	TR002 = "TR002" // AmbiguousInstances

	// Drop checker (DR###)
	DR001 = "DR001" // AlreadyMoved
	DR002 = "DR002" // AlreadyMovedLoopCarried

	// Function group engine (FG###)
	FG001 = "FG001" // profile fixpoint exceeded its structural bound (programmer error; internal/funcgroup does not raise it)

	// Resolver boundary (RS###) — the core never raises these itself,
	// but internal/driver forwards resolver errors through the same
	// Report shape so a caller needn't special-case the boundary.
	RS001 = "RS001" // UnknownName
	RS002 = "RS002" // UnknownTypeName
	RS003 = "RS003" // Ambiguous
)

// Phase names, matched against Report.Phase.
const (
	PhaseTypeCheck = "typecheck"
	PhaseTrait     = "trait"
	PhaseDrop      = "drop"
	PhaseFuncGroup = "funcgroup"
	PhaseResolver  = "resolver"
)
