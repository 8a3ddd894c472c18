package report

import "fmt"

// NewTypeMismatch builds TY001, citing both rendered type forms
// (spec.md §6 "TypeMismatch: two displayed types + location").
func NewTypeMismatch(expected, actual, pos string) *Report {
	return New(PhaseTypeCheck, TY001, "type mismatch",
		fmt.Sprintf("expected %s, got %s", expected, actual), pos)
}

// NewFieldNotFound builds TY002.
func NewFieldNotFound(field, owner, pos string) *Report {
	return New(PhaseTypeCheck, TY002, "field not found",
		fmt.Sprintf("%s has no field %q", owner, field), pos)
}

// NewMethodNotFound builds TY003.
func NewMethodNotFound(name, owner, pos string) *Report {
	return New(PhaseTypeCheck, TY003, "method not found",
		fmt.Sprintf("%s has no method %q", owner, name), pos)
}

// NewMethodAmbiguous builds TY004.
func NewMethodAmbiguous(name, owner, pos string) *Report {
	return New(PhaseTypeCheck, TY004, "ambiguous method",
		fmt.Sprintf("%q is ambiguous on %s", name, owner), pos)
}

// NewArgCountMismatch builds TY006.
func NewArgCountMismatch(callee string, want, got int, pos string) *Report {
	return New(PhaseTypeCheck, TY006, "argument count mismatch",
		fmt.Sprintf("%s expects %d argument(s), got %d", callee, want, got), pos)
}

// NewInstanceNotFound builds TR001 (spec.md §6 "InstanceNotFound: trait,
// args, location").
func NewInstanceNotFound(trait, args, pos string) *Report {
	return New(PhaseTrait, TR001, "no matching instance",
		fmt.Sprintf("no instance of %s for %s", trait, args), pos)
}

// NewAmbiguousInstances builds TR002, citing every tied candidate as an
// additional location.
func NewAmbiguousInstances(trait, args, pos string, candidates []string) *Report {
	r := New(PhaseTrait, TR002, "ambiguous instances",
		fmt.Sprintf("%d candidates tie for %s[%s]", len(candidates), trait, args), pos)
	for _, c := range candidates {
		r.WithLocation("candidate instance", c)
	}
	return r
}

// NewAlreadyMoved builds DR001 (or DR002 when loopCarried), citing the
// current path's location and the previous move's location (spec.md §6
// "AlreadyMoved: current path, previous-move path"; §4.4 "moved in
// previous iteration of loop").
func NewAlreadyMoved(path, prevMove, pos, prevPos string, loopCarried bool) *Report {
	code := DR001
	slogan := "value already moved"
	if loopCarried {
		code = DR002
		slogan = "value moved in previous iteration of loop"
	}
	r := New(PhaseDrop, code, slogan, fmt.Sprintf("%q used here", path), pos)
	r.WithLocation(fmt.Sprintf("%q previously moved here", prevMove), prevPos)
	return r
}

// NewUnknownName builds RS001 — forwarded from the resolver boundary so
// a driver can render it through the same Report shape as a core error.
func NewUnknownName(name, pos string) *Report {
	return New(PhaseResolver, RS001, "unknown name", fmt.Sprintf("%q is not defined", name), pos)
}

// NewTypeAnnotationNeeded builds TY005: a variable's type never got
// constrained to anything concrete (spec.md §6 "TypeAnnotationNeeded").
func NewTypeAnnotationNeeded(variable, pos string) *Report {
	return New(PhaseTypeCheck, TY005, "type annotation needed",
		fmt.Sprintf("cannot infer a type for %s", variable), pos)
}

// NewImmutableAssign builds TY007: an assignment targets a self
// parameter bound by value or by shared reference, neither of which
// permits mutation (spec.md §6 "ImmutableAssign").
func NewImmutableAssign(variable, pos string) *Report {
	return New(PhaseTypeCheck, TY007, "assignment to immutable binding",
		fmt.Sprintf("%s is not declared mut self", variable), pos)
}
