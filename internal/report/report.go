// Package report implements the core's structured diagnostic type: a
// phase-namespaced error code, a human-readable message, one or more
// source locations, and optional structured data — the single shape
// every fatal error crosses the core/driver boundary as (spec.md §6
// "Error surface", §7 "Error handling design"), adapted from
// internal/errors/report.go (see DESIGN.md).
package report

import (
	"errors"
	"fmt"
)

// Location names one (message, position) pair a Report cites; most
// reports carry exactly one, but AlreadyMoved and AmbiguousInstances cite
// two or more (the current use plus every prior candidate/move).
type Location struct {
	Message string `json:"message"`
	Pos     string `json:"pos"`
}

// Report is the canonical structured diagnostic (spec.md §6 "Each error
// is emitted to an abstract report sink with (slogan, list of (message,
// location))").
type Report struct {
	Schema    string         `json:"schema"`
	Code      string         `json:"code"`
	Phase     string         `json:"phase"`
	Slogan    string         `json:"slogan"`
	Locations []Location     `json:"locations"`
	Data      map[string]any `json:"data,omitempty"`
}

// SchemaV1 is the only schema version this repo emits.
const SchemaV1 = "ownhir.report/v1"

// New builds a Report with schema/phase/code filled in and a single
// location.
func New(phase, code, slogan, message, pos string) *Report {
	return &Report{
		Schema: SchemaV1,
		Code:   code,
		Phase:  phase,
		Slogan: slogan,
		Locations: []Location{
			{Message: message, Pos: pos},
		},
	}
}

// WithLocation appends an additional (message, pos) pair, used when a
// report must cite more than one site (e.g. AlreadyMoved's previous move,
// AmbiguousInstances' candidate list).
func (r *Report) WithLocation(message, pos string) *Report {
	r.Locations = append(r.Locations, Location{Message: message, Pos: pos})
	return r
}

// WithData attaches a key/value pair of structured context.
func (r *Report) WithData(key string, value any) *Report {
	if r.Data == nil {
		r.Data = make(map[string]any)
	}
	r.Data[key] = value
	return r
}

// Err wraps r as an error, so it can flow through ordinary Go error
// returns while surviving errors.As unwrapping (spec.md §7 "All core
// errors are fatal").
type Err struct{ Rep *Report }

func (e *Err) Error() string {
	if e.Rep == nil {
		return "unknown report error"
	}
	if len(e.Rep.Locations) == 0 {
		return fmt.Sprintf("%s: %s", e.Rep.Code, e.Rep.Slogan)
	}
	return fmt.Sprintf("%s: %s: %s", e.Rep.Code, e.Rep.Slogan, e.Rep.Locations[0].Message)
}

// Wrap returns r as an error via Err; nil in, nil out.
func Wrap(r *Report) error {
	if r == nil {
		return nil
	}
	return &Err{Rep: r}
}

// As recovers a *Report from an error chain produced by Wrap.
func As(err error) (*Report, bool) {
	var e *Err
	if errors.As(err, &e) {
		return e.Rep, true
	}
	return nil, false
}
