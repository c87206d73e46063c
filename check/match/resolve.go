// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package match

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/gx-org/shapecheck/check/dims"
	"github.com/gx-org/shapecheck/check/kind"
	"github.com/gx-org/shapecheck/check/spec"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Failure classifies a mismatch.
type Failure int

const (
	// FailureBackendKind: the value's backend kind is acceptable to no
	// candidate.
	FailureBackendKind Failure = iota + 1
	// FailureDType: the value's dtype is acceptable to no candidate whose
	// backend kind matched.
	FailureDType
	// FailureShape: the value's shape matches no candidate.
	FailureShape
	// FailureDimConflict: a dimension variable saw two different sizes
	// within the call.
	FailureDimConflict
	// FailureAmbiguous: no single factor fails across all candidates, yet
	// no candidate fully matches.
	FailureAmbiguous
)

// Error is a single mismatch diagnostic for a value against the candidate
// specifications of an annotation.
type Error struct {
	failure Failure
	msg     string
	errs    error
}

// Failure returns the mismatch classification.
func (e *Error) Failure() Failure {
	return e.failure
}

// Error returns the diagnostic message.
func (e *Error) Error() string {
	return e.msg
}

// Unwrap returns the per-candidate failures combined in an ambiguous
// mismatch, nil otherwise. Use multierr.Errors to iterate over them.
func (e *Error) Unwrap() error {
	return e.errs
}

// Resolve matches a value against an ordered list of candidate
// specifications. The first fully matching candidate accepts the value and
// commits its dimension bindings to the memo; candidate trials themselves
// run on clones so that a failed candidate never pollutes the call's
// bindings. If no candidate matches, exactly one diagnostic is returned,
// citing the most actionable factor that fails across every candidate.
func Resolve(value any, specs []*spec.Spec, memo *dims.Memo) *Error {
	trials := make([]*Match, len(specs))
	for i, sp := range specs {
		trials[i] = New(value, sp, memo.Clone())
	}
	for i, m := range trials {
		if m.AllCorrect() {
			New(value, specs[i], memo)
			return nil
		}
	}
	desc := valueDesc(value)
	if noneOf(trials, (*Match).TypeCorrect) {
		return &Error{
			failure: FailureBackendKind,
			msg:     fmt.Sprintf("%s which is none of [%s]", actualKindDesc(value), joinNames(acceptableKinds(specs))),
		}
	}
	if nonePlausibleDType(trials) {
		return &Error{
			failure: FailureDType,
			msg:     fmt.Sprintf("was %s which is not dtype-compatible with %s", desc, oneOrAnyOf(acceptableDTypes(specs))),
		}
	}
	if noneOf(trials, (*Match).ShapeCorrect) {
		if len(trials) == 1 {
			var conflict *dims.ConflictError
			if stderrors.As(trials[0].ShapeError(), &conflict) {
				return &Error{
					failure: FailureDimConflict,
					msg:     fmt.Sprintf("was %s: %v", desc, conflict),
				}
			}
		}
		return &Error{
			failure: FailureShape,
			msg:     fmt.Sprintf("was %s which is not shape-compatible with %s", desc, oneOrAnyOf(acceptableDims(specs))),
		}
	}
	// No single factor fails everywhere, yet no candidate fully matches:
	// list the failure of every candidate still worth showing.
	var combined error
	lines := []string{fmt.Sprintf("was %s which did not match any of:", desc)}
	for _, m := range trials {
		if !m.Interesting() {
			continue
		}
		failMsg := m.FailMessage()
		combined = multierr.Append(combined, errors.New(failMsg))
		lines = append(lines, "  - "+failMsg)
	}
	return &Error{
		failure: FailureAmbiguous,
		msg:     strings.Join(lines, "\n"),
		errs:    combined,
	}
}

func noneOf(trials []*Match, pred func(*Match) bool) bool {
	for _, m := range trials {
		if pred(m) {
			return false
		}
	}
	return true
}

// nonePlausibleDType reports whether no candidate whose backend kind
// matched also has a matching dtype.
func nonePlausibleDType(trials []*Match) bool {
	for _, m := range trials {
		if m.TypeCorrect() && m.DTypeCorrect() {
			return false
		}
	}
	return true
}

func valueDesc(value any) string {
	if sh, ok := kind.ShapeOf(value); ok {
		return kind.Signature(sh)
	}
	return fmt.Sprintf("%T", value)
}

func actualKindDesc(value any) string {
	if k, ok := kind.Of(value); ok {
		return fmt.Sprintf("was of backend kind %q", k)
	}
	return fmt.Sprintf("was of type %T", value)
}

func acceptableKinds(specs []*spec.Spec) []string {
	var names []string
	for _, sp := range specs {
		names = append(names, sp.KindNames()...)
	}
	return dedupe(names)
}

func acceptableDTypes(specs []*spec.Spec) []string {
	var names []string
	for _, sp := range specs {
		names = append(names, sp.DTypeNames()...)
	}
	return dedupe(names)
}

func acceptableDims(specs []*spec.Spec) []string {
	var exprs []string
	for _, sp := range specs {
		exprs = append(exprs, fmt.Sprintf("%q", sp.Dims()))
	}
	return dedupe(exprs)
}

func dedupe(names []string) []string {
	seen := make(map[string]bool)
	var unique []string
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		unique = append(unique, name)
	}
	return unique
}

func oneOrAnyOf(names []string) string {
	if len(names) == 1 {
		return names[0]
	}
	return fmt.Sprintf("any of [%s]", joinNames(names))
}

func joinNames(names []string) string {
	return strings.Join(names, " ")
}
