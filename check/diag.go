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

package check

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/gx-org/shapecheck/check/dims"
	"github.com/gx-org/shapecheck/check/kind"
	"golang.org/x/exp/maps"
)

// Kind classifies a verification failure.
type Kind int

const (
	// KindSignature: the call arguments cannot be bound to the declared
	// signature.
	KindSignature Kind = iota + 1
	// KindBackendKind: the value's array representation is accepted by no
	// specification.
	KindBackendKind
	// KindDType: the value's dtype is accepted by no specification.
	KindDType
	// KindShape: the value's shape matches no dimension expression.
	KindShape
	// KindDimConflict: a dimension variable saw two different sizes within
	// one call.
	KindDimConflict
	// KindAmbiguousUnion: no union member fully matches and no single
	// factor uniformly fails.
	KindAmbiguousUnion
	// KindValueType: a non-array parameter has the wrong Go type.
	KindValueType
)

var kindNames = map[Kind]string{
	KindSignature:      "signature binding error",
	KindBackendKind:    "backend kind mismatch",
	KindDType:          "dtype mismatch",
	KindShape:          "shape mismatch",
	KindDimConflict:    "dimension conflict",
	KindAmbiguousUnion: "ambiguous union mismatch",
	KindValueType:      "value type mismatch",
}

// String returns the name of the failure kind.
func (k Kind) String() string {
	name, ok := kindNames[k]
	if !ok {
		return fmt.Sprintf("failure kind %d", int(k))
	}
	return name
}

// Argument is one bound argument of a failed call.
type Argument struct {
	// Name of the parameter.
	Name string
	// Annotation declared for the parameter. Nil if undeclared.
	Annotation any
	// Value the parameter was bound to.
	Value any
}

// Error is the diagnostic raised when a checked call fails. It is built only
// at the moment a check fails and carries everything needed to debug the
// call: the bound arguments with their annotations, the return value if the
// function ran, and the dimension bindings inferred before the failure.
type Error struct {
	kind        Kind
	msg         string
	args        []Argument
	retValue    any
	retProduced bool
	retAnn      any
	memo        *dims.Memo
	cause       error
}

// Kind returns the failure classification.
func (e *Error) Kind() Kind {
	return e.kind
}

// Message returns the headline message, without the argument report.
func (e *Error) Message() string {
	return e.msg
}

// Arguments returns the bound arguments in declaration order.
func (e *Error) Arguments() []Argument {
	return e.args
}

// ReturnValue returns the value produced by the function. Returns false if
// the call failed before the function ran.
func (e *Error) ReturnValue() (any, bool) {
	return e.retValue, e.retProduced
}

// ReturnAnnotation returns the declared return annotation.
func (e *Error) ReturnAnnotation() any {
	return e.retAnn
}

// Memo returns the dimension bindings inferred before the failure.
func (e *Error) Memo() *dims.Memo {
	return e.memo
}

// Unwrap returns the underlying mismatch or binding error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Error renders the full report: headline, inputs, return value and
// inferred dimensions.
func (e *Error) Error() string {
	w := &strings.Builder{}
	w.WriteString(e.msg)
	w.WriteString("\n\nInputs:\n")
	for _, arg := range e.args {
		key := arg.Name
		if ann := annotationString(arg.Annotation); ann != "" {
			key = fmt.Sprintf("%s: %s", arg.Name, ann)
		}
		fmt.Fprintf(w, "  %s = %s\n", key, formatValue(arg.Value))
	}
	if e.retProduced {
		fmt.Fprintf(w, "\nReturn -> %s:\n%s\n", annotationString(e.retAnn), formatReturn(e.retValue))
	}
	fmt.Fprintf(w, "\nInferred Dims:\n  %s\n", e.memo)
	return w.String()
}

// maxValueRepr bounds the rendering of values of unknown types. Longer
// representations are replaced with the type name.
const maxValueRepr = 76

// formatValue renders one argument or return value. Scalars render as
// literals and array-like values as their compact signature; contents are
// never printed.
func formatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "nil"
	case bool:
		return strconv.FormatBool(v)
	case string:
		return strconv.Quote(v)
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64, complex64, complex128:
		return fmt.Sprintf("%v", v)
	}
	if sh, ok := kind.ShapeOf(value); ok {
		return kind.Signature(sh)
	}
	r := fmt.Sprintf("%v", value)
	if len(r) > maxValueRepr {
		return fmt.Sprintf("%T", value)
	}
	return r
}

// formatReturn renders a return value, by key for mappings and by position
// for sequences.
func formatReturn(value any) string {
	w := &strings.Builder{}
	switch ret := value.(type) {
	case map[string]any:
		keys := maps.Keys(ret)
		sort.Strings(keys)
		for _, key := range keys {
			fmt.Fprintf(w, "  %s : %s\n", key, formatValue(ret[key]))
		}
	case []any:
		for i, v := range ret {
			fmt.Fprintf(w, "  [%d] : %s\n", i, formatValue(v))
		}
	default:
		fmt.Fprintf(w, "  %s\n", formatValue(value))
	}
	return strings.TrimSuffix(w.String(), "\n")
}
