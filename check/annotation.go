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
	"reflect"

	"github.com/gx-org/shapecheck/check/dims"
	"github.com/gx-org/shapecheck/check/match"
	"github.com/gx-org/shapecheck/check/spec"
	"github.com/pkg/errors"
)

type anyAnnotation struct{}

func (anyAnnotation) String() string {
	return "any"
}

// Any is the annotation accepting every value unchecked.
//
// An annotation declares what a parameter or return value accepts:
//
//   - *spec.Spec: an array specification;
//   - *spec.Union: alternative array specifications;
//   - reflect.Type (see TypeOf): an ordinary Go type, checked for type only;
//   - Any or nil: no check.
var Any any = anyAnnotation{}

// TypeOf returns the annotation restricting a non-array parameter to an
// ordinary Go type.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}

func validAnnotation(ann any) error {
	switch ann.(type) {
	case nil, anyAnnotation, *spec.Spec, *spec.Union, reflect.Type:
		return nil
	}
	return errors.Errorf("unsupported annotation %T", ann)
}

func annotationString(ann any) string {
	if ann == nil {
		return ""
	}
	if s, ok := ann.(fmt.Stringer); ok {
		return s.String()
	}
	if t, ok := ann.(reflect.Type); ok {
		return t.String()
	}
	return fmt.Sprintf("%v", ann)
}

// checkAnnotation validates one value against one annotation, binding
// dimension variables through the memo. The returned kind classifies the
// failure.
func checkAnnotation(ann any, value any, memo *dims.Memo) (Kind, error) {
	switch a := ann.(type) {
	case nil, anyAnnotation:
		return 0, nil
	case *spec.Spec:
		if merr := match.Resolve(value, []*spec.Spec{a}, memo); merr != nil {
			return failureToKind(merr.Failure()), merr
		}
	case *spec.Union:
		if merr := match.Resolve(value, a.Specs(), memo); merr != nil {
			return failureToKind(merr.Failure()), merr
		}
	case reflect.Type:
		return checkGoType(a, value)
	}
	return 0, nil
}

func checkGoType(want reflect.Type, value any) (Kind, error) {
	if value == nil {
		switch want.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
			return 0, nil
		}
		return KindValueType, errors.Errorf("was nil but want %s", want)
	}
	got := reflect.TypeOf(value)
	if got == want || got.AssignableTo(want) {
		return 0, nil
	}
	return KindValueType, errors.Errorf("was of type %s but want %s", got, want)
}

func failureToKind(f match.Failure) Kind {
	switch f {
	case match.FailureBackendKind:
		return KindBackendKind
	case match.FailureDType:
		return KindDType
	case match.FailureShape:
		return KindShape
	case match.FailureDimConflict:
		return KindDimConflict
	case match.FailureAmbiguous:
		return KindAmbiguousUnion
	}
	return 0
}
