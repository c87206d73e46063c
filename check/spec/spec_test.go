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

package spec_test

import (
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gx-org/backend/dtype"
	"github.com/gx-org/shapecheck/check/spec"
)

func TestAcceptsDType(t *testing.T) {
	tests := []struct {
		spec    *spec.Spec
		accepts []dtype.DataType
		rejects []dtype.DataType
	}{
		{
			spec:    spec.F32("b c"),
			accepts: []dtype.DataType{dtype.Float32},
			rejects: []dtype.DataType{dtype.Float64, dtype.Int32, dtype.Bool},
		},
		{
			spec:    spec.Float("b c"),
			accepts: []dtype.DataType{dtype.Float32, dtype.Float64, dtype.Bfloat16},
			rejects: []dtype.DataType{dtype.Int32, dtype.Uint64, dtype.Bool},
		},
		{
			spec:    spec.Int("b c"),
			accepts: []dtype.DataType{dtype.Int32, dtype.Int64},
			rejects: []dtype.DataType{dtype.Uint32, dtype.Float32},
		},
		{
			spec:    spec.Num("b c"),
			accepts: []dtype.DataType{dtype.Int32, dtype.Uint64, dtype.Float64, dtype.Bfloat16},
			rejects: []dtype.DataType{dtype.Bool},
		},
		{
			spec:    spec.ArrayAny("b c"),
			accepts: []dtype.DataType{dtype.Bool, dtype.Float32, dtype.Uint32},
		},
		{
			spec:    spec.ArrayAny("b c", spec.WithDTypes(spec.PatternDType(regexp.MustCompile(`^float`)))),
			accepts: []dtype.DataType{dtype.Float32, dtype.Float64},
			rejects: []dtype.DataType{dtype.Bfloat16},
		},
	}
	for _, test := range tests {
		for _, dt := range test.accepts {
			if !test.spec.AcceptsDType(dt) {
				t.Errorf("%s.AcceptsDType(%v) = false but want true", test.spec, dt)
			}
		}
		for _, dt := range test.rejects {
			if test.spec.AcceptsDType(dt) {
				t.Errorf("%s.AcceptsDType(%v) = true but want false", test.spec, dt)
			}
		}
	}
}

func TestAcceptsKind(t *testing.T) {
	s := spec.F32("b c", spec.WithKinds("host"))
	if !s.AcceptsKind("host") {
		t.Errorf("AcceptsKind(host) = false but want true")
	}
	if s.AcceptsKind("device") {
		t.Errorf("AcceptsKind(device) = true but want false")
	}
	anyKind := spec.F32("b c")
	if !anyKind.AcceptsKind("device") {
		t.Errorf("unrestricted spec rejects kind device")
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		spec interface{ String() string }
		want string
	}{
		{spec: spec.F32("b h w 3"), want: "f32[b h w 3]"},
		{spec: spec.Num("... d"), want: "num[... d]"},
		{spec: spec.ArrayAny("_ c"), want: "array[_ c]"},
		{spec: spec.OneOf(spec.F32("b c"), spec.I32("b c")), want: "f32[b c] | i32[b c]"},
	}
	for _, test := range tests {
		if got := test.spec.String(); got != test.want {
			t.Errorf("got %q but want %q", got, test.want)
		}
	}
}

func TestDTypeNames(t *testing.T) {
	tests := []struct {
		spec *spec.Spec
		want []string
	}{
		{spec: spec.F32("b"), want: []string{"float32"}},
		{spec: spec.ArrayAny("b"), want: []string{"any"}},
		{spec: spec.Float("b"), want: []string{`^b?float[0-9]+$`}},
	}
	for _, test := range tests {
		got := test.spec.DTypeNames()
		if !cmp.Equal(got, test.want) {
			t.Errorf("%s.DTypeNames() = %v but want %v", test.spec, got, test.want)
		}
	}
}

func TestNewInvalidExpression(t *testing.T) {
	if _, err := spec.New("a ... b ..."); err == nil {
		t.Errorf("New accepted an expression with two ellipses")
	}
}
