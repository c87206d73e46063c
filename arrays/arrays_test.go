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

package arrays_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gx-org/backend/dtype"
	"github.com/gx-org/shapecheck/arrays"
	"github.com/gx-org/shapecheck/check/kind"
)

func TestDense(t *testing.T) {
	a := arrays.F32([]float32{1, 2, 3, 4, 5, 6}, 2, 3)
	if got, want := a.DType(), dtype.Float32; got != want {
		t.Errorf("DType() = %v but want %v", got, want)
	}
	if got, want := a.Shape().AxisLengths, []int{2, 3}; !cmp.Equal(got, want) {
		t.Errorf("AxisLengths = %v but want %v", got, want)
	}
	if got, want := a.String(), "f32[2 3]"; got != want {
		t.Errorf("String() = %q but want %q", got, want)
	}
}

func TestScalar(t *testing.T) {
	a := arrays.I64([]int64{42})
	if got := len(a.Shape().AxisLengths); got != 0 {
		t.Errorf("scalar has %d axes but want 0", got)
	}
	if got, want := a.String(), "i64[]"; got != want {
		t.Errorf("String() = %q but want %q", got, want)
	}
}

func TestSizeMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("no panic for 5 values in a 2x3 array")
		}
	}()
	arrays.F32([]float32{1, 2, 3, 4, 5}, 2, 3)
}

func TestHostKind(t *testing.T) {
	a := arrays.Bools([]bool{true, false}, 2)
	k, ok := kind.Of(a)
	if !ok || k != arrays.Host {
		t.Errorf("Of(host array) = %q, %v but want %q, true", k, ok, arrays.Host)
	}
	sh, ok := kind.ShapeOf(a)
	if !ok || sh.DType != dtype.Bool {
		t.Errorf("ShapeOf(host array) = %v, %v but want a bool shape", sh, ok)
	}
}
