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

package kind_test

import (
	"testing"

	"github.com/gx-org/backend/dtype"
	"github.com/gx-org/backend/shape"
	"github.com/gx-org/shapecheck/check/kind"
)

type fakeDeviceArray struct {
	sh shape.Shape
}

func (a *fakeDeviceArray) Shape() *shape.Shape {
	return &a.sh
}

func init() {
	kind.Register("fakedevice", func(value any) bool {
		_, ok := value.(*fakeDeviceArray)
		return ok
	})
}

func TestOf(t *testing.T) {
	array := &fakeDeviceArray{sh: shape.Shape{DType: dtype.Float32, AxisLengths: []int{2, 3}}}
	k, ok := kind.Of(array)
	if !ok || k != "fakedevice" {
		t.Errorf("Of(array) = %q, %v but want %q, true", k, ok, "fakedevice")
	}
	if _, ok := kind.Of(42); ok {
		t.Errorf("Of(42) claims a backend kind for a non-array value")
	}
}

func TestShapeOf(t *testing.T) {
	array := &fakeDeviceArray{sh: shape.Shape{DType: dtype.Int32, AxisLengths: []int{5}}}
	sh, ok := kind.ShapeOf(array)
	if !ok {
		t.Fatalf("ShapeOf(array) = _, false but want a shape")
	}
	if sh.DType != dtype.Int32 || len(sh.AxisLengths) != 1 || sh.AxisLengths[0] != 5 {
		t.Errorf("ShapeOf(array) = %v but want i32[5]", sh)
	}
	if _, ok := kind.ShapeOf("not an array"); ok {
		t.Errorf("ShapeOf returned a shape for a non-array value")
	}
}

func TestSignature(t *testing.T) {
	tests := []struct {
		sh   shape.Shape
		want string
	}{
		{sh: shape.Shape{DType: dtype.Float32, AxisLengths: []int{2, 4, 4, 3}}, want: "f32[2 4 4 3]"},
		{sh: shape.Shape{DType: dtype.Bfloat16, AxisLengths: []int{8}}, want: "bf16[8]"},
		{sh: shape.Shape{DType: dtype.Bool}, want: "bool[]"},
	}
	for _, test := range tests {
		if got := kind.Signature(&test.sh); got != test.want {
			t.Errorf("Signature(%v) = %q but want %q", test.sh, got, test.want)
		}
	}
}

func TestDTypeName(t *testing.T) {
	tests := []struct {
		dt   dtype.DataType
		want string
	}{
		{dt: dtype.Float32, want: "float32"},
		{dt: dtype.Bfloat16, want: "bfloat16"},
		{dt: dtype.Uint64, want: "uint64"},
		{dt: dtype.Bool, want: "bool"},
	}
	for _, test := range tests {
		if got := kind.DTypeName(test.dt); got != test.want {
			t.Errorf("DTypeName(%v) = %q but want %q", test.dt, got, test.want)
		}
	}
}
