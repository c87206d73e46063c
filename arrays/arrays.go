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

// Package arrays provides dense arrays allocated in process memory.
//
// These are the simplest values the verification engine can check. They are
// registered under the "host" backend kind; other backends register their
// own kind and expose their shape through kind.Array.
package arrays

import (
	"github.com/gx-org/backend/dtype"
	"github.com/gx-org/backend/shape"
	"github.com/gx-org/shapecheck/check/kind"
	"github.com/pkg/errors"
)

// Host is the backend kind of dense in-process arrays.
const Host kind.Kind = "host"

type hostArray interface {
	host()
}

func init() {
	kind.Register(Host, func(value any) bool {
		_, ok := value.(hostArray)
		return ok
	})
}

// Dense is a multi-dimensional array of values stored contiguously in
// row-major order.
type Dense[T dtype.GoDataType] struct {
	sh     shape.Shape
	values []T
}

func (a *Dense[T]) host() {}

func newDense[T dtype.GoDataType](dt dtype.DataType, values []T, axes []int) *Dense[T] {
	size := 1
	for _, axis := range axes {
		size *= axis
	}
	if size != len(values) {
		panic(errors.Errorf("cannot build array: %d values do not fit axes %v", len(values), axes))
	}
	return &Dense[T]{
		sh:     shape.Shape{DType: dt, AxisLengths: axes},
		values: values,
	}
}

// F32 returns a dense float32 array. The number of values must match the
// product of the axis lengths; no axes builds a scalar.
func F32(values []float32, axes ...int) *Dense[float32] {
	return newDense(dtype.Float32, values, axes)
}

// F64 returns a dense float64 array.
func F64(values []float64, axes ...int) *Dense[float64] {
	return newDense(dtype.Float64, values, axes)
}

// BF16 returns a dense bfloat16 array.
func BF16(values []dtype.Bfloat16T, axes ...int) *Dense[dtype.Bfloat16T] {
	return newDense(dtype.Bfloat16, values, axes)
}

// I32 returns a dense int32 array.
func I32(values []int32, axes ...int) *Dense[int32] {
	return newDense(dtype.Int32, values, axes)
}

// I64 returns a dense int64 array.
func I64(values []int64, axes ...int) *Dense[int64] {
	return newDense(dtype.Int64, values, axes)
}

// U32 returns a dense uint32 array.
func U32(values []uint32, axes ...int) *Dense[uint32] {
	return newDense(dtype.Uint32, values, axes)
}

// U64 returns a dense uint64 array.
func U64(values []uint64, axes ...int) *Dense[uint64] {
	return newDense(dtype.Uint64, values, axes)
}

// Bools returns a dense bool array.
func Bools(values []bool, axes ...int) *Dense[bool] {
	return newDense(dtype.Bool, values, axes)
}

// Shape of the array. The shape carries the dtype and the axis lengths.
func (a *Dense[T]) Shape() *shape.Shape {
	return &a.sh
}

// DType of the array elements.
func (a *Dense[T]) DType() dtype.DataType {
	return a.sh.DType
}

// Values returns the flat element slice, in row-major order.
func (a *Dense[T]) Values() []T {
	return a.values
}

// String returns the compact signature of the array, for example
// "f32[2 4 4 3]". Contents are never printed.
func (a *Dense[T]) String() string {
	return kind.Signature(&a.sh)
}
