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

package kind

import (
	"fmt"

	"github.com/gx-org/backend/dtype"
	"github.com/gx-org/backend/shape"
)

// Array is the contract every checked value must satisfy, whatever its
// backend: a shape carrying the dtype and the axis lengths.
type Array interface {
	Shape() *shape.Shape
}

// ShapeOf returns the shape of an array-like value.
func ShapeOf(value any) (*shape.Shape, bool) {
	array, ok := value.(Array)
	if !ok {
		return nil, false
	}
	return array.Shape(), true
}

// DTypeName returns the canonical name of a data type, the form dtype
// constraints in specifications are matched against.
func DTypeName(dt dtype.DataType) string {
	switch dt {
	case dtype.Bool:
		return "bool"
	case dtype.Int32:
		return "int32"
	case dtype.Int64:
		return "int64"
	case dtype.Uint32:
		return "uint32"
	case dtype.Uint64:
		return "uint64"
	case dtype.Float32:
		return "float32"
	case dtype.Float64:
		return "float64"
	case dtype.Bfloat16:
		return "bfloat16"
	}
	return dt.String()
}

func shortDTypeName(dt dtype.DataType) string {
	switch dt {
	case dtype.Bool:
		return "bool"
	case dtype.Int32:
		return "i32"
	case dtype.Int64:
		return "i64"
	case dtype.Uint32:
		return "u32"
	case dtype.Uint64:
		return "u64"
	case dtype.Float32:
		return "f32"
	case dtype.Float64:
		return "f64"
	case dtype.Bfloat16:
		return "bf16"
	}
	return dt.String()
}

// Signature returns the compact signature of a shape, for example
// "f32[2 4 4 3]". Used to render array values in diagnostics without
// printing their contents.
func Signature(sh *shape.Shape) string {
	return fmt.Sprintf("%s%v", shortDTypeName(sh.DType), sh.AxisLengths)
}
