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
	"strings"
	"testing"

	"github.com/gx-org/shapecheck/arrays"
)

type opaque struct {
	payload string
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		value any
		want  string
	}{
		{value: nil, want: "nil"},
		{value: true, want: "true"},
		{value: "hello", want: `"hello"`},
		{value: 42, want: "42"},
		{value: 4.2, want: "4.2"},
		{value: arrays.F32(make([]float32, 50), 5, 10), want: "f32[5 10]"},
		{value: opaque{payload: "short"}, want: "{short}"},
		{value: opaque{payload: strings.Repeat("x", 100)}, want: "check.opaque"},
	}
	for _, test := range tests {
		if got := formatValue(test.value); got != test.want {
			t.Errorf("formatValue(%v) = %q but want %q", test.value, got, test.want)
		}
	}
}

func TestFormatReturn(t *testing.T) {
	tests := []struct {
		value any
		want  string
	}{
		{
			value: map[string]any{"loss": 0.5, "logits": arrays.F32(make([]float32, 10), 10)},
			want:  "  logits : f32[10]\n  loss : 0.5",
		},
		{
			value: []any{arrays.F32(make([]float32, 10), 10), 7},
			want:  "  [0] : f32[10]\n  [1] : 7",
		},
		{
			value: arrays.I32(make([]int32, 3), 3),
			want:  "  i32[3]",
		},
	}
	for _, test := range tests {
		if got := formatReturn(test.value); got != test.want {
			t.Errorf("formatReturn(%v) = %q but want %q", test.value, got, test.want)
		}
	}
}
