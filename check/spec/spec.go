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

// Package spec declares array specifications: which backend kinds, dtypes
// and shapes a parameter or return value accepts.
//
// Specifications are built once, when a function signature is declared, and
// are immutable afterwards. Constructors cover the common dtype families:
//
//	spec.F32("b h w 3")          // float32 array
//	spec.Float("b c")            // any float dtype, bfloat16 included
//	spec.Num("... d")            // any numeric dtype
//	spec.OneOf(spec.F32("b c"), spec.I32("b c"))
package spec

import (
	"fmt"
	"strings"

	"github.com/gx-org/backend/dtype"
	"github.com/gx-org/shapecheck/check/dims"
	"github.com/gx-org/shapecheck/check/kind"
	"github.com/pkg/errors"
)

// Spec is an immutable array specification: a set of acceptable backend
// kinds, a set of dtype constraints and a dimension expression.
type Spec struct {
	name   string
	kinds  []kind.Kind
	dtypes []DTypeConstraint
	expr   *dims.Expr
}

// Option configures a specification at construction time.
type Option func(*Spec)

// WithName sets the display name used when the specification is rendered in
// diagnostics (for example "f32").
func WithName(name string) Option {
	return func(s *Spec) {
		s.name = name
	}
}

// WithKinds restricts the specification to the given backend kinds. Without
// this option any registered backend is acceptable.
func WithKinds(kinds ...kind.Kind) Option {
	return func(s *Spec) {
		s.kinds = append([]kind.Kind{}, kinds...)
	}
}

// WithDTypes adds dtype constraints. A value matches if its dtype satisfies
// any of them. Without constraints any dtype is acceptable.
func WithDTypes(constraints ...DTypeConstraint) Option {
	return func(s *Spec) {
		s.dtypes = append(s.dtypes, constraints...)
	}
}

// New returns a specification for a dimension expression. The expression is
// parsed here, once, not at every call.
func New(dimExpr string, opts ...Option) (*Spec, error) {
	expr, err := dims.Parse(dimExpr)
	if err != nil {
		return nil, errors.Errorf("invalid array specification: %v", err)
	}
	s := &Spec{name: "array", expr: expr}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func mustNew(dimExpr string, opts ...Option) *Spec {
	s, err := New(dimExpr, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// ArrayAny returns a specification accepting any dtype.
func ArrayAny(dimExpr string, opts ...Option) *Spec {
	return mustNew(dimExpr, opts...)
}

// F32 returns a float32 array specification.
func F32(dimExpr string, opts ...Option) *Spec {
	return dtypeSpec(dimExpr, "f32", ExactDType("float32"), opts)
}

// F64 returns a float64 array specification.
func F64(dimExpr string, opts ...Option) *Spec {
	return dtypeSpec(dimExpr, "f64", ExactDType("float64"), opts)
}

// BF16 returns a bfloat16 array specification.
func BF16(dimExpr string, opts ...Option) *Spec {
	return dtypeSpec(dimExpr, "bf16", ExactDType("bfloat16"), opts)
}

// I32 returns an int32 array specification.
func I32(dimExpr string, opts ...Option) *Spec {
	return dtypeSpec(dimExpr, "i32", ExactDType("int32"), opts)
}

// I64 returns an int64 array specification.
func I64(dimExpr string, opts ...Option) *Spec {
	return dtypeSpec(dimExpr, "i64", ExactDType("int64"), opts)
}

// U32 returns a uint32 array specification.
func U32(dimExpr string, opts ...Option) *Spec {
	return dtypeSpec(dimExpr, "u32", ExactDType("uint32"), opts)
}

// U64 returns a uint64 array specification.
func U64(dimExpr string, opts ...Option) *Spec {
	return dtypeSpec(dimExpr, "u64", ExactDType("uint64"), opts)
}

// Bool returns a bool array specification.
func Bool(dimExpr string, opts ...Option) *Spec {
	return dtypeSpec(dimExpr, "bool", ExactDType("bool"), opts)
}

// Float returns a specification accepting any float dtype, bfloat16
// included.
func Float(dimExpr string, opts ...Option) *Spec {
	return dtypeSpec(dimExpr, "float", PatternDType(floatDTypes), opts)
}

// Int returns a specification accepting any signed integer dtype.
func Int(dimExpr string, opts ...Option) *Spec {
	return dtypeSpec(dimExpr, "int", PatternDType(intDTypes), opts)
}

// UInt returns a specification accepting any unsigned integer dtype.
func UInt(dimExpr string, opts ...Option) *Spec {
	return dtypeSpec(dimExpr, "uint", PatternDType(uintDTypes), opts)
}

// Num returns a specification accepting any numeric dtype.
func Num(dimExpr string, opts ...Option) *Spec {
	return dtypeSpec(dimExpr, "num", PatternDType(numDTypes), opts)
}

func dtypeSpec(dimExpr, name string, constraint DTypeConstraint, opts []Option) *Spec {
	all := append([]Option{WithName(name), WithDTypes(constraint)}, opts...)
	return mustNew(dimExpr, all...)
}

// Dims returns the parsed dimension expression.
func (s *Spec) Dims() *dims.Expr {
	return s.expr
}

// Kinds returns the acceptable backend kinds. Nil means any registered
// backend.
func (s *Spec) Kinds() []kind.Kind {
	return s.kinds
}

// AcceptsKind reports whether a backend kind is acceptable.
func (s *Spec) AcceptsKind(k kind.Kind) bool {
	if s.kinds == nil {
		return true
	}
	for _, accepted := range s.kinds {
		if accepted == k {
			return true
		}
	}
	return false
}

// AcceptsDType reports whether a dtype satisfies the specification.
func (s *Spec) AcceptsDType(dt dtype.DataType) bool {
	if s.dtypes == nil {
		return true
	}
	name := kind.DTypeName(dt)
	for _, constraint := range s.dtypes {
		if constraint.Matches(name) {
			return true
		}
	}
	return false
}

// DTypeNames describes the acceptable dtypes for diagnostics.
func (s *Spec) DTypeNames() []string {
	if s.dtypes == nil {
		return []string{"any"}
	}
	names := make([]string, len(s.dtypes))
	for i, constraint := range s.dtypes {
		names[i] = constraint.String()
	}
	return names
}

// KindNames describes the acceptable backend kinds for diagnostics.
func (s *Spec) KindNames() []string {
	kinds := s.kinds
	if kinds == nil {
		kinds = kind.Registered()
	}
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return names
}

// String renders the specification, for example "f32[b h w 3]".
func (s *Spec) String() string {
	return fmt.Sprintf("%s[%s]", s.name, s.expr.String())
}

// Union is an ordered list of alternative specifications. A value matching
// any member is accepted; resolution is deterministic, always picking the
// first fully matching member.
type Union struct {
	specs []*Spec
}

// OneOf returns the union of the given specifications.
func OneOf(specs ...*Spec) *Union {
	if len(specs) == 0 {
		panic(errors.New("union of no array specifications"))
	}
	return &Union{specs: append([]*Spec{}, specs...)}
}

// Specs returns the members in declaration order.
func (u *Union) Specs() []*Spec {
	return u.specs
}

// String renders the union, for example "f32[b c] | i32[b c]".
func (u *Union) String() string {
	members := make([]string, len(u.specs))
	for i, s := range u.specs {
		members[i] = s.String()
	}
	return strings.Join(members, " | ")
}
