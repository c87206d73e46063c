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

// Package check verifies array shapes and dtypes at function-call
// boundaries.
//
// A function declares its parameters and return value once, as a Signature
// whose annotations are array specifications (see package spec). Calling
// the function through a Func validates every annotated argument, invokes
// the wrapped implementation with the arguments untouched, then validates
// the returned value. Dimension variables are shared across all parameters
// and the return value of one call: a dimension bound by one argument
// constrains every later use within the same call, and nothing leaks
// between calls.
//
//	sig, _ := check.NewSignature("crop",
//		[]check.Param{
//			{Name: "img", Annotation: spec.F32("b h w 3")},
//			{Name: "mask", Annotation: spec.Bool("b h w")},
//		},
//		spec.F32("b _ _ 3"))
//	crop := check.NewFunc(sig, func(args []any) (any, error) { ... })
//	out, err := crop.Call([]any{img, mask})
//
// On mismatch, err is a *Error carrying the bound arguments, the return
// value if the function ran, and the inferred dimension bindings.
package check

import (
	"fmt"
	"sort"

	"github.com/gx-org/shapecheck/check/dims"
	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
)

// enabled is the process-wide switch. It is read once at call entry and
// never during a call; flipping it mid-call does not affect calls already
// entered. It is a coarse debug switch, not a synchronized resource.
var enabled = true

// Enabled reports whether checking is enabled process-wide.
func Enabled() bool {
	return enabled
}

// SetEnabled turns checking on or off process-wide. Disabled calls invoke
// the wrapped function directly, with no validation of any kind.
func SetEnabled(on bool) {
	enabled = on
}

type callSettings struct {
	on bool
}

// CallOption adjusts how one call is checked.
type CallOption func(*callSettings)

// WithChecking forces checking on or off for one call, regardless of the
// process-wide switch.
func WithChecking(on bool) CallOption {
	return func(s *callSettings) {
		s.on = on
	}
}

// Param declares one parameter of a checked function.
type Param struct {
	// Name of the parameter.
	Name string
	// Annotation declares what the parameter accepts (see Any). Nil means
	// unchecked.
	Annotation any
	// Default is the value bound when the caller omits the parameter.
	// Meaningful only if HasDefault.
	Default any
	// HasDefault marks the parameter optional.
	HasDefault bool
}

// Signature describes a checked function: its ordered parameters and its
// return annotation. Signatures are built once, at definition time, so
// calls never introspect the function.
type Signature struct {
	name    string
	params  []Param
	ret     any
	indices map[string]int
}

// NewSignature validates and returns a signature. The return annotation may
// be Any or nil for an unchecked return value.
func NewSignature(name string, params []Param, ret any) (*Signature, error) {
	sig := &Signature{
		name:    name,
		params:  append([]Param{}, params...),
		ret:     ret,
		indices: make(map[string]int),
	}
	seenDefault := false
	for i, param := range sig.params {
		if param.Name == "" {
			return nil, errors.Errorf("%s: parameter %d has no name", name, i)
		}
		if _, dup := sig.indices[param.Name]; dup {
			return nil, errors.Errorf("%s: duplicate parameter %q", name, param.Name)
		}
		sig.indices[param.Name] = i
		if err := validAnnotation(param.Annotation); err != nil {
			return nil, errors.Errorf("%s: parameter %q: %v", name, param.Name, err)
		}
		if param.HasDefault {
			seenDefault = true
		} else if seenDefault {
			return nil, errors.Errorf("%s: required parameter %q follows an optional parameter", name, param.Name)
		}
	}
	if err := validAnnotation(ret); err != nil {
		return nil, errors.Errorf("%s: return annotation: %v", name, err)
	}
	return sig, nil
}

// MustSignature builds a signature and panics on error. For signatures
// known valid at definition time.
func MustSignature(name string, params []Param, ret any) *Signature {
	sig, err := NewSignature(name, params, ret)
	if err != nil {
		panic(err)
	}
	return sig
}

// Name of the function.
func (s *Signature) Name() string {
	return s.name
}

// Params returns the parameters in declaration order.
func (s *Signature) Params() []Param {
	return s.params
}

// Return returns the return annotation.
func (s *Signature) Return() any {
	return s.ret
}

// bind maps positional and named argument values to parameters, applying
// defaults for omitted optional parameters.
func (s *Signature) bind(pos []any, named map[string]any) ([]any, error) {
	if len(pos) > len(s.params) {
		return nil, errors.Errorf("%s takes %d parameters but got %d positional arguments", s.name, len(s.params), len(pos))
	}
	args := make([]any, len(s.params))
	set := make([]bool, len(s.params))
	for i, value := range pos {
		args[i] = value
		set[i] = true
	}
	names := maps.Keys(named)
	sort.Strings(names)
	for _, name := range names {
		i, ok := s.indices[name]
		if !ok {
			return nil, errors.Errorf("%s got an unexpected keyword argument %q", s.name, name)
		}
		if set[i] {
			return nil, errors.Errorf("%s got multiple values for parameter %q", s.name, name)
		}
		args[i] = named[name]
		set[i] = true
	}
	for i, param := range s.params {
		if set[i] {
			continue
		}
		if !param.HasDefault {
			return nil, errors.Errorf("%s missing required argument %q", s.name, param.Name)
		}
		args[i] = param.Default
	}
	return args, nil
}

// Func wraps an implementation with a signature so that calls are verified.
type Func struct {
	sig  *Signature
	impl func(args []any) (any, error)
}

// NewFunc returns a checked function. The implementation receives the bound
// argument values in parameter order.
func NewFunc(sig *Signature, impl func(args []any) (any, error)) *Func {
	return &Func{sig: sig, impl: impl}
}

// Signature returns the declared signature.
func (f *Func) Signature() *Signature {
	return f.sig
}

// Call invokes the function with positional arguments. See CallNamed.
func (f *Func) Call(pos []any, opts ...CallOption) (any, error) {
	return f.CallNamed(pos, nil, opts...)
}

// CallNamed binds positional and named arguments to the signature, checks
// every annotated argument against one shared memo, invokes the wrapped
// implementation with the arguments untouched, then checks the returned
// value on the same memo. Argument checking is fail-fast: the first
// mismatching parameter aborts the call. On success the implementation's
// return value is handed back as is, never copied or rewrapped.
func (f *Func) CallNamed(pos []any, named map[string]any, opts ...CallOption) (any, error) {
	settings := callSettings{on: enabled}
	for _, opt := range opts {
		opt(&settings)
	}
	args, err := f.sig.bind(pos, named)
	if err != nil {
		return nil, &Error{
			kind:   KindSignature,
			msg:    err.Error(),
			retAnn: f.sig.ret,
			memo:   dims.NewMemo(),
			cause:  err,
		}
	}
	if !settings.on {
		return f.impl(args)
	}
	memo := dims.NewMemo()
	for i, param := range f.sig.params {
		memo.SetOrigin(param.Name)
		kd, cerr := checkAnnotation(param.Annotation, args[i], memo)
		if cerr != nil {
			msg := fmt.Sprintf("parameter %q %v", param.Name, cerr)
			return nil, f.newError(kd, msg, args, memo, nil, false, cerr)
		}
	}
	ret, err := f.impl(args)
	if err != nil {
		return ret, err
	}
	memo.SetOrigin("return")
	kd, cerr := checkAnnotation(f.sig.ret, ret, memo)
	if cerr != nil {
		msg := fmt.Sprintf("return value %v", cerr)
		return nil, f.newError(kd, msg, args, memo, ret, true, cerr)
	}
	return ret, nil
}

func (f *Func) newError(kd Kind, msg string, args []any, memo *dims.Memo, ret any, retProduced bool, cause error) *Error {
	bound := make([]Argument, len(f.sig.params))
	for i, param := range f.sig.params {
		bound[i] = Argument{Name: param.Name, Annotation: param.Annotation, Value: args[i]}
	}
	return &Error{
		kind:        kd,
		msg:         msg,
		args:        bound,
		retValue:    ret,
		retProduced: retProduced,
		retAnn:      f.sig.ret,
		memo:        memo,
		cause:       cause,
	}
}
