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

package spec

import "regexp"

// DTypeConstraint accepts or rejects a dtype given its canonical name
// (see kind.DTypeName). A specification with no constraints accepts any
// dtype.
type DTypeConstraint interface {
	// Matches reports whether a dtype name satisfies the constraint.
	Matches(name string) bool
	// String describes the constraint in diagnostics.
	String() string
}

type exactDType string

func (c exactDType) Matches(name string) bool {
	return string(c) == name
}

func (c exactDType) String() string {
	return string(c)
}

// ExactDType returns a constraint matching one dtype name exactly.
func ExactDType(name string) DTypeConstraint {
	return exactDType(name)
}

type patternDType struct {
	re *regexp.Regexp
}

func (c patternDType) Matches(name string) bool {
	return c.re.MatchString(name)
}

func (c patternDType) String() string {
	return c.re.String()
}

// PatternDType returns a constraint matching dtype names against a regular
// expression.
func PatternDType(re *regexp.Regexp) DTypeConstraint {
	return patternDType{re: re}
}

var (
	floatDTypes = regexp.MustCompile(`^b?float[0-9]+$`)
	intDTypes   = regexp.MustCompile(`^int[0-9]+$`)
	uintDTypes  = regexp.MustCompile(`^uint[0-9]+$`)
	numDTypes   = regexp.MustCompile(`^(u?int|b?float)[0-9]+$`)
)
