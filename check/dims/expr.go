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

package dims

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

type tokenKind int

const (
	literalToken tokenKind = iota
	namedToken
	wildcardToken
	ellipsisToken
)

type token struct {
	kind tokenKind
	name string
	size int
}

// Expr is a parsed dimension expression. Expressions are parsed once, when a
// specification is constructed, and reused across calls.
type Expr struct {
	str      string
	tokens   []token
	ellipsis int
}

// Parse a dimension expression. Tokens are separated by whitespace and are
// either non-negative integer literals, dimension variable names, the "_"
// wildcard matching a single dimension of any size, or the "..." ellipsis
// matching zero or more dimensions. At most one ellipsis is allowed.
func Parse(expr string) (*Expr, error) {
	e := &Expr{str: expr, ellipsis: -1}
	for _, field := range strings.Fields(expr) {
		switch {
		case field == "...":
			if e.ellipsis >= 0 {
				return nil, errors.Errorf("dimension expression %q has more than one ellipsis", expr)
			}
			e.ellipsis = len(e.tokens)
			e.tokens = append(e.tokens, token{kind: ellipsisToken})
		case field == "_":
			e.tokens = append(e.tokens, token{kind: wildcardToken})
		case isInteger(field):
			size, err := strconv.Atoi(field)
			if err != nil {
				return nil, errors.Errorf("cannot parse dimension %q in %q: %v", field, expr, err)
			}
			e.tokens = append(e.tokens, token{kind: literalToken, size: size})
		case isName(field):
			e.tokens = append(e.tokens, token{kind: namedToken, name: field})
		default:
			return nil, errors.Errorf("invalid dimension token %q in %q", field, expr)
		}
	}
	return e, nil
}

// MustParse parses an expression and panics on error. For expressions known
// valid at definition time.
func MustParse(expr string) *Expr {
	e, err := Parse(expr)
	if err != nil {
		panic(err)
	}
	return e
}

// String returns the expression as it was written.
func (e *Expr) String() string {
	return e.str
}

// Rank returns the number of dimensions the expression requires. With an
// ellipsis, this is a minimum.
func (e *Expr) Rank() int {
	if e.ellipsis >= 0 {
		return len(e.tokens) - 1
	}
	return len(e.tokens)
}

// HasEllipsis reports if the expression contains the ellipsis token.
func (e *Expr) HasEllipsis() bool {
	return e.ellipsis >= 0
}

// Match the concrete axis lengths of a value against the expression. Named
// tokens bind through the memo. All tokens must match for success: a length
// mismatch between the shape and the token count is an immediate failure.
func (e *Expr) Match(axes []int, memo *Memo) error {
	run := 0
	if e.ellipsis >= 0 {
		numFixed := len(e.tokens) - 1
		if len(axes) < numFixed {
			return errors.Errorf("shape %v has %d axes but %q expects at least %d", axes, len(axes), e.str, numFixed)
		}
		run = len(axes) - numFixed
	} else if len(axes) != len(e.tokens) {
		return errors.Errorf("shape %v has %d axes but %q expects %d", axes, len(axes), e.str, len(e.tokens))
	}
	var elided []int
	ai := 0
	for _, tok := range e.tokens {
		if tok.kind == ellipsisToken {
			elided = axes[ai : ai+run]
			ai += run
			continue
		}
		axis := axes[ai]
		switch tok.kind {
		case literalToken:
			if axis != tok.size {
				return errors.Errorf("axis %d has length %d but %q expects %d", ai, axis, e.str, tok.size)
			}
		case namedToken:
			if err := memo.Unify(tok.name, axis); err != nil {
				return err
			}
		case wildcardToken:
			// Matches any size without binding.
		}
		ai++
	}
	if e.ellipsis >= 0 {
		return memo.UnifyEllipsis(elided)
	}
	return nil
}

func isInteger(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(s) > 0
}

func isName(s string) bool {
	for i, r := range s {
		if unicode.IsLetter(r) || r == '_' {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return len(s) > 0
}
