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

// Package kind identifies the backend an array value belongs to.
//
// Unrelated array representations (host buffers, device handles, user
// wrappers) are told apart by a registry mapping a kind name to a predicate,
// so that no common base type is required across backends. The registry is
// populated at init time and is read-only once checked calls start.
package kind

// Kind names an array backend, for example "host".
type Kind string

// Predicate reports whether a value belongs to a backend.
type Predicate func(value any) bool

type entry struct {
	kind Kind
	pred Predicate
}

var registry []entry

// Register a backend kind. Kinds registered later take precedence in Of,
// letting a more specific backend claim values ahead of a general one.
func Register(k Kind, pred Predicate) {
	registry = append(registry, entry{kind: k, pred: pred})
}

// Of returns the backend kind of a value. Returns false if no registered
// backend claims the value, that is if the value is not array-like.
func Of(value any) (Kind, bool) {
	for i := len(registry) - 1; i >= 0; i-- {
		if registry[i].pred(value) {
			return registry[i].kind, true
		}
	}
	return "", false
}

// Registered returns all backend kinds in registration order.
func Registered() []Kind {
	kinds := make([]Kind, len(registry))
	for i, e := range registry {
		kinds[i] = e.kind
	}
	return kinds
}
