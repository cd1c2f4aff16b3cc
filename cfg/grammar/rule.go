/*
Copyright 2020 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package grammar

import (
	"fmt"
	"strings"
)

// Category partitions symbol names. It is fixed when the name is declared.
type Category string

const (
	UnknownSymbol  Category = "unknown"
	VariableSymbol Category = "variable"
	TerminalSymbol Category = "terminal"
	EpsilonSymbol  Category = "epsilon"
)

// RuleKind is the shape of a rule's right hand side.
type RuleKind string

const (
	// A -> a
	TerminalRule RuleKind = "terminal"
	// A -> B C
	BinaryRule RuleKind = "binary"
	// A -> ε
	EpsilonRule RuleKind = "epsilon"
	// anything else
	MalformedRule RuleKind = "malformed"
)

// Rule is a single production. The kind and the interned ids are computed
// once by Grammar.AddRule and never change.
type Rule struct {
	Lhs  string
	Rhs  []string
	Kind RuleKind

	lhs int
	// variable ids for BinaryRule
	left, right int
	// terminal id for TerminalRule
	terminal int
}

// LhsID is the interned id of the left hand side variable.
func (r *Rule) LhsID() int {
	return r.lhs
}

// Operands returns the variable ids B and C of a rule A -> B C.
func (r *Rule) Operands() (int, int) {
	return r.left, r.right
}

// TerminalID returns the interned id of a in A -> a.
func (r *Rule) TerminalID() int {
	return r.terminal
}

func (r *Rule) String() string {
	return fmt.Sprintf("%v -> %v", r.Lhs, strings.Join(r.Rhs, " "))
}

func (r *Rule) sameAs(o *Rule) bool {
	if r.Kind != o.Kind || r.lhs != o.lhs {
		return false
	}
	switch r.Kind {
	case TerminalRule:
		return r.terminal == o.terminal
	case BinaryRule:
		return r.left == o.left && r.right == o.right
	case EpsilonRule:
		return true
	}
	return false
}
