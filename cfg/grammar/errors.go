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
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrFrozen is returned by every mutating call once Freeze has been called.
	ErrFrozen = errors.New("grammar is frozen")
	// ErrNoStart is returned by Validate when no start variable was set.
	ErrNoStart = errors.New("grammar has no start variable")
)

// DuplicateDeclarationError means a name was declared in two categories.
type DuplicateDeclarationError struct {
	Name      string
	Existing  Category
	Requested Category
}

func (e *DuplicateDeclarationError) Error() string {
	return fmt.Sprintf("symbol %q is already declared as %v, cannot declare it as %v", e.Name, e.Existing, e.Requested)
}

// UndeclaredLhsError means a rule's left hand side is not a declared variable.
type UndeclaredLhsError struct {
	Lhs string
	Rhs []string
}

func (e *UndeclaredLhsError) Error() string {
	return fmt.Sprintf("rule %v -> %v: left hand side is not a declared variable", e.Lhs, strings.Join(e.Rhs, " "))
}

// UndeclaredStartError means the start symbol is not a declared variable.
type UndeclaredStartError struct {
	Name string
}

func (e *UndeclaredStartError) Error() string {
	return fmt.Sprintf("start symbol %q is not a declared variable", e.Name)
}

// StartRedeclaredError means a second, different start variable was set.
type StartRedeclaredError struct {
	Previous string
	Name     string
}

func (e *StartRedeclaredError) Error() string {
	return fmt.Sprintf("start variable is already %q, cannot change it to %q", e.Previous, e.Name)
}

// MalformedRuleError describes a rule that was left out of the grammar. It is
// recoverable: the rest of the grammar stays usable.
type MalformedRuleError struct {
	Rule   *Rule
	Reason string
}

func (e *MalformedRuleError) Error() string {
	return fmt.Sprintf("malformed rule %v: %v", e.Rule, e.Reason)
}
