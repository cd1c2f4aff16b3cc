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

	"github.com/gabemorgannn/ContextFreeGrammar/cfg/lexer"
	"github.com/gabemorgannn/ContextFreeGrammar/debug"
)

// DefaultEpsilon is the marker the grammar files use for the empty string.
const DefaultEpsilon = "e"

// Grammar is a context free grammar in Chomsky normal form.
//
// Variables and terminals are interned in declaration order, so ids are
// small dense integers and every listing is deterministic. Rules are indexed
// by kind as they are added: terminal rules by their terminal, binary rules
// in a flat list and epsilon rules as a set of variables. Once Freeze is
// called the grammar is read only and safe to share between goroutines.
type Grammar struct {
	epsilon string

	variables   []string
	variableIDs map[string]int
	terminals   []string
	terminalIDs map[string]int
	start       int

	rules     []*Rule
	malformed []*MalformedRuleError
	byLhs     map[int][]*Rule

	terminalRules [][]*Rule
	binaryRules   []*Rule
	epsilonRules  map[int]bool

	frozen        bool
	terminalLexer *lexer.Lexer
}

type Option func(*Grammar)

// WithEpsilon sets the marker used for the empty string.
func WithEpsilon(marker string) Option {
	return func(g *Grammar) {
		if marker != "" {
			g.epsilon = marker
		}
	}
}

func New(opts ...Option) *Grammar {
	g := &Grammar{
		epsilon:      DefaultEpsilon,
		variableIDs:  map[string]int{},
		terminalIDs:  map[string]int{},
		start:        -1,
		byLhs:        map[int][]*Rule{},
		epsilonRules: map[int]bool{},
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Category returns which category name was declared in.
func (g *Grammar) Category(name string) Category {
	switch {
	case name == g.epsilon:
		return EpsilonSymbol
	case g.IsVariable(name):
		return VariableSymbol
	case g.IsTerminal(name):
		return TerminalSymbol
	}
	return UnknownSymbol
}

func (g *Grammar) IsVariable(name string) bool {
	_, ok := g.variableIDs[name]
	return ok
}

func (g *Grammar) IsTerminal(name string) bool {
	_, ok := g.terminalIDs[name]
	return ok
}

// AddVariable declares name as a variable. Declaring it twice is a no-op.
func (g *Grammar) AddVariable(name string) error {
	if g.frozen {
		return ErrFrozen
	}
	switch c := g.Category(name); c {
	case VariableSymbol:
		return nil
	case UnknownSymbol:
	default:
		return &DuplicateDeclarationError{Name: name, Existing: c, Requested: VariableSymbol}
	}
	g.variableIDs[name] = len(g.variables)
	g.variables = append(g.variables, name)
	return nil
}

// AddTerminal declares name as a terminal. The epsilon marker is never a
// terminal, so declaring it is ignored, as is declaring a terminal twice.
func (g *Grammar) AddTerminal(name string) error {
	if g.frozen {
		return ErrFrozen
	}
	switch c := g.Category(name); c {
	case TerminalSymbol, EpsilonSymbol:
		return nil
	case UnknownSymbol:
	default:
		return &DuplicateDeclarationError{Name: name, Existing: c, Requested: TerminalSymbol}
	}
	g.terminalIDs[name] = len(g.terminals)
	g.terminals = append(g.terminals, name)
	g.terminalRules = append(g.terminalRules, nil)
	return nil
}

// SetStart sets the start variable; it must already be declared.
func (g *Grammar) SetStart(name string) error {
	if g.frozen {
		return ErrFrozen
	}
	id, ok := g.variableIDs[name]
	if !ok {
		return &UndeclaredStartError{Name: name}
	}
	if g.start >= 0 && g.start != id {
		return &StartRedeclaredError{Previous: g.variables[g.start], Name: name}
	}
	g.start = id
	return nil
}

// AddRule classifies and stores lhs -> rhs.
//
// The lhs must be a declared variable, anything else is an
// *UndeclaredLhsError and the rule is not recorded. Right hand side tokens
// that aren't declared symbols are split into declared symbols by longest
// match, so `AB` reads as `A B`. A rule that still doesn't resolve, or that
// isn't one of A -> a, A -> B C or A -> ε, is kept out of the rule set and
// returned as a *MalformedRuleError; the grammar stays usable.
func (g *Grammar) AddRule(lhs string, rhs []string) (*Rule, error) {
	if g.frozen {
		return nil, ErrFrozen
	}
	lhsID, ok := g.variableIDs[lhs]
	if !ok {
		return nil, &UndeclaredLhsError{Lhs: lhs, Rhs: rhs}
	}

	r := &Rule{Lhs: lhs, Rhs: rhs, Kind: MalformedRule, lhs: lhsID, left: -1, right: -1, terminal: -1}
	resolved, err := g.resolve(rhs)
	if err != nil {
		return r, g.reject(r, err.Error())
	}
	r.Rhs = resolved
	if reason := g.classify(r); reason != "" {
		return r, g.reject(r, reason)
	}

	for _, existing := range g.byLhs[lhsID] {
		if existing.sameAs(r) {
			return existing, nil
		}
	}
	g.rules = append(g.rules, r)
	g.byLhs[lhsID] = append(g.byLhs[lhsID], r)
	switch r.Kind {
	case TerminalRule:
		g.terminalRules[r.terminal] = append(g.terminalRules[r.terminal], r)
	case BinaryRule:
		g.binaryRules = append(g.binaryRules, r)
	case EpsilonRule:
		g.epsilonRules[lhsID] = true
	}
	return r, nil
}

func (g *Grammar) reject(r *Rule, reason string) error {
	err := &MalformedRuleError{Rule: r, Reason: reason}
	g.malformed = append(g.malformed, err)
	debug.Debugf("skipping %v\n", err)
	return err
}

// resolve maps raw tokens onto declared symbols.
func (g *Grammar) resolve(rhs []string) ([]string, error) {
	var resolved []string
	var symbols *lexer.Lexer
	for _, tok := range rhs {
		if g.Category(tok) != UnknownSymbol {
			resolved = append(resolved, tok)
			continue
		}
		if symbols == nil {
			names := make([]string, 0, len(g.variables)+len(g.terminals))
			names = append(names, g.variables...)
			names = append(names, g.terminals...)
			symbols = lexer.New(names...)
		}
		split, err := symbols.Tokenize(tok)
		if err != nil {
			return nil, fmt.Errorf("unresolved symbol %q: %v", tok, err)
		}
		resolved = append(resolved, split.Vals()...)
	}
	return resolved, nil
}

// classify sets the kind and ids of r, or returns why it isn't CNF.
func (g *Grammar) classify(r *Rule) string {
	switch len(r.Rhs) {
	case 0:
		return "empty right hand side"
	case 1:
		switch s := r.Rhs[0]; g.Category(s) {
		case TerminalSymbol:
			r.Kind, r.terminal = TerminalRule, g.terminalIDs[s]
			return ""
		case EpsilonSymbol:
			r.Kind = EpsilonRule
			return ""
		default:
			return "unit rules are not allowed in CNF"
		}
	case 2:
		b, okB := g.variableIDs[r.Rhs[0]]
		c, okC := g.variableIDs[r.Rhs[1]]
		if !okB || !okC {
			return "a two symbol right hand side must be two variables"
		}
		r.Kind, r.left, r.right = BinaryRule, b, c
		return ""
	}
	return fmt.Sprintf("right hand side has %d symbols, CNF allows at most 2", len(r.Rhs))
}

// Validate checks the grammar is usable for membership queries.
func (g *Grammar) Validate() error {
	if g.start < 0 {
		return ErrNoStart
	}
	return nil
}

// Freeze makes the grammar read only and caches the terminal lexer.
func (g *Grammar) Freeze() {
	if g.frozen {
		return
	}
	g.terminalLexer = lexer.New(g.terminals...)
	g.frozen = true
}

func (g *Grammar) Frozen() bool {
	return g.frozen
}

// TerminalLexer splits candidate strings into terminals.
func (g *Grammar) TerminalLexer() *lexer.Lexer {
	if g.terminalLexer != nil {
		return g.terminalLexer
	}
	return lexer.New(g.terminals...)
}

func (g *Grammar) Epsilon() string {
	return g.epsilon
}

func (g *Grammar) Variables() []string {
	return append([]string(nil), g.variables...)
}

func (g *Grammar) Terminals() []string {
	return append([]string(nil), g.terminals...)
}

// Start returns the start variable, or "" if none was set.
func (g *Grammar) Start() string {
	if g.start < 0 {
		return ""
	}
	return g.variables[g.start]
}

// StartID returns the interned id of the start variable, or -1.
func (g *Grammar) StartID() int {
	return g.start
}

func (g *Grammar) NumVariables() int {
	return len(g.variables)
}

// VariableName returns the name interned as id.
func (g *Grammar) VariableName(id int) string {
	return g.variables[id]
}

func (g *Grammar) TerminalID(name string) (int, bool) {
	id, ok := g.terminalIDs[name]
	return id, ok
}

// Rules returns the accepted rules in the order they were added.
func (g *Grammar) Rules() []*Rule {
	return append([]*Rule(nil), g.rules...)
}

// Malformed returns the rules that were left out, in the order they were added.
func (g *Grammar) Malformed() []*MalformedRuleError {
	return append([]*MalformedRuleError(nil), g.malformed...)
}

// RulesByLhs returns the rules for variable in grammar order.
func (g *Grammar) RulesByLhs(variable string) []*Rule {
	id, ok := g.variableIDs[variable]
	if !ok {
		return nil
	}
	return append([]*Rule(nil), g.byLhs[id]...)
}

// TerminalRules returns every rule A -> a for the terminal with id a.
func (g *Grammar) TerminalRules(terminal int) []*Rule {
	if terminal < 0 || terminal >= len(g.terminalRules) {
		return nil
	}
	return g.terminalRules[terminal]
}

// BinaryRules returns every rule A -> B C.
func (g *Grammar) BinaryRules() []*Rule {
	return g.binaryRules
}

// IsEpsilonDerivable reports whether variable -> ε is a rule.
func (g *Grammar) IsEpsilonDerivable(variable string) bool {
	id, ok := g.variableIDs[variable]
	return ok && g.epsilonRules[id]
}
