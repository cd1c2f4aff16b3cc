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

package lexer

// Symbols in a grammar are not guaranteed to be a single character, so
// splitting text into symbols is a greedy longest-match over the declared
// names. The same lexer splits candidate strings (over terminals) and the
// unspaced right hand sides of rules like `S -> AB` (over every symbol).

import (
	"fmt"
	"sort"
	"strings"
)

type Tokens []Token

func (ts Tokens) Vals() []string {
	v := make([]string, len(ts))
	for i, t := range ts {
		v[i] = t.Val
	}
	return v
}

func (ts Tokens) String() string {
	return strings.Join(ts.Vals(), "|")
}

// Token is a single matched symbol and the byte range it covers in the input.
type Token struct {
	StartPos int
	EndPos   int
	Val      string
}

func (t Token) String() string {
	return fmt.Sprintf("Token.Val(%v) StartEnd[%v:%v]", t.Val, t.StartPos, t.EndPos)
}

// UnrecognizedSymbolError is returned when no symbol matches the input at
// Position.
type UnrecognizedSymbolError struct {
	Input    string
	Position int
}

func (e *UnrecognizedSymbolError) Error() string {
	return fmt.Sprintf("no symbol matches %q at position %d", e.Input[e.Position:], e.Position)
}

// Lexer holds the candidate symbols longest first.
type Lexer struct {
	candidates []string
}

// New builds a lexer over names. Empty and duplicate names are dropped.
func New(names ...string) *Lexer {
	seen := make(map[string]bool, len(names))
	candidates := make([]string, 0, len(names))
	for _, n := range names {
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		candidates = append(candidates, n)
	}
	sort.Slice(candidates, func(i, j int) bool {
		if len(candidates[i]) != len(candidates[j]) {
			return len(candidates[i]) > len(candidates[j])
		}
		return candidates[i] < candidates[j]
	})
	return &Lexer{candidates: candidates}
}

// Candidates returns the symbols in the order they are tried.
func (l *Lexer) Candidates() []string {
	out := make([]string, len(l.candidates))
	copy(out, l.candidates)
	return out
}

// Tokenize splits input into symbols. At every position the first (longest)
// candidate that matches is consumed; there is no backtracking.
func (l *Lexer) Tokenize(input string) (Tokens, error) {
	if input == "" {
		return Tokens{}, nil
	}
	var tokens Tokens
	for pos := 0; pos < len(input); {
		match := l.match(input[pos:])
		if match == "" {
			return tokens, &UnrecognizedSymbolError{Input: input, Position: pos}
		}
		tokens = append(tokens, Token{StartPos: pos, EndPos: pos + len(match), Val: match})
		pos += len(match)
	}
	return tokens, nil
}

func (l *Lexer) match(rest string) string {
	for _, c := range l.candidates {
		if strings.HasPrefix(rest, c) {
			return c
		}
	}
	return ""
}
