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

package cyk

// The CYK algorithm decides membership bottom up. Given the tokens
//      w[0] ... w[n-1]
// the chart cell (i, j) collects every variable that derives w[i..j].
// Length one spans come straight from the terminal rules A -> a. A longer
// span (i, j) gets A whenever some split k has B in (i, k) and C in
// (k+1, j) for a rule A -> B C. The string is in the language iff the
// start variable ends up in (0, n-1).
//
// The empty string never touches the chart: it is accepted iff the start
// variable has an epsilon rule.
//
// Every query builds its own chart and only reads the grammar, so a frozen
// grammar can serve any number of concurrent queries.

import (
	"errors"

	"github.com/gabemorgannn/ContextFreeGrammar/cfg/grammar"
	"github.com/gabemorgannn/ContextFreeGrammar/cfg/lexer"
	"github.com/gabemorgannn/ContextFreeGrammar/debug"
)

// Result is the outcome of a single membership query.
type Result struct {
	Input    string
	Accepted bool
	// Tokens is the segmentation of Input into terminals. It is partial when
	// tokenization failed.
	Tokens []string
	// Err is the *lexer.UnrecognizedSymbolError that rejected Input before
	// the chart was built, if any.
	Err error
}

// Unrecognized reports whether the input was rejected because it couldn't be
// split into terminals, rather than because the grammar doesn't derive it.
func (r Result) Unrecognized() bool {
	var unrecognized *lexer.UnrecognizedSymbolError
	return errors.As(r.Err, &unrecognized)
}

// Accepts reports whether g derives input. It never fails: input that cannot
// be tokenized is simply rejected.
func Accepts(g *grammar.Grammar, input string) bool {
	return Recognize(g, input).Accepted
}

// Recognize runs the membership query and keeps the details of the decision.
func Recognize(g *grammar.Grammar, input string) Result {
	res := Result{Input: input}
	tokens, err := g.TerminalLexer().Tokenize(input)
	res.Tokens = tokens.Vals()
	if err != nil {
		debug.Debugf("rejecting %q: %v\n", input, err)
		res.Err = err
		return res
	}
	start := g.StartID()
	if start < 0 {
		return res
	}

	n := len(tokens)
	if n == 0 {
		res.Accepted = g.IsEpsilonDerivable(g.Start())
		return res
	}

	t := newTable(n, g.NumVariables())
	for i, tok := range tokens {
		// every token came out of the terminal lexer, so it is a terminal
		a, _ := g.TerminalID(tok.Val)
		for _, r := range g.TerminalRules(a) {
			t.add(i, i, r.LhsID())
		}
	}

	binary := g.BinaryRules()
	for length := 2; length <= n; length++ {
		for i := 0; i <= n-length; i++ {
			j := i + length - 1
			for k := i; k < j; k++ {
				for _, r := range binary {
					lhs := r.LhsID()
					if t.has(i, j, lhs) {
						continue
					}
					b, c := r.Operands()
					if t.has(i, k, b) && t.has(k+1, j, c) {
						t.add(i, j, lhs)
					}
				}
			}
		}
	}

	if debug.Enabled() {
		debug.Debugf("%q\n%v", input, t.render(g, res.Tokens))
	}
	res.Accepted = t.has(0, n-1, start)
	return res
}
