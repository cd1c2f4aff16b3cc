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

package loader

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/gabemorgannn/ContextFreeGrammar/cfg/grammar"
)

// A text grammar file looks like
//
//      S,A,B
//      a,b
//      S
//      S -> A B | e
//      A -> a
//      B -> b
//
// Blank lines and lines starting with '#' are skipped. The first remaining
// line declares the variables, the second the terminals. After that any line
// with "->" is a rule (alternatives separated by '|') and any other line
// names the start variable.
const (
	ruleArrow        = "->"
	alternativeSep   = "|"
	declarationSep   = ","
	commentDelimiter = "#"
)

// ParseText reads a grammar in the text format.
func ParseText(r io.Reader, opts ...grammar.Option) (*grammar.Grammar, []Warning, error) {
	g := grammar.New(opts...)
	var warnings []Warning

	scanner := bufio.NewScanner(r)
	lineNo, declLines := 0, 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, commentDelimiter) {
			continue
		}
		declLines++
		where := fmt.Sprintf("line %d", lineNo)

		switch {
		case declLines == 1:
			for _, v := range splitDeclarations(line) {
				if err := g.AddVariable(v); err != nil {
					return nil, nil, errors.Wrap(err, where)
				}
			}
		case declLines == 2:
			for _, t := range splitDeclarations(line) {
				if err := g.AddTerminal(t); err != nil {
					return nil, nil, errors.Wrap(err, where)
				}
			}
		case !strings.Contains(line, ruleArrow):
			if err := g.SetStart(line); err != nil {
				return nil, nil, errors.Wrap(err, where)
			}
		default:
			parts := strings.SplitN(line, ruleArrow, 2)
			lhs := strings.TrimSpace(parts[0])
			w, err := addAlternatives(g, lhs, strings.Split(parts[1], alternativeSep), where)
			if err != nil {
				return nil, nil, err
			}
			warnings = append(warnings, w...)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, errors.Wrap(err, "unable to read grammar")
	}
	if err := finish(g); err != nil {
		return nil, nil, err
	}
	return g, warnings, nil
}

func splitDeclarations(line string) []string {
	var names []string
	for _, n := range strings.Split(line, declarationSep) {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return names
}

// addAlternatives adds lhs -> alt for each alternative. Malformed
// alternatives become warnings; anything else aborts.
func addAlternatives(g *grammar.Grammar, lhs string, alternatives []string, where string) ([]Warning, error) {
	var warnings []Warning
	for _, alt := range alternatives {
		_, err := g.AddRule(lhs, strings.Fields(alt))
		if err == nil {
			continue
		}
		var malformed *grammar.MalformedRuleError
		if errors.As(err, &malformed) {
			warnings = append(warnings, Warning{Where: where, Err: malformed})
			continue
		}
		return warnings, errors.Wrap(err, where)
	}
	return warnings, nil
}

func finish(g *grammar.Grammar) error {
	if err := g.Validate(); err != nil {
		return err
	}
	g.Freeze()
	return nil
}
