/*
Copyright 2020 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package membership

import (
	"strings"

	"github.com/c-bata/go-prompt"
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/gabemorgannn/ContextFreeGrammar/cfg/grammar"
)

// Completer offers the next terminal at the prompt. Candidates have no
// separators, so each suggestion is the whole line extended by one terminal.
type Completer struct {
	g *grammar.Grammar
	// for each terminal, the variables with a rule producing it
	producers map[string]string
}

func NewCompleter(g *grammar.Grammar) *Completer {
	producers := map[string]string{}
	for _, t := range g.Terminals() {
		id, _ := g.TerminalID(t)
		lhs := sets.NewString()
		for _, r := range g.TerminalRules(id) {
			lhs.Insert(r.Lhs)
		}
		producers[t] = strings.Join(lhs.List(), ", ")
	}
	return &Completer{g: g, producers: producers}
}

func (c *Completer) Complete(d prompt.Document) []prompt.Suggest {
	return c.suggestionsFor(d.TextBeforeCursor())
}

func (c *Completer) suggestionsFor(before string) []prompt.Suggest {
	if _, err := c.g.TerminalLexer().Tokenize(before); err != nil {
		return []prompt.Suggest{}
	}
	suggests := make([]prompt.Suggest, 0, len(c.producers))
	for _, t := range c.g.Terminals() {
		suggests = append(suggests, prompt.Suggest{Text: before + t, Description: c.producers[t]})
	}
	return suggests
}
