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

package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/golang/protobuf/proto"
	"github.com/hokaccha/go-prettyjson"
	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v2"

	"github.com/gabemorgannn/ContextFreeGrammar/cfg/cyk"
	"github.com/gabemorgannn/ContextFreeGrammar/cfg/grammar"
)

const (
	acceptText = "Accept"
	rejectText = "Reject"
)

// Verdict is the serialized form of a membership result.
type Verdict struct {
	Input    string   `json:"input" yaml:"input"`
	Accepted bool     `json:"accepted" yaml:"accepted"`
	Tokens   []string `json:"tokens,omitempty" yaml:"tokens,omitempty"`
	Error    string   `json:"error,omitempty" yaml:"error,omitempty"`
}

func ToVerdicts(results []cyk.Result) []Verdict {
	verdicts := make([]Verdict, len(results))
	for i, r := range results {
		verdicts[i] = Verdict{Input: r.Input, Accepted: r.Accepted, Tokens: r.Tokens}
		if r.Err != nil {
			verdicts[i].Error = r.Err.Error()
		}
	}
	return verdicts
}

// GrammarListing renders g the way the grammar is echoed before testing:
//
//      Variables: S, A, B
//      Terminals: a, b
//      Rules:
//      S -> A B | e
//      A -> a
//      Start Variable: S
func GrammarListing(g *grammar.Grammar) string {
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprint("Variables: ", strings.Join(g.Variables(), ", "), "\n"))
	sb.WriteString(fmt.Sprint("Terminals: ", strings.Join(g.Terminals(), ", "), "\n"))
	sb.WriteString("Rules:\n")

	width := 0
	for _, v := range g.Variables() {
		if len(g.RulesByLhs(v)) > 0 && runewidth.StringWidth(v) > width {
			width = runewidth.StringWidth(v)
		}
	}
	for _, v := range g.Variables() {
		rules := g.RulesByLhs(v)
		if len(rules) == 0 {
			continue
		}
		alternatives := make([]string, len(rules))
		for i, r := range rules {
			alternatives[i] = strings.Join(r.Rhs, " ")
		}
		sb.WriteString(fmt.Sprintf("%s -> %s\n", runewidth.FillRight(v, width), strings.Join(alternatives, " | ")))
	}
	sb.WriteString(fmt.Sprint("Start Variable: ", g.Start(), "\n"))
	return sb.String()
}

// ToText renders one "<input>: Accept" line per result. The empty string is
// shown as the epsilon marker.
func ToText(results []cyk.Result, epsilon string, colorized bool) (*string, error) {
	accept, reject := fmt.Sprint, fmt.Sprint
	if colorized {
		green, red := color.New(color.FgGreen), color.New(color.FgRed)
		green.EnableColor()
		red.EnableColor()
		accept, reject = green.SprintFunc(), red.SprintFunc()
	}
	sb := strings.Builder{}
	for _, r := range results {
		input := r.Input
		if input == "" {
			input = epsilon
		}
		verdict := reject(rejectText)
		if r.Accepted {
			verdict = accept(acceptText)
		}
		sb.WriteString(fmt.Sprintf("%s: %s\n", input, verdict))
	}
	return proto.String(sb.String()), nil
}

func ToPrettyJson(results []cyk.Result) (*string, error) {
	s, err := json.MarshalIndent(ToVerdicts(results), "", "  ")
	if err != nil {
		return nil, err
	}
	return proto.String(string(s)), nil
}

func ToPrettyColoredJson(results []cyk.Result) (*string, error) {
	f := prettyjson.NewFormatter()
	f.Indent = 4
	f.KeyColor = color.New(color.FgGreen)
	f.NullColor = color.New(color.Underline)
	f.NumberColor = color.New(color.FgYellow)
	f.StringColor = color.New(color.FgHiCyan)
	f.BoolColor = color.New(color.FgMagenta)

	s, err := f.Marshal(ToVerdicts(results))
	if err != nil {
		return nil, err
	}
	return proto.String(string(s)), nil
}

func ToYaml(results []cyk.Result) (*string, error) {
	o, err := yaml.Marshal(ToVerdicts(results))
	if err != nil {
		return nil, err
	}
	return proto.String(string(o)), nil
}

func ToPrettyFormat(results []cyk.Result, outputType, epsilon string, colorized bool) (*string, error) {
	switch outputType {
	case "text":
		return ToText(results, epsilon, colorized)
	case "json":
		if colorized {
			return ToPrettyColoredJson(results)
		}
		return ToPrettyJson(results)
	case "yaml":
		return ToYaml(results)
	}
	return nil, fmt.Errorf("unsupported formatting option (%s)", outputType)
}
