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
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/gabemorgannn/ContextFreeGrammar/cfg/grammar"
)

// yamlGrammar is the YAML form of a grammar file:
//
//      variables: [S, A, B]
//      terminals: [a, b]
//      start: S
//      rules:
//        S: A B | e
//        A: [a]
//        B: [b]
//
// rules is kept as a node so keys read back in file order and as written;
// Y, n or on are variable names here, not booleans.
type yamlGrammar struct {
	Variables []string  `yaml:"variables"`
	Terminals []string  `yaml:"terminals"`
	Start     string    `yaml:"start"`
	Epsilon   string    `yaml:"epsilon,omitempty"`
	Rules     yaml.Node `yaml:"rules"`
}

// ParseYAML reads a grammar in the YAML format. An epsilon marker in the
// document overrides the one passed in opts.
func ParseYAML(b []byte, opts ...grammar.Option) (*grammar.Grammar, []Warning, error) {
	doc := yamlGrammar{}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return nil, nil, errors.Wrap(err, "unable to parse YAML grammar")
	}
	if doc.Epsilon != "" {
		opts = append(opts, grammar.WithEpsilon(doc.Epsilon))
	}
	g := grammar.New(opts...)
	for _, v := range doc.Variables {
		if err := g.AddVariable(v); err != nil {
			return nil, nil, errors.Wrap(err, "variables")
		}
	}
	for _, t := range doc.Terminals {
		if err := g.AddTerminal(t); err != nil {
			return nil, nil, errors.Wrap(err, "terminals")
		}
	}
	if doc.Start != "" {
		if err := g.SetStart(doc.Start); err != nil {
			return nil, nil, errors.Wrap(err, "start")
		}
	}

	rules := resolveAlias(&doc.Rules)
	if rules.Kind != 0 && rules.Tag != "!!null" && rules.Kind != yaml.MappingNode {
		return nil, nil, fmt.Errorf("rules: expected a mapping from variable to alternatives, line %d", rules.Line)
	}
	var warnings []Warning
	// mapping content alternates key and value nodes
	for i := 0; i+1 < len(rules.Content); i += 2 {
		key := resolveAlias(rules.Content[i])
		if key.Kind != yaml.ScalarNode {
			return nil, nil, fmt.Errorf("rules: line %d: left hand side is not a scalar", key.Line)
		}
		lhs := key.Value
		where := fmt.Sprintf("rules[%v]", lhs)
		alternatives, err := yamlAlternatives(rules.Content[i+1])
		if err != nil {
			return nil, nil, errors.Wrap(err, where)
		}
		w, err := addAlternatives(g, lhs, alternatives, where)
		if err != nil {
			return nil, nil, err
		}
		warnings = append(warnings, w...)
	}
	if err := finish(g); err != nil {
		return nil, nil, err
	}
	return g, warnings, nil
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

// yamlAlternatives accepts either "A B | a" or a list of alternatives. Scalars
// are taken as written, so [y] is the terminal y.
func yamlAlternatives(n *yaml.Node) ([]string, error) {
	n = resolveAlias(n)
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return []string{""}, nil
		}
		return strings.Split(n.Value, alternativeSep), nil
	case yaml.SequenceNode:
		alternatives := make([]string, 0, len(n.Content))
		for _, item := range n.Content {
			a := resolveAlias(item)
			if a.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: alternative is not a string", a.Line)
			}
			alternatives = append(alternatives, a.Value)
		}
		return alternatives, nil
	}
	return nil, fmt.Errorf("line %d: unsupported rule value, expected a string or a list", n.Line)
}
