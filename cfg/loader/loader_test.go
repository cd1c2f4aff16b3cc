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

package loader_test

import (
	"errors"
	"strings"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/gabemorgannn/ContextFreeGrammar/cfg/cyk"
	"github.com/gabemorgannn/ContextFreeGrammar/cfg/grammar"
	"github.com/gabemorgannn/ContextFreeGrammar/cfg/loader"
)

func rulesOf(g *grammar.Grammar) []string {
	var out []string
	for _, r := range g.Rules() {
		out = append(out, r.String())
	}
	return out
}

var _ = Describe("The text grammar format", func() {
	It("should read declarations, start and rules", func() {
		g, warnings, err := loader.LoadFile("testdata/anbn.cfg")
		Expect(err).NotTo(HaveOccurred())
		Expect(warnings).To(BeEmpty())
		Expect(g.Frozen()).To(BeTrue())
		Expect(g.Variables()).To(Equal([]string{"S", "T", "A", "B"}))
		Expect(g.Terminals()).To(Equal([]string{"a", "b"}))
		Expect(g.Start()).To(Equal("S"))
		Expect(rulesOf(g)).To(Equal([]string{
			"S -> A T", "S -> A B", "T -> S B", "A -> a", "B -> b",
		}))
		Expect(cyk.Accepts(g, "aabb")).To(BeTrue())
	})

	It("should skip malformed alternatives and keep the rest", func() {
		g, warnings, err := loader.LoadFile("testdata/malformed.cfg")
		Expect(err).NotTo(HaveOccurred())
		Expect(warnings).To(HaveLen(1))
		Expect(warnings[0].Where).To(Equal("line 6"))
		Expect(warnings[0].Err.Rule.Rhs).To(Equal([]string{"A", "Z"}))
		Expect(warnings[0].String()).To(ContainSubstring("line 6: malformed rule S -> A Z"))

		Expect(rulesOf(g)).To(Equal([]string{"S -> A B", "S -> e", "A -> a", "B -> b"}))
		Expect(cyk.Accepts(g, "ab")).To(BeTrue())
		Expect(cyk.Accepts(g, "")).To(BeTrue())
		Expect(cyk.Accepts(g, "ba")).To(BeFalse())
	})

	It("should warn about an empty alternative", func() {
		_, warnings, err := loader.ParseText(strings.NewReader("S\na\nS\nS -> a |\n"))
		Expect(err).NotTo(HaveOccurred())
		Expect(warnings).To(HaveLen(1))
		Expect(warnings[0].Err.Reason).To(Equal("empty right hand side"))
	})

	It("should use the epsilon marker it was given", func() {
		g, _, err := loader.ParseText(strings.NewReader("S\na,e\nS\nS -> ε | e\n"), grammar.WithEpsilon("ε"))
		Expect(err).NotTo(HaveOccurred())
		Expect(g.Terminals()).To(Equal([]string{"a", "e"}))
		Expect(cyk.Accepts(g, "")).To(BeTrue())
		Expect(cyk.Accepts(g, "e")).To(BeTrue())
	})

	abortsOn := func(desc, text string, check func(error)) {
		It("should abort on "+desc, func() {
			g, _, err := loader.ParseText(strings.NewReader(text))
			Expect(err).To(HaveOccurred())
			Expect(g).To(BeNil())
			check(err)
		})
	}
	abortsOn("an undeclared left hand side", "S\na\nS\nX -> a\n", func(err error) {
		var undeclared *grammar.UndeclaredLhsError
		Expect(errors.As(err, &undeclared)).To(BeTrue())
		Expect(err.Error()).To(HavePrefix("line 4: "))
	})
	abortsOn("a symbol declared as both variable and terminal", "S,A\na,A\nS\n", func(err error) {
		var dup *grammar.DuplicateDeclarationError
		Expect(errors.As(err, &dup)).To(BeTrue())
		Expect(dup.Name).To(Equal("A"))
	})
	abortsOn("a missing start variable", "S\na\nS -> a\n", func(err error) {
		Expect(errors.Is(err, grammar.ErrNoStart)).To(BeTrue())
	})
	abortsOn("an undeclared start variable", "S\na\nT\n", func(err error) {
		var undeclared *grammar.UndeclaredStartError
		Expect(errors.As(err, &undeclared)).To(BeTrue())
	})

	It("should report a missing file", func() {
		_, _, err := loader.LoadFile("testdata/does-not-exist.cfg")
		Expect(err).To(MatchError(ContainSubstring("unable to open grammar file")))
	})
})

var _ = Describe("The YAML grammar format", func() {
	It("should read rules in file order", func() {
		g, warnings, err := loader.LoadFile("testdata/palindrome.yaml")
		Expect(err).NotTo(HaveOccurred())
		Expect(warnings).To(BeEmpty())
		Expect(g.Start()).To(Equal("S"))
		Expect(rulesOf(g)[:3]).To(Equal([]string{"S -> A X", "S -> B Y", "S -> A A"}))
		Expect(cyk.Accepts(g, "abba")).To(BeTrue())
		Expect(cyk.Accepts(g, "abab")).To(BeFalse())
	})

	It("should let the document pick the epsilon marker", func() {
		doc := `
variables: [S]
terminals: [e]
start: S
epsilon: "<eps>"
rules:
  S: "<eps> | e"
`
		g, _, err := loader.ParseYAML([]byte(doc))
		Expect(err).NotTo(HaveOccurred())
		Expect(g.Epsilon()).To(Equal("<eps>"))
		Expect(cyk.Accepts(g, "")).To(BeTrue())
		Expect(cyk.Accepts(g, "e")).To(BeTrue())
	})

	It("should warn about malformed alternatives", func() {
		doc := `
variables: [S, A]
terminals: [a]
start: S
rules:
  S: [A A, A a]
  A: a
`
		g, warnings, err := loader.ParseYAML([]byte(doc))
		Expect(err).NotTo(HaveOccurred())
		Expect(warnings).To(HaveLen(1))
		Expect(warnings[0].Where).To(Equal("rules[S]"))
		Expect(cyk.Accepts(g, "aa")).To(BeTrue())
	})

	It("should take symbols that look like booleans as written", func() {
		doc := `
variables: [S, Y, n, on]
terminals: [y, off]
start: S
rules:
  S: Y n | on n
  Y: [y]
  n: off
  on: [y, off]
`
		g, warnings, err := loader.ParseYAML([]byte(doc))
		Expect(err).NotTo(HaveOccurred())
		Expect(warnings).To(BeEmpty())
		Expect(rulesOf(g)).To(Equal([]string{
			"S -> Y n", "S -> on n", "Y -> y", "n -> off", "on -> y", "on -> off",
		}))
		Expect(cyk.Accepts(g, "yoff")).To(BeTrue())
		Expect(cyk.Accepts(g, "offoff")).To(BeTrue())
		Expect(cyk.Accepts(g, "yy")).To(BeFalse())
	})

	It("should refuse rules that aren't a mapping", func() {
		_, _, err := loader.ParseYAML([]byte("variables: [S]\nstart: S\nrules: [S]\n"))
		Expect(err).To(MatchError(ContainSubstring("expected a mapping")))
	})

	It("should refuse unknown fields", func() {
		_, _, err := loader.ParseYAML([]byte("variables: [S]\nstart: S\nproductions: {}\n"))
		Expect(err).To(MatchError(ContainSubstring("unable to parse YAML grammar")))
	})

	It("should refuse a rule value that isn't a string or list", func() {
		_, _, err := loader.ParseYAML([]byte("variables: [S]\nstart: S\nrules:\n  S: {a: b}\n"))
		Expect(err).To(MatchError(ContainSubstring("rules[S]")))
	})
})

var _ = Describe("Reading candidates", func() {
	It("should read one trimmed candidate per line with blanks as the empty string", func() {
		candidates, err := loader.ReadCandidatesFile("testdata/anbn.txt")
		Expect(err).NotTo(HaveOccurred())
		Expect(candidates).To(Equal([]string{"ab", "aabb", "", "aaabb", "ba", "abc"}))
	})

	It("should trim surrounding whitespace", func() {
		candidates, err := loader.ReadCandidates(strings.NewReader("  ab \n\t\n"))
		Expect(err).NotTo(HaveOccurred())
		Expect(candidates).To(Equal([]string{"ab", ""}))
	})
})
