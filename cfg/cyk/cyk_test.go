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

package cyk_test

import (
	"strings"
	"sync"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/gabemorgannn/ContextFreeGrammar/cfg/cyk"
	"github.com/gabemorgannn/ContextFreeGrammar/cfg/grammar"
	"github.com/gabemorgannn/ContextFreeGrammar/cfg/lexer"
)

// allStrings lists every string over alphabet up to maxLen, including "".
func allStrings(alphabet []string, maxLen int) []string {
	out := []string{""}
	frontier := []string{""}
	for l := 1; l <= maxLen; l++ {
		var next []string
		for _, s := range frontier {
			for _, a := range alphabet {
				next = append(next, s+a)
			}
		}
		out = append(out, next...)
		frontier = next
	}
	return out
}

func isBalanced(s string) bool {
	n := len(s) / 2
	return n >= 1 && len(s) == 2*n && s == strings.Repeat("a", n)+strings.Repeat("b", n)
}

func isPalindrome(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s)/2; i++ {
		if s[i] != s[len(s)-1-i] {
			return false
		}
	}
	return true
}

var _ = Describe("Membership", func() {
	Context("with S -> A B, A -> a, B -> b", func() {
		var g *grammar.Grammar
		BeforeEach(func() {
			g = newGrammar([]string{"S", "A", "B"}, []string{"a", "b"}, "S",
				"S -> A B", "A -> a", "B -> b")
		})

		It("should accept ab", func() {
			Expect(cyk.Accepts(g, "ab")).To(BeTrue())
		})

		It("should try every span", func() {
			Expect(cyk.Accepts(g, "ba")).To(BeFalse())
			Expect(cyk.Accepts(g, "a")).To(BeFalse())
			Expect(cyk.Accepts(g, "aab")).To(BeFalse())
		})

		It("should reject the empty string without an epsilon rule", func() {
			Expect(cyk.Accepts(g, "")).To(BeFalse())
		})

		It("should give the same answer every time", func() {
			for i := 0; i < 5; i++ {
				Expect(cyk.Accepts(g, "ab")).To(BeTrue())
				Expect(cyk.Accepts(g, "ba")).To(BeFalse())
			}
		})
	})

	Context("with the empty string", func() {
		It("should accept it iff the start variable has an epsilon rule", func() {
			g := newGrammar([]string{"S", "A"}, []string{"a"}, "S", "S -> e", "A -> a")
			Expect(cyk.Accepts(g, "")).To(BeTrue())

			g = newGrammar([]string{"S", "A"}, []string{"a"}, "S", "A -> e", "S -> a")
			Expect(cyk.Accepts(g, "")).To(BeFalse())
			Expect(cyk.Accepts(g, "a")).To(BeTrue())
		})

		It("should not treat an epsilon rule as a length one match", func() {
			g := newGrammar([]string{"S"}, []string{"a"}, "S", "S -> e")
			Expect(cyk.Accepts(g, "e")).To(BeFalse())
			Expect(cyk.Accepts(g, "a")).To(BeFalse())
		})
	})

	Context("with multi character terminals", func() {
		var g *grammar.Grammar
		BeforeEach(func() {
			g = newGrammar([]string{"S", "X", "Y"}, []string{"aa", "b"}, "S",
				"S -> X Y", "X -> aa", "Y -> b")
		})

		It("should accept aab as [aa b]", func() {
			res := cyk.Recognize(g, "aab")
			Expect(res.Accepted).To(BeTrue())
			Expect(res.Tokens).To(Equal([]string{"aa", "b"}))
			Expect(res.Err).NotTo(HaveOccurred())
		})

		It("should reject ab because it doesn't tokenize", func() {
			res := cyk.Recognize(g, "ab")
			Expect(res.Accepted).To(BeFalse())
			Expect(res.Unrecognized()).To(BeTrue())
			Expect(res.Err.(*lexer.UnrecognizedSymbolError).Position).To(Equal(0))
			Expect(cyk.Accepts(g, "ab")).To(BeFalse())
		})

		It("should tell a semantic rejection apart from a tokenization failure", func() {
			res := cyk.Recognize(g, "baa")
			Expect(res.Accepted).To(BeFalse())
			Expect(res.Unrecognized()).To(BeFalse())
			Expect(res.Tokens).To(Equal([]string{"b", "aa"}))
		})
	})

	Context("with the balanced pair language a^n b^n", func() {
		var g *grammar.Grammar
		BeforeEach(func() {
			g = newGrammar([]string{"S", "T", "A", "B"}, []string{"a", "b"}, "S",
				"S -> A T", "S -> A B", "T -> S B", "A -> a", "B -> b")
		})

		It("should decide the examples", func() {
			Expect(cyk.Accepts(g, "ab")).To(BeTrue())
			Expect(cyk.Accepts(g, "aabb")).To(BeTrue())
			Expect(cyk.Accepts(g, "aaabb")).To(BeFalse())
			Expect(cyk.Accepts(g, "ba")).To(BeFalse())
		})

		It("should agree with the language on every short string", func() {
			for _, s := range allStrings([]string{"a", "b"}, 8) {
				Expect(cyk.Accepts(g, s)).To(Equal(isBalanced(s)), "input %q", s)
			}
		})
	})

	Context("with palindromes over {a, b}", func() {
		var g *grammar.Grammar
		BeforeEach(func() {
			g = newGrammar([]string{"S", "X", "Y", "A", "B"}, []string{"a", "b"}, "S",
				"S -> A X", "S -> B Y", "S -> A A", "S -> B B", "S -> a", "S -> b",
				"X -> S A", "Y -> S B", "A -> a", "B -> b")
		})

		It("should decide the examples", func() {
			Expect(cyk.Accepts(g, "aba")).To(BeTrue())
			Expect(cyk.Accepts(g, "abba")).To(BeTrue())
			Expect(cyk.Accepts(g, "abab")).To(BeFalse())
		})

		It("should agree with the language on every short string", func() {
			for _, s := range allStrings([]string{"a", "b"}, 8) {
				Expect(cyk.Accepts(g, s)).To(Equal(isPalindrome(s)), "input %q", s)
			}
		})

		It("should answer the same from many goroutines", func() {
			inputs := allStrings([]string{"a", "b"}, 6)
			want := make([]bool, len(inputs))
			for i, s := range inputs {
				want[i] = cyk.Accepts(g, s)
			}

			got := make([][]bool, 8)
			var wg sync.WaitGroup
			for w := range got {
				wg.Add(1)
				go func(w int) {
					defer GinkgoRecover()
					defer wg.Done()
					got[w] = make([]bool, len(inputs))
					for i, s := range inputs {
						got[w][i] = cyk.Accepts(g, s)
					}
				}(w)
			}
			wg.Wait()
			for w := range got {
				Expect(got[w]).To(Equal(want))
			}
		})
	})

	Context("with rules unreachable from the start variable", func() {
		It("should not change any decision", func() {
			base := []string{"S -> A T", "S -> A B", "T -> S B", "A -> a", "B -> b"}
			g := newGrammar([]string{"S", "T", "A", "B", "D", "E"}, []string{"a", "b"}, "S", base...)
			withDead := newGrammar([]string{"S", "T", "A", "B", "D", "E"}, []string{"a", "b"}, "S",
				append(base, "D -> B A", "D -> a", "E -> D D", "E -> b")...)

			for _, s := range allStrings([]string{"a", "b"}, 7) {
				Expect(cyk.Accepts(withDead, s)).To(Equal(cyk.Accepts(g, s)), "input %q", s)
			}
		})
	})

	Context("with more than 64 variables", func() {
		It("should track variables past the first bitset word", func() {
			g := grammar.New()
			var chain []string
			for i := 0; i < 70; i++ {
				v := "V" + strings.Repeat("x", i)
				chain = append(chain, v)
				Expect(g.AddVariable(v)).To(Succeed())
			}
			Expect(g.AddTerminal("a")).To(Succeed())
			Expect(g.SetStart(chain[69])).To(Succeed())
			_, err := g.AddRule(chain[68], []string{"a"})
			Expect(err).NotTo(HaveOccurred())
			_, err = g.AddRule(chain[69], []string{chain[68], chain[68]})
			Expect(err).NotTo(HaveOccurred())
			g.Freeze()

			Expect(cyk.Accepts(g, "aa")).To(BeTrue())
			Expect(cyk.Accepts(g, "a")).To(BeFalse())
			Expect(cyk.Accepts(g, "aaa")).To(BeFalse())
		})
	})

	Context("with malformed rules in the grammar", func() {
		It("should still decide strings that don't need them", func() {
			g := grammar.New()
			for _, v := range []string{"S", "A", "B"} {
				Expect(g.AddVariable(v)).To(Succeed())
			}
			for _, t := range []string{"a", "b"} {
				Expect(g.AddTerminal(t)).To(Succeed())
			}
			Expect(g.SetStart("S")).To(Succeed())
			_, err := g.AddRule("S", []string{"A", "Z"})
			Expect(err).To(BeAssignableToTypeOf(&grammar.MalformedRuleError{}))
			for _, r := range [][]string{{"A", "B"}, {"a"}, {"b"}} {
				lhs := "S"
				if len(r) == 1 {
					lhs = strings.ToUpper(r[0])
				}
				_, err := g.AddRule(lhs, r)
				Expect(err).NotTo(HaveOccurred())
			}
			g.Freeze()

			Expect(cyk.Accepts(g, "ab")).To(BeTrue())
			Expect(cyk.Accepts(g, "ba")).To(BeFalse())
		})
	})

	Context("without a start variable", func() {
		It("should reject everything", func() {
			g := grammar.New()
			Expect(g.AddVariable("S")).To(Succeed())
			Expect(g.AddTerminal("a")).To(Succeed())
			_, err := g.AddRule("S", []string{"a"})
			Expect(err).NotTo(HaveOccurred())
			Expect(cyk.Accepts(g, "a")).To(BeFalse())
			Expect(cyk.Accepts(g, "")).To(BeFalse())
		})
	})
})
