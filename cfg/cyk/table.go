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

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/gabemorgannn/ContextFreeGrammar/cfg/grammar"
)

// table is the upper triangle of the CYK chart. Cell (i, j), i <= j, holds
// the set of variables deriving tokens i..j as a bitset over variable ids.
// Cells are stored row by row: row i has n-i cells.
type table struct {
	n     int
	words int
	cells []uint64
}

func newTable(n, variables int) *table {
	words := (variables + 63) / 64
	if words == 0 {
		words = 1
	}
	return &table{
		n:     n,
		words: words,
		cells: make([]uint64, n*(n+1)/2*words),
	}
}

func (t *table) offset(i, j int) int {
	return (i*t.n - i*(i-1)/2 + (j - i)) * t.words
}

func (t *table) has(i, j, variable int) bool {
	return t.cells[t.offset(i, j)+variable/64]&(1<<(uint(variable)%64)) != 0
}

func (t *table) add(i, j, variable int) {
	t.cells[t.offset(i, j)+variable/64] |= 1 << (uint(variable) % 64)
}

// variables lists the ids in cell (i, j) in ascending order.
func (t *table) variables(i, j int) []int {
	var ids []int
	off := t.offset(i, j)
	for w := 0; w < t.words; w++ {
		word := t.cells[off+w]
		for word != 0 {
			b := bits.TrailingZeros64(word)
			ids = append(ids, w*64+b)
			word &= word - 1
		}
	}
	return ids
}

// render prints the chart one span length per line, for the debug log.
func (t *table) render(g *grammar.Grammar, tokens []string) string {
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprint("Input tokens: ", strings.Join(tokens, ", "), "\n"))
	for length := 1; length <= t.n; length++ {
		sb.WriteString(fmt.Sprint("Length ", length, ":"))
		for i := 0; i+length-1 < t.n; i++ {
			j := i + length - 1
			names := []string{}
			for _, id := range t.variables(i, j) {
				names = append(names, g.VariableName(id))
			}
			sb.WriteString(fmt.Sprintf(" [%d,%d]{%s}", i, j, strings.Join(names, " ")))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
