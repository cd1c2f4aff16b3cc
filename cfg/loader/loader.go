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
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/gabemorgannn/ContextFreeGrammar/cfg/grammar"
	"github.com/gabemorgannn/ContextFreeGrammar/debug"
)

// Warning is a rule that was skipped while loading a grammar.
type Warning struct {
	// Where is the position in the source, e.g. "line 4" or "rules[S]".
	Where string
	Err   *grammar.MalformedRuleError
}

func (w Warning) String() string {
	return fmt.Sprintf("%v: %v", w.Where, w.Err)
}

// LoadFile reads a grammar from path. Files ending in .yaml or .yml are
// YAML, anything else is the text format. The returned grammar is frozen.
func LoadFile(path string, opts ...grammar.Option) (*grammar.Grammar, []Warning, error) {
	var (
		g        *grammar.Grammar
		warnings []Warning
		err      error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		b, rerr := ioutil.ReadFile(path)
		if rerr != nil {
			return nil, nil, errors.Wrap(rerr, "unable to read grammar file")
		}
		g, warnings, err = ParseYAML(b, opts...)
	default:
		f, oerr := os.Open(path)
		if oerr != nil {
			return nil, nil, errors.Wrap(oerr, "unable to open grammar file")
		}
		defer f.Close()
		g, warnings, err = ParseText(f, opts...)
	}
	if err != nil {
		return nil, nil, errors.Wrapf(err, "grammar %v", path)
	}
	for _, w := range warnings {
		debug.Debugf("%v: %v\n", path, w)
	}
	return g, warnings, nil
}

// ReadCandidates returns one candidate per line, trimmed. A blank line is the
// empty string.
func ReadCandidates(r io.Reader) ([]string, error) {
	var candidates []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		candidates = append(candidates, strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "unable to read candidates")
	}
	return candidates, nil
}

// ReadCandidatesFile is ReadCandidates over the file at path.
func ReadCandidatesFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "unable to open input file")
	}
	defer f.Close()
	return ReadCandidates(f)
}
