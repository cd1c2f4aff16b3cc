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
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/c-bata/go-prompt"
	"github.com/fatih/color"
	"golang.org/x/sync/errgroup"

	"github.com/gabemorgannn/ContextFreeGrammar/cfg/cyk"
	"github.com/gabemorgannn/ContextFreeGrammar/cfg/grammar"
	"github.com/gabemorgannn/ContextFreeGrammar/cfg/loader"
	"github.com/gabemorgannn/ContextFreeGrammar/cfg/output"
	"github.com/gabemorgannn/ContextFreeGrammar/cfg/stats"
	"github.com/gabemorgannn/ContextFreeGrammar/cmd/cli"
	"github.com/gabemorgannn/ContextFreeGrammar/debug"
)

// MembershipCommand loads a grammar and tests candidate strings against it.
type MembershipCommand struct {
	cli.CFGTestCommand
	recorder *stats.Recorder
}

func (c *MembershipCommand) Run(ctx context.Context, flags cli.CFGTestFlags) error {
	defer debug.Teardown()
	c.recorder = stats.NewRecorder()

	g, err := c.loadGrammar(flags)
	if err != nil {
		return err
	}
	if flags.ShowGrammar {
		// keep structured output parseable
		if flags.Output == "text" {
			c.Fprintf("%s\n", output.GrammarListing(g))
		} else {
			fmt.Fprintf(c.Streams.ErrOut, "%s\n", output.GrammarListing(g))
		}
	}

	if flags.Interactive {
		c.runPrompt(g, flags)
	} else {
		candidates, err := c.readCandidates(flags)
		if err != nil {
			return err
		}
		results, err := Evaluate(ctx, g, candidates, flags.Workers)
		if err != nil {
			return err
		}
		for _, r := range results {
			c.recorder.Record(r)
		}
		o, err := output.ToPrettyFormat(results, flags.Output, g.Epsilon(), colorized(flags))
		if err != nil {
			return err
		}
		c.Fprintf("%s", *o)
		if *o != "" && !strings.HasSuffix(*o, "\n") {
			c.Fprintf("\n")
		}
	}
	return c.report(flags)
}

func (c *MembershipCommand) loadGrammar(flags cli.CFGTestFlags) (*grammar.Grammar, error) {
	g, warnings, err := loader.LoadFile(flags.GrammarFile, grammar.WithEpsilon(flags.Epsilon))
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		c.Warnf("skipping rule, %v", w)
	}
	return g, nil
}

func (c *MembershipCommand) readCandidates(flags cli.CFGTestFlags) ([]string, error) {
	if flags.InputFile == "" || flags.InputFile == "-" {
		return loader.ReadCandidates(c.Streams.In)
	}
	return loader.ReadCandidatesFile(flags.InputFile)
}

func (c *MembershipCommand) report(flags cli.CFGTestFlags) error {
	if flags.Summary {
		s, err := c.recorder.Summary()
		if err != nil {
			return err
		}
		fmt.Fprintln(c.Streams.ErrOut, s.String())
	}
	if flags.MetricsFile != "" {
		f, err := os.Create(flags.MetricsFile)
		if err != nil {
			return fmt.Errorf("unable to create metrics file: %w", err)
		}
		defer f.Close()
		if err := c.recorder.WriteText(f); err != nil {
			return fmt.Errorf("unable to write metrics: %w", err)
		}
	}
	return nil
}

// Evaluate tests every candidate against g with at most workers queries in
// flight. Results come back in candidate order.
func Evaluate(ctx context.Context, g *grammar.Grammar, candidates []string, workers int) ([]cyk.Result, error) {
	g.Freeze()
	results := make([]cyk.Result, len(candidates))
	eg, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		eg.SetLimit(workers)
	}
	for i, s := range candidates {
		i, s := i, s
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = cyk.Recognize(g, s)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func colorized(flags cli.CFGTestFlags) bool {
	return !flags.NoColor && !color.NoColor
}

// this is the hook for the interactive prompt, if we detect an exit string
// the prompt stops, otherwise the line is tested as a candidate.
func promptExecutor(execFunc func(string)) prompt.Executor {
	return func(qs string) {
		if cli.IsExit(qs) {
			return
		}
		execFunc(qs)
	}
}

func (c *MembershipCommand) runPrompt(g *grammar.Grammar, flags cli.CFGTestFlags) {
	g.Freeze()
	comp := NewCompleter(g)
	p := prompt.New(
		promptExecutor(func(qs string) {
			c.Fprintf("%s", *c.evaluateLine(g, qs, flags))
		}),
		comp.Complete,
		prompt.OptionTitle("cfgtest: interactive membership testing against a CNF grammar"),
		prompt.OptionPrefix(">>> "),
		prompt.OptionPrefixTextColor(prompt.Cyan),
		prompt.OptionInputTextColor(prompt.Yellow),
		prompt.OptionSetExitCheckerOnInput(func(in string, breakline bool) bool {
			return breakline && cli.IsExit(in)
		}),
	)
	p.Run()
}

// evaluateLine tests a single prompt line, trimmed the same way batch
// candidates are. Outside of text output it falls back to text, since a JSON
// document per line isn't much use at a prompt.
func (c *MembershipCommand) evaluateLine(g *grammar.Grammar, qs string, flags cli.CFGTestFlags) *string {
	res := cyk.Recognize(g, strings.TrimSpace(qs))
	c.recorder.Record(res)
	o, err := output.ToText([]cyk.Result{res}, g.Epsilon(), colorized(flags))
	if err != nil {
		msg := fmt.Sprintf("unable to render result: %v\n", err)
		return &msg
	}
	if res.Err != nil {
		msg := fmt.Sprintf("%s (%v)\n", strings.TrimSuffix(*o, "\n"), res.Err)
		return &msg
	}
	return o
}
