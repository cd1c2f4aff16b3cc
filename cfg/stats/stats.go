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

package stats

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"

	"github.com/gabemorgannn/ContextFreeGrammar/cfg/cyk"
)

const (
	namespace = "cfgtest"

	VerdictAccept       = "accept"
	VerdictReject       = "reject"
	VerdictUnrecognized = "unrecognized"
)

// Recorder counts membership results. It has its own registry so several
// runs in one process don't share counts.
type Recorder struct {
	registry   *prometheus.Registry
	candidates *prometheus.CounterVec
	tokens     prometheus.Histogram
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		candidates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "candidates_total",
			Help:      "Candidate strings tested against the grammar, by verdict.",
		}, []string{"verdict"}),
		tokens: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "candidate_tokens",
			Help:      "Number of terminals in each tokenized candidate.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
	}
	r.registry.MustRegister(r.candidates, r.tokens)
	for _, v := range []string{VerdictAccept, VerdictReject, VerdictUnrecognized} {
		r.candidates.WithLabelValues(v)
	}
	return r
}

// Record is safe to call from several goroutines.
func (r *Recorder) Record(res cyk.Result) {
	switch {
	case res.Unrecognized():
		r.candidates.WithLabelValues(VerdictUnrecognized).Inc()
		return
	case res.Accepted:
		r.candidates.WithLabelValues(VerdictAccept).Inc()
	default:
		r.candidates.WithLabelValues(VerdictReject).Inc()
	}
	r.tokens.Observe(float64(len(res.Tokens)))
}

// Summary is the per-verdict count of everything recorded so far.
type Summary struct {
	Accepted     int
	Rejected     int
	Unrecognized int
}

func (s Summary) Total() int {
	return s.Accepted + s.Rejected + s.Unrecognized
}

func (s Summary) String() string {
	return fmt.Sprintf("%d candidates: %d accepted, %d rejected (%d could not be tokenized)",
		s.Total(), s.Accepted, s.Rejected+s.Unrecognized, s.Unrecognized)
}

func (r *Recorder) Summary() (Summary, error) {
	families, err := r.registry.Gather()
	if err != nil {
		return Summary{}, err
	}
	s := Summary{}
	for _, mf := range families {
		if mf.GetName() != namespace+"_candidates_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			n := int(m.GetCounter().GetValue())
			switch verdictOf(m) {
			case VerdictAccept:
				s.Accepted = n
			case VerdictReject:
				s.Rejected = n
			case VerdictUnrecognized:
				s.Unrecognized = n
			}
		}
	}
	return s, nil
}

func verdictOf(m *dto.Metric) string {
	for _, l := range m.GetLabel() {
		if l.GetName() == "verdict" {
			return l.GetValue()
		}
	}
	return ""
}

// WriteText writes every metric in the Prometheus text exposition format.
func (r *Recorder) WriteText(w io.Writer) error {
	families, err := r.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
