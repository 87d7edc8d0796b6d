// Package metrics records planning and motion counters on a private
// prometheus registry.
//
// A nil *Recorder is valid and records nothing, so callers never need to
// check whether metrics are enabled.
package metrics

import (
	"sort"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "gridnav"

// Recorder owns the gridnav collectors.
type Recorder struct {
	registry     *prometheus.Registry
	plans        *prometheus.CounterVec
	replans      prometheus.Counter
	obstructions prometheus.Counter
	commands     *prometheus.CounterVec
	pathCost     prometheus.Histogram
}

// New creates a Recorder with its own registry.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		plans: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "solver",
				Name:      "plans_total",
				Help:      "Planning attempts by strategy and result.",
			},
			[]string{"strategy", "result"},
		),
		replans: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "replans_total",
			Help:      "Planning cycles triggered by an obstruction.",
		}),
		obstructions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "motion",
			Name:      "obstructions_total",
			Help:      "Traversals stopped by the obstruction sensor.",
		}),
		commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "motion",
				Name:      "commands_total",
				Help:      "Actuator commands issued, by kind.",
			},
			[]string{"command"},
		),
		pathCost: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "solver",
			Name:      "path_cost",
			Help:      "Total entry cost of solved paths.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
	}
	r.registry.MustRegister(r.plans, r.replans, r.obstructions, r.commands, r.pathCost)
	return r
}

// Registry exposes the underlying registry, e.g. for promhttp.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// RecordPlan counts one solver invocation. cost is observed only on success.
func (r *Recorder) RecordPlan(strategy, result string, cost int) {
	if r == nil {
		return
	}
	r.plans.WithLabelValues(strategy, result).Inc()
	if result == "ok" {
		r.pathCost.Observe(float64(cost))
	}
}

// RecordReplan counts a planning cycle caused by an obstruction.
func (r *Recorder) RecordReplan() {
	if r == nil {
		return
	}
	r.replans.Inc()
}

// RecordObstruction counts a traversal stopped by the sensor.
func (r *Recorder) RecordObstruction() {
	if r == nil {
		return
	}
	r.obstructions.Inc()
}

// RecordCommands adds n commands of the given kind.
func (r *Recorder) RecordCommands(command string, n int) {
	if r == nil || n <= 0 {
		return
	}
	r.commands.WithLabelValues(command).Add(float64(n))
}

// Sample is a flattened metric value.
type Sample struct {
	Name   string            `json:"name"`
	Labels map[string]string `json:"labels,omitempty"`
	Value  float64           `json:"value"`
}

// Snapshot gathers every metric as flat samples sorted by name. Histograms
// contribute _count and _sum samples.
func (r *Recorder) Snapshot() ([]Sample, error) {
	if r == nil {
		return nil, nil
	}
	families, err := r.registry.Gather()
	if err != nil {
		return nil, err
	}

	var out []Sample
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := make(map[string]string, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			if len(labels) == 0 {
				labels = nil
			}

			switch {
			case m.GetCounter() != nil:
				out = append(out, Sample{Name: mf.GetName(), Labels: labels, Value: m.GetCounter().GetValue()})
			case m.GetHistogram() != nil:
				h := m.GetHistogram()
				out = append(out,
					Sample{Name: mf.GetName() + "_count", Labels: labels, Value: float64(h.GetSampleCount())},
					Sample{Name: mf.GetName() + "_sum", Labels: labels, Value: h.GetSampleSum()},
				)
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// FormatLabels renders labels as k=v pairs in key order.
func FormatLabels(labels map[string]string) string {
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := ""
	for i, k := range keys {
		if i > 0 {
			out += ","
		}
		out += k + "=" + strconv.Quote(labels[k])
	}
	return out
}
