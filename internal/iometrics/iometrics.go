// Package iometrics exports statistics of a comparison as Prometheus
// metrics in the textfile format.
package iometrics

import (
	"strconv"

	"github.com/gnames/taxodrift/pkg/drift"
	"github.com/gnames/taxodrift/pkg/resolver"
	"github.com/prometheus/client_golang/prometheus"
)

// MetricsFile is the name of the textfile written next to comparison
// results.
const MetricsFile = "metrics.prom"

const namespace = "taxodrift"

// Recorder keeps metrics of one comparison.
type Recorder struct {
	reg           *prometheus.Registry
	names         *prometheus.GaugeVec
	dropped       *prometheus.GaugeVec
	unresolved    *prometheus.GaugeVec
	disagreements *prometheus.GaugeVec
	changes       *prometheus.GaugeVec
	resolver      *prometheus.GaugeVec
}

// New creates a Recorder with metrics labeled by checklist.
func New(checklist string) *Recorder {
	labels := prometheus.Labels{"checklist": checklist}
	gauge := func(name, help string, vars ...string) *prometheus.GaugeVec {
		return prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        name,
			Help:        help,
			ConstLabels: labels,
		}, vars)
	}

	res := &Recorder{
		reg: prometheus.NewRegistry(),
		names: gauge("names",
			"Number of distinct names of the oldest release by outcome.",
			"old", "new", "outcome"),
		dropped: gauge("chain_dropped_names",
			"Names dropped at a hop of the chain.",
			"hop", "from", "to"),
		unresolved: gauge("unresolved_names",
			"Names without a single accepted name.",
			"old", "new", "stage"),
		disagreements: gauge("disagreements",
			"Compared names whose chained and direct accepted names differ.",
			"old", "new", "level"),
		changes: gauge("status_changes",
			"Compared names that changed acceptance between releases.",
			"old", "new", "change"),
		resolver: gauge("resolver_records",
			"Records of a release by resolution outcome.",
			"tag", "outcome"),
	}
	res.reg.MustRegister(res.names, res.dropped, res.unresolved,
		res.disagreements, res.changes, res.resolver)
	return res
}

// Registry gives access to collected metrics.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.reg
}

// ObserveResult records statistics of a comparison.
func (r *Recorder) ObserveResult(res *drift.Result) {
	old, nw := res.OldTag(), res.NewTag()

	r.names.WithLabelValues(old, nw, "total").Set(float64(res.Total))
	r.names.WithLabelValues(old, nw, "compared").Set(float64(res.Compared()))

	for _, h := range res.Hops {
		r.dropped.WithLabelValues(strconv.Itoa(h.Number), h.From, h.To).
			Set(float64(h.Dropped()))
	}

	r.unresolved.WithLabelValues(old, nw, string(drift.StageOld)).
		Set(float64(res.UnresolvedOld))
	r.unresolved.WithLabelValues(old, nw, string(drift.StageChain)).
		Set(float64(res.DroppedInChain()))
	r.unresolved.WithLabelValues(old, nw, string(drift.StageDirect)).
		Set(float64(res.UnresolvedDirect))

	r.disagreements.WithLabelValues(old, nw, "name").
		Set(float64(len(res.NameDisagreements())))
	r.disagreements.WithLabelValues(old, nw, "species").
		Set(float64(len(res.SpeciesDisagreements())))
	r.disagreements.WithLabelValues(old, nw, "genus").
		Set(float64(len(res.GenusDisagreements())))

	var resurrected, synonymized int
	for _, row := range res.Rows {
		if row.Resurrected {
			resurrected++
		}
		if row.Synonymized {
			synonymized++
		}
	}
	r.changes.WithLabelValues(old, nw, "resurrected").Set(float64(resurrected))
	r.changes.WithLabelValues(old, nw, "synonymized").Set(float64(synonymized))
}

// ObserveReport records the outcome of resolving a release.
func (r *Recorder) ObserveReport(rep resolver.Report) {
	r.resolver.WithLabelValues(rep.Tag, "input").Set(float64(rep.Input))
	r.resolver.WithLabelValues(rep.Tag, "kept").Set(float64(rep.Kept))
	r.resolver.WithLabelValues(rep.Tag, "no_accepted_id").
		Set(float64(rep.NoAcceptedID))
	r.resolver.WithLabelValues(rep.Tag, "unresolved").Set(float64(rep.Unresolved))
}

// Write saves metrics to path in the Prometheus textfile format.
func (r *Recorder) Write(path string) error {
	if err := prometheus.WriteToTextfile(path, r.reg); err != nil {
		return MetricsError(path, err)
	}
	return nil
}
