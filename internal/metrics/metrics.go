package metrics

import (
	"net/http"

	"github.com/lshigami/ojtportal/internal/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder holds the service counters on a private registry. A nil Recorder
// is valid and records nothing.
type Recorder struct {
	registry         *prometheus.Registry
	templateVersions *prometheus.CounterVec
	responses        *prometheus.CounterVec
	accessCodes      *prometheus.CounterVec
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		templateVersions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ojtportal",
			Name:      "template_version_bumps_total",
			Help:      "Template edits that incremented a template version.",
		}, []string{"family"}),
		responses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ojtportal",
			Name:      "feedback_responses_total",
			Help:      "Response snapshots stored.",
		}, []string{"family"}),
		accessCodes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ojtportal",
			Name:      "access_codes_issued_total",
			Help:      "Access codes generated and emailed.",
		}, []string{"family"}),
	}
	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.templateVersions,
		r.responses,
		r.accessCodes,
	)
	return r
}

func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func (r *Recorder) TemplateVersionBumped(family model.Family) {
	if r == nil {
		return
	}
	r.templateVersions.WithLabelValues(string(family)).Inc()
}

func (r *Recorder) ResponseStored(family model.Family) {
	if r == nil {
		return
	}
	r.responses.WithLabelValues(string(family)).Inc()
}

func (r *Recorder) AccessCodeIssued(family model.Family) {
	if r == nil {
		return
	}
	r.accessCodes.WithLabelValues(string(family)).Inc()
}
