package metrics

import (
	"math"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"Pavement/internal/calc/design"
)

type Metrics struct {
	reg   *prometheus.Registry
	calcs *prometheus.CounterVec
	esals *prometheus.HistogramVec
	pass  *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		reg:   prometheus.NewRegistry(),
		calcs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pavement_calculations_total",
			Help: "Calculation requests by tool and outcome.",
		}, []string{"tool", "outcome"}),
		esals: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pavement_interface_esals_log10",
			Help:    "log10 of the design-life equivalent axles at each checked interface.",
			Buckets: prometheus.LinearBuckets(4, 0.5, 10),
		}, []string{"stratum"}),
		pass: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pavement_designs_total",
			Help: "Completed designs by verdict.",
		}, []string{"pass"}),
	}
	m.reg.MustRegister(m.calcs, m.esals, m.pass,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Wrap counts the calls of a tool endpoint by response class.
func (m *Metrics) Wrap(tool string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)
		outcome := "ok"
		if rec.status >= 500 {
			outcome = "error"
		} else if rec.status >= 400 {
			outcome = "rejected"
		}
		m.calcs.WithLabelValues(tool, outcome).Inc()
	}
}

// ObserveDesign records the traffic seen by every interface of a run.
func (m *Metrics) ObserveDesign(res design.Result) {
	for _, c := range res.Checks {
		if c.ESALs > 0 {
			m.esals.WithLabelValues(string(c.Stratum)).Observe(math.Log10(c.ESALs))
		}
	}
	m.pass.WithLabelValues(strconv.FormatBool(res.Pass)).Inc()
}
