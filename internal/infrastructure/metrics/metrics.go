package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	ResultReady           = "ready"
	ResultInvalidAmount   = "invalid_amount"
	ResultBuilderRejected = "builder_rejected"
	ResultRenderFailed    = "render_failed"
	ResultOK              = "ok"
	ResultEmpty           = "empty"
	ResultError           = "error"
)

// Recorder counts form events.
type Recorder struct {
	generations *prometheus.CounterVec
	saves       *prometheus.CounterVec
	restores    *prometheus.CounterVec
}

func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "khqr",
			Name:      "generations_total",
			Help:      "KHQR generation attempts by result.",
		}, []string{"result"}),
		saves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "khqr",
			Name:      "saves_total",
			Help:      "Payload save attempts by result.",
		}, []string{"result"}),
		restores: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "khqr",
			Name:      "restores_total",
			Help:      "Payload restore attempts by result.",
		}, []string{"result"}),
	}
	reg.MustRegister(r.generations, r.saves, r.restores)
	return r
}

func (r *Recorder) Generation(result string) {
	if r == nil {
		return
	}
	r.generations.WithLabelValues(result).Inc()
}

func (r *Recorder) Save(result string) {
	if r == nil {
		return
	}
	r.saves.WithLabelValues(result).Inc()
}

func (r *Recorder) Restore(result string) {
	if r == nil {
		return
	}
	r.restores.WithLabelValues(result).Inc()
}
