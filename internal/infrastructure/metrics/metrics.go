package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/tu-usuario/gestion-pro/internal/domain/access"
)

var _ access.Recorder = (*EngineMetrics)(nil)

// EngineMetrics contadores Prometheus del motor de resolución de acceso.
type EngineMetrics struct {
	resolutions     *prometheus.CounterVec
	resyncs         *prometheus.CounterVec
	classifierSteps *prometheus.CounterVec
}

// NewRegistry crea el registry de la aplicación con los collectors de proceso
// y runtime de Go.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	_ = reg.Register(collectors.NewGoCollector())
	_ = reg.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return reg
}

// NewEngineMetrics registra los contadores del motor en el registry dado.
func NewEngineMetrics(reg prometheus.Registerer) *EngineMetrics {
	m := &EngineMetrics{
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "access_resolutions_total",
			Help: "Resoluciones de acceso completadas, por tier resultante.",
		}, []string{"tier"}),
		resyncs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "access_resync_total",
			Help: "Resincronizaciones de módulos disparadas por el guard de escasez.",
		}, []string{"result"}),
		classifierSteps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "role_classifier_steps_total",
			Help: "Pasos del clasificador de rol ejecutados, por paso y desenlace.",
		}, []string{"step", "outcome"}),
	}
	reg.MustRegister(m.resolutions, m.resyncs, m.classifierSteps)
	return m
}

// Resolution implementa access.Recorder.
func (m *EngineMetrics) Resolution(tier access.Tier) {
	m.resolutions.WithLabelValues(string(tier)).Inc()
}

// Resync implementa access.Recorder.
func (m *EngineMetrics) Resync(result string) {
	m.resyncs.WithLabelValues(result).Inc()
}

// ClassifierStep implementa access.Recorder.
func (m *EngineMetrics) ClassifierStep(step, outcome string) {
	m.classifierSteps.WithLabelValues(step, outcome).Inc()
}
