package access

// Recorder recibe los contadores del motor. La implementación Prometheus vive
// en infrastructure/metrics; NopRecorder permite construir el motor sin
// observabilidad (tests, herramientas).
type Recorder interface {
	Resolution(tier Tier)
	Resync(result string)
	ClassifierStep(step, outcome string)
}

// Resultados reportados a Recorder.Resync.
const (
	ResyncOK     = "ok"
	ResyncFailed = "failed"
)

// Resultados reportados a Recorder.ClassifierStep.
const (
	StepConclusive   = "conclusive"
	StepInconclusive = "inconclusive"
	StepError        = "error"
)

// NopRecorder descarta todas las métricas.
type NopRecorder struct{}

func (NopRecorder) Resolution(Tier)               {}
func (NopRecorder) Resync(string)                 {}
func (NopRecorder) ClassifierStep(string, string) {}
