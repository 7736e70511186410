package metrics

import (
	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	ticks          *prom.CounterVec
	transitions    *prom.CounterVec
	storeFailures  *prom.CounterVec
	notifyFailures prom.Counter
	cycles         prom.Gauge
}

// NewPrometheusRecorder constructs the timer metrics and registers them on reg.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		ticks: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "pomodoro",
			Name:      "ticks_total",
			Help:      "Ticks that advanced the countdown, by phase",
		}, []string{"phase"}),
		transitions: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "pomodoro",
			Name:      "transitions_total",
			Help:      "Phase transitions by source and target phase",
		}, []string{"from", "to"}),
		storeFailures: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "pomodoro",
			Name:      "store_failures_total",
			Help:      "Failed state loads and saves",
		}, []string{"op"}),
		notifyFailures: prom.NewCounter(prom.CounterOpts{
			Namespace: "pomodoro",
			Name:      "notify_failures_total",
			Help:      "Phase notifications that could not be delivered",
		}),
		cycles: prom.NewGauge(prom.GaugeOpts{
			Namespace: "pomodoro",
			Name:      "completed_focus_cycles",
			Help:      "Focus phases completed since the last reset",
		}),
	}
	reg.MustRegister(pr.ticks, pr.transitions, pr.storeFailures, pr.notifyFailures, pr.cycles)
	return pr
}

func (p *PrometheusRecorder) IncTick(phase string) {
	if p == nil {
		return
	}
	p.ticks.WithLabelValues(phase).Inc()
}

func (p *PrometheusRecorder) IncTransition(from, to string) {
	if p == nil {
		return
	}
	p.transitions.WithLabelValues(from, to).Inc()
}

func (p *PrometheusRecorder) IncStoreFailure(op string) {
	if p == nil {
		return
	}
	p.storeFailures.WithLabelValues(op).Inc()
}

func (p *PrometheusRecorder) IncNotifyFailure() {
	if p == nil {
		return
	}
	p.notifyFailures.Inc()
}

func (p *PrometheusRecorder) SetCycles(n int) {
	if p == nil {
		return
	}
	p.cycles.Set(float64(n))
}
