package observability

import (
	"context"
	"strconv"

	"github.com/cardio-onc/qtwizard/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the wizard collectors.
type Metrics struct {
	Transitions *prometheus.CounterVec
	StepVisits  *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "qtwizard_transitions_total",
				Help: "Navigation requests by entry point and outcome",
			},
			[]string{"kind", "outcome"},
		),
		StepVisits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "qtwizard_step_visits_total",
				Help: "Committed arrivals per step",
			},
			[]string{"step"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Transitions, m.StepVisits)
	}
	return m
}

// Hooks returns lifecycle hooks recording into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	committed := func(_ context.Context, e *domain.TransitionEvent) {
		m.Transitions.WithLabelValues(string(e.Kind), "committed").Inc()
		m.StepVisits.WithLabelValues(strconv.Itoa(e.To)).Inc()
	}
	return domain.LifecycleHooks{
		OnTransition: committed,
		OnReplay:     committed,
		OnBlocked: func(_ context.Context, e *domain.TransitionEvent) {
			m.Transitions.WithLabelValues(string(e.Kind), string(e.Reason)).Inc()
		},
	}
}
