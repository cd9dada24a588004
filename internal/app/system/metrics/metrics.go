// internal/app/system/metrics/metrics.go

// Package metrics exposes Prometheus counters for the meeting engine.
// A nil *Metrics is valid and counts nothing, so tests and tools can run
// the engine without a registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/dalemusser/agorahub/internal/domain/models"
)

// Metrics holds the engine's Prometheus instruments.
type Metrics struct {
	meetingsCreated  prometheus.Counter
	signups          prometheus.Counter
	contributions    prometheus.Counter
	rankings         prometheus.Counter
	phaseTransitions *prometheus.CounterVec
	consensusGroups  *prometheus.CounterVec
	tokensCredited   *prometheus.CounterVec
}

// New registers the engine instruments with the given registry.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		meetingsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "agorahub_meetings_created_total",
			Help: "number of meetings created",
		}),
		signups: factory.NewCounter(prometheus.CounterOpts{
			Name: "agorahub_signups_total",
			Help: "number of successful meeting signups",
		}),
		contributions: factory.NewCounter(prometheus.CounterOpts{
			Name: "agorahub_contributions_total",
			Help: "number of accepted contributions",
		}),
		rankings: factory.NewCounter(prometheus.CounterOpts{
			Name: "agorahub_rankings_total",
			Help: "number of accepted rankings",
		}),
		phaseTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "agorahub_phase_transitions_total",
			Help: "number of phase transitions by entered phase",
		}, []string{"phase"}),
		consensusGroups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "agorahub_consensus_groups_total",
			Help: "number of finalized groups by consensus outcome",
		}, []string{"reached"}),
		tokensCredited: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "agorahub_tokens_credited_total",
			Help: "token amounts credited by token kind",
		}, []string{"token"}),
	}
}

func (m *Metrics) MeetingCreated() {
	if m != nil {
		m.meetingsCreated.Inc()
	}
}

func (m *Metrics) SignUp() {
	if m != nil {
		m.signups.Inc()
	}
}

func (m *Metrics) Contribution() {
	if m != nil {
		m.contributions.Inc()
	}
}

func (m *Metrics) Ranking() {
	if m != nil {
		m.rankings.Inc()
	}
}

func (m *Metrics) PhaseEntered(phase models.Phase) {
	if m != nil {
		m.phaseTransitions.WithLabelValues(string(phase)).Inc()
	}
}

func (m *Metrics) GroupFinalized(consensusReached bool) {
	if m != nil {
		if consensusReached {
			m.consensusGroups.WithLabelValues("true").Inc()
		} else {
			m.consensusGroups.WithLabelValues("false").Inc()
		}
	}
}

func (m *Metrics) TokensCredited(token models.Token, amount int64) {
	if m != nil {
		m.tokensCredited.WithLabelValues(string(token)).Add(float64(amount))
	}
}
