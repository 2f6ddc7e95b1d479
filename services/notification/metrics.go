package notification

import (
	"context"

	"github.com/YarKhan02/Workshop-sub000/models"
	"github.com/YarKhan02/Workshop-sub000/services/wizard"

	"github.com/prometheus/client_golang/prometheus"
)

// Submit outcome label values.
const (
	OutcomeConfirmed = "confirmed"
	OutcomeFailed    = "failed"
	OutcomeExpired   = "expired"
)

// MetricsListener counts submit outcomes.
type MetricsListener struct {
	Outcomes *prometheus.CounterVec
}

var _ wizard.Listener = (*MetricsListener)(nil)

func NewMetricsListener(reg prometheus.Registerer) *MetricsListener {
	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "workshop",
		Subsystem: "wizard",
		Name:      "submissions_total",
		Help:      "Booking submissions by outcome.",
	}, []string{"outcome"})
	reg.MustRegister(outcomes)
	for _, o := range []string{OutcomeConfirmed, OutcomeFailed, OutcomeExpired} {
		outcomes.WithLabelValues(o)
	}
	return &MetricsListener{Outcomes: outcomes}
}

func (m *MetricsListener) BookingConfirmed(context.Context, models.Booking) {
	m.Outcomes.WithLabelValues(OutcomeConfirmed).Inc()
}

func (m *MetricsListener) SubmissionFailed(context.Context, models.BookingDraft, error) {
	m.Outcomes.WithLabelValues(OutcomeFailed).Inc()
}

func (m *MetricsListener) SessionExpired(context.Context, error) {
	m.Outcomes.WithLabelValues(OutcomeExpired).Inc()
}
