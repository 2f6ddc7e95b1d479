package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/YarKhan02/Workshop-sub000/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsListenerCountsOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetricsListener(reg)
	ctx := context.Background()

	m.BookingConfirmed(ctx, booking)
	m.BookingConfirmed(ctx, booking)
	m.SubmissionFailed(ctx, models.BookingDraft{}, errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Outcomes.WithLabelValues(OutcomeConfirmed)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Outcomes.WithLabelValues(OutcomeFailed)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Outcomes.WithLabelValues(OutcomeExpired)))
	assert.Equal(t, 3, testutil.CollectAndCount(m.Outcomes))
}
