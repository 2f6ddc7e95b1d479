// Package notification reacts to booking wizard submit outcomes.
package notification

import (
	"context"

	"github.com/YarKhan02/Workshop-sub000/models"
	"github.com/YarKhan02/Workshop-sub000/services/tasks"
	"github.com/YarKhan02/Workshop-sub000/services/wizard"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// LogListener records every submit outcome.
type LogListener struct {
	Logger *zap.Logger
}

var _ wizard.Listener = LogListener{}

func (l LogListener) BookingConfirmed(_ context.Context, booking models.Booking) {
	l.Logger.Info("Booking confirmed",
		zap.String("bookingID", booking.ID),
		zap.String("customerID", booking.CustomerID),
		zap.String("scheduledDate", booking.ScheduledDate))
}

func (l LogListener) SubmissionFailed(_ context.Context, draft models.BookingDraft, err error) {
	l.Logger.Warn("Booking submission failed",
		zap.String("serviceID", draft.Service.ID),
		zap.String("timeSlotID", draft.TimeSlot.ID),
		zap.Error(err))
}

func (l LogListener) SessionExpired(_ context.Context, err error) {
	l.Logger.Info("Session expired during booking submission", zap.Error(err))
}

// Enqueuer is the part of *asynq.Client the queue listener needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// QueueListener hands confirmed bookings to the confirmation worker.
// Failures and expiries are not queued.
type QueueListener struct {
	Queue  Enqueuer
	Logger *zap.Logger
}

var _ wizard.Listener = QueueListener{}

func (l QueueListener) BookingConfirmed(ctx context.Context, booking models.Booking) {
	task, opts, err := tasks.NewConfirmationTask(models.ConfirmationPayload{
		UserID:  booking.CustomerID,
		Booking: booking,
	})
	if err != nil {
		l.Logger.Error("Failed to build confirmation task", zap.String("bookingID", booking.ID), zap.Error(err))
		return
	}
	// The request context ends with the response; the enqueue must not.
	info, err := l.Queue.EnqueueContext(context.WithoutCancel(ctx), task, opts...)
	if err != nil {
		l.Logger.Error("Failed to enqueue confirmation", zap.String("bookingID", booking.ID), zap.Error(err))
		return
	}
	l.Logger.Debug("Confirmation enqueued", zap.String("bookingID", booking.ID), zap.String("taskID", info.ID))
}

func (QueueListener) SubmissionFailed(context.Context, models.BookingDraft, error) {}

func (QueueListener) SessionExpired(context.Context, error) {}

// Multi fans every event out to each listener in order.
type Multi []wizard.Listener

var _ wizard.Listener = Multi{}

func (m Multi) BookingConfirmed(ctx context.Context, booking models.Booking) {
	for _, l := range m {
		l.BookingConfirmed(ctx, booking)
	}
}

func (m Multi) SubmissionFailed(ctx context.Context, draft models.BookingDraft, err error) {
	for _, l := range m {
		l.SubmissionFailed(ctx, draft, err)
	}
}

func (m Multi) SessionExpired(ctx context.Context, err error) {
	for _, l := range m {
		l.SessionExpired(ctx, err)
	}
}
