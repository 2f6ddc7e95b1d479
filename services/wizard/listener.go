package wizard

import (
	"context"

	"github.com/YarKhan02/Workshop-sub000/models"
)

// Listener receives the outcome of a submit. Exactly one method is called per
// submit that reached the booking gateway.
type Listener interface {
	BookingConfirmed(ctx context.Context, booking models.Booking)
	SubmissionFailed(ctx context.Context, draft models.BookingDraft, err error)
	SessionExpired(ctx context.Context, err error)
}

type NopListener struct{}

func (NopListener) BookingConfirmed(context.Context, models.Booking)             {}
func (NopListener) SubmissionFailed(context.Context, models.BookingDraft, error) {}
func (NopListener) SessionExpired(context.Context, error)                        {}
