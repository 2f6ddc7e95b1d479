package wizard

import (
	"context"
	"fmt"

	"github.com/YarKhan02/Workshop-sub000/models"
	"github.com/YarKhan02/Workshop-sub000/services/backend"
)

// Field names a replaceable part of the booking draft.
type Field string

const (
	FieldService  Field = "service"
	FieldVehicle  Field = "vehicle"
	FieldTimeSlot Field = "timeSlot"
	FieldNotes    Field = "notes"
)

// Controller drives one wizard. It is not safe for concurrent use; the session
// service loads a fresh Controller per request.
type Controller struct {
	State    models.WizardState
	Bookings backend.BookingGateway
	Listener Listener
}

func NewController(state models.WizardState, bookings backend.BookingGateway, listener Listener) *Controller {
	if listener == nil {
		listener = NopListener{}
	}
	state.CurrentStep = clamp(state.CurrentStep)
	return &Controller{State: state, Bookings: bookings, Listener: listener}
}

func clamp(step models.Step) models.Step {
	if step < models.FirstStep {
		return models.FirstStep
	}
	if step > models.LastStep {
		return models.LastStep
	}
	return step
}

// MissingFor lists what the draft still needs before step can be left.
func MissingFor(step models.Step, draft models.BookingDraft) []string {
	switch step {
	case models.StepService:
		if !draft.Service.IsSet() {
			return []string{string(FieldService)}
		}
	case models.StepVehicle:
		return draft.Vehicle.Missing()
	case models.StepSchedule:
		if !draft.TimeSlot.IsSet() {
			return []string{string(FieldTimeSlot)}
		}
	}
	return nil
}

// CanAdvance is the gate for leaving step. The review step always passes;
// the submit action governs it.
func CanAdvance(step models.Step, draft models.BookingDraft) bool {
	return len(MissingFor(step, draft)) == 0
}

func (c *Controller) CanAdvance() bool {
	return CanAdvance(c.State.CurrentStep, c.State.Draft)
}

// Advance moves forward one step. It refuses with a *StepError when the
// current step is incomplete and does nothing on the last step.
func (c *Controller) Advance() error {
	step := c.State.CurrentStep
	if step >= models.LastStep {
		return nil
	}
	if missing := MissingFor(step, c.State.Draft); len(missing) > 0 {
		return &StepError{Step: step, Missing: missing}
	}
	c.State.CurrentStep = step + 1
	return nil
}

// Retreat moves back one step and does nothing on the first step.
func (c *Controller) Retreat() {
	if c.State.CurrentStep > models.FirstStep {
		c.State.CurrentStep--
	}
}

func (c *Controller) Reset() {
	c.State = models.NewWizardState()
}

// UpdateField replaces one draft field. Service and time slot accept a ref,
// a full record (resolved) or a bare id (unresolved).
func (c *Controller) UpdateField(field Field, value any) error {
	draft := &c.State.Draft
	switch field {
	case FieldService:
		switch v := value.(type) {
		case models.ServiceRef:
			draft.Service = v
		case models.Service:
			draft.Service = models.ResolvedService(v)
		case string:
			draft.Service = models.UnresolvedService(v)
		default:
			return fmt.Errorf("%w: %s wants a service, got %T", ErrFieldType, field, value)
		}
	case FieldVehicle:
		v, ok := value.(models.Vehicle)
		if !ok {
			return fmt.Errorf("%w: %s wants a vehicle, got %T", ErrFieldType, field, value)
		}
		draft.Vehicle = v
	case FieldTimeSlot:
		switch v := value.(type) {
		case models.SlotRef:
			draft.TimeSlot = v
		case models.TimeSlot:
			draft.TimeSlot = models.ResolvedSlot(v)
		case string:
			draft.TimeSlot = models.UnresolvedSlot(v)
		default:
			return fmt.Errorf("%w: %s wants a time slot, got %T", ErrFieldType, field, value)
		}
	case FieldNotes:
		v, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: %s wants a string, got %T", ErrFieldType, field, value)
		}
		draft.Notes = v
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// BuildRequest packages a complete, resolved draft for the booking gateway.
func BuildRequest(draft models.BookingDraft) (models.BookingRequest, error) {
	if !draft.Submittable() {
		return models.BookingRequest{}, ErrNotSubmittable
	}
	svc, ok := draft.Service.Resolved()
	if !ok {
		return models.BookingRequest{}, ErrUnresolvedRef
	}
	slot, ok := draft.TimeSlot.Resolved()
	if !ok {
		return models.BookingRequest{}, ErrUnresolvedRef
	}
	return models.BookingRequest{
		ServiceID:  svc.ID,
		Vehicle:    draft.Vehicle,
		TimeSlotID: slot.ID,
		Notes:      draft.Notes,
	}, nil
}

// Submit sends the draft once. On success the wizard is reset and
// BookingConfirmed fires; on failure the state is left alone and either
// SessionExpired or SubmissionFailed fires. Nothing is retried.
func (c *Controller) Submit(ctx context.Context) (*models.Booking, error) {
	if c.State.CurrentStep != models.StepReview {
		return nil, ErrWrongStep
	}
	req, err := BuildRequest(c.State.Draft)
	if err != nil {
		return nil, err
	}

	booking, err := c.Bookings.Create(ctx, req)
	if err != nil {
		if backend.IsAuthError(err) {
			c.Listener.SessionExpired(ctx, err)
		} else {
			c.Listener.SubmissionFailed(ctx, c.State.Draft, err)
		}
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	c.Reset()
	c.Listener.BookingConfirmed(ctx, *booking)
	return booking, nil
}
