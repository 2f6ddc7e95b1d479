package wizard

import (
	"context"
	"errors"
	"testing"

	"github.com/YarKhan02/Workshop-sub000/models"
	"github.com/YarKhan02/Workshop-sub000/services/backend"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestController(state models.WizardState) (*Controller, *fakeBookings, *recordingListener) {
	bookings := &fakeBookings{}
	listener := &recordingListener{}
	return NewController(state, bookings, listener), bookings, listener
}

func TestClamping(t *testing.T) {
	for step := models.FirstStep; step <= models.LastStep; step++ {
		state := models.WizardState{CurrentStep: step, Draft: completeDraft()}
		c, _, _ := newTestController(state)
		c.Retreat()
		assert.Equal(t, max(step-1, models.FirstStep), c.State.CurrentStep)

		c, _, _ = newTestController(state)
		require.NoError(t, c.Advance())
		assert.Equal(t, min(step+1, models.LastStep), c.State.CurrentStep)
	}

	c, _, _ := newTestController(models.NewWizardState())
	c.Retreat()
	assert.Equal(t, models.StepService, c.State.CurrentStep)

	c, _, _ = newTestController(models.WizardState{CurrentStep: models.StepReview})
	require.NoError(t, c.Advance())
	assert.Equal(t, models.StepReview, c.State.CurrentStep)
}

func TestNewControllerClampsStoredStep(t *testing.T) {
	c, _, _ := newTestController(models.WizardState{CurrentStep: 0})
	assert.Equal(t, models.StepService, c.State.CurrentStep)
	c, _, _ = newTestController(models.WizardState{CurrentStep: 9})
	assert.Equal(t, models.StepReview, c.State.CurrentStep)
}

func TestReset(t *testing.T) {
	for step := models.FirstStep; step <= models.LastStep; step++ {
		c, _, _ := newTestController(models.WizardState{CurrentStep: step, Draft: completeDraft()})
		c.Reset()
		assert.Equal(t, models.NewWizardState(), c.State)
		assert.Equal(t, models.StepService, c.State.CurrentStep)
		assert.Equal(t, models.BookingDraft{}, c.State.Draft)
	}
}

func TestCanAdvanceServiceStep(t *testing.T) {
	assert.False(t, CanAdvance(models.StepService, models.BookingDraft{}))
	assert.True(t, CanAdvance(models.StepService, models.BookingDraft{Service: models.UnresolvedService("1")}))
	assert.True(t, CanAdvance(models.StepService, models.BookingDraft{Service: models.ResolvedService(exterior)}))
}

func TestCanAdvanceVehicleStep(t *testing.T) {
	assert.True(t, CanAdvance(models.StepVehicle, models.BookingDraft{Vehicle: camry}))

	blank := []func(*models.Vehicle){
		func(v *models.Vehicle) { v.Make = "" },
		func(v *models.Vehicle) { v.Model = "" },
		func(v *models.Vehicle) { v.Year = "" },
		func(v *models.Vehicle) { v.LicensePlate = "" },
	}
	for i, blankField := range blank {
		v := camry
		blankField(&v)
		assert.False(t, CanAdvance(models.StepVehicle, models.BookingDraft{Vehicle: v}), "case %d", i)
	}

	noColor := camry
	noColor.Color = ""
	assert.True(t, CanAdvance(models.StepVehicle, models.BookingDraft{Vehicle: noColor}))
}

func TestCanAdvanceScheduleAndReview(t *testing.T) {
	assert.False(t, CanAdvance(models.StepSchedule, models.BookingDraft{}))
	assert.True(t, CanAdvance(models.StepSchedule, models.BookingDraft{TimeSlot: models.UnresolvedSlot("s1")}))
	assert.True(t, CanAdvance(models.StepReview, models.BookingDraft{}))
}

func TestUpdateFieldLastWriteWins(t *testing.T) {
	c, _, _ := newTestController(models.NewWizardState())
	require.NoError(t, c.UpdateField(FieldNotes, "hello"))
	require.NoError(t, c.UpdateField(FieldNotes, ""))
	assert.Equal(t, "", c.State.Draft.Notes)

	require.NoError(t, c.UpdateField(FieldService, "1"))
	_, resolved := c.State.Draft.Service.Resolved()
	assert.False(t, resolved)
	require.NoError(t, c.UpdateField(FieldService, interior))
	svc, resolved := c.State.Draft.Service.Resolved()
	require.True(t, resolved)
	assert.Equal(t, "2", svc.ID)

	require.NoError(t, c.UpdateField(FieldVehicle, camry))
	require.NoError(t, c.UpdateField(FieldVehicle, models.Vehicle{Make: "Honda"}))
	assert.Equal(t, models.Vehicle{Make: "Honda"}, c.State.Draft.Vehicle)
}

func TestUpdateFieldRejectsWrongTypes(t *testing.T) {
	c, _, _ := newTestController(models.NewWizardState())
	assert.ErrorIs(t, c.UpdateField(FieldNotes, 5), ErrFieldType)
	assert.ErrorIs(t, c.UpdateField(FieldVehicle, "Toyota"), ErrFieldType)
	assert.ErrorIs(t, c.UpdateField(FieldService, 1), ErrFieldType)
	assert.ErrorIs(t, c.UpdateField(FieldTimeSlot, []string{"x"}), ErrFieldType)
	assert.ErrorIs(t, c.UpdateField(Field("price"), "1"), ErrUnknownField)
	assert.Equal(t, models.BookingDraft{}, c.State.Draft)
}

func TestEndToEndStepping(t *testing.T) {
	c, _, _ := newTestController(models.NewWizardState())

	require.NoError(t, c.UpdateField(FieldService, exterior))
	require.NoError(t, c.Advance())
	assert.Equal(t, models.StepVehicle, c.State.CurrentStep)

	err := c.Advance()
	assert.False(t, CanAdvance(models.StepVehicle, c.State.Draft))
	assert.ErrorIs(t, err, ErrStepIncomplete)
	var stepErr *StepError
	require.True(t, errors.As(err, &stepErr))
	assert.Equal(t, models.StepVehicle, stepErr.Step)
	assert.Equal(t, []string{"make", "model", "year", "license_plate"}, stepErr.Missing)
	assert.Equal(t, models.StepVehicle, c.State.CurrentStep)

	require.NoError(t, c.UpdateField(FieldVehicle, camry))
	require.NoError(t, c.Advance())
	assert.Equal(t, models.StepSchedule, c.State.CurrentStep)

	assert.ErrorIs(t, c.Advance(), ErrStepIncomplete)
	require.NoError(t, c.UpdateField(FieldTimeSlot, morning))
	require.NoError(t, c.Advance())
	assert.Equal(t, models.StepReview, c.State.CurrentStep)
}

func TestSubmitSuccessResetsAndConfirmsOnce(t *testing.T) {
	c, bookings, listener := newTestController(models.WizardState{CurrentStep: models.StepReview, Draft: completeDraft()})

	booking, err := c.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "BK0001", booking.ID)

	assert.Equal(t, models.NewWizardState(), c.State)
	require.Len(t, listener.confirmed, 1)
	assert.Equal(t, "BK0001", listener.confirmed[0].ID)
	assert.Empty(t, listener.failed)
	assert.Empty(t, listener.expired)

	require.Len(t, bookings.requests, 1)
	assert.Equal(t, models.BookingRequest{
		ServiceID:  "1",
		Vehicle:    camry,
		TimeSlotID: morning.ID,
		Notes:      "Please call on arrival",
	}, bookings.requests[0])
}

func TestSubmitFailureKeepsDraft(t *testing.T) {
	state := models.WizardState{CurrentStep: models.StepReview, Draft: completeDraft()}
	c, bookings, listener := newTestController(state)
	bookings.err = &backend.APIError{Status: 500, Message: "database unavailable"}

	booking, err := c.Submit(context.Background())
	assert.Nil(t, booking)
	require.Error(t, err)

	assert.Equal(t, state, c.State)
	assert.Equal(t, 1, bookings.calls(), "no automatic retry")
	assert.Len(t, listener.failed, 1)
	assert.Empty(t, listener.confirmed)
	assert.Empty(t, listener.expired)
}

func TestSubmitAuthFailureSignalsSessionExpired(t *testing.T) {
	state := models.WizardState{CurrentStep: models.StepReview, Draft: completeDraft()}
	c, bookings, listener := newTestController(state)
	bookings.err = &backend.APIError{Status: 401, Message: "Given token not valid for any token type"}

	_, err := c.Submit(context.Background())
	require.Error(t, err)
	assert.True(t, backend.IsAuthError(err))
	assert.Equal(t, state, c.State)
	assert.Len(t, listener.expired, 1)
	assert.Empty(t, listener.failed)
}

func TestSubmitGuards(t *testing.T) {
	cases := []struct {
		name  string
		state models.WizardState
		want  error
	}{
		{"wrong step", models.WizardState{CurrentStep: models.StepSchedule, Draft: completeDraft()}, ErrWrongStep},
		{"partial draft", models.WizardState{CurrentStep: models.StepReview, Draft: models.BookingDraft{Service: models.ResolvedService(exterior)}}, ErrNotSubmittable},
		{"unresolved service", models.WizardState{CurrentStep: models.StepReview, Draft: func() models.BookingDraft {
			d := completeDraft()
			d.Service = models.UnresolvedService("1")
			return d
		}()}, ErrUnresolvedRef},
		{"unresolved slot", models.WizardState{CurrentStep: models.StepReview, Draft: func() models.BookingDraft {
			d := completeDraft()
			d.TimeSlot = models.UnresolvedSlot(morning.ID)
			return d
		}()}, ErrUnresolvedRef},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, bookings, listener := newTestController(tc.state)
			_, err := c.Submit(context.Background())
			assert.ErrorIs(t, err, tc.want)
			assert.Equal(t, tc.state, c.State)
			assert.Zero(t, bookings.calls())
			assert.Empty(t, listener.failed)
			assert.Empty(t, listener.confirmed)
		})
	}
}
