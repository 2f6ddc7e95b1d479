package wizard

import (
	"fmt"
	"strings"

	"github.com/YarKhan02/Workshop-sub000/models"
)

type WizardError struct {
	Code    string
	Message string
}

func (e *WizardError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newWizardError(code, msg string) *WizardError {
	return &WizardError{Code: code, Message: msg}
}

var (
	ErrStepIncomplete     = newWizardError("stepIncomplete", "the current step is missing required information")
	ErrNotSubmittable     = newWizardError("notSubmittable", "service, vehicle and time slot are required before submitting")
	ErrUnresolvedRef      = newWizardError("unresolvedRef", "service and time slot must be resolved before submitting")
	ErrWrongStep          = newWizardError("wrongStep", "bookings can only be submitted from the review step")
	ErrUnknownField       = newWizardError("unknownField", "unknown draft field")
	ErrFieldType          = newWizardError("fieldType", "value does not match the draft field")
	ErrSessionNotFound    = newWizardError("sessionNotFound", "booking session not found or expired")
	ErrUnknownService     = newWizardError("unknownService", "selected service is not in the catalog")
	ErrUnknownVehicle     = newWizardError("unknownVehicle", "selected vehicle is not one of your saved vehicles")
	ErrSlotUnavailable    = newWizardError("slotUnavailable", "selected time slot is not available")
	ErrSubmissionInFlight = newWizardError("submissionInFlight", "a submission for this booking is already in progress")
)

// StepError names the step that blocked an advance and the fields it still needs.
type StepError struct {
	Step    models.Step
	Missing []string
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s) is incomplete: missing %s", e.Step, e.Step, strings.Join(e.Missing, ", "))
}

func (e *StepError) Unwrap() error {
	return ErrStepIncomplete
}
