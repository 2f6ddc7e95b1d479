package models

import "time"

// Step is a position in the booking wizard.
type Step int

const (
	StepService Step = iota + 1
	StepVehicle
	StepSchedule
	StepReview
)

const (
	FirstStep = StepService
	LastStep  = StepReview
)

func (s Step) String() string {
	switch s {
	case StepService:
		return "Service Selection"
	case StepVehicle:
		return "Vehicle Details"
	case StepSchedule:
		return "Date & Time"
	case StepReview:
		return "Review & Confirm"
	}
	return "Unknown"
}

// WizardState is the whole state of one booking wizard.
type WizardState struct {
	CurrentStep Step         `json:"current_step" bson:"current_step"`
	Draft       BookingDraft `json:"draft" bson:"draft"`
}

// NewWizardState returns the state a freshly mounted wizard starts from.
func NewWizardState() WizardState {
	return WizardState{CurrentStep: FirstStep}
}

// WizardSession holds one user's wizard between requests.
type WizardSession struct {
	SessionID string      `json:"sessionId" bson:"sessionId"`
	UserID    string      `json:"userId" bson:"userId"`
	State     WizardState `json:"state" bson:"state"`
	CreatedAt time.Time   `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt" bson:"updatedAt"`
}
