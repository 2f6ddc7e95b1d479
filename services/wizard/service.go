package wizard

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"strings"
	"sync"
	"time"

	"github.com/YarKhan02/Workshop-sub000/database/repository"
	"github.com/YarKhan02/Workshop-sub000/models"
	"github.com/YarKhan02/Workshop-sub000/services/backend"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// VehicleInput picks a saved vehicle by id, or carries new vehicle fields when SavedID is empty.
type VehicleInput struct {
	SavedID string
	Fields  models.Vehicle
}

// WizardService runs booking wizards on behalf of logged-in users. Every
// method checks that the session belongs to userID.
type WizardService interface {
	Start(ctx context.Context, userID string) (*models.WizardSession, error)
	Get(ctx context.Context, userID, sessionID string) (*models.WizardSession, error)
	SelectService(ctx context.Context, userID, sessionID, serviceID string) (*models.WizardSession, error)
	SetVehicle(ctx context.Context, userID, sessionID string, input VehicleInput) (*models.WizardSession, error)
	SelectTimeSlot(ctx context.Context, userID, sessionID, slotID, date string) (*models.WizardSession, error)
	SetNotes(ctx context.Context, userID, sessionID, notes string) (*models.WizardSession, error)
	Advance(ctx context.Context, userID, sessionID string) (*models.WizardSession, error)
	Retreat(ctx context.Context, userID, sessionID string) (*models.WizardSession, error)
	Reset(ctx context.Context, userID, sessionID string) (*models.WizardSession, error)
	Submit(ctx context.Context, userID, sessionID string) (*models.Booking, *models.WizardSession, error)
	Cancel(ctx context.Context, userID, sessionID string) error
}

// DefaultWizardService implements WizardService on top of a WizardRepository.
type DefaultWizardService struct {
	Repo     repository.WizardRepository
	Catalog  backend.CatalogGateway
	Vehicles backend.VehicleGateway
	Bookings backend.BookingGateway
	Listener Listener
	Logger   *zap.Logger

	inflight sync.Map
	// submitted holds sessions whose booking was created but whose stored
	// state could be neither deleted nor reset.
	submitted sync.Map
	locks     [sessionLockStripes]sync.Mutex
	now       func() time.Time
}

const sessionLockStripes = 64

// lockSession serializes writers of one session. Sessions share a fixed set of
// stripes, so unrelated sessions may occasionally wait on each other.
func (s *DefaultWizardService) lockSession(sessionID string) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sessionID))
	mu := &s.locks[h.Sum32()%sessionLockStripes]
	mu.Lock()
	return mu.Unlock
}

var _ WizardService = (*DefaultWizardService)(nil)

func NewWizardService(
	repo repository.WizardRepository,
	catalog backend.CatalogGateway,
	vehicles backend.VehicleGateway,
	bookings backend.BookingGateway,
	listener Listener,
	logger *zap.Logger,
) *DefaultWizardService {
	if listener == nil {
		listener = NopListener{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultWizardService{
		Repo:     repo,
		Catalog:  catalog,
		Vehicles: vehicles,
		Bookings: bookings,
		Listener: listener,
		Logger:   logger,
		now:      time.Now,
	}
}

func (s *DefaultWizardService) Start(ctx context.Context, userID string) (*models.WizardSession, error) {
	now := s.now().UTC()
	session := &models.WizardSession{
		SessionID: uuid.New().String(),
		UserID:    userID,
		State:     models.NewWizardState(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Save(ctx, session); err != nil {
		return nil, err
	}
	s.Logger.Info("Booking wizard started", zap.String("sessionID", session.SessionID), zap.String("userID", userID))
	return session, nil
}

func (s *DefaultWizardService) Get(ctx context.Context, userID, sessionID string) (*models.WizardSession, error) {
	return s.load(ctx, userID, sessionID)
}

func (s *DefaultWizardService) load(ctx context.Context, userID, sessionID string) (*models.WizardSession, error) {
	if sessionID == "" {
		return nil, ErrSessionNotFound
	}
	if _, done := s.submitted.Load(sessionID); done {
		return nil, ErrSessionNotFound
	}
	session, err := s.Repo.Get(ctx, sessionID)
	if errors.Is(err, repository.ErrWizardNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		s.Logger.Warn("Wizard session requested by another user",
			zap.String("sessionID", sessionID), zap.String("userID", userID))
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (s *DefaultWizardService) controller(state models.WizardState) *Controller {
	return NewController(state, s.Bookings, s.Listener)
}

// mutate loads the session, applies fn and saves the result. When fn fails the
// stored session is left untouched and returned as it was.
func (s *DefaultWizardService) mutate(ctx context.Context, userID, sessionID string, fn func(*Controller) error) (*models.WizardSession, error) {
	return s.mutateKeeping(ctx, userID, sessionID, func(c *Controller) (bool, error) {
		err := fn(c)
		return err == nil, err
	})
}

// mutateKeeping is mutate for changes that must be stored even when fn
// reports an error: fn returns keep=true to save the controller state anyway.
func (s *DefaultWizardService) mutateKeeping(ctx context.Context, userID, sessionID string, fn func(*Controller) (bool, error)) (*models.WizardSession, error) {
	unlock := s.lockSession(sessionID)
	defer unlock()

	session, err := s.load(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	ctrl := s.controller(session.State)
	keep, fnErr := fn(ctrl)
	if !keep {
		return session, fnErr
	}
	session.State = ctrl.State
	session.UpdatedAt = s.now().UTC()
	if err := s.Repo.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, fnErr
}

// SelectService resolves serviceID against the catalog. Switching to another
// service drops the chosen time slot, since slots belong to a service.
func (s *DefaultWizardService) SelectService(ctx context.Context, userID, sessionID, serviceID string) (*models.WizardSession, error) {
	return s.mutate(ctx, userID, sessionID, func(c *Controller) error {
		services, err := s.Catalog.ListServices(ctx)
		if err != nil {
			return err
		}
		for _, svc := range services {
			if svc.ID != serviceID {
				continue
			}
			if c.State.Draft.Service.ID != svc.ID && c.State.Draft.TimeSlot.IsSet() {
				if err := c.UpdateField(FieldTimeSlot, models.SlotRef{}); err != nil {
					return err
				}
			}
			return c.UpdateField(FieldService, svc)
		}
		return fmt.Errorf("%w: %q", ErrUnknownService, serviceID)
	})
}

func (s *DefaultWizardService) SetVehicle(ctx context.Context, userID, sessionID string, input VehicleInput) (*models.WizardSession, error) {
	return s.mutate(ctx, userID, sessionID, func(c *Controller) error {
		if input.SavedID == "" {
			vehicle := input.Fields
			vehicle.ID = ""
			return c.UpdateField(FieldVehicle, vehicle)
		}
		saved, err := s.Vehicles.ListSaved(ctx, userID)
		if err != nil {
			return err
		}
		for _, v := range saved {
			if v.ID == input.SavedID {
				return c.UpdateField(FieldVehicle, v)
			}
		}
		return fmt.Errorf("%w: %q", ErrUnknownVehicle, input.SavedID)
	})
}

// SelectTimeSlot resolves slotID among the open slots of the draft's service on date.
func (s *DefaultWizardService) SelectTimeSlot(ctx context.Context, userID, sessionID, slotID, date string) (*models.WizardSession, error) {
	return s.mutate(ctx, userID, sessionID, func(c *Controller) error {
		if !c.State.Draft.Service.IsSet() {
			return &StepError{Step: models.StepService, Missing: []string{string(FieldService)}}
		}
		slots, err := s.Catalog.ListTimeSlots(ctx, c.State.Draft.Service.ID, date)
		if err != nil {
			return err
		}
		for _, slot := range slots {
			if slot.ID != slotID {
				continue
			}
			if !slot.Available {
				break
			}
			return c.UpdateField(FieldTimeSlot, slot)
		}
		return fmt.Errorf("%w: %q", ErrSlotUnavailable, slotID)
	})
}

func (s *DefaultWizardService) SetNotes(ctx context.Context, userID, sessionID, notes string) (*models.WizardSession, error) {
	return s.mutate(ctx, userID, sessionID, func(c *Controller) error {
		return c.UpdateField(FieldNotes, notes)
	})
}

// Advance moves the wizard forward. Leaving the vehicle step with a vehicle
// that was typed in rather than picked saves it to the customer's vehicles
// first, reusing a saved vehicle with the same plate. The saved record is kept
// in the draft even if the step change itself fails.
func (s *DefaultWizardService) Advance(ctx context.Context, userID, sessionID string) (*models.WizardSession, error) {
	return s.mutateKeeping(ctx, userID, sessionID, func(c *Controller) (bool, error) {
		if c.State.CurrentStep != models.StepVehicle || !c.CanAdvance() || c.State.Draft.Vehicle.ID != "" {
			err := c.Advance()
			return err == nil, err
		}
		saved, err := s.saveVehicle(ctx, userID, c.State.Draft.Vehicle)
		if err != nil {
			return false, err
		}
		if err := c.UpdateField(FieldVehicle, *saved); err != nil {
			return false, err
		}
		return true, c.Advance()
	})
}

// saveVehicle returns the customer's saved vehicle with the same plate, or creates one.
func (s *DefaultWizardService) saveVehicle(ctx context.Context, userID string, v models.Vehicle) (*models.Vehicle, error) {
	saved, err := s.Vehicles.ListSaved(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, existing := range saved {
		if existing.ID != "" && samePlate(existing.LicensePlate, v.LicensePlate) {
			return &existing, nil
		}
	}
	return s.Vehicles.Create(ctx, v)
}

func samePlate(a, b string) bool {
	norm := func(p string) string {
		return strings.ToUpper(strings.Join(strings.Fields(p), ""))
	}
	return norm(a) != "" && norm(a) == norm(b)
}

func (s *DefaultWizardService) Retreat(ctx context.Context, userID, sessionID string) (*models.WizardSession, error) {
	return s.mutate(ctx, userID, sessionID, func(c *Controller) error {
		c.Retreat()
		return nil
	})
}

func (s *DefaultWizardService) Reset(ctx context.Context, userID, sessionID string) (*models.WizardSession, error) {
	return s.mutate(ctx, userID, sessionID, func(c *Controller) error {
		c.Reset()
		return nil
	})
}

// Submit creates the booking. Only one submit per session may be in flight;
// a second concurrent call gets ErrSubmissionInFlight. After a successful
// submit the session is discarded and the returned session holds the reset state.
func (s *DefaultWizardService) Submit(ctx context.Context, userID, sessionID string) (*models.Booking, *models.WizardSession, error) {
	if _, busy := s.inflight.LoadOrStore(sessionID, struct{}{}); busy {
		return nil, nil, ErrSubmissionInFlight
	}
	defer s.inflight.Delete(sessionID)

	unlock := s.lockSession(sessionID)
	defer unlock()

	session, err := s.load(ctx, userID, sessionID)
	if err != nil {
		return nil, nil, err
	}
	ctrl := s.controller(session.State)
	booking, err := ctrl.Submit(ctx)
	if err != nil {
		s.Logger.Warn("Booking submission failed", zap.String("sessionID", sessionID), zap.Error(err))
		return nil, session, err
	}

	session.State = ctrl.State
	session.UpdatedAt = s.now().UTC()
	s.discardSubmitted(ctx, session)
	s.Logger.Info("Booking submitted", zap.String("sessionID", sessionID), zap.String("bookingID", booking.ID))
	return booking, session, nil
}

// discardSubmitted removes a submitted session. If the delete fails the reset
// state is stored instead, and if that fails too the session is refused for
// the rest of the process so the same draft cannot be booked twice.
func (s *DefaultWizardService) discardSubmitted(ctx context.Context, session *models.WizardSession) {
	// The booking exists now; a cancelled request must not skip the cleanup.
	ctx = context.WithoutCancel(ctx)
	delErr := s.Repo.Delete(ctx, session.SessionID)
	if delErr == nil {
		return
	}
	saveErr := s.Repo.Save(ctx, session)
	if saveErr == nil {
		s.Logger.Warn("Failed to discard submitted wizard session, stored reset state instead",
			zap.String("sessionID", session.SessionID), zap.Error(delErr))
		return
	}
	s.submitted.Store(session.SessionID, session.UpdatedAt)
	s.Logger.Error("Failed to discard submitted wizard session",
		zap.String("sessionID", session.SessionID), zap.NamedError("deleteError", delErr), zap.NamedError("saveError", saveErr))
}

func (s *DefaultWizardService) Cancel(ctx context.Context, userID, sessionID string) error {
	unlock := s.lockSession(sessionID)
	defer unlock()

	if _, err := s.load(ctx, userID, sessionID); err != nil {
		return err
	}
	return s.Repo.Delete(ctx, sessionID)
}
