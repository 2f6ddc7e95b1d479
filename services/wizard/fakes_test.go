package wizard

import (
	"context"
	"sync"

	"github.com/YarKhan02/Workshop-sub000/models"
)

type recordingListener struct {
	mu        sync.Mutex
	confirmed []models.Booking
	failed    []error
	expired   []error
}

func (l *recordingListener) BookingConfirmed(_ context.Context, b models.Booking) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.confirmed = append(l.confirmed, b)
}

func (l *recordingListener) SubmissionFailed(_ context.Context, _ models.BookingDraft, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.failed = append(l.failed, err)
}

func (l *recordingListener) SessionExpired(_ context.Context, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.expired = append(l.expired, err)
}

type fakeBookings struct {
	mu       sync.Mutex
	requests []models.BookingRequest
	err      error
	release  chan struct{}
	started  chan struct{}
}

func (f *fakeBookings) Create(_ context.Context, req models.BookingRequest) (*models.Booking, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
	if f.err != nil {
		return nil, f.err
	}
	return &models.Booking{
		ID:            "BK0001",
		Status:        models.BookingStatusPending,
		CustomerID:    "42",
		ScheduledDate: "2026-11-02",
		Amounts:       models.Amounts{Subtotal: "1299.00", Tax: "233.82", Total: "1532.82"},
	}, nil
}

func (f *fakeBookings) List(context.Context, string) ([]models.Booking, error) { return nil, nil }

func (f *fakeBookings) Get(context.Context, string) (*models.Booking, error) { return nil, nil }

func (f *fakeBookings) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

type fakeCatalog struct {
	services []models.Service
	slots    map[string][]models.TimeSlot
	err      error
}

func (f *fakeCatalog) ListServices(context.Context) ([]models.Service, error) {
	return f.services, f.err
}

func (f *fakeCatalog) ListTimeSlots(_ context.Context, serviceID, _ string) ([]models.TimeSlot, error) {
	return f.slots[serviceID], f.err
}

type fakeVehicles struct {
	saved   []models.Vehicle
	created []models.Vehicle
	// echo, when set, is what Create answers instead of the submitted vehicle.
	echo *models.Vehicle
	err  error
}

func (f *fakeVehicles) ListSaved(context.Context, string) ([]models.Vehicle, error) {
	if f.err != nil {
		return nil, f.err
	}
	return append(append([]models.Vehicle{}, f.saved...), f.created...), nil
}

func (f *fakeVehicles) Create(_ context.Context, v models.Vehicle) (*models.Vehicle, error) {
	if f.err != nil {
		return nil, f.err
	}
	v.ID = "v-new"
	if f.echo != nil {
		v = *f.echo
	}
	f.created = append(f.created, v)
	return &v, nil
}

var (
	exterior = models.Service{ID: "1", Name: "Exterior Detailing", Price: "₹1299", Duration: 90}
	interior = models.Service{ID: "2", Name: "Interior Detailing", Price: "₹1499", Duration: 120}
	camry    = models.Vehicle{Make: "Toyota", Model: "Camry", Year: "2020", LicensePlate: "MH01AB1234"}
	morning  = models.TimeSlot{ID: "1-2026-11-02-1", Date: "2026-11-02", StartTime: "09:00", EndTime: "11:00", Available: true}
	taken    = models.TimeSlot{ID: "1-2026-11-02-2", Date: "2026-11-02", StartTime: "11:00", EndTime: "13:00", Available: false}
)

func completeDraft() models.BookingDraft {
	return models.BookingDraft{
		Service:  models.ResolvedService(exterior),
		Vehicle:  camry,
		TimeSlot: models.ResolvedSlot(morning),
		Notes:    "Please call on arrival",
	}
}
