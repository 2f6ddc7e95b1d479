package backend

import (
	"context"

	"github.com/YarKhan02/Workshop-sub000/models"
)

// CatalogGateway lists what a customer can book.
type CatalogGateway interface {
	ListServices(ctx context.Context) ([]models.Service, error)
	ListTimeSlots(ctx context.Context, serviceID, date string) ([]models.TimeSlot, error)
}

// VehicleGateway manages a customer's saved vehicles.
type VehicleGateway interface {
	ListSaved(ctx context.Context, customerID string) ([]models.Vehicle, error)
	Create(ctx context.Context, vehicle models.Vehicle) (*models.Vehicle, error)
}

// BookingGateway creates and reads bookings.
type BookingGateway interface {
	Create(ctx context.Context, req models.BookingRequest) (*models.Booking, error)
	List(ctx context.Context, customerID string) ([]models.Booking, error)
	Get(ctx context.Context, bookingID string) (*models.Booking, error)
}

// AuthGateway exchanges credentials for a user record carrying a token.
type AuthGateway interface {
	Login(ctx context.Context, email, password string) (*models.User, error)
}
