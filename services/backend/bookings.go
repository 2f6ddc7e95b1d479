package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/YarKhan02/Workshop-sub000/models"

	"github.com/google/uuid"
)

// Bookings exposes the booking endpoints. It is a separate type from Client
// because VehicleGateway and BookingGateway both declare Create.
type Bookings struct {
	client *Client
}

var _ BookingGateway = (*Bookings)(nil)

func (c *Client) Bookings() *Bookings {
	return &Bookings{client: c}
}

// Create sends a single booking creation carrying a fresh idempotency key.
func (b *Bookings) Create(ctx context.Context, req models.BookingRequest) (*models.Booking, error) {
	var created models.Booking
	err := b.client.do(ctx, http.MethodPost, "/api/bookings/", nil, req, &created,
		withHeader(IdempotencyHeader, uuid.New().String()))
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (b *Bookings) List(ctx context.Context, customerID string) ([]models.Booking, error) {
	var bookings []models.Booking
	path := "/api/customers/" + url.PathEscape(customerID) + "/bookings/"
	if err := b.client.do(ctx, http.MethodGet, path, nil, nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (b *Bookings) Get(ctx context.Context, bookingID string) (*models.Booking, error) {
	var booking models.Booking
	path := "/api/bookings/" + url.PathEscape(bookingID) + "/"
	if err := b.client.do(ctx, http.MethodGet, path, nil, nil, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}
