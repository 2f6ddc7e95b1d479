package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/YarKhan02/Workshop-sub000/middleware"
	"github.com/YarKhan02/Workshop-sub000/models"
	"github.com/YarKhan02/Workshop-sub000/services/backend"
	"github.com/YarKhan02/Workshop-sub000/services/invoice"
	"github.com/YarKhan02/Workshop-sub000/services/table"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// InvoiceCache stores rendered invoices under invoice.CacheKey, so a booking
// whose status or amounts changed is rendered again.
type InvoiceCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, pdf []byte) error
}

type BookingHandler struct {
	errorResponder
	Gateway  backend.BookingGateway
	Invoices InvoiceCache
	Company  models.Company
}

func NewBookingHandler(gateway backend.BookingGateway, invoices InvoiceCache, company models.Company, sessions middleware.Sessions) *BookingHandler {
	return &BookingHandler{
		errorResponder: errorResponder{Sessions: sessions},
		Gateway:        gateway,
		Invoices:       invoices,
		Company:        company,
	}
}

// bookingColumns are the dashboard columns; id, service, vehicle, plate and status are searchable.
var bookingColumns = []table.Column[models.Booking]{
	{Key: "id", Value: func(b models.Booking) string { return b.ID }, Searchable: true},
	{Key: "service", Value: func(b models.Booking) string { return b.Service.Name }, Searchable: true},
	{Key: "vehicle", Value: func(b models.Booking) string { return b.Vehicle.Make + " " + b.Vehicle.Model }, Searchable: true},
	{Key: "license_plate", Value: func(b models.Booking) string { return b.Vehicle.LicensePlate }, Searchable: true},
	{Key: "status", Value: func(b models.Booking) string { return string(b.Status) }, Searchable: true},
	{Key: "scheduled_date", Value: func(b models.Booking) string { return b.ScheduledDate + " " + b.TimeSlot.StartTime }},
	{Key: "total", Value: func(b models.Booking) string { return b.Amounts.Total }},
	{Key: "created_at", Value: func(b models.Booking) string { return b.CreatedAt.UTC().Format("2006-01-02T15:04:05") }},
}

// ListBookings handles GET /api/bookings?search=&sort=&order=&page=&page_size=.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	bookings, err := h.Gateway.List(c.Request.Context(), user.ID)
	if err != nil {
		h.respondError(c, err, nil)
		return
	}
	query := table.ParseQuery(c.Request.URL.Query())
	c.JSON(http.StatusOK, table.Apply(bookings, query, bookingColumns))
}

// GetBooking handles GET /api/bookings/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	booking, ok := h.ownedBooking(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, booking)
}

// Invoice handles GET /api/bookings/:id/invoice, serving the cached PDF when there is one.
func (h *BookingHandler) Invoice(c *gin.Context) {
	logger := getLogger(c)
	booking, ok := h.ownedBooking(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	key := invoice.CacheKey(*booking)
	pdf, err := h.Invoices.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, invoice.ErrCacheMiss) {
			logger.Warn("Invoice cache read failed", zap.String("bookingID", booking.ID), zap.Error(err))
		}
		pdf, err = invoice.Generate(*booking, h.Company)
		if err != nil {
			h.respondError(c, err, nil)
			return
		}
		if err := h.Invoices.Put(ctx, key, pdf); err != nil {
			logger.Warn("Invoice cache write failed", zap.String("bookingID", booking.ID), zap.Error(err))
		}
	}

	c.Header("Content-Disposition", `attachment; filename="`+invoice.Number(booking.ID)+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// ownedBooking loads the booking and answers 404 when it belongs to someone else.
func (h *BookingHandler) ownedBooking(c *gin.Context) (*models.Booking, bool) {
	user, _ := middleware.CurrentUser(c)
	booking, err := h.Gateway.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, nil)
		return nil, false
	}
	if booking.CustomerID != user.ID {
		getLogger(c).Warn("Booking requested by another customer",
			zap.String("bookingID", booking.ID), zap.String("userID", user.ID))
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		return nil, false
	}
	return booking, true
}
