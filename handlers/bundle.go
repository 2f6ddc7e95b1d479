package handlers

import (
	"github.com/YarKhan02/Workshop-sub000/middleware"
	"github.com/YarKhan02/Workshop-sub000/models"
	"github.com/YarKhan02/Workshop-sub000/services/backend"
	"github.com/YarKhan02/Workshop-sub000/services/wizard"
)

// HandlerBundle groups the endpoint handlers registered by routes.
type HandlerBundle struct {
	Sessions middleware.Sessions

	Auth     *AuthHandler
	Catalog  *CatalogHandler
	Vehicles *VehicleHandler
	Wizard   *WizardHandler
	Bookings *BookingHandler
}

// Dependencies is everything the handlers need from the outside.
type Dependencies struct {
	Sessions         middleware.Sessions
	AuthGateway      backend.AuthGateway
	CatalogGateway   backend.CatalogGateway
	VehicleGateway   backend.VehicleGateway
	BookingGateway   backend.BookingGateway
	Wizard           wizard.WizardService
	Invoices         InvoiceCache
	Company          models.Company
	ConfirmationPath string
}

func NewHandlerBundle(d Dependencies) *HandlerBundle {
	return &HandlerBundle{
		Sessions: d.Sessions,
		Auth:     NewAuthHandler(d.AuthGateway, d.Sessions),
		Catalog:  NewCatalogHandler(d.CatalogGateway, d.Sessions),
		Vehicles: NewVehicleHandler(d.VehicleGateway, d.Sessions),
		Wizard:   NewWizardHandler(d.Wizard, d.Sessions, d.ConfirmationPath),
		Bookings: NewBookingHandler(d.BookingGateway, d.Invoices, d.Company, d.Sessions),
	}
}
