package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/YarKhan02/Workshop-sub000/models"
)

func (c *Client) ListSaved(ctx context.Context, customerID string) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	path := "/api/customers/" + url.PathEscape(customerID) + "/vehicles/"
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (c *Client) Create(ctx context.Context, vehicle models.Vehicle) (*models.Vehicle, error) {
	var created models.Vehicle
	if err := c.do(ctx, http.MethodPost, "/api/vehicles/", nil, vehicle, &created); err != nil {
		return nil, err
	}
	return &created, nil
}
