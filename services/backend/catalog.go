package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/YarKhan02/Workshop-sub000/models"
)

func (c *Client) ListServices(ctx context.Context) ([]models.Service, error) {
	var services []models.Service
	if err := c.do(ctx, http.MethodGet, "/api/services/", nil, nil, &services); err != nil {
		return nil, err
	}
	return services, nil
}

func (c *Client) ListTimeSlots(ctx context.Context, serviceID, date string) ([]models.TimeSlot, error) {
	query := url.Values{}
	if date != "" {
		query.Set("date", date)
	}
	var slots []models.TimeSlot
	path := "/api/services/" + url.PathEscape(serviceID) + "/time-slots/"
	if err := c.do(ctx, http.MethodGet, path, query, nil, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}
