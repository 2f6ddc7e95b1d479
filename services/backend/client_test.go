package backend_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/YarKhan02/Workshop-sub000/models"
	"github.com/YarKhan02/Workshop-sub000/services/backend"
	"github.com/YarKhan02/Workshop-sub000/services/backend/stub"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newBackend(t *testing.T) (*stub.Server, *backend.Client) {
	t.Helper()
	srv := stub.New()
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, backend.NewClient(ts.URL, 5*time.Second, nil)
}

func loggedIn(t *testing.T, client *backend.Client) context.Context {
	t.Helper()
	user, err := client.Login(context.Background(), stub.DemoEmail, stub.DemoPassword)
	require.NoError(t, err)
	require.NotEmpty(t, user.Token)
	return backend.WithToken(context.Background(), user.Token)
}

func TestLogin(t *testing.T) {
	_, client := newBackend(t)

	user, err := client.Login(context.Background(), stub.DemoEmail, stub.DemoPassword)
	require.NoError(t, err)
	assert.Equal(t, stub.DemoUserID, user.ID)
	assert.Equal(t, "Asha Rao", user.FullName())
	assert.NotEmpty(t, user.Token)

	_, err = client.Login(context.Background(), stub.DemoEmail, "wrong")
	var apiErr *backend.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Invalid email or password.", apiErr.Message)
	assert.False(t, backend.IsAuthError(err))
}

func TestCatalog(t *testing.T) {
	_, client := newBackend(t)
	ctx := context.Background()

	services, err := client.ListServices(ctx)
	require.NoError(t, err)
	require.Len(t, services, 4)
	assert.Equal(t, "Exterior Detailing", services[0].Name)

	slots, err := client.ListTimeSlots(ctx, services[0].ID, "2026-11-02")
	require.NoError(t, err)
	require.Len(t, slots, 4)
	assert.Equal(t, "2026-11-02", slots[0].Date)
	assert.True(t, slots[0].Available)

	_, err = client.ListTimeSlots(ctx, "999", "2026-11-02")
	assert.True(t, backend.IsNotFound(err))
}

func TestVehicles(t *testing.T) {
	_, client := newBackend(t)
	ctx := loggedIn(t, client)

	saved, err := client.ListSaved(ctx, stub.DemoUserID)
	require.NoError(t, err)
	require.Len(t, saved, 1)

	created, err := client.Create(ctx, models.Vehicle{Make: "Honda", Model: "City", Year: "2022", LicensePlate: "KA05MN4321"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	saved, err = client.ListSaved(ctx, stub.DemoUserID)
	require.NoError(t, err)
	assert.Len(t, saved, 2)

	_, err = client.Create(ctx, models.Vehicle{Make: "Honda"})
	var apiErr *backend.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Contains(t, apiErr.Fields, "license_plate")
}

func TestBookingLifecycle(t *testing.T) {
	srv, client := newBackend(t)
	ctx := loggedIn(t, client)
	bookings := client.Bookings()

	slots, err := client.ListTimeSlots(ctx, "1", "2026-11-02")
	require.NoError(t, err)

	req := models.BookingRequest{
		ServiceID:  "1",
		Vehicle:    models.Vehicle{Make: "Toyota", Model: "Camry", Year: "2020", LicensePlate: "MH01AB1234"},
		TimeSlotID: slots[0].ID,
		Notes:      "Pet hair on rear seats",
	}
	created, err := bookings.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusPending, created.Status)
	assert.Equal(t, "1299.00", created.Amounts.Subtotal)
	assert.Equal(t, "233.82", created.Amounts.Tax)
	assert.Equal(t, "1532.82", created.Amounts.Total)
	assert.Equal(t, 1, srv.BookingAttempts())

	got, err := bookings.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	list, err := bookings.List(ctx, stub.DemoUserID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	slots, err = client.ListTimeSlots(ctx, "1", "2026-11-02")
	require.NoError(t, err)
	assert.False(t, slots[0].Available)

	_, err = bookings.Create(ctx, req)
	var apiErr *backend.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
}

func TestFailNextBooking(t *testing.T) {
	srv, client := newBackend(t)
	ctx := loggedIn(t, client)

	srv.FailNextBooking(http.StatusInternalServerError, "database unavailable")
	_, err := client.Bookings().Create(ctx, models.BookingRequest{ServiceID: "1"})

	var apiErr *backend.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "database unavailable", apiErr.Message)
	assert.False(t, backend.IsAuthError(err))
}

func TestInvalidTokenIsAuthError(t *testing.T) {
	_, client := newBackend(t)
	ctx := backend.WithToken(context.Background(), "not-a-jwt")

	_, err := client.ListSaved(ctx, stub.DemoUserID)
	var apiErr *backend.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "token_not_valid", apiErr.Code)
	assert.True(t, backend.IsAuthError(err))
}

func TestExpiredTokenNeverReachesBackend(t *testing.T) {
	srv, client := newBackend(t)
	ctx := backend.WithToken(context.Background(), srv.IssueToken(stub.DemoUserID, -time.Minute))

	_, err := client.Bookings().Create(ctx, models.BookingRequest{ServiceID: "1"})
	assert.ErrorIs(t, err, backend.ErrTokenExpired)
	assert.True(t, backend.IsAuthError(err))
	assert.Equal(t, 0, srv.BookingAttempts())
}

func TestIdempotencyKeySent(t *testing.T) {
	var keys []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		keys = append(keys, r.Header.Get(backend.IdempotencyHeader))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"BK0001","status":"pending"}`))
	}))
	defer ts.Close()

	bookings := backend.NewClient(ts.URL, time.Second, nil).Bookings()
	_, err := bookings.Create(context.Background(), models.BookingRequest{})
	require.NoError(t, err)
	_, err = bookings.Create(context.Background(), models.BookingRequest{})
	require.NoError(t, err)

	require.Len(t, keys, 2)
	assert.NotEmpty(t, keys[0])
	assert.NotEqual(t, keys[0], keys[1])
}

func TestUnreachableBackend(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	_, err := backend.NewClient(url, time.Second, nil).ListServices(context.Background())
	assert.True(t, errors.Is(err, backend.ErrUnavailable))
	assert.False(t, backend.IsAuthError(err))
}

func TestErrorBodies(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		message string
		code    string
		fields  map[string]string
	}{
		{"detail", 403, `{"detail":"Forbidden here"}`, "Forbidden here", "", nil},
		{"error and code", 409, `{"error":"Slot taken","code":"slot_taken"}`, "Slot taken", "slot_taken", nil},
		{"message", 500, `{"message":"boom"}`, "boom", "", nil},
		{"field map", 400, `{"year":["Enter a valid year."]}`, "Bad Request", "", map[string]string{"year": "Enter a valid year."}},
		{"plain text", 502, `upstream down`, "upstream down", "", nil},
		{"empty", 503, ``, "Service Unavailable", "", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer ts.Close()

			_, err := backend.NewClient(ts.URL, time.Second, nil).ListServices(context.Background())
			var apiErr *backend.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tc.status, apiErr.Status)
			assert.Equal(t, tc.message, apiErr.Message)
			assert.Equal(t, tc.code, apiErr.Code)
			assert.Equal(t, tc.fields, apiErr.Fields)
		})
	}
}
