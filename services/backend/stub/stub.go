// Package stub is an in-memory stand-in for the REST backend, used by tests and
// for running the front end locally without the real backend.
package stub

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/YarKhan02/Workshop-sub000/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
)

const (
	DemoEmail    = "customer@example.com"
	DemoPassword = "password"
	DemoUserID   = "42"
)

var slotWindows = [][2]string{
	{"09:00", "11:00"},
	{"11:00", "13:00"},
	{"14:00", "16:00"},
	{"16:00", "18:00"},
}

type account struct {
	user     models.User
	password string
}

type failure struct {
	status int
	detail string
}

// Server keeps the catalog, vehicles and bookings in memory.
type Server struct {
	mu       sync.Mutex
	secret   []byte
	services []models.Service
	slots    map[string]models.TimeSlot // by id, filled as days are listed
	booked   map[string]bool
	accounts map[string]account // by email
	vehicles map[string][]models.Vehicle
	bookings []models.Booking
	attempts int
	seq      int
	failNext *failure
	now      func() time.Time
	engine   *gin.Engine
}

// New returns a server seeded with the detailing catalog and one demo customer.
func New() *Server {
	s := &Server{
		secret: []byte("stub-backend-secret"),
		services: []models.Service{
			{ID: "1", Name: "Exterior Detailing", Description: "Hand wash, clay bar and carnauba wax", Price: "1299.00", Duration: 90, Category: "exterior"},
			{ID: "2", Name: "Interior Detailing", Description: "Vacuum, upholstery shampoo and dashboard care", Price: "1499.00", Duration: 120, Category: "interior"},
			{ID: "3", Name: "Full Detailing", Description: "Exterior and interior detailing in one visit", Price: "2499.00", Duration: 240, Category: "package"},
			{ID: "4", Name: "Ceramic Coating", Description: "Paint correction and ceramic protection", Price: "8999.00", Duration: 480, Category: "protection"},
		},
		slots:  map[string]models.TimeSlot{},
		booked: map[string]bool{},
		accounts: map[string]account{
			DemoEmail: {
				user:     models.User{ID: DemoUserID, Email: DemoEmail, FirstName: "Asha", LastName: "Rao", Phone: "+91 98200 00000"},
				password: DemoPassword,
			},
		},
		vehicles: map[string][]models.Vehicle{
			DemoUserID: {{ID: "v1", Make: "Toyota", Model: "Camry", Year: "2020", LicensePlate: "MH01AB1234", Color: "White"}},
		},
		now: time.Now,
	}
	s.engine = s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// IssueToken signs a token for userID that expires after ttl (negative ttl gives an expired token).
func (s *Server) IssueToken(userID string, ttl time.Duration) string {
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": s.now().Unix(),
		"exp": s.now().Add(ttl).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		panic(err)
	}
	return signed
}

// FailNextBooking makes the next booking creation answer with status and detail.
func (s *Server) FailNextBooking(status int, detail string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext = &failure{status: status, detail: detail}
}

// BookingAttempts counts booking creation requests received, failed ones included.
func (s *Server) BookingAttempts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempts
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")
	api.POST("/auth/login/", s.login)
	api.GET("/services/", s.listServices)
	api.GET("/services/:id/time-slots/", s.listTimeSlots)

	authed := api.Group("")
	authed.Use(s.requireToken)
	authed.GET("/customers/:id/vehicles/", s.listVehicles)
	authed.POST("/vehicles/", s.createVehicle)
	authed.POST("/bookings/", s.createBooking)
	authed.GET("/customers/:id/bookings/", s.listBookings)
	authed.GET("/bookings/:id/", s.getBooking)
	return r
}

func (s *Server) requireToken(c *gin.Context) {
	header := c.GetHeader("Authorization")
	raw := strings.TrimPrefix(header, "Bearer ")
	if header == "" || raw == header {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Authentication credentials were not provided."})
		return
	}
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"detail": "Given token not valid for any token type",
			"code":   "token_not_valid",
		})
		return
	}
	sub, _ := claims["sub"].(string)
	c.Set("userID", sub)
	c.Next()
}

func (s *Server) login(c *gin.Context) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body."})
		return
	}
	s.mu.Lock()
	acc, ok := s.accounts[strings.ToLower(body.Email)]
	s.mu.Unlock()
	if !ok || acc.password != body.Password {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid email or password."})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":  acc.user,
		"token": s.IssueToken(acc.user.ID, 24*time.Hour),
	})
}

func (s *Server) listServices(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.services)
}

func (s *Server) findService(id string) (models.Service, bool) {
	for _, svc := range s.services {
		if svc.ID == id {
			return svc, true
		}
	}
	return models.Service{}, false
}

func (s *Server) listTimeSlots(c *gin.Context) {
	serviceID := c.Param("id")
	date := c.Query("date")
	if date == "" {
		date = s.now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"date": []string{"Date has wrong format. Use YYYY-MM-DD."}})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.findService(serviceID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	slots := make([]models.TimeSlot, 0, len(slotWindows))
	for i, w := range slotWindows {
		id := fmt.Sprintf("%s-%s-%d", serviceID, date, i+1)
		slot := models.TimeSlot{ID: id, Date: date, StartTime: w[0], EndTime: w[1], Available: !s.booked[id]}
		s.slots[id] = slot
		slots = append(slots, slot)
	}
	c.JSON(http.StatusOK, slots)
}

func (s *Server) listVehicles(c *gin.Context) {
	if c.Param("id") != c.GetString("userID") {
		c.JSON(http.StatusForbidden, gin.H{"detail": "You do not have permission to perform this action."})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	vehicles := s.vehicles[c.Param("id")]
	if vehicles == nil {
		vehicles = []models.Vehicle{}
	}
	c.JSON(http.StatusOK, vehicles)
}

func (s *Server) createVehicle(c *gin.Context) {
	var v models.Vehicle
	if err := c.ShouldBindJSON(&v); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body."})
		return
	}
	if missing := v.Missing(); len(missing) > 0 {
		errs := gin.H{}
		for _, f := range missing {
			errs[f] = []string{"This field may not be blank."}
		}
		c.JSON(http.StatusBadRequest, errs)
		return
	}
	userID := c.GetString("userID")

	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	v.ID = "v" + strconv.Itoa(s.seq+1)
	s.vehicles[userID] = append(s.vehicles[userID], v)
	c.JSON(http.StatusCreated, v)
}

func (s *Server) createBooking(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body."})
		return
	}
	userID := c.GetString("userID")

	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts++
	if f := s.failNext; f != nil {
		s.failNext = nil
		c.JSON(f.status, gin.H{"detail": f.detail})
		return
	}

	svc, ok := s.findService(req.ServiceID)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"service_id": []string{"Invalid service."}})
		return
	}
	slot, ok := s.slots[req.TimeSlotID]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"time_slot_id": []string{"Invalid time slot."}})
		return
	}
	if s.booked[slot.ID] {
		c.JSON(http.StatusConflict, gin.H{"detail": "This time slot is no longer available."})
		return
	}
	if missing := req.Vehicle.Missing(); len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"vehicle": []string{"Vehicle details are incomplete."}})
		return
	}

	s.booked[slot.ID] = true
	slot.Available = false
	s.slots[slot.ID] = slot

	var customer models.User
	for _, acc := range s.accounts {
		if acc.user.ID == userID {
			customer = acc.user
		}
	}
	booking := models.Booking{
		ID:            fmt.Sprintf("BK%04d", len(s.bookings)+1),
		Status:        models.BookingStatusPending,
		CustomerID:    userID,
		CustomerName:  customer.FullName(),
		CustomerEmail: customer.Email,
		Service:       svc,
		Vehicle:       req.Vehicle,
		TimeSlot:      slot,
		Notes:         req.Notes,
		Amounts:       amountsFor(svc.Price),
		ScheduledDate: slot.Date,
		CreatedAt:     s.now().UTC(),
	}
	s.bookings = append(s.bookings, booking)
	c.JSON(http.StatusCreated, booking)
}

func (s *Server) listBookings(c *gin.Context) {
	if c.Param("id") != c.GetString("userID") {
		c.JSON(http.StatusForbidden, gin.H{"detail": "You do not have permission to perform this action."})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Booking{}
	for _, b := range s.bookings {
		if b.CustomerID == c.Param("id") {
			out = append(out, b)
		}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) getBooking(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.bookings {
		if b.ID == c.Param("id") && b.CustomerID == c.GetString("userID") {
			c.JSON(http.StatusOK, b)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
}

// amountsFor applies 18% GST to the service price.
func amountsFor(price string) models.Amounts {
	subtotal, err := strconv.ParseFloat(price, 64)
	if err != nil {
		subtotal = 0
	}
	tax := subtotal * 0.18
	return models.Amounts{
		Subtotal: strconv.FormatFloat(subtotal, 'f', 2, 64),
		Tax:      strconv.FormatFloat(tax, 'f', 2, 64),
		Total:    strconv.FormatFloat(subtotal+tax, 'f', 2, 64),
	}
}
