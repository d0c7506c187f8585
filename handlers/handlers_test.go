package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"restaurant-api/config"
	"restaurant-api/models"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Dish{},
		&models.Reservation{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderCode{},
	))
	config.DB = db
}

// fakeAuth stands in for the JWT middleware in handler tests.
func fakeAuth(userID uint, role models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Set("email", "test@example.com")
		c.Set("role", string(role))
	}
}

func TestGetOrderDetail_MalformedIDIsBadRequest(t *testing.T) {
	setupTestDB(t)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/orders/:id", fakeAuth(7, models.RoleWaiter), GetOrderDetail)

	// A non-numeric id is the caller's mistake, not a missing order 0.
	req := httptest.NewRequest(http.MethodGet, "/orders/abc", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// A well-formed id that matches nothing is still a 404.
	req = httptest.NewRequest(http.MethodGet, "/orders/999", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCompleteOrder_MalformedIDIsBadRequest(t *testing.T) {
	setupTestDB(t)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.PUT("/orders/:id/complete", fakeAuth(7, models.RoleWaiter), CompleteOrder)

	req := httptest.NewRequest(http.MethodPut, "/orders/12x/complete", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateReservation_GuestsDefaultsToOne(t *testing.T) {
	setupTestDB(t)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/reservations", fakeAuth(3, models.RoleClient), CreateReservation)

	body := `{"table_number": 4, "reserved_for": "2026-09-01T19:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/reservations", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Reservation models.Reservation `json:"reservation"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Reservation.Guests)
	assert.Equal(t, 4, resp.Reservation.TableNumber)
	assert.NotEmpty(t, resp.Reservation.ReservationCode)
}

func TestCreateReservation_NegativeGuestsRejected(t *testing.T) {
	setupTestDB(t)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/reservations", fakeAuth(3, models.RoleClient), CreateReservation)

	body := `{"table_number": 4, "guests": -2, "reserved_for": "2026-09-01T19:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/reservations", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
