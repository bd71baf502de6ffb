package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/driveazur/car-rental-app/db"
	"github.com/driveazur/car-rental-app/middleware"
	"github.com/driveazur/car-rental-app/models"
	"github.com/driveazur/car-rental-app/routes"
)

var userSeq uint32

func setupTestApp(t *testing.T) *fiber.App {
	t.Setenv("JWT_SECRET", "test-secret-key")

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(
		&models.User{},
		&models.Location{},
		&models.Payment{},
		&models.Car{},
		&models.Reservation{},
	))
	db.DB = gdb

	require.NoError(t, gdb.Create(&models.Payment{ID: models.StubPaymentID, Status: "pending"}).Error)
	locations := []models.Location{
		{City: "Casablanca", Address: "Avenue Mohammed V, Casablanca", Latitude: 33.5899, Longitude: -7.6033},
		{City: "Rabat", Address: "Boulevard Mohammed V, Rabat", Latitude: 34.0184, Longitude: -6.8426},
	}
	require.NoError(t, gdb.Create(&locations).Error)

	app := fiber.New()
	routes.SetupAuthRoutes(app)
	routes.SetupUserRoutes(app)
	routes.SetupCarRoutes(app)
	routes.SetupReservationRoutes(app)
	routes.SetupLocationRoutes(app)
	return app
}

func createUser(t *testing.T, name string, role models.Role) models.User {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	seq := atomic.AddUint32(&userSeq, 1)
	user := models.User{
		Name:     name,
		Email:    fmt.Sprintf("user%d@example.com", seq),
		Phone:    fmt.Sprintf("06%08d", seq),
		Address:  "1 Test Street",
		Age:      30,
		Role:     role,
		Password: string(hash),
	}
	require.NoError(t, db.DB.Create(&user).Error)
	return user
}

func createCar(t *testing.T, brand, model string, price float64) models.Car {
	car := models.Car{
		Category:     "SUV",
		Brand:        brand,
		Model:        model,
		Seats:        5,
		GearType:     "automatic",
		Mileage:      10000,
		PricePerDay:  price,
		Availability: true,
		FuelType:     "petrol",
		Color:        "black",
		Year:         2022,
		Image:        "https://res.cloudinary.com/demo/image/upload/car.jpg",
	}
	require.NoError(t, db.DB.Create(&car).Error)
	return car
}

func createReservation(t *testing.T, owner models.User, car models.Car, selectDriver bool) models.Reservation {
	dropoff := uint(2)
	reservation := models.Reservation{
		UserID:            owner.ID,
		StartDate:         time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:           time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC),
		TotalPrice:        320,
		Status:            models.StatusPending,
		StatusUpdatedBy:   owner.ID,
		VehicleID:         car.ID,
		CarType:           car.Category,
		LocationID:        1,
		DropoffLocationID: &dropoff,
		PaymentID:         models.StubPaymentID,
		SelectDriver:      selectDriver,
	}
	require.NoError(t, db.DB.Create(&reservation).Error)
	return reservation
}

func authToken(t *testing.T, user models.User) string {
	claims := jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"role":  string(user.Role),
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString(middleware.JWTSecret())
	require.NoError(t, err)
	return token
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}, token string) *http.Response {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}
