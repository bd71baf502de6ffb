package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driveazur/car-rental-app/db"
	"github.com/driveazur/car-rental-app/models"
)

func TestCreateReservation(t *testing.T) {
	app := setupTestApp(t)
	client := createUser(t, "Client", models.RoleClient)
	car := createCar(t, "Toyota", "Corolla", 80)

	resp := doJSON(t, app, "POST", "/reservations", map[string]interface{}{
		"pickup_location":  1,
		"dropoff_location": 2,
		"pickup_date":      "2025-06-01",
		"dropoff_date":     "2025-06-05",
		"car_type":         "SUV",
		"total_cost":       320,
		"vehicle_id":       car.ID,
	}, authToken(t, client))

	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		Reservation models.Reservation `json:"reservation"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, models.StatusPending, body.Reservation.Status)
	assert.Equal(t, client.ID, body.Reservation.StatusUpdatedBy)
	assert.Equal(t, models.StubPaymentID, body.Reservation.PaymentID)

	var stored models.Reservation
	require.NoError(t, db.DB.First(&stored, body.Reservation.ID).Error)
	assert.Equal(t, client.ID, stored.UserID)
	assert.True(t, stored.EndDate.After(stored.StartDate))
}

func TestCreateReservationRejectsBadDates(t *testing.T) {
	app := setupTestApp(t)
	client := createUser(t, "Client", models.RoleClient)
	car := createCar(t, "Toyota", "Corolla", 80)
	token := authToken(t, client)

	for _, dates := range [][2]string{
		{"2025-06-05", "2025-06-05"}, // equal
		{"2025-06-05", "2025-06-01"}, // reversed
	} {
		resp := doJSON(t, app, "POST", "/reservations", map[string]interface{}{
			"pickup_location":  1,
			"dropoff_location": 2,
			"pickup_date":      dates[0],
			"dropoff_date":     dates[1],
			"car_type":         "SUV",
			"total_cost":       100,
			"vehicle_id":       car.ID,
		}, token)

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

		var body struct {
			Errors map[string]string `json:"errors"`
		}
		decodeBody(t, resp, &body)
		assert.Contains(t, body.Errors, "dropoff_date")
	}

	var count int64
	db.DB.Model(&models.Reservation{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCreateReservationRejectsUnknownReferences(t *testing.T) {
	app := setupTestApp(t)
	client := createUser(t, "Client", models.RoleClient)

	resp := doJSON(t, app, "POST", "/reservations", map[string]interface{}{
		"pickup_location":  99,
		"dropoff_location": 2,
		"pickup_date":      "2025-06-01",
		"dropoff_date":     "2025-06-05",
		"car_type":         "SUV",
		"total_cost":       100,
		"vehicle_id":       42,
	}, authToken(t, client))

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var body struct {
		Errors map[string]string `json:"errors"`
	}
	decodeBody(t, resp, &body)
	assert.Contains(t, body.Errors, "pickup_location")
	assert.Contains(t, body.Errors, "vehicle_id")
}

func TestCancelReservationPreservesRow(t *testing.T) {
	app := setupTestApp(t)
	client := createUser(t, "Client", models.RoleClient)
	car := createCar(t, "Toyota", "Corolla", 80)
	reservation := createReservation(t, client, car, false)

	resp := doJSON(t, app, "DELETE", "/reservations/1", nil, authToken(t, client))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var stored models.Reservation
	require.NoError(t, db.DB.First(&stored, reservation.ID).Error)
	assert.Equal(t, models.StatusCancelled, stored.Status)
	assert.Equal(t, reservation.TotalPrice, stored.TotalPrice)
	assert.Equal(t, reservation.StatusUpdatedBy, stored.StatusUpdatedBy)
	assert.Equal(t, reservation.VehicleID, stored.VehicleID)
	assert.Equal(t, reservation.StartDate.UTC(), stored.StartDate.UTC())
}

func TestCancelIsScopedToOwner(t *testing.T) {
	app := setupTestApp(t)
	owner := createUser(t, "Owner", models.RoleClient)
	other := createUser(t, "Other", models.RoleClient)
	admin := createUser(t, "Admin", models.RoleAdmin)
	car := createCar(t, "Toyota", "Corolla", 80)
	reservation := createReservation(t, owner, car, false)

	// The owner scope holds for every role, admin included.
	for _, caller := range []models.User{other, admin} {
		resp := doJSON(t, app, "DELETE", "/reservations/1", nil, authToken(t, caller))
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, caller.Name)

		var stored models.Reservation
		require.NoError(t, db.DB.First(&stored, reservation.ID).Error)
		assert.Equal(t, models.StatusPending, stored.Status, caller.Name)
	}

	resp := doJSON(t, app, "DELETE", "/admin/reservations/1", nil, authToken(t, admin))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetReservationIsOwnerScoped(t *testing.T) {
	app := setupTestApp(t)
	owner := createUser(t, "Owner", models.RoleClient)
	admin := createUser(t, "Admin", models.RoleAdmin)
	car := createCar(t, "Toyota", "Corolla", 80)
	createReservation(t, owner, car, false)

	resp := doJSON(t, app, "GET", "/reservations/1", nil, authToken(t, owner))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, "GET", "/reservations/1", nil, authToken(t, admin))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdateReservationForbiddenForNonOwner(t *testing.T) {
	app := setupTestApp(t)
	owner := createUser(t, "Owner", models.RoleClient)
	other := createUser(t, "Other", models.RoleClient)
	staff := createUser(t, "Staff", models.RoleStaff)
	car := createCar(t, "Toyota", "Corolla", 80)
	reservation := createReservation(t, owner, car, false)

	// Neither another client nor a staff member may touch the status.
	for _, caller := range []models.User{other, staff} {
		resp := doJSON(t, app, "PUT", "/reservations/1", map[string]interface{}{
			"status": "confirmed",
		}, authToken(t, caller))
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, caller.Name)

		var stored models.Reservation
		require.NoError(t, db.DB.First(&stored, reservation.ID).Error)
		assert.Equal(t, models.StatusPending, stored.Status, caller.Name)
	}

	resp := doJSON(t, app, "PUT", "/staff/reservations/1", map[string]interface{}{
		"status": "confirmed",
	}, authToken(t, staff))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestUpdateReservationByAdmin(t *testing.T) {
	app := setupTestApp(t)
	owner := createUser(t, "Owner", models.RoleClient)
	admin := createUser(t, "Admin", models.RoleAdmin)
	car := createCar(t, "Toyota", "Corolla", 80)
	createReservation(t, owner, car, false)

	resp := doJSON(t, app, "PUT", "/reservations/1", map[string]interface{}{
		"status": "confirmed",
	}, authToken(t, admin))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var stored models.Reservation
	require.NoError(t, db.DB.First(&stored, 1).Error)
	assert.Equal(t, models.StatusConfirmed, stored.Status)
	// statusUpdatedBy defaults to the caller when absent from the payload
	assert.Equal(t, admin.ID, stored.StatusUpdatedBy)
}

func TestUpdateReservationRejectsUnknownStatus(t *testing.T) {
	app := setupTestApp(t)
	owner := createUser(t, "Owner", models.RoleClient)
	car := createCar(t, "Toyota", "Corolla", 80)
	createReservation(t, owner, car, false)

	resp := doJSON(t, app, "PUT", "/reservations/1", map[string]interface{}{
		"status": "teleported",
	}, authToken(t, owner))
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestUserSeesOnlyOwnReservations(t *testing.T) {
	app := setupTestApp(t)
	alice := createUser(t, "Alice", models.RoleClient)
	bob := createUser(t, "Bob", models.RoleClient)
	admin := createUser(t, "Admin", models.RoleAdmin)
	car := createCar(t, "Toyota", "Corolla", 80)
	createReservation(t, alice, car, false)
	createReservation(t, bob, car, false)

	resp := doJSON(t, app, "GET", "/user/reservations", nil, authToken(t, alice))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var mine []models.ReservationSummary
	decodeBody(t, resp, &mine)
	require.Len(t, mine, 1)
	assert.Equal(t, alice.Name, mine[0].User.Name)
	require.NotNil(t, mine[0].Car)
	assert.Equal(t, "Toyota", mine[0].Car.Brand)
	assert.Equal(t, "Casablanca", mine[0].PickupLocation)
	require.NotNil(t, mine[0].Payment)
	assert.Equal(t, models.StubPaymentID, mine[0].Payment.ID)

	resp = doJSON(t, app, "GET", "/admin/reservations", nil, authToken(t, admin))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var all []models.ReservationSummary
	decodeBody(t, resp, &all)
	assert.Len(t, all, 2)
}

func TestAssignDriver(t *testing.T) {
	app := setupTestApp(t)
	owner := createUser(t, "Owner", models.RoleClient)
	admin := createUser(t, "Admin", models.RoleAdmin)
	driver := createUser(t, "John Driver", models.RoleDriver)
	car := createCar(t, "Toyota", "Corolla", 80)
	createReservation(t, owner, car, true)

	resp := doJSON(t, app, "POST", "/admin/reservations/1/assign-driver", map[string]interface{}{
		"driverId": driver.ID,
	}, authToken(t, admin))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Reservation models.Reservation `json:"reservation"`
		Driver      models.User        `json:"driver"`
	}
	decodeBody(t, resp, &body)
	require.NotNil(t, body.Reservation.DriverID)
	assert.Equal(t, driver.ID, *body.Reservation.DriverID)
	assert.Equal(t, driver.ID, body.Driver.ID)
	assert.Equal(t, models.RoleDriver, body.Driver.Role)
}

func TestAssignDriverRequiresDriverRequest(t *testing.T) {
	app := setupTestApp(t)
	owner := createUser(t, "Owner", models.RoleClient)
	admin := createUser(t, "Admin", models.RoleAdmin)
	driver := createUser(t, "John Driver", models.RoleDriver)
	car := createCar(t, "Toyota", "Corolla", 80)
	createReservation(t, owner, car, false) // selectDriver off

	resp := doJSON(t, app, "POST", "/admin/reservations/1/assign-driver", map[string]interface{}{
		"driverId": driver.ID,
	}, authToken(t, admin))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// The diagnostic payload must not leak the owner's password hash.
	var body map[string]interface{}
	decodeBody(t, resp, &body)
	user, ok := body["user"].(map[string]interface{})
	require.True(t, ok)
	assert.NotContains(t, user, "password")
	if res, ok := body["reservation"].(map[string]interface{}); ok {
		if nested, ok := res["user"].(map[string]interface{}); ok {
			assert.NotContains(t, nested, "password")
		}
	}

	var stored models.Reservation
	require.NoError(t, db.DB.First(&stored, 1).Error)
	assert.Nil(t, stored.DriverID)
}

func TestAssignDriverRejectsNonDriverUser(t *testing.T) {
	app := setupTestApp(t)
	owner := createUser(t, "Owner", models.RoleClient)
	admin := createUser(t, "Admin", models.RoleAdmin)
	createUser(t, "Real Driver", models.RoleDriver)
	car := createCar(t, "Toyota", "Corolla", 80)
	createReservation(t, owner, car, true)

	resp := doJSON(t, app, "POST", "/admin/reservations/1/assign-driver", map[string]interface{}{
		"driverId": owner.ID, // a client, not a driver
	}, authToken(t, admin))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body struct {
		AvailableDrivers []models.User `json:"available_drivers"`
	}
	decodeBody(t, resp, &body)
	require.Len(t, body.AvailableDrivers, 1)
	assert.Equal(t, "Real Driver", body.AvailableDrivers[0].Name)
}

func TestAssignDriverIsAdminOnly(t *testing.T) {
	app := setupTestApp(t)
	owner := createUser(t, "Owner", models.RoleClient)
	staff := createUser(t, "Staff", models.RoleStaff)
	driver := createUser(t, "John Driver", models.RoleDriver)
	car := createCar(t, "Toyota", "Corolla", 80)
	createReservation(t, owner, car, true)

	resp := doJSON(t, app, "POST", "/admin/reservations/1/assign-driver", map[string]interface{}{
		"driverId": driver.ID,
	}, authToken(t, staff))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var stored models.Reservation
	require.NoError(t, db.DB.First(&stored, 1).Error)
	assert.Nil(t, stored.DriverID)
}
