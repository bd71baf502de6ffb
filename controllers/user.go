package controllers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/driveazur/car-rental-app/db"
	"github.com/driveazur/car-rental-app/models"
	"github.com/driveazur/car-rental-app/utils"
)

func callerID(c *fiber.Ctx) uint {
	id, _ := c.Locals("userID").(uint)
	return id
}

func callerRole(c *fiber.Ctx) models.Role {
	role, _ := c.Locals("role").(models.Role)
	return role
}

// GetCurrentUser returns the authenticated user's profile.
func GetCurrentUser(c *fiber.Ctx) error {
	var user models.User
	if err := db.DB.First(&user, callerID(c)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}
	user.Password = ""
	return c.JSON(user)
}

// UpdateProfile lets a user change their own contact details. Role and
// password never pass through this path.
func UpdateProfile(c *fiber.Ctx) error {
	var user models.User
	if err := db.DB.First(&user, callerID(c)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	updateData := make(map[string]interface{})
	if err := c.BodyParser(&updateData); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	for _, field := range []string{"id", "ID", "role", "Role", "password", "email_verified_at"} {
		delete(updateData, field)
	}

	if err := db.DB.Model(&user).Updates(updateData).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update profile",
		})
	}

	db.DB.First(&user, user.ID)
	user.Password = ""
	return c.JSON(fiber.Map{
		"message": "Profile updated successfully",
		"user":    user,
	})
}

// GetUsers lists users for admins and staff, with optional substring
// search over name, email and role.
func GetUsers(c *fiber.Ctx) error {
	if !callerRole(c).Can("users", "read") {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Unauthorized access",
		})
	}

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	perPage := 10

	query := db.DB.Model(&models.User{}).Preload("Reservations")
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR email LIKE ? OR role LIKE ?", like, like, like)
	}

	var total int64
	query.Count(&total)

	var users []models.User
	if err := query.Limit(perPage).Offset((page - 1) * perPage).Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch users",
			Error:   err.Error(),
		})
	}
	for i := range users {
		users[i].Password = ""
	}

	return c.JSON(fiber.Map{
		"data":     users,
		"total":    total,
		"page":     page,
		"per_page": perPage,
		"pages":    (int(total) + perPage - 1) / perPage,
	})
}

// SearchUsers is the admin quick search (?q=) over name, email and role.
func SearchUsers(c *fiber.Ctx) error {
	if callerRole(c) != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Unauthorized access",
		})
	}

	like := "%" + c.Query("q") + "%"
	var users []models.User
	if err := db.DB.Preload("Reservations").
		Where("name LIKE ? OR email LIKE ? OR role LIKE ?", like, like, like).
		Limit(10).
		Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to search users",
			Error:   err.Error(),
		})
	}
	for i := range users {
		users[i].Password = ""
	}
	return c.JSON(users)
}

// GetUser returns one user with their reservations.
func GetUser(c *fiber.Ctx) error {
	id := c.Params("id")

	// Admins and staff can inspect anyone, everyone else only themselves.
	if !callerRole(c).Can("users", "read") {
		if parsed, err := strconv.ParseUint(id, 10, 64); err != nil || uint(parsed) != callerID(c) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Unauthorized access",
			})
		}
	}

	var user models.User
	if err := db.DB.Preload("Reservations").First(&user, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}
	user.Password = ""
	return c.JSON(user)
}

// CreateUser lets an admin create an account with an explicit role.
func CreateUser(c *fiber.Ctx) error {
	if callerRole(c) != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Unauthorized access",
		})
	}

	name := strings.TrimSpace(c.FormValue("name"))
	email := strings.TrimSpace(c.FormValue("email"))
	phone := strings.TrimSpace(c.FormValue("phone"))
	address := strings.TrimSpace(c.FormValue("address"))
	password := c.FormValue("password")
	role := models.Role(c.FormValue("role"))

	errs := utils.ValidationErrors{}
	if name == "" {
		errs.Add("name", "The name field is required.")
	}
	if email == "" || !strings.Contains(email, "@") {
		errs.Add("email", "The email must be a valid email address.")
	}
	if phone == "" {
		errs.Add("phone", "The phone field is required.")
	}
	if address == "" {
		errs.Add("address", "The address field is required.")
	}
	age, err := strconv.Atoi(c.FormValue("age"))
	if err != nil || age < 18 {
		errs.Add("age", "The age must be at least 18.")
	}
	if !role.Valid() {
		errs.Add("role", "The selected role is invalid.")
	}
	if len(password) < 8 {
		errs.Add("password", "The password must be at least 8 characters.")
	}
	if email != "" {
		var existing models.User
		if db.DB.Where("email = ?", email).First(&existing).RowsAffected > 0 {
			errs.Add("email", "The email has already been taken.")
		}
	}
	if errs.Any() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"errors": errs})
	}

	var imageURL *string
	if fileHeader, err := c.FormFile("image"); err == nil && fileHeader != nil {
		if file, err := fileHeader.Open(); err == nil {
			defer file.Close()
			url, err := utils.UploadAsset(file, uuid.New().String(), "user-profiles")
			if err != nil {
				logrus.WithError(err).Warn("User image upload failed")
			} else {
				imageURL = &url
			}
		}
	} else if v := c.FormValue("image"); v != "" {
		imageURL = &v
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to hash password",
		})
	}

	user := models.User{
		Name:     name,
		Email:    email,
		Phone:    phone,
		Address:  address,
		Age:      age,
		Image:    imageURL,
		Role:     role,
		Password: string(hashed),
	}
	if err := db.DB.Create(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create user",
			Error:   err.Error(),
		})
	}

	// No token issued here so the admin session stays intact.
	user.Password = ""
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  true,
		"message": "User created successfully",
		"user":    user,
	})
}

// UpdateUser updates an account. Admins can update anyone and change
// roles; other callers may only touch their own profile fields.
func UpdateUser(c *fiber.Ctx) error {
	id := c.Params("id")
	isAdmin := callerRole(c) == models.RoleAdmin

	if !isAdmin {
		if parsed, err := strconv.ParseUint(id, 10, 64); err != nil || uint(parsed) != callerID(c) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Unauthorized access",
			})
		}
	}

	var user models.User
	if err := db.DB.First(&user, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	updateData := make(map[string]interface{})
	if err := c.BodyParser(&updateData); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	// Role changes are admin-only; everyone keeps their current role.
	if !isAdmin {
		delete(updateData, "role")
		delete(updateData, "Role")
	} else if raw, ok := updateData["role"].(string); ok && !models.Role(raw).Valid() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"errors": utils.ValidationErrors{"role": "The selected role is invalid."},
		})
	}

	if raw, ok := updateData["password"].(string); ok && raw != "" {
		if len(raw) < 8 {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"errors": utils.ValidationErrors{"password": "The password must be at least 8 characters."},
			})
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to hash password",
			})
		}
		updateData["password"] = string(hashed)
	} else {
		delete(updateData, "password")
	}
	delete(updateData, "id")
	delete(updateData, "ID")
	delete(updateData, "email_verified_at")

	if err := db.DB.Model(&user).Updates(updateData).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update user",
			Error:   err.Error(),
		})
	}

	db.DB.First(&user, user.ID)
	user.Password = ""
	return c.JSON(fiber.Map{
		"message": "User updated successfully",
		"user":    user,
	})
}

// DeleteUser removes an account; their reservations cascade away with it.
func DeleteUser(c *fiber.Ctx) error {
	if callerRole(c) != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Unauthorized access",
		})
	}

	var user models.User
	if err := db.DB.First(&user, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	if err := db.DB.Select("Reservations").Delete(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete user",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"status":  true,
		"message": "User deleted successfully",
	})
}

// GetDrivers is the public listing of driver-role accounts.
func GetDrivers(c *fiber.Ctx) error {
	var drivers []models.User
	if err := db.DB.Where("role = ?", models.RoleDriver).Find(&drivers).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to get drivers",
			Error:   err.Error(),
		})
	}
	for i := range drivers {
		drivers[i].Password = ""
	}
	return c.JSON(drivers)
}
