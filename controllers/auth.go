package controllers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/driveazur/car-rental-app/db"
	"github.com/driveazur/car-rental-app/middleware"
	"github.com/driveazur/car-rental-app/models"
	"github.com/driveazur/car-rental-app/redis"
	"github.com/driveazur/car-rental-app/utils"
)

// Register handles user registration. Accepts multipart form data with an
// optional profile image that gets pushed to the asset host.
func Register(c *fiber.Ctx) error {
	name := strings.TrimSpace(c.FormValue("name"))
	email := strings.TrimSpace(c.FormValue("email"))
	phone := strings.TrimSpace(c.FormValue("phone"))
	address := strings.TrimSpace(c.FormValue("address"))
	password := c.FormValue("password")
	passwordConfirmation := c.FormValue("password_confirmation")

	errs := utils.ValidationErrors{}
	if name == "" {
		errs.Add("name", "The name field is required.")
	}
	if email == "" {
		errs.Add("email", "The email field is required.")
	} else if !strings.Contains(email, "@") {
		errs.Add("email", "The email must be a valid email address.")
	}
	if phone == "" {
		errs.Add("phone", "The phone field is required.")
	}

	age, err := strconv.Atoi(c.FormValue("age"))
	if err != nil {
		errs.Add("age", "The age field is required.")
	} else if age < 18 {
		errs.Add("age", "The age must be at least 18.")
	}

	if len(password) < 8 {
		errs.Add("password", "The password must be at least 8 characters.")
	} else if password != passwordConfirmation {
		errs.Add("password", "The password confirmation does not match.")
	}

	if email != "" {
		var existing models.User
		if db.DB.Where("email = ?", email).First(&existing).RowsAffected > 0 {
			errs.Add("email", "The email has already been taken.")
		}
	}
	if phone != "" {
		var existing models.User
		if db.DB.Where("phone = ?", phone).First(&existing).RowsAffected > 0 {
			errs.Add("phone", "The phone has already been taken.")
		}
	}

	if errs.Any() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"errors": errs})
	}

	// Optional profile image. An upload failure falls back to no image
	// rather than failing the registration.
	var imageURL *string
	if fileHeader, err := c.FormFile("image"); err == nil && fileHeader != nil {
		file, err := fileHeader.Open()
		if err == nil {
			defer file.Close()
			url, err := utils.UploadAsset(file, uuid.New().String(), "users")
			if err != nil {
				logrus.WithError(err).Warn("Profile image upload failed")
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
		Role:     models.RoleClient,
		Password: string(hashed),
	}

	if err := db.DB.Create(&user).Error; err != nil {
		logrus.WithError(err).Error("Failed to create user")
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create user",
			Error:   err.Error(),
		})
	}

	token, err := issueAccessToken(user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to generate token",
		})
	}

	user.Password = ""
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user":    user,
		"token":   token,
		"message": "User registered successfully",
	})
}

// Login handles user authentication
func Login(c *fiber.Ctx) error {
	type LoginInput struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	input := new(LoginInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	errs := utils.ValidationErrors{}
	if input.Email == "" {
		errs.Add("email", "The email field is required.")
	}
	if input.Password == "" {
		errs.Add("password", "The password field is required.")
	}
	if errs.Any() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"errors": errs})
	}

	var user models.User
	if db.DB.Where("email = ?", input.Email).First(&user).RowsAffected == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	token, err := issueAccessToken(user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}

	refreshClaims := jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"exp":   time.Now().Add(time.Hour * 24 * 7).Unix(),
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).
		SignedString(middleware.JWTSecret())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate refresh token",
		})
	}

	return c.JSON(fiber.Map{
		"token":        token,
		"refreshToken": refreshToken,
		"user": fiber.Map{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

func issueAccessToken(user models.User) (string, error) {
	claims := jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"role":  string(user.Role),
		"exp":   time.Now().Add(time.Hour * 24).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(middleware.JWTSecret())
}

// Logout revokes the presented token until its natural expiry.
func Logout(c *fiber.Ctx) error {
	token, ok := c.Locals("user").(*jwt.Token)
	if ok {
		ttl := time.Duration(0)
		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if exp, ok := claims["exp"].(float64); ok {
				ttl = time.Until(time.Unix(int64(exp), 0))
			}
		}
		if err := redis.BlacklistToken(token.Raw, ttl); err != nil {
			logrus.WithError(err).Warn("Failed to blacklist token on logout")
		}
	}

	return c.JSON(fiber.Map{
		"message": "Successfully logged out",
	})
}

// RefreshToken generates a new access token using a refresh token
func RefreshToken(c *fiber.Ctx) error {
	type RefreshRequest struct {
		RefreshToken string `json:"refreshToken"`
	}

	refreshRequest := new(RefreshRequest)
	if err := c.BodyParser(refreshRequest); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	token, err := jwt.Parse(refreshRequest.RefreshToken, func(token *jwt.Token) (interface{}, error) {
		return middleware.JWTSecret(), nil
	})
	if err != nil || !token.Valid {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid refresh token",
		})
	}

	claims := token.Claims.(jwt.MapClaims)
	userID, _ := claims["id"].(float64)

	var user models.User
	if db.DB.First(&user, uint(userID)).RowsAffected == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid refresh token",
		})
	}

	newToken, err := issueAccessToken(user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}

	return c.JSON(fiber.Map{
		"token": newToken,
	})
}
