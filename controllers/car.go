package controllers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/driveazur/car-rental-app/db"
	"github.com/driveazur/car-rental-app/models"
	"github.com/driveazur/car-rental-app/utils"
)

// GetCars lists the whole fleet.
func GetCars(c *fiber.Ctx) error {
	var cars []models.Car
	if err := db.DB.Find(&cars).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch cars",
			Error:   err.Error(),
		})
	}
	return c.JSON(cars)
}

// GetCar returns a single car by ID.
func GetCar(c *fiber.Ctx) error {
	var car models.Car
	if err := db.DB.First(&car, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Car not found",
			Error:   err.Error(),
		})
	}
	return c.JSON(car)
}

type carInput struct {
	Category            string   `json:"category"`
	Brand               string   `json:"brand"`
	Model               string   `json:"model"`
	Seats               int      `json:"seats"`
	GearType            string   `json:"gearType"`
	Mileage             int      `json:"mileage"`
	PricePerDay         float64  `json:"pricePerDay"`
	Availability        *bool    `json:"availability"`
	FuelType            string   `json:"fuelType"`
	Color               string   `json:"color"`
	Year                int      `json:"year"`
	Image               string   `json:"image"`
	InsuranceExpiryDate string   `json:"insuranceExpiryDate"`
	ServiceDueDate      string   `json:"serviceDueDate"`
	Features            []string `json:"features"`
}

func (in *carInput) validate(imageRequired bool) utils.ValidationErrors {
	errs := utils.ValidationErrors{}
	if in.Category == "" {
		errs.Add("category", "The category field is required.")
	}
	if in.Brand == "" {
		errs.Add("brand", "The brand field is required.")
	}
	if in.Model == "" {
		errs.Add("model", "The model field is required.")
	}
	if in.Seats < 1 {
		errs.Add("seats", "The seats must be at least 1.")
	}
	if in.GearType == "" {
		errs.Add("gearType", "The gearType field is required.")
	}
	if in.Mileage < 0 {
		errs.Add("mileage", "The mileage must be at least 0.")
	}
	if in.PricePerDay < 0 {
		errs.Add("pricePerDay", "The pricePerDay must be at least 0.")
	}
	if in.Availability == nil {
		errs.Add("availability", "The availability field is required.")
	}
	if in.FuelType == "" {
		errs.Add("fuelType", "The fuelType field is required.")
	}
	if in.Color == "" {
		errs.Add("color", "The color field is required.")
	}
	if in.Year < 1900 || in.Year > time.Now().Year()+1 {
		errs.Add("year", "The year is out of range.")
	}
	if in.Image == "" {
		if imageRequired {
			errs.Add("image", "The image field is required.")
		}
	} else if !strings.HasPrefix(in.Image, "https://res.cloudinary.com/") {
		errs.Add("image", "The image must be a Cloudinary URL.")
	}
	if _, err := time.Parse("2006-01-02", in.InsuranceExpiryDate); err != nil {
		errs.Add("insuranceExpiryDate", "The insuranceExpiryDate is not a valid date.")
	}
	if _, err := time.Parse("2006-01-02", in.ServiceDueDate); err != nil {
		errs.Add("serviceDueDate", "The serviceDueDate is not a valid date.")
	}
	return errs
}

func (in *carInput) apply(car *models.Car) {
	car.Category = in.Category
	car.Brand = in.Brand
	car.Model = in.Model
	car.Seats = in.Seats
	car.GearType = in.GearType
	car.Mileage = in.Mileage
	car.PricePerDay = in.PricePerDay
	if in.Availability != nil {
		car.Availability = *in.Availability
	}
	car.FuelType = in.FuelType
	car.Color = in.Color
	car.Year = in.Year
	if in.Image != "" {
		car.Image = in.Image
	}
	if t, err := time.Parse("2006-01-02", in.InsuranceExpiryDate); err == nil {
		car.InsuranceExpiryDate = &t
	}
	if t, err := time.Parse("2006-01-02", in.ServiceDueDate); err == nil {
		car.ServiceDueDate = &t
	}
	car.Features = models.StringList(in.Features)
}

// CreateCar adds a car to the fleet (staff/admin).
func CreateCar(c *fiber.Ctx) error {
	var input carInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if errs := input.validate(true); errs.Any() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"errors": errs})
	}

	var car models.Car
	input.apply(&car)
	if err := db.DB.Create(&car).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create car",
			Error:   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(car)
}

// UpdateCar replaces a car's attributes (staff/admin). Image is optional;
// the stored URL survives when none is sent.
func UpdateCar(c *fiber.Ctx) error {
	var car models.Car
	if err := db.DB.First(&car, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Car not found",
			Error:   err.Error(),
		})
	}

	var input carInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if errs := input.validate(false); errs.Any() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"errors": errs})
	}

	input.apply(&car)
	if err := db.DB.Save(&car).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update car",
			Error:   err.Error(),
		})
	}
	return c.JSON(car)
}

// DeleteCar removes a car (admin).
func DeleteCar(c *fiber.Ctx) error {
	var car models.Car
	if err := db.DB.First(&car, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Car not found",
			Error:   err.Error(),
		})
	}
	if err := db.DB.Delete(&car).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete car",
			Error:   err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// queryList splits a comma-separated query param into trimmed values.
func queryList(c *fiber.Ctx, key string) []string {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// SearchCars filters, sorts and paginates the fleet. Every filter is
// optional and malformed values are ignored instead of erroring, so a
// sloppy query still returns a listing.
func SearchCars(c *fiber.Ctx) error {
	query := db.DB.Model(&models.Car{})

	if category := c.Query("category"); category != "" && category != "all" {
		query = query.Where("category = ?", category)
	}

	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("brand LIKE ? OR model LIKE ? OR category LIKE ?", like, like, like)
	}

	if raw := c.Query("minPrice"); raw != "" {
		if min, err := strconv.ParseFloat(raw, 64); err == nil {
			query = query.Where("price_per_day >= ?", min)
		}
	}
	if raw := c.Query("maxPrice"); raw != "" {
		if max, err := strconv.ParseFloat(raw, 64); err == nil {
			query = query.Where("price_per_day <= ?", max)
		}
	}

	if brands := queryList(c, "brands"); len(brands) > 0 {
		query = query.Where("brand IN ?", brands)
	}
	if gearTypes := queryList(c, "gearTypes"); len(gearTypes) > 0 {
		query = query.Where("gear_type IN ?", gearTypes)
	}
	if fuelTypes := queryList(c, "fuelTypes"); len(fuelTypes) > 0 {
		query = query.Where("fuel_type IN ?", fuelTypes)
	}
	if rawYears := queryList(c, "years"); len(rawYears) > 0 {
		var years []int
		for _, raw := range rawYears {
			if year, err := strconv.Atoi(raw); err == nil {
				years = append(years, year)
			}
		}
		if len(years) > 0 {
			query = query.Where("year IN ?", years)
		}
	}

	if raw := c.Query("minSeats"); raw != "" {
		if minSeats, err := strconv.Atoi(raw); err == nil && minSeats > 0 {
			query = query.Where("seats >= ?", minSeats)
		}
	}

	if raw := c.Query("availability"); raw != "" {
		if available, err := strconv.ParseBool(raw); err == nil {
			query = query.Where("availability = ?", available)
		}
	}

	// Conjunctive: a car must carry every requested feature. Features
	// live in a JSON text column, so containment is a quoted-substring
	// match on the encoded array.
	for _, feature := range queryList(c, "features") {
		query = query.Where("features LIKE ?", `%"`+feature+`"%`)
	}

	var total int64
	query.Count(&total)

	switch c.Query("sortBy") {
	case "price-low":
		query = query.Order("price_per_day asc")
	case "price-high":
		query = query.Order("price_per_day desc")
	case "year-new":
		query = query.Order("year desc")
	case "year-old":
		query = query.Order("year asc")
	case "mileage-low":
		query = query.Order("mileage asc")
	default:
		// Newest first stands in for "recommended".
		query = query.Order("id desc")
	}

	perPage := 10
	if raw := c.Query("perPage"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			perPage = parsed
		}
	}
	page := 1
	if raw := c.Query("page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			page = parsed
		}
	}

	var cars []models.Car
	if err := query.Limit(perPage).Offset((page - 1) * perPage).Find(&cars).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to search cars",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"data":     cars,
		"total":    total,
		"page":     page,
		"per_page": perPage,
		"pages":    (int(total) + perPage - 1) / perPage,
	})
}
