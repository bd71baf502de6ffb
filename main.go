package main

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/sirupsen/logrus"

	"github.com/driveazur/car-rental-app/cron"
	"github.com/driveazur/car-rental-app/db"
	"github.com/driveazur/car-rental-app/redis"
	"github.com/driveazur/car-rental-app/routes"
)

func main() {
	db.Init()

	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		db.Migrate()
		db.Seed()
		return
	}

	redis.InitRedis()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	routes.SetupAuthRoutes(app)
	routes.SetupUserRoutes(app)
	routes.SetupCarRoutes(app)
	routes.SetupReservationRoutes(app)
	routes.SetupLocationRoutes(app)

	cron.StartCronJobs()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	if err := app.Listen(":" + port); err != nil {
		logrus.Fatal("Server failed: ", err)
	}
}
