package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/lmittmann/tint"

	"house-portal/api"
	"house-portal/app"
	"house-portal/config"
	"house-portal/database"
	"house-portal/handlers"
	"house-portal/middleware"
	"house-portal/store"
)

func main() {
	config.Load()

	logger := setupLogger()
	slog.SetDefault(logger)

	// Persisted session lives in SQLite, the way the browser frontend
	// kept it in local storage.
	db, err := database.New(config.AppConfig.SessionDBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	logger.Info("database initialized", "path", config.AppConfig.SessionDBPath)

	houseAPI := api.NewHouseClient(api.NewClient(config.AppConfig.HouseServiceURL, config.AppConfig.HTTPTimeout))
	userAPI := api.NewUserClient(api.NewClient(config.AppConfig.UserServiceURL, config.AppConfig.HTTPTimeout))

	houses := store.NewHouseStore(houseAPI, logger,
		config.AppConfig.DefaultCity, config.AppConfig.DefaultState, config.AppConfig.PageSize)
	users := store.NewUserStore(userAPI, database.NewSessionRepository(db), logger)

	// Rehydrate the login session from the last run.
	users.CheckAuth()
	if users.IsLoggedIn() {
		logger.Info("session restored", "username", users.UserInfo().Username)
	}

	a := app.New(houses, users, logger)

	srv := fiber.New(fiber.Config{
		ReadTimeout:           time.Second * 10,
		WriteTimeout:          time.Second * 10,
		IdleTimeout:           time.Second * 30,
		DisableStartupMessage: config.AppConfig.Env == "production",
	})

	srv.Use(
		recover.New(),
		middleware.StructuredLogger(logger),
		cors.New(cors.Config{
			AllowOrigins: config.GetEnv("CORS_ORIGINS", "*"),
			AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
			AllowHeaders: "Origin,Content-Type,Accept,Authorization",
			MaxAge:       86400,
		}),
	)

	guard := func(meta middleware.RouteMeta) fiber.Handler {
		return middleware.Guard(users, meta)
	}

	srv.Get("/", guard(middleware.RouteMeta{Title: "Home"}), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"name": "house-portal", "status": "ok"})
	})
	srv.Get("/health", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"status": "ok"}) })

	srv.Post("/api/auth/login", handlers.Login(a))
	srv.Post("/api/auth/logout", handlers.Logout(a))
	srv.Get("/api/auth/me", handlers.Me(a))

	srv.Get("/api/houses", guard(middleware.RouteMeta{Title: "Houses"}), handlers.GetHouses(a))
	srv.Get("/api/houses/stats", guard(middleware.RouteMeta{Title: "Analytics"}), handlers.GetHouseStats(a))
	srv.Get("/api/houses/zillow/:zillowId", guard(middleware.RouteMeta{Title: "House Detail"}), handlers.GetHouseByZillowID(a))
	srv.Get("/api/houses/:id", guard(middleware.RouteMeta{Title: "House Detail"}), handlers.GetHouse(a))
	srv.Post("/api/houses/search/location", guard(middleware.RouteMeta{Title: "Map Search"}), handlers.SearchByLocation(a))
	srv.Put("/api/filters", guard(middleware.RouteMeta{Title: "Houses"}), handlers.UpdateFilters(a))
	srv.Delete("/api/filters", guard(middleware.RouteMeta{Title: "Houses"}), handlers.ResetFilters(a))

	srv.Put("/api/profile", guard(middleware.RouteMeta{Title: "Profile", RequiresAuth: true}), handlers.UpdateProfile(a))
	srv.Post("/api/profile/password", guard(middleware.RouteMeta{Title: "Profile", RequiresAuth: true}), handlers.ChangePassword(a))

	srv.Get("/api/admin/summary", guard(middleware.RouteMeta{Title: "Admin", RequiresAuth: true, RequiresAdmin: true}), handlers.AdminSummary(a))

	logger.Info("starting server", "port", config.AppConfig.Port, "env", config.AppConfig.Env)

	go func() {
		if err := srv.Listen(":" + config.AppConfig.Port); err != nil {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.ShutdownWithContext(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server stopped")
}

func setupLogger() *slog.Logger {
	var handler slog.Handler

	if config.AppConfig.Env == "production" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: getLogLevel()})
	} else {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      getLogLevel(),
			TimeFormat: time.Kitchen,
		})
	}

	return slog.New(handler)
}

func getLogLevel() slog.Level {
	level := config.GetEnv("LOG_LEVEL", "info")
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
