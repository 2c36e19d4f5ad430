package app

import (
	"log/slog"

	"house-portal/store"
	"house-portal/validator"
)

// App holds all application dependencies
// This struct is the central point for dependency injection
type App struct {
	Houses    *store.HouseStore
	Users     *store.UserStore
	Validator *validator.Validator
	Logger    *slog.Logger
}

// New creates a new App instance with all dependencies
func New(houses *store.HouseStore, users *store.UserStore, logger *slog.Logger) *App {
	return &App{
		Houses:    houses,
		Users:     users,
		Validator: validator.New(),
		Logger:    logger,
	}
}
