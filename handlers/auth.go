package handlers

import (
	"github.com/gofiber/fiber/v2"

	"house-portal/app"
	"house-portal/models"
)

// Login authenticates against the user service. Unlike the listing
// endpoints, failures here are surfaced with the server's message.
func Login(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.LoginRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(req); err != nil {
			return validationFailed(c, err)
		}

		if err := a.Users.Login(c.Context(), req.Username, req.Password); err != nil {
			logWarn(c, "login rejected", err)
			return unauthorized(c, err.Error())
		}

		return success(c, fiber.Map{
			"success": true,
			"user":    a.Users.UserInfo(),
		})
	}
}

// Logout clears the session and tears down the listing store.
func Logout(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		a.Users.Logout()
		a.Houses.Reset()
		return success(c, fiber.Map{"success": true})
	}
}

// Me returns the logged-in user, or 401.
func Me(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := a.Users.UserInfo()
		if user == nil {
			return unauthorized(c, "Not logged in")
		}
		return success(c, fiber.Map{"user": user})
	}
}

// UpdateProfile sends a partial profile change to the user service.
func UpdateProfile(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var patch models.UpdateProfileRequest
		if err := c.BodyParser(&patch); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(patch); err != nil {
			return validationFailed(c, err)
		}

		if err := a.Users.UpdateProfile(c.Context(), patch); err != nil {
			logWarn(c, "profile update rejected", err)
			return badRequest(c, err.Error())
		}

		return success(c, fiber.Map{"user": a.Users.UserInfo()})
	}
}

// ChangePassword sets a new password for the logged-in user.
func ChangePassword(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.ChangePasswordRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(req); err != nil {
			return validationFailed(c, err)
		}

		if err := a.Users.ChangePassword(c.Context(), req.NewPassword); err != nil {
			logWarn(c, "password change rejected", err)
			return badRequest(c, err.Error())
		}

		return success(c, fiber.Map{"success": true})
	}
}

// AdminSummary reports collection-wide stats for the admin dashboard.
// The admin route guard runs before this handler.
func AdminSummary(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return success(c, fiber.Map{
			"stats":   a.Houses.Stats(),
			"total":   a.Houses.Total(),
			"filters": a.Houses.Filters(),
		})
	}
}
