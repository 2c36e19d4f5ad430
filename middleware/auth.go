package middleware

import (
	"github.com/gofiber/fiber/v2"

	"house-portal/models"
	"house-portal/store"
)

const titleSuffix = " - House Portal Irvine CA"

// RouteMeta mirrors the frontend router's per-route metadata: the page
// title and the auth demands.
type RouteMeta struct {
	Title         string
	RequiresAuth  bool
	RequiresAdmin bool
}

// Guard enforces a route's metadata before the handler runs. The page
// title is set on every routed response; an unauthenticated caller on a
// protected route, or a non-admin on an admin route, is redirected home.
func Guard(users *store.UserStore, meta RouteMeta) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if meta.Title != "" {
			c.Set("X-Page-Title", meta.Title+titleSuffix)
		}

		if meta.RequiresAuth && !users.IsLoggedIn() {
			return c.Redirect("/", fiber.StatusFound)
		}

		if meta.RequiresAdmin {
			user := users.UserInfo()
			if user == nil || user.Role != models.RoleAdmin {
				return c.Redirect("/", fiber.StatusFound)
			}
		}

		return c.Next()
	}
}
