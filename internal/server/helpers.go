package server

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// currentUserID extracts the authenticated user ID set by the session middleware.
func currentUserID(c *fiber.Ctx) (uint, bool) {
	uid, ok := c.Locals("userID").(uint)
	return uid, ok
}

// parsePage reads the ?page query parameter. Anything unparseable counts as
// page one; out-of-range values are clamped later against the real page count.
func parsePage(c *fiber.Ctx) int {
	raw := c.Query("page", "1")
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// safeNextPath keeps post-login redirects on this site. Only local absolute
// paths pass; anything else falls back to the front page.
func safeNextPath(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}

// viewData assembles the base template context shared by every page.
func (s *Server) viewData(c *fiber.Ctx, data fiber.Map) fiber.Map {
	if data == nil {
		data = fiber.Map{}
	}
	uid, authenticated := currentUserID(c)
	data["IsAuthenticated"] = authenticated
	if authenticated {
		data["UserID"] = uid
	}
	return data
}
