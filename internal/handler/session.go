package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/escola-admin-console/internal/controller"
)

// sessionCookie scopes page state to one browser. It is an anonymous UI
// scoping cookie, not an authentication credential.
const sessionCookie = "console_session"

func resolveSession(c *gin.Context, registry *controller.Registry) *controller.Session {
	id, _ := c.Cookie(sessionCookie)
	session := registry.Get(id)
	if session.ID != id {
		c.SetCookie(sessionCookie, session.ID, 0, "/", "", false, true)
	}
	return session
}
