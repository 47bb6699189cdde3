package pages

import (
	"net/http"

	"github.com/flosch/pongo2/v6"
	"github.com/gin-gonic/gin"
)

// Auth form modes and student types.
const (
	ModeLogin    = "login"
	ModeRegister = "register"

	StudentInternal = "internal"
	StudentExternal = "external"
)

// authMode resolves the mode query parameter. Anything but "register"
// is a login.
func authMode(c *gin.Context) string {
	if c.Query("mode") == ModeRegister {
		return ModeRegister
	}
	return ModeLogin
}

func studentType(c *gin.Context) string {
	if c.Query("type") == StudentExternal {
		return StudentExternal
	}
	return StudentInternal
}

// Auth renders the login or registration form. Nothing is submitted.
func (h *Handlers) Auth(c *gin.Context) {
	mode := authMode(c)
	kind := studentType(c)

	titleKey := "meta.login_title"
	if mode == ModeRegister {
		titleKey = "meta.register_title"
	}

	h.render(c, http.StatusOK, "auth", titleKey, "", pongo2.Context{
		"Mode":        mode,
		"IsRegister":  mode == ModeRegister,
		"StudentType": kind,
		"IsExternal":  kind == StudentExternal,
	})
}
