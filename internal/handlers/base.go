package handlers

import (
	"errors"
	"net/http"

	"concallalpha/internal/apperr"
	"concallalpha/internal/logger"
	"concallalpha/internal/middleware"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Render helper to inject common variables shared by all pages
func Render(c *gin.Context, code int, name string, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}

	obj["CurrentPath"] = c.Request.URL.Path
	if session := sessions.Default(c); session.Get(middleware.AdminSessionKey) != nil {
		obj["IsAdmin"] = true
	}

	c.HTML(code, name, obj)
}

// RenderError shows the shared error page.
func RenderError(c *gin.Context, code int, message string) {
	Render(c, code, "error.html", gin.H{"Error": message})
}

// JSONOK writes the uniform success envelope.
func JSONOK(c *gin.Context, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}
	obj["ok"] = true
	c.JSON(http.StatusOK, obj)
}

// JSONFail maps the error taxonomy onto statuses and writes the uniform
// failure envelope. Store failures surface only a generic message.
func JSONFail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal error"
	switch {
	case errors.Is(err, apperr.ErrValidation) || errors.Is(err, apperr.ErrPayload):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, apperr.ErrNotFound):
		status = http.StatusNotFound
		message = err.Error()
	default:
		logger.L().Errorw("request failed", "path", c.FullPath(), "error", err)
	}
	c.JSON(status, gin.H{"ok": false, "error": message})
}
